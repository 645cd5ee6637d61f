package scheduler

// Fallback packs tasks back to back into the first window of each day, most urgent first.
// A task is placed whole or not at all; the first task that does not fit ends the day.
// Later windows of a day are never used.
func Fallback(tasks []plannedTask, days []DayAvailability) []Assignment {
	ordered := byUrgency(tasks)
	var assignments []Assignment
	for _, day := range days {
		if len(day.Windows) == 0 {
			continue
		}
		window := day.Windows[0]
		cursor := window.Start
		remaining := window.Minutes()
		for _, task := range ordered {
			if remaining < task.minutes {
				break
			}
			assignments = append(assignments, Assignment{
				Task:     task.name,
				Day:      day.Day,
				Start:    cursor,
				Duration: task.minutes,
				Priority: task.priority,
			})
			cursor += task.minutes
			remaining -= task.minutes
		}
	}
	return assignments
}
