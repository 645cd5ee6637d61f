package scheduler

import "sort"

// Assemble groups assignments by day in weekday order and sorts each day by start.
// Days without assignments are left out.
func Assemble(assignments []Assignment) []DaySchedule {
	byDay := make(map[Weekday][]Assignment)
	for _, a := range assignments {
		byDay[a.Day] = append(byDay[a.Day], a)
	}

	schedule := make([]DaySchedule, 0, len(byDay))
	for _, day := range Weekdays() {
		items := byDay[day]
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Start == items[j].Start {
				return items[i].Task < items[j].Task
			}
			return items[i].Start < items[j].Start
		})
		schedule = append(schedule, DaySchedule{Day: day, Assignments: items})
	}
	return schedule
}

func solutionAssignments(model *Model, tasks []plannedTask, chosen []int) []Assignment {
	assignments := make([]Assignment, 0, len(chosen))
	for _, c := range chosen {
		candidate := model.Candidates[c]
		task := tasks[candidate.Task]
		assignments = append(assignments, Assignment{
			Task:     task.name,
			Day:      candidate.Day,
			Start:    candidate.Start,
			Duration: candidate.Duration,
			Priority: task.priority,
		})
	}
	return assignments
}
