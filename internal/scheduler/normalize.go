package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// NormalizeAvailability parses clock windows, validates them and orders days Monday first.
// Labels differing only in case are merged in label order.
func NormalizeAvailability(raw map[string][]ClockWindow) ([]DayAvailability, error) {
	labels := make([]string, 0, len(raw))
	for label := range raw {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	byDay := make(map[Weekday][]Window, len(raw))
	for _, label := range labels {
		day, err := ParseWeekday(label)
		if err != nil {
			return nil, err
		}
		for _, slot := range raw[label] {
			window, err := parseWindow(slot)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", day, err)
			}
			byDay[day] = append(byDay[day], window)
		}
	}

	days := make([]DayAvailability, 0, len(byDay))
	for _, day := range Weekdays() {
		windows, ok := byDay[day]
		if !ok || len(windows) == 0 {
			continue
		}
		days = append(days, DayAvailability{Day: day, Windows: windows})
	}
	return days, nil
}

func parseWindow(slot ClockWindow) (Window, error) {
	start, err := ParseClock(slot.Start)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseClock(slot.End)
	if err != nil {
		return Window{}, err
	}
	if start < 0 || end > MinutesPerDay || end <= start {
		return Window{}, fmt.Errorf("%w: %s-%s", ErrInvalidWindow, slot.Start, slot.End)
	}
	return Window{Start: start, End: end}, nil
}

func planTasks(tasks []Task, today time.Time) ([]plannedTask, error) {
	planned := make([]plannedTask, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))
	for i, task := range tasks {
		name := strings.TrimSpace(task.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: task %d has no name", ErrInvalidTask, i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate task name %q", ErrInvalidTask, name)
		}
		if task.HoursPerDay <= 0 || task.HoursPerDay > 24 {
			return nil, fmt.Errorf("%w: %q hours_per_day must be within (0, 24]", ErrInvalidTask, name)
		}
		seen[name] = struct{}{}
		planned = append(planned, plannedTask{
			index:    i,
			name:     name,
			priority: Priority(task.Deadline, today),
			minutes:  ReduceMinutes(task.HoursPerDay),
		})
	}
	return planned, nil
}

// byUrgency returns tasks in descending priority, ties kept in input order.
func byUrgency(tasks []plannedTask) []plannedTask {
	ordered := make([]plannedTask, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].priority > ordered[j].priority
	})
	return ordered
}
