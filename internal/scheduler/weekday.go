package scheduler

import (
	"fmt"
	"strings"
)

// Weekday indexes days Monday-first so that schedules come out in calendar order.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Weekdays lists every day in output order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// String returns the canonical label, e.g. "Monday".
func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday accepts a weekday label in any letter case.
func ParseWeekday(label string) (Weekday, error) {
	trimmed := strings.TrimSpace(label)
	for i, name := range weekdayNames {
		if strings.EqualFold(trimmed, name) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, label)
}
