package scheduler

import (
	"strings"
	"time"
)

// DeadlineLayout is the accepted deadline format.
const DeadlineLayout = "2006-01-02"

// Priority scores urgency as 1/(days_remaining+1). Tasks without a deadline, or with one
// that does not parse, score 0. Deadlines today or in the past score 1.
func Priority(deadline string, today time.Time) float64 {
	deadline = strings.TrimSpace(deadline)
	if deadline == "" {
		return 0
	}
	due, err := time.Parse(DeadlineLayout, deadline)
	if err != nil {
		return 0
	}
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	remaining := int(due.Sub(start).Hours() / 24)
	if remaining < 0 {
		remaining = 0
	}
	return 1 / float64(remaining+1)
}
