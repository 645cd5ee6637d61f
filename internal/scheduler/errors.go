package scheduler

import "errors"

var (
	// ErrInvalidTimeFormat is returned when a clock string is not two colon-separated integers.
	ErrInvalidTimeFormat = errors.New("invalid time format")
	// ErrInvalidWindow is returned for availability windows outside a single day or with end <= start.
	ErrInvalidWindow = errors.New("invalid availability window")
	// ErrInvalidDay is returned for day labels that are not a weekday name.
	ErrInvalidDay = errors.New("invalid day of week")
	// ErrInvalidTask is returned for tasks with a missing or duplicate name or an out-of-range daily budget.
	ErrInvalidTask = errors.New("invalid task")
)
