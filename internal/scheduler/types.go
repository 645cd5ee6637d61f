package scheduler

import "time"

// Task is a caller-supplied recurring task. Deadline is "YYYY-MM-DD" or empty.
type Task struct {
	Name        string
	HoursPerDay float64
	Deadline    string
}

// ClockWindow is an availability window as supplied by the caller.
type ClockWindow struct {
	Start string
	End   string
}

// Window is an availability window in minutes after midnight, half-open [Start, End).
type Window struct {
	Start int
	End   int
}

// Minutes returns the window capacity.
func (w Window) Minutes() int {
	return w.End - w.Start
}

// DayAvailability holds the windows of one weekday in caller order.
type DayAvailability struct {
	Day     Weekday
	Windows []Window
}

// Input is everything one engine run needs. A zero Today falls back to the engine clock.
type Input struct {
	Tasks        []Task
	Availability map[string][]ClockWindow
	Today        time.Time
}

// Assignment is one scheduled block of a task.
type Assignment struct {
	Task     string
	Day      Weekday
	Start    int
	Duration int
	Priority float64
}

// End returns the exclusive end minute.
func (a Assignment) End() int {
	return a.Start + a.Duration
}

// DaySchedule lists a day's assignments ordered by start.
type DaySchedule struct {
	Day         Weekday
	Assignments []Assignment
}

// Status reports which path produced a schedule.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFallback Status = "fallback"
)

const (
	messageSuccess  = "Schedule created successfully"
	messageFallback = "Using fallback manual allocation due to no optimal solution found"
)

// Diagnostics describes the work done by a run.
type Diagnostics struct {
	SolverStatus SolveStatus
	Candidates   int
	Groups       int
	Conflicts    int
	Nodes        int64
	Elapsed      time.Duration
}

// Result is the outcome of one engine run.
type Result struct {
	Schedule       []DaySchedule
	Status         Status
	Message        string
	ReducedMinutes map[string]float64
	Diagnostics    Diagnostics
}

// plannedTask carries the derived values of a task for one run.
type plannedTask struct {
	index    int
	name     string
	priority float64
	minutes  int
}
