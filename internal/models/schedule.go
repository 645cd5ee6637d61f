package models

import "time"

// ScheduleEntry is one stored placement of a task on a weekday.
type ScheduleEntry struct {
	ID        string    `db:"id" json:"id"`
	Day       string    `db:"day" json:"day"`
	TaskID    string    `db:"task_id" json:"task_id"`
	TaskName  string    `db:"task_name" json:"task_name"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ScheduleFilter narrows stored schedule listings.
type ScheduleFilter struct {
	Day      string
	Page     int
	PageSize int
}
