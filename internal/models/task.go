package models

import "time"

// Task is a stored recurring task.
type Task struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"task_name" json:"task_name"`
	HoursPerDay float64    `db:"hours_per_day" json:"hours_per_day"`
	Deadline    *time.Time `db:"deadline" json:"deadline,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// TaskFilter pages through stored tasks.
type TaskFilter struct {
	Page     int
	PageSize int
}
