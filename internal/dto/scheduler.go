package dto

import "time"

// TaskRequest is one recurring task to schedule. Deadline is "YYYY-MM-DD"; anything that
// does not parse is treated as no deadline.
type TaskRequest struct {
	TaskName    string  `json:"task_name" validate:"required,max=255"`
	HoursPerDay float64 `json:"hours_per_day" validate:"gt=0,lte=24"`
	Deadline    *string `json:"deadline"`
}

// TimeWindowRequest is an availability window in "HH:MM".
type TimeWindowRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// CreateScheduleRequest asks the engine for a weekly schedule. Availability is keyed by
// weekday label.
type CreateScheduleRequest struct {
	Tasks         []TaskRequest                  `json:"tasks" validate:"required,min=1,dive"`
	AvailableTime map[string][]TimeWindowRequest `json:"available_time" validate:"required,min=1,dive,dive"`
}

// ScheduledTaskResponse is one placement in a day.
type ScheduledTaskResponse struct {
	TaskName  string  `json:"task_name"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Duration  int     `json:"duration"`
	Priority  float64 `json:"priority"`
}

// DayScheduleResponse lists a weekday's placements by start time.
type DayScheduleResponse struct {
	Day   string                  `json:"day"`
	Tasks []ScheduledTaskResponse `json:"tasks"`
}

// ScheduleResponse is the engine outcome returned to callers.
type ScheduleResponse struct {
	Schedule     []DayScheduleResponse `json:"schedule"`
	Status       string                `json:"status"`
	Message      string                `json:"message"`
	ReducedHours map[string]float64    `json:"reduced_hours"`
}

// TaskResponse is a stored task.
type TaskResponse struct {
	ID          string  `json:"id"`
	TaskName    string  `json:"task_name"`
	HoursPerDay float64 `json:"hours_per_day"`
	Deadline    *string `json:"deadline"`
}

// ScheduleEntryResponse is a stored schedule row.
type ScheduleEntryResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	TaskName  string `json:"task_name"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ListQuery carries paging and filter parameters for list endpoints.
type ListQuery struct {
	Day      string `form:"day"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=500"`
}

// CreateExportRequest enqueues a schedule export.
type CreateExportRequest struct {
	Format string `json:"format" validate:"required,oneof=csv pdf"`
	Day    string `json:"day"`
}

// ExportJobResponse reports the state of an export job.
type ExportJobResponse struct {
	ID          string     `json:"id"`
	Format      string     `json:"format"`
	Status      string     `json:"status"`
	Day         string     `json:"day,omitempty"`
	DownloadURL *string    `json:"download_url,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
}
