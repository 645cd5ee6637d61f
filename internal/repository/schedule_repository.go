package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/task-scheduler-api/internal/models"
)

const scheduleSelect = `SELECT s.id, s.day, s.task_id, t.task_name, to_char(s.start_time, 'HH24:MI') AS start_time, to_char(s.end_time, 'HH24:MI') AS end_time, s.created_at
FROM schedules s JOIN tasks t ON t.id = s.task_id`

// ScheduleRepository provides persistence for schedule rows.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns schedule rows in weekday and start order, optionally for one day.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, int, error) {
	where, args := scheduleWhere(filter.Day)
	limit, offset := pageBounds(filter.Page, filter.PageSize)

	query := fmt.Sprintf("%s%s ORDER BY %s, s.start_time ASC LIMIT %d OFFSET %d", scheduleSelect, where, weekdayOrder("s.day"), limit, offset)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list schedules: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM schedules s"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count schedules: %w", err)
	}
	return entries, total, nil
}

// ListAll returns every schedule row for export, optionally for one day.
func (r *ScheduleRepository) ListAll(ctx context.Context, day string) ([]models.ScheduleEntry, error) {
	where, args := scheduleWhere(day)
	query := fmt.Sprintf("%s%s ORDER BY %s, s.start_time ASC", scheduleSelect, where, weekdayOrder("s.day"))
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list all schedules: %w", err)
	}
	return entries, nil
}

// InsertWithTx stores schedule rows. Callers clear old rows by replacing tasks.
func (r *ScheduleRepository) InsertWithTx(ctx context.Context, exec sqlx.ExtContext, entries []models.ScheduleEntry) error {
	now := time.Now().UTC()
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		if entries[i].CreatedAt.IsZero() {
			entries[i].CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, exec, `INSERT INTO schedules (id, day, task_id, start_time, end_time, created_at) VALUES (:id, :day, :task_id, CAST(:start_time AS TIME), CAST(:end_time AS TIME), :created_at)`, &entries[i]); err != nil {
			return fmt.Errorf("insert schedule: %w", err)
		}
	}
	return nil
}

// Delete removes one schedule row. Missing rows return sql.ErrNoRows.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "schedules", id)
}

func scheduleWhere(day string) (string, []interface{}) {
	if day == "" {
		return "", nil
	}
	return " WHERE s.day = $1", []interface{}{day}
}
