package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/task-scheduler-api/internal/models"
)

// TimeSlotRepository stores the availability windows of the last scheduling request.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository creates a new time slot repository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// ListAll returns every window in weekday then start order.
func (r *TimeSlotRepository) ListAll(ctx context.Context) ([]models.TimeSlot, error) {
	query := `SELECT id, day_of_week, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time, created_at
FROM time_slots ORDER BY ` + weekdayOrder("day_of_week") + `, start_time ASC`
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}

// ReplaceAllWithTx swaps the stored windows for slots.
func (r *TimeSlotRepository) ReplaceAllWithTx(ctx context.Context, exec sqlx.ExtContext, slots []models.TimeSlot) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM time_slots`); err != nil {
		return fmt.Errorf("clear time slots: %w", err)
	}
	now := time.Now().UTC()
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		if slots[i].CreatedAt.IsZero() {
			slots[i].CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, exec, `INSERT INTO time_slots (id, day_of_week, start_time, end_time, created_at) VALUES (:id, :day_of_week, CAST(:start_time AS TIME), CAST(:end_time AS TIME), :created_at)`, &slots[i]); err != nil {
			return fmt.Errorf("insert time slot: %w", err)
		}
	}
	return nil
}

// weekdayOrder renders an ORDER BY expression sorting weekday labels Monday first.
func weekdayOrder(column string) string {
	return fmt.Sprintf("array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday']::text[], %s::text)", column)
}
