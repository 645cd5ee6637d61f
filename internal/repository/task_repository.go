package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/task-scheduler-api/internal/models"
)

const taskColumns = `id, task_name, hours_per_day, deadline, created_at`

// TaskRepository provides persistence for scheduled tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns tasks ordered by name with pagination.
func (r *TaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error) {
	limit, offset := pageBounds(filter.Page, filter.PageSize)

	query := fmt.Sprintf(`SELECT %s FROM tasks ORDER BY task_name ASC LIMIT %d OFFSET %d`, taskColumns, limit, offset)
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tasks`); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}
	return tasks, total, nil
}

// FindByID loads a task by id. Missing rows return sql.ErrNoRows.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.GetContext(ctx, &task, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &task, nil
}

// ReplaceAllWithTx deletes every task, and through the foreign key every schedule row,
// then inserts tasks. IDs and timestamps are filled in place.
func (r *TaskRepository) ReplaceAllWithTx(ctx context.Context, exec sqlx.ExtContext, tasks []models.Task) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	now := time.Now().UTC()
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.NewString()
		}
		if tasks[i].CreatedAt.IsZero() {
			tasks[i].CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, exec, `INSERT INTO tasks (`+taskColumns+`) VALUES (:id, :task_name, :hours_per_day, :deadline, :created_at)`, &tasks[i]); err != nil {
			return fmt.Errorf("insert task %s: %w", tasks[i].Name, err)
		}
	}
	return nil
}

// Delete removes a task and its schedule rows. Missing rows return sql.ErrNoRows.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "tasks", id)
}

func deleteByID(ctx context.Context, exec sqlx.ExecerContext, table, id string) error {
	res, err := exec.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func pageBounds(page, size int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 500 {
		size = 100
	}
	return size, (page - 1) * size
}
