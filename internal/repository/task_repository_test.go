package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/task-scheduler-api/internal/models"
)

func TestTaskRepositoryList(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewTaskRepository(db)

	deadline := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "task_name", "hours_per_day", "deadline", "created_at"}).
		AddRow("task-1", "Project Work", 2.0, deadline, time.Now()).
		AddRow("task-2", "chess", 1.5, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, task_name, hours_per_day, deadline, created_at FROM tasks ORDER BY task_name ASC LIMIT 100 OFFSET 0`)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tasks`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	tasks, total, err := repo.List(context.Background(), models.TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, tasks, 2)
	require.NotNil(t, tasks[0].Deadline)
	assert.True(t, deadline.Equal(*tasks[0].Deadline))
	assert.Nil(t, tasks[1].Deadline)
}

func TestTaskRepositoryReplaceAllWithTx(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks`)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tasks (id, task_name, hours_per_day, deadline, created_at) VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs(sqlmock.AnyArg(), "Morning Meeting", 1.0, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	tasks := []models.Task{{Name: "Morning Meeting", HoursPerDay: 1}}
	require.NoError(t, repo.ReplaceAllWithTx(context.Background(), tx, tasks))
	require.NoError(t, tx.Commit())

	assert.NotEmpty(t, tasks[0].ID)
	assert.False(t, tasks[0].CreatedAt.IsZero())
}

func TestTaskRepositoryDelete(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1`)).
		WithArgs("task-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "task-1"))
	err := repo.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestTaskRepositoryFindByIDMissing(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE id = $1`)).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "nope")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
