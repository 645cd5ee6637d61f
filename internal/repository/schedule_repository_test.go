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

var scheduleColumns = []string{"id", "day", "task_id", "task_name", "start_time", "end_time", "created_at"}

func TestScheduleRepositoryListByDay(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows(scheduleColumns).
		AddRow("s-1", "Monday", "task-1", "Morning Meeting", "09:00", "09:45", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`FROM schedules s JOIN tasks t ON t.id = s.task_id WHERE s.day = $1 ORDER BY array_position(`)).
		WithArgs("Monday").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM schedules s WHERE s.day = $1`)).
		WithArgs("Monday").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	entries, total, err := repo.List(context.Background(), models.ScheduleFilter{Day: "Monday", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "Morning Meeting", entries[0].TaskName)
	assert.Equal(t, "09:45", entries[0].EndTime)
}

func TestScheduleRepositoryListAll(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewScheduleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM schedules s JOIN tasks t ON t.id = s.task_id ORDER BY`)).
		WillReturnRows(sqlmock.NewRows(scheduleColumns).
			AddRow("s-1", "Monday", "task-1", "a", "09:00", "10:00", time.Now()).
			AddRow("s-2", "Tuesday", "task-1", "a", "09:00", "10:00", time.Now()))

	entries, err := repo.ListAll(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestScheduleRepositoryInsertWithTx(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO schedules (id, day, task_id, start_time, end_time, created_at) VALUES ($1, $2, $3, CAST($4 AS TIME), CAST($5 AS TIME), $6)`)).
		WithArgs(sqlmock.AnyArg(), "Monday", "task-1", "09:00", "09:45", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	entries := []models.ScheduleEntry{{Day: "Monday", TaskID: "task-1", StartTime: "09:00", EndTime: "09:45"}}
	require.NoError(t, repo.InsertWithTx(context.Background(), tx, entries))
	require.NoError(t, tx.Rollback())
	assert.NotEmpty(t, entries[0].ID)
}

func TestScheduleRepositoryDeleteMissing(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM schedules WHERE id = $1`)).
		WithArgs("s-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "s-9")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
