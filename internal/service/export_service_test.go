package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/task-scheduler-api/internal/dto"
	"github.com/noah-isme/task-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/task-scheduler-api/pkg/errors"
	"github.com/noah-isme/task-scheduler-api/pkg/jobs"
	"github.com/noah-isme/task-scheduler-api/pkg/storage"
)

type scheduleSourceStub struct {
	entries []models.ScheduleEntry
	err     error
	day     string
}

func (s *scheduleSourceStub) ListAll(_ context.Context, day string) ([]models.ScheduleEntry, error) {
	s.day = day
	return s.entries, s.err
}

type dispatcherStub struct {
	mu   sync.Mutex
	jobs []jobs.Job
	err  error
}

func (d *dispatcherStub) Enqueue(job jobs.Job) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

func newExportServiceForTest(t *testing.T) (*ExportService, *scheduleSourceStub, *dispatcherStub) {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	source := &scheduleSourceStub{entries: []models.ScheduleEntry{
		{Day: "Monday", TaskName: "standup", StartTime: "09:00", EndTime: "09:45"},
		{Day: "Monday", TaskName: "email", StartTime: "10:00", EndTime: "10:30"},
	}}
	svc := NewExportService(source, files, storage.NewSignedURLSigner("secret", time.Hour), nil, ExportConfig{APIPrefix: "/api/v1/", JobTTL: time.Hour}, zap.NewNop())
	queue := &dispatcherStub{}
	svc.SetQueue(queue)
	return svc, source, queue
}

func TestExportServiceCSVLifecycle(t *testing.T) {
	svc, source, queue := newExportServiceForTest(t)
	ctx := context.Background()

	queued, err := svc.Enqueue(ctx, dto.CreateExportRequest{Format: "csv", Day: "monday"}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, string(models.ExportStatusQueued), queued.Status)
	assert.Equal(t, "Monday", queued.Day)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, ExportJobType, queue.jobs[0].Type)

	require.NoError(t, svc.Process(ctx, queue.jobs[0]))
	assert.Equal(t, "Monday", source.day)

	status, err := svc.Status(ctx, queued.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ExportStatusFinished), status.Status)
	require.NotNil(t, status.DownloadURL)
	require.True(t, strings.HasPrefix(*status.DownloadURL, "/api/v1/export/"))

	token := strings.TrimPrefix(*status.DownloadURL, "/api/v1/export/")
	download, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	defer download.File.Close()
	assert.Equal(t, "text/csv", download.ContentType)
	assert.True(t, strings.HasPrefix(download.Filename, "schedule_monday_"))

	body, err := io.ReadAll(download.File)
	require.NoError(t, err)
	assert.Equal(t, "Day,Task,Start,End,Duration (min)\nMonday,standup,09:00,09:45,45\nMonday,email,10:00,10:30,30\n", string(body))
}

func TestExportServicePDF(t *testing.T) {
	svc, _, queue := newExportServiceForTest(t)
	ctx := context.Background()

	queued, err := svc.Enqueue(ctx, dto.CreateExportRequest{Format: "pdf"}, "")
	require.NoError(t, err)
	require.NoError(t, svc.Process(ctx, queue.jobs[0]))

	status, err := svc.Status(ctx, queued.ID)
	require.NoError(t, err)
	download, err := svc.Resolve(ctx, strings.TrimPrefix(*status.DownloadURL, "/api/v1/export/"))
	require.NoError(t, err)
	defer download.File.Close()
	assert.Equal(t, "application/pdf", download.ContentType)
	head := make([]byte, 4)
	_, err = io.ReadFull(download.File, head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(head))
}

func TestExportServiceEnqueueValidation(t *testing.T) {
	svc, _, queue := newExportServiceForTest(t)

	_, err := svc.Enqueue(context.Background(), dto.CreateExportRequest{Format: "xml"}, "")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	_, err = svc.Enqueue(context.Background(), dto.CreateExportRequest{Format: "csv", Day: "Caturday"}, "")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, queue.jobs)
}

func TestExportServiceEnqueueFailureMarksJobFailed(t *testing.T) {
	svc, _, queue := newExportServiceForTest(t)
	queue.err = errors.New("queue stopped")

	_, err := svc.Enqueue(context.Background(), dto.CreateExportRequest{Format: "csv"}, "")
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
	require.Len(t, svc.store.items, 1)
	for _, job := range svc.store.items {
		assert.Equal(t, models.ExportStatusFailed, job.Status)
	}
}

func TestExportServiceExhaustedJob(t *testing.T) {
	svc, source, queue := newExportServiceForTest(t)
	source.err = errors.New("db down")
	ctx := context.Background()

	queued, err := svc.Enqueue(ctx, dto.CreateExportRequest{Format: "csv"}, "")
	require.NoError(t, err)
	err = svc.Process(ctx, queue.jobs[0])
	require.Error(t, err)
	svc.HandleExhausted(queue.jobs[0], err)

	status, err := svc.Status(ctx, queued.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ExportStatusFailed), status.Status)
	require.NotNil(t, status.Error)
	assert.Equal(t, "db down", *status.Error)
}

func TestExportServiceResolveRejectsBadTokens(t *testing.T) {
	svc, _, _ := newExportServiceForTest(t)

	_, err := svc.Resolve(context.Background(), "not-a-token")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	signer := storage.NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("unknown-job", "schedule.csv")
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), token)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestExportServiceCleanupPrunesExpiredJobs(t *testing.T) {
	svc, _, queue := newExportServiceForTest(t)
	ctx := context.Background()

	queued, err := svc.Enqueue(ctx, dto.CreateExportRequest{Format: "csv"}, "")
	require.NoError(t, err)
	require.NoError(t, svc.Process(ctx, queue.jobs[0]))

	svc.store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Cleanup()
	require.NoError(t, err)

	_, err = svc.Status(ctx, queued.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestExportServiceStartCleanup(t *testing.T) {
	svc, _, _ := newExportServiceForTest(t)

	_, err := svc.StartCleanup("not a schedule")
	require.Error(t, err)

	c, err := svc.StartCleanup("@hourly")
	require.NoError(t, err)
	<-c.Stop().Done()
}
