package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/noah-isme/task-scheduler-api/internal/dto"
	"github.com/noah-isme/task-scheduler-api/internal/models"
	"github.com/noah-isme/task-scheduler-api/internal/scheduler"
	appErrors "github.com/noah-isme/task-scheduler-api/pkg/errors"
	"github.com/noah-isme/task-scheduler-api/pkg/export"
	"github.com/noah-isme/task-scheduler-api/pkg/jobs"
	"github.com/noah-isme/task-scheduler-api/pkg/storage"
)

// ExportJobType tags queue jobs produced by the export service.
const ExportJobType = "schedule_export"

var exportHeaders = []string{"Day", "Task", "Start", "End", "Duration (min)"}

type scheduleSource interface {
	ListAll(ctx context.Context, day string) ([]models.ScheduleEntry, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	JobTTL    time.Duration
}

// ExportDownload is an opened export file ready to stream.
type ExportDownload struct {
	File        *os.File
	Filename    string
	ContentType string
	ExpiresAt   time.Time
}

// ExportService renders the stored schedule to CSV or PDF on a background queue and hands
// out signed download links.
type ExportService struct {
	schedules scheduleSource
	storage   fileStorage
	signer    *storage.SignedURLSigner
	exporters map[models.ExportFormat]export.Exporter
	store     *exportJobStore
	queue     jobDispatcher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService. Attach a queue with SetQueue before
// enqueueing jobs.
func NewExportService(schedules scheduleSource, files fileStorage, signer *storage.SignedURLSigner, metrics *MetricsService, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 24 * time.Hour
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	return &ExportService{
		schedules: schedules,
		storage:   files,
		signer:    signer,
		exporters: map[models.ExportFormat]export.Exporter{
			models.ExportFormatCSV: export.NewCSVExporter(),
			models.ExportFormatPDF: export.NewPDFExporter(),
		},
		store:     newExportJobStore(cfg.JobTTL),
		metrics:   metrics,
		validator: validator.New(),
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SetQueue attaches the dispatcher that runs Process.
func (s *ExportService) SetQueue(queue jobDispatcher) {
	s.queue = queue
}

// Enqueue registers an export job and hands it to the queue.
func (s *ExportService) Enqueue(ctx context.Context, req dto.CreateExportRequest, actorID string) (*dto.ExportJobResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	day := ""
	if req.Day != "" {
		weekday, err := scheduler.ParseWeekday(req.Day)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
		day = weekday.String()
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "export queue unavailable")
	}

	job := models.ExportJob{
		ID:        uuid.NewString(),
		Format:    models.ExportFormat(req.Format),
		Status:    models.ExportStatusQueued,
		Day:       day,
		CreatedBy: actorID,
		CreatedAt: s.now().UTC(),
	}
	s.store.Save(job)
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: ExportJobType, Payload: job.ID}); err != nil {
		s.fail(job.ID, "failed to enqueue job")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export job")
	}
	s.metrics.ObserveExportJob(string(job.Format), string(job.Status))
	return toExportJobResponse(job), nil
}

// Status returns a job's current state.
func (s *ExportService) Status(_ context.Context, id string) (*dto.ExportJobResponse, error) {
	job, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return toExportJobResponse(job), nil
}

// Process renders and stores one export. It is the queue handler.
func (s *ExportService) Process(ctx context.Context, job jobs.Job) error {
	id, _ := job.Payload.(string)
	if id == "" {
		id = job.ID
	}
	current, ok := s.store.Update(id, func(j *models.ExportJob) { j.Status = models.ExportStatusProcessing })
	if !ok {
		s.logger.Warn("export job vanished before processing", zap.String("job_id", id))
		return nil
	}

	exporter, ok := s.exporters[current.Format]
	if !ok {
		s.fail(id, fmt.Sprintf("unsupported format %s", current.Format))
		return nil
	}
	dataset, err := s.buildDataset(ctx, current.Day)
	if err != nil {
		return err
	}
	payload, err := exporter.Render(dataset)
	if err != nil {
		return fmt.Errorf("render %s export: %w", current.Format, err)
	}
	relPath, err := s.storage.Save(s.buildFilename(current, exporter.Extension()), payload)
	if err != nil {
		return err
	}
	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		_ = s.storage.Delete(relPath)
		return err
	}

	url := fmt.Sprintf("%s/export/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token)
	finishedAt := s.now().UTC()
	s.store.Update(id, func(j *models.ExportJob) {
		j.Status = models.ExportStatusFinished
		j.FilePath = relPath
		j.DownloadURL = &url
		j.ExpiresAt = &expiresAt
		j.FinishedAt = &finishedAt
		j.ErrorMessage = nil
	})
	s.metrics.ObserveExportJob(string(current.Format), string(models.ExportStatusFinished))
	s.logger.Info("export finished", zap.String("job_id", id), zap.String("format", string(current.Format)), zap.Int("rows", len(dataset.Rows)))
	return nil
}

// HandleExhausted marks a job that failed every attempt.
func (s *ExportService) HandleExhausted(job jobs.Job, err error) {
	id, _ := job.Payload.(string)
	if id == "" {
		id = job.ID
	}
	s.fail(id, err.Error())
}

// Resolve validates a download token and opens the file it grants.
func (s *ExportService) Resolve(_ context.Context, token string) (*ExportDownload, error) {
	grant, err := s.signer.Parse(token, false)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "download token expired")
		}
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid download token")
	}
	job, ok := s.store.Get(grant.JobID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	if job.Status != models.ExportStatusFinished || job.FilePath != grant.Path {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "export not ready")
	}
	file, err := s.storage.Open(grant.Path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	return &ExportDownload{
		File:        file,
		Filename:    filepath.Base(grant.Path),
		ContentType: s.exporters[job.Format].ContentType(),
		ExpiresAt:   grant.ExpiresAt,
	}, nil
}

// Cleanup drops expired job metadata and export files older than the token TTL.
func (s *ExportService) Cleanup() ([]string, error) {
	for _, job := range s.store.Prune() {
		if job.FilePath == "" {
			continue
		}
		if err := s.storage.Delete(job.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("export delete failed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	return s.storage.CleanupOlderThan(s.signer.TTL())
}

// StartCleanup runs Cleanup on a cron schedule. Stop the returned cron on shutdown.
func (s *ExportService) StartCleanup(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		removed, err := s.Cleanup()
		if err != nil {
			s.logger.Warn("export cleanup failed", zap.Error(err))
			return
		}
		if len(removed) > 0 {
			s.logger.Info("export cleanup removed files", zap.Int("count", len(removed)))
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule export cleanup %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}

func (s *ExportService) fail(id, message string) {
	finishedAt := s.now().UTC()
	job, ok := s.store.Update(id, func(j *models.ExportJob) {
		j.Status = models.ExportStatusFailed
		j.ErrorMessage = &message
		j.FinishedAt = &finishedAt
	})
	if ok {
		s.metrics.ObserveExportJob(string(job.Format), string(models.ExportStatusFailed))
	}
}

func (s *ExportService) buildDataset(ctx context.Context, day string) (export.Dataset, error) {
	entries, err := s.schedules.ListAll(ctx, day)
	if err != nil {
		return export.Dataset{}, err
	}
	rows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, map[string]string{
			"Day":            entry.Day,
			"Task":           entry.TaskName,
			"Start":          entry.StartTime,
			"End":            entry.EndTime,
			"Duration (min)": entryDuration(entry),
		})
	}
	title := "Weekly Schedule"
	if day != "" {
		title = fmt.Sprintf("%s Schedule", day)
	}
	return export.Dataset{Title: title, Headers: exportHeaders, Rows: rows}, nil
}

func entryDuration(entry models.ScheduleEntry) string {
	start, errStart := scheduler.ParseClock(entry.StartTime)
	end, errEnd := scheduler.ParseClock(entry.EndTime)
	if errStart != nil || errEnd != nil || end < start {
		return ""
	}
	return fmt.Sprintf("%d", end-start)
}

func (s *ExportService) buildFilename(job models.ExportJob, ext string) string {
	scope := "week"
	if job.Day != "" {
		scope = strings.ToLower(job.Day)
	}
	shortID := job.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	return fmt.Sprintf("schedule_%s_%s_%s.%s", scope, s.now().UTC().Format("20060102_150405"), shortID, ext)
}

func toExportJobResponse(job models.ExportJob) *dto.ExportJobResponse {
	return &dto.ExportJobResponse{
		ID:          job.ID,
		Format:      string(job.Format),
		Status:      string(job.Status),
		Day:         job.Day,
		DownloadURL: job.DownloadURL,
		ExpiresAt:   job.ExpiresAt,
		Error:       job.ErrorMessage,
	}
}
