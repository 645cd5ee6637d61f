package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/task-scheduler-api/internal/dto"
	"github.com/noah-isme/task-scheduler-api/internal/models"
	"github.com/noah-isme/task-scheduler-api/internal/scheduler"
	appErrors "github.com/noah-isme/task-scheduler-api/pkg/errors"
)

const scheduleCacheLabel = "result"

type scheduleEngine interface {
	Run(ctx context.Context, in scheduler.Input) (*scheduler.Result, error)
}

type taskStore interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error)
	ReplaceAllWithTx(ctx context.Context, exec sqlx.ExtContext, tasks []models.Task) error
	Delete(ctx context.Context, id string) error
}

type timeSlotStore interface {
	ReplaceAllWithTx(ctx context.Context, exec sqlx.ExtContext, slots []models.TimeSlot) error
}

type scheduleStore interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, int, error)
	InsertWithTx(ctx context.Context, exec sqlx.ExtContext, entries []models.ScheduleEntry) error
	Delete(ctx context.Context, id string) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// ScheduleService runs the engine for API callers and keeps the last request and its
// schedule in the database.
type ScheduleService struct {
	engine    scheduleEngine
	tasks     taskStore
	slots     timeSlotStore
	schedules scheduleStore
	tx        txProvider
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduleService wires scheduling dependencies. A nil tx disables persistence.
func NewScheduleService(
	engine scheduleEngine,
	tasks taskStore,
	slots timeSlotStore,
	schedules scheduleStore,
	tx txProvider,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		engine:    engine,
		tasks:     tasks,
		slots:     slots,
		schedules: schedules,
		tx:        tx,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the date used for deadlines and cache keys.
func (s *ScheduleService) WithClock(now func() time.Time) *ScheduleService {
	if now != nil {
		s.now = now
	}
	return s
}

type scheduleCacheKey struct {
	Request dto.CreateScheduleRequest `json:"request"`
	Date    string                    `json:"date"`
}

// Create builds a schedule for the request and replaces the stored tasks, windows and
// schedule with it. Identical requests on the same day are answered from cache.
func (s *ScheduleService) Create(ctx context.Context, req dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	today := s.now()
	var cacheKey string
	if s.cache.Enabled() {
		key, err := s.cache.Key(scheduleCacheLabel, scheduleCacheKey{Request: req, Date: today.Format(scheduler.DeadlineLayout)})
		if err == nil {
			cacheKey = key
		}
	}

	var resp dto.ScheduleResponse
	hit := false
	if cacheKey != "" {
		hit, _ = s.cache.Get(ctx, cacheKey, &resp)
	}
	if !hit {
		result, err := s.engine.Run(ctx, toEngineInput(req, today))
		if err != nil {
			return nil, mapEngineError(err)
		}
		s.metrics.ObserveScheduleRun(string(result.Status), string(result.Diagnostics.SolverStatus), result.Diagnostics.Elapsed, result.Diagnostics.Candidates)
		s.logger.Info("schedule computed",
			zap.String("status", string(result.Status)),
			zap.String("solver_status", string(result.Diagnostics.SolverStatus)),
			zap.Int("tasks", len(req.Tasks)),
			zap.Duration("solve", result.Diagnostics.Elapsed),
		)
		resp = toScheduleResponse(result)
		if cacheKey != "" {
			_ = s.cache.Set(ctx, cacheKey, resp, 0)
		}
	}

	if err := s.persist(ctx, req, resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTasks returns stored tasks.
func (s *ScheduleService) ListTasks(ctx context.Context, query dto.ListQuery) ([]dto.TaskResponse, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query")
	}
	filter := models.TaskFilter{Page: query.Page, PageSize: query.PageSize}
	tasks, total, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}
	items := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		item := dto.TaskResponse{ID: task.ID, TaskName: task.Name, HoursPerDay: task.HoursPerDay}
		if task.Deadline != nil {
			deadline := task.Deadline.Format(scheduler.DeadlineLayout)
			item.Deadline = &deadline
		}
		items = append(items, item)
	}
	return items, pagination(filter.Page, filter.PageSize, len(items), total), nil
}

// ListSchedules returns stored schedule rows, optionally for one weekday.
func (s *ScheduleService) ListSchedules(ctx context.Context, query dto.ListQuery) ([]dto.ScheduleEntryResponse, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query")
	}
	filter := models.ScheduleFilter{Page: query.Page, PageSize: query.PageSize}
	if query.Day != "" {
		day, err := scheduler.ParseWeekday(query.Day)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
		filter.Day = day.String()
	}
	entries, total, err := s.schedules.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	items := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.ScheduleEntryResponse{
			ID:        entry.ID,
			TaskID:    entry.TaskID,
			TaskName:  entry.TaskName,
			Day:       entry.Day,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		})
	}
	return items, pagination(filter.Page, filter.PageSize, len(items), total), nil
}

// DeleteSchedule removes one stored schedule row.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, id string) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		return mapDeleteError(err, "schedule not found", "failed to delete schedule")
	}
	s.dropCachedResults(ctx)
	return nil
}

// DeleteTask removes a stored task together with its schedule rows.
func (s *ScheduleService) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return mapDeleteError(err, "task not found", "failed to delete task")
	}
	s.dropCachedResults(ctx)
	return nil
}

// dropCachedResults makes the next request re-solve after stored data was edited by hand.
func (s *ScheduleService) dropCachedResults(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, scheduleCacheLabel); err != nil {
		s.logger.Warn("failed to invalidate schedule cache", zap.Error(err))
	}
}

func (s *ScheduleService) persist(ctx context.Context, req dto.CreateScheduleRequest, resp dto.ScheduleResponse) (err error) {
	if s.tx == nil {
		return nil
	}

	tasks := make([]models.Task, 0, len(req.Tasks))
	for _, task := range req.Tasks {
		tasks = append(tasks, models.Task{
			Name:        strings.TrimSpace(task.TaskName),
			HoursPerDay: task.HoursPerDay,
			Deadline:    parseDeadline(task.Deadline),
		})
	}
	slots := toTimeSlots(req.AvailableTime)

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.tasks.ReplaceAllWithTx(ctx, tx, tasks); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store tasks")
	}
	if err = s.slots.ReplaceAllWithTx(ctx, tx, slots); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store time slots")
	}

	taskIDs := make(map[string]string, len(tasks))
	for _, task := range tasks {
		taskIDs[task.Name] = task.ID
	}
	var entries []models.ScheduleEntry
	for _, day := range resp.Schedule {
		for _, item := range day.Tasks {
			entries = append(entries, models.ScheduleEntry{
				Day:       day.Day,
				TaskID:    taskIDs[item.TaskName],
				TaskName:  item.TaskName,
				StartTime: item.StartTime,
				EndTime:   item.EndTime,
			})
		}
	}
	if err = s.schedules.InsertWithTx(ctx, tx, entries); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store schedule")
	}

	if err = tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule transaction")
	}
	return nil
}

func toEngineInput(req dto.CreateScheduleRequest, today time.Time) scheduler.Input {
	in := scheduler.Input{
		Tasks:        make([]scheduler.Task, 0, len(req.Tasks)),
		Availability: make(map[string][]scheduler.ClockWindow, len(req.AvailableTime)),
		Today:        today,
	}
	for _, task := range req.Tasks {
		item := scheduler.Task{Name: task.TaskName, HoursPerDay: task.HoursPerDay}
		if task.Deadline != nil {
			item.Deadline = *task.Deadline
		}
		in.Tasks = append(in.Tasks, item)
	}
	for day, windows := range req.AvailableTime {
		for _, window := range windows {
			in.Availability[day] = append(in.Availability[day], scheduler.ClockWindow{Start: window.Start, End: window.End})
		}
	}
	return in
}

func toScheduleResponse(result *scheduler.Result) dto.ScheduleResponse {
	resp := dto.ScheduleResponse{
		Schedule:     make([]dto.DayScheduleResponse, 0, len(result.Schedule)),
		Status:       string(result.Status),
		Message:      result.Message,
		ReducedHours: result.ReducedMinutes,
	}
	for _, day := range result.Schedule {
		items := make([]dto.ScheduledTaskResponse, 0, len(day.Assignments))
		for _, a := range day.Assignments {
			items = append(items, dto.ScheduledTaskResponse{
				TaskName:  a.Task,
				StartTime: scheduler.FormatClock(a.Start),
				EndTime:   scheduler.FormatClock(a.End()),
				Duration:  a.Duration,
				Priority:  a.Priority,
			})
		}
		resp.Schedule = append(resp.Schedule, dto.DayScheduleResponse{Day: day.Day.String(), Tasks: items})
	}
	return resp
}

// toTimeSlots canonicalises labels and clock text of already validated windows.
func toTimeSlots(available map[string][]dto.TimeWindowRequest) []models.TimeSlot {
	var slots []models.TimeSlot
	for label, windows := range available {
		day, err := scheduler.ParseWeekday(label)
		if err != nil {
			continue
		}
		for _, window := range windows {
			start, errStart := scheduler.ParseClock(window.Start)
			end, errEnd := scheduler.ParseClock(window.End)
			if errStart != nil || errEnd != nil {
				continue
			}
			slots = append(slots, models.TimeSlot{
				DayOfWeek: day.String(),
				StartTime: scheduler.FormatClock(start),
				EndTime:   scheduler.FormatClock(end),
			})
		}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		di, _ := scheduler.ParseWeekday(slots[i].DayOfWeek)
		dj, _ := scheduler.ParseWeekday(slots[j].DayOfWeek)
		if di != dj {
			return di < dj
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots
}

func parseDeadline(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	deadline, err := time.Parse(scheduler.DeadlineLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil
	}
	return &deadline
}

func mapEngineError(err error) error {
	switch {
	case errors.Is(err, scheduler.ErrInvalidTimeFormat):
		return appErrors.Wrap(err, appErrors.ErrInvalidTimeFormat.Code, appErrors.ErrInvalidTimeFormat.Status, err.Error())
	case errors.Is(err, scheduler.ErrInvalidDay), errors.Is(err, scheduler.ErrInvalidWindow), errors.Is(err, scheduler.ErrInvalidTask):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build schedule")
	}
}

func mapDeleteError(err error, notFound, internal string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internal)
}

func pagination(page, size, count, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = count
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}
