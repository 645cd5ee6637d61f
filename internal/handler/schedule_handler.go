package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/task-scheduler-api/internal/dto"
	"github.com/noah-isme/task-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/task-scheduler-api/pkg/errors"
	"github.com/noah-isme/task-scheduler-api/pkg/response"
)

type scheduleService interface {
	Create(ctx context.Context, req dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	ListTasks(ctx context.Context, query dto.ListQuery) ([]dto.TaskResponse, *models.Pagination, error)
	ListSchedules(ctx context.Context, query dto.ListQuery) ([]dto.ScheduleEntryResponse, *models.Pagination, error)
	DeleteSchedule(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

// ScheduleHandler manages schedule endpoints.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Create godoc
// @Summary Build a weekly schedule
// @Description Places each task's daily block inside the availability windows and stores the result.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.CreateScheduleRequest true "Tasks and availability"
// @Success 200 {object} response.Envelope{data=dto.ScheduleResponse}
// @Failure 400 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /schedule [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	schedule, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// ListTasks godoc
// @Summary List stored tasks
// @Tags Schedule
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope{data=[]dto.TaskResponse}
// @Router /schedule/tasks [get]
func (h *ScheduleHandler) ListTasks(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}
	tasks, pagination, err := h.service.ListTasks(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tasks, pagination)
}

// ListSchedules godoc
// @Summary List stored schedule rows
// @Tags Schedule
// @Produce json
// @Param day query string false "Weekday filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope{data=[]dto.ScheduleEntryResponse}
// @Router /schedule/schedules [get]
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}
	entries, pagination, err := h.service.ListSchedules(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// DeleteSchedule godoc
// @Summary Delete a schedule row
// @Tags Schedule
// @Param id path string true "Schedule ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /schedule/schedules/{id} [delete]
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	if err := h.service.DeleteSchedule(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteTask godoc
// @Summary Delete a task and its schedule rows
// @Tags Schedule
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /schedule/tasks/{id} [delete]
func (h *ScheduleHandler) DeleteTask(c *gin.Context) {
	if err := h.service.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindListQuery(c *gin.Context) (dto.ListQuery, bool) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return query, false
	}
	return query, true
}
