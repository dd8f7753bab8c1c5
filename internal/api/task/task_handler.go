package task

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-task-tracker/internal/api"
	"github.com/FACorreiaa/go-task-tracker/internal/api/auth"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListTasks(w http.ResponseWriter, r *http.Request)
	GetTask(w http.ResponseWriter, r *http.Request)
	CreateTask(w http.ResponseWriter, r *http.Request)
	UpdateTask(w http.ResponseWriter, r *http.Request)
	ChangeTaskStatus(w http.ResponseWriter, r *http.Request)
	ToggleTask(w http.ResponseWriter, r *http.Request)
	DeleteTask(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	taskService TaskService
	logger      *slog.Logger
}

func NewHandlerImpl(taskService TaskService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		taskService: taskService,
		logger:      logger,
	}
}

// caller returns the authenticated user id, answering 401 itself when absent.
func (h *HandlerImpl) caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "Identity claim not found in context", slog.String("path", r.URL.Path))
		api.ErrorResponse(w, r, http.StatusUnauthorized, types.ErrUnauthenticated.Error())
		return 0, false
	}
	return claim.UserID, true
}

// target resolves the caller and the {id} path parameter.
func (h *HandlerImpl) target(w http.ResponseWriter, r *http.Request) (taskID, callerID int64, ok bool) {
	callerID, ok = h.caller(w, r)
	if !ok {
		return 0, 0, false
	}
	taskID, err := api.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, r, err)
		return 0, 0, false
	}
	return taskID, callerID, true
}

func startSpan(r *http.Request, name string) (*http.Request, trace.Span) {
	ctx, span := otel.Tracer("TaskHandler").Start(r.Context(), name, trace.WithAttributes(
		attribute.String("http.method", r.Method),
		attribute.String("http.route", r.URL.Path),
	))
	return r.WithContext(ctx), span
}

// ListTasks godoc
// @Summary      List Tasks
// @Description  Lists the caller's tasks, newest first. Filters combine with AND.
// @Tags         Tasks
// @Produce      json
// @Param        done   query string false "Completion filter (true/false/1/0/yes/no)"
// @Param        status query string false "Status filter" Enums(pending, in_progress, completed)
// @Param        search query string false "Case-insensitive substring of title or description"
// @Success      200 {array}  types.Task
// @Failure      400 {object} types.Response "Invalid filter"
// @Failure      401 {object} types.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /tasks [get]
func (h *HandlerImpl) ListTasks(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "ListTasks")
	defer span.End()

	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	done, err := api.ParseBoolQuery(q, "done")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	status, err := api.ParseStatusQuery(q, "status")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	tasks, err := h.taskService.List(r.Context(), callerID, types.TaskFilter{
		Done:   done,
		Status: status,
		Search: strings.TrimSpace(q.Get("search")),
	})
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, tasks)
}

// GetTask godoc
// @Summary      Get Task
// @Tags         Tasks
// @Produce      json
// @Param        id path int true "Task ID"
// @Success      200 {object} types.Task
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Task Not Found"
// @Security     BearerAuth
// @Router       /tasks/{id} [get]
func (h *HandlerImpl) GetTask(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "GetTask")
	defer span.End()

	taskID, callerID, ok := h.target(w, r)
	if !ok {
		return
	}

	t, err := h.taskService.GetByID(r.Context(), taskID, callerID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, t)
}

// CreateTask godoc
// @Summary      Create Task
// @Description  Creates a task owned by the caller. Status defaults to pending.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task body types.CreateTaskParams true "Task"
// @Success      201 {object} types.Task
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *HandlerImpl) CreateTask(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "CreateTask")
	defer span.End()

	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var params types.CreateTaskParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.String("HandlerImpl", "CreateTask"), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.taskService.Create(r.Context(), params, callerID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, t)
}

// UpdateTask godoc
// @Summary      Update Task
// @Description  Merges the given fields into the task. A status in the body always decides done.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id   path int                    true "Task ID"
// @Param        task body types.UpdateTaskParams true "Fields to change"
// @Success      200 {object} types.Task
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Task Not Found"
// @Security     BearerAuth
// @Router       /tasks/{id} [put]
func (h *HandlerImpl) UpdateTask(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "UpdateTask")
	defer span.End()

	taskID, callerID, ok := h.target(w, r)
	if !ok {
		return
	}

	var params types.UpdateTaskParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.String("HandlerImpl", "UpdateTask"), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.taskService.Update(r.Context(), taskID, params, callerID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, t)
}

// ChangeTaskStatus godoc
// @Summary      Change Task Status
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id   path int                      true "Task ID"
// @Param        body body types.ChangeStatusParams true "New status"
// @Success      200 {object} types.Task
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Task Not Found"
// @Security     BearerAuth
// @Router       /tasks/{id}/status [patch]
func (h *HandlerImpl) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "ChangeTaskStatus")
	defer span.End()

	taskID, callerID, ok := h.target(w, r)
	if !ok {
		return
	}

	var params types.ChangeStatusParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.String("HandlerImpl", "ChangeTaskStatus"), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.taskService.ChangeStatus(r.Context(), taskID, callerID, params.Status)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, t)
}

// ToggleTask godoc
// @Summary      Toggle Task Completion
// @Description  Completed tasks go back to pending; anything else becomes completed.
// @Tags         Tasks
// @Produce      json
// @Param        id path int true "Task ID"
// @Success      200 {object} types.Task
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Task Not Found"
// @Security     BearerAuth
// @Router       /tasks/{id}/toggle [patch]
func (h *HandlerImpl) ToggleTask(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "ToggleTask")
	defer span.End()

	taskID, callerID, ok := h.target(w, r)
	if !ok {
		return
	}

	t, err := h.taskService.ToggleCompletion(r.Context(), taskID, callerID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, t)
}

// DeleteTask godoc
// @Summary      Delete Task
// @Tags         Tasks
// @Param        id path int true "Task ID"
// @Success      204 "No Content"
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Task Not Found"
// @Security     BearerAuth
// @Router       /tasks/{id} [delete]
func (h *HandlerImpl) DeleteTask(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "DeleteTask")
	defer span.End()

	taskID, callerID, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), taskID, callerID); err != nil {
		api.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
