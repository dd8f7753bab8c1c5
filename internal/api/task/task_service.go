package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-task-tracker/app/observability/metrics"
	"github.com/FACorreiaa/go-task-tracker/internal/api"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

// Ensure implementation satisfies the interface
var _ TaskService = (*TaskServiceImpl)(nil)

// TaskService holds the task rules. Every call is made on behalf of callerID
// and can only see that caller's tasks.
type TaskService interface {
	List(ctx context.Context, callerID int64, filter types.TaskFilter) ([]types.Task, error)
	GetByID(ctx context.Context, taskID, callerID int64) (*types.Task, error)
	Create(ctx context.Context, params types.CreateTaskParams, callerID int64) (*types.Task, error)
	Update(ctx context.Context, taskID int64, params types.UpdateTaskParams, callerID int64) (*types.Task, error)
	ChangeStatus(ctx context.Context, taskID, callerID int64, status types.TaskStatus) (*types.Task, error)
	ToggleCompletion(ctx context.Context, taskID, callerID int64) (*types.Task, error)
	Delete(ctx context.Context, taskID, callerID int64) error
}

type TaskServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewTaskService(repo Repository, logger *slog.Logger) *TaskServiceImpl {
	return &TaskServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// storeError keeps domain errors as they are and files anything else from
// the store under ErrInvalidArgument, carrying the original message.
func storeError(err error) error {
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%w: %w", types.ErrInvalidArgument, err)
}

func checkIDs(ids ...int64) error {
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: ids must be positive, got %d", types.ErrInvalidArgument, id)
		}
	}
	return nil
}

func (s *TaskServiceImpl) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span, *slog.Logger) {
	ctx, span := otel.Tracer("TaskService").Start(ctx, op, trace.WithAttributes(attrs...))
	return ctx, span, s.logger.With(slog.String("method", op))
}

func fail(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}

func (s *TaskServiceImpl) List(ctx context.Context, callerID int64, filter types.TaskFilter) (tasks []types.Task, err error) {
	ctx, span, l := s.start(ctx, "List", attribute.Int64("caller.id", callerID))
	defer span.End()
	defer func() { metrics.Get().RecordTaskOperation(ctx, "list", err) }()

	if err := checkIDs(callerID); err != nil {
		fail(span, err, "Invalid caller")
		return nil, err
	}
	if filter.Status != nil && !filter.Status.Valid() {
		err := fmt.Errorf("%w: invalid task status %q", types.ErrInvalidArgument, *filter.Status)
		fail(span, err, "Invalid filter")
		return nil, err
	}

	tasks, err = s.repo.List(ctx, callerID, filter)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list tasks", slog.Any("error", err))
		fail(span, err, "List failed")
		return nil, storeError(err)
	}
	if tasks == nil {
		tasks = []types.Task{}
	}

	l.DebugContext(ctx, "Tasks listed", slog.Int("count", len(tasks)))
	span.SetStatus(codes.Ok, "Tasks listed")
	return tasks, nil
}

func (s *TaskServiceImpl) GetByID(ctx context.Context, taskID, callerID int64) (t *types.Task, err error) {
	ctx, span, l := s.start(ctx, "GetByID", attribute.Int64("task.id", taskID), attribute.Int64("caller.id", callerID))
	defer span.End()
	defer func() { metrics.Get().RecordTaskOperation(ctx, "get", err) }()

	if err := checkIDs(taskID, callerID); err != nil {
		fail(span, err, "Invalid id")
		return nil, err
	}

	t, err = s.repo.GetByID(ctx, taskID, callerID)
	if err != nil {
		l.DebugContext(ctx, "Task lookup failed", slog.Int64("taskID", taskID), slog.Any("error", err))
		fail(span, err, "Get failed")
		return nil, storeError(err)
	}

	span.SetStatus(codes.Ok, "Task found")
	return t, nil
}

func (s *TaskServiceImpl) Create(ctx context.Context, params types.CreateTaskParams, callerID int64) (t *types.Task, err error) {
	ctx, span, l := s.start(ctx, "Create", attribute.Int64("caller.id", callerID))
	defer span.End()
	defer func() { metrics.Get().RecordTaskOperation(ctx, "create", err) }()

	if err := checkIDs(callerID); err != nil {
		fail(span, err, "Invalid caller")
		return nil, err
	}

	title := strings.TrimSpace(params.Title)
	v := api.NewValidator()
	v.CheckTitle(title)
	v.CheckDescription(params.Description)
	v.CheckStatus(params.Status)
	if err := v.Err(); err != nil {
		fail(span, err, "Validation failed")
		return nil, err
	}

	t = &types.Task{OwnerID: callerID, Title: title}
	if params.Description != nil {
		t.Description = *params.Description
	}
	status := types.TaskStatusPending
	if params.Status != nil {
		status = *params.Status
	}
	t.SetStatus(status)

	if err := s.repo.Create(ctx, t); err != nil {
		l.ErrorContext(ctx, "Failed to create task", slog.Any("error", err))
		fail(span, err, "Create failed")
		return nil, storeError(err)
	}

	l.InfoContext(ctx, "Task created", slog.Int64("taskID", t.ID), slog.Int64("ownerID", callerID))
	span.SetStatus(codes.Ok, "Task created")
	return t, nil
}

// applyUpdate merges params into t. A present status always decides done; a
// lone done moves the status to match it.
func applyUpdate(t *types.Task, params types.UpdateTaskParams, title *string) {
	if title != nil {
		t.Title = *title
	}
	if params.Description != nil {
		t.Description = *params.Description
	}

	switch {
	case params.Status != nil:
		t.SetStatus(*params.Status)
	case params.Done != nil && *params.Done:
		t.SetStatus(types.TaskStatusCompleted)
	case params.Done != nil && t.Status == types.TaskStatusCompleted:
		t.SetStatus(types.TaskStatusPending)
	default:
		t.SetStatus(t.Status)
	}
}

func (s *TaskServiceImpl) Update(ctx context.Context, taskID int64, params types.UpdateTaskParams, callerID int64) (t *types.Task, err error) {
	ctx, span, l := s.start(ctx, "Update", attribute.Int64("task.id", taskID), attribute.Int64("caller.id", callerID))
	defer span.End()
	defer func() { metrics.Get().RecordTaskOperation(ctx, "update", err) }()

	if err := checkIDs(taskID, callerID); err != nil {
		fail(span, err, "Invalid id")
		return nil, err
	}
	if params.IsEmpty() {
		err := fmt.Errorf("%w: update must set at least one field", types.ErrInvalidArgument)
		fail(span, err, "Empty update")
		return nil, err
	}

	var title *string
	v := api.NewValidator()
	if params.Title != nil {
		trimmed := strings.TrimSpace(*params.Title)
		title = &trimmed
		v.CheckTitle(trimmed)
	}
	v.CheckDescription(params.Description)
	v.CheckStatus(params.Status)
	if err := v.Err(); err != nil {
		fail(span, err, "Validation failed")
		return nil, err
	}

	t, err = s.repo.Mutate(ctx, taskID, callerID, func(task *types.Task) error {
		applyUpdate(task, params, title)
		return nil
	})
	if err != nil {
		l.WarnContext(ctx, "Failed to update task", slog.Int64("taskID", taskID), slog.Any("error", err))
		fail(span, err, "Update failed")
		return nil, storeError(err)
	}

	l.InfoContext(ctx, "Task updated", slog.Int64("taskID", taskID))
	span.SetStatus(codes.Ok, "Task updated")
	return t, nil
}

func (s *TaskServiceImpl) ChangeStatus(ctx context.Context, taskID, callerID int64, status types.TaskStatus) (t *types.Task, err error) {
	ctx, span, l := s.start(ctx, "ChangeStatus",
		attribute.Int64("task.id", taskID),
		attribute.Int64("caller.id", callerID),
		attribute.String("task.status", string(status)),
	)
	defer span.End()
	defer func() { metrics.Get().RecordTaskOperation(ctx, "change_status", err) }()

	if err := checkIDs(taskID, callerID); err != nil {
		fail(span, err, "Invalid id")
		return nil, err
	}
	if _, err := types.ParseTaskStatus(string(status)); err != nil {
		fail(span, err, "Invalid status")
		return nil, err
	}

	t, err = s.repo.Mutate(ctx, taskID, callerID, func(task *types.Task) error {
		task.SetStatus(status)
		return nil
	})
	if err != nil {
		l.WarnContext(ctx, "Failed to change task status", slog.Int64("taskID", taskID), slog.Any("error", err))
		fail(span, err, "Change status failed")
		return nil, storeError(err)
	}

	l.InfoContext(ctx, "Task status changed", slog.Int64("taskID", taskID), slog.String("status", string(status)))
	span.SetStatus(codes.Ok, "Task status changed")
	return t, nil
}

func (s *TaskServiceImpl) ToggleCompletion(ctx context.Context, taskID, callerID int64) (t *types.Task, err error) {
	ctx, span, l := s.start(ctx, "ToggleCompletion", attribute.Int64("task.id", taskID), attribute.Int64("caller.id", callerID))
	defer span.End()
	defer func() { metrics.Get().RecordTaskOperation(ctx, "toggle", err) }()

	if err := checkIDs(taskID, callerID); err != nil {
		fail(span, err, "Invalid id")
		return nil, err
	}

	t, err = s.repo.Mutate(ctx, taskID, callerID, func(task *types.Task) error {
		if task.Status == types.TaskStatusCompleted {
			task.SetStatus(types.TaskStatusPending)
		} else {
			task.SetStatus(types.TaskStatusCompleted)
		}
		return nil
	})
	if err != nil {
		l.WarnContext(ctx, "Failed to toggle task", slog.Int64("taskID", taskID), slog.Any("error", err))
		fail(span, err, "Toggle failed")
		return nil, storeError(err)
	}

	l.InfoContext(ctx, "Task toggled", slog.Int64("taskID", taskID), slog.Bool("done", t.Done))
	span.SetStatus(codes.Ok, "Task toggled")
	return t, nil
}

func (s *TaskServiceImpl) Delete(ctx context.Context, taskID, callerID int64) (err error) {
	ctx, span, l := s.start(ctx, "Delete", attribute.Int64("task.id", taskID), attribute.Int64("caller.id", callerID))
	defer span.End()
	defer func() { metrics.Get().RecordTaskOperation(ctx, "delete", err) }()

	if err := checkIDs(taskID, callerID); err != nil {
		fail(span, err, "Invalid id")
		return err
	}

	if err := s.repo.Delete(ctx, taskID, callerID); err != nil {
		l.WarnContext(ctx, "Failed to delete task", slog.Int64("taskID", taskID), slog.Any("error", err))
		fail(span, err, "Delete failed")
		return storeError(err)
	}

	l.InfoContext(ctx, "Task deleted", slog.Int64("taskID", taskID))
	span.SetStatus(codes.Ok, "Task deleted")
	return nil
}
