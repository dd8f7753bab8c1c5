package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-task-tracker/app/db"
	"github.com/FACorreiaa/go-task-tracker/app/observability/metrics"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ Repository = (*PostgresTaskRepo)(nil)

// MutateFunc edits a locked copy of a task in place. Returning an error
// aborts the write.
type MutateFunc func(task *types.Task) error

// Repository is the task store. Every lookup is scoped by owner, so a task
// owned by someone else reads as types.ErrNotFound.
type Repository interface {
	List(ctx context.Context, ownerID int64, filter types.TaskFilter) ([]types.Task, error)
	GetByID(ctx context.Context, taskID, ownerID int64) (*types.Task, error)
	// Create inserts task and fills in its id and timestamps.
	Create(ctx context.Context, task *types.Task) error
	// Mutate locks the row, applies fn and saves the result in one transaction.
	Mutate(ctx context.Context, taskID, ownerID int64, fn MutateFunc) (*types.Task, error)
	Delete(ctx context.Context, taskID, ownerID int64) error
}

type PostgresTaskRepo struct {
	logger *slog.Logger
	pgpool database.Pool
}

func NewPostgresTaskRepo(pgpool database.Pool, logger *slog.Logger) *PostgresTaskRepo {
	return &PostgresTaskRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const (
	selectTaskColumns = `SELECT id, owner_id, title, description, status::text, done, created_at, updated_at FROM tasks`

	selectTaskQuery          = selectTaskColumns + ` WHERE id = $1 AND owner_id = $2`
	selectTaskForUpdateQuery = selectTaskQuery + ` FOR UPDATE`

	listOrderClause = ` ORDER BY created_at DESC, id DESC`

	insertTaskQuery = `
		INSERT INTO tasks (owner_id, title, description, status, done)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	updateTaskQuery = `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, done = $4, updated_at = now()
		WHERE id = $5 AND owner_id = $6
		RETURNING updated_at`

	deleteTaskQuery = `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListQuery returns the owner-scoped select plus its arguments, adding
// one predicate per filter field that is set.
func buildListQuery(ownerID int64, filter types.TaskFilter) (string, []any) {
	conditions := []string{"owner_id = $1"}
	args := []any{ownerID}
	argID := 2

	if filter.Done != nil {
		conditions = append(conditions, fmt.Sprintf("done = $%d", argID))
		args = append(args, *filter.Done)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, string(*filter.Status))
		argID++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\')`, argID, argID))
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
	}

	return selectTaskColumns + " WHERE " + strings.Join(conditions, " AND ") + listOrderClause, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (types.Task, error) {
	var t types.Task
	var status string
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &status, &t.Done, &t.CreatedAt, &t.UpdatedAt)
	t.Status = types.TaskStatus(status)
	return t, err
}

func (r *PostgresTaskRepo) List(ctx context.Context, ownerID int64, filter types.TaskFilter) ([]types.Task, error) {
	ctx, span := otel.Tracer("TaskRepo").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "tasks"),
		attribute.Int64("owner.id", ownerID),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "List"), slog.Int64("ownerID", ownerID))

	query, args := buildListQuery(ownerID, filter)

	start := time.Now()
	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		metrics.Get().ObserveQuery(ctx, "tasks.list", start, err)
		l.ErrorContext(ctx, "Failed to query tasks", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]types.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			metrics.Get().ObserveQuery(ctx, "tasks.list", start, err)
			l.ErrorContext(ctx, "Failed to scan task row", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Scan failed")
			return nil, fmt.Errorf("error scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	err = rows.Err()
	metrics.Get().ObserveQuery(ctx, "tasks.list", start, err)
	if err != nil {
		l.ErrorContext(ctx, "Error iterating task rows", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row iteration failed")
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	span.SetAttributes(attribute.Int("tasks.count", len(tasks)))
	span.SetStatus(codes.Ok, "Tasks listed")
	return tasks, nil
}

func (r *PostgresTaskRepo) GetByID(ctx context.Context, taskID, ownerID int64) (*types.Task, error) {
	ctx, span := otel.Tracer("TaskRepo").Start(ctx, "GetByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "tasks"),
		attribute.Int64("task.id", taskID),
		attribute.Int64("owner.id", ownerID),
	))
	defer span.End()

	start := time.Now()
	t, err := scanTask(r.pgpool.QueryRow(ctx, selectTaskQuery, taskID, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.Get().ObserveQuery(ctx, "tasks.get", start, nil)
		span.SetStatus(codes.Ok, "Task not found")
		return nil, fmt.Errorf("task %d: %w", taskID, types.ErrNotFound)
	}
	metrics.Get().ObserveQuery(ctx, "tasks.get", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to fetch task", slog.String("method", "GetByID"), slog.Int64("taskID", taskID), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("error fetching task: %w", err)
	}

	span.SetStatus(codes.Ok, "Task found")
	return &t, nil
}

func (r *PostgresTaskRepo) Create(ctx context.Context, task *types.Task) error {
	ctx, span := otel.Tracer("TaskRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "tasks"),
		attribute.Int64("owner.id", task.OwnerID),
	))
	defer span.End()

	start := time.Now()
	err := r.pgpool.QueryRow(ctx, insertTaskQuery,
		task.OwnerID, task.Title, task.Description, string(task.Status), task.Done,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	metrics.Get().ObserveQuery(ctx, "tasks.insert", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert task", slog.String("method", "Create"), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB insert failed")
		return fmt.Errorf("error creating task: %w", err)
	}

	span.SetAttributes(attribute.Int64("task.id", task.ID))
	span.SetStatus(codes.Ok, "Task created")
	return nil
}

func (r *PostgresTaskRepo) Mutate(ctx context.Context, taskID, ownerID int64, fn MutateFunc) (*types.Task, error) {
	ctx, span := otel.Tracer("TaskRepo").Start(ctx, "Mutate", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "tasks"),
		attribute.Int64("task.id", taskID),
		attribute.Int64("owner.id", ownerID),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Mutate"), slog.Int64("taskID", taskID))
	start := time.Now()

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		metrics.Get().ObserveQuery(ctx, "tasks.mutate", start, err)
		l.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Begin failed")
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	abort := func(err error, msg string) (*types.Task, error) {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			l.ErrorContext(ctx, "Failed to roll back transaction", slog.Any("error", rbErr))
		}
		span.SetStatus(codes.Error, msg)
		return nil, err
	}

	t, err := scanTask(tx.QueryRow(ctx, selectTaskForUpdateQuery, taskID, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.Get().ObserveQuery(ctx, "tasks.mutate", start, nil)
		return abort(fmt.Errorf("task %d: %w", taskID, types.ErrNotFound), "Task not found")
	}
	if err != nil {
		metrics.Get().ObserveQuery(ctx, "tasks.mutate", start, err)
		l.ErrorContext(ctx, "Failed to lock task", slog.Any("error", err))
		span.RecordError(err)
		return abort(fmt.Errorf("error locking task: %w", err), "Select for update failed")
	}

	if err := fn(&t); err != nil {
		metrics.Get().ObserveQuery(ctx, "tasks.mutate", start, nil)
		return abort(err, "Mutation rejected")
	}
	// ownership and identity are not the mutation's to change
	t.ID, t.OwnerID = taskID, ownerID

	err = tx.QueryRow(ctx, updateTaskQuery,
		t.Title, t.Description, string(t.Status), t.Done, taskID, ownerID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		metrics.Get().ObserveQuery(ctx, "tasks.mutate", start, err)
		l.ErrorContext(ctx, "Failed to update task", slog.Any("error", err))
		span.RecordError(err)
		return abort(fmt.Errorf("error updating task: %w", err), "Update failed")
	}

	err = tx.Commit(ctx)
	metrics.Get().ObserveQuery(ctx, "tasks.mutate", start, err)
	if err != nil {
		l.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Commit failed")
		return nil, fmt.Errorf("error committing task update: %w", err)
	}

	span.SetStatus(codes.Ok, "Task updated")
	return &t, nil
}

func (r *PostgresTaskRepo) Delete(ctx context.Context, taskID, ownerID int64) error {
	ctx, span := otel.Tracer("TaskRepo").Start(ctx, "Delete", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "tasks"),
		attribute.Int64("task.id", taskID),
		attribute.Int64("owner.id", ownerID),
	))
	defer span.End()

	start := time.Now()
	tag, err := r.pgpool.Exec(ctx, deleteTaskQuery, taskID, ownerID)
	metrics.Get().ObserveQuery(ctx, "tasks.delete", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete task", slog.String("method", "Delete"), slog.Int64("taskID", taskID), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB delete failed")
		return fmt.Errorf("error deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Ok, "Task not found")
		return fmt.Errorf("task %d: %w", taskID, types.ErrNotFound)
	}

	span.SetStatus(codes.Ok, "Task deleted")
	return nil
}
