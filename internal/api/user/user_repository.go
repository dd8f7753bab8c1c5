package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo is the credential store.
type UserRepo interface {
	// CreateUser inserts a new identity and returns it with its assigned id.
	// Returns types.ErrDuplicateIdentity if the email is taken.
	CreateUser(ctx context.Context, email, passwordHash string, name *string) (*types.User, error)
	// GetUserByEmail returns types.ErrNotFound if no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	// GetUserByID returns types.ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, userID int64) (*types.User, error)
}

type PostgresUserRepo struct {
	logger *slog.Logger
	pgpool database.Pool
}

func NewPostgresUserRepo(pgpool database.Pool, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const (
	insertUserQuery = `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, created_at, updated_at`

	selectUserColumns = `SELECT id, email, password_hash, COALESCE(name, ''), created_at, updated_at FROM users`

	selectUserByEmailQuery = selectUserColumns + ` WHERE email = $1`
	selectUserByIDQuery    = selectUserColumns + ` WHERE id = $1`
)

func (r *PostgresUserRepo) CreateUser(ctx context.Context, email, passwordHash string, name *string) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateUser"))

	var nameArg string
	if name != nil {
		nameArg = *name
	}

	u := &types.User{Email: email, PasswordHash: passwordHash}
	if nameArg != "" {
		u.Name = &nameArg
	}

	start := time.Now()
	err := r.pgpool.QueryRow(ctx, insertUserQuery, email, passwordHash, nameArg).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	metrics.Get().ObserveQuery(ctx, "users.insert", start, err)
	if err != nil {
		span.RecordError(err)
		if database.IsUniqueViolation(err) {
			l.WarnContext(ctx, "Email already registered")
			span.SetStatus(codes.Error, "Duplicate email")
			return nil, types.ErrDuplicateIdentity
		}
		l.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		span.SetStatus(codes.Error, "DB insert failed")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	span.SetAttributes(attribute.Int64("user.id", u.ID))
	span.SetStatus(codes.Ok, "User created")
	l.InfoContext(ctx, "User created", slog.Int64("userID", u.ID))
	return u, nil
}

func (r *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUserByEmail", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	return r.getUser(ctx, span, "users.select_by_email", selectUserByEmailQuery, email)
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, userID int64) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUserByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	return r.getUser(ctx, span, "users.select_by_id", selectUserByIDQuery, userID)
}

func (r *PostgresUserRepo) getUser(ctx context.Context, span trace.Span, op, query string, arg any) (*types.User, error) {
	l := r.logger.With(slog.String("method", "getUser"), slog.String("operation", op))

	var u types.User
	var name string
	start := time.Now()
	err := r.pgpool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.Get().ObserveQuery(ctx, op, start, nil)
		span.SetStatus(codes.Ok, "User not found")
		return nil, fmt.Errorf("user lookup: %w", types.ErrNotFound)
	}
	metrics.Get().ObserveQuery(ctx, op, start, err)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if name != "" {
		u.Name = &name
	}

	span.SetStatus(codes.Ok, "User found")
	return &u, nil
}
