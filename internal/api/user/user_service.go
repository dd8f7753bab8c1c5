package user

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

// Ensure implementation satisfies the interface
var _ UserService = (*UserServiceImpl)(nil)

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*types.UserProfile, error)
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// GetProfile returns the caller's profile without the password hash.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID int64) (*types.UserProfile, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "GetProfile", trace.WithAttributes(
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GetProfile"), slog.Int64("userID", userID))
	l.DebugContext(ctx, "Fetching user profile")

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		l.WarnContext(ctx, "Failed to fetch user profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch user profile")
		return nil, fmt.Errorf("error fetching user profile: %w", err)
	}

	span.SetStatus(codes.Ok, "User profile fetched")
	return u.Profile(), nil
}
