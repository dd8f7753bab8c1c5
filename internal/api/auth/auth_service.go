package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-task-tracker/app/observability/metrics"
	"github.com/FACorreiaa/go-task-tracker/internal/api"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)
var _ PasswordHasher = (*BcryptHasher)(nil)

// DefaultBcryptCost is the work factor for stored password hashes.
const DefaultBcryptCost = 10

type AuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*types.TokenResponse, error)
	Login(ctx context.Context, req types.LoginRequest) (*types.TokenResponse, error)
}

// CredentialStore is the slice of the user repository the identity service needs.
type CredentialStore interface {
	CreateUser(ctx context.Context, email, passwordHash string, name *string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil only when password matches hash.
	Compare(hash, password string) error
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type AuthServiceImpl struct {
	logger *slog.Logger
	store  CredentialStore
	hasher PasswordHasher
	tokens TokenManager
	// compared against on unknown emails so both login failures cost the same
	dummyHash string
}

func NewAuthService(store CredentialStore, hasher PasswordHasher, tokens TokenManager, logger *slog.Logger) (*AuthServiceImpl, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &AuthServiceImpl{
		logger:    logger,
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
	}, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, req types.RegisterRequest) (resp *types.TokenResponse, err error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Register")
	defer span.End()
	defer func() { metrics.Get().RecordRegister(ctx, err) }()

	l := s.logger.With(slog.String("method", "Register"))

	v := api.NewValidator()
	v.CheckEmail(req.Email)
	v.CheckPassword(req.Password)
	v.CheckName(req.Name)
	if err := v.Err(); err != nil {
		l.InfoContext(ctx, "Registration rejected by validation", slog.Any("fields", v.Errors))
		span.SetStatus(codes.Error, "Validation failed")
		return nil, err
	}

	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		l.InfoContext(ctx, "Registration rejected, email already in use")
		span.SetStatus(codes.Error, "Duplicate identity")
		return nil, types.ErrDuplicateIdentity
	case err != nil && !errors.Is(err, types.ErrNotFound):
		l.ErrorContext(ctx, "Failed to check existing email", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lookup failed")
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Hash failed")
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, req.Email, hashed, req.Name)
	if err != nil {
		// a concurrent registration can still win the unique index
		l.WarnContext(ctx, "Failed to create user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Create failed")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Token issue failed")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	l.InfoContext(ctx, "User registered", slog.Int64("userID", u.ID))
	span.SetStatus(codes.Ok, "User registered")
	return &types.TokenResponse{AccessToken: token}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req types.LoginRequest) (resp *types.TokenResponse, err error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login")
	defer span.End()
	defer func() { metrics.Get().RecordLogin(ctx, err) }()

	l := s.logger.With(slog.String("method", "Login"))

	v := api.NewValidator()
	v.Check(req.Email != "", "email", "must be provided")
	v.Check(req.Password != "", "password", "must be provided")
	if err := v.Err(); err != nil {
		span.SetStatus(codes.Error, "Validation failed")
		return nil, err
	}

	u, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			_ = s.hasher.Compare(s.dummyHash, req.Password)
			l.InfoContext(ctx, "Login failed")
			span.SetStatus(codes.Error, "Invalid credentials")
			return nil, types.ErrInvalidCredentials
		}
		l.ErrorContext(ctx, "Failed to look up user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lookup failed")
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, req.Password); err != nil {
		l.InfoContext(ctx, "Login failed")
		span.SetStatus(codes.Error, "Invalid credentials")
		return nil, types.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Token issue failed")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	l.InfoContext(ctx, "User logged in", slog.Int64("userID", u.ID))
	span.SetStatus(codes.Ok, "User logged in")
	return &types.TokenResponse{AccessToken: token}, nil
}
