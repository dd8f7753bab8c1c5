package container

import (
	"fmt"
	"log/slog"

	database "github.com/FACorreiaa/go-task-tracker/app/db"
	appMiddleware "github.com/FACorreiaa/go-task-tracker/app/middleware"
	"github.com/FACorreiaa/go-task-tracker/config"
	"github.com/FACorreiaa/go-task-tracker/internal/api/auth"
	"github.com/FACorreiaa/go-task-tracker/internal/api/health"
	"github.com/FACorreiaa/go-task-tracker/internal/api/task"
	"github.com/FACorreiaa/go-task-tracker/internal/api/user"
	"github.com/FACorreiaa/go-task-tracker/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	Pool          database.Pool
	Tokens        *auth.JWTManager
	AuthHandler   *auth.AuthHandlerImpl
	UserHandler   *user.HandlerImpl
	TaskHandler   *task.HandlerImpl
	HealthHandler *health.HandlerImpl
	RateLimiter   *appMiddleware.RateLimiter
}

// NewContainer wires repositories, services and handlers on top of an
// already initialised pool. The caller owns the pool.
func NewContainer(cfg *config.Config, pool database.Pool, logger *slog.Logger) (*Container, error) {
	tokens, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	userRepo := user.NewPostgresUserRepo(pool, logger)
	userService := user.NewUserService(userRepo, logger)
	userHandler := user.NewHandlerImpl(userService, logger)

	authService, err := auth.NewAuthService(userRepo, auth.BcryptHasher{Cost: auth.DefaultBcryptCost}, tokens, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	authHandler := auth.NewAuthHandlerImpl(authService, logger)

	taskRepo := task.NewPostgresTaskRepo(pool, logger)
	taskService := task.NewTaskService(taskRepo, logger)
	taskHandler := task.NewHandlerImpl(taskService, logger)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Pool:          pool,
		Tokens:        tokens,
		AuthHandler:   authHandler,
		UserHandler:   userHandler,
		TaskHandler:   taskHandler,
		HealthHandler: health.NewHandlerImpl(pool, cfg.Mode, logger),
		RateLimiter:   appMiddleware.NewRateLimiter(cfg.RateLimit, logger),
	}, nil
}

// RouterConfig exposes the wired handlers in the shape SetupRouter expects.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		AuthHandler:            c.AuthHandler,
		UserHandler:            c.UserHandler,
		TaskHandler:            c.TaskHandler,
		HealthHandler:          c.HealthHandler,
		AuthenticateMiddleware: auth.Authenticate(c.Logger, c.Tokens),
		RateLimitMiddleware:    c.RateLimiter.Middleware,
		AllowedOrigins:         c.Config.CORS.AllowedOrigins,
	}
}
