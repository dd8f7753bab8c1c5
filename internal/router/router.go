package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-task-tracker/docs"

	appLogger "github.com/FACorreiaa/go-task-tracker/app/logger"
	appMiddleware "github.com/FACorreiaa/go-task-tracker/app/middleware"
	"github.com/FACorreiaa/go-task-tracker/internal/api/auth"
	"github.com/FACorreiaa/go-task-tracker/internal/api/health"
	"github.com/FACorreiaa/go-task-tracker/internal/api/task"
	"github.com/FACorreiaa/go-task-tracker/internal/api/user"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            *auth.AuthHandlerImpl
	UserHandler            user.Handler
	TaskHandler            task.Handler
	HealthHandler          *health.HandlerImpl
	AuthenticateMiddleware func(http.Handler) http.Handler
	RateLimitMiddleware    func(http.Handler) http.Handler
	AllowedOrigins         []string
}

// SetupRouter builds the /api/v1 route table. Server-wide middleware is
// applied by NewMux.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/", cfg.HealthHandler.Health)
			r.Get("/database", cfg.HealthHandler.Database)
			r.Get("/detailed", cfg.HealthHandler.Detailed)
		})

		// --- Public Auth Routes ---
		r.Group(func(r chi.Router) {
			if cfg.RateLimitMiddleware != nil {
				r.Use(cfg.RateLimitMiddleware)
			}
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		})

		// --- Protected Routes ---
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/auth/logout", cfg.AuthHandler.Logout)
			r.Get("/users/me", cfg.UserHandler.GetMe)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", cfg.TaskHandler.ListTasks)
				r.Post("/", cfg.TaskHandler.CreateTask)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.TaskHandler.GetTask)
					r.Put("/", cfg.TaskHandler.UpdateTask)
					r.Delete("/", cfg.TaskHandler.DeleteTask)
					r.Patch("/status", cfg.TaskHandler.ChangeTaskStatus)
					r.Patch("/toggle", cfg.TaskHandler.ToggleTask)
				})
			})
		})
	})

	return r
}

// NewMux wraps the API router with the server-wide middleware stack.
func NewMux(apiRouter chi.Router, logger *slog.Logger, timeout time.Duration) *chi.Mux {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	// PeerAddr must see RemoteAddr before RealIP rewrites it
	router.Use(appMiddleware.PeerAddr)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(timeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", apiRouter)
	return router
}
