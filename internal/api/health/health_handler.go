package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	database "github.com/FACorreiaa/go-task-tracker/app/db"
	"github.com/FACorreiaa/go-task-tracker/internal/api"
)

const (
	ServiceName    = "go-task-tracker"
	ServiceVersion = "1.0.0"

	pingQuery = "SELECT 1"
	infoQuery = "SELECT version(), current_database(), current_user"

	checkTimeout = 3 * time.Second
)

type Status struct {
	Status    string    `json:"status" example:"ok"`
	Service   string    `json:"service,omitempty" example:"go-task-tracker"`
	Message   string    `json:"message,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type DatabaseInfo struct {
	Version  string `json:"version"`
	Database string `json:"database_name"`
	User     string `json:"user_name"`
}

type DetailedStatus struct {
	Status      string `json:"status" example:"ok"`
	Application struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Environment string `json:"environment"`
	} `json:"application"`
	Database struct {
		Connected bool          `json:"connected"`
		Type      string        `json:"type"`
		Info      *DatabaseInfo `json:"info"`
	} `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

type HandlerImpl struct {
	pool        database.Pool
	environment string
	logger      *slog.Logger
}

func NewHandlerImpl(pool database.Pool, environment string, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		pool:        pool,
		environment: environment,
		logger:      logger,
	}
}

// Health godoc
// @Summary      Liveness
// @Tags         Health
// @Produce      json
// @Success      200 {object} health.Status
// @Router       /health [get]
func (h *HandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, Status{
		Status:    "ok",
		Service:   ServiceName,
		Timestamp: time.Now().UTC(),
	})
}

func (h *HandlerImpl) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	var one int
	return h.pool.QueryRow(ctx, pingQuery).Scan(&one)
}

// Database godoc
// @Summary      Database connectivity
// @Tags         Health
// @Produce      json
// @Success      200 {object} health.Status
// @Failure      503 {object} health.Status
// @Router       /health/database [get]
func (h *HandlerImpl) Database(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "Database health check failed", slog.Any("error", err))
		api.WriteJSONResponse(w, r, http.StatusServiceUnavailable, Status{
			Status:    "error",
			Message:   "Database connection failed",
			Error:     err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, Status{
		Status:    "ok",
		Message:   "Database connection successful",
		Timestamp: time.Now().UTC(),
	})
}

// Detailed godoc
// @Summary      Detailed health
// @Tags         Health
// @Produce      json
// @Success      200 {object} health.DetailedStatus
// @Failure      503 {object} health.DetailedStatus
// @Router       /health/detailed [get]
func (h *HandlerImpl) Detailed(w http.ResponseWriter, r *http.Request) {
	var resp DetailedStatus
	resp.Application.Name = ServiceName
	resp.Application.Version = ServiceVersion
	resp.Application.Environment = h.environment
	resp.Database.Type = "PostgreSQL"
	resp.Timestamp = time.Now().UTC()

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	var info DatabaseInfo
	err := h.pool.QueryRow(ctx, infoQuery).Scan(&info.Version, &info.Database, &info.User)
	if err != nil {
		h.logger.ErrorContext(ctx, "Detailed health check failed", slog.Any("error", err))
		resp.Status = "error"
		api.WriteJSONResponse(w, r, http.StatusServiceUnavailable, resp)
		return
	}

	resp.Status = "ok"
	resp.Database.Connected = true
	resp.Database.Info = &info
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
