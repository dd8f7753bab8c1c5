package user

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-task-tracker/internal/api"
	"github.com/FACorreiaa/go-task-tracker/internal/api/auth"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

// NewHandlerImpl creates a new user HandlerImpl instance.
func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// GetMe godoc
// @Summary      Get Current User
// @Description  Retrieves the authenticated user's profile. The password hash is never returned.
// @Tags         User
// @Produce      json
// @Success      200 {object} types.UserProfile "User Profile"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "User Not Found"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *HandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "GetMe"))

	claim, ok := auth.ClaimFromContext(ctx)
	if !ok {
		l.ErrorContext(ctx, "Identity claim not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, types.ErrUnauthenticated.Error())
		return
	}

	profile, err := h.userService.GetProfile(ctx, claim.UserID)
	if err != nil {
		l.WarnContext(ctx, "Failed to get user profile", slog.Any("error", err))
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, profile)
}
