package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/FACorreiaa/go-task-tracker/internal/api"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

type contextKey string

const ClaimKey contextKey = "identityClaim"

// Authenticate resolves the bearer token and stores the identity claim in the
// request context. Every failure gets the same 401 body.
func Authenticate(logger *slog.Logger, tokens TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.DebugContext(ctx, "Missing Authorization header")
				api.ErrorResponse(w, r, http.StatusUnauthorized, types.ErrUnauthenticated.Error())
				return
			}

			headerParts := strings.Fields(authHeader)
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
				l.WarnContext(ctx, "Invalid Authorization header format")
				api.ErrorResponse(w, r, http.StatusUnauthorized, types.ErrUnauthenticated.Error())
				return
			}

			claim, err := tokens.Resolve(headerParts[1])
			if err != nil {
				l.WarnContext(ctx, "Token rejected", slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusUnauthorized, types.ErrUnauthenticated.Error())
				return
			}

			l.DebugContext(ctx, "Authentication successful", slog.Int64("userID", claim.UserID))
			next.ServeHTTP(w, r.WithContext(WithClaim(ctx, claim)))
		})
	}
}

func WithClaim(ctx context.Context, claim *types.IdentityClaim) context.Context {
	return context.WithValue(ctx, ClaimKey, claim)
}

func ClaimFromContext(ctx context.Context) (*types.IdentityClaim, bool) {
	claim, ok := ctx.Value(ClaimKey).(*types.IdentityClaim)
	return claim, ok && claim != nil
}
