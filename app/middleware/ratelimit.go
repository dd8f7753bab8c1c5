package appMiddleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/go-task-tracker/config"
	"github.com/FACorreiaa/go-task-tracker/internal/api"
)

type peerAddrKey struct{}

// PeerAddr records the TCP peer address before RealIP overwrites
// RemoteAddr from client-supplied headers. Mount it ahead of RealIP.
func PeerAddr(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerAddrKey{}, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimiter hands out one token bucket per client IP. Idle clients are
// evicted after ClientTTL.
type RateLimiter struct {
	mu         sync.Mutex
	clients    *cache.Cache
	limit      rate.Limit
	burst      int
	ttl        time.Duration
	trustProxy bool
	logger     *slog.Logger
}

func NewRateLimiter(cfg config.RateLimitConfig, logger *slog.Logger) *RateLimiter {
	ttl := cfg.ClientTTL
	if ttl <= 0 {
		ttl = 3 * time.Minute
	}
	return &RateLimiter{
		clients:    cache.New(ttl, time.Minute),
		limit:      rate.Limit(cfg.RequestsPerSecond),
		burst:      cfg.Burst,
		ttl:        ttl,
		trustProxy: cfg.TrustProxyHeaders,
		logger:     logger,
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	var limiter *rate.Limiter
	if v, ok := rl.clients.Get(ip); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
	}
	// Re-setting pushes the expiry forward on every request.
	rl.clients.Set(ip, limiter, rl.ttl)
	return limiter
}

// Allow reports whether the client identified by ip may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.limiterFor(ip).Allow()
}

// clientIP picks the address the bucket is keyed on. Unless proxy headers
// are trusted, that is the peer captured by PeerAddr.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if !rl.trustProxy {
		if peer, ok := r.Context().Value(peerAddrKey{}).(string); ok && peer != "" {
			addr = peer
		}
	}

	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		// RealIP rewrites RemoteAddr without a port
		return addr
	}
	return ip
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)

		if !rl.Allow(ip) {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", slog.String("client_ip", ip), slog.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "1")
			api.ErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
