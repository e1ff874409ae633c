package middlewares

import (
	"context"
	"net"
	"net/http"

	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/sbilibin2017/todo-api/internal/logger"
)

//go:generate mockgen -source=ratelimit.go -destination=ratelimit_mock.go -package=middlewares

// Limiter counts attempts per key within a window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimitMiddleware rejects clients that exceed the attempt budget of scope
// with 429. Attempts are counted per r.RemoteAddr host, which only
// RealIPMiddleware may rewrite. A failing limiter lets the request through.
func RateLimitMiddleware(limiter Limiter, scope string, rs ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + clientIP(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Log.Warnw("rate limiter unavailable", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				rs.Error(w, r, httpx.ErrTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
