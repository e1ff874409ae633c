package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/sbilibin2017/todo-api/internal/jwt"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware returns a middleware that verifies the bearer token and puts
// the caller's user id into the request context.
func AuthMiddleware(tokener Tokener, rs ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				rs.Error(w, r, httpx.ErrNotAuthorized.WithCause(err))
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				rs.Error(w, r, httpx.ErrNotAuthorized.WithCause(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(httpx.WithUserID(ctx, claims.UserID)))
		})
	}
}
