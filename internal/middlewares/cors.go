package middlewares

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware lets the browser frontends in allowedOrigins call the API.
// Preflight requests are answered here and never reach the routes. An empty
// list admits no origin.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	var originFunc func(r *http.Request, origin string) bool
	if len(allowedOrigins) == 0 {
		// the library reads an empty list as "*"
		originFunc = func(r *http.Request, origin string) bool { return false }
	}

	return cors.Handler(cors.Options{
		AllowOriginFunc: originFunc,
		AllowedOrigins:  allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}
