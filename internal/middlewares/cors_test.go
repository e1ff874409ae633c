package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	const frontend = "https://todo.example.com"

	tests := []struct {
		name             string
		method           string
		origin           string
		preflight        bool
		expectedStatus   int
		expectedOrigin   string
		expectNextCalled bool
	}{
		{
			name:           "preflight from frontend",
			method:         http.MethodOptions,
			origin:         frontend,
			preflight:      true,
			expectedStatus: http.StatusOK,
			expectedOrigin: frontend,
		},
		{
			name:           "preflight from unknown origin",
			method:         http.MethodOptions,
			origin:         "https://evil.example.com",
			preflight:      true,
			expectedStatus: http.StatusOK,
		},
		{
			name:             "request from frontend",
			method:           http.MethodGet,
			origin:           frontend,
			expectedStatus:   http.StatusOK,
			expectedOrigin:   frontend,
			expectNextCalled: true,
		},
		{
			name:             "request from unknown origin",
			method:           http.MethodGet,
			origin:           "https://evil.example.com",
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(tt.method, "/todos", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
				req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")
			}
			rr := httptest.NewRecorder()

			CORSMiddleware([]string{frontend})(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
			assert.Equal(t, tt.expectedOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rr.Header().Values("Vary"), "Origin")

			if tt.preflight && tt.expectedOrigin != "" {
				assert.Equal(t, http.MethodPatch, rr.Header().Get("Access-Control-Allow-Methods"))
				assert.Contains(t, strings.ToLower(rr.Header().Get("Access-Control-Allow-Headers")), "authorization")
				assert.Equal(t, "300", rr.Header().Get("Access-Control-Max-Age"))
			}
			if !tt.preflight && tt.expectedOrigin != "" {
				assert.True(t, strings.EqualFold("X-Request-ID", rr.Header().Get("Access-Control-Expose-Headers")))
			}
		})
	}
}

func TestCORSMiddleware_NoOrigins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Origin", "https://todo.example.com")
	rr := httptest.NewRecorder()

	CORSMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
