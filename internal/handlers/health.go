package handlers

import (
	"net/http"

	"github.com/sbilibin2017/todo-api/internal/httpx"
)

// NewHealthHandler returns a liveness probe.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} handlers.MessageResponse "Server is running"
// @Router /health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteSuccess(w, http.StatusOK, "Server is running", nil)
	}
}
