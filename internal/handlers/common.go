package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/sbilibin2017/todo-api/internal/services"
)

// ErrorResponder turns a failure into the error envelope.
type ErrorResponder interface {
	Error(w http.ResponseWriter, r *http.Request, err error)
}

// MessageResponse is a success envelope without data
// swagger:model MessageResponse
type MessageResponse struct {
	// example: true
	Success bool `json:"success"`
	// example: Todo deleted
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the envelope of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// example: false
	Success bool `json:"success"`
	// example: Todo not found
	Message string `json:"message"`
	// Only present outside production
	Stack string `json:"stack,omitempty"`
}

// todoID reads the {id} URL parameter. A malformed id is reported as a
// missing todo.
func todoID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, services.ErrTodoNotFound
	}
	return id, nil
}

// currentUser returns the user id set by the auth middleware.
func currentUser(r *http.Request) (uuid.UUID, error) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, httpx.ErrNotAuthorized
	}
	return userID, nil
}
