package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/sbilibin2017/todo-api/internal/models"
)

//go:generate mockgen -source=todo_toggle.go -destination=todo_toggle_mock.go -package=handlers

// TodoToggler defines the interface that the toggle service must implement.
type TodoToggler interface {
	Toggle(ctx context.Context, userID, id uuid.UUID) (*models.Todo, error)
}

// NewToggleTodoHandler returns an HTTP handler that flips the completion flag.
// @Summary Toggle todo
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} handlers.TodoResponse "Toggled todo"
// @Failure 401 {object} handlers.ErrorResponse "Not authorized"
// @Failure 404 {object} handlers.ErrorResponse "Todo not found"
// @Router /todos/{id}/toggle [patch]
// @Security BearerAuth
func NewToggleTodoHandler(svc TodoToggler, rs ErrorResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUser(r)
		if err != nil {
			rs.Error(w, r, err)
			return
		}

		id, err := todoID(r)
		if err != nil {
			rs.Error(w, r, err)
			return
		}

		todo, err := svc.Toggle(r.Context(), userID, id)
		if err != nil {
			rs.Error(w, r, err)
			return
		}

		httpx.WriteSuccess(w, http.StatusOK, "", todo)
	}
}
