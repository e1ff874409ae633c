package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/sbilibin2017/todo-api/internal/models"
)

//go:generate mockgen -source=todo_update.go -destination=todo_update_mock.go -package=handlers

// TodoUpdater defines the interface that the update service must implement.
type TodoUpdater interface {
	Update(ctx context.Context, userID, id uuid.UUID, patch models.TodoPatch) (*models.Todo, error)
}

// UpdateTodoRequest represents a partial update. Omitted fields keep their value.
// swagger:model UpdateTodoRequest
type UpdateTodoRequest struct {
	// New title
	// default: Buy oat milk
	Title *string `json:"title,omitempty"`

	// Completion flag
	// default: true
	Completed *bool `json:"completed,omitempty"`
}

// NewUpdateTodoHandler returns an HTTP handler that updates a todo.
// @Summary Update todo
// @Description Change the title and/or completion flag of one of the caller's todos
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body handlers.UpdateTodoRequest true "Update Todo Request"
// @Success 200 {object} handlers.TodoResponse "Updated todo"
// @Failure 400 {object} handlers.ErrorResponse "Title is required"
// @Failure 401 {object} handlers.ErrorResponse "Not authorized"
// @Failure 404 {object} handlers.ErrorResponse "Todo not found"
// @Router /todos/{id} [put]
// @Security BearerAuth
func NewUpdateTodoHandler(svc TodoUpdater, rs ErrorResponder) http.HandlerFunc {
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

		var req UpdateTodoRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			rs.Error(w, r, err)
			return
		}

		todo, err := svc.Update(r.Context(), userID, id, models.TodoPatch{
			Title:     req.Title,
			Completed: req.Completed,
		})
		if err != nil {
			rs.Error(w, r, err)
			return
		}

		httpx.WriteSuccess(w, http.StatusOK, "", todo)
	}
}
