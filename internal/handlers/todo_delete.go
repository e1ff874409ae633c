package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-api/internal/httpx"
)

//go:generate mockgen -source=todo_delete.go -destination=todo_delete_mock.go -package=handlers

// TodoDeleter defines the interface that the delete service must implement.
type TodoDeleter interface {
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// NewDeleteTodoHandler returns an HTTP handler that deletes a todo.
// @Summary Delete todo
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} handlers.MessageResponse "Todo deleted"
// @Failure 401 {object} handlers.ErrorResponse "Not authorized"
// @Failure 404 {object} handlers.ErrorResponse "Todo not found"
// @Router /todos/{id} [delete]
// @Security BearerAuth
func NewDeleteTodoHandler(svc TodoDeleter, rs ErrorResponder) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), userID, id); err != nil {
			rs.Error(w, r, err)
			return
		}

		httpx.WriteSuccess(w, http.StatusOK, "Todo deleted", nil)
	}
}
