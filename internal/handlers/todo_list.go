package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/sbilibin2017/todo-api/internal/models"
)

//go:generate mockgen -source=todo_list.go -destination=todo_list_mock.go -package=handlers

// TodoLister defines the interface that the list service must implement.
type TodoLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Todo, error)
}

// TodoListResponse wraps the caller's todos
// swagger:model TodoListResponse
type TodoListResponse struct {
	// example: true
	Success bool          `json:"success"`
	Data    []models.Todo `json:"data"`
}

// NewListTodosHandler returns an HTTP handler that lists the caller's todos.
// @Summary List todos
// @Description Return the caller's todos, newest first
// @Tags todos
// @Produce json
// @Success 200 {object} handlers.TodoListResponse "Todos"
// @Failure 401 {object} handlers.ErrorResponse "Not authorized"
// @Router /todos [get]
// @Security BearerAuth
func NewListTodosHandler(svc TodoLister, rs ErrorResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUser(r)
		if err != nil {
			rs.Error(w, r, err)
			return
		}

		todos, err := svc.List(r.Context(), userID)
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		if todos == nil {
			todos = []models.Todo{}
		}

		httpx.WriteSuccess(w, http.StatusOK, "", todos)
	}
}
