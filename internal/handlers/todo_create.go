package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/sbilibin2017/todo-api/internal/models"
)

//go:generate mockgen -source=todo_create.go -destination=todo_create_mock.go -package=handlers

// TodoCreator defines the interface that the create service must implement.
type TodoCreator interface {
	Create(ctx context.Context, userID uuid.UUID, title string) (*models.Todo, error)
}

// CreateTodoRequest represents the JSON body for a new todo
// swagger:model CreateTodoRequest
type CreateTodoRequest struct {
	// Title
	// required: true
	// default: Buy milk
	Title string `json:"title"`
}

// TodoResponse wraps a single todo
// swagger:model TodoResponse
type TodoResponse struct {
	// example: true
	Success bool        `json:"success"`
	Data    models.Todo `json:"data"`
}

// NewCreateTodoHandler returns an HTTP handler that creates a todo.
// @Summary Create todo
// @Description Create a todo owned by the caller
// @Tags todos
// @Accept json
// @Produce json
// @Param request body handlers.CreateTodoRequest true "Create Todo Request"
// @Success 201 {object} handlers.TodoResponse "Todo created"
// @Failure 400 {object} handlers.ErrorResponse "Title is required"
// @Failure 401 {object} handlers.ErrorResponse "Not authorized"
// @Router /todos [post]
// @Security BearerAuth
func NewCreateTodoHandler(svc TodoCreator, rs ErrorResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUser(r)
		if err != nil {
			rs.Error(w, r, err)
			return
		}

		var req CreateTodoRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			rs.Error(w, r, err)
			return
		}

		todo, err := svc.Create(r.Context(), userID, req.Title)
		if err != nil {
			rs.Error(w, r, err)
			return
		}

		httpx.WriteSuccess(w, http.StatusCreated, "", todo)
	}
}
