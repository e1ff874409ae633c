package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/sbilibin2017/todo-api/internal/models"
)

//go:generate mockgen -source=signup.go -destination=signup_mock.go -package=handlers

// Signuper defines the interface that the signup service must implement.
type Signuper interface {
	Signup(ctx context.Context, name, email, password string) (*models.AuthResult, error)
}

// SignupRequest represents the JSON body for user registration
// swagger:model SignupRequest
type SignupRequest struct {
	// Display name
	// required: true
	// default: Alice
	Name string `json:"name"`

	// Email, used to log in
	// required: true
	// default: alice@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// AuthResponse represents a successful signup or login
// swagger:model AuthResponse
type AuthResponse struct {
	// example: true
	Success bool `json:"success"`
	// example: Login successful
	Message string            `json:"message,omitempty"`
	Data    models.AuthResult `json:"data"`
}

// NewSignupHandler returns an HTTP handler for user registration.
// @Summary Register user
// @Description Create a new account and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.SignupRequest true "Signup Request"
// @Success 201 {object} handlers.AuthResponse "User created successfully"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields or user already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func NewSignupHandler(svc Signuper, rs ErrorResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			rs.Error(w, r, err)
			return
		}

		res, err := svc.Signup(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			rs.Error(w, r, err)
			return
		}

		httpx.WriteSuccess(w, http.StatusCreated, "User created successfully", res)
	}
}
