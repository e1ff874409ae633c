package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/sbilibin2017/todo-api/internal/models"
)

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: alice@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.AuthResponse "Login successful"
// @Failure 400 {object} handlers.ErrorResponse "Email and password are required"
// @Failure 401 {object} handlers.ErrorResponse "Invalid credentials"
// @Failure 429 {object} handlers.ErrorResponse "Too many attempts"
// @Router /auth/login [post]
func NewLoginHandler(svc Loginer, rs ErrorResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			rs.Error(w, r, err)
			return
		}

		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			rs.Error(w, r, err)
			return
		}

		httpx.WriteSuccess(w, http.StatusOK, "Login successful", res)
	}
}
