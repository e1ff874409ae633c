package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/todo-api/internal/httpx"
)

//go:generate mockgen -source=forgot_password.go -destination=forgot_password_mock.go -package=handlers

// PasswordForgetter starts the password reset flow.
type PasswordForgetter interface {
	ForgotPassword(ctx context.Context, email string) error
}

// ForgotPasswordRequest represents the JSON body of a reset request
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email of the account
	// required: true
	// default: alice@example.com
	Email string `json:"email"`
}

// NewForgotPasswordHandler returns an HTTP handler that emails a reset link.
// @Summary Request password reset
// @Description Email a single-use link to reset the password. The link expires after 10 minutes.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.ForgotPasswordRequest true "Forgot Password Request"
// @Success 200 {object} handlers.MessageResponse "Password reset email sent"
// @Failure 400 {object} handlers.ErrorResponse "Email is required"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 429 {object} handlers.ErrorResponse "Too many attempts"
// @Failure 500 {object} handlers.ErrorResponse "Email could not be sent"
// @Router /auth/forgot-password [post]
func NewForgotPasswordHandler(svc PasswordForgetter, rs ErrorResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			rs.Error(w, r, err)
			return
		}

		if err := svc.ForgotPassword(r.Context(), req.Email); err != nil {
			rs.Error(w, r, err)
			return
		}

		httpx.WriteSuccess(w, http.StatusOK, "Password reset email sent", nil)
	}
}
