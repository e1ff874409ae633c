package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/todo-api/internal/httpx"
)

//go:generate mockgen -source=reset_password.go -destination=reset_password_mock.go -package=handlers

// PasswordResetter consumes a reset token.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, rawToken, newPassword string) (string, error)
}

// ResetPasswordRequest represents the JSON body of a password reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// New password
	// required: true
	// default: newsecret123
	Password string `json:"password"`
}

// TokenData carries a freshly issued token
// swagger:model TokenData
type TokenData struct {
	// default: JWT_TOKEN
	Token string `json:"token"`
}

// ResetPasswordResponse represents a successful password reset
// swagger:model ResetPasswordResponse
type ResetPasswordResponse struct {
	// example: true
	Success bool `json:"success"`
	// example: Password reset successful
	Message string    `json:"message,omitempty"`
	Data    TokenData `json:"data"`
}

// NewResetPasswordHandler returns an HTTP handler that sets a new password.
// @Summary Reset password
// @Description Replace the password using the token from the reset email
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body handlers.ResetPasswordRequest true "Reset Password Request"
// @Success 200 {object} handlers.ResetPasswordResponse "Password reset successful"
// @Failure 400 {object} handlers.ErrorResponse "Invalid or expired token"
// @Router /auth/reset-password/{token} [put]
func NewResetPasswordHandler(svc PasswordResetter, rs ErrorResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			rs.Error(w, r, err)
			return
		}

		token, err := svc.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password)
		if err != nil {
			rs.Error(w, r, err)
			return
		}

		httpx.WriteSuccess(w, http.StatusOK, "Password reset successful", TokenData{Token: token})
	}
}
