package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/todo-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestForgotPasswordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPasswordForgetter(ctrl)

	tests := []struct {
		name            string
		inputBody       interface{}
		mockSetup       func()
		expectedCode    int
		expectedMessage string
		expectedSuccess bool
	}{
		{
			name:      "email sent",
			inputBody: ForgotPasswordRequest{Email: "a@x.com"},
			mockSetup: func() {
				mockSvc.EXPECT().ForgotPassword(gomock.Any(), "a@x.com").Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "Password reset email sent",
			expectedSuccess: true,
		},
		{
			name:      "unknown user",
			inputBody: ForgotPasswordRequest{Email: "nobody@x.com"},
			mockSetup: func() {
				mockSvc.EXPECT().ForgotPassword(gomock.Any(), "nobody@x.com").Return(services.ErrUserNotFound)
			},
			expectedCode:    http.StatusNotFound,
			expectedMessage: "User not found",
		},
		{
			name:      "delivery failure",
			inputBody: ForgotPasswordRequest{Email: "a@x.com"},
			mockSetup: func() {
				mockSvc.EXPECT().
					ForgotPassword(gomock.Any(), "a@x.com").
					Return(services.ErrEmailNotSent.WithCause(errors.New("smtp down")))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Email could not be sent",
		},
		{
			name:            "invalid JSON",
			inputBody:       "{",
			mockSetup:       func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := newRequest(t, http.MethodPost, "/auth/forgot-password", tt.inputBody)
			w := httptest.NewRecorder()

			NewForgotPasswordHandler(mockSvc, newTestResponder()).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedSuccess, resp.Success)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}
