package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sbilibin2017/todo-api/internal/apperrors"
	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/models"
)

var (
	// ErrInvalidBody is returned when a request body is not valid JSON.
	ErrInvalidBody = apperrors.New(apperrors.KindValidation, "Invalid request body")
	// ErrNotAuthorized is returned for a missing or rejected bearer token.
	ErrNotAuthorized = apperrors.New(apperrors.KindAuth, "Not authorized, token failed")
	// ErrTooManyRequests is returned when a client exceeds its attempt budget.
	ErrTooManyRequests = apperrors.New(apperrors.KindRateLimited, "Too many requests, please try again later")
)

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}

// WriteSuccess writes a successful envelope.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, models.Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// DecodeJSON decodes the request body into v. An empty body leaves v untouched.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrInvalidBody.WithCause(err)
	}
	return nil
}
