package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/todo-api/internal/apperrors"
	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/models"
)

// errorLogTimeout bounds the side write to the error log.
const errorLogTimeout = 3 * time.Second

//go:generate mockgen -source=responder.go -destination=responder_mock.go -package=httpx

// ErrorLogWriter persists failed requests.
type ErrorLogWriter interface {
	Save(ctx context.Context, entry *models.ErrorLog) error
}

// Responder is the single place where failures are turned into responses.
type Responder struct {
	store      ErrorLogWriter
	production bool
}

// NewResponder creates a Responder. store may be nil to skip the error log.
func NewResponder(store ErrorLogWriter, production bool) *Responder {
	return &Responder{store: store, production: production}
}

// Error classifies err, records it and writes the error envelope.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	status := kind.StatusCode()
	message := apperrors.MessageOf(err)
	stack := apperrors.StackOf(err)

	fields := []any{
		"request_id", RequestIDFromContext(r.Context()),
		"method", r.Method,
		"url", r.URL.RequestURI(),
		"status", status,
		"kind", kind.String(),
		"error", err,
	}
	if status >= http.StatusInternalServerError {
		logger.Log.Errorw("request failed", fields...)
	} else {
		logger.Log.Warnw("request rejected", fields...)
	}

	rs.record(r, err, status, stack)

	resp := models.Envelope{Success: false, Message: message}
	if !rs.production {
		resp.Stack = stack
	}
	WriteJSON(w, status, resp)
}

// record appends the failure to the error log. Its own failure is only logged.
func (rs *Responder) record(r *http.Request, err error, status int, stack string) {
	if rs.store == nil {
		return
	}

	entry := &models.ErrorLog{
		Message:    err.Error(),
		StatusCode: status,
		Method:     r.Method,
		URL:        r.URL.RequestURI(),
		Timestamp:  time.Now().UTC(),
	}
	if stack != "" {
		entry.Stack = &stack
	}
	if userID, ok := UserIDFromContext(r.Context()); ok {
		entry.UserID = &userID
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), errorLogTimeout)
	defer cancel()

	if saveErr := rs.store.Save(ctx, entry); saveErr != nil {
		logger.Log.Errorw("failed to log error to database", "error", saveErr)
	}
}
