package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/stretchr/testify/require"
)

// newRequest builds a request whose body is body marshalled to JSON, or the
// raw string when body is a string.
func newRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var raw []byte
	switch v := body.(type) {
	case nil:
	case string:
		raw = []byte(v)
	default:
		var err error
		raw, err = json.Marshal(v)
		require.NoError(t, err)
	}
	return httptest.NewRequest(method, target, bytes.NewReader(raw))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(httpx.WithUserID(r.Context(), userID))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newTestResponder() *httpx.Responder {
	return httpx.NewResponder(nil, true)
}
