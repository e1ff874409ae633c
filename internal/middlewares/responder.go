package middlewares

import "net/http"

// ErrorResponder turns a failure into the error envelope.
type ErrorResponder interface {
	Error(w http.ResponseWriter, r *http.Request, err error)
}
