package models

// Envelope wraps every JSON response
// swagger:model Envelope
type Envelope struct {
	// example: true
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	// Only present outside production
	Stack string `json:"stack,omitempty"`
}
