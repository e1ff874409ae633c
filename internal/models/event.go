package models

import (
	"time"

	"github.com/google/uuid"
)

// Event types published after successful state changes.
const (
	EventUserSignedUp      = "user.signed_up"
	EventUserPasswordReset = "user.password_reset"
	EventTodoCreated       = "todo.created"
	EventTodoUpdated       = "todo.updated"
	EventTodoDeleted       = "todo.deleted"
	EventTodoToggled       = "todo.toggled"
)

// Event is a domain event sent to the message broker.
type Event struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	UserID    uuid.UUID `json:"user_id"`
	EntityID  uuid.UUID `json:"entity_id"`
	Timestamp int64     `json:"timestamp"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType string, userID, entityID uuid.UUID) Event {
	return Event{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now().Unix(),
	}
}
