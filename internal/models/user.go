package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database
type User struct {
	ID                  uuid.UUID  `json:"id" db:"id"`                   // Primary key
	Name                string     `json:"name" db:"name"`               // Display name, not unique
	Email               string     `json:"email" db:"email"`             // Unique login key
	PasswordHash        string     `json:"-" db:"password_hash"`         // bcrypt hash
	ResetPasswordToken  *string    `json:"-" db:"reset_password_token"`  // sha256 of the pending reset token
	ResetPasswordExpire *time.Time `json:"-" db:"reset_password_expire"` // Expiry of the pending reset token
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`   // Creation timestamp
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`   // Last update timestamp
}

// UserResponse is the public view of a user
// swagger:model UserResponse
type UserResponse struct {
	// example: 3fa85f64-5717-4562-b3fc-2c963f66afa6
	ID uuid.UUID `json:"id"`
	// example: Alice
	Name string `json:"name"`
	// example: alice@example.com
	Email string `json:"email"`
}

// Public strips everything but the identity fields.
func (u *User) Public() UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// AuthResult is returned by signup and login.
// swagger:model AuthResult
type AuthResult struct {
	// Signed identity token
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
