// Package user defines the user model used throughout the application,
// particularly for authentication and per-user note ownership.
package user

import "time"

// User represents a registered account.
// The password itself is never stored; only the salted one-way hash is
// persisted, and it is excluded from JSON output.
type User struct {
	// ID is the unique identifier of the user, meaning a UUID.
	ID string `json:"id"`

	// Name is the display name supplied at registration.
	Name string `json:"name"`

	// Email is the unique sign-in address, normalized to lowercase.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
