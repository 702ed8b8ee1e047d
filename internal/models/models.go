// Package models contains the JSON request and response shapes of the
// HTTP API, including the uniform response envelope.
package models

// Response is the envelope wrapping every API reply.
// On success the Data field holds the operation result; on failure the
// Error field holds a human-readable message and Data is omitted.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /api/session.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PublicUser is the projection of a user returned by the API.
// It never carries the password hash.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateNoteRequest is the body of POST /api/notes.
type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdateNoteRequest is the body of PUT /api/notes/{id}.
// Both fields are optional, but at least one must be present.
type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// SessionResponse is the success payload of POST /api/session.
// The same token is also set as the auth cookie.
type SessionResponse struct {
	Token string `json:"token"`
}
