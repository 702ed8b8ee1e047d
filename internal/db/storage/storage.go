// Package storage declares the persistence contract shared by all
// storage backends and the sentinel errors they report.
package storage

import (
	"context"
	"errors"

	"github.com/patric-chuzhbe/notekeeper/internal/note"
	"github.com/patric-chuzhbe/notekeeper/internal/user"
)

// ErrNotFound is returned when a record does not exist for the given
// owner. A note existing under a different owner is reported the same
// way, which is the ownership-isolation contract of the service.
var ErrNotFound = errors.New("not found")

// ErrEmailAlreadyTaken is returned when registering a user with an
// email that is already present. The failed attempt mutates nothing.
var ErrEmailAlreadyTaken = errors.New("email already taken")

// UserKeeper persists user accounts.
type UserKeeper interface {
	// CreateUser stores a new user. Fails with ErrEmailAlreadyTaken if the
	// email (already lowercased by the caller) is present.
	CreateUser(ctx context.Context, usr *user.User) error

	// FindUserByEmail looks a user up by the normalized email.
	// Fails with ErrNotFound if there is no such user.
	FindUserByEmail(ctx context.Context, email string) (*user.User, error)

	// GetUserByID fetches a user by ID. Fails with ErrNotFound.
	GetUserByID(ctx context.Context, userID string) (*user.User, error)
}

// NoteKeeper persists notes, always scoped by owner.
type NoteKeeper interface {
	// CreateNote stores a new note with the timestamps supplied by the caller.
	CreateNote(ctx context.Context, n *note.Note) error

	// GetUserNotes returns all notes of the owner ordered by most
	// recently updated first. No notes is an empty slice, not an error.
	GetUserNotes(ctx context.Context, userID string) ([]note.Note, error)

	// GetUserNoteByID fetches one note of the owner. Fails with ErrNotFound
	// if the note is absent or belongs to someone else.
	GetUserNoteByID(ctx context.Context, noteID, userID string) (*note.Note, error)

	// UpdateUserNote applies the non-nil patch fields, refreshes the
	// update timestamp and returns the updated note. Fails with ErrNotFound
	// under the same ownership rule as GetUserNoteByID.
	UpdateUserNote(ctx context.Context, noteID, userID string, patch note.Patch) (*note.Note, error)

	// DeleteUserNote removes the note permanently. Fails with ErrNotFound;
	// repeating the delete fails with ErrNotFound again.
	DeleteUserNote(ctx context.Context, noteID, userID string) error
}

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Storage is the full contract a backend must satisfy.
type Storage interface {
	UserKeeper
	NoteKeeper
	Pinger
	Close() error
}
