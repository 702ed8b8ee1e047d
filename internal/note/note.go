// Package note defines the note model and the partial-update patch
// applied by the PUT endpoint.
package note

import "time"

// Note is a single text note owned by exactly one user.
// UserID is set at creation and never changes afterwards.
type Note struct {
	// ID is the unique identifier of the note, meaning a UUID.
	ID string `json:"id"`

	Title   string `json:"title"`
	Content string `json:"content"`

	// UserID references the owning user. Every read and write of a note
	// is scoped by this value.
	UserID string `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Patch carries the fields of a partial note update.
// A nil field means "leave unchanged". At least one field must be
// non-nil for an update to be valid.
type Patch struct {
	Title   *string
	Content *string
}

// Empty reports whether the patch carries no fields at all.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil
}
