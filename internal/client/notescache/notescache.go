// Package notescache keeps the signed-in user's note list on the
// client side. The list is loaded once per session and then kept
// consistent with the server by applying confirmed mutations only:
// nothing changes locally until the server has acknowledged the
// operation.
package notescache

import (
	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/notekeeper/internal/note"
)

// State is the lifecycle state of the cached note list.
type State int

const (
	// StateLoading means the initial list request has not resolved yet.
	StateLoading State = iota
	// StateReady means the list reflects the last confirmed server state.
	StateReady
	// StateError means the initial load failed; Notes() is empty.
	StateError
)

// Cache is the per-session note list plus the single
// "currently editing" slot. It is owned by one goroutine by contract,
// matching the single-threaded event-driven client it models.
type Cache struct {
	state     State
	loadError string
	notes     []note.Note
	editingID string
}

// New returns a cache in the Loading state.
func New() *Cache {
	return &Cache{state: StateLoading}
}

// State returns the current lifecycle state.
func (c *Cache) State() State {
	return c.state
}

// LoadError returns the message recorded by SetFailed, if any.
func (c *Cache) LoadError() string {
	return c.loadError
}

// Notes returns the cached list, newest-updated first.
func (c *Cache) Notes() []note.Note {
	return c.notes
}

// SetLoaded installs the server's list and moves the cache to Ready.
func (c *Cache) SetLoaded(notes []note.Note) {
	c.notes = notes
	c.state = StateReady
	c.loadError = ""
}

// SetFailed records a failed initial load.
func (c *Cache) SetFailed(message string) {
	c.notes = nil
	c.state = StateError
	c.loadError = message
}

// ApplyCreated prepends a server-confirmed new note. Replaying the same
// confirmation is a no-op: an already-present ID is updated in place
// instead of duplicated.
func (c *Cache) ApplyCreated(created note.Note) {
	if c.replaceByID(created) {
		return
	}
	c.notes = append([]note.Note{created}, c.notes...)
}

// ApplyUpdated replaces the affected entry in place with the confirmed
// copy. A stale confirmation for a note that is no longer cached is
// ignored.
func (c *Cache) ApplyUpdated(updated note.Note) {
	c.replaceByID(updated)
}

// ApplyDeleted removes the entry with the given ID. Replaying the same
// confirmation is a no-op. A deleted note also vacates the editing slot.
func (c *Cache) ApplyDeleted(noteID string) {
	c.notes = funk.Filter(c.notes, func(n note.Note) bool {
		return n.ID != noteID
	}).([]note.Note)

	if c.editingID == noteID {
		c.editingID = ""
	}
}

// StartEditing marks the note as the one being edited. Starting a new
// edit while another is in progress replaces the slot. It reports
// whether the note is actually cached.
func (c *Cache) StartEditing(noteID string) bool {
	if _, ok := c.findByID(noteID); !ok {
		return false
	}
	c.editingID = noteID

	return true
}

// Editing returns the note occupying the editing slot, if any.
func (c *Cache) Editing() (note.Note, bool) {
	if c.editingID == "" {
		return note.Note{}, false
	}

	return c.findByID(c.editingID)
}

// StopEditing vacates the editing slot.
func (c *Cache) StopEditing() {
	c.editingID = ""
}

func (c *Cache) findByID(noteID string) (note.Note, bool) {
	for _, n := range c.notes {
		if n.ID == noteID {
			return n, true
		}
	}

	return note.Note{}, false
}

func (c *Cache) replaceByID(replacement note.Note) bool {
	for i, n := range c.notes {
		if n.ID == replacement.ID {
			c.notes[i] = replacement
			return true
		}
	}

	return false
}
