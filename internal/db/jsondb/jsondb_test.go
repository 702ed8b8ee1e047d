package jsondb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/notekeeper/internal/db/storage"
	"github.com/patric-chuzhbe/notekeeper/internal/note"
	"github.com/patric-chuzhbe/notekeeper/internal/user"
)

func newTestUser(email string) *user.User {
	now := time.Now().UTC()
	return &user.User{
		ID:           uuid.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefa",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newTestNote(userID, title string) *note.Note {
	now := time.Now().UTC()
	return &note.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   "body of " + title,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNewCreatesMissingFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "db.json")

	db, err := New(fileName)
	require.NoError(t, err)
	assert.FileExists(t, fileName)
	assert.Empty(t, db.Cache.Users)
	assert.Empty(t, db.Cache.Notes)
}

func TestUserUniquenessAndLookup(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	usr := newTestUser("alice@example.com")
	require.NoError(t, db.CreateUser(context.Background(), usr))

	t.Run("duplicate email rejected case-insensitively", func(t *testing.T) {
		dup := newTestUser("ALICE@example.com")
		err := db.CreateUser(context.Background(), dup)
		assert.ErrorIs(t, err, storage.ErrEmailAlreadyTaken)
	})

	t.Run("find by email", func(t *testing.T) {
		found, err := db.FindUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, usr.ID, found.ID)

		_, err = db.FindUserByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("get by ID", func(t *testing.T) {
		found, err := db.GetUserByID(context.Background(), usr.ID)
		require.NoError(t, err)
		assert.Equal(t, usr.Email, found.Email)

		_, err = db.GetUserByID(context.Background(), uuid.New().String())
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestNoteOwnerScoping(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	alice := newTestUser("alice@example.com")
	bob := newTestUser("bob@example.com")
	require.NoError(t, db.CreateUser(context.Background(), alice))
	require.NoError(t, db.CreateUser(context.Background(), bob))

	aliceNote := newTestNote(alice.ID, "private")
	require.NoError(t, db.CreateNote(context.Background(), aliceNote))

	t.Run("owner sees the note", func(t *testing.T) {
		found, err := db.GetUserNoteByID(context.Background(), aliceNote.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "private", found.Title)
	})

	t.Run("other user gets not found", func(t *testing.T) {
		_, err := db.GetUserNoteByID(context.Background(), aliceNote.ID, bob.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		title := "stolen"
		_, err = db.UpdateUserNote(context.Background(), aliceNote.ID, bob.ID, note.Patch{Title: &title})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		err = db.DeleteUserNote(context.Background(), aliceNote.ID, bob.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestUpdateUserNote(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	usr := newTestUser("alice@example.com")
	require.NoError(t, db.CreateUser(context.Background(), usr))

	n := newTestNote(usr.ID, "original")
	require.NoError(t, db.CreateNote(context.Background(), n))

	title := "renamed"
	updated, err := db.UpdateUserNote(context.Background(), n.ID, usr.ID, note.Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, n.Content, updated.Content, "untouched field survives the patch")
	assert.False(t, updated.UpdatedAt.Before(n.UpdatedAt))

	content := "rewritten"
	updated, err = db.UpdateUserNote(context.Background(), n.ID, usr.ID, note.Patch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "rewritten", updated.Content)
}

func TestGetUserNotesOrdering(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	usr := newTestUser("alice@example.com")
	require.NoError(t, db.CreateUser(context.Background(), usr))

	base := time.Now().UTC()
	for i, title := range []string{"oldest", "middle", "newest"} {
		n := newTestNote(usr.ID, title)
		n.UpdatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.CreateNote(context.Background(), n))
	}

	notes, err := db.GetUserNotes(context.Background(), usr.ID)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "newest", notes[0].Title)
	assert.Equal(t, "middle", notes[1].Title)
	assert.Equal(t, "oldest", notes[2].Title)

	t.Run("equal timestamps are tie-broken by ID", func(t *testing.T) {
		tied := time.Now().UTC().Add(time.Hour)
		first := newTestNote(usr.ID, "tied A")
		first.ID = "aaaa"
		first.UpdatedAt = tied
		second := newTestNote(usr.ID, "tied B")
		second.ID = "bbbb"
		second.UpdatedAt = tied
		require.NoError(t, db.CreateNote(context.Background(), second))
		require.NoError(t, db.CreateNote(context.Background(), first))

		notes, err := db.GetUserNotes(context.Background(), usr.ID)
		require.NoError(t, err)
		require.Len(t, notes, 5)
		assert.Equal(t, "aaaa", notes[0].ID)
		assert.Equal(t, "bbbb", notes[1].ID)
	})
}

func TestCloseAndReload(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "db.json")

	db, err := New(fileName)
	require.NoError(t, err)

	usr := newTestUser("alice@example.com")
	require.NoError(t, db.CreateUser(context.Background(), usr))
	n := newTestNote(usr.ID, "persisted")
	require.NoError(t, db.CreateNote(context.Background(), n))
	require.NoError(t, db.Close())

	reloaded, err := New(fileName)
	require.NoError(t, err)

	foundUser, err := reloaded.GetUserByID(context.Background(), usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr.Email, foundUser.Email)

	foundNote, err := reloaded.GetUserNoteByID(context.Background(), n.ID, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", foundNote.Title)
	assert.Equal(t, n.Content, foundNote.Content)
}
