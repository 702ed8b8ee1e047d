package memorystorage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/notekeeper/internal/db/storage"
	"github.com/patric-chuzhbe/notekeeper/internal/note"
	"github.com/patric-chuzhbe/notekeeper/internal/user"
)

func TestMemoryStorage(t *testing.T) {
	db, err := New()
	require.NoError(t, err)

	require.NoError(t, db.Ping(context.Background()))

	now := time.Now().UTC()
	usr := &user.User{
		ID:        uuid.New().String(),
		Name:      "Test User",
		Email:     "alice@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.CreateUser(context.Background(), usr))

	n := &note.Note{
		ID:        uuid.New().String(),
		Title:     "in memory",
		Content:   "body",
		UserID:    usr.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.CreateNote(context.Background(), n))

	found, err := db.GetUserNoteByID(context.Background(), n.ID, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, "in memory", found.Title)

	require.NoError(t, db.DeleteUserNote(context.Background(), n.ID, usr.ID))
	_, err = db.GetUserNoteByID(context.Background(), n.ID, usr.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Close must not try to persist anything.
	require.NoError(t, db.Close())
}
