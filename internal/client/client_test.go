package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/notekeeper/internal/auth"
	"github.com/patric-chuzhbe/notekeeper/internal/db/memorystorage"
	"github.com/patric-chuzhbe/notekeeper/internal/models"
	"github.com/patric-chuzhbe/notekeeper/internal/router"
	"github.com/patric-chuzhbe/notekeeper/internal/service"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	db, err := memorystorage.New()
	require.NoError(t, err)

	theAuth := auth.New("auth", []byte("test-signing-key"), time.Hour)
	srv := httptest.NewServer(router.New(service.New(db), theAuth))
	t.Cleanup(srv.Close)

	return New(srv.URL)
}

func signUpAndIn(t *testing.T, theClient *Client) {
	t.Helper()

	_, err := theClient.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, theClient.Login(context.Background(), "alice@example.com", "secret1"))
}

func TestRegisterAndLogin(t *testing.T) {
	theClient := newTestClient(t)

	publicUser, err := theClient.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, publicUser.ID)
	assert.Equal(t, "alice@example.com", publicUser.Email)
	assert.Empty(t, theClient.Token(), "registration alone must not start a session")

	t.Run("duplicate registration surfaces the server message", func(t *testing.T) {
		_, err := theClient.Register(context.Background(), "Alice", "alice@example.com", "secret1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("login stores the token", func(t *testing.T) {
		require.NoError(t, theClient.Login(context.Background(), "alice@example.com", "secret1"))
		assert.NotEmpty(t, theClient.Token())
	})

	t.Run("bad credentials", func(t *testing.T) {
		err := theClient.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestNotesRoundTrip(t *testing.T) {
	theClient := newTestClient(t)
	signUpAndIn(t, theClient)

	created, err := theClient.CreateNote(context.Background(), "Groceries", "milk, eggs")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	notes, err := theClient.Notes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, created.ID, notes[0].ID)

	fetched, err := theClient.GetNote(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", fetched.Title)

	newTitle := "Groceries (updated)"
	updated, err := theClient.UpdateNote(context.Background(), created.ID, models.UpdateNoteRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "milk, eggs", updated.Content)

	require.NoError(t, theClient.DeleteNote(context.Background(), created.ID))

	_, err = theClient.GetNote(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnauthenticatedCalls(t *testing.T) {
	theClient := newTestClient(t)

	_, err := theClient.Notes(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = theClient.CreateNote(context.Background(), "Title", "content")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogoutDropsToken(t *testing.T) {
	theClient := newTestClient(t)
	signUpAndIn(t, theClient)
	require.NotEmpty(t, theClient.Token())

	require.NoError(t, theClient.Logout(context.Background()))
	assert.Empty(t, theClient.Token())

	_, err := theClient.Notes(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
