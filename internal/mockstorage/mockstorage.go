// Package mockstorage provides a testify-based mock implementation
// of the storage interface. It is used for unit testing HTTP handlers
// and services by simulating storage behavior, including failures the
// real backends are hard to coax into.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/notekeeper/internal/note"
	"github.com/patric-chuzhbe/notekeeper/internal/user"
)

// StorageMock is a testify mock that implements the storage interface.
type StorageMock struct {
	mock.Mock
}

// CreateUser mocks user creation.
func (m *StorageMock) CreateUser(ctx context.Context, usr *user.User) error {
	args := m.Called(ctx, usr)
	return args.Error(0)
}

// FindUserByEmail mocks the lookup by normalized email.
func (m *StorageMock) FindUserByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Error(1)
}

// GetUserByID mocks fetching a user by their ID.
func (m *StorageMock) GetUserByID(ctx context.Context, userID string) (*user.User, error) {
	args := m.Called(ctx, userID)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Error(1)
}

// CreateNote mocks note creation.
func (m *StorageMock) CreateNote(ctx context.Context, n *note.Note) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// GetUserNotes mocks fetching all notes of an owner.
func (m *StorageMock) GetUserNotes(ctx context.Context, userID string) ([]note.Note, error) {
	args := m.Called(ctx, userID)
	notes, _ := args.Get(0).([]note.Note)
	return notes, args.Error(1)
}

// GetUserNoteByID mocks the owner-scoped single note fetch.
func (m *StorageMock) GetUserNoteByID(ctx context.Context, noteID, userID string) (*note.Note, error) {
	args := m.Called(ctx, noteID, userID)
	n, _ := args.Get(0).(*note.Note)
	return n, args.Error(1)
}

// UpdateUserNote mocks the owner-scoped partial update.
func (m *StorageMock) UpdateUserNote(
	ctx context.Context,
	noteID,
	userID string,
	patch note.Patch,
) (*note.Note, error) {
	args := m.Called(ctx, noteID, userID, patch)
	n, _ := args.Get(0).(*note.Note)
	return n, args.Error(1)
}

// DeleteUserNote mocks the owner-scoped delete.
func (m *StorageMock) DeleteUserNote(ctx context.Context, noteID, userID string) error {
	args := m.Called(ctx, noteID, userID)
	return args.Error(0)
}

// Ping mocks the storage health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks closing the storage and releasing resources.
func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
