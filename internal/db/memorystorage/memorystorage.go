// Package memorystorage provides a purely in-memory storage backend.
// It reuses the jsondb cache logic but never touches the filesystem,
// which makes it the default backend for tests and local runs without
// a configured database.
package memorystorage

import (
	"context"

	"github.com/patric-chuzhbe/notekeeper/internal/db/jsondb"
	"github.com/patric-chuzhbe/notekeeper/internal/note"
	"github.com/patric-chuzhbe/notekeeper/internal/user"
)

// MemoryStorage is a jsondb without a backing file.
type MemoryStorage struct {
	*jsondb.JSONDB
}

// New returns an empty in-memory storage.
func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		JSONDB: &jsondb.JSONDB{
			Cache: jsondb.CacheStruct{
				Users: map[string]*user.User{},
				Notes: map[string]*note.Note{},
			},
		},
	}, nil
}

// Close is a no-op: there is nothing to persist.
func (theStorage *MemoryStorage) Close() error {
	return nil
}

// Ping always succeeds.
func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}
