// Package jsondb implements the storage interface on top of an
// in-memory cache persisted to a JSON file on Close.
package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/patric-chuzhbe/notekeeper/internal/db/storage"
	"github.com/patric-chuzhbe/notekeeper/internal/note"
	"github.com/patric-chuzhbe/notekeeper/internal/user"
)

// JSONDB keeps all records in memory and flushes them to a JSON file
// when closed. Access is guarded by a single RWMutex, so operations on
// a given note are linearizable with respect to each other.
type JSONDB struct {
	fileName string
	mu       sync.RWMutex
	Cache    CacheStruct
}

// CacheStruct is the serialized shape of the database file.
type CacheStruct struct {
	Users map[string]*user.User
	Notes map[string]*note.Note
}

func newCache() CacheStruct {
	return CacheStruct{
		Users: map[string]*user.User{},
		Notes: map[string]*note.Note{},
	}
}

func initDBFile(fileName string) error {
	dbFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dbFile, `{
	"Users": {},
	"Notes": {}
}`)
	if err != nil {
		return err
	}
	return dbFile.Close()
}

func writeToJSONFile(fileName string, cache interface{}) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %s", err)
	}

	file, err2 := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err2 != nil {
		return fmt.Errorf("error opening file: %s", err2)
	}
	defer file.Close()

	_, err = file.Write(jsonData)
	if err != nil {
		return fmt.Errorf("error writing to file: %s", err)
	}

	return nil
}

func parseJSONFile(fileName string, cacheMap *CacheStruct) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	err = decoder.Decode(cacheMap)
	if err != nil {
		return err
	}

	return nil
}

// New loads the database from fileName, creating an empty file first
// when it does not exist yet.
func New(fileName string) (*JSONDB, error) {
	db := JSONDB{
		fileName: fileName,
		Cache:    newCache(),
	}

	err := parseJSONFile(db.fileName, &db.Cache)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		err := initDBFile(fileName)
		if err != nil {
			return nil, err
		}
		err = parseJSONFile(db.fileName, &db.Cache)
		if err != nil {
			return nil, err
		}
	}
	if db.Cache.Users == nil {
		db.Cache.Users = map[string]*user.User{}
	}
	if db.Cache.Notes == nil {
		db.Cache.Notes = map[string]*note.Note{}
	}

	return &db, nil
}

// CreateUser stores a new user, enforcing email uniqueness.
func (db *JSONDB) CreateUser(ctx context.Context, usr *user.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.Cache.Users {
		if strings.EqualFold(existing.Email, usr.Email) {
			return storage.ErrEmailAlreadyTaken
		}
	}

	stored := *usr
	db.Cache.Users[usr.ID] = &stored

	return nil
}

// FindUserByEmail looks a user up by the normalized email.
func (db *JSONDB) FindUserByEmail(ctx context.Context, email string) (*user.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, usr := range db.Cache.Users {
		if usr.Email == email {
			found := *usr
			return &found, nil
		}
	}

	return nil, storage.ErrNotFound
}

// GetUserByID fetches a user by ID.
func (db *JSONDB) GetUserByID(ctx context.Context, userID string) (*user.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	usr, ok := db.Cache.Users[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	found := *usr
	return &found, nil
}

// CreateNote stores a new note.
func (db *JSONDB) CreateNote(ctx context.Context, n *note.Note) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	stored := *n
	db.Cache.Notes[n.ID] = &stored

	return nil
}

// GetUserNotes returns the user's notes ordered by most recently
// updated first.
func (db *JSONDB) GetUserNotes(ctx context.Context, userID string) ([]note.Note, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	result := []note.Note{}
	for _, n := range db.Cache.Notes {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// GetUserNoteByID fetches a single note scoped by owner.
func (db *JSONDB) GetUserNoteByID(ctx context.Context, noteID, userID string) (*note.Note, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	n, ok := db.Cache.Notes[noteID]
	if !ok || n.UserID != userID {
		return nil, storage.ErrNotFound
	}

	found := *n
	return &found, nil
}

// UpdateUserNote applies the supplied patch fields and refreshes the
// update timestamp.
func (db *JSONDB) UpdateUserNote(
	ctx context.Context,
	noteID,
	userID string,
	patch note.Patch,
) (*note.Note, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n, ok := db.Cache.Notes[noteID]
	if !ok || n.UserID != userID {
		return nil, storage.ErrNotFound
	}

	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	n.UpdatedAt = time.Now().UTC()

	updated := *n
	return &updated, nil
}

// DeleteUserNote removes the owner's note permanently.
func (db *JSONDB) DeleteUserNote(ctx context.Context, noteID, userID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	n, ok := db.Cache.Notes[noteID]
	if !ok || n.UserID != userID {
		return storage.ErrNotFound
	}

	delete(db.Cache.Notes, noteID)

	return nil
}

// Ping always succeeds for the file-backed storage.
func (db *JSONDB) Ping(ctx context.Context) error {
	return nil
}

// Close flushes the cache to the backing JSON file.
func (db *JSONDB) Close() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return writeToJSONFile(db.fileName, db.Cache)
}
