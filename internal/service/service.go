// Package service implements the application operations over the
// storage layer: registration, sign-in and the owner-scoped note CRUD.
// It is the single boundary translating storage and credential failures
// into the tagged Error type consumed by the transport layer.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/patric-chuzhbe/notekeeper/internal/auth"
	"github.com/patric-chuzhbe/notekeeper/internal/db/storage"
	"github.com/patric-chuzhbe/notekeeper/internal/logger"
	"github.com/patric-chuzhbe/notekeeper/internal/models"
	"github.com/patric-chuzhbe/notekeeper/internal/note"
	"github.com/patric-chuzhbe/notekeeper/internal/user"
)

type userKeeper interface {
	CreateUser(ctx context.Context, usr *user.User) error
	FindUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUserByID(ctx context.Context, userID string) (*user.User, error)
}

type noteKeeper interface {
	CreateNote(ctx context.Context, n *note.Note) error
	GetUserNotes(ctx context.Context, userID string) ([]note.Note, error)
	GetUserNoteByID(ctx context.Context, noteID, userID string) (*note.Note, error)
	UpdateUserNote(ctx context.Context, noteID, userID string, patch note.Patch) (*note.Note, error)
	DeleteUserNote(ctx context.Context, noteID, userID string) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type noteStorage interface {
	userKeeper
	noteKeeper
	pinger
}

// Service wires the storage layer to the HTTP surface.
type Service struct {
	db       noteStorage
	validate *validator.Validate
}

// New constructs a Service over the given storage.
func New(db noteStorage) *Service {
	return &Service{
		db:       db,
		validate: validator.New(),
	}
}

// Register creates a new user with a hashed password and returns the
// public projection. The email is normalized to lowercase before the
// uniqueness check.
func (s *Service) Register(ctx context.Context, request models.RegisterRequest) (*models.PublicUser, error) {
	request.Email = normalizeEmail(request.Email)
	if err := s.validate.Struct(request); err != nil {
		return nil, errValidation("name, email and password are required")
	}

	passwordHash, err := auth.HashPassword(request.Password)
	if err != nil {
		logger.Log.Errorln("password hashing failed:", err)
		return nil, errInternal()
	}

	now := time.Now().UTC()
	usr := user.User{
		ID:           uuid.New().String(),
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.CreateUser(ctx, &usr); err != nil {
		if errors.Is(err, storage.ErrEmailAlreadyTaken) {
			return nil, errDuplicateEmail("user with this email already exists")
		}
		logger.Log.Errorln("user creation failed:", err)
		return nil, errInternal()
	}

	return &models.PublicUser{
		ID:    usr.ID,
		Name:  usr.Name,
		Email: usr.Email,
	}, nil
}

// Login verifies the credentials and returns the user identity.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, request models.LoginRequest) (*user.User, error) {
	request.Email = normalizeEmail(request.Email)
	if err := s.validate.Struct(request); err != nil {
		return nil, errUnauthenticated("invalid email or password")
	}

	usr, err := s.db.FindUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errUnauthenticated("invalid email or password")
		}
		logger.Log.Errorln("user lookup failed:", err)
		return nil, errInternal()
	}

	if !auth.VerifyPassword(usr.PasswordHash, request.Password) {
		return nil, errUnauthenticated("invalid email or password")
	}

	return usr, nil
}

// ListNotes returns the caller's notes, most recently updated first.
func (s *Service) ListNotes(ctx context.Context, userID string) ([]note.Note, error) {
	notes, err := s.db.GetUserNotes(ctx, userID)
	if err != nil {
		logger.Log.Errorln("notes listing failed:", err)
		return nil, errInternal()
	}

	return notes, nil
}

// CreateNote validates and persists a new note owned by userID.
// Creation and update timestamps start out equal.
func (s *Service) CreateNote(ctx context.Context, userID string, request models.CreateNoteRequest) (*note.Note, error) {
	if err := s.validate.Struct(request); err != nil {
		return nil, errValidation("title and content are required")
	}

	now := time.Now().UTC()
	n := note.Note{
		ID:        uuid.New().String(),
		Title:     request.Title,
		Content:   request.Content,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.CreateNote(ctx, &n); err != nil {
		logger.Log.Errorln("note creation failed:", err)
		return nil, errInternal()
	}

	return &n, nil
}

// GetNote fetches a single note of the caller.
func (s *Service) GetNote(ctx context.Context, noteID, userID string) (*note.Note, error) {
	n, err := s.db.GetUserNoteByID(ctx, noteID, userID)
	if err != nil {
		return nil, s.translateNoteError(err)
	}

	return n, nil
}

// UpdateNote applies a partial update to the caller's note and
// refreshes its update timestamp. At least one field must be supplied.
func (s *Service) UpdateNote(ctx context.Context, noteID, userID string, request models.UpdateNoteRequest) (*note.Note, error) {
	patch := note.Patch{
		Title:   request.Title,
		Content: request.Content,
	}
	if patch.Empty() {
		return nil, errValidation("please provide title or content to update")
	}
	if patch.Title != nil && *patch.Title == "" {
		return nil, errValidation("title must not be empty")
	}

	n, err := s.db.UpdateUserNote(ctx, noteID, userID, patch)
	if err != nil {
		return nil, s.translateNoteError(err)
	}

	return n, nil
}

// DeleteNote removes the caller's note permanently. Deleting the same
// note again reports NotFound, not success.
func (s *Service) DeleteNote(ctx context.Context, noteID, userID string) error {
	if err := s.db.DeleteUserNote(ctx, noteID, userID); err != nil {
		return s.translateNoteError(err)
	}

	return nil
}

// Ping checks the health of the storage layer.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Service) translateNoteError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound("note not found")
	}
	logger.Log.Errorln("note operation failed:", err)
	return errInternal()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
