// Package postgresdb provides the PostgreSQL-based implementation of the
// storage interface for persisting users and their notes.
// Schema migrations are applied with goose on startup.
package postgresdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/patric-chuzhbe/notekeeper/internal/db/storage"
	"github.com/patric-chuzhbe/notekeeper/internal/note"
	"github.com/patric-chuzhbe/notekeeper/internal/user"
)

const uniqueViolationCode = "23505"

// PostgresDB is a PostgreSQL-backed implementation of the storage interface.
type PostgresDB struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

// New establishes a connection to the PostgreSQL database, runs schema
// migrations, and returns a configured PostgresDB instance.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	migrationsDir string,
) (*PostgresDB, error) {
	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, err
	}

	result := &PostgresDB{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("error while `goose.SetDialect()` calling: %w", err)
	}

	if err := goose.Up(result.database, migrationsDir); err != nil {
		return nil, fmt.Errorf("error while `goose.Up()` calling: %w", err)
	}

	return result, nil
}

// CreateUser inserts a new user record.
// A unique-violation on the email column is reported as ErrEmailAlreadyTaken.
func (db *PostgresDB) CreateUser(ctx context.Context, usr *user.User) error {
	_, err := db.database.ExecContext(
		ctx,
		`
			INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6)
		`,
		usr.ID,
		usr.Name,
		usr.Email,
		usr.PasswordHash,
		usr.CreatedAt,
		usr.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return storage.ErrEmailAlreadyTaken
		}
		return err
	}

	return nil
}

// FindUserByEmail fetches a user by the normalized email.
func (db *PostgresDB) FindUserByEmail(ctx context.Context, email string) (*user.User, error) {
	row := db.database.QueryRowContext(
		ctx,
		`
			SELECT id, name, email, password_hash, created_at, updated_at
				FROM users
				WHERE email = $1
		`,
		email,
	)

	return scanUser(row)
}

// GetUserByID fetches a user by their UUID.
func (db *PostgresDB) GetUserByID(ctx context.Context, userID string) (*user.User, error) {
	row := db.database.QueryRowContext(
		ctx,
		`
			SELECT id, name, email, password_hash, created_at, updated_at
				FROM users
				WHERE id = $1
		`,
		userID,
	)

	return scanUser(row)
}

func scanUser(row *sql.Row) (*user.User, error) {
	usr := user.User{}
	err := row.Scan(
		&usr.ID,
		&usr.Name,
		&usr.Email,
		&usr.PasswordHash,
		&usr.CreatedAt,
		&usr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return &usr, nil
}

// CreateNote inserts a new note record owned by n.UserID.
func (db *PostgresDB) CreateNote(ctx context.Context, n *note.Note) error {
	_, err := db.database.ExecContext(
		ctx,
		`
			INSERT INTO notes (id, title, content, user_id, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6)
		`,
		n.ID,
		n.Title,
		n.Content,
		n.UserID,
		n.CreatedAt,
		n.UpdatedAt,
	)

	return err
}

// GetUserNotes returns all notes of the user ordered by most recently
// updated first; exact timestamp ties are broken by ID to keep the
// order deterministic across backends.
func (db *PostgresDB) GetUserNotes(ctx context.Context, userID string) ([]note.Note, error) {
	rows, err := db.database.QueryContext(
		ctx,
		`
			SELECT id, title, content, user_id, created_at, updated_at
				FROM notes
				WHERE user_id = $1
				ORDER BY updated_at DESC, id
		`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []note.Note{}
	for rows.Next() {
		n := note.Note{}
		err = rows.Scan(&n.ID, &n.Title, &n.Content, &n.UserID, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, err
		}

		result = append(result, n)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetUserNoteByID fetches a single note scoped by owner.
func (db *PostgresDB) GetUserNoteByID(ctx context.Context, noteID, userID string) (*note.Note, error) {
	row := db.database.QueryRowContext(
		ctx,
		`
			SELECT id, title, content, user_id, created_at, updated_at
				FROM notes
				WHERE id = $1 AND user_id = $2
		`,
		noteID,
		userID,
	)

	n := note.Note{}
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.UserID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return &n, nil
}

// UpdateUserNote applies the supplied patch fields to the owner's note
// and refreshes the update timestamp, all in a single statement.
func (db *PostgresDB) UpdateUserNote(
	ctx context.Context,
	noteID,
	userID string,
	patch note.Patch,
) (*note.Note, error) {
	row := db.database.QueryRowContext(
		ctx,
		`
			UPDATE notes
				SET title = COALESCE($3, title),
					content = COALESCE($4, content),
					updated_at = now()
				WHERE id = $1 AND user_id = $2
				RETURNING id, title, content, user_id, created_at, updated_at
		`,
		noteID,
		userID,
		patch.Title,
		patch.Content,
	)

	n := note.Note{}
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.UserID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return &n, nil
}

// DeleteUserNote removes the owner's note permanently.
func (db *PostgresDB) DeleteUserNote(ctx context.Context, noteID, userID string) error {
	result, err := db.database.ExecContext(
		ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		noteID,
		userID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// Ping verifies connectivity with the PostgreSQL database within the
// configured timeout.
func (db *PostgresDB) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.database.PingContext(ctxWithTimeout)
}

// Close closes the database connection and releases any associated resources.
func (db *PostgresDB) Close() error {
	return db.database.Close()
}
