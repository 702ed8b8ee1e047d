// Package client is the HTTP client of the notekeeper API. It carries
// the session token obtained at sign-in on every subsequent request and
// unwraps the response envelope into plain results.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/patric-chuzhbe/notekeeper/internal/models"
	"github.com/patric-chuzhbe/notekeeper/internal/note"
)

// ErrUnauthenticated is returned when the server rejects the session.
var ErrUnauthenticated = errors.New("authentication required")

// ErrNotFound is returned when the requested note does not exist for
// the signed-in user.
var ErrNotFound = errors.New("note not found")

// Client talks to a notekeeper server.
type Client struct {
	http  *resty.Client
	token string
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL),
	}
}

// Token returns the session token held after a successful sign-in.
func (c *Client) Token() string {
	return c.token
}

// Register creates a new account and returns its public projection.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.PublicUser, error) {
	publicUser := models.PublicUser{}
	if err := c.call(ctx, resty.MethodPost, "/api/register", models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &publicUser); err != nil {
		return nil, err
	}

	return &publicUser, nil
}

// Login signs in and stores the session token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	session := models.SessionResponse{}
	if err := c.call(ctx, resty.MethodPost, "/api/session", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &session); err != nil {
		return err
	}

	c.token = session.Token

	return nil
}

// Logout signs out and discards the held token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.call(ctx, resty.MethodDelete, "/api/session", nil, nil); err != nil {
		return err
	}

	c.token = ""

	return nil
}

// Notes fetches the signed-in user's notes, newest-updated first.
func (c *Client) Notes(ctx context.Context) ([]note.Note, error) {
	notes := []note.Note{}
	if err := c.call(ctx, resty.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}

	return notes, nil
}

// CreateNote creates a note and returns the server's confirmed copy.
func (c *Client) CreateNote(ctx context.Context, title, content string) (*note.Note, error) {
	created := note.Note{}
	if err := c.call(ctx, resty.MethodPost, "/api/notes", models.CreateNoteRequest{
		Title:   title,
		Content: content,
	}, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// GetNote fetches one note by ID.
func (c *Client) GetNote(ctx context.Context, noteID string) (*note.Note, error) {
	found := note.Note{}
	if err := c.call(ctx, resty.MethodGet, "/api/notes/"+noteID, nil, &found); err != nil {
		return nil, err
	}

	return &found, nil
}

// UpdateNote applies a partial update and returns the confirmed copy.
func (c *Client) UpdateNote(ctx context.Context, noteID string, patch models.UpdateNoteRequest) (*note.Note, error) {
	updated := note.Note{}
	if err := c.call(ctx, resty.MethodPut, "/api/notes/"+noteID, patch, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteNote removes one note permanently.
func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	return c.call(ctx, resty.MethodDelete, "/api/notes/"+noteID, nil, nil)
}

func (c *Client) call(ctx context.Context, method, url string, body any, result any) error {
	request := c.http.R().SetContext(ctx)
	if body != nil {
		request.SetHeader("Content-Type", "application/json")
		request.SetBody(body)
	}
	if c.token != "" {
		request.SetHeader("Authorization", c.token)
	}

	response, err := request.Execute(method, url)
	if err != nil {
		return err
	}

	envelope := models.Response{}
	if err := json.Unmarshal(response.Body(), &envelope); err != nil {
		return fmt.Errorf("malformed server response: %w", err)
	}

	if !envelope.Success {
		return c.envelopeError(response.StatusCode(), envelope.Error)
	}

	if result != nil {
		// Data was decoded into `any`; re-marshal it into the caller's type.
		rawData, err := json.Marshal(envelope.Data)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(rawData, result); err != nil {
			return fmt.Errorf("malformed server response: %w", err)
		}
	}

	return nil
}

func (c *Client) envelopeError(statusCode int, message string) error {
	switch statusCode {
	case 401:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, message)
	case 404:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	default:
		return errors.New(message)
	}
}
