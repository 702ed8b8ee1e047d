// Package router wires the HTTP surface: the JSON API under /api with
// the uniform response envelope, the health endpoint, and the small set
// of page routes guarded by the session-based gatekeeper.
package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/patric-chuzhbe/notekeeper/internal/auth"
	"github.com/patric-chuzhbe/notekeeper/internal/gzippedhttp"
	"github.com/patric-chuzhbe/notekeeper/internal/logger"
	"github.com/patric-chuzhbe/notekeeper/internal/models"
	"github.com/patric-chuzhbe/notekeeper/internal/note"
	"github.com/patric-chuzhbe/notekeeper/internal/user"
)

type noteService interface {
	Register(ctx context.Context, request models.RegisterRequest) (*models.PublicUser, error)
	Login(ctx context.Context, request models.LoginRequest) (*user.User, error)
	ListNotes(ctx context.Context, userID string) ([]note.Note, error)
	CreateNote(ctx context.Context, userID string, request models.CreateNoteRequest) (*note.Note, error)
	GetNote(ctx context.Context, noteID, userID string) (*note.Note, error)
	UpdateNote(ctx context.Context, noteID, userID string, request models.UpdateNoteRequest) (*note.Note, error)
	DeleteNote(ctx context.Context, noteID, userID string) error
	Ping(ctx context.Context) error
}

// Router holds the handlers of the HTTP API.
type Router struct {
	service noteService
	auth    *auth.Auth
}

// New assembles the chi mux with logging, gzip and authentication
// middleware and all routes of the service.
func New(svc noteService, theAuth *auth.Auth) *chi.Mux {
	rt := &Router{
		service: svc,
		auth:    theAuth,
	}

	router := chi.NewRouter()
	router.Use(
		logger.WithLoggingHTTPMiddleware,
		gzippedhttp.UngzipRequest,
		gzippedhttp.GzipResponse,
	)

	router.Route(`/api`, func(api chi.Router) {
		api.Post(`/register`, rt.PostRegister)
		api.Post(`/session`, rt.PostSession)
		api.With(theAuth.AuthenticateUser).Delete(`/session`, rt.DeleteSession)

		api.Route(`/notes`, func(notes chi.Router) {
			notes.Use(theAuth.AuthenticateUser)
			notes.Get(`/`, rt.GetNotes)
			notes.Post(`/`, rt.PostNotes)
			notes.Get(`/{id}`, rt.GetNote)
			notes.Put(`/{id}`, rt.PutNote)
			notes.Delete(`/{id}`, rt.DeleteNote)
		})
	})

	router.Get(`/ping`, rt.GetPing)

	router.Group(func(pages chi.Router) {
		pages.Use(rt.GuardPages)
		pages.Get(`/`, rt.GetLandingPage)
		pages.Get(`/login`, rt.GetLoginPage)
		pages.Get(`/register`, rt.GetRegisterPage)
		pages.Get(`/dashboard`, rt.GetDashboardPage)
	})

	return router
}

// PostRegister handles new user registration.
func (rt *Router) PostRegister(response http.ResponseWriter, request *http.Request) {
	registerRequest := models.RegisterRequest{}
	if err := json.NewDecoder(request.Body).Decode(&registerRequest); err != nil {
		respondError(response, http.StatusBadRequest, "invalid request body")
		return
	}

	publicUser, err := rt.service.Register(request.Context(), registerRequest)
	if err != nil {
		respondServiceError(response, err)
		return
	}

	respondData(response, http.StatusCreated, publicUser)
}

// PostSession handles sign-in: it verifies the credentials, issues a
// session token and sets it as the auth cookie.
func (rt *Router) PostSession(response http.ResponseWriter, request *http.Request) {
	loginRequest := models.LoginRequest{}
	if err := json.NewDecoder(request.Body).Decode(&loginRequest); err != nil {
		respondError(response, http.StatusBadRequest, "invalid request body")
		return
	}

	usr, err := rt.service.Login(request.Context(), loginRequest)
	if err != nil {
		respondServiceError(response, err)
		return
	}

	tokenString, err := rt.auth.CreateSession(usr.ID)
	if err != nil {
		logger.Log.Errorln("session creation failed:", err)
		respondError(response, http.StatusInternalServerError, "internal error")
		return
	}

	rt.auth.SetSessionCookie(response, tokenString)
	respondData(response, http.StatusOK, models.SessionResponse{Token: tokenString})
}

// DeleteSession handles sign-out by expiring the auth cookie. The token
// itself is stateless, so there is nothing to revoke server-side.
func (rt *Router) DeleteSession(response http.ResponseWriter, request *http.Request) {
	rt.auth.ClearSessionCookie(response)
	respondData(response, http.StatusOK, struct{}{})
}

// GetNotes returns the caller's notes, most recently updated first.
func (rt *Router) GetNotes(response http.ResponseWriter, request *http.Request) {
	userID, _ := auth.UserIDFromContext(request.Context())

	notes, err := rt.service.ListNotes(request.Context(), userID)
	if err != nil {
		respondServiceError(response, err)
		return
	}

	respondData(response, http.StatusOK, notes)
}

// PostNotes creates a note owned by the caller.
func (rt *Router) PostNotes(response http.ResponseWriter, request *http.Request) {
	userID, _ := auth.UserIDFromContext(request.Context())

	createRequest := models.CreateNoteRequest{}
	if err := json.NewDecoder(request.Body).Decode(&createRequest); err != nil {
		respondError(response, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := rt.service.CreateNote(request.Context(), userID, createRequest)
	if err != nil {
		respondServiceError(response, err)
		return
	}

	respondData(response, http.StatusCreated, created)
}

// GetNote returns one note of the caller.
func (rt *Router) GetNote(response http.ResponseWriter, request *http.Request) {
	userID, _ := auth.UserIDFromContext(request.Context())

	found, err := rt.service.GetNote(request.Context(), chi.URLParam(request, "id"), userID)
	if err != nil {
		respondServiceError(response, err)
		return
	}

	respondData(response, http.StatusOK, found)
}

// PutNote applies a partial update to one note of the caller.
func (rt *Router) PutNote(response http.ResponseWriter, request *http.Request) {
	userID, _ := auth.UserIDFromContext(request.Context())

	updateRequest := models.UpdateNoteRequest{}
	if err := json.NewDecoder(request.Body).Decode(&updateRequest); err != nil {
		respondError(response, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := rt.service.UpdateNote(request.Context(), chi.URLParam(request, "id"), userID, updateRequest)
	if err != nil {
		respondServiceError(response, err)
		return
	}

	respondData(response, http.StatusOK, updated)
}

// DeleteNote removes one note of the caller permanently.
func (rt *Router) DeleteNote(response http.ResponseWriter, request *http.Request) {
	userID, _ := auth.UserIDFromContext(request.Context())

	if err := rt.service.DeleteNote(request.Context(), chi.URLParam(request, "id"), userID); err != nil {
		respondServiceError(response, err)
		return
	}

	respondData(response, http.StatusOK, struct{}{})
}

// GetPing reports storage health.
func (rt *Router) GetPing(response http.ResponseWriter, request *http.Request) {
	if err := rt.service.Ping(request.Context()); err != nil {
		logger.Log.Errorln("storage ping failed:", err)
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	response.WriteHeader(http.StatusOK)
}
