// Package auth issues and validates JWT-based session tokens and
// provides the middleware gating every note operation. Tokens are
// carried in a cookie or the Authorization header. It also owns the
// password hashing used by registration and sign-in.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/patric-chuzhbe/notekeeper/internal/logger"
	"github.com/patric-chuzhbe/notekeeper/internal/models"
)

// ErrUnauthenticated is returned when a session token is absent,
// malformed, signature-invalid or expired.
var ErrUnauthenticated = errors.New("authentication required")

// Auth handles session tokens: creation, validation, the cookie they
// live in, and the HTTP middleware that enforces them.
type Auth struct {
	// authCookieName is the name of the cookie used to store the JWT.
	authCookieName string

	// signingSecretKey is the key used to sign JWTs.
	signingSecretKey []byte

	// sessionTTL is the validity window of an issued token.
	sessionTTL time.Duration
}

// Claims represents the JWT claims used by the system.
// It embeds standard JWT claims and adds a user-specific identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// ContextKey is a custom type for storing values in context to avoid collisions.
type ContextKey string

// UserIDKey is the context key used to store and retrieve the authenticated user's ID.
const UserIDKey ContextKey = "userID"

// New creates a new Auth handler with the given cookie name, JWT
// signing secret and session lifetime.
func New(authCookieName string, signingSecretKey []byte, sessionTTL time.Duration) *Auth {
	return &Auth{
		authCookieName:   authCookieName,
		signingSecretKey: signingSecretKey,
		sessionTTL:       sessionTTL,
	}
}

// HashPassword hashes a raw password with bcrypt.
func HashPassword(rawPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword compares a stored bcrypt hash against a raw password.
func VerifyPassword(passwordHash, rawPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(rawPassword)) == nil
}

// CreateSession produces a signed token bound to the user ID, valid for
// the configured session lifetime. The token is the sole artifact the
// client retains.
func (a *Auth) CreateSession(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.sessionTTL)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(a.signingSecretKey)
}

// ValidateSession checks the token signature and expiry and returns the
// bound user ID. Any failure is reported as ErrUnauthenticated.
func (a *Auth) ValidateSession(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.signingSecretKey, nil
		},
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrUnauthenticated
	}

	return claims.UserID, nil
}

// SetSessionCookie attaches the session token to the response.
func (a *Auth) SetSessionCookie(response http.ResponseWriter, tokenString string) {
	http.SetCookie(
		response,
		&http.Cookie{
			Name:     a.authCookieName,
			Value:    tokenString,
			Path:     "/",
			HttpOnly: true,
			Expires:  time.Now().Add(a.sessionTTL),
		},
	)
}

// ClearSessionCookie expires the session cookie, which is all that
// sign-out needs for a stateless token.
func (a *Auth) ClearSessionCookie(response http.ResponseWriter) {
	http.SetCookie(
		response,
		&http.Cookie{
			Name:     a.authCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		},
	)
}

// UserIDFromRequest extracts and validates the session token carried by
// the request in the Authorization header or the auth cookie.
func (a *Auth) UserIDFromRequest(request *http.Request) (string, error) {
	return a.ValidateSession(a.tokenStringFromRequest(request))
}

func (a *Auth) tokenStringFromRequest(request *http.Request) string {
	tokenString := request.Header.Get("Authorization")
	if tokenString != "" {
		return tokenString
	}
	cookie, err := request.Cookie(a.authCookieName)
	if err == nil {
		tokenString = cookie.Value
	}

	return tokenString
}

// AuthenticateUser is an HTTP middleware that validates the session
// before the handler runs. Requests without a valid session are
// rejected with 401 and the error envelope; the storage layer is never
// reached for them.
func (a *Auth) AuthenticateUser(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		userID, err := a.UserIDFromRequest(request)
		if err != nil {
			logger.Log.Debugln("session validation failed:", err)

			response.Header().Set("Content-Type", "application/json")
			response.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(response).Encode(models.Response{
				Success: false,
				Error:   ErrUnauthenticated.Error(),
			})

			return
		}

		ctx := context.WithValue(request.Context(), UserIDKey, userID)
		h.ServeHTTP(response, request.WithContext(ctx))
	}

	return http.HandlerFunc(middleware)
}

// UserIDFromContext returns the authenticated user ID placed into the
// context by AuthenticateUser.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}
