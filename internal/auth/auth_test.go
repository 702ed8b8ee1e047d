package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/notekeeper/internal/models"
)

const testCookieName = "test_auth"

var testSigningKey = []byte("test-signing-key")

func TestSessionRoundTrip(t *testing.T) {
	theAuth := New(testCookieName, testSigningKey, time.Hour)

	token, err := theAuth.CreateSession("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := theAuth.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateSessionFailures(t *testing.T) {
	theAuth := New(testCookieName, testSigningKey, time.Hour)

	t.Run("empty token", func(t *testing.T) {
		_, err := theAuth.ValidateSession("")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := theAuth.ValidateSession("not.a.jwt")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		otherAuth := New(testCookieName, []byte("another-key"), time.Hour)
		token, err := otherAuth.CreateSession("user-1")
		require.NoError(t, err)

		_, err = theAuth.ValidateSession(token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredAuth := New(testCookieName, testSigningKey, -time.Minute)
		token, err := expiredAuth.CreateSession("user-1")
		require.NoError(t, err)

		_, err = theAuth.ValidateSession(token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "secret1")

	assert.True(t, VerifyPassword(hash, "secret1"))
	assert.False(t, VerifyPassword(hash, "secret2"))
	assert.False(t, VerifyPassword("", "secret1"))
}

func TestAuthenticateUserMiddleware(t *testing.T) {
	theAuth := New(testCookieName, testSigningKey, time.Hour)

	var seenUserID string
	handler := theAuth.AuthenticateUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no token yields 401 envelope", func(t *testing.T) {
		seenUserID = ""
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, seenUserID)

		envelope := models.Response{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.False(t, envelope.Success)
		assert.Equal(t, "authentication required", envelope.Error)
	})

	t.Run("token in Authorization header", func(t *testing.T) {
		token, err := theAuth.CreateSession("user-42")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		req.Header.Set("Authorization", token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-42", seenUserID)
	})

	t.Run("token in cookie", func(t *testing.T) {
		token, err := theAuth.CreateSession("user-43")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-43", seenUserID)
	})
}

func TestSessionCookieLifecycle(t *testing.T) {
	theAuth := New(testCookieName, testSigningKey, time.Hour)

	rec := httptest.NewRecorder()
	theAuth.SetSessionCookie(rec, "the-token")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookieName, cookies[0].Name)
	assert.Equal(t, "the-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec = httptest.NewRecorder()
	theAuth.ClearSessionCookie(rec)

	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
