package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

func TestSignup_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/signup", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@x.com", body["email"])

		json.NewEncoder(w).Encode(User{ID: "u1", Email: "a@x.com", EmailVerified: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	u, err := c.Signup(context.Background(), "a@x.com", "Alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestSignup_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "email already registered", http.StatusConflict)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Signup(context.Background(), "a@x.com", "Alice", "pw123")
	assert.ErrorIs(t, err, common.ErrEmailAlreadyExists)
}

func TestLogin_OK(t *testing.T) {
	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/login", r.URL.Path)
		json.NewEncoder(w).Encode(Token{Token: "opaque", ExpiresAt: expiry})
	}))
	defer srv.Close()

	tok, err := NewClient(srv.URL).Login(context.Background(), "a@x.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "opaque", tok.Token)
	assert.True(t, tok.ExpiresAt.Equal(expiry))
}

func TestLogin_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "authentication failed", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogout_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/logout", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).Logout(context.Background(), "opaque"))
}

func TestValidate_Invalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Validate(context.Background(), "dead")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Validate(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrInvalidToken))
}
