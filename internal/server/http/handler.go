package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/models"
)

// UserService is the part of the core the HTTP boundary consumes.
type UserService interface {
	Signup(ctx context.Context, email, name, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.Token, error)
	Logout(ctx context.Context, tokenValue string) error
	ValidateToken(ctx context.Context, tokenValue string) (*models.User, error)
}

type Handler struct {
	users  UserService
	logger logging.Logger
}

func NewHandler(users UserService, l logging.Logger) *Handler {
	return &Handler{users: users, logger: l.With("module", "http_handler")}
}

// NewRouter mounts the user endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/validate/{token}", h.ValidateToken)
	})

	return r
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logoutRequest struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"email_verified"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func userToResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, EmailVerified: u.EmailVerified}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.Signup(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			http.Error(w, "email and password are required", http.StatusBadRequest)
		case errors.Is(err, common.ErrEmailAlreadyExists):
			http.Error(w, "email already registered", http.StatusConflict)
		default:
			h.logger.Error(r.Context(), "signup failed", "error", err.Error())
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", user.ID)
	writeJSON(w, http.StatusOK, userToResponse(user))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		// Unknown account and bad password surface identically; the
		// distinction stays in the logs.
		case errors.Is(err, common.ErrUserNotFound):
			h.logger.Warn(r.Context(), "login failed", "reason", "user not found")
			http.Error(w, "authentication failed", http.StatusForbidden)
		case errors.Is(err, common.ErrInvalidCredentials):
			h.logger.Warn(r.Context(), "login failed", "reason", "password mismatch")
			http.Error(w, "authentication failed", http.StatusForbidden)
		default:
			h.logger.Error(r.Context(), "login failed", "error", err.Error())
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	// The token value appears only in the response, never in logs.
	h.logger.Info(r.Context(), "login ok", "user_id", token.UserID, "token_id", token.ID)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token.Value, ExpiresAt: token.ExpiresAt})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.users.Logout(r.Context(), req.Token); err != nil {
		h.logger.Error(r.Context(), "logout failed", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	tokenValue := chi.URLParam(r, "token")

	user, err := h.users.ValidateToken(r.Context(), tokenValue)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		h.logger.Error(r.Context(), "validate failed", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
