// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, logout, and validation of opaque
// session tokens stored server-side.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/dbx"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/config"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/repositories/tokens"
)

// UserService provides authentication-related operations:
//   - Signup: create users with a bcrypt password digest
//   - Login: verify credentials and reuse or mint a session token
//   - Logout: revoke a token (idempotent)
//   - ValidateToken: resolve a live token to its owning user
//
// The wall clock is injected via the now field so expiry behavior is
// deterministic in tests.
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	tokenValidity time.Duration
	tokenLength   int
	bcryptCost    int
	now           func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		tokenValidity: cfg.TokenValidityDuration,
		tokenLength:   cfg.TokenLength,
		bcryptCost:    cfg.BcryptCost,
		now:           time.Now,
	}
}

// WithClock replaces the service's time source. Intended for tests.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

// Signup creates a new user with the given email, display name, and password.
// The password is hashed with bcrypt; the plaintext is never stored. The user
// starts with EmailVerified=true (there is no verification flow) and
// Deleted=false. A duplicate email yields common.ErrEmailAlreadyExists.
func (s *UserService) Signup(ctx context.Context, email, name, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, common.ErrValidation
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:          email,
		Name:           name,
		HashedPassword: string(digest),
		EmailVerified:  true,
		Deleted:        false,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the email/password pair and returns a live session token.
//
// An unknown email yields common.ErrUserNotFound and a password mismatch
// yields common.ErrInvalidCredentials; the HTTP layer surfaces both the same
// way so callers cannot probe which one happened.
//
// Session reuse: the user's tokens are scanned inside a transaction holding a
// row lock on the user, and the first live one (not revoked, expiry after
// now) is returned. Only when none qualifies is a new token minted. The lock
// guarantees at most one concurrent mint per user. Which live token is
// returned when several exist is arbitrary (insertion order today) — callers
// may only rely on it being live.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.Token, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	var token *models.Token
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).LockByID(ctx, user.ID); err != nil {
			return err
		}

		tokensTx := s.repomanager.Tokens(tx)
		existing, err := tokensTx.FindByUser(ctx, user.ID)
		if err != nil {
			return err
		}

		now := s.now()
		for _, t := range existing {
			if t.Live(now) {
				token = t
				return nil
			}
		}

		var mintErr error
		token, mintErr = s.mintToken(ctx, tokensTx, user.ID, now)
		return mintErr
	}); err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return token, nil
}

// Logout revokes the token with the given value. Unknown and already revoked
// values are silently ignored, so the operation is idempotent.
func (s *UserService) Logout(ctx context.Context, tokenValue string) error {
	repo := s.repomanager.Tokens(s.db)
	token, err := repo.FindByValueAndRevoked(ctx, tokenValue, false)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("error searching token: %w", err)
	}
	if err := repo.Revoke(ctx, token.ID); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// ValidateToken resolves a token value to its owning user. An absent,
// revoked, or expired token yields common.ErrInvalidToken; the three cases
// are deliberately indistinguishable to the caller.
func (s *UserService) ValidateToken(ctx context.Context, tokenValue string) (*models.User, error) {
	repo := s.repomanager.Tokens(s.db)
	token, err := repo.FindLiveByValue(ctx, tokenValue, s.now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching token: %w", err)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("error loading token owner: %w", err)
	}
	return user, nil
}

// --- helpers below ---

func (s *UserService) mintToken(ctx context.Context, repo tokens.Repository, userID string, now time.Time) (*models.Token, error) {
	value, err := common.MakeRandAlphanumericString(s.tokenLength)
	if err != nil {
		return nil, common.ErrorInternal
	}
	token := &models.Token{
		UserID:    userID,
		Value:     value,
		ExpiresAt: now.Add(s.tokenValidity),
	}
	return repo.Create(ctx, token)
}
