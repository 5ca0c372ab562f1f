// Package tokens declares the persistence contract for session tokens.
package tokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/server/models"
)

// Repository defines storage operations for session tokens. Tokens are never
// physically deleted; revocation flips the revoked flag.
type Repository interface {
	// Create stores a new token and returns it with its assigned id.
	Create(ctx context.Context, token *models.Token) (*models.Token, error)

	// FindByUser returns all tokens owned by the user, oldest first.
	FindByUser(ctx context.Context, userID string) ([]*models.Token, error)

	// FindByValueAndRevoked looks up a token by value and revoked flag.
	// Returns common.ErrorNotFound when nothing matches.
	FindByValueAndRevoked(ctx context.Context, value string, revoked bool) (*models.Token, error)

	// FindLiveByValue returns the token with the given value that is not
	// revoked and expires strictly after now, or common.ErrorNotFound.
	FindLiveByValue(ctx context.Context, value string, now time.Time) (*models.Token, error)

	// Revoke sets the revoked flag on the token with the given id.
	Revoke(ctx context.Context, id string) error
}
