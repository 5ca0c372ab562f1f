// Package users declares the persistence contract for account records.
package users

import (
	"context"

	"github.com/dmitrijs2005/sessionkeeper/internal/server/models"
)

// Repository defines storage operations for users. Implementations return
// common.ErrorNotFound when a lookup matches nothing and
// common.ErrEmailAlreadyExists when an insert hits the unique email index.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// LockByID takes a row lock on the user inside the current transaction.
	// Login uses it to serialize concurrent token minting per user.
	LockByID(ctx context.Context, id string) error
}
