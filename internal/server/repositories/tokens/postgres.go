// Package tokens provides a PostgreSQL-backed repository for session tokens.
package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/dbx"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the token with a freshly assigned UUID. A unique-index
// violation on value maps to common.ErrDuplicateTokenValue.
func (r *PostgresRepository) Create(ctx context.Context, token *models.Token) (*models.Token, error) {
	query := `
		INSERT INTO tokens (id, user_id, value, expires_at, revoked)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	token.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		token.ID, token.UserID, token.Value, token.ExpiresAt, token.Revoked).
		Scan(&token.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrDuplicateTokenValue
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

// FindByUser returns all tokens of the user in insertion order.
func (r *PostgresRepository) FindByUser(ctx context.Context, userID string) ([]*models.Token, error) {
	query := `
		SELECT id, user_id, value, expires_at, revoked, created_at
		FROM tokens
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Token
	for rows.Next() {
		token := &models.Token{}
		if err := rows.Scan(&token.ID, &token.UserID, &token.Value,
			&token.ExpiresAt, &token.Revoked, &token.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// FindByValueAndRevoked returns the token with the given value and revoked
// flag, or common.ErrorNotFound.
func (r *PostgresRepository) FindByValueAndRevoked(ctx context.Context, value string, revoked bool) (*models.Token, error) {
	query := `
		SELECT id, user_id, value, expires_at, revoked, created_at
		FROM tokens
		WHERE value = $1 AND revoked = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, value, revoked))
}

// FindLiveByValue returns the non-revoked token with the given value whose
// expiry is strictly after now, or common.ErrorNotFound.
func (r *PostgresRepository) FindLiveByValue(ctx context.Context, value string, now time.Time) (*models.Token, error) {
	query := `
		SELECT id, user_id, value, expires_at, revoked, created_at
		FROM tokens
		WHERE value = $1 AND revoked = false AND expires_at > $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, value, now))
}

// Revoke marks the token as revoked. Revoking an already revoked token is a
// no-op.
func (r *PostgresRepository) Revoke(ctx context.Context, id string) error {
	query := `
		UPDATE tokens SET revoked = true
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Token, error) {
	token := &models.Token{}
	err := row.Scan(&token.ID, &token.UserID, &token.Value,
		&token.ExpiresAt, &token.Revoked, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}
