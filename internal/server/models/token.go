package models

import "time"

// Token is an opaque bearer session. Value is the secret presented by
// clients; it is returned once at issuance and never logged. A token is live
// while Revoked is false and ExpiresAt is in the future. Rows are never
// physically deleted.
type Token struct {
	ID        string
	UserID    string
	Value     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// Live reports whether the token is neither revoked nor expired at now.
func (t *Token) Live(now time.Time) bool {
	return !t.Revoked && t.ExpiresAt.After(now)
}
