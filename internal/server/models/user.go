// Package models contains the persistent entities of the session service.
package models

import "time"

// User is an account record. HashedPassword holds the bcrypt digest; the
// plaintext password is never stored. Deleted is a soft-delete marker that no
// operation currently sets.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	EmailVerified  bool
	Deleted        bool
	CreatedAt      time.Time
}
