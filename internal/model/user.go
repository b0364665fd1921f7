// Package model defines the data structures used throughout the application.
package model

import "time"

// Roles a user account can carry. The admin role unlocks the /api/admin
// routes; everything else is a regular patient account. Roles live on the
// user row so that admin logins go through the same credential path as
// everyone else — there is no out-of-band admin identity.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
//
// Username is the external identifier: unique, case-sensitive, and
// immutable after creation. We still generate an internal xid so that
// foreign keys don't depend on user-chosen text.
//
// PasswordHash holds the bcrypt output. bcrypt embeds its own random salt
// and cost in the hash string, so a single TEXT column is all the schema
// needs. The hash is never serialized to JSON.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"` // optional, free text, not validated
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSummary is the admin listing row: identity and registration info
// without the credential or role columns.
type UserSummary struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
