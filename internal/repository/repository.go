// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage is the production implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/healthfinder/internal/model"
)

// DefaultHistoryLimit caps history reads when the caller doesn't ask for
// a specific count.
const DefaultHistoryLimit = 10

// UserRepository manages account rows. Usernames are unique and immutable;
// uniqueness is enforced by the storage engine, not by callers.
type UserRepository interface {
	// Create inserts a new user. Returns apperror.ErrConflict (via
	// DuplicateUsername) when the username is already taken.
	Create(ctx context.Context, user *model.User) error
	// GetByUsername returns apperror.ErrNotFound when no such user exists.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Exists is a pure lookup with no side effects.
	Exists(ctx context.Context, username string) (bool, error)
}

// ProfileRepository manages the zero-or-one health profile per user.
type ProfileRepository interface {
	// Upsert replaces the user's profile wholesale — every column is
	// written, one row per user. Returns apperror.ErrNotFound when the
	// username doesn't resolve to a user.
	Upsert(ctx context.Context, username string, profile *model.Profile) error
	// Get returns (nil, nil) when the user has no profile yet. An unknown
	// user also reads as "no profile" — callers cannot tell the two apart,
	// which is fine for this surface.
	Get(ctx context.Context, username string) (*model.Profile, error)
}

// HistoryRepository manages the append-only symptom history log.
type HistoryRepository interface {
	// Append inserts an immutable entry with a server-assigned timestamp.
	// Returns apperror.ErrNotFound when the username doesn't resolve.
	Append(ctx context.Context, username string, entry *model.HistoryEntry) error
	// List returns up to limit entries, newest first, ties broken by
	// insertion order. An unknown user or empty log yields an empty
	// slice, never an error.
	List(ctx context.Context, username string, limit int) ([]model.HistoryEntry, error)
}

// AdminRepository is the read-mostly reporting and data-management surface.
type AdminRepository interface {
	// ListUsers enumerates all accounts. No pagination — callers page
	// client-side.
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
	// Stats takes independent snapshot counts; the set is not guaranteed
	// to represent a single instant.
	Stats(ctx context.Context) (*model.Stats, error)
	// Export returns (nil, nil) for an unknown username, otherwise all
	// three entity types for the user in one structure.
	Export(ctx context.Context, username string) (*model.UserExport, error)
	// DeleteUser removes history, profile, and user rows as one atomic
	// unit. Returns apperror.ErrNotFound for an unknown username; a
	// failure mid-way leaves all three untouched.
	DeleteUser(ctx context.Context, username string) error
}
