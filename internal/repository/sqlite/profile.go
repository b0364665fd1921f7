package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/healthfinder/internal/apperror"
	"github.com/sakif/healthfinder/internal/model"
	"github.com/sakif/healthfinder/internal/repository"
)

// compile-time check that *DB implements repository.ProfileRepository
var _ repository.ProfileRepository = (*DB)(nil)

// Upsert replaces the user's profile row.
//
// ON CONFLICT(user_id) DO UPDATE is the true-upsert idiom: the UNIQUE
// constraint on user_id guarantees one row per user, and insert-vs-update
// is decided inside the storage engine, not by a racy application check.
//
// Every column is written on both paths. Fields the caller left empty
// become empty in the store — this is a full replacement, not a patch.
func (db *DB) Upsert(ctx context.Context, username string, profile *model.Profile) error {
	userID, err := lookupUserID(ctx, db.conn, username)
	if err != nil {
		return err
	}
	if userID == "" {
		return apperror.UnknownUser(username)
	}

	profile.UserID = userID
	profile.UpdatedAt = time.Now().UTC()

	// RETURNING hands back the row id that actually survived: the fresh
	// xid on first insert, the original id on the update path (where the
	// generated one is discarded). The caller renders the profile it
	// passed in, so the id must be filled in either way.
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO user_profiles
			(id, user_id, age, blood_type, allergies, chronic_conditions, emergency_contact, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			age = excluded.age,
			blood_type = excluded.blood_type,
			allergies = excluded.allergies,
			chronic_conditions = excluded.chronic_conditions,
			emergency_contact = excluded.emergency_contact,
			updated_at = excluded.updated_at
		 RETURNING id`,
		xid.New().String(),
		profile.UserID,
		profile.Age,
		profile.BloodType,
		profile.Allergies,
		profile.ChronicConditions,
		profile.EmergencyContact,
		profile.UpdatedAt,
	).Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("sqlite: upserting profile for %q: %w", username, err)
	}

	return nil
}

// Get returns the user's profile, or (nil, nil) when no profile row
// exists. An unknown user also reads as nil — "no profile" covers both.
func (db *DB) Get(ctx context.Context, username string) (*model.Profile, error) {
	var p model.Profile

	err := db.conn.QueryRowContext(ctx,
		`SELECT up.id, up.user_id, up.age, up.blood_type, up.allergies,
		        up.chronic_conditions, up.emergency_contact, up.updated_at
		 FROM user_profiles up
		 JOIN users u ON up.user_id = u.id
		 WHERE u.username = ?`,
		username,
	).Scan(
		&p.ID,
		&p.UserID,
		&p.Age,
		&p.BloodType,
		&p.Allergies,
		&p.ChronicConditions,
		&p.EmergencyContact,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting profile for %q: %w", username, err)
	}

	return &p, nil
}
