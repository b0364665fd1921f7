package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/healthfinder/internal/apperror"
	"github.com/sakif/healthfinder/internal/model"
	"github.com/sakif/healthfinder/internal/repository"
)

// compile-time check that *DB implements repository.AdminRepository
var _ repository.AdminRepository = (*DB)(nil)

// ListUsers enumerates every account, oldest first. No pagination — the
// admin UI pages client-side, and this table is small.
func (db *DB) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT username, email, created_at FROM users ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.UserSummary{}
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user rows: %w", err)
	}

	return users, nil
}

// Stats gathers the dashboard counters. Each COUNT is its own query;
// concurrent writes between them can make the set slightly inconsistent,
// which is acceptable for a reporting surface.
func (db *DB) Stats(ctx context.Context) (*model.Stats, error) {
	var s model.Stats

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM users`, &s.UsersCount},
		{`SELECT COUNT(*) FROM symptom_history`, &s.HistoryCount},
		{`SELECT COUNT(*) FROM user_profiles`, &s.ProfilesCount},
	}
	for _, c := range counts {
		if err := db.conn.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("sqlite: counting rows: %w", err)
		}
	}

	now := time.Now().UTC()

	// Trailing windows are computed in Go and compared against the stored
	// DATETIME values, avoiding SQLite's own now() and its timezone rules.
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM symptom_history WHERE created_at >= ?`,
		now.Add(-24*time.Hour),
	).Scan(&s.RecentSearches); err != nil {
		return nil, fmt.Errorf("sqlite: counting recent searches: %w", err)
	}

	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE created_at >= ?`,
		now.Add(-7*24*time.Hour),
	).Scan(&s.RecentUsers); err != nil {
		return nil, fmt.Errorf("sqlite: counting recent users: %w", err)
	}

	return &s, nil
}

// Export assembles the full data snapshot for one user inside a read
// transaction, so the three entity reads see one consistent state.
// Returns (nil, nil) for an unknown username.
func (db *DB) Export(ctx context.Context, username string) (*model.UserExport, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning export tx: %w", err)
	}
	defer tx.Rollback()

	userID, err := lookupUserID(ctx, tx, username)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}

	export := &model.UserExport{History: []model.HistoryEntry{}}

	if err := tx.QueryRowContext(ctx,
		`SELECT username, email, created_at FROM users WHERE id = ?`, userID,
	).Scan(&export.UserInfo.Username, &export.UserInfo.Email, &export.UserInfo.CreatedAt); err != nil {
		return nil, fmt.Errorf("sqlite: exporting user info for %q: %w", username, err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, user_id, symptoms, severity, suggested_conditions, location_searched, created_at
		 FROM symptom_history WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: exporting history for %q: %w", username, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Symptoms, &e.Severity,
			&e.SuggestedConditions, &e.LocationSearched, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning export history row: %w", err)
		}
		export.History = append(export.History, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating export history rows: %w", err)
	}

	var p model.Profile
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, age, blood_type, allergies, chronic_conditions, emergency_contact, updated_at
		 FROM user_profiles WHERE user_id = ?`,
		userID,
	).Scan(
		&p.ID, &p.UserID, &p.Age, &p.BloodType,
		&p.Allergies, &p.ChronicConditions, &p.EmergencyContact, &p.UpdatedAt,
	)
	switch {
	case err == nil:
		export.Profile = &p
	case errors.Is(err, sql.ErrNoRows):
		// no profile; export.Profile stays nil
	default:
		return nil, fmt.Errorf("sqlite: exporting profile for %q: %w", username, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing export tx: %w", err)
	}

	return export, nil
}

// DeleteUser removes the user and everything owned by them.
//
// The three DELETEs run in dependency order (history, profile, user)
// inside one transaction: either all of the user's rows disappear, or a
// failure rolls everything back and the store is untouched. A second
// delete for the same username reports UnknownUser.
func (db *DB) DeleteUser(ctx context.Context, username string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning delete tx: %w", err)
	}
	defer tx.Rollback()

	userID, err := lookupUserID(ctx, tx, username)
	if err != nil {
		return err
	}
	if userID == "" {
		return apperror.UnknownUser(username)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM symptom_history WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("sqlite: deleting history for %q: %w", username, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_profiles WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("sqlite: deleting profile for %q: %w", username, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM users WHERE id = ?`, userID); err != nil {
		return fmt.Errorf("sqlite: deleting user %q: %w", username, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing delete tx: %w", err)
	}

	return nil
}
