package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/healthfinder/internal/apperror"
	"github.com/sakif/healthfinder/internal/model"
	"github.com/sakif/healthfinder/internal/repository"
)

// compile-time check that *DB implements repository.HistoryRepository
var _ repository.HistoryRepository = (*DB)(nil)

// Append inserts an immutable history entry with a server-assigned
// timestamp. Entries are never updated afterward — the only way one leaves
// the table is a cascading user delete.
//
// UnknownUser here is a legitimate runtime outcome, not a bug: a session
// cookie can outlive its account when an admin deletes the user, and the
// next append fails cleanly instead of inserting an orphan row.
func (db *DB) Append(ctx context.Context, username string, entry *model.HistoryEntry) error {
	userID, err := lookupUserID(ctx, db.conn, username)
	if err != nil {
		return err
	}
	if userID == "" {
		return apperror.UnknownUser(username)
	}

	entry.ID = xid.New().String()
	entry.UserID = userID
	entry.CreatedAt = time.Now().UTC()

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO symptom_history
			(id, user_id, symptoms, severity, suggested_conditions, location_searched, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		entry.Symptoms,
		entry.Severity,
		entry.SuggestedConditions,
		entry.LocationSearched,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: appending history for %q: %w", username, err)
	}

	return nil
}

// List returns up to limit entries for the user, newest first.
//
// Ordering: created_at DESC with id DESC as the tiebreak. xid values are
// monotonic within a process, so entries written in the same timestamp
// tick still come back in reverse insertion order.
//
// An unknown user or an empty log both yield an empty slice — reads never
// fail on absence.
func (db *DB) List(ctx context.Context, username string, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = repository.DefaultHistoryLimit
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT sh.id, sh.user_id, sh.symptoms, sh.severity,
		        sh.suggested_conditions, sh.location_searched, sh.created_at
		 FROM symptom_history sh
		 JOIN users u ON sh.user_id = u.id
		 WHERE u.username = ?
		 ORDER BY sh.created_at DESC, sh.id DESC
		 LIMIT ?`,
		username, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing history for %q: %w", username, err)
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Symptoms,
			&e.Severity,
			&e.SuggestedConditions,
			&e.LocationSearched,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating history rows: %w", err)
	}

	return entries, nil
}
