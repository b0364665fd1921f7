// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation
// of the SQLite sources — works everywhere Go works, and ":memory:" gives
// tests a free isolated database.
//
// The *DB handle is injected into each component constructor rather than
// held as process-wide state. sql.DB is a connection pool, so many request
// goroutines can use one handle concurrently; every operation is a single
// transaction against it and nothing blocks beyond SQLite's own isolation.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
// It implements every interface in the repository package; the composition
// root hands the same *DB to each service.
type DB struct {
	conn *sql.DB
}

// New creates a SQLite database connection pool and runs migrations.
//
// dbPath examples:
//   - "data/healthfinder.db" → file-based database (persistent)
//   - ":memory:"             → in-memory database (tests, lost on close)
func New(dbPath string) (*DB, error) {
	// The pragmas ride in the DSN because sql.DB is a connection pool:
	// an Exec("PRAGMA ...") configures only whichever single connection
	// runs it, and every other pooled connection keeps SQLite's defaults
	// (foreign_keys OFF among them). The driver applies _pragma query
	// parameters to each connection it opens.
	//
	// WAL allows concurrent reads while a write is in progress; foreign
	// keys back the profile/history → user references, so an insert
	// racing a user delete fails instead of committing an orphan row.
	conn, err := sql.Open("sqlite",
		dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection — with more than one in
	// the pool, each would see its own empty database.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// sql.Open doesn't actually connect; Ping surfaces a bad path or
	// permissions problem here instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. The server defers this during
// shutdown so the WAL is flushed and the file lock released.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe
// to run on every startup.
//
// Timestamps are stored as DATETIME and written explicitly by the Go code
// (never DEFAULT CURRENT_TIMESTAMP) so that reads round-trip through
// time.Time without timezone surprises.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			email         TEXT NOT NULL DEFAULT '',
			role          TEXT NOT NULL DEFAULT 'user',
			created_at    DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS symptom_history (
			id                   TEXT PRIMARY KEY,
			user_id              TEXT NOT NULL REFERENCES users(id),
			symptoms             TEXT NOT NULL DEFAULT '',
			severity             TEXT NOT NULL DEFAULT '',
			suggested_conditions TEXT NOT NULL DEFAULT '',
			location_searched    TEXT NOT NULL DEFAULT '',
			created_at           DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_symptom_history_user_id ON symptom_history(user_id);
		CREATE INDEX IF NOT EXISTS idx_symptom_history_created_at ON symptom_history(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating symptom_history table: %w", err)
	}

	// user_id is UNIQUE — the one-profile-per-user rule lives in the
	// schema, which is what makes the upsert race-free.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS user_profiles (
			id                 TEXT PRIMARY KEY,
			user_id            TEXT NOT NULL UNIQUE REFERENCES users(id),
			age                INTEGER NOT NULL DEFAULT 0,
			blood_type         TEXT NOT NULL DEFAULT '',
			allergies          TEXT NOT NULL DEFAULT '',
			chronic_conditions TEXT NOT NULL DEFAULT '',
			emergency_contact  TEXT NOT NULL DEFAULT '',
			updated_at         DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating user_profiles table: %w", err)
	}

	return nil
}
