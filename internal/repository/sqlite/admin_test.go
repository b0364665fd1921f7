package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/healthfinder/internal/apperror"
	"github.com/sakif/healthfinder/internal/model"
)

func TestListUsers(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	users, err := db.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("ListUsers() returned %d users, want 2", len(users))
	}

	// Oldest first.
	if users[0].Username != "alice" || users[1].Username != "bob" {
		t.Errorf("usernames = [%q, %q], want [alice, bob]", users[0].Username, users[1].Username)
	}
	if users[0].Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", users[0].Email, "alice@example.com")
	}
	if users[0].CreatedAt.IsZero() {
		t.Error("CreatedAt is zero in listing")
	}
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	if err := db.Upsert(context.Background(), "alice", &model.Profile{Age: 30}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	appendTestEntry(t, db, "alice", "fever")
	appendTestEntry(t, db, "bob", "cough")
	appendTestEntry(t, db, "bob", "headache")

	stats, err := db.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	if stats.UsersCount != 2 {
		t.Errorf("UsersCount = %d, want 2", stats.UsersCount)
	}
	if stats.HistoryCount != 3 {
		t.Errorf("HistoryCount = %d, want 3", stats.HistoryCount)
	}
	if stats.ProfilesCount != 1 {
		t.Errorf("ProfilesCount = %d, want 1", stats.ProfilesCount)
	}
	// Everything was just written, so it all falls in the trailing windows.
	if stats.RecentSearches != 3 {
		t.Errorf("RecentSearches = %d, want 3", stats.RecentSearches)
	}
	if stats.RecentUsers != 2 {
		t.Errorf("RecentUsers = %d, want 2", stats.RecentUsers)
	}
}

func TestStats_TrailingWindows(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	entry := appendTestEntry(t, db, "alice", "fever")

	// Backdate the rows past both windows directly in SQL — the
	// repository offers no way to write historical timestamps, by design.
	old := time.Now().UTC().Add(-8 * 24 * time.Hour)
	if _, err := db.conn.Exec(`UPDATE users SET created_at = ? WHERE id = ?`, old, user.ID); err != nil {
		t.Fatalf("backdating user: %v", err)
	}
	if _, err := db.conn.Exec(`UPDATE symptom_history SET created_at = ? WHERE id = ?`, old, entry.ID); err != nil {
		t.Fatalf("backdating entry: %v", err)
	}

	stats, err := db.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.UsersCount != 1 || stats.HistoryCount != 1 {
		t.Fatalf("totals = %d users / %d entries, want 1/1", stats.UsersCount, stats.HistoryCount)
	}
	if stats.RecentSearches != 0 {
		t.Errorf("RecentSearches = %d, want 0 for 8-day-old entry", stats.RecentSearches)
	}
	if stats.RecentUsers != 0 {
		t.Errorf("RecentUsers = %d, want 0 for 8-day-old registration", stats.RecentUsers)
	}
}

func TestExport(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")
	if err := db.Upsert(context.Background(), "alice", &model.Profile{Age: 30, BloodType: "O+"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	appendTestEntry(t, db, "alice", "first")
	appendTestEntry(t, db, "alice", "second")

	export, err := db.Export(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if export == nil {
		t.Fatal("Export() = nil for existing user")
	}

	if export.UserInfo.Username != "alice" {
		t.Errorf("UserInfo.Username = %q, want %q", export.UserInfo.Username, "alice")
	}
	if export.Profile == nil || export.Profile.Age != 30 {
		t.Errorf("Profile = %+v, want age 30", export.Profile)
	}
	if len(export.History) != 2 {
		t.Fatalf("History has %d entries, want 2", len(export.History))
	}
	// Newest first.
	if export.History[0].Symptoms != "second" {
		t.Errorf("History[0].Symptoms = %q, want %q", export.History[0].Symptoms, "second")
	}
}

func TestExport_NoProfile(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")

	export, err := db.Export(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if export.Profile != nil {
		t.Errorf("Profile = %+v, want nil when none exists", export.Profile)
	}
	if export.History == nil {
		t.Error("History is nil, want empty slice")
	}
}

func TestExport_UnknownUser(t *testing.T) {
	db := newTestDB(t)

	export, err := db.Export(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if export != nil {
		t.Errorf("Export() = %+v, want nil for unknown user", export)
	}
}

func TestDeleteUser_Cascades(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	if err := db.Upsert(context.Background(), "alice", &model.Profile{Age: 30}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	appendTestEntry(t, db, "alice", "fever")
	appendTestEntry(t, db, "bob", "cough")

	if err := db.DeleteUser(context.Background(), "alice"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	// Everything of alice's is gone.
	ok, err := db.Exists(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("Exists() = true after delete")
	}
	profile, err := db.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if profile != nil {
		t.Errorf("Get() = %+v after delete, want nil", profile)
	}
	entries, err := db.List(context.Background(), "alice", 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() returned %d entries after delete", len(entries))
	}

	// Bob is untouched.
	entries, err = db.List(context.Background(), "bob", 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("bob's history has %d entries, want 1", len(entries))
	}
}

func TestDeleteUser_SecondDeleteUnknown(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")

	if err := db.DeleteUser(context.Background(), "alice"); err != nil {
		t.Fatalf("DeleteUser() first call error = %v", err)
	}

	err := db.DeleteUser(context.Background(), "alice")
	if err == nil {
		t.Fatal("second DeleteUser() should fail")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DeleteUser() error = %v, want ErrNotFound", err)
	}
}
