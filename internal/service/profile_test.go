package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/healthfinder/internal/apperror"
	"github.com/sakif/healthfinder/internal/model"
)

// mockProfileRepo is an in-memory repository.ProfileRepository keyed by
// username. Upsert replaces wholesale, like the real store.
type mockProfileRepo struct {
	profiles map[string]*model.Profile
	known    map[string]bool
}

func newMockProfileRepo(usernames ...string) *mockProfileRepo {
	m := &mockProfileRepo{
		profiles: make(map[string]*model.Profile),
		known:    make(map[string]bool),
	}
	for _, u := range usernames {
		m.known[u] = true
	}
	return m
}

func (m *mockProfileRepo) Upsert(_ context.Context, username string, profile *model.Profile) error {
	if !m.known[username] {
		return apperror.UnknownUser(username)
	}
	stored := *profile
	m.profiles[username] = &stored
	return nil
}

func (m *mockProfileRepo) Get(_ context.Context, username string) (*model.Profile, error) {
	p, ok := m.profiles[username]
	if !ok {
		return nil, nil
	}
	result := *p
	return &result, nil
}

func TestProfileUpsertAndGet(t *testing.T) {
	repo := newMockProfileRepo("alice")
	svc := NewProfileService(repo, testLogger())
	ctx := context.Background()

	p := &model.Profile{Age: 30, BloodType: "O+", Allergies: "penicillin"}
	require.NoError(t, svc.Upsert(ctx, "alice", p))

	got, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 30, got.Age)
	assert.Equal(t, "O+", got.BloodType)
}

func TestProfileUpsert_AgeBounds(t *testing.T) {
	repo := newMockProfileRepo("alice")
	svc := NewProfileService(repo, testLogger())
	ctx := context.Background()

	err := svc.Upsert(ctx, "alice", &model.Profile{Age: 121})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	err = svc.Upsert(ctx, "alice", &model.Profile{Age: -3})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	// Zero age means "not supplied" and passes.
	assert.NoError(t, svc.Upsert(ctx, "alice", &model.Profile{Age: 0}))
}

func TestProfileUpsert_BloodType(t *testing.T) {
	repo := newMockProfileRepo("alice")
	svc := NewProfileService(repo, testLogger())
	ctx := context.Background()

	err := svc.Upsert(ctx, "alice", &model.Profile{BloodType: "Q+"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	// Empty blood type is normalized to "Unknown".
	require.NoError(t, svc.Upsert(ctx, "alice", &model.Profile{}))
	got, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", got.BloodType)
}

func TestProfileUpsert_UnknownUser(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewProfileService(repo, testLogger())

	err := svc.Upsert(context.Background(), "ghost", &model.Profile{Age: 40})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProfileGet_NoProfile(t *testing.T) {
	repo := newMockProfileRepo("alice")
	svc := NewProfileService(repo, testLogger())

	got, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, got)
}
