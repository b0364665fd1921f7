package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/healthfinder/internal/apperror"
	"github.com/sakif/healthfinder/internal/model"
	"github.com/sakif/healthfinder/internal/repository"
)

// Age bounds mirror what the original entry form allowed. Zero means the
// caller didn't supply an age at all.
const (
	MinAge = 1
	MaxAge = 120
)

// ProfileService handles the health-profile rules on top of the store's
// upsert semantics.
type ProfileService struct {
	profiles repository.ProfileRepository
	logger   *slog.Logger
}

func NewProfileService(profiles repository.ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		logger:   logger,
	}
}

// Upsert validates and writes the user's profile as a full replacement.
// Fields the caller leaves empty are stored empty — this is the documented
// contract, not an accident of implementation.
func (s *ProfileService) Upsert(ctx context.Context, username string, profile *model.Profile) error {
	if profile.Age != 0 && (profile.Age < MinAge || profile.Age > MaxAge) {
		return apperror.ValidationFailed("age",
			fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge))
	}

	profile.BloodType = strings.TrimSpace(profile.BloodType)
	if profile.BloodType == "" {
		profile.BloodType = "Unknown"
	}
	if !model.ValidBloodType(profile.BloodType) {
		return apperror.ValidationFailed("bloodType", "invalid blood type")
	}

	if err := s.profiles.Upsert(ctx, username, profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	s.logger.Info("profile saved", slog.String("username", username))
	return nil
}

// Get returns the user's profile, or nil when none exists yet.
func (s *ProfileService) Get(ctx context.Context, username string) (*model.Profile, error) {
	profile, err := s.profiles.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return profile, nil
}
