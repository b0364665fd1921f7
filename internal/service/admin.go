package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/healthfinder/internal/model"
	"github.com/sakif/healthfinder/internal/repository"
)

// AdminService is the reporting and data-management surface behind the
// admin routes. Authorization (is the caller actually an admin) happens
// in middleware before any of these methods run.
type AdminService struct {
	admin  repository.AdminRepository
	logger *slog.Logger
}

func NewAdminService(admin repository.AdminRepository, logger *slog.Logger) *AdminService {
	return &AdminService{
		admin:  admin,
		logger: logger,
	}
}

// ListUsers enumerates every account for the admin dashboard.
func (s *AdminService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.admin.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Stats returns the dashboard counters.
func (s *AdminService) Stats(ctx context.Context) (*model.Stats, error) {
	stats, err := s.admin.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting stats: %w", err)
	}
	return stats, nil
}

// Export returns the full data snapshot for one user, or nil when the
// username is unknown.
func (s *AdminService) Export(ctx context.Context, username string) (*model.UserExport, error) {
	export, err := s.admin.Export(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("exporting user data: %w", err)
	}

	if export != nil {
		s.logger.Info("user data exported", slog.String("username", username))
	}
	return export, nil
}

// DeleteUser removes the account and everything it owns, atomically.
func (s *AdminService) DeleteUser(ctx context.Context, username string) error {
	if err := s.admin.DeleteUser(ctx, username); err != nil {
		return fmt.Errorf("deleting user data: %w", err)
	}

	s.logger.Info("user data deleted", slog.String("username", username))
	return nil
}
