package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/healthfinder/internal/model"
	"github.com/sakif/healthfinder/internal/repository"
)

// MaxHistoryLimit caps a single history read so a caller can't request
// the whole table at once.
const MaxHistoryLimit = 100

// HistoryService wraps the append-only symptom log.
type HistoryService struct {
	history repository.HistoryRepository
	logger  *slog.Logger
}

func NewHistoryService(history repository.HistoryRepository, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		history: history,
		logger:  logger,
	}
}

// Append records one completed symptom analysis for the user.
func (s *HistoryService) Append(ctx context.Context, username string, entry *model.HistoryEntry) error {
	if err := s.history.Append(ctx, username, entry); err != nil {
		return fmt.Errorf("recording history: %w", err)
	}

	s.logger.Info("history entry recorded",
		slog.String("username", username),
		slog.String("severity", entry.Severity),
	)
	return nil
}

// List returns the user's entries newest-first, clamped to a sane limit.
// Absent users and empty logs both read as an empty slice.
func (s *HistoryService) List(ctx context.Context, username string, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = repository.DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	entries, err := s.history.List(ctx, username, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}
