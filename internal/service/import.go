package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/repo"
)

// ImportResult summarises one import run.
type ImportResult struct {
	Upserted int
	Deleted  int64
}

// ImportService replaces the stored club directory with a new one.
type ImportService struct {
	store  repo.ClubStore
	logger *slog.Logger
}

// NewImportService constructs an ImportService writing to store. Pass a
// store bound to a transaction to make the replacement atomic.
func NewImportService(store repo.ClubStore, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ImportService{store: store, logger: logger}
}

// Import validates clubs, upserts them in order and deletes every stored
// club not present in clubs. Nothing is written if validation fails.
func (s *ImportService) Import(ctx context.Context, clubs []domain.Club) (ImportResult, error) {
	if err := validateClubs(clubs); err != nil {
		return ImportResult{}, fmt.Errorf("service.ImportService.Import: %w", err)
	}

	keys := make([]string, 0, len(clubs))
	for i, c := range clubs {
		c.Key = strings.TrimSpace(c.Key)
		c.Name = strings.TrimSpace(c.Name)
		if _, err := s.store.Upsert(ctx, i, c); err != nil {
			return ImportResult{}, fmt.Errorf("service.ImportService.Import: club %q: %w", c.Key, err)
		}
		keys = append(keys, c.Key)
	}

	deleted, err := s.store.DeleteExcept(ctx, keys)
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.ImportService.Import: %w", err)
	}

	s.logger.Info("clubs imported", "upserted", len(keys), "deleted", deleted)
	return ImportResult{Upserted: len(keys), Deleted: deleted}, nil
}

func validateClubs(clubs []domain.Club) error {
	seen := make(map[string]bool, len(clubs))
	for i, c := range clubs {
		key := strings.TrimSpace(c.Key)
		if key == "" {
			return fmt.Errorf("%w: club %d: key is required", domain.ErrValidation, i)
		}
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: club %q: name is required", domain.ErrValidation, key)
		}
		if seen[key] {
			return fmt.Errorf("%w: duplicate key %q", domain.ErrValidation, key)
		}
		seen[key] = true
	}
	return nil
}
