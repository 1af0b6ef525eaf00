package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/pkordes/circlehub/internal/config"
	"github.com/pkordes/circlehub/internal/repo"
	"github.com/pkordes/circlehub/internal/service"
	"github.com/pkordes/circlehub/seed"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "circlehub",
		Short: "Student club directory: HTTP API, data import and terminal search.",
		Long: `circlehub serves a searchable directory of student clubs.

Configuration is read from the environment (PORT, LOG_LEVEL, CLUB_SOURCE,
CLUB_DATA_FILE, DATABASE_URL, CATALOG_TTL, ...).`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newImportCmd(),
		newFindCmd(),
	)
	return root
}

// newLogger builds the JSON slog logger every command uses.
func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

// openClubRepo returns the ClubRepo selected by CLUB_SOURCE and a function
// releasing whatever it holds open.
func openClubRepo(ctx context.Context, cfg config.Config, logger *slog.Logger) (repo.ClubRepo, func(), error) {
	switch cfg.ClubSource {
	case config.SourceFile:
		dir, name := filepath.Split(cfg.ClubDataFile)
		if dir == "" {
			dir = "."
		}
		logger.Info("club source", "source", cfg.ClubSource, "file", cfg.ClubDataFile)
		return repo.NewYAMLClubRepo(os.DirFS(dir), name), func() {}, nil

	case config.SourcePostgres:
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("club source", "source", cfg.ClubSource)
		return repo.NewClubRepo(pool), pool.Close, nil

	default:
		logger.Info("club source", "source", config.SourceBuiltin)
		return repo.NewYAMLClubRepo(seed.FS, seed.File), func() {}, nil
	}
}

// openPool connects to DATABASE_URL and verifies the database is reachable.
func openPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if err := cfg.RequireDatabaseURL(); err != nil {
		return nil, err
	}
	// New does not open connections; the ping does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

// newClubService applies the catalog settings from cfg.
func newClubService(r repo.ClubRepo, cfg config.Config, logger *slog.Logger) *service.ClubService {
	return service.NewClubService(r,
		service.WithLogger(logger),
		service.WithCatalogTTL(cfg.CatalogTTL),
		service.WithRelatedLimit(cfg.RelatedLimit),
		service.WithSuggestionLimit(cfg.SuggestionLimit),
	)
}
