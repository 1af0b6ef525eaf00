package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/circlehub/internal/config"
	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/repo"
	"github.com/pkordes/circlehub/internal/service"
	"github.com/pkordes/circlehub/seed"
)

func newImportCmd() *cobra.Command {
	var useSeed bool

	cmd := &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Replace the clubs stored in Postgres with a YAML directory",
		Long: `Reads a club directory in YAML and makes the clubs table match it:
clubs are upserted by key in file order and clubs missing from the file are
deleted. The whole import runs in one transaction.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == useSeed {
				return fmt.Errorf("pass either a file or --seed")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)
			ctx := cmd.Context()

			var clubs []domain.Club
			if useSeed {
				clubs, err = repo.NewYAMLClubRepo(seed.FS, seed.File).List(ctx)
			} else {
				clubs, err = readClubFile(args[0])
			}
			if err != nil {
				return err
			}

			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			tx, err := pool.Begin(ctx)
			if err != nil {
				return fmt.Errorf("begin transaction: %w", err)
			}
			defer func() { _ = tx.Rollback(ctx) }() // no-op after Commit

			res, err := service.NewImportService(repo.NewClubRepo(tx), logger).Import(ctx, clubs)
			if err != nil {
				return err
			}
			if err := tx.Commit(ctx); err != nil {
				return fmt.Errorf("commit: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d clubs, removed %d\n", res.Upserted, res.Deleted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useSeed, "seed", false, "import the built-in directory instead of a file")
	return cmd
}

func readClubFile(path string) ([]domain.Club, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clubs, err := repo.DecodeYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clubs, nil
}
