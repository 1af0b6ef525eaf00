// Package repo loads club records from the configured data source.
// Each source has its own file: the YAML provider reads any fs.FS and the
// Postgres provider reads and writes the clubs table. No business logic lives
// here, only decoding and type mapping.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/circlehub/internal/domain"
)

// ClubRepo is the read side every data source provides.
// The service layer depends on this interface so it can be tested with a mock.
type ClubRepo interface {
	// List returns every club in declaration order.
	List(ctx context.Context) ([]domain.Club, error)
}

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
