// Package dbopen picks a history store implementation from a database URL.
package dbopen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jusunglee/kirill/internal/db"
	"github.com/jusunglee/kirill/internal/db/postgres"
	"github.com/jusunglee/kirill/internal/db/sqlite"
)

// Open returns a SQLite repository for sqlite:// URLs and a PostgreSQL
// repository for postgres:// and postgresql:// URLs.
func Open(ctx context.Context, databaseURL string) (db.Repository, error) {
	switch {
	case databaseURL == "":
		return nil, errors.New("database URL is empty")
	case strings.HasPrefix(databaseURL, "sqlite://"):
		repo, err := sqlite.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening SQLite repository: %w", err)
		}
		return repo, nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		repo, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening PostgreSQL repository: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported database URL scheme: %q", databaseURL)
	}
}
