package db

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNoRows is returned by Get methods when the row does not exist.
	ErrNoRows = errors.New("no rows in result set")

	// ErrMissingConversion is returned when a correction references a
	// conversion that does not exist, e.g. one removed by the retention worker.
	ErrMissingConversion = errors.New("conversion does not exist")
)

// IsNoRows reports whether err means a lookup found nothing, whichever driver
// produced it.
func IsNoRows(err error) bool {
	return errors.Is(err, ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, pgx.ErrNoRows)
}

// IsNotFound reports whether err should surface to callers as a 404.
func IsNotFound(err error) bool {
	return IsNoRows(err) || errors.Is(err, ErrMissingConversion)
}
