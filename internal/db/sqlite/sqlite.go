package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jusunglee/kirill/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Timestamps are stored as fixed-width UTC text so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000Z"

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository implements db.Repository using SQLite
type Repository struct {
	db *sql.DB
	q  querier
}

// New opens the SQLite database at dbPath and applies the schema.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	// SQLite allows one writer; an in-memory database also exists per connection.
	sqliteDB.SetMaxOpenConns(1)

	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	slog.Debug("opened SQLite database", "path", dbPath)

	return &Repository{db: sqliteDB, q: sqliteDB}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Repository{db: r.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Conversion methods

func (r *Repository) CreateConversion(ctx context.Context, arg db.CreateConversionParams) (db.Conversion, error) {
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO conversions (input, output, surface, created_at)
		VALUES (?, ?, ?, ?)
	`, arg.Input, arg.Output, arg.Surface, now())
	if err != nil {
		return db.Conversion{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Conversion{}, err
	}

	return r.GetConversion(ctx, id)
}

func (r *Repository) GetConversion(ctx context.Context, id int64) (db.Conversion, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, input, output, surface, created_at
		FROM conversions
		WHERE id = ?
	`, id)

	return scanConversion(row)
}

func (r *Repository) ListConversions(ctx context.Context, arg db.ListConversionsParams) ([]db.Conversion, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, input, output, surface, created_at
		FROM conversions
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanConversions(rows)
}

func (r *Repository) CountConversions(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldConversions(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.q.ExecContext(ctx, `
		DELETE FROM conversions WHERE created_at < ?
	`, before.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Correction methods

func (r *Repository) CreateCorrection(ctx context.Context, arg db.CreateCorrectionParams) (db.Correction, error) {
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO corrections (conversion_id, word, suggestion, created_at)
		VALUES (?, ?, ?, ?)
	`, arg.ConversionID, arg.Word, arg.Suggestion, now())
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return db.Correction{}, fmt.Errorf("%w: %d", db.ErrMissingConversion, arg.ConversionID)
		}
		return db.Correction{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Correction{}, err
	}

	row := r.q.QueryRowContext(ctx, `
		SELECT id, conversion_id, word, suggestion, created_at
		FROM corrections
		WHERE id = ?
	`, id)
	return scanCorrection(row)
}

func (r *Repository) ListCorrections(ctx context.Context, arg db.ListCorrectionsParams) ([]db.Correction, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, conversion_id, word, suggestion, created_at
		FROM corrections
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corrections []db.Correction
	for rows.Next() {
		var c db.Correction
		var createdAtStr string
		if err := rows.Scan(&c.ID, &c.ConversionID, &c.Word, &c.Suggestion, &createdAtStr); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(timeLayout, createdAtStr)
		corrections = append(corrections, c)
	}
	return corrections, rows.Err()
}

func (r *Repository) CountCorrections(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM corrections`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldCorrections(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.q.ExecContext(ctx, `
		DELETE FROM corrections WHERE created_at < ?
	`, before.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Helpers

func now() string {
	return time.Now().UTC().Format(timeLayout)
}

func scanConversion(row *sql.Row) (db.Conversion, error) {
	var c db.Conversion
	var createdAtStr string
	err := row.Scan(&c.ID, &c.Input, &c.Output, &c.Surface, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Conversion{}, db.ErrNoRows
	}
	if err != nil {
		return db.Conversion{}, err
	}
	c.CreatedAt, _ = time.Parse(timeLayout, createdAtStr)
	return c, nil
}

func scanConversions(rows *sql.Rows) ([]db.Conversion, error) {
	var conversions []db.Conversion
	for rows.Next() {
		var c db.Conversion
		var createdAtStr string
		if err := rows.Scan(&c.ID, &c.Input, &c.Output, &c.Surface, &createdAtStr); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(timeLayout, createdAtStr)
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}

func scanCorrection(row *sql.Row) (db.Correction, error) {
	var c db.Correction
	var createdAtStr string
	err := row.Scan(&c.ID, &c.ConversionID, &c.Word, &c.Suggestion, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Correction{}, db.ErrNoRows
	}
	if err != nil {
		return db.Correction{}, err
	}
	c.CreatedAt, _ = time.Parse(timeLayout, createdAtStr)
	return c, nil
}
