package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/kirill/internal/db"
	"github.com/jusunglee/kirill/internal/metrics"
)

//go:embed schema.sql
var schemaSQL string

const foreignKeyViolation = "23503"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
	q    querier
}

// New connects to PostgreSQL and applies the schema.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := newPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool, q: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// PoolStats returns the current connection pool statistics.
func (r *Repository) PoolStats() *pgxpool.Stat {
	return r.pool.Stat()
}

// ExportPoolStats publishes pool statistics as Prometheus gauges every
// interval until ctx is done.
func (r *Repository) ExportPoolStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s := r.PoolStats()
			metrics.DBPoolTotalConns.Set(float64(s.TotalConns()))
			metrics.DBPoolIdleConns.Set(float64(s.IdleConns()))
			metrics.DBPoolAcquiredConns.Set(float64(s.AcquiredConns()))
			metrics.DBPoolMaxConns.Set(float64(s.MaxConns()))
		case <-ctx.Done():
			return
		}
	}
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	// Roll back before re-panicking so the connection goes back to the pool.
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(&Repository{pool: r.pool, q: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Conversion methods

const conversionColumns = `id, input, output, surface, created_at`

func (r *Repository) CreateConversion(ctx context.Context, arg db.CreateConversionParams) (db.Conversion, error) {
	rows, _ := r.q.Query(ctx, `
		INSERT INTO conversions (input, output, surface)
		VALUES ($1, $2, $3)
		RETURNING `+conversionColumns,
		arg.Input, arg.Output, arg.Surface)
	return collectOne[db.Conversion](rows)
}

func (r *Repository) GetConversion(ctx context.Context, id int64) (db.Conversion, error) {
	rows, _ := r.q.Query(ctx, `SELECT `+conversionColumns+` FROM conversions WHERE id = $1`, id)
	return collectOne[db.Conversion](rows)
}

func (r *Repository) ListConversions(ctx context.Context, arg db.ListConversionsParams) ([]db.Conversion, error) {
	rows, _ := r.q.Query(ctx, `
		SELECT `+conversionColumns+`
		FROM conversions
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, arg.Limit, arg.Offset)
	return pgx.CollectRows(rows, pgx.RowToStructByPos[db.Conversion])
}

func (r *Repository) CountConversions(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldConversions(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM conversions WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Correction methods

const correctionColumns = `id, conversion_id, word, suggestion, created_at`

func (r *Repository) CreateCorrection(ctx context.Context, arg db.CreateCorrectionParams) (db.Correction, error) {
	rows, _ := r.q.Query(ctx, `
		INSERT INTO corrections (conversion_id, word, suggestion)
		VALUES ($1, $2, $3)
		RETURNING `+correctionColumns,
		arg.ConversionID, arg.Word, arg.Suggestion)
	c, err := collectOne[db.Correction](rows)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return db.Correction{}, fmt.Errorf("%w: %d", db.ErrMissingConversion, arg.ConversionID)
	}
	return c, err
}

func (r *Repository) ListCorrections(ctx context.Context, arg db.ListCorrectionsParams) ([]db.Correction, error) {
	rows, _ := r.q.Query(ctx, `
		SELECT `+correctionColumns+`
		FROM corrections
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, arg.Limit, arg.Offset)
	return pgx.CollectRows(rows, pgx.RowToStructByPos[db.Correction])
}

func (r *Repository) CountCorrections(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM corrections`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldCorrections(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM corrections WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// collectOne scans exactly one row, mapping pgx's not-found to db.ErrNoRows.
func collectOne[T any](rows pgx.Rows) (T, error) {
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[T])
	if errors.Is(err, pgx.ErrNoRows) {
		var zero T
		return zero, db.ErrNoRows
	}
	return v, err
}
