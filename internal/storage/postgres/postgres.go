package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/FranksOps/dorkhound/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ensure postgresBackend implements storage.Backend
var _ storage.Backend = (*postgresBackend)(nil)

type postgresBackend struct {
	pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS search_history (
	id TEXT PRIMARY KEY,
	query TEXT NOT NULL,
	engine TEXT NOT NULL,
	result_count INTEGER NOT NULL,
	duration_ms BIGINT NOT NULL,
	error TEXT,
	created_at TIMESTAMPTZ NOT NULL
);
`

// New creates a new Postgres-backed storage.Backend.
func New(ctx context.Context, dsn string) (storage.Backend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	_, err = pool.Exec(ctx, schema)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &postgresBackend{pool: pool}, nil
}

func (b *postgresBackend) Save(ctx context.Context, rec *storage.Record) error {
	query := `
	INSERT INTO search_history (
		id, query, engine, result_count, duration_ms, error, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := b.pool.Exec(ctx, query,
		rec.ID,
		rec.Query,
		rec.Engine,
		rec.ResultCount,
		rec.Duration.Milliseconds(),
		rec.Error,
		rec.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("save history record: %w", err)
	}

	return nil
}

func (b *postgresBackend) Query(ctx context.Context, filter storage.Filter) ([]*storage.Record, error) {
	query := `SELECT id, query, engine, result_count, duration_ms, error, created_at FROM search_history WHERE 1=1`
	args := []any{}
	paramCount := 1

	if filter.Query != "" {
		query += fmt.Sprintf(` AND query = $%d`, paramCount)
		args = append(args, filter.Query)
		paramCount++
	}
	if filter.Engine != "" {
		query += fmt.Sprintf(` AND engine = $%d`, paramCount)
		args = append(args, filter.Engine)
		paramCount++
	}
	if filter.Since != nil {
		query += fmt.Sprintf(` AND created_at >= $%d`, paramCount)
		args = append(args, *filter.Since)
		paramCount++
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, paramCount)
		args = append(args, filter.Limit)
		paramCount++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, paramCount)
		args = append(args, filter.Offset)
		paramCount++
	}

	rows, err := b.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []*storage.Record
	for rows.Next() {
		var r storage.Record
		var durationMs int64

		err := rows.Scan(
			&r.ID, &r.Query, &r.Engine, &r.ResultCount, &durationMs, &r.Error, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}

		r.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return records, nil
}

func (b *postgresBackend) Close() error {
	b.pool.Close()
	return nil
}
