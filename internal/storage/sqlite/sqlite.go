package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/FranksOps/dorkhound/internal/storage"
	_ "modernc.org/sqlite"
)

// ensure sqliteBackend implements storage.Backend
var _ storage.Backend = (*sqliteBackend)(nil)

type sqliteBackend struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS search_history (
	id TEXT PRIMARY KEY,
	query TEXT NOT NULL,
	engine TEXT NOT NULL,
	result_count INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	error TEXT,
	created_at DATETIME NOT NULL
);
`

// New creates a new SQLite-backed storage.Backend.
func New(dsn string) (storage.Backend, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &sqliteBackend{db: db}, nil
}

func (b *sqliteBackend) Save(ctx context.Context, rec *storage.Record) error {
	query := `
	INSERT INTO search_history (
		id, query, engine, result_count, duration_ms, error, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := b.db.ExecContext(ctx, query,
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

func (b *sqliteBackend) Query(ctx context.Context, filter storage.Filter) ([]*storage.Record, error) {
	query := `SELECT id, query, engine, result_count, duration_ms, error, created_at FROM search_history WHERE 1=1`
	args := []any{}

	if filter.Query != "" {
		query += ` AND query = ?`
		args = append(args, filter.Query)
	}
	if filter.Engine != "" {
		query += ` AND engine = ?`
		args = append(args, filter.Engine)
	}
	if filter.Since != nil {
		query += ` AND created_at >= ?`
		args = append(args, *filter.Since)
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
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

func (b *sqliteBackend) Close() error {
	return b.db.Close()
}
