package storage

import (
	"context"
	"time"
)

// Record captures one live (non-cached) query execution.
type Record struct {
	ID          string
	Query       string
	Engine      string
	ResultCount int
	Duration    time.Duration
	Error       string // non-empty if the whole batch entry failed
	CreatedAt   time.Time
}

// Filter allows querying for specific history records.
type Filter struct {
	Query  string
	Engine string
	Since  *time.Time
	Limit  int
	Offset int
}

// Backend defines the interface for persisting and querying search history.
type Backend interface {
	Save(ctx context.Context, rec *Record) error
	Query(ctx context.Context, filter Filter) ([]*Record, error)
	Close() error
}
