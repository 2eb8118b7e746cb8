package repository

import (
	"context"
)

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

// ConfirmationsRepositoryInterface defines the interface for confirmation history operations.
type ConfirmationsRepositoryInterface interface {
	Create(ctx context.Context, doc *ConfirmationDocument) error
	List(ctx context.Context, opts ConfirmationQueryOptions) ([]*ConfirmationDocument, error)
}
