package service

import (
	"context"
	"strings"
	"time"

	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Audit trail paging bounds.
const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

// LoggingService persists and reads the audit log.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl stores audit entries through a logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
	now  func() time.Time
}

// NewLoggingService creates a LoggingService over repo.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// toDocument fills the defaults an entry needs before it is stored. The
// entry and the document share one memory layout, so no copy is made.
func (s *LoggingServiceImpl) toDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	entry.Level = strings.ToLower(entry.Level)
	if entry.Level == "" {
		entry.Level = "info"
	}
	return (*repository.LogEntryDocument)(entry)
}

// CreateLog stores a single entry. Its ID is set on return.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	if entry == nil {
		return nil
	}
	return s.repo.Create(ctx, s.toDocument(entry))
}

// CreateLogs stores entries in one round trip, skipping nil ones.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	docs := make([]*repository.LogEntryDocument, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			docs = append(docs, s.toDocument(entry))
		}
	}
	if len(docs) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, docs)
}

// QueryLogs returns the entries matching opts, newest first.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	docs, err := s.repo.Query(ctx, repository.LogQueryOptions(opts))
	if err != nil {
		return nil, err
	}

	entries := make([]model.LogEntry, len(docs))
	for i, doc := range docs {
		entries[i] = model.LogEntry(*doc)
	}
	return entries, nil
}

// CountLogs counts the entries matching opts, ignoring paging.
func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, repository.LogQueryOptions(opts))
}

// AuditTrail reads one page of the audit log and the total number of
// matching entries. The limit defaults to DefaultAuditLimit and is capped at
// MaxAuditLimit.
func AuditTrail(ctx context.Context, logs LoggingService, opts model.LogQueryOptions) (*model.AuditTrail, error) {
	switch {
	case opts.Limit <= 0:
		opts.Limit = DefaultAuditLimit
	case opts.Limit > MaxAuditLimit:
		opts.Limit = MaxAuditLimit
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}

	trail := &model.AuditTrail{Limit: opts.Limit, Skip: opts.Skip}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := logs.QueryLogs(gctx, opts)
		trail.Entries = entries
		return err
	})
	g.Go(func() error {
		total, err := logs.CountLogs(gctx, opts)
		trail.Total = total
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if trail.Entries == nil {
		trail.Entries = []model.LogEntry{}
	}
	return trail, nil
}
