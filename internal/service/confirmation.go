package service

import (
	"context"
	"time"

	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/guttosm/fulfillment-console/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// historyWriteTimeout bounds a confirmation history write.
const historyWriteTimeout = 5 * time.Second

// ConfirmationRecorder stores confirmation attempts.
type ConfirmationRecorder interface {
	Record(ctx context.Context, c *model.Confirmation) error
}

// ConfirmationService defines the confirmation history operations.
type ConfirmationService interface {
	ConfirmationRecorder

	// List returns the confirmations matching q, newest first.
	List(ctx context.Context, q model.ConfirmationQuery) ([]model.Confirmation, error)
}

// ConfirmationServiceImpl implements ConfirmationService over MongoDB.
type ConfirmationServiceImpl struct {
	repo repository.ConfirmationsRepositoryInterface
}

// NewConfirmationService creates a new confirmation history service.
func NewConfirmationService(repo repository.ConfirmationsRepositoryInterface) ConfirmationService {
	return &ConfirmationServiceImpl{repo: repo}
}

// Record stores c and fills in its ID and creation time.
func (s *ConfirmationServiceImpl) Record(ctx context.Context, c *model.Confirmation) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	doc := &repository.ConfirmationDocument{
		Kind:         string(c.Kind),
		WorkspaceID:  c.WorkspaceID,
		BatchID:      c.BatchID,
		OrderIDs:     c.OrderIDs,
		Courier:      c.Courier,
		Service:      c.Service,
		TotalCost:    c.TotalCost,
		UpdatedCount: c.UpdatedCount,
		Message:      c.Message,
		Success:      c.Success,
		Error:        c.Error,
		CreatedAt:    c.CreatedAt,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return err
	}
	c.ID = doc.ID.Hex()
	return nil
}

// List returns the confirmations matching q, newest first.
func (s *ConfirmationServiceImpl) List(ctx context.Context, q model.ConfirmationQuery) ([]model.Confirmation, error) {
	docs, err := s.repo.List(ctx, repository.ConfirmationQueryOptions{
		WorkspaceID: q.WorkspaceID,
		BatchID:     q.BatchID,
		Kind:        string(q.Kind),
		Limit:       q.Limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]model.Confirmation, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentToConfirmation(d))
	}
	return out, nil
}

func documentToConfirmation(d *repository.ConfirmationDocument) model.Confirmation {
	id := ""
	if d.ID != primitive.NilObjectID {
		id = d.ID.Hex()
	}
	return model.Confirmation{
		ID:           id,
		Kind:         model.ConfirmationKind(d.Kind),
		WorkspaceID:  d.WorkspaceID,
		BatchID:      d.BatchID,
		OrderIDs:     d.OrderIDs,
		Courier:      d.Courier,
		Service:      d.Service,
		TotalCost:    d.TotalCost,
		UpdatedCount: d.UpdatedCount,
		Message:      d.Message,
		Success:      d.Success,
		Error:        d.Error,
		CreatedAt:    d.CreatedAt,
	}
}

// recordConfirmation writes c through r without letting a history failure
// reach the operator. The write outlives the request context.
func recordConfirmation(ctx context.Context, r ConfirmationRecorder, c *model.Confirmation) {
	if r == nil {
		return
	}
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()

	if err := r.Record(writeCtx, c); err != nil {
		l := logger.For("confirmations")
		l.Warn().
			Err(err).
			Str("kind", string(c.Kind)).
			Str("batch_id", c.BatchID).
			Msg("Failed to record confirmation history")
	}
}
