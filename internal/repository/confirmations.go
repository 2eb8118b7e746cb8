package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultConfirmationsLimit caps history queries that do not set a limit.
const defaultConfirmationsLimit = 100

// ConfirmationDocument represents a submitted confirmation in MongoDB.
type ConfirmationDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Kind         string             `bson:"kind"`
	WorkspaceID  string             `bson:"workspace_id,omitempty"`
	BatchID      string             `bson:"batch_id"`
	OrderIDs     []string           `bson:"order_ids"`
	Courier      string             `bson:"courier,omitempty"`
	Service      string             `bson:"service,omitempty"`
	TotalCost    string             `bson:"total_cost,omitempty"`
	UpdatedCount int                `bson:"updated_count,omitempty"`
	Message      string             `bson:"message,omitempty"`
	Success      bool               `bson:"success"`
	Error        string             `bson:"error,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// ConfirmationQueryOptions filters confirmation history queries.
type ConfirmationQueryOptions struct {
	WorkspaceID string
	BatchID     string
	Kind        string
	Limit       int
}

// ConfirmationsRepository stores the confirmation history.
type ConfirmationsRepository struct {
	collection *mongo.Collection
}

// NewConfirmationsRepository creates a new confirmations repository.
func NewConfirmationsRepository(db *MongoDB) *ConfirmationsRepository {
	return &ConfirmationsRepository{
		collection: db.Confirmations,
	}
}

// Create inserts a confirmation document.
func (r *ConfirmationsRepository) Create(ctx context.Context, doc *ConfirmationDocument) error {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// List returns confirmations matching opts, newest first.
func (r *ConfirmationsRepository) List(ctx context.Context, opts ConfirmationQueryOptions) ([]*ConfirmationDocument, error) {
	filter := bson.M{}
	if opts.WorkspaceID != "" {
		filter["workspace_id"] = opts.WorkspaceID
	}
	if opts.BatchID != "" {
		filter["batch_id"] = opts.BatchID
	}
	if opts.Kind != "" {
		filter["kind"] = opts.Kind
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultConfirmationsLimit
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	docs := make([]*ConfirmationDocument, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
