package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogEntryDocument is an audit log entry as stored in MongoDB.
type LogEntryDocument struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	Timestamp   time.Time              `bson:"timestamp"`
	Level       string                 `bson:"level"`
	Message     string                 `bson:"message"`
	RequestID   string                 `bson:"request_id,omitempty"`
	Method      string                 `bson:"method,omitempty"`
	Path        string                 `bson:"path,omitempty"`
	StatusCode  int                    `bson:"status_code,omitempty"`
	Duration    int64                  `bson:"duration_ms,omitempty"`
	IP          string                 `bson:"ip,omitempty"`
	UserAgent   string                 `bson:"user_agent,omitempty"`
	Error       string                 `bson:"error,omitempty"`
	WorkspaceID string                 `bson:"workspace_id,omitempty"`
	BatchID     string                 `bson:"batch_id,omitempty"`
	OrderID     string                 `bson:"order_id,omitempty"`
	ActionType  string                 `bson:"action_type,omitempty"`
	Fields      map[string]interface{} `bson:"fields,omitempty"`
}

func (d *LogEntryDocument) stamp(now time.Time) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectIDFromTimestamp(now)
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = now
	}
}

// LogQueryOptions filters the audit trail. Empty fields match everything.
type LogQueryOptions struct {
	RequestID   string
	Level       string
	WorkspaceID string
	BatchID     string
	OrderID     string
	ActionType  string
	StartTime   *time.Time
	EndTime     *time.Time
	Limit       int
	Skip        int
}

func (o LogQueryOptions) filter() bson.M {
	filter := bson.M{}
	for field, value := range map[string]string{
		"request_id":   o.RequestID,
		"level":        o.Level,
		"workspace_id": o.WorkspaceID,
		"batch_id":     o.BatchID,
		"order_id":     o.OrderID,
		"action_type":  o.ActionType,
	} {
		if value != "" {
			filter[field] = value
		}
	}

	window := bson.M{}
	if o.StartTime != nil {
		window["$gte"] = *o.StartTime
	}
	if o.EndTime != nil {
		window["$lte"] = *o.EndTime
	}
	if len(window) > 0 {
		filter["timestamp"] = window
	}
	return filter
}

func (o LogQueryOptions) findOptions() *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if o.Limit > 0 {
		opts.SetLimit(int64(o.Limit))
	}
	if o.Skip > 0 {
		opts.SetSkip(int64(o.Skip))
	}
	return opts
}

// LogsRepository reads and writes the audit_logs collection.
type LogsRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{
		collection: db.Logs,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts one entry, assigning its ID and timestamp when unset.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	entry.stamp(r.now())
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries unordered, so one bad document does not hold
// back the rest of an audit batch.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}

	now := r.now()
	docs := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		entry.stamp(now)
		docs = append(docs, entry)
	}
	if len(docs) == 0 {
		return nil
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	cursor, err := r.collection.Find(ctx, opts.filter(), opts.findOptions())
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entries := make([]*LogEntryDocument, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of entries matching opts, ignoring Limit and Skip.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.filter())
}
