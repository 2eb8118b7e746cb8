//go:build !integration

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLogQueryOptions_Filter(t *testing.T) {
	start := time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	tests := []struct {
		name     string
		opts     LogQueryOptions
		expected bson.M
	}{
		{
			name:     "empty options match everything",
			opts:     LogQueryOptions{},
			expected: bson.M{},
		},
		{
			name: "scalar filters",
			opts: LogQueryOptions{
				RequestID:   "req-1",
				Level:       "warn",
				WorkspaceID: "ws-1",
				BatchID:     "B-1",
				OrderID:     "ORD-1",
				ActionType:  "scan_rejected",
			},
			expected: bson.M{
				"request_id":   "req-1",
				"level":        "warn",
				"workspace_id": "ws-1",
				"batch_id":     "B-1",
				"order_id":     "ORD-1",
				"action_type":  "scan_rejected",
			},
		},
		{
			name:     "paging does not filter",
			opts:     LogQueryOptions{BatchID: "B-1", Limit: 20, Skip: 40},
			expected: bson.M{"batch_id": "B-1"},
		},
		{
			name:     "open ended time range",
			opts:     LogQueryOptions{StartTime: &start},
			expected: bson.M{"timestamp": bson.M{"$gte": start}},
		},
		{
			name:     "closed time range",
			opts:     LogQueryOptions{StartTime: &start, EndTime: &end},
			expected: bson.M{"timestamp": bson.M{"$gte": start, "$lte": end}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.opts.filter())
		})
	}
}

func TestLogQueryOptions_FindOptions(t *testing.T) {
	opts := LogQueryOptions{Limit: 25, Skip: 50}.findOptions()
	assert.Equal(t, int64(25), *opts.Limit)
	assert.Equal(t, int64(50), *opts.Skip)
	assert.Equal(t, bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}, opts.Sort)

	unbounded := LogQueryOptions{}.findOptions()
	assert.Nil(t, unbounded.Limit)
	assert.Nil(t, unbounded.Skip)
}

func TestLogEntryDocument_Stamp(t *testing.T) {
	now := time.Date(2025, 2, 3, 8, 30, 0, 0, time.UTC)

	fresh := &LogEntryDocument{Message: "Batch loaded"}
	fresh.stamp(now)
	assert.False(t, fresh.ID.IsZero())
	assert.Equal(t, now, fresh.Timestamp)
	assert.Equal(t, now.Unix(), fresh.ID.Timestamp().Unix())

	id := primitive.NewObjectID()
	earlier := now.Add(-time.Minute)
	kept := &LogEntryDocument{ID: id, Timestamp: earlier}
	kept.stamp(now)
	assert.Equal(t, id, kept.ID)
	assert.Equal(t, earlier, kept.Timestamp)
}
