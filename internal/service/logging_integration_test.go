//go:build integration

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/guttosm/fulfillment-console/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/repository"
	"github.com/guttosm/fulfillment-console/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditTrail_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = mongoContainer.Cleanup(context.Background())
	})

	db, err := repository.NewMongoDB(mongoContainer.URI, testutil.DBName(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close(context.Background())
	})
	require.NoError(t, db.SetLogsTTL(ctx, 30*24*time.Hour))

	logs := NewLoggingService(repository.NewLogsRepositoryWithCircuitBreaker(
		repository.NewLogsRepository(db),
		circuitbreaker.New(circuitbreaker.DefaultConfig()),
	))

	// A shift on dock 1: one batch load, twelve scans with one rejection,
	// then the shipping confirmation.
	start := time.Date(2025, 5, 12, 7, 0, 0, 0, time.UTC)
	entries := []*model.LogEntry{{
		Timestamp: start, Message: "Batch loaded", WorkspaceID: "ws-dock-1", BatchID: "B-40",
		ActionType: model.ActionBatchLoaded,
	}}
	for i := 1; i <= 12; i++ {
		entries = append(entries, &model.LogEntry{
			Timestamp:   start.Add(time.Duration(i) * time.Second),
			Message:     "Request",
			WorkspaceID: "ws-dock-1",
			BatchID:     "B-40",
			OrderID:     fmt.Sprintf("ORD-%d", i),
			ActionType:  model.ActionRequest,
			StatusCode:  200,
		})
	}
	rejected := &model.LogEntry{
		Timestamp: start.Add(20 * time.Second), Level: "WARN", Message: "Scan rejected",
		WorkspaceID: "ws-dock-1", BatchID: "B-40", OrderID: "ORD-3", ActionType: model.ActionScanRejected,
	}
	rejected.WithField("reason", "already_scanned")
	entries = append(entries, rejected)
	require.NoError(t, logs.CreateLogs(ctx, entries))

	confirmed := &model.LogEntry{
		Timestamp: start.Add(time.Minute), Message: "Shipping confirmed", WorkspaceID: "ws-dock-1",
		BatchID: "B-40", ActionType: model.ActionShippingConfirmed,
	}
	require.NoError(t, logs.CreateLog(ctx, confirmed))
	assert.False(t, confirmed.ID.IsZero())

	t.Run("first page newest first", func(t *testing.T) {
		trail, err := AuditTrail(ctx, logs, model.LogQueryOptions{WorkspaceID: "ws-dock-1", Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(15), trail.Total)
		require.Len(t, trail.Entries, 3)
		assert.Equal(t, "Shipping confirmed", trail.Entries[0].Message)
		assert.Equal(t, "Scan rejected", trail.Entries[1].Message)
		assert.Equal(t, "ORD-12", trail.Entries[2].OrderID)
	})

	t.Run("last page", func(t *testing.T) {
		trail, err := AuditTrail(ctx, logs, model.LogQueryOptions{WorkspaceID: "ws-dock-1", Limit: 10, Skip: 10})
		require.NoError(t, err)
		require.Len(t, trail.Entries, 5)
		assert.Equal(t, "Batch loaded", trail.Entries[4].Message)
	})

	t.Run("rejections for one order", func(t *testing.T) {
		trail, err := AuditTrail(ctx, logs, model.LogQueryOptions{
			OrderID:    "ORD-3",
			ActionType: model.ActionScanRejected,
		})
		require.NoError(t, err)
		require.Len(t, trail.Entries, 1)
		assert.Equal(t, "warn", trail.Entries[0].Level)
		assert.Equal(t, "already_scanned", trail.Entries[0].Fields["reason"])
	})

	t.Run("other workspace sees nothing", func(t *testing.T) {
		trail, err := AuditTrail(ctx, logs, model.LogQueryOptions{WorkspaceID: "ws-dock-2"})
		require.NoError(t, err)
		assert.Zero(t, trail.Total)
		assert.Empty(t, trail.Entries)
	})
}
