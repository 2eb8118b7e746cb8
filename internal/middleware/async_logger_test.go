package middleware

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func scanRejected(orderID string) *model.LogEntry {
	return &model.LogEntry{Level: "warn", Message: "Scan rejected", ActionType: model.ActionScanRejected, OrderID: orderID}
}

func TestNewAsyncLogger(t *testing.T) {
	tests := []struct {
		name     string
		service  bool
		cfg      AsyncLoggerConfig
		expected AsyncLoggerConfig
	}{
		{
			name:     "zero config takes defaults",
			service:  true,
			expected: DefaultAsyncLoggerConfig(),
		},
		{
			name:    "custom config is kept",
			service: true,
			cfg:     AsyncLoggerConfig{BufferSize: 8, NumWorkers: 1, BatchSize: 2, FlushInterval: time.Millisecond, WriteTimeout: time.Second},
			expected: AsyncLoggerConfig{
				BufferSize: 8, NumWorkers: 1, BatchSize: 2, FlushInterval: time.Millisecond, WriteTimeout: time.Second,
			},
		},
		{
			name: "nil logging service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.service {
				assert.Nil(t, NewAsyncLogger(nil, tt.cfg))
				return
			}
			al := NewAsyncLogger(new(mocks.MockLoggingService), tt.cfg)
			defer al.Stop()
			assert.Equal(t, tt.expected, al.cfg)
		})
	}
}

func TestAsyncLogger_BatchesEntries(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	var inserted atomic.Int64
	svc.On("CreateLogs", mock.Anything, mock.MatchedBy(func(entries []*model.LogEntry) bool {
		return len(entries) == 5
	})).Run(func(args mock.Arguments) {
		inserted.Add(int64(len(args.Get(1).([]*model.LogEntry))))
	}).Return(nil).Twice()

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 20, NumWorkers: 1, BatchSize: 5, FlushInterval: time.Hour})
	for i := 0; i < 10; i++ {
		assert.True(t, al.Log(scanRejected(fmt.Sprintf("ORD-%d", i))))
	}
	al.Stop()

	assert.Equal(t, int64(10), inserted.Load())
	assert.Equal(t, AsyncLoggerStats{Enqueued: 10, Written: 10}, al.Stats())
	svc.AssertExpectations(t)
}

func TestAsyncLogger_FlushInterval(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	written := make(chan struct{})
	svc.On("CreateLog", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
		return e.OrderID == "ORD-1"
	})).Run(func(mock.Arguments) { close(written) }).Return(nil).Once()

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 4, NumWorkers: 1, BatchSize: 50, FlushInterval: 20 * time.Millisecond})
	defer al.Stop()
	al.Log(scanRejected("ORD-1"))

	select {
	case <-written:
	case <-time.After(2 * time.Second):
		t.Fatal("partial batch was not flushed")
	}
}

func TestAsyncLogger_DropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLog", mock.Anything, mock.Anything).Run(func(mock.Arguments) { <-block }).Return(nil).Maybe()
	svc.On("CreateLogs", mock.Anything, mock.Anything).Return(nil).Maybe()

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 2, NumWorkers: 1, BatchSize: 1, FlushInterval: time.Hour})

	dropped := 0
	for i := 0; i < 10; i++ {
		if !al.Log(scanRejected("ORD-X")) {
			dropped++
		}
	}
	close(block)
	al.Stop()

	assert.Greater(t, dropped, 0)
	stats := al.Stats()
	assert.Equal(t, int64(dropped), stats.Dropped)
	assert.Equal(t, int64(10), stats.Enqueued+stats.Dropped)
}

func TestAsyncLogger_WriteFailure(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLogs", mock.Anything, mock.Anything).Return(errors.New("mongodb: no reachable servers"))

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 10, FlushInterval: time.Hour})
	for i := 0; i < 3; i++ {
		al.Log(scanRejected("ORD-1"))
	}
	al.Stop()

	assert.Equal(t, AsyncLoggerStats{Enqueued: 3, Failed: 3}, al.Stats())
}

func TestAsyncLogger_StopRejectsNewEntries(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 4, NumWorkers: 2})

	al.Stop()
	al.Stop()

	assert.False(t, al.Log(scanRejected("ORD-1")))
	svc.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
}

func TestAsyncLogger_NilIsSafe(t *testing.T) {
	var al *AsyncLogger

	assert.False(t, al.Log(&model.LogEntry{ActionType: model.ActionShippingConfirmed}))
}

func TestGlobalAsyncLogger(t *testing.T) {
	StopAsyncLogger()
	assert.Nil(t, GetAsyncLogger())

	first := new(mocks.MockLoggingService)
	second := new(mocks.MockLoggingService)
	second.On("CreateLog", mock.Anything, mock.Anything).Return(nil).Once()

	InitAsyncLogger(first, DefaultAsyncLoggerConfig())
	replaced := GetAsyncLogger()
	InitAsyncLogger(second, DefaultAsyncLoggerConfig())
	current := GetAsyncLogger()

	assert.NotSame(t, replaced, current)
	assert.False(t, replaced.Log(scanRejected("ORD-1")), "replaced logger is stopped")
	assert.True(t, current.Log(&model.LogEntry{ActionType: model.ActionBatchLoaded}))

	StopAsyncLogger()
	assert.Nil(t, GetAsyncLogger())
	StopAsyncLogger()
	second.AssertExpectations(t)
}
