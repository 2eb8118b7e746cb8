package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestReplayCache(ttl time.Duration) (*replayCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	cache := newReplayCache(ttl)
	cache.now = clock.now
	return cache, clock
}

func TestReplayCache_Begin(t *testing.T) {
	stored := replayEntry{status: 200, contentType: "application/json", body: []byte(`{"updated_count":2}`)}

	tests := []struct {
		name      string
		setup     func(*replayCache, *fakeClock)
		wantFound bool
		wantBusy  bool
	}{
		{
			name:  "unknown key is claimed",
			setup: func(*replayCache, *fakeClock) {},
		},
		{
			name: "finished key is found",
			setup: func(c *replayCache, _ *fakeClock) {
				c.begin("k")
				c.finish("k", stored, true)
			},
			wantFound: true,
		},
		{
			name: "running key is busy",
			setup: func(c *replayCache, _ *fakeClock) {
				c.begin("k")
			},
			wantBusy: true,
		},
		{
			name: "released without keeping is claimed again",
			setup: func(c *replayCache, _ *fakeClock) {
				c.begin("k")
				c.finish("k", stored, false)
			},
		},
		{
			name: "expired entry is claimed again",
			setup: func(c *replayCache, clock *fakeClock) {
				c.begin("k")
				c.finish("k", stored, true)
				clock.advance(2 * time.Minute)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, clock := newTestReplayCache(time.Minute)
			tt.setup(cache, clock)

			entry, found, busy := cache.begin("k")
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantBusy, busy)
			if tt.wantFound {
				assert.Equal(t, stored.body, entry.body)
				assert.Equal(t, stored.contentType, entry.contentType)
			}
		})
	}
}

func TestReplayCache_Sweep(t *testing.T) {
	cache, clock := newTestReplayCache(time.Minute)

	cache.begin("old")
	cache.finish("old", replayEntry{status: 200}, true)
	clock.advance(90 * time.Second)

	cache.begin("new")
	cache.finish("new", replayEntry{status: 200}, true)

	assert.Equal(t, 1, cache.size())
}
