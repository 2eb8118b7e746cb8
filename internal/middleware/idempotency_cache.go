package middleware

import (
	"sync"
	"time"
)

// replayEntry is a finished response kept for replay.
type replayEntry struct {
	status      int
	contentType string
	body        []byte
	storedAt    time.Time
}

// replayCache holds finished responses and the keys of requests still running.
// Expired entries are swept lazily on writes, at most once per ttl.
type replayCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	done      map[string]replayEntry
	running   map[string]struct{}
	lastSweep time.Time
	now       func() time.Time
}

func newReplayCache(ttl time.Duration) *replayCache {
	return &replayCache{
		ttl:     ttl,
		done:    make(map[string]replayEntry),
		running: make(map[string]struct{}),
		now:     time.Now,
	}
}

// begin looks the key up. It returns the stored entry when one is fresh,
// reports busy when another request holds the key, and otherwise claims it.
func (c *replayCache) begin(key string) (entry replayEntry, found, busy bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.done[key]; ok {
		if c.now().Sub(e.storedAt) <= c.ttl {
			return e, true, false
		}
		delete(c.done, key)
	}
	if _, ok := c.running[key]; ok {
		return replayEntry{}, false, true
	}
	c.running[key] = struct{}{}
	return replayEntry{}, false, false
}

// finish releases the key and, when keep is set, stores the response.
func (c *replayCache) finish(key string, entry replayEntry, keep bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.running, key)
	now := c.now()
	if keep {
		entry.storedAt = now
		c.done[key] = entry
	}
	if now.Sub(c.lastSweep) >= c.ttl {
		c.sweep(now)
	}
}

func (c *replayCache) sweep(now time.Time) {
	for key, e := range c.done {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.done, key)
		}
	}
	c.lastSweep = now
}

func (c *replayCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.done)
}
