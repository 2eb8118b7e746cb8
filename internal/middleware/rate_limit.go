package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/i18n"
	"golang.org/x/time/rate"
)

const defaultNumShards = 16

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiterShard struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// RateLimiter is a token bucket per client. Each bucket holds up to rate
// tokens and refills evenly over window, so a scanner can fire a burst of
// reads at once and then continues at the sustained rate. Buckets are
// spread over shards to keep lock contention low.
type RateLimiter struct {
	shards []*rateLimiterShard
	limit  rate.Limit
	burst  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter allows n requests per window per client.
func NewRateLimiter(n int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(n, window, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with a custom shard count.
func NewShardedRateLimiter(n int, window time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	if n <= 0 {
		n = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{visitors: make(map[string]*visitor)}
	}
	return &RateLimiter{
		shards: shards,
		limit:  rate.Limit(float64(n) / window.Seconds()),
		burst:  n,
		window: window,
		now:    time.Now,
	}
}

func (rl *RateLimiter) shard(identifier string) *rateLimiterShard {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// allow takes a token for identifier. When none is left it reports how long
// until the next one.
func (rl *RateLimiter) allow(identifier string) (allowed bool, remaining int, retryAfter time.Duration) {
	s := rl.shard(identifier)
	now := rl.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > rl.window {
		for id, v := range s.visitors {
			if now.Sub(v.lastSeen) > 2*rl.window {
				delete(s.visitors, id)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[identifier]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		s.visitors[identifier] = v
	}
	v.lastSeen = now

	if v.limiter.AllowN(now, 1) {
		return true, int(v.limiter.TokensAt(now)), 0
	}
	missing := 1 - v.limiter.TokensAt(now)
	return false, 0, time.Duration(missing / float64(rl.limit) * float64(time.Second))
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.handler(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// WorkspaceRateLimit limits requests per operator workspace, falling back
// to the client IP when no workspace is set.
func (rl *RateLimiter) WorkspaceRateLimit() gin.HandlerFunc {
	return rl.handler(workspaceIdentifier)
}

func (rl *RateLimiter) handler(identify func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, retryAfter := rl.allow(identify(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if allowed {
			c.Next()
			return
		}

		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		message := i18n.Localize(c, i18n.ErrKeyRateLimitExceeded)
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
	}
}

func workspaceIdentifier(c *gin.Context) string {
	if id := GetWorkspaceID(c); id != "" {
		return "workspace:" + id
	}
	return "ip:" + c.ClientIP()
}

// Visitors returns the number of clients currently tracked.
func (rl *RateLimiter) Visitors() int {
	total := 0
	for _, s := range rl.shards {
		s.mu.Lock()
		total += len(s.visitors)
		s.mu.Unlock()
	}
	return total
}
