package httpmiddleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Buckets idle past this age have fully refilled and carry no state worth
// keeping. Pruning runs only when the map is about to grow.
const (
	maxTrackedClients = 10000
	idleBucketAge     = time.Minute
)

// TokenBucket limits requests per client IP. State is in-process, which
// matches the single-instance deployment; gallery polling is the only chatty
// traffic and its listings are cached separately.
type TokenBucket struct {
	burst     int
	perMinute int

	mu      sync.Mutex
	buckets map[string]*clientBucket
}

type clientBucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewTokenBucket allows perMinute sustained requests per IP, with bursts up
// to burst. A non-positive burst defaults to perMinute.
func NewTokenBucket(burst, perMinute int) *TokenBucket {
	if burst <= 0 {
		burst = perMinute
	}
	return &TokenBucket{
		burst:     burst,
		perMinute: perMinute,
		buckets:   make(map[string]*clientBucket),
	}
}

// Middleware rejects over-limit requests with 429.
func (t *TokenBucket) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = "unknown"
		}
		if !t.allow(key, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

func (t *TokenBucket) allow(key string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.buckets[key]
	if !ok {
		if len(t.buckets) >= maxTrackedClients {
			t.prune(now)
		}
		t.buckets[key] = &clientBucket{tokens: float64(t.burst) - 1, lastSeen: now}
		return true
	}

	b.tokens += now.Sub(b.lastSeen).Minutes() * float64(t.perMinute)
	if b.tokens > float64(t.burst) {
		b.tokens = float64(t.burst)
	}
	b.lastSeen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (t *TokenBucket) prune(now time.Time) {
	for key, b := range t.buckets {
		if now.Sub(b.lastSeen) > idleBucketAge {
			delete(t.buckets, key)
		}
	}
}
