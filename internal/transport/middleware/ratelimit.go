package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/taskscope-backend/pkg/ctxutil"
)

// idleBucketTTL is how long an untouched bucket survives cleanup.
const idleBucketTTL = 10 * time.Minute

// RateLimiter holds one token bucket per caller and route limit. The
// caller is the authenticated user when known, the client IP otherwise.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	tokens   float64
	capacity float64
	perSec   float64
	seen     time.Time
}

// NewRateLimiter starts a limiter that evicts idle buckets every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the cleanup goroutine. It is safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows maxPerMinute requests per caller with bursts up to the same
// amount. A non-positive limit disables limiting.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		if maxPerMinute <= 0 {
			return next
		}
		limit := strconv.Itoa(maxPerMinute)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wait, ok := rl.take(limit+"|"+callerKey(r), maxPerMinute)
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take spends one token from the key's bucket. When the bucket is empty it
// reports how long until the next token.
func (rl *RateLimiter) take(key string, maxPerMinute int) (time.Duration, bool) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		capacity := float64(maxPerMinute)
		b = &bucket{tokens: capacity, capacity: capacity, perSec: capacity / 60, seen: now}
		rl.buckets[key] = b
	}

	b.tokens = min(b.capacity, b.tokens+now.Sub(b.seen).Seconds()*b.perSec)
	b.seen = now

	if b.tokens < 1 {
		return time.Duration((1 - b.tokens) / b.perSec * float64(time.Second)), false
	}
	b.tokens--
	return 0, true
}

func callerKey(r *http.Request) string {
	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	cutoff := rl.now().Add(-idleBucketTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, b := range rl.buckets {
		if b.seen.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}
