package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// visitorTTL is how long an idle client keeps its bucket before the
// janitor evicts it.
const visitorTTL = 10 * time.Minute

// RateLimiter hands out continuously-refilling token buckets keyed by
// client IP. Call Stop on shutdown to end the janitor goroutine.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	done     chan struct{}
}

type visitor struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter whose janitor sweeps idle buckets
// every sweepEvery.
func NewRateLimiter(sweepEvery time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		done:     make(chan struct{}),
	}
	go rl.janitor(sweepEvery)
	return rl
}

// Stop terminates the janitor goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

// Limit caps requests at maxPerMinute per client IP. The port is stripped
// from RemoteAddr so connections from the same host share one bucket.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	burst := float64(maxPerMinute)
	perSecond := burst / 60

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.take(clientIP(r), burst, perSecond) {
				w.Header().Set("Retry-After", strconv.Itoa(60/maxPerMinute+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// take refills the client's bucket for the time elapsed since its last
// request, then spends one token. A fresh client starts with a full burst.
func (rl *RateLimiter) take(key string, burst, perSecond float64) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{tokens: burst, lastSeen: now}
		rl.visitors[key] = v
	} else {
		v.tokens += now.Sub(v.lastSeen).Seconds() * perSecond
		if v.tokens > burst {
			v.tokens = burst
		}
		v.lastSeen = now
	}

	if v.tokens < 1 {
		return false
	}
	v.tokens--
	return true
}

func (rl *RateLimiter) janitor(sweepEvery time.Duration) {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-visitorTTL)
			rl.mu.Lock()
			for key, v := range rl.visitors {
				if v.lastSeen.Before(cutoff) {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}
