package bowlinghandlers

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimiterOptions configures the per-client throttle of the scoring API.
type LimiterOptions struct {
	// Rate is the sustained number of requests per second per client.
	Rate float64
	// Burst is how many requests a client may send at once.
	Burst int
	// IdleAfter is how long a client may stay silent before it is forgotten.
	IdleAfter time.Duration
	// PruneAbove is the number of tracked clients that triggers forgetting idle ones.
	PruneAbove int
}

// DefaultLimiterOptions returns the options used when only a rate and a burst are known.
func DefaultLimiterOptions(ratePerSecond float64, burst int) LimiterOptions {
	return LimiterOptions{
		Rate:       ratePerSecond,
		Burst:      burst,
		IdleAfter:  10 * time.Minute,
		PruneAbove: 500,
	}
}

type client struct {
	tokens   *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter throttles scoring requests per client address.
type ClientLimiter struct {
	opts LimiterOptions
	now  func() time.Time

	mu      sync.Mutex
	clients map[string]*client
}

// NewClientLimiter creates a limiter with opts.
func NewClientLimiter(opts LimiterOptions) *ClientLimiter {
	return &ClientLimiter{
		opts:    opts,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// Allow spends one token of key. When none is left it reports how long the
// client should wait.
func (l *ClientLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.clients) > l.opts.PruneAbove {
		l.forgetIdle(now)
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{tokens: rate.NewLimiter(rate.Limit(l.opts.Rate), l.opts.Burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	if c.tokens.AllowN(now, 1) {
		return true, 0
	}
	missing := 1 - c.tokens.TokensAt(now)
	return false, time.Duration(missing / l.opts.Rate * float64(time.Second))
}

func (l *ClientLimiter) forgetIdle(now time.Time) {
	cutoff := now.Add(-l.opts.IdleAfter)
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

// Len reports how many clients are tracked.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// clientKey is the remote host of r, or the raw address when it has no port.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware answers 429 with a Retry-After header once a client has
// spent its burst.
func RateLimitMiddleware(limiter *ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := limiter.Allow(clientKey(r))
			if !ok {
				seconds := int(math.Ceil(wait.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
				writeError(w, http.StatusTooManyRequests, "rate_limit", "too many scoring requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
