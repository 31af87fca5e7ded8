package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Idle clients are evicted so the per-IP map stays bounded on
// long-running processes. An evicted client simply gets a fresh bucket
// on its next request.
const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepEvery = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterRegistry hands out one token bucket per client IP
type limiterRegistry struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

func newLimiterRegistry(perMinute int) *limiterRegistry {
	return &limiterRegistry{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
	}
}

// get returns the limiter for ip, creating it on first sight. At most
// once per sweep interval it also drops clients idle past the TTL.
func (r *limiterRegistry) get(ip string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.lastSweep) >= limiterSweepEvery {
		r.sweepLocked(now)
		r.lastSweep = now
	}

	client, ok := r.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[ip] = client
	}
	client.lastSeen = now

	return client.limiter
}

func (r *limiterRegistry) sweepLocked(now time.Time) {
	for ip, client := range r.clients {
		if now.Sub(client.lastSeen) > limiterIdleTTL {
			delete(r.clients, ip)
		}
	}
}

// RateLimit enforces a per-client-IP request ceiling for the endpoint
// group it is attached to. Login and register carry stricter ceilings
// than the note operations. State is in-memory and per-process.
func RateLimit(perMinute int) gin.HandlerFunc {
	registry := newLimiterRegistry(perMinute)

	return func(c *gin.Context) {
		limiter := registry.get(c.ClientIP(), time.Now())

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limited",
				"message": "Too many requests. Try again later.",
			})
			return
		}

		c.Next()
	}
}
