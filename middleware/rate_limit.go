package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// DefaultSweepThreshold is the store size above which expired entries are purged
const DefaultSweepThreshold = 1000

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the fixed window length
	Window time.Duration
	// KeyFunc returns the client key (defaults to ClientIdentifier)
	KeyFunc func(c echo.Context) string
	// Message is the error message returned when rate limit is exceeded
	Message string
	// SweepThreshold triggers a purge of expired entries once exceeded
	SweepThreshold int
	// Now is the clock; tests replace it
	Now func() time.Time
}

// rateLimitEntry tracks request count and window expiration
type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is a fixed-window, in-process counter keyed by client.
// It is not shared across instances.
type RateLimiter struct {
	config RateLimitConfig
	store  map[string]*rateLimitEntry
	mu     sync.Mutex
}

// ContactRateLimitConfig allows 5 contact submissions per minute per client
func ContactRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Requests: 5,
		Window:   time.Minute,
		Message:  "Too many requests",
	}
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = ClientIdentifier
	}
	if config.Message == "" {
		config.Message = "Too many requests"
	}
	if config.SweepThreshold <= 0 {
		config.SweepThreshold = DefaultSweepThreshold
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &RateLimiter{
		config: config,
		store:  make(map[string]*rateLimitEntry),
	}
}

// Allow records a request for key and reports whether it fits in the
// current window, along with the time that window ends. Rejected requests
// still count, so a client stays blocked until the window expires.
func (rl *RateLimiter) Allow(key string) (bool, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.config.Now()
	if len(rl.store) > rl.config.SweepThreshold {
		rl.sweepLocked(now)
	}

	entry, exists := rl.store[key]
	if !exists || !now.Before(entry.expiresAt) {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(rl.config.Window),
		}
		rl.store[key] = entry
		return true, entry.expiresAt
	}

	entry.count++
	return entry.count <= rl.config.Requests, entry.expiresAt
}

// Len returns the number of tracked clients
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.store)
}

// sweepLocked removes every entry whose window has passed. Caller holds mu.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	for key, entry := range rl.store {
		if !now.Before(entry.expiresAt) {
			delete(rl.store, key)
		}
	}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, resetAt := rl.Allow(rl.config.KeyFunc(c))
			if !allowed {
				retryAfter := int(math.Ceil(resetAt.Sub(rl.config.Now()).Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
			}
			return next(c)
		}
	}
}

// ClientIdentifier keys a request by the first X-Forwarded-For hop, then
// X-Real-IP, then the literal "unknown"
func ClientIdentifier(c echo.Context) string {
	header := c.Request().Header
	if forwarded := header.Get(echo.HeaderXForwardedFor); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(header.Get(echo.HeaderXRealIP)); realIP != "" {
		return realIP
	}
	return "unknown"
}
