package middleware

import (
	"sync"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per client IP.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex

	perMinute int
	burst     int
}

// NewRateLimiter builds a limiter allowing perMinute requests with the
// given burst per client IP.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		perMinute: perMinute,
		burst:     burst,
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.RLock()
	lim, exists := rl.limiters[ip]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		// Double-check after acquiring write lock
		lim, exists = rl.limiters[ip]
		if !exists {
			lim = rate.NewLimiter(rate.Limit(rl.perMinute)/60, rl.burst)
			rl.limiters[ip] = lim
		}
		rl.mu.Unlock()
	}
	return lim
}

// Handler enforces the per-IP limit, answering 429 on excess.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !rl.limiter(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status": fiber.StatusTooManyRequests,
				"error":  "Too many requests. Please try again later",
			})
		}
		return c.Next()
	}
}
