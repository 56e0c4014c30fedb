package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/clinica-api/internal/application/dto"
)

// TenantRateLimiter limita las peticiones de escritura por sistema (tenant)
// para que un tenant ruidoso no sature la base de datos de los demás.
type TenantRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rateLimiterEntry
	rate     rate.Limit
	burst    int
	entryTTL time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig configuración del limitador.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration // 0 desactiva la limpieza en segundo plano
	EntryTTL          time.Duration
}

// NewTenantRateLimiter crea el limitador y, si CleanupInterval > 0, arranca la limpieza periódica.
func NewTenantRateLimiter(cfg RateLimiterConfig) *TenantRateLimiter {
	rl := &TenantRateLimiter{
		limiters: make(map[string]*rateLimiterEntry),
		rate:     rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
		entryTTL: cfg.EntryTTL,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go rl.cleanupLoop(cfg.CleanupInterval)
	}
	return rl
}

// Stop detiene la limpieza en segundo plano.
func (rl *TenantRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *TenantRateLimiter) limiterFor(systemID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if entry, ok := rl.limiters[systemID]; ok {
		entry.lastSeen = now
		return entry.limiter
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[systemID] = &rateLimiterEntry{limiter: limiter, lastSeen: now}
	return limiter
}

func (rl *TenantRateLimiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// cleanup elimina los limitadores sin uso durante más de entryTTL.
func (rl *TenantRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.entryTTL)
	for id, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, id)
		}
	}
}

// Middleware aplica el límite del tenant del token. Sin tenant deja pasar: AuthMiddleware ya habrá respondido 401.
func (rl *TenantRateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		systemID := GetSystemID(c)
		if systemID == "" {
			return c.Next()
		}
		limiter := rl.limiterFor(systemID)
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !limiter.AllowN(rl.now(), 1) {
			c.Set("X-RateLimit-Remaining", "0")
			c.Set("Retry-After", "1")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intente de nuevo en unos segundos",
			})
		}
		c.Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.TokensAt(rl.now()))))
		return c.Next()
	}
}

// Stats estado actual del limitador.
func (rl *TenantRateLimiter) Stats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return map[string]interface{}{
		"active_tenants":  len(rl.limiters),
		"rate_per_second": float64(rl.rate),
		"burst_size":      rl.burst,
		"entry_ttl_ms":    rl.entryTTL.Milliseconds(),
	}
}
