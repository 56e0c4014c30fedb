// Package cache ofrece una caché en memoria con expiración por entrada y reloj inyectable.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Clock fuente de tiempo; en tests se sustituye por un reloj manual.
type Clock interface {
	Now() time.Time
}

// SystemClock usa time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Cache contrato mínimo que consumen los servicios.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
	InvalidatePrefix(prefix string)
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL caché segura para uso concurrente. Las entradas vencidas se descartan al leerlas.
type TTL[V any] struct {
	mu      sync.RWMutex
	clock   Clock
	entries map[string]entry[V]
}

var _ Cache[bool] = (*TTL[bool])(nil)

// NewTTL construye la caché. clock nil equivale a SystemClock.
func NewTTL[V any](clock Clock) *TTL[V] {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TTL[V]{clock: clock, entries: make(map[string]entry[V])}
}

func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	var zero V
	if !ok {
		return zero, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		c.mu.Lock()
		// puede haberse refrescado entre RUnlock y Lock
		if cur, still := c.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set guarda value; ttl <= 0 no almacena nada.
func (c *TTL[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.clock.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *TTL[V]) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}
