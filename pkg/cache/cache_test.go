package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (m *manualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *manualClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func TestTTL_ExpiraSegunReloj(t *testing.T) {
	clk := &manualClock{now: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
	c := NewTTL[bool](clk)

	c.Set("sys-1|tickets", true, 30*time.Second)
	v, ok := c.Get("sys-1|tickets")
	require.True(t, ok)
	assert.True(t, v)

	clk.Advance(29 * time.Second)
	_, ok = c.Get("sys-1|tickets")
	assert.True(t, ok, "aún dentro del TTL")

	clk.Advance(time.Second)
	_, ok = c.Get("sys-1|tickets")
	assert.False(t, ok, "vencida al alcanzar el TTL")
	assert.Empty(t, c.entries, "la entrada vencida se descarta al leerla")
}

func TestTTL_TTLNoPositivoNoAlmacena(t *testing.T) {
	c := NewTTL[string](nil)
	c.Set("k", "v", 0)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestTTL_Invalidaciones(t *testing.T) {
	c := NewTTL[int](nil)
	c.Set("sys-1|a", 1, time.Minute)
	c.Set("sys-1|b", 2, time.Minute)
	c.Set("sys-2|a", 3, time.Minute)

	c.InvalidatePrefix("sys-1|")
	_, ok := c.Get("sys-1|a")
	assert.False(t, ok)
	_, ok = c.Get("sys-1|b")
	assert.False(t, ok)
	v, ok := c.Get("sys-2|a")
	require.True(t, ok, "otro tenant no se ve afectado")
	assert.Equal(t, 3, v)
}

func TestTTL_Concurrencia(t *testing.T) {
	c := NewTTL[int](nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set("k", i, time.Minute)
			_, _ = c.Get("k")
			c.InvalidatePrefix("x")
		}(i)
	}
	wg.Wait()
	_, ok := c.Get("k")
	assert.True(t, ok)
}
