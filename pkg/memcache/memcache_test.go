package memcache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCache(maxEntries, maxMemoryMB int) *Cache {
	// Intervalo longo para a varredura não interferir nos testes
	c := New(maxEntries, maxMemoryMB, time.Hour)
	return c
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(10, 10)
	defer c.Stop()

	c.Set("chave", "valor", time.Minute)

	got, ok := c.Get("chave")
	assert.True(t, ok)
	assert.Equal(t, "valor", got)

	_, ok = c.Get("inexistente")
	assert.False(t, ok)
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	c := newTestCache(10, 10)
	defer c.Stop()

	c.Set("chave", "valor", -time.Second)

	_, ok := c.Get("chave")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_MaxEntriesEvictsOldest(t *testing.T) {
	c := newTestCache(1000, 0)
	defer c.Stop()

	for i := 0; i < 1001; i++ {
		c.Set(fmt.Sprintf("chave-%d", i), i, time.Minute)
	}

	assert.Equal(t, 1000, c.Len())

	// A primeira entrada inserida é a removida
	_, ok := c.Get("chave-0")
	assert.False(t, ok)

	_, ok = c.Get("chave-1000")
	assert.True(t, ok)
}

func TestCache_OverwriteDoesNotGrow(t *testing.T) {
	c := newTestCache(10, 10)
	defer c.Stop()

	c.Set("chave", "primeiro", time.Minute)
	c.Set("chave", "segundo", time.Minute)

	assert.Equal(t, 1, c.Len())

	got, ok := c.Get("chave")
	assert.True(t, ok)
	assert.Equal(t, "segundo", got)
}

func TestCache_OversizedEntryIsRejected(t *testing.T) {
	// Orçamento de 1 MB: uma entrada acima de meio MB é ignorada
	c := newTestCache(10, 1)
	defer c.Stop()

	big := make([]byte, 600*1024)
	c.Set("gigante", big, time.Minute)

	_, ok := c.Get("gigante")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_MemoryBudgetEvictsLeastUsed(t *testing.T) {
	// Orçamento de 1 MB com entradas de ~400 KB serializadas: a terceira
	// entrada estoura o orçamento e a de menor uso é removida
	c := newTestCache(100, 1)
	defer c.Stop()

	payload := make([]int, 200*1024)

	c.Set("quente", payload, time.Minute)
	c.Set("fria", payload, time.Minute)

	_, ok := c.Get("quente")
	assert.True(t, ok)
	_, ok = c.Get("quente")
	assert.True(t, ok)

	c.Set("nova", payload, time.Minute)

	_, ok = c.Get("fria")
	assert.False(t, ok)
	_, ok = c.Get("quente")
	assert.True(t, ok)
	_, ok = c.Get("nova")
	assert.True(t, ok)
}

func TestCache_DeletePattern(t *testing.T) {
	c := newTestCache(100, 10)
	defer c.Stop()

	c.Set("smart:monthly:client-1:meta", 1, time.Minute)
	c.Set("smart:monthly:client-1:google", 2, time.Minute)
	c.Set("smart:weekly:client-1:meta", 3, time.Minute)
	c.Set("smart:monthly:client-2:meta", 4, time.Minute)

	removed := c.DeletePattern("smart:*:client-1:*")
	assert.Equal(t, 3, removed)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("smart:monthly:client-2:meta")
	assert.True(t, ok)
}

func TestCache_Cleanup(t *testing.T) {
	c := newTestCache(100, 10)
	defer c.Stop()

	c.Set("expirada-1", 1, -time.Second)
	c.Set("expirada-2", 2, -time.Second)
	c.Set("viva", 3, time.Minute)

	removed := c.Cleanup()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(10, 10)
	defer c.Stop()

	c.Set("chave", "valor", time.Minute)
	c.Delete("chave")

	_, ok := c.Get("chave")
	assert.False(t, ok)
}

func TestCache_StopIsIdempotent(t *testing.T) {
	c := newTestCache(10, 10)
	c.Stop()
	c.Stop()
}
