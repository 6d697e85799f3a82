// Package memcache implementa a camada de cache em memória do processo: a
// primeira e mais rápida camada na frente do smart cache e do banco. O cache
// é local por instância e não sobrevive a restart; os chamadores precisam
// tolerar miss após reinício do processo.
package memcache

import (
	"encoding/json"
	"path"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type entry struct {
	data      any
	createdAt time.Time
	expiresAt time.Time
	hits      int
	size      int64
}

// Cache é um cache chave-valor com TTL, limitado por quantidade de entradas
// e por orçamento estimado de memória. Construído explicitamente e injetado
// em quem precisa dele; não há estado global.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	maxEntries int
	maxBytes   int64
	usedBytes  int64
	stopSweep  chan struct{}
	sweepOnce  sync.Once
}

// New cria o cache e inicia a varredura de limpeza em background. A varredura
// é apenas manutenção oportunista: Get sempre reverifica a expiração.
func New(maxEntries int, maxMemoryMB int, sweepInterval time.Duration) *Cache {
	c := &Cache{
		entries:    make(map[string]*entry),
		maxEntries: maxEntries,
		maxBytes:   int64(maxMemoryMB) * 1024 * 1024,
		stopSweep:  make(chan struct{}),
	}

	go c.sweepLoop(sweepInterval)

	return c
}

// Get retorna o valor da chave ou nil se ausente/expirado
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.removeLocked(key)
		return nil, false
	}

	e.hits++
	return e.data, true
}

// Set armazena o valor com o TTL informado. Uma entrada que sozinha excederia
// metade do orçamento de memória é registrada e ignorada, sem falhar o chamador.
func (c *Cache) Set(key string, data any, ttl time.Duration) {
	size := estimateSize(data)

	if c.maxBytes > 0 && size > c.maxBytes/2 {
		logrus.WithFields(logrus.Fields{
			"key":        key,
			"size_bytes": size,
			"max_bytes":  c.maxBytes,
		}).Warn("Entrada maior que metade do orçamento do cache em memória, ignorando")
		return
	}

	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.usedBytes -= old.size
	}

	c.entries[key] = &entry{
		data:      data,
		createdAt: now,
		expiresAt: now.Add(ttl),
		size:      size,
	}
	c.usedBytes += size

	// Estourou o limite de entradas: remove a mais antiga por inserção
	for c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		c.removeLocked(c.oldestKeyLocked())
	}

	// Estourou o orçamento de memória: remove a de menor uso, desempatando
	// pela mais antiga, até voltar ao orçamento
	for c.maxBytes > 0 && c.usedBytes > c.maxBytes && len(c.entries) > 0 {
		c.removeLocked(c.leastUsedKeyLocked())
	}
}

// Delete remove a chave do cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// DeletePattern remove todas as chaves que casam com o padrão glob
// (ex.: "smart:month:client-1:*") e retorna quantas foram removidas
func (c *Cache) DeletePattern(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		matched, err := path.Match(pattern, key)
		if err != nil {
			logrus.WithError(err).WithField("pattern", pattern).Warn("Padrão de remoção inválido no cache em memória")
			return removed
		}
		if matched {
			c.removeLocked(key)
			removed++
		}
	}

	return removed
}

// Cleanup remove as entradas expiradas e retorna quantas foram removidas
func (c *Cache) Cleanup() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			c.removeLocked(key)
			removed++
		}
	}

	return removed
}

// Len retorna o número atual de entradas
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stop encerra a varredura em background
func (c *Cache) Stop() {
	c.sweepOnce.Do(func() {
		close(c.stopSweep)
	})
}

func (c *Cache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := c.Cleanup(); removed > 0 {
				logrus.WithField("removed", removed).Debug("Varredura do cache em memória removeu entradas expiradas")
			}
		case <-c.stopSweep:
			return
		}
	}
}

func (c *Cache) removeLocked(key string) {
	if e, ok := c.entries[key]; ok {
		c.usedBytes -= e.size
		delete(c.entries, key)
	}
}

func (c *Cache) oldestKeyLocked() string {
	var oldestKey string
	var oldestAt time.Time

	for key, e := range c.entries {
		if oldestKey == "" || e.createdAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.createdAt
		}
	}

	return oldestKey
}

func (c *Cache) leastUsedKeyLocked() string {
	var victim string
	var victimHits int
	var victimAt time.Time

	for key, e := range c.entries {
		if victim == "" || e.hits < victimHits || (e.hits == victimHits && e.createdAt.Before(victimAt)) {
			victim = key
			victimHits = e.hits
			victimAt = e.createdAt
		}
	}

	return victim
}

// estimateSize estima o tamanho serializado da entrada. A heurística só
// precisa ser estável, não exata.
func estimateSize(data any) int64 {
	raw, err := json.Marshal(data)
	if err != nil {
		return 512
	}
	return int64(len(raw))
}
