package gaclient

import (
	"sync"
	"time"
)

// tokenCache é um cache em memória de tokens de acesso, chaveado pela
// impressão digital da credencial. A expiração fica abaixo da validade de
// uma hora da assertion, então um token servido pelo cache nunca sobrevive
// à janela em que foi emitido.
type tokenCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]tokenEntry
	now     func() time.Time
}

type tokenEntry struct {
	token     string
	expiresAt time.Time
}

func newTokenCache(ttl time.Duration) *tokenCache {
	return &tokenCache{
		ttl:     ttl,
		entries: make(map[string]tokenEntry),
		now:     time.Now,
	}
}

func (c *tokenCache) get(fingerprint string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[fingerprint]
	if !ok {
		return "", false
	}

	if c.now().After(entry.expiresAt) {
		delete(c.entries, fingerprint)
		return "", false
	}

	return entry.token, true
}

func (c *tokenCache) put(fingerprint, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[fingerprint] = tokenEntry{
		token:     token,
		expiresAt: c.now().Add(c.ttl),
	}
}
