package auth

import (
	"sync"

	"nuovo/internal/domain/service"
)

// memoryBlacklist is a process-local revoked-token set. Tokens carry no
// expiry, so entries are kept until the process restarts, matching the
// single-process deployment of the flat-file store.
type memoryBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewMemoryBlacklist creates an empty in-memory token blacklist.
func NewMemoryBlacklist() service.TokenBlacklist {
	return &memoryBlacklist{tokens: make(map[string]struct{})}
}

func (b *memoryBlacklist) Revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = struct{}{}
}

func (b *memoryBlacklist) IsRevoked(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, revoked := b.tokens[token]

	return revoked
}
