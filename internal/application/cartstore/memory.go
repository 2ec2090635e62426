package cartstore

import (
	"context"
	"sync"

	"github.com/girafadepapel/storefront-service/internal/domain/cart"
)

// MemoryPersistence is the in-memory swap-in for tests and local runs.
type MemoryPersistence struct {
	mu    sync.RWMutex
	carts map[string]cart.Cart
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{
		carts: make(map[string]cart.Cart),
	}
}

func (m *MemoryPersistence) Load(_ context.Context, sessionID string) (*cart.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.carts[sessionID]
	if !ok {
		return nil, nil
	}
	return &stored, nil
}

func (m *MemoryPersistence) Save(_ context.Context, sessionID string, c cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = c
	return nil
}

func (m *MemoryPersistence) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
