package store

import (
	"context"
	"sync"

	"geekynerds/internal/cart"
)

// CartMemory is an in-process snapshot, the default backend and the test
// double for the persistence port.
type CartMemory struct {
	mu    sync.Mutex
	lines []cart.Line
	saved bool
}

func NewCartMemory() *CartMemory {
	return &CartMemory{}
}

func (m *CartMemory) Load(ctx context.Context) ([]cart.Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return nil, nil
	}
	out := make([]cart.Line, len(m.lines))
	copy(out, m.lines)
	return out, nil
}

func (m *CartMemory) Save(ctx context.Context, lines []cart.Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = make([]cart.Line, len(lines))
	copy(m.lines, lines)
	m.saved = true
	return nil
}
