package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Store owns the cart collection. It is the single writer for its snapshot
// key; every UI surface mutates the cart through it. Reads of a broken or
// missing snapshot yield an empty cart, never an error.
//
// The snapshot is shared storage: another process writing the same key can
// race this one, and the last full-collection write wins. That mirrors the
// multi-tab behavior of the original storage scheme and is accepted for a
// single-shopper cart.
type Store struct {
	snap   Snapshot
	logger *zap.Logger

	mu      sync.Mutex
	lines   []Line
	subs    map[int]chan struct{}
	nextSub int
}

// NewStore builds a store over snap and loads the persisted collection.
// Load failures are logged and treated as an empty cart.
func NewStore(ctx context.Context, snap Snapshot, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		snap:   snap,
		logger: logger,
		subs:   make(map[int]chan struct{}),
	}

	lines, err := snap.Load(ctx)
	if err != nil {
		logger.Warn("cart snapshot unreadable, starting empty", zap.Error(err))
		lines = nil
	}
	s.lines = lines
	return s
}

// Lines returns a copy of the collection in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count is the total quantity across all lines, the number shown on the
// cart badge.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.lines {
		n += l.Qty
	}
	return n
}

// Subtotal is the sum of price times quantity across all lines.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotal(s.lines)
}

// Add increments the line for id, appending a fresh line with quantity 1
// when none exists.
func (s *Store) Add(ctx context.Context, id, title string, price float64, image string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Qty++
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, Line{ID: id, Title: title, Price: price, Image: image, Qty: 1})
	}

	s.persistLocked(ctx)
	s.notifyLocked()
}

// SetQuantity upserts the line's quantity, clamped at zero. Zero removes
// the line; setting an absent line to zero is a no-op.
func (s *Store) SetQuantity(ctx context.Context, id string, qty int) {
	if qty < 0 {
		qty = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.lines {
		if s.lines[i].ID == id {
			idx = i
			break
		}
	}

	switch {
	case qty == 0:
		if idx < 0 {
			return
		}
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	case idx >= 0:
		s.lines[idx].Qty = qty
	default:
		s.lines = append(s.lines, Line{ID: id, Qty: qty})
	}

	s.persistLocked(ctx)
	s.notifyLocked()
}

// Remove deletes the line for id. Removing an absent line is a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLocked(ctx)
			s.notifyLocked()
			return
		}
	}
}

// Checkout computes the receipt, then atomically replaces the collection
// with an empty one. An empty cart returns ErrEmptyCart and mutates
// nothing. There is no payment integration; this is a terminal local
// action.
func (s *Store) Checkout(ctx context.Context) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	r := Receipt{Total: subtotal(s.lines)}
	for _, l := range s.lines {
		r.Items += l.Qty
	}

	s.lines = nil
	s.persistLocked(ctx)
	s.notifyLocked()
	return r, nil
}

// Refresh re-reads the snapshot after an external writer changed it (the
// cross-process counterpart of a storage-change notification). Observers
// are notified only when the collection actually differs.
func (s *Store) Refresh(ctx context.Context) {
	lines, err := s.snap.Load(ctx)
	if err != nil {
		s.logger.Warn("cart refresh failed, keeping current state", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if linesEqual(s.lines, lines) {
		return
	}
	s.lines = lines
	s.notifyLocked()
}

// Subscribe registers a cart-changed observer. The channel carries no
// payload; observers re-read the store to learn what changed. The returned
// cancel func releases the subscription.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
	return ch, cancel
}

func (s *Store) persistLocked(ctx context.Context) {
	if err := s.snap.Save(ctx, s.lines); err != nil {
		// Storage failures are never surfaced to the shopper; the
		// in-memory collection stays authoritative for this process.
		s.logger.Warn("cart snapshot write failed", zap.Error(err))
	}
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func subtotal(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Price * float64(l.Qty)
	}
	return sum
}

func linesEqual(a, b []Line) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
