package cart

import "context"

// Snapshot persists the whole cart collection as one unit under one
// well-known key. There are no delta writes; every mutation rewrites the
// full collection, matching the single-storage-key contract.
type Snapshot interface {
	// Load returns the persisted collection, or nil when none exists.
	Load(ctx context.Context) ([]Line, error)
	// Save replaces the persisted collection.
	Save(ctx context.Context, lines []Line) error
}

// Watcher is implemented by snapshot backends that can observe writes made
// by other processes. onChange fires after an external write; the store
// responds by re-reading the snapshot.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}
