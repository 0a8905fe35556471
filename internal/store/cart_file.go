package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"geekynerds/internal/cart"
)

// CartFile persists the cart as one JSON array in a file. Writes from other
// processes are observable through Watch, the cross-process counterpart of
// the browser storage event.
type CartFile struct {
	path string
}

func NewCartFile(path string) *CartFile {
	return &CartFile{path: path}
}

func (f *CartFile) Load(ctx context.Context) ([]cart.Line, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cart file read: %w", err)
	}

	var lines []cart.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("cart file decode: %w", err)
	}
	return lines, nil
}

func (f *CartFile) Save(ctx context.Context, lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart file encode: %w", err)
	}

	// Write-then-rename keeps concurrent readers off half-written files.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("cart file write: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("cart file rename: %w", err)
	}
	return nil
}

// Watch invokes onChange whenever the cart file is rewritten, own writes
// included; the store's refresh path drops no-op changes. Watch blocks
// until ctx is done.
func (f *CartFile) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cart file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: rename-based saves replace the file node.
	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("cart file watch %s: %w", dir, err)
	}

	name := filepath.Base(f.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("cart file watch: %w", err)
		}
	}
}
