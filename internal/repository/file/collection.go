// Package file implements stores over flat JSON files, one file per
// collection. Every mutation reads the whole collection, applies the change
// and rewrites the file, so the last successful writer wins. A
// per-collection mutex serializes access inside the process; concurrent
// processes sharing a data directory still race.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type collection[T any] struct {
	path string
	mu   sync.Mutex
}

func newCollection[T any](path string) *collection[T] {
	return &collection[T]{path: path}
}

// view runs fn over a snapshot of the collection under the collection lock.
func (c *collection[T]) view(fn func(items []T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	return fn(items)
}

// update runs fn over the collection under the collection lock and persists
// the result. If fn errors nothing is written.
func (c *collection[T]) update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.save(items)
}

// load reads and decodes the collection. A missing file reads as an empty
// collection so a fresh data directory needs no seeding. A file that exists
// but does not decode is an error, not an empty collection: treating it as
// empty would wipe the store on the next write.
func (c *collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.path, err)
	}
	return items, nil
}

// save rewrites the whole collection. Writing a temp file and renaming it
// over the target keeps the file either fully old or fully new.
func (c *collection[T]) save(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o750); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", c.path, err)
	}
	return nil
}
