// Package querycache holds client-side collections that can be patched
// optimistically and rolled back when the remote write fails.
package querycache

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrSuperseded is returned by Refetch when a mutation started while the
// fetch was in flight. The fetched data is discarded.
var ErrSuperseded = errors.New("refetch superseded by a newer mutation")

// Patch transforms a collection. It receives a private copy and may modify it.
type Patch[T any] func(items []T) []T

// Fetcher loads the authoritative collection.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Reconcile returns what readers see: committed with pending applied on top.
func Reconcile[T any](committed []T, pending Patch[T]) []T {
	if pending == nil {
		return slices.Clone(committed)
	}
	return pending(slices.Clone(committed))
}

// Collection is a read-through cache of one query result.
//
// State is the pair (committed, pending). Mutations are serialized; at most
// one patch is pending at a time, so readers see either the committed rows
// or the fully patched rows and never anything in between.
type Collection[T any] struct {
	fetch Fetcher[T]

	mutating sync.Mutex

	mu         sync.Mutex
	committed  []T
	pending    Patch[T]
	loaded     bool
	stale      bool
	generation uint64
}

func New[T any](fetch Fetcher[T]) *Collection[T] {
	return &Collection[T]{fetch: fetch}
}

// Snapshot returns the visible rows without fetching.
func (c *Collection[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Reconcile(c.committed, c.pending)
}

// Stale reports whether the next Get will refetch.
func (c *Collection[T]) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loaded || c.stale
}

// Invalidate marks the collection stale.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Set replaces the committed rows and clears the stale mark.
func (c *Collection[T]) Set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.committed = slices.Clone(items)
	c.loaded = true
	c.stale = false
}

// Get returns the visible rows, refetching first when stale.
func (c *Collection[T]) Get(ctx context.Context) ([]T, error) {
	if c.Stale() {
		if err := c.Refetch(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
			return nil, err
		}
	}
	return c.Snapshot(), nil
}

// Refetch loads the collection and commits it unless a mutation began while
// the fetch was running.
func (c *Collection[T]) Refetch(ctx context.Context) error {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	items, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.pending != nil {
		return ErrSuperseded
	}
	c.committed = items
	c.loaded = true
	c.stale = false
	return nil
}

// Mutate applies patch locally, then runs remote. On failure the committed
// rows are restored from the snapshot taken before the patch; on success the
// patch is folded into them. Either way the collection ends stale so the
// next Get confirms against the server.
func (c *Collection[T]) Mutate(ctx context.Context, patch Patch[T], remote func(ctx context.Context) error) error {
	c.mutating.Lock()
	defer c.mutating.Unlock()

	c.mu.Lock()
	c.generation++
	snapshot := slices.Clone(c.committed)
	c.pending = patch
	c.mu.Unlock()

	err := remote(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.committed = snapshot
	} else {
		c.committed = Reconcile(snapshot, patch)
	}
	c.pending = nil
	c.stale = true
	return err
}

// RemoveWhere drops every row matching match.
func RemoveWhere[T any](match func(T) bool) Patch[T] {
	return func(items []T) []T {
		return slices.DeleteFunc(items, match)
	}
}

// UpdateWhere rewrites every row matching match.
func UpdateWhere[T any](match func(T) bool, update func(T) T) Patch[T] {
	return func(items []T) []T {
		for i := range items {
			if match(items[i]) {
				items[i] = update(items[i])
			}
		}
		return items
	}
}
