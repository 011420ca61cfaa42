package state

import (
	"sync"
)

// UIBounds is the interactive footprint of the rendered UI, in
// window-local coordinates, as reported by the frontend on layout passes.
type UIBounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoundsStore caches the last-reported UIBounds. It starts empty and is
// last-write-wins; there is no history or versioning.
type BoundsStore struct {
	mu     sync.RWMutex
	bounds UIBounds
	set    bool
}

// NewBoundsStore returns an empty store.
func NewBoundsStore() *BoundsStore {
	return &BoundsStore{}
}

// Set replaces the cached bounds. Callable at arbitrary frequency; the
// write section is a single struct assignment.
func (b *BoundsStore) Set(bounds UIBounds) {
	b.mu.Lock()
	b.bounds = bounds
	b.set = true
	b.mu.Unlock()
}

// Get returns the cached bounds and whether any have been reported yet.
func (b *BoundsStore) Get() (UIBounds, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bounds, b.set
}

// TryGet is the non-blocking read used by the hover detector's poll loop.
// It reports false both when no bounds have been set and when the lock is
// momentarily held by a writer; either way the caller falls back to the
// geometry-derived zone for that tick instead of stalling.
func (b *BoundsStore) TryGet() (UIBounds, bool) {
	if !b.mu.TryRLock() {
		return UIBounds{}, false
	}
	defer b.mu.RUnlock()
	return b.bounds, b.set
}
