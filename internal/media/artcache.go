package media

import (
	"container/list"
	"strings"
	"sync"
)

// ArtworkCache is a small LRU keyed by "artist|title", holding
// base64-encoded artwork so track changes back and forth do not refetch
// the same image.
type ArtworkCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	lru     *list.List
}

type artEntry struct {
	key     string
	artwork string
}

// NewArtworkCache creates a cache holding at most maxSize entries.
func NewArtworkCache(maxSize int) *ArtworkCache {
	return &ArtworkCache{
		maxSize: maxSize,
		entries: make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func artworkKey(artist, title string) string {
	return strings.ToLower(strings.TrimSpace(artist)) + "|" + strings.ToLower(strings.TrimSpace(title))
}

// Get returns the cached artwork for a track, if present.
func (c *ArtworkCache) Get(artist, title string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[artworkKey(artist, title)]
	if !ok {
		return "", false
	}
	c.lru.MoveToFront(elem)
	return elem.Value.(*artEntry).artwork, true
}

// Set stores artwork for a track, evicting the least recently used entry
// when full.
func (c *ArtworkCache) Set(artist, title, artwork string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := artworkKey(artist, title)
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*artEntry).artwork = artwork
		c.lru.MoveToFront(elem)
		return
	}

	if c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.entries, oldest.Value.(*artEntry).key)
		}
	}

	c.entries[key] = c.lru.PushFront(&artEntry{key: key, artwork: artwork})
}

// Len reports the number of cached entries.
func (c *ArtworkCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
