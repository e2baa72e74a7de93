package docsite

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/eringen/docsite/frontmatter"
)

// ErrNotFound is returned when a requested page does not exist.
var ErrNotFound = errors.New("docsite: page not found")

// PageCache is an in-memory cache of indexed pages with TTL.
type PageCache struct {
	mu      sync.RWMutex
	docs    []frontmatter.Document
	metas   []frontmatter.Meta
	byPath  map[string]int
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPageCache creates a PageCache backed by the given Store.
func NewPageCache(s *Store, ttl time.Duration) *PageCache {
	return &PageCache{store: s, ttl: ttl}
}

func (c *PageCache) valid() bool {
	return c.docs != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.docs = nil
	c.metas = nil
	c.byPath = nil
	c.mu.Unlock()
}

func (c *PageCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	docs, err := c.store.ListPages(ctx)
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []frontmatter.Document{}
	}
	byPath := make(map[string]int, len(docs))
	for i, d := range docs {
		byPath[d.ResourcePath] = i
	}
	c.docs = docs
	c.metas = frontmatter.Metas(docs)
	c.byPath = byPath
	c.fetched = time.Now()
	return nil
}

type snapshot struct {
	docs   []frontmatter.Document
	metas  []frontmatter.Meta
	byPath map[string]int
}

// ensureLoaded returns the cached pages after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PageCache) ensureLoaded(ctx context.Context) (snapshot, error) {
	c.mu.RLock()
	if c.valid() {
		s := snapshot{c.docs, c.metas, c.byPath}
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return snapshot{}, err
	}
	return snapshot{c.docs, c.metas, c.byPath}, nil
}

// ListPages returns every indexed page.
func (c *PageCache) ListPages(ctx context.Context) ([]frontmatter.Document, error) {
	s, err := c.ensureLoaded(ctx)
	return s.docs, err
}

// Metas returns the aggregate front matter of every indexed page. The
// returned slice is shared and must not be modified.
func (c *PageCache) Metas(ctx context.Context) ([]frontmatter.Meta, error) {
	s, err := c.ensureLoaded(ctx)
	return s.metas, err
}

// GetPage returns a page by resource path from the cache.
func (c *PageCache) GetPage(ctx context.Context, resourcePath string) (frontmatter.Document, error) {
	s, err := c.ensureLoaded(ctx)
	if err != nil {
		return frontmatter.Document{}, err
	}
	i, ok := s.byPath[resourcePath]
	if !ok {
		return frontmatter.Document{}, ErrNotFound
	}
	return s.docs[i], nil
}

// Resolve returns the first page matching one of the resource candidates
// for a route.
func (c *PageCache) Resolve(ctx context.Context, candidates []string) (frontmatter.Document, error) {
	for _, rp := range candidates {
		doc, err := c.GetPage(ctx, rp)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return frontmatter.Document{}, err
		}
	}
	return frontmatter.Document{}, ErrNotFound
}
