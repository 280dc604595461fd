// Package cache wraps an in-process LRU cache for search results, so
// repeated filter queries do not re-merge the sources on every request.
package cache

import (
	"time"

	"github.com/dmitrijs2005/estately/internal/models"
	"github.com/karlseguin/ccache/v3"
)

// ResultCache stores filtered listing collections keyed by a digest of the
// filter spec.
type ResultCache struct {
	inner *ccache.Cache[[]models.Property]
	ttl   time.Duration
}

// New builds a ResultCache with the given entry TTL.
func New(ttl time.Duration) *ResultCache {
	return &ResultCache{
		inner: ccache.New(ccache.Configure[[]models.Property]().MaxSize(512)),
		ttl:   ttl,
	}
}

// Get returns the cached collection for key, if present and fresh.
func (c *ResultCache) Get(key string) ([]models.Property, bool) {
	item := c.inner.Get(key)
	if item == nil || item.Expired() {
		return nil, false
	}
	return item.Value(), true
}

// Set stores a collection under key.
func (c *ResultCache) Set(key string, props []models.Property) {
	c.inner.Set(key, props, c.ttl)
}

// Clear drops every cached collection. Called after writes that change the
// merged view.
func (c *ResultCache) Clear() {
	c.inner.Clear()
}
