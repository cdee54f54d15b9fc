package menu

import (
	"sync"

	"go.uber.org/zap"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
)

// Source is the configuration store the cache derives from.
type Source interface {
	Current() (*config.Config, uint64)
	Subscribe(fn func(config.Change)) (cancel func())
}

// Cache memoises the catalog for one configuration version. A change
// notification drops the held catalog, and Get re-derives whenever the held
// version is not the store's current one, so a superseded catalog is never
// served.
type Cache struct {
	src    Source
	logger *zap.Logger

	mu      sync.Mutex
	catalog *Catalog
	err     error
	cancel  func()
}

func NewCache(src Source, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{src: src, logger: logger}
	c.cancel = src.Subscribe(func(config.Change) { c.Invalidate() })
	return c
}

// Get returns the catalog for the current configuration together with any
// per-entry derivation errors.
func (c *Cache) Get() (*Catalog, error) {
	cfg, version := c.src.Current()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.catalog != nil && c.catalog.Version == version {
		return c.catalog, c.err
	}
	cat, err := Derive(cfg)
	cat.Version = version
	if err != nil {
		c.logger.Warn("menu entries excluded", zap.Uint64("version", version), zap.Error(err))
	}
	c.catalog, c.err = cat, err
	return cat, err
}

// Invalidate drops the held catalog.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.catalog, c.err = nil, nil
	c.mu.Unlock()
}

// Close stops listening for configuration changes.
func (c *Cache) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}
