package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// BlobKey is the key the configuration is persisted under.
const BlobKey = "restaurant_config"

// ChangeKind says which operation produced a new configuration.
type ChangeKind string

const (
	ChangeSet     ChangeKind = "set"
	ChangeReplace ChangeKind = "replace"
	ChangeLoad    ChangeKind = "load"
	ChangeReset   ChangeKind = "reset"
)

// Change is delivered to subscribers after every successful mutation.
type Change struct {
	Version uint64     `json:"version"`
	Kind    ChangeKind `json:"kind"`
	Path    string     `json:"path,omitempty"`
}

// Store owns the live configuration. Every mutation swaps in a new immutable
// snapshot and bumps the version, so readers iterating an older snapshot never
// observe a half-written tree.
type Store struct {
	mu      sync.RWMutex
	current *Config
	version uint64
	blobs   BlobStore
	logger  *zap.Logger

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// NewStore creates a store holding the compiled-in defaults. Call Load to pick
// up a persisted configuration.
func NewStore(blobs BlobStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		current: Default(),
		version: 1,
		blobs:   blobs,
		logger:  logger,
		subs:    make(map[int]func(Change)),
	}
}

// Snapshot returns the current configuration. It must not be modified.
func (s *Store) Snapshot() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Current returns the snapshot together with the version it belongs to.
func (s *Store) Current() (*Config, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.version
}

// Version increases on every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers fn for change notifications and returns a function that
// cancels the subscription. fn runs on the mutating goroutine after the new
// snapshot is visible, so it may read the store.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Get resolves a dot path such as "pricing.toppings.pepperoni". Numbers are
// returned as json.Number, containers as generic maps and slices.
func (s *Store) Get(path string) (interface{}, error) {
	tree, err := toTree(s.Snapshot())
	if err != nil {
		return nil, err
	}
	return lookup(tree, path)
}

// Set replaces the leaf at path. The parent must exist; a new key may be
// created only under a map-shaped parent such as pricing.toppings. The store
// stores the value as given: unit conversion belongs to the caller.
func (s *Store) Set(path string, value interface{}) error {
	s.mu.Lock()
	tree, err := toTree(s.current)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := assign(tree, path, value); err != nil {
		s.mu.Unlock()
		return err
	}
	next, err := fromTree(tree)
	if err != nil {
		s.mu.Unlock()
		return &InvalidValueError{Path: path, Err: err}
	}
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return &InvalidValueError{Path: path, Err: err}
	}
	change := s.swap(next, ChangeSet, path)
	s.mu.Unlock()

	s.logger.Info("config updated", zap.String("path", path), zap.Uint64("version", change.Version))
	s.notify(change)
	return nil
}

// Replace swaps in a whole configuration after validating it.
func (s *Store) Replace(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return &InvalidValueError{Err: err}
	}
	s.mu.Lock()
	change := s.swap(cfg.Clone(), ChangeReplace, "")
	s.mu.Unlock()
	s.notify(change)
	return nil
}

// Save writes the whole configuration under BlobKey, overwriting any previous
// value. A failure leaves the in-memory configuration authoritative.
func (s *Store) Save(ctx context.Context) error {
	b, err := json.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := s.blobs.Put(ctx, BlobKey, b); err != nil {
		s.logger.Warn("config save failed", zap.Error(err))
		return fmt.Errorf("failed to persist config: %w", err)
	}
	s.logger.Info("config saved", zap.Int("bytes", len(b)))
	return nil
}

// Load replaces the configuration with the persisted one. A missing, corrupt or
// invalid blob falls back to the compiled-in defaults and is only logged. It
// reports whether a persisted configuration was applied.
func (s *Store) Load(ctx context.Context) bool {
	next, err := s.read(ctx)
	loaded := err == nil
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			s.logger.Info("no persisted config, using defaults")
		} else {
			s.logger.Warn("persisted config unusable, using defaults", zap.Error(err))
		}
		next = Default()
	}
	s.mu.Lock()
	change := s.swap(next, ChangeLoad, "")
	s.mu.Unlock()
	s.notify(change)
	return loaded
}

func (s *Store) read(ctx context.Context) (*Config, error) {
	b, err := s.blobs.Get(ctx, BlobKey)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(b)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Reset restores the compiled-in defaults and deletes the persisted blob. The
// in-memory reset happens even when the delete fails.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	change := s.swap(Default(), ChangeReset, "")
	s.mu.Unlock()
	s.notify(change)

	if err := s.blobs.Delete(ctx, BlobKey); err != nil {
		s.logger.Warn("config blob delete failed", zap.Error(err))
		return fmt.Errorf("failed to delete persisted config: %w", err)
	}
	return nil
}

// swap must be called with s.mu held.
func (s *Store) swap(next *Config, kind ChangeKind, path string) Change {
	s.current = next
	s.version++
	return Change{Version: s.version, Kind: kind, Path: path}
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}
