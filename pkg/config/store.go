package config

import "sync"

// Store is the single source of truth for endpoint configuration. It is safe
// for concurrent use; every Update is applied as a unit.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

// NewStore returns a store holding cfg. Empty Model and BaseURL fall back to
// their defaults.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg.normalize()}
}

func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update replaces the fields set in u. An empty Model or BaseURL resets that
// field to its default.
func (s *Store) Update(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = u.Apply(s.cfg)
}

func (s *Store) IsReady() bool {
	return s.Get().Ready()
}
