package config

import "github.com/pvidovic/estima/internal/domain"

// Store holds the process-wide GlobalConfig. It is constructed once in main
// and passed to every resolver; there is no ambient global state.
//
// The store carries a monotonic revision counter bumped on every global
// mutation. Resolvers use it as half of their cache key, so a write through
// any resolver sharing this store is visible to the very next resolve on
// every other resolver.
type Store struct {
	global *domain.GlobalConfig
	rev    uint64
	dirty  bool
}

// NewStore builds a store seeded with the built-in defaults. Used on first
// run and whenever the persisted configuration is missing or corrupt.
func NewStore() *Store {
	return NewStoreFrom(domain.DefaultGlobalConfig())
}

// NewStoreFrom builds a store around a loaded configuration. Nil sections
// are normalized to empty so later merges never branch on missing data.
func NewStoreFrom(g *domain.GlobalConfig) *Store {
	if g == nil {
		g = domain.DefaultGlobalConfig()
	}
	g.Normalize()
	return &Store{global: g}
}

// Global returns the held configuration. Mutations must go through a
// resolver's global-scoped mutators so the revision advances.
func (s *Store) Global() *domain.GlobalConfig {
	return s.global
}

// Revision returns the current global revision.
func (s *Store) Revision() uint64 {
	return s.rev
}

// Touch records a global mutation: the revision advances and the dirty
// flag is raised for the persistence collaborator.
func (s *Store) Touch() {
	s.rev++
	s.dirty = true
}

// Dirty reports whether the global configuration has unpersisted changes.
func (s *Store) Dirty() bool {
	return s.dirty
}

// ClearDirty is called by the persistence collaborator after a save.
func (s *Store) ClearDirty() {
	s.dirty = false
}
