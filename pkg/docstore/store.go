// Package docstore is the in-process document backend. It only offers
// full-collection retrieval: the query engine performs search, filter,
// sort and pagination over the materialized set. That is O(collection
// size) per request by construction, an accepted tradeoff for the small
// reference collections (file categories, lookup tables) it holds.
package docstore

import (
	"sync"

	"github.com/jcallister/backdesk/pkg/domain"
)

// collection keeps documents by ID plus the insertion order, so FetchAll
// is deterministic and the engine's stable sort has a stable input.
type collection struct {
	docs  map[string]domain.Record
	order []string
}

func newCollection() *collection {
	return &collection{docs: make(map[string]domain.Record)}
}

// Store is an in-memory document store with optional single-file
// snapshot persistence.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	dataFile    string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDataFile sets the snapshot file used by Load and Save.
func WithDataFile(path string) StoreOption {
	return func(s *Store) {
		s.dataFile = path
	}
}

// NewStore creates an empty document store.
func NewStore(options ...StoreOption) *Store {
	s := &Store{
		collections: make(map[string]*collection),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// getOrCreate returns the named collection, creating it on first write.
// Callers must hold the write lock.
func (s *Store) getOrCreate(name string) *collection {
	coll, exists := s.collections[name]
	if !exists {
		coll = newCollection()
		s.collections[name] = coll
	}
	return coll
}

// CollectionNames returns the names of all collections.
func (s *Store) CollectionNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	return names
}

// Count returns the number of documents in a collection.
func (s *Store) Count(collName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, exists := s.collections[collName]
	if !exists {
		return 0
	}
	return len(coll.order)
}
