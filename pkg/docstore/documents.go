package docstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jcallister/backdesk/pkg/domain"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// Insert adds a document to a collection, assigning an ID and creation
// timestamp. The collection is created on first insert. The stored copy is
// returned.
func (s *Store) Insert(collName string, doc domain.Record) (domain.Record, error) {
	if collName == "" {
		return nil, fmt.Errorf("collection name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.getOrCreate(collName)

	stored := doc.Clone()
	id := uuid.New().String()
	now := time.Now().UTC()
	stored["id"] = id
	stored["created_date"] = now
	stored["last_updated"] = now

	coll.docs[id] = stored
	coll.order = append(coll.order, id)

	return stored.Clone(), nil
}

// GetByID retrieves one document by its ID.
func (s *Store) GetByID(collName, docID string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, exists := s.collections[collName]
	if !exists {
		return nil, fmt.Errorf("document with id %s not found in collection %s: %w", docID, collName, ErrNotFound)
	}
	doc, exists := coll.docs[docID]
	if !exists {
		return nil, fmt.Errorf("document with id %s not found in collection %s: %w", docID, collName, ErrNotFound)
	}
	return doc.Clone(), nil
}

// UpdateByID applies a partial update to one document and bumps its
// last_updated stamp. The ID and creation timestamp cannot be overwritten.
func (s *Store) UpdateByID(collName, docID string, updates domain.Record) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, exists := s.collections[collName]
	if !exists {
		return nil, fmt.Errorf("document with id %s not found in collection %s: %w", docID, collName, ErrNotFound)
	}
	doc, exists := coll.docs[docID]
	if !exists {
		return nil, fmt.Errorf("document with id %s not found in collection %s: %w", docID, collName, ErrNotFound)
	}

	for key, value := range updates {
		if key == "id" || key == "created_date" {
			continue
		}
		doc[key] = value
	}
	doc["last_updated"] = time.Now().UTC()

	return doc.Clone(), nil
}

// DeleteByID removes one document.
func (s *Store) DeleteByID(collName, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, exists := s.collections[collName]
	if !exists {
		return fmt.Errorf("document with id %s not found in collection %s: %w", docID, collName, ErrNotFound)
	}
	if _, exists := coll.docs[docID]; !exists {
		return fmt.Errorf("document with id %s not found in collection %s: %w", docID, collName, ErrNotFound)
	}

	delete(coll.docs, docID)
	for i, id := range coll.order {
		if id == docID {
			coll.order = append(coll.order[:i], coll.order[i+1:]...)
			break
		}
	}
	return nil
}

// FetchAll returns a snapshot of every document in insertion order. An
// unknown collection yields an empty set, not an error.
func (s *Store) FetchAll(collName string) []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, exists := s.collections[collName]
	if !exists {
		return []domain.Record{}
	}

	out := make([]domain.Record, 0, len(coll.order))
	for _, id := range coll.order {
		out = append(out, coll.docs[id].Clone())
	}
	return out
}

// FieldExists reports whether any document in the collection carries the
// given value in the named field, optionally excluding one document ID.
// Used for uniqueness checks before create/update.
func (s *Store) FieldExists(collName, field string, value interface{}, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, exists := s.collections[collName]
	if !exists {
		return false
	}
	for id, doc := range coll.docs {
		if id == excludeID {
			continue
		}
		if doc[field] == value {
			return true
		}
	}
	return false
}
