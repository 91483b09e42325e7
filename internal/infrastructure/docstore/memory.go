package docstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store entirely in memory. It exists for tests and
// local development without a MongoDB instance.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

// Collection returns the named collection, creating it on first use
func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[name]
	if !ok {
		coll = &memoryCollection{docs: make(map[string]Document)}
		s.collections[name] = coll
	}
	return coll
}

var _ Store = (*MemoryStore)(nil)

type memoryCollection struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func (c *memoryCollection) Find(_ context.Context, filter Filter) ([]Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Document, 0)
	for id, doc := range c.docs {
		if matches(doc, filter) {
			result = append(result, withID(doc, id))
		}
	}
	return result, nil
}

func (c *memoryCollection) Get(_ context.Context, id string) (Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		return nil, ErrNoDocument
	}
	return withID(doc, id), nil
}

func (c *memoryCollection) Insert(_ context.Context, doc Document) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.New().String()
	stored := make(Document, len(doc))
	for k, v := range doc {
		if k == "id" {
			continue
		}
		stored[k] = v
	}
	c.docs[id] = stored
	return id, nil
}

func (c *memoryCollection) Merge(_ context.Context, id string, fields Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[id]
	if !ok {
		return ErrNoDocument
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		doc[k] = v
	}
	return nil
}

func (c *memoryCollection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return ErrNoDocument
	}
	delete(c.docs, id)
	return nil
}

var _ Collection = (*memoryCollection)(nil)

// withID returns a shallow copy of doc carrying its ID, so callers cannot
// mutate stored documents through returned maps.
func withID(doc Document, id string) Document {
	copied := make(Document, len(doc)+1)
	for k, v := range doc {
		copied[k] = v
	}
	copied["id"] = id
	return copied
}

func matches(doc Document, filter Filter) bool {
	for _, cond := range filter.conds {
		value, ok := doc[cond.field]
		if !ok {
			return false
		}
		switch cond.op {
		case opEq:
			if value != cond.value {
				return false
			}
		case opContains:
			if !sliceContains(value, cond.value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// sliceContains mirrors MongoDB array-membership matching for the slice
// types that survive a JSON decode or direct test construction.
func sliceContains(value, want any) bool {
	switch s := value.(type) {
	case []any:
		for _, item := range s {
			if item == want {
				return true
			}
		}
	case []string:
		for _, item := range s {
			if item == want {
				return true
			}
		}
	default:
		// Scalar fields match like equality, as in MongoDB
		return value == want
	}
	return false
}
