// Package docstore provides a thin schemaless document store abstraction.
// Documents are free-form maps identified by a store-assigned string ID; the
// production implementation is backed by MongoDB, with an in-memory
// implementation for tests.
package docstore

import (
	"context"
	"errors"
)

// ErrNoDocument is returned when a document with the given ID does not exist
var ErrNoDocument = errors.New("document not found")

// Document is a schemaless record. The "id" key holds the store-assigned
// identifier on documents read back from a collection; it is never persisted
// as a regular field.
type Document = map[string]any

// Filter selects documents by field conditions. All conditions must match
// (logical AND). The zero Filter matches every document.
type Filter struct {
	conds []condition
}

type conditionOp int

const (
	opEq conditionOp = iota
	opContains
)

type condition struct {
	field string
	op    conditionOp
	value any
}

// Eq returns a filter matching documents whose field equals value
func Eq(field string, value any) Filter {
	return Filter{conds: []condition{{field: field, op: opEq, value: value}}}
}

// Contains returns a filter matching documents whose array field contains
// value.
func Contains(field string, value any) Filter {
	return Filter{conds: []condition{{field: field, op: opContains, value: value}}}
}

// And combines filters; a document must satisfy every condition
func And(filters ...Filter) Filter {
	var combined Filter
	for _, f := range filters {
		combined.conds = append(combined.conds, f.conds...)
	}
	return combined
}

// IsEmpty reports whether the filter has no conditions
func (f Filter) IsEmpty() bool {
	return len(f.conds) == 0
}

// Collection provides CRUD access to one named set of documents
type Collection interface {
	// Find returns all documents matching the filter, in unspecified order.
	// An empty filter returns the whole collection.
	Find(ctx context.Context, filter Filter) ([]Document, error)

	// Get returns the document with the given ID, or ErrNoDocument
	Get(ctx context.Context, id string) (Document, error)

	// Insert stores a new document and returns its assigned ID
	Insert(ctx context.Context, doc Document) (string, error)

	// Merge applies the given fields on top of an existing document,
	// leaving unmentioned fields intact. Returns ErrNoDocument if the ID
	// does not exist.
	Merge(ctx context.Context, id string, fields Document) error

	// Delete removes the document with the given ID, or returns
	// ErrNoDocument.
	Delete(ctx context.Context, id string) error
}

// Store hands out collections by name
type Store interface {
	Collection(name string) Collection
}
