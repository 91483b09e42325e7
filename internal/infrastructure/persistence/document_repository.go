package persistence

import (
	"context"
	"errors"

	"github.com/poslite/backend/internal/domain/scope"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/docstore"
)

// Collections holding the principal-owned resources
const (
	OutletsCollection    = "outlets"
	CategoriesCollection = "categories"
	ProductsCollection   = "products"
	CustomersCollection  = "customers"
)

// ScopedDocumentRepository provides CRUD over one collection of
// principal-owned documents. Every read is ownership-checked and every write
// stamps the owner, so callers cannot reach another principal's data through
// it. Foreign and missing documents are indistinguishable to callers.
type ScopedDocumentRepository struct {
	coll docstore.Collection
}

// NewScopedDocumentRepository creates a repository over the named collection
func NewScopedDocumentRepository(store docstore.Store, collection string) *ScopedDocumentRepository {
	return &ScopedDocumentRepository{coll: store.Collection(collection)}
}

// List returns the principal's documents matching the given scope filter.
// The filter must already carry the owner condition; use the Principal
// filter constructors.
func (r *ScopedDocumentRepository) List(ctx context.Context, filter docstore.Filter) ([]docstore.Document, error) {
	docs, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, shared.ErrStoreFailure
	}
	return docs, nil
}

// Get returns one of the principal's documents by ID
func (r *ScopedDocumentRepository) Get(ctx context.Context, p scope.Principal, id string) (docstore.Document, error) {
	doc, err := r.coll.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocument) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.ErrStoreFailure
	}
	if err := p.Authorize(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Create stores a new document owned by the principal and returns it with
// its assigned ID.
func (r *ScopedDocumentRepository) Create(ctx context.Context, p scope.Principal, doc docstore.Document) (docstore.Document, error) {
	doc = p.Stamp(doc)

	id, err := r.coll.Insert(ctx, doc)
	if err != nil {
		return nil, shared.ErrStoreFailure
	}

	created, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, shared.ErrStoreFailure
	}
	return created, nil
}

// Update merges the given fields into one of the principal's documents and
// returns the updated document. The owner field cannot be changed through an
// update.
func (r *ScopedDocumentRepository) Update(ctx context.Context, p scope.Principal, id string, fields docstore.Document) (docstore.Document, error) {
	// Ownership check before touching anything
	if _, err := r.Get(ctx, p, id); err != nil {
		return nil, err
	}

	delete(fields, scope.OwnerField)

	if err := r.coll.Merge(ctx, id, fields); err != nil {
		if errors.Is(err, docstore.ErrNoDocument) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.ErrStoreFailure
	}

	updated, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, shared.ErrStoreFailure
	}
	return updated, nil
}

// Delete removes one of the principal's documents
func (r *ScopedDocumentRepository) Delete(ctx context.Context, p scope.Principal, id string) error {
	if _, err := r.Get(ctx, p, id); err != nil {
		return err
	}

	if err := r.coll.Delete(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNoDocument) {
			return shared.ErrNotFound
		}
		return shared.ErrStoreFailure
	}
	return nil
}
