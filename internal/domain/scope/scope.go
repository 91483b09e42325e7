// Package scope confines every document-store query and mutation to the data
// owned by the authenticated principal. A principal's user ID is the tenant
// boundary: each owned document carries it under the owner field, and every
// list query is filtered by it before it reaches the store.
package scope

import (
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/docstore"
)

// Field names documents use for scoping
const (
	// OwnerField carries the owning user's ID on every scoped document
	OwnerField = "userId"
	// OutletField carries a single outlet ID (products, customers)
	OutletField = "outletId"
	// OutletsField carries a list of outlet IDs (categories)
	OutletsField = "outletIds"
)

// Principal is the authenticated identity a request acts as
type Principal struct {
	UserID string
	Email  string
}

// OwnerFilter confines a query to documents owned by the principal
func (p Principal) OwnerFilter() docstore.Filter {
	return docstore.Eq(OwnerField, p.UserID)
}

// OutletFilter confines a query to the principal's documents within one
// outlet, matched on the scalar outlet field.
func (p Principal) OutletFilter(outletID string) docstore.Filter {
	return docstore.And(p.OwnerFilter(), docstore.Eq(OutletField, outletID))
}

// OutletMembershipFilter confines a query to the principal's documents whose
// outlet list contains the given outlet. Used for documents shared across
// several outlets.
func (p Principal) OutletMembershipFilter(outletID string) docstore.Filter {
	return docstore.And(p.OwnerFilter(), docstore.Contains(OutletsField, outletID))
}

// Owns reports whether the document belongs to the principal
func (p Principal) Owns(doc docstore.Document) bool {
	owner, ok := doc[OwnerField].(string)
	return ok && owner != "" && owner == p.UserID
}

// Authorize checks ownership of a fetched document. Documents owned by
// someone else yield ErrNotFound rather than ErrForbidden so an outsider
// cannot distinguish "exists but not yours" from "does not exist".
func (p Principal) Authorize(doc docstore.Document) error {
	if !p.Owns(doc) {
		return shared.ErrNotFound
	}
	return nil
}

// Stamp sets the owner field on a document about to be stored, overriding
// any value the client supplied.
func (p Principal) Stamp(doc docstore.Document) docstore.Document {
	if doc == nil {
		doc = docstore.Document{}
	}
	doc[OwnerField] = p.UserID
	return doc
}
