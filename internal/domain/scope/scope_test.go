package scope

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/docstore"
)

func TestOwnerFilterConfinesQueries(t *testing.T) {
	ctx := context.Background()
	coll := docstore.NewMemoryStore().Collection("outlets")

	_, err := coll.Insert(ctx, docstore.Document{"name": "Mine", OwnerField: "u1"})
	require.NoError(t, err)
	_, err = coll.Insert(ctx, docstore.Document{"name": "Theirs", OwnerField: "u2"})
	require.NoError(t, err)

	p := Principal{UserID: "u1"}
	docs, err := coll.Find(ctx, p.OwnerFilter())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Mine", docs[0]["name"])
}

func TestOutletFilter(t *testing.T) {
	ctx := context.Background()
	coll := docstore.NewMemoryStore().Collection("products")

	_, err := coll.Insert(ctx, docstore.Document{"name": "Espresso", OwnerField: "u1", OutletField: "o1"})
	require.NoError(t, err)
	_, err = coll.Insert(ctx, docstore.Document{"name": "Latte", OwnerField: "u1", OutletField: "o2"})
	require.NoError(t, err)
	// Same outlet, different owner: must never leak
	_, err = coll.Insert(ctx, docstore.Document{"name": "Tea", OwnerField: "u2", OutletField: "o1"})
	require.NoError(t, err)

	p := Principal{UserID: "u1"}
	docs, err := coll.Find(ctx, p.OutletFilter("o1"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Espresso", docs[0]["name"])
}

func TestOutletMembershipFilter(t *testing.T) {
	ctx := context.Background()
	coll := docstore.NewMemoryStore().Collection("categories")

	_, err := coll.Insert(ctx, docstore.Document{"name": "Drinks", OwnerField: "u1", OutletsField: []string{"o1", "o2"}})
	require.NoError(t, err)
	_, err = coll.Insert(ctx, docstore.Document{"name": "Food", OwnerField: "u1", OutletsField: []string{"o3"}})
	require.NoError(t, err)
	_, err = coll.Insert(ctx, docstore.Document{"name": "Other", OwnerField: "u2", OutletsField: []string{"o1"}})
	require.NoError(t, err)

	p := Principal{UserID: "u1"}
	docs, err := coll.Find(ctx, p.OutletMembershipFilter("o1"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Drinks", docs[0]["name"])
}

func TestOwns(t *testing.T) {
	p := Principal{UserID: "u1"}

	assert.True(t, p.Owns(docstore.Document{OwnerField: "u1"}))
	assert.False(t, p.Owns(docstore.Document{OwnerField: "u2"}))
	assert.False(t, p.Owns(docstore.Document{}))
	assert.False(t, p.Owns(docstore.Document{OwnerField: 42}))

	// An empty principal owns nothing, even unowned documents
	assert.False(t, Principal{}.Owns(docstore.Document{OwnerField: ""}))
}

func TestAuthorizeHidesForeignDocuments(t *testing.T) {
	p := Principal{UserID: "u1"}

	assert.NoError(t, p.Authorize(docstore.Document{OwnerField: "u1"}))

	err := p.Authorize(docstore.Document{OwnerField: "u2"})
	assert.ErrorIs(t, err, shared.ErrNotFound, "foreign documents look like missing ones")
}

func TestStampOverridesClientOwner(t *testing.T) {
	p := Principal{UserID: "u1"}

	doc := p.Stamp(docstore.Document{"name": "Espresso", OwnerField: "u2"})
	assert.Equal(t, "u1", doc[OwnerField])
	assert.Equal(t, "Espresso", doc["name"])

	assert.Equal(t, "u1", p.Stamp(nil)[OwnerField])
}
