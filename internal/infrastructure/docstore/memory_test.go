package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryInsertAndGet(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryStore().Collection("products")

	id, err := coll.Insert(ctx, Document{"name": "Espresso", "price": 2.5})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := coll.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc["id"])
	assert.Equal(t, "Espresso", doc["name"])
	assert.Equal(t, 2.5, doc["price"])
}

func TestMemoryGetMissing(t *testing.T) {
	coll := NewMemoryStore().Collection("products")

	_, err := coll.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestMemoryInsertStripsClientProvidedID(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryStore().Collection("products")

	id, err := coll.Insert(ctx, Document{"id": "client-chosen", "name": "Espresso"})
	require.NoError(t, err)
	assert.NotEqual(t, "client-chosen", id)

	doc, err := coll.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc["id"])
}

func TestMemoryFindWithFilter(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryStore().Collection("products")

	_, err := coll.Insert(ctx, Document{"name": "Espresso", "userId": "u1", "outletId": "o1"})
	require.NoError(t, err)
	_, err = coll.Insert(ctx, Document{"name": "Latte", "userId": "u1", "outletId": "o2"})
	require.NoError(t, err)
	_, err = coll.Insert(ctx, Document{"name": "Tea", "userId": "u2", "outletId": "o1"})
	require.NoError(t, err)

	all, err := coll.Find(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := coll.Find(ctx, Eq("userId", "u1"))
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	scoped, err := coll.Find(ctx, And(Eq("userId", "u1"), Eq("outletId", "o1")))
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Espresso", scoped[0]["name"])
}

func TestMemoryFindContains(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryStore().Collection("categories")

	_, err := coll.Insert(ctx, Document{"name": "Drinks", "outletIds": []string{"o1", "o2"}})
	require.NoError(t, err)
	_, err = coll.Insert(ctx, Document{"name": "Food", "outletIds": []any{"o3"}})
	require.NoError(t, err)

	docs, err := coll.Find(ctx, Contains("outletIds", "o2"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Drinks", docs[0]["name"])

	// []any elements, as produced by a JSON decode, match too
	docs, err = coll.Find(ctx, Contains("outletIds", "o3"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Food", docs[0]["name"])

	docs, err = coll.Find(ctx, Contains("outletIds", "o9"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryFindMissingFieldNeverMatches(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryStore().Collection("misc")

	_, err := coll.Insert(ctx, Document{"name": "no-owner"})
	require.NoError(t, err)

	docs, err := coll.Find(ctx, Eq("userId", "u1"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryMerge(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryStore().Collection("products")

	id, err := coll.Insert(ctx, Document{"name": "Espresso", "price": 2.5, "sku": "ESP-1"})
	require.NoError(t, err)

	err = coll.Merge(ctx, id, Document{"price": 3.0, "id": "ignored"})
	require.NoError(t, err)

	doc, err := coll.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3.0, doc["price"])
	assert.Equal(t, "Espresso", doc["name"], "unmentioned fields survive a merge")
	assert.Equal(t, "ESP-1", doc["sku"])
	assert.Equal(t, id, doc["id"])
}

func TestMemoryMergeMissing(t *testing.T) {
	coll := NewMemoryStore().Collection("products")

	err := coll.Merge(context.Background(), "no-such-id", Document{"price": 3.0})
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryStore().Collection("products")

	id, err := coll.Insert(ctx, Document{"name": "Espresso"})
	require.NoError(t, err)

	require.NoError(t, coll.Delete(ctx, id))

	_, err = coll.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNoDocument)

	// Second delete reports the document gone
	assert.ErrorIs(t, coll.Delete(ctx, id), ErrNoDocument)
}

func TestMemoryReturnedDocumentsAreCopies(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryStore().Collection("products")

	id, err := coll.Insert(ctx, Document{"name": "Espresso"})
	require.NoError(t, err)

	doc, err := coll.Get(ctx, id)
	require.NoError(t, err)
	doc["name"] = "mutated"

	fresh, err := coll.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Espresso", fresh["name"])
}

func TestCollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Collection("products").Insert(ctx, Document{"name": "Espresso"})
	require.NoError(t, err)

	_, err = store.Collection("categories").Get(ctx, id)
	assert.ErrorIs(t, err, ErrNoDocument)

	// Same name returns the same collection
	doc, err := store.Collection("products").Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Espresso", doc["name"])
}
