package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poslite/backend/internal/infrastructure/docstore"
	"github.com/poslite/backend/internal/interfaces/http/dto"
)

func TestCategoryHandlerListRequiresOutletID(t *testing.T) {
	store := docstore.NewMemoryStore()
	engine := newResourceRouter("user-alice", "alice@example.com", "/categories", categoryRoutes(store))

	w := doJSON(t, engine, http.MethodGet, "/categories", nil)
	requireErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Query parameter outletId is required", resp.Error.Message)
}

func TestCategoryHandlerListByOutletMembership(t *testing.T) {
	store := docstore.NewMemoryStore()
	engine := newResourceRouter("user-alice", "alice@example.com", "/categories", categoryRoutes(store))

	// Drinks spans both outlets, Food only the first
	mustCreate(t, engine, "/categories", CreateCategoryRequest{
		Name:      "Drinks",
		OutletIDs: []string{"outlet-1", "outlet-2"},
	})
	mustCreate(t, engine, "/categories", CreateCategoryRequest{
		Name:      "Food",
		OutletIDs: []string{"outlet-1"},
	})

	w := doJSON(t, engine, http.MethodGet, "/categories?outletId=outlet-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, dataList(t, decodeResponse(t, w)), 2)

	w = doJSON(t, engine, http.MethodGet, "/categories?outletId=outlet-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := dataList(t, decodeResponse(t, w))
	require.Len(t, list, 1)
	doc, ok := list[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Drinks", doc["name"])

	w = doJSON(t, engine, http.MethodGet, "/categories?outletId=outlet-3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dataList(t, decodeResponse(t, w)))
}

func TestCategoryHandlerForeignOutletYieldsNothing(t *testing.T) {
	store := docstore.NewMemoryStore()
	alice := newResourceRouter("user-alice", "alice@example.com", "/categories", categoryRoutes(store))
	bob := newResourceRouter("user-bob", "bob@example.com", "/categories", categoryRoutes(store))

	mustCreate(t, alice, "/categories", CreateCategoryRequest{
		Name:      "Drinks",
		OutletIDs: []string{"outlet-1"},
	})

	// Bob querying Alice's outlet sees an empty list, not an error
	w := doJSON(t, bob, http.MethodGet, "/categories?outletId=outlet-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dataList(t, decodeResponse(t, w)))
}

func TestCategoryHandlerCreateRequiresOutlets(t *testing.T) {
	store := docstore.NewMemoryStore()
	engine := newResourceRouter("user-alice", "alice@example.com", "/categories", categoryRoutes(store))

	w := doJSON(t, engine, http.MethodPost, "/categories", map[string]any{"name": "Drinks"})
	requireErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)

	w = doJSON(t, engine, http.MethodPost, "/categories", map[string]any{
		"name":      "Drinks",
		"outletIds": []string{},
	})
	requireErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestCategoryHandlerUpdateOutlets(t *testing.T) {
	store := docstore.NewMemoryStore()
	engine := newResourceRouter("user-alice", "alice@example.com", "/categories", categoryRoutes(store))

	id := mustCreate(t, engine, "/categories", CreateCategoryRequest{
		Name:      "Drinks",
		OutletIDs: []string{"outlet-1"},
	})

	outlets := []string{"outlet-2"}
	w := doJSON(t, engine, http.MethodPut, "/categories/"+id, UpdateCategoryRequest{OutletIDs: &outlets})
	require.Equal(t, http.StatusOK, w.Code)

	// Membership moved from outlet-1 to outlet-2
	w = doJSON(t, engine, http.MethodGet, "/categories?outletId=outlet-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dataList(t, decodeResponse(t, w)))

	w = doJSON(t, engine, http.MethodGet, "/categories?outletId=outlet-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, decodeResponse(t, w)), 1)
}

func TestCategoryHandlerDelete(t *testing.T) {
	store := docstore.NewMemoryStore()
	engine := newResourceRouter("user-alice", "alice@example.com", "/categories", categoryRoutes(store))

	id := mustCreate(t, engine, "/categories", CreateCategoryRequest{
		Name:      "Drinks",
		OutletIDs: []string{"outlet-1"},
	})

	w := doJSON(t, engine, http.MethodDelete, "/categories/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	msg := dataMap(t, decodeResponse(t, w))
	assert.Equal(t, "Category deleted successfully", msg["message"])

	w = doJSON(t, engine, http.MethodDelete, "/categories/"+id, nil)
	requireErrorCode(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
}
