package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/poslite/backend/internal/infrastructure/docstore"
	"github.com/poslite/backend/internal/interfaces/http/dto"
	"github.com/poslite/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// authAs simulates the JWT middleware for a fixed identity
func authAs(userID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID)
		c.Set(middleware.JWTEmailKey, email)
		c.Next()
	}
}

type resourceRoutes struct {
	List    gin.HandlerFunc
	Get     gin.HandlerFunc
	Create  gin.HandlerFunc
	Update  gin.HandlerFunc
	Delete  gin.HandlerFunc
}

// newResourceRouter mounts a resource handler under basePath for the
// given identity
func newResourceRouter(userID, email, basePath string, r resourceRoutes) *gin.Engine {
	engine := gin.New()
	group := engine.Group("", authAs(userID, email))
	group.GET(basePath, r.List)
	group.GET(basePath+"/:id", r.Get)
	group.POST(basePath, r.Create)
	group.PUT(basePath+"/:id", r.Update)
	group.DELETE(basePath+"/:id", r.Delete)
	return engine
}

func outletRoutes(store docstore.Store) resourceRoutes {
	h := NewOutletHandler(store)
	return resourceRoutes{h.List, h.GetByID, h.Create, h.Update, h.Delete}
}

func categoryRoutes(store docstore.Store) resourceRoutes {
	h := NewCategoryHandler(store)
	return resourceRoutes{h.List, h.GetByID, h.Create, h.Update, h.Delete}
}

func productRoutes(store docstore.Store) resourceRoutes {
	h := NewProductHandler(store)
	return resourceRoutes{h.List, h.GetByID, h.Create, h.Update, h.Delete}
}

func customerRoutes(store docstore.Store) resourceRoutes {
	h := NewCustomerHandler(store)
	return resourceRoutes{h.List, h.GetByID, h.Create, h.Update, h.Delete}
}

// newEngineNoAuth builds a router without any identity in the context
func newEngineNoAuth() *gin.Engine {
	return gin.New()
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// authedRequest builds a request carrying a bearer token
func authedRequest(t *testing.T, method, path, token string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

// authedJSONRequest builds a bearer-token request with a JSON body
func authedJSONRequest(t *testing.T, method, path, token string, body any) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

// decodeResponse unmarshals the response envelope
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// dataMap returns the response data as a map
func dataMap(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()

	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "expected object data, got %T", resp.Data)
	return m
}

// dataList returns the response data as a slice
func dataList(t *testing.T, resp dto.Response) []any {
	t.Helper()

	l, ok := resp.Data.([]any)
	require.True(t, ok, "expected array data, got %T", resp.Data)
	return l
}

func requireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	resp := decodeResponse(t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	require.Equal(t, code, resp.Error.Code)
}

// mustCreate creates a document through the handler and returns its id
func mustCreate(t *testing.T, engine *gin.Engine, path string, body any) string {
	t.Helper()

	w := doJSON(t, engine, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	doc := dataMap(t, decodeResponse(t, w))
	id, ok := doc["id"].(string)
	require.True(t, ok, "created document has no id: %v", doc)
	return id
}
