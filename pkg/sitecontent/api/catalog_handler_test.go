package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcvives/site-content/pkg/sitecontent"
	"github.com/marcvives/site-content/pkg/sitecontent/repo/jsonfile"
)

// setupCatalogHandlerTest creates a CatalogHandler backed by a flat-file
// repository in a temporary directory.
func setupCatalogHandlerTest(t *testing.T, domain sitecontent.Domain) (*CatalogHandler, sitecontent.Service) {
	t.Helper()

	repo, err := jsonfile.New(jsonfile.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)

	service, err := sitecontent.New(
		sitecontent.WithRepository(repo),
		sitecontent.WithIDGenerator(jsonfile.NewIDGenerator()),
	)
	require.NoError(t, err)

	return NewCatalogHandler(service, domain), service
}

func doJSON(t *testing.T, router http.Handler, method, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCatalogHandler_CreateCategory_Success(t *testing.T) {
	handler, _ := setupCatalogHandlerTest(t, sitecontent.DomainMenu)
	router := handler.Routes()

	w := doJSON(t, router, http.MethodPost, "/categories", CreateCategoryPayload{
		Name: sitecontent.LocalizedText{"en": "Starters", "es": "Entrantes"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp sitecontent.CategoryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "starters", resp.Slug)
	assert.Equal(t, "Starters", resp.Name)
}

func TestCatalogHandler_CreateCategory_Validation(t *testing.T) {
	handler, _ := setupCatalogHandlerTest(t, sitecontent.DomainMenu)
	router := handler.Routes()

	w := doJSON(t, router, http.MethodPost, "/categories", CreateCategoryPayload{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_CreateCategory_SlugConflict(t *testing.T) {
	handler, _ := setupCatalogHandlerTest(t, sitecontent.DomainMenu)
	router := handler.Routes()

	payload := CreateCategoryPayload{Name: sitecontent.LocalizedText{"en": "Starters"}}
	w := doJSON(t, router, http.MethodPost, "/categories", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/categories", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCatalogHandler_GetCategory_Locale(t *testing.T) {
	handler, _ := setupCatalogHandlerTest(t, sitecontent.DomainMenu)
	router := handler.Routes()

	w := doJSON(t, router, http.MethodPost, "/categories", CreateCategoryPayload{
		Name: sitecontent.LocalizedText{"en": "Starters", "es": "Entrantes"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created sitecontent.CategoryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, http.MethodGet, "/categories/"+created.ID+"?locale=es", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var got sitecontent.CategoryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Entrantes", got.Name)
}

func TestCatalogHandler_GetCategory_Raw(t *testing.T) {
	handler, _ := setupCatalogHandlerTest(t, sitecontent.DomainMenu)
	router := handler.Routes()

	w := doJSON(t, router, http.MethodPost, "/categories", CreateCategoryPayload{
		Name: sitecontent.LocalizedText{"en": "Starters", "es": "Entrantes"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created sitecontent.CategoryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, http.MethodGet, "/categories/"+created.ID+"?raw=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var record sitecontent.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "Entrantes", record.Name["es"])
	assert.Equal(t, "Starters", record.Name["en"])
}

func TestCatalogHandler_GetCategory_NotFound(t *testing.T) {
	handler, _ := setupCatalogHandlerTest(t, sitecontent.DomainMenu)
	router := handler.Routes()

	w := doJSON(t, router, http.MethodGet, "/categories/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogHandler_DeleteCategory(t *testing.T) {
	handler, _ := setupCatalogHandlerTest(t, sitecontent.DomainMenu)
	router := handler.Routes()

	w := doJSON(t, router, http.MethodPost, "/categories", CreateCategoryPayload{
		Name: sitecontent.LocalizedText{"en": "Starters"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created sitecontent.CategoryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, http.MethodDelete, "/categories/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/categories/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogHandler_Items(t *testing.T) {
	handler, _ := setupCatalogHandlerTest(t, sitecontent.DomainBeverages)
	router := handler.Routes()

	w := doJSON(t, router, http.MethodPost, "/categories", CreateCategoryPayload{
		Name: sitecontent.LocalizedText{"en": "Wines"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var category sitecontent.CategoryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))

	w = doJSON(t, router, http.MethodPost, "/items", CreateItemPayload{
		Name:       sitecontent.LocalizedText{"es": "Rioja"},
		Price:      "4.50",
		CategoryID: category.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item sitecontent.ItemView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	t.Run("list filtered by category", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/items?category_id="+category.ID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var items []sitecontent.ItemView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, item.ID, items[0].ID)
	})

	t.Run("partial price update", func(t *testing.T) {
		price := "5.00"
		w := doJSON(t, router, http.MethodPut, "/items/"+item.ID, UpdateItemPayload{Price: &price})
		assert.Equal(t, http.StatusOK, w.Code)
		var updated sitecontent.ItemView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "5.00", updated.Price)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/items/"+item.ID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, router, http.MethodGet, "/items/"+item.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
