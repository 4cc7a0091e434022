package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcvives/site-content/pkg/sitecontent"
	"github.com/marcvives/site-content/pkg/sitecontent/repo/jsonfile"
)

func setupSiteHandlerTest(t *testing.T) *SiteHandler {
	t.Helper()

	repo, err := jsonfile.New(jsonfile.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)

	service, err := sitecontent.New(
		sitecontent.WithRepository(repo),
		sitecontent.WithIDGenerator(jsonfile.NewIDGenerator()),
	)
	require.NoError(t, err)

	return NewSiteHandler(service)
}

func TestSiteHandler_Pages(t *testing.T) {
	router := setupSiteHandlerTest(t).Routes()

	w := doJSON(t, router, http.MethodPost, "/pages", CreatePagePayload{
		Slug:  "about",
		Title: sitecontent.LocalizedText{"en": "About Us", "es": "Sobre Nosotros"},
		Content: map[string]interface{}{
			"intro": map[string]interface{}{"en": "Welcome", "es": "Bienvenidos"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created sitecontent.PageView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "About Us", created.Title)

	t.Run("get by slug in locale", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/pages/slug/about?locale=es", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var page sitecontent.PageView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, "Sobre Nosotros", page.Title)
		assert.Equal(t, "Bienvenidos", page.Content["intro"])
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/pages", CreatePagePayload{
			Slug:  "about",
			Title: sitecontent.LocalizedText{"en": "Another"},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/pages", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var pages []sitecontent.PageView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pages))
		assert.Len(t, pages, 1)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/pages/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, router, http.MethodGet, "/pages/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSiteHandler_Settings(t *testing.T) {
	router := setupSiteHandlerTest(t).Routes()

	t.Run("missing settings report 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/settings", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	phone := "+34 600 000 000"
	w := doJSON(t, router, http.MethodPut, "/settings", UpdateSettingsPayload{
		Name:  sitecontent.LocalizedText{"en": "Casa Mar", "es": "Casa Mar"},
		Phone: &phone,
	})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("get after first write", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/settings", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var settings sitecontent.SettingsView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
		assert.Equal(t, "Casa Mar", settings.Name)
		assert.Equal(t, phone, settings.Phone)
	})

	t.Run("short opening hours rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/settings", UpdateSettingsPayload{
			OpeningHours: []sitecontent.OpeningHoursEntry{{Day: "monday", Closed: true}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSiteHandler_Translations(t *testing.T) {
	router := setupSiteHandlerTest(t).Routes()

	w := doJSON(t, router, http.MethodPut, "/translations/es", map[string]string{
		"nav.menu":    "Carta",
		"nav.contact": "Contacto",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	t.Run("get locale bundle", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/translations/es", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var values map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &values))
		assert.Equal(t, "Carta", values["nav.menu"])
	})

	t.Run("delete one key", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/translations/es/nav.contact", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, router, http.MethodDelete, "/translations/es/nav.contact", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSiteHandler_Gallery(t *testing.T) {
	router := setupSiteHandlerTest(t).Routes()

	w := doJSON(t, router, http.MethodPost, "/gallery", CreateGalleryImagePayload{
		Image:    sitecontent.Image{URL: "/img/terrace.jpg", Width: 1200, Height: 800},
		Caption:  sitecontent.LocalizedText{"en": "The terrace"},
		Position: 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created sitecontent.GalleryImageView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	t.Run("missing url rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/gallery", CreateGalleryImagePayload{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/gallery", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var images []sitecontent.GalleryImageView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &images))
		require.Len(t, images, 1)
		assert.Equal(t, "The terrace", images[0].Caption)
	})

	t.Run("update caption merges locales", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/gallery/"+created.ID, UpdateGalleryImagePayload{
			Caption: sitecontent.LocalizedText{"es": "La terraza"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		var updated sitecontent.GalleryImageView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "The terrace", updated.Caption, "envelope stays in the default locale")
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/gallery/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
