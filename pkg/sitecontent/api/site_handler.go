package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/marcvives/site-content/pkg/sitecontent"
)

// SiteHandler handles HTTP requests for pages, settings, translations, and
// the gallery.
type SiteHandler struct {
	service sitecontent.Service
}

// NewSiteHandler creates a new site handler.
func NewSiteHandler(service sitecontent.Service) *SiteHandler {
	return &SiteHandler{service: service}
}

// Routes returns the routes for site-level content.
func (h *SiteHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/pages", h.ListPages)
	r.Post("/pages", h.CreatePage)
	r.Get("/pages/{id}", h.GetPage)
	r.Get("/pages/slug/{slug}", h.GetPageBySlug)
	r.Put("/pages/{id}", h.UpdatePage)
	r.Delete("/pages/{id}", h.DeletePage)

	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)

	r.Get("/translations/{locale}", h.GetTranslations)
	r.Put("/translations/{locale}", h.UpsertTranslations)
	r.Delete("/translations/{locale}/{key}", h.DeleteTranslation)

	r.Get("/gallery", h.ListGalleryImages)
	r.Post("/gallery", h.CreateGalleryImage)
	r.Put("/gallery/{id}", h.UpdateGalleryImage)
	r.Delete("/gallery/{id}", h.DeleteGalleryImage)

	return r
}

// Page handlers

// CreatePagePayload is the request body for creating a page.
type CreatePagePayload struct {
	Slug    string                    `json:"slug"`
	Title   sitecontent.LocalizedText `json:"title"`
	Content map[string]interface{}    `json:"content,omitempty"`
	SEO     *sitecontent.PageSEO      `json:"seo,omitempty"`
}

// UpdatePagePayload is the request body for a partial page update.
type UpdatePagePayload struct {
	Slug    *string                   `json:"slug,omitempty"`
	Title   sitecontent.LocalizedText `json:"title,omitempty"`
	Content map[string]interface{}    `json:"content,omitempty"`
	SEO     *sitecontent.PageSEO      `json:"seo,omitempty"`
}

func (h *SiteHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.service.ListPages(r.Context(), localeParam(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, pages)
}

func (h *SiteHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if r.URL.Query().Get("raw") == "true" {
		page, err := h.service.GetPageRecord(r.Context(), id)
		if err != nil {
			renderError(w, r, err)
			return
		}
		render.JSON(w, r, page)
		return
	}
	page, err := h.service.GetPage(r.Context(), id, localeParam(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

func (h *SiteHandler) GetPageBySlug(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetPageBySlug(r.Context(), chi.URLParam(r, "slug"), localeParam(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

func (h *SiteHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var payload CreatePagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, err := h.service.CreatePage(r.Context(), sitecontent.CreatePageRequest{
		Slug:    payload.Slug,
		Title:   payload.Title,
		Content: payload.Content,
		SEO:     payload.SEO,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, page)
}

func (h *SiteHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var payload UpdatePagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, err := h.service.UpdatePage(r.Context(), chi.URLParam(r, "id"), sitecontent.UpdatePageRequest{
		Slug:    payload.Slug,
		Title:   payload.Title,
		Content: payload.Content,
		SEO:     payload.SEO,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

func (h *SiteHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePage(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Settings handlers

// UpdateSettingsPayload is the request body for a partial settings update.
type UpdateSettingsPayload struct {
	Name         sitecontent.LocalizedText       `json:"name,omitempty"`
	Description  sitecontent.LocalizedText       `json:"description,omitempty"`
	Address      sitecontent.LocalizedText       `json:"address,omitempty"`
	Phone        *string                         `json:"phone,omitempty"`
	Email        *string                         `json:"email,omitempty"`
	OpeningHours []sitecontent.OpeningHoursEntry `json:"opening_hours,omitempty"`
	SocialMedia  []sitecontent.SocialLink        `json:"social_media,omitempty"`
}

func (h *SiteHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("raw") == "true" {
		settings, err := h.service.GetSettingsRecord(r.Context())
		if err != nil {
			renderError(w, r, err)
			return
		}
		render.JSON(w, r, settings)
		return
	}
	settings, err := h.service.GetSettings(r.Context(), localeParam(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, settings)
}

func (h *SiteHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload UpdateSettingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	settings, err := h.service.UpdateSettings(r.Context(), sitecontent.UpdateSettingsRequest{
		Name:         payload.Name,
		Description:  payload.Description,
		Address:      payload.Address,
		Phone:        payload.Phone,
		Email:        payload.Email,
		OpeningHours: payload.OpeningHours,
		SocialMedia:  payload.SocialMedia,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, settings)
}

// Translation handlers

func (h *SiteHandler) GetTranslations(w http.ResponseWriter, r *http.Request) {
	values, err := h.service.GetTranslations(r.Context(), chi.URLParam(r, "locale"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, values)
}

func (h *SiteHandler) UpsertTranslations(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.service.UpsertTranslations(r.Context(), chi.URLParam(r, "locale"), values); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SiteHandler) DeleteTranslation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTranslation(r.Context(), chi.URLParam(r, "locale"), chi.URLParam(r, "key")); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Gallery handlers

// CreateGalleryImagePayload is the request body for adding a gallery image.
type CreateGalleryImagePayload struct {
	Image    sitecontent.Image         `json:"image"`
	Caption  sitecontent.LocalizedText `json:"caption,omitempty"`
	Position int                       `json:"position"`
}

// UpdateGalleryImagePayload is the request body for a partial gallery update.
type UpdateGalleryImagePayload struct {
	Image    *sitecontent.Image        `json:"image,omitempty"`
	Caption  sitecontent.LocalizedText `json:"caption,omitempty"`
	Position *int                      `json:"position,omitempty"`
}

func (h *SiteHandler) ListGalleryImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListGalleryImages(r.Context(), localeParam(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, images)
}

func (h *SiteHandler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var payload CreateGalleryImagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	image, err := h.service.CreateGalleryImage(r.Context(), sitecontent.CreateGalleryImageRequest{
		Image:    payload.Image,
		Caption:  payload.Caption,
		Position: payload.Position,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, image)
}

func (h *SiteHandler) UpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var payload UpdateGalleryImagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	image, err := h.service.UpdateGalleryImage(r.Context(), chi.URLParam(r, "id"), sitecontent.UpdateGalleryImageRequest{
		Image:    payload.Image,
		Caption:  payload.Caption,
		Position: payload.Position,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, image)
}

func (h *SiteHandler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGalleryImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
