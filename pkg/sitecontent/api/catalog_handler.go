// Package api exposes the sitecontent Service over HTTP. Handlers only
// translate between JSON payloads and Service calls; authentication sits in
// front of this router and is not handled here.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/marcvives/site-content/pkg/sitecontent"
)

// CatalogHandler handles HTTP requests for one category/item domain.
type CatalogHandler struct {
	service sitecontent.Service
	domain  sitecontent.Domain
}

// NewCatalogHandler creates a handler for the given domain (menu or
// beverages).
func NewCatalogHandler(service sitecontent.Service, domain sitecontent.Domain) *CatalogHandler {
	return &CatalogHandler{service: service, domain: domain}
}

// Routes returns the routes for the catalog domain.
func (h *CatalogHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.CreateCategory)
	r.Get("/categories/{id}", h.GetCategory)
	r.Put("/categories/{id}", h.UpdateCategory)
	r.Delete("/categories/{id}", h.DeleteCategory)

	r.Get("/items", h.ListItems)
	r.Post("/items", h.CreateItem)
	r.Get("/items/{id}", h.GetItem)
	r.Put("/items/{id}", h.UpdateItem)
	r.Delete("/items/{id}", h.DeleteItem)

	return r
}

// localeParam returns the requested locale, defaulting to English.
func localeParam(r *http.Request) string {
	if locale := r.URL.Query().Get("locale"); locale != "" {
		return locale
	}
	return sitecontent.DefaultLocale
}

// renderError maps service errors onto HTTP statuses.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sitecontent.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, sitecontent.ErrSlugConflict), errors.Is(err, sitecontent.ErrCategoryCycle):
		status = http.StatusConflict
	case errors.Is(err, sitecontent.ErrValidation):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}

// CreateCategoryPayload is the request body for creating a category.
type CreateCategoryPayload struct {
	Slug        string                    `json:"slug"`
	Name        sitecontent.LocalizedText `json:"name"`
	Description sitecontent.LocalizedText `json:"description,omitempty"`
	ParentID    string                    `json:"parent_id,omitempty"`
}

// UpdateCategoryPayload is the request body for a partial category update.
type UpdateCategoryPayload struct {
	Slug        *string                   `json:"slug,omitempty"`
	Name        sitecontent.LocalizedText `json:"name,omitempty"`
	Description sitecontent.LocalizedText `json:"description,omitempty"`
	ParentID    *string                   `json:"parent_id,omitempty"`
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context(), h.domain, localeParam(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, categories)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if r.URL.Query().Get("raw") == "true" {
		category, err := h.service.GetCategoryRecord(r.Context(), h.domain, id)
		if err != nil {
			renderError(w, r, err)
			return
		}
		render.JSON(w, r, category)
		return
	}
	category, err := h.service.GetCategory(r.Context(), h.domain, id, localeParam(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, category)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload CreateCategoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	category, err := h.service.CreateCategory(r.Context(), h.domain, sitecontent.CreateCategoryRequest{
		Slug:        payload.Slug,
		Name:        payload.Name,
		Description: payload.Description,
		ParentID:    payload.ParentID,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, category)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var payload UpdateCategoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	category, err := h.service.UpdateCategory(r.Context(), h.domain, chi.URLParam(r, "id"), sitecontent.UpdateCategoryRequest{
		Slug:        payload.Slug,
		Name:        payload.Name,
		Description: payload.Description,
		ParentID:    payload.ParentID,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, category)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), h.domain, chi.URLParam(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateItemPayload is the request body for creating an item.
type CreateItemPayload struct {
	Name        sitecontent.LocalizedText `json:"name"`
	Description sitecontent.LocalizedText `json:"description,omitempty"`
	Price       string                    `json:"price"`
	CategoryID  string                    `json:"category_id,omitempty"`
	Image       *sitecontent.Image        `json:"image,omitempty"`
}

// UpdateItemPayload is the request body for a partial item update.
type UpdateItemPayload struct {
	Name        sitecontent.LocalizedText `json:"name,omitempty"`
	Description sitecontent.LocalizedText `json:"description,omitempty"`
	Price       *string                   `json:"price,omitempty"`
	CategoryID  *string                   `json:"category_id,omitempty"`
	Image       *sitecontent.Image        `json:"image,omitempty"`
}

func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context(), h.domain, localeParam(r), r.URL.Query().Get("category_id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if r.URL.Query().Get("raw") == "true" {
		item, err := h.service.GetItemRecord(r.Context(), h.domain, id)
		if err != nil {
			renderError(w, r, err)
			return
		}
		render.JSON(w, r, item)
		return
	}
	item, err := h.service.GetItem(r.Context(), h.domain, id, localeParam(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}

func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var payload CreateItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, err := h.service.CreateItem(r.Context(), h.domain, sitecontent.CreateItemRequest{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		CategoryID:  payload.CategoryID,
		Image:       payload.Image,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

func (h *CatalogHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var payload UpdateItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, err := h.service.UpdateItem(r.Context(), h.domain, chi.URLParam(r, "id"), sitecontent.UpdateItemRequest{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		CategoryID:  payload.CategoryID,
		Image:       payload.Image,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}

func (h *CatalogHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), h.domain, chi.URLParam(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
