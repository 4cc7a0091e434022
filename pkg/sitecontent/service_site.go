package sitecontent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

// Page operations

func (s *service) ListPages(ctx context.Context, locale string) ([]*PageView, error) {
	r, err := s.repo(DomainPages)
	if err != nil {
		return nil, err
	}
	pages, err := r.ListPages(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*PageView, 0, len(pages))
	for _, p := range pages {
		views = append(views, p.View(locale))
	}
	return views, nil
}

func (s *service) GetPage(ctx context.Context, id, locale string) (*PageView, error) {
	p, err := s.GetPageRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.View(locale), nil
}

func (s *service) GetPageBySlug(ctx context.Context, pageSlug, locale string) (*PageView, error) {
	r, err := s.repo(DomainPages)
	if err != nil {
		return nil, err
	}
	p, err := r.GetPageBySlug(ctx, pageSlug)
	if err != nil {
		return nil, err
	}
	return p.View(locale), nil
}

func (s *service) GetPageRecord(ctx context.Context, id string) (*Page, error) {
	r, err := s.repo(DomainPages)
	if err != nil {
		return nil, err
	}
	return r.GetPage(ctx, id)
}

func (s *service) CreatePage(ctx context.Context, req CreatePageRequest) (*PageView, error) {
	r, err := s.repo(DomainPages)
	if err != nil {
		return nil, err
	}

	if len(req.Title) == 0 {
		return nil, fmt.Errorf("%w: page title is required", ErrValidation)
	}

	pageSlug := req.Slug
	if pageSlug == "" {
		pageSlug = slug.Make(req.Title.Representative())
	}
	if !slug.IsSlug(pageSlug) {
		return nil, fmt.Errorf("%w: invalid slug %q", ErrValidation, pageSlug)
	}
	if err := s.checkPageSlugFree(ctx, r, pageSlug, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	page := &Page{
		ID:        s.newID(DomainPages),
		Slug:      pageSlug,
		Title:     req.Title.Clone(),
		Content:   req.Content,
		SEO:       req.SEO,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.CreatePage(ctx, page); err != nil {
		return nil, fmt.Errorf("create page %s: %w", page.ID, err)
	}

	return representativePageView(page), nil
}

func (s *service) UpdatePage(ctx context.Context, id string, req UpdatePageRequest) (*PageView, error) {
	r, err := s.repo(DomainPages)
	if err != nil {
		return nil, err
	}

	page, err := r.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != page.Slug {
		if !slug.IsSlug(*req.Slug) {
			return nil, fmt.Errorf("%w: invalid slug %q", ErrValidation, *req.Slug)
		}
		if err := s.checkPageSlugFree(ctx, r, *req.Slug, id); err != nil {
			return nil, err
		}
		page.Slug = *req.Slug
	}

	if req.Title != nil {
		page.Title = page.Title.Merge(req.Title)
	}
	if req.Content != nil {
		page.Content = mergeContent(page.Content, req.Content)
	}
	if req.SEO != nil {
		page.SEO = req.SEO
	}

	page.UpdatedAt = time.Now().UTC()
	if err := r.UpdatePage(ctx, page); err != nil {
		return nil, fmt.Errorf("update page %s: %w", id, err)
	}

	return representativePageView(page), nil
}

func (s *service) DeletePage(ctx context.Context, id string) error {
	r, err := s.repo(DomainPages)
	if err != nil {
		return err
	}
	return r.DeletePage(ctx, id)
}

func (s *service) checkPageSlugFree(ctx context.Context, r Repository, pageSlug, selfID string) error {
	existing, err := r.GetPageBySlug(ctx, pageSlug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: page slug %q", ErrSlugConflict, pageSlug)
	}
	return nil
}

// mergeContent overlays patch sections onto existing page content. When both
// sides of a key hold localized maps the locales are merged; otherwise the
// patch value replaces the section.
func mergeContent(existing, patch map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(existing)+len(patch))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range patch {
		current, ok := merged[k]
		if !ok {
			merged[k] = v
			continue
		}
		currentMap := asLocalized(current)
		patchMap := asLocalized(v)
		if currentMap != nil && patchMap != nil {
			merged[k] = currentMap.Merge(patchMap)
			continue
		}
		merged[k] = v
	}
	return merged
}

func asLocalized(v interface{}) LocalizedText {
	switch val := v.(type) {
	case LocalizedText:
		return val
	case map[string]string:
		return LocalizedText(val)
	case map[string]interface{}:
		t := make(LocalizedText, len(val))
		for l, raw := range val {
			s, ok := raw.(string)
			if !ok {
				return nil
			}
			t[l] = s
		}
		return t
	default:
		return nil
	}
}

func representativePageView(p *Page) *PageView {
	view := &PageView{
		ID:    p.ID,
		Slug:  p.Slug,
		Title: p.Title.Representative(),
		SEO:   p.SEO,
	}
	if len(p.Content) > 0 {
		view.Content = make(map[string]string, len(p.Content))
		for key, value := range p.Content {
			if t := asLocalized(value); t != nil {
				view.Content[key] = t.Representative()
				continue
			}
			view.Content[key] = ResolveValue(value, DefaultLocale)
		}
	}
	return view
}

// Settings operations

func (s *service) GetSettings(ctx context.Context, locale string) (*SettingsView, error) {
	settings, err := s.GetSettingsRecord(ctx)
	if err != nil {
		return nil, err
	}
	return settings.View(locale), nil
}

func (s *service) GetSettingsRecord(ctx context.Context) (*Settings, error) {
	r, err := s.repo(DomainSettings)
	if err != nil {
		return nil, err
	}
	return r.GetSettings(ctx)
}

func (s *service) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*SettingsView, error) {
	r, err := s.repo(DomainSettings)
	if err != nil {
		return nil, err
	}

	settings, err := r.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		// Lazily initialize the singleton on first write.
		settings = &Settings{ID: s.newID(DomainSettings)}
	}

	if req.Name != nil {
		settings.Name = settings.Name.Merge(req.Name)
	}
	if req.Description != nil {
		settings.Description = settings.Description.Merge(req.Description)
	}
	if req.Address != nil {
		settings.ContactInfo.Address = settings.ContactInfo.Address.Merge(req.Address)
	}
	if req.Phone != nil {
		settings.ContactInfo.Phone = *req.Phone
	}
	if req.Email != nil {
		settings.ContactInfo.Email = *req.Email
	}
	if req.OpeningHours != nil {
		if len(req.OpeningHours) != 7 {
			return nil, fmt.Errorf("%w: opening hours must list all 7 weekdays", ErrValidation)
		}
		settings.OpeningHours = req.OpeningHours
	}
	if req.SocialMedia != nil {
		settings.SocialMedia = req.SocialMedia
	}

	settings.UpdatedAt = time.Now().UTC()
	if err := r.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	return settings.View(DefaultLocale), nil
}

// Translation operations

func (s *service) GetTranslations(ctx context.Context, locale string) (map[string]string, error) {
	r, err := s.repo(DomainTranslations)
	if err != nil {
		return nil, err
	}
	return r.GetTranslations(ctx, locale)
}

func (s *service) UpsertTranslations(ctx context.Context, locale string, values map[string]string) error {
	r, err := s.repo(DomainTranslations)
	if err != nil {
		return err
	}
	if locale == "" {
		return fmt.Errorf("%w: locale is required", ErrValidation)
	}
	for key, value := range values {
		entry := TranslationEntry{Locale: locale, Key: key, Value: value}
		if err := r.SetTranslation(ctx, entry); err != nil {
			return fmt.Errorf("upsert translation %s/%s: %w", locale, key, err)
		}
	}
	return nil
}

func (s *service) DeleteTranslation(ctx context.Context, locale, key string) error {
	r, err := s.repo(DomainTranslations)
	if err != nil {
		return err
	}
	return r.DeleteTranslation(ctx, locale, key)
}

// Gallery operations

func (s *service) ListGalleryImages(ctx context.Context, locale string) ([]*GalleryImageView, error) {
	r, err := s.repo(DomainGallery)
	if err != nil {
		return nil, err
	}
	images, err := r.ListGalleryImages(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*GalleryImageView, 0, len(images))
	for _, img := range images {
		views = append(views, img.View(locale))
	}
	return views, nil
}

func (s *service) GetGalleryImageRecord(ctx context.Context, id string) (*GalleryImage, error) {
	r, err := s.repo(DomainGallery)
	if err != nil {
		return nil, err
	}
	return r.GetGalleryImage(ctx, id)
}

func (s *service) CreateGalleryImage(ctx context.Context, req CreateGalleryImageRequest) (*GalleryImageView, error) {
	r, err := s.repo(DomainGallery)
	if err != nil {
		return nil, err
	}
	if req.Image.URL == "" {
		return nil, fmt.Errorf("%w: image url is required", ErrValidation)
	}

	now := time.Now().UTC()
	image := &GalleryImage{
		ID:        s.newID(DomainGallery),
		Image:     req.Image,
		Caption:   req.Caption.Clone(),
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.CreateGalleryImage(ctx, image); err != nil {
		return nil, fmt.Errorf("create gallery image %s: %w", image.ID, err)
	}
	return image.View(DefaultLocale), nil
}

func (s *service) UpdateGalleryImage(ctx context.Context, id string, req UpdateGalleryImageRequest) (*GalleryImageView, error) {
	r, err := s.repo(DomainGallery)
	if err != nil {
		return nil, err
	}

	image, err := r.GetGalleryImage(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Image != nil {
		image.Image = *req.Image
	}
	if req.Caption != nil {
		image.Caption = image.Caption.Merge(req.Caption)
	}
	if req.Position != nil {
		image.Position = *req.Position
	}

	image.UpdatedAt = time.Now().UTC()
	if err := r.UpdateGalleryImage(ctx, image); err != nil {
		return nil, fmt.Errorf("update gallery image %s: %w", id, err)
	}
	return image.View(DefaultLocale), nil
}

func (s *service) DeleteGalleryImage(ctx context.Context, id string) error {
	r, err := s.repo(DomainGallery)
	if err != nil {
		return err
	}
	return r.DeleteGalleryImage(ctx, id)
}
