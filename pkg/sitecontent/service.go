package sitecontent

import "context"

// Service is the only entry point callers should use. It wraps a Repository
// per domain and adds the domain rules: ID generation, slug uniqueness,
// localized-map merging, and the detach cascade on category delete.
type Service interface {
	// Category operations.
	ListCategories(ctx context.Context, domain Domain, locale string) ([]*CategoryView, error)
	GetCategory(ctx context.Context, domain Domain, id, locale string) (*CategoryView, error)
	GetCategoryRecord(ctx context.Context, domain Domain, id string) (*Category, error)
	CreateCategory(ctx context.Context, domain Domain, req CreateCategoryRequest) (*CategoryView, error)
	UpdateCategory(ctx context.Context, domain Domain, id string, req UpdateCategoryRequest) (*CategoryView, error)
	DeleteCategory(ctx context.Context, domain Domain, id string) error

	// Item operations. A non-empty categoryID filters the listing.
	ListItems(ctx context.Context, domain Domain, locale, categoryID string) ([]*ItemView, error)
	GetItem(ctx context.Context, domain Domain, id, locale string) (*ItemView, error)
	GetItemRecord(ctx context.Context, domain Domain, id string) (*Item, error)
	CreateItem(ctx context.Context, domain Domain, req CreateItemRequest) (*ItemView, error)
	UpdateItem(ctx context.Context, domain Domain, id string, req UpdateItemRequest) (*ItemView, error)
	DeleteItem(ctx context.Context, domain Domain, id string) error

	// Page operations.
	ListPages(ctx context.Context, locale string) ([]*PageView, error)
	GetPage(ctx context.Context, id, locale string) (*PageView, error)
	GetPageBySlug(ctx context.Context, slug, locale string) (*PageView, error)
	GetPageRecord(ctx context.Context, id string) (*Page, error)
	CreatePage(ctx context.Context, req CreatePageRequest) (*PageView, error)
	UpdatePage(ctx context.Context, id string, req UpdatePageRequest) (*PageView, error)
	DeletePage(ctx context.Context, id string) error

	// Settings singleton.
	GetSettings(ctx context.Context, locale string) (*SettingsView, error)
	GetSettingsRecord(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*SettingsView, error)

	// Translation operations.
	GetTranslations(ctx context.Context, locale string) (map[string]string, error)
	UpsertTranslations(ctx context.Context, locale string, values map[string]string) error
	DeleteTranslation(ctx context.Context, locale, key string) error

	// Gallery operations.
	ListGalleryImages(ctx context.Context, locale string) ([]*GalleryImageView, error)
	GetGalleryImageRecord(ctx context.Context, id string) (*GalleryImage, error)
	CreateGalleryImage(ctx context.Context, req CreateGalleryImageRequest) (*GalleryImageView, error)
	UpdateGalleryImage(ctx context.Context, id string, req UpdateGalleryImageRequest) (*GalleryImageView, error)
	DeleteGalleryImage(ctx context.Context, id string) error
}
