package sitecontent

import "context"

// Repository defines the persistence contract shared by the flat-file and
// relational backends. Implementations return ErrNotFound for unknown IDs and
// slugs, and wrap backend failures in ErrStoreUnavailable. Slug uniqueness and
// the detach cascade are enforced by the Service, not here; an implementation
// may additionally enforce slug uniqueness at the engine level (unique
// constraints) and must then surface violations as ErrSlugConflict.
type Repository interface {
	// Category operations. Domain is one of the item-carrying domains
	// (menu, beverages).
	ListCategories(ctx context.Context, domain Domain) ([]*Category, error)
	ListCategoriesByParent(ctx context.Context, domain Domain, parentID string) ([]*Category, error)
	GetCategory(ctx context.Context, domain Domain, id string) (*Category, error)
	GetCategoryBySlug(ctx context.Context, domain Domain, slug string) (*Category, error)
	CreateCategory(ctx context.Context, domain Domain, category *Category) error
	UpdateCategory(ctx context.Context, domain Domain, category *Category) error
	DeleteCategory(ctx context.Context, domain Domain, id string) error

	// Item operations.
	ListItems(ctx context.Context, domain Domain) ([]*Item, error)
	ListItemsByCategory(ctx context.Context, domain Domain, categoryID string) ([]*Item, error)
	GetItem(ctx context.Context, domain Domain, id string) (*Item, error)
	CreateItem(ctx context.Context, domain Domain, item *Item) error
	UpdateItem(ctx context.Context, domain Domain, item *Item) error
	DeleteItem(ctx context.Context, domain Domain, id string) error

	// Page operations.
	ListPages(ctx context.Context) ([]*Page, error)
	GetPage(ctx context.Context, id string) (*Page, error)
	GetPageBySlug(ctx context.Context, slug string) (*Page, error)
	CreatePage(ctx context.Context, page *Page) error
	UpdatePage(ctx context.Context, page *Page) error
	DeletePage(ctx context.Context, id string) error

	// Settings singleton.
	GetSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, settings *Settings) error

	// Translation operations. Entries are unique per (locale, key).
	GetTranslations(ctx context.Context, locale string) (map[string]string, error)
	SetTranslation(ctx context.Context, entry TranslationEntry) error
	DeleteTranslation(ctx context.Context, locale, key string) error

	// Gallery operations.
	ListGalleryImages(ctx context.Context) ([]*GalleryImage, error)
	GetGalleryImage(ctx context.Context, id string) (*GalleryImage, error)
	CreateGalleryImage(ctx context.Context, image *GalleryImage) error
	UpdateGalleryImage(ctx context.Context, image *GalleryImage) error
	DeleteGalleryImage(ctx context.Context, id string) error
}

// IDGenerator mints a new record identifier for the given domain. The default
// generator returns UUIDs; the flat-file backend historically used
// domain-prefixed timestamp tokens, which remain accepted as IDs.
type IDGenerator func(domain Domain) string
