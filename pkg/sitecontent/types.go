package sitecontent

import "time"

// Domain identifies one content domain managed by the store.
type Domain string

// Domain constants (typed).
const (
	DomainMenu         Domain = "menu"
	DomainBeverages    Domain = "beverages"
	DomainPages        Domain = "pages"
	DomainSettings     Domain = "settings"
	DomainTranslations Domain = "translations"
	DomainGallery      Domain = "gallery"
)

// ItemDomains lists the domains that carry categories and items.
var ItemDomains = []Domain{DomainMenu, DomainBeverages}

// Category groups items within a domain. Slug is unique within the domain.
// ParentID is a weak back-reference to another category in the same domain;
// it enables a tree but carries no referential integrity at the storage
// level.
type Category struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description,omitempty"`
	ParentID    string        `json:"parent_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Image references an uploaded picture in the external object store.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Item is a menu or beverage entry. CategoryID is a weak reference; an item
// whose category no longer exists is uncategorized, not an error. Price is a
// string-formatted decimal and is stored verbatim.
type Item struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description,omitempty"`
	Price       string        `json:"price"`
	CategoryID  string        `json:"category_id,omitempty"`
	Image       *Image        `json:"image,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PageSEO holds optional search metadata for a page.
type PageSEO struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Page is an editable site page. Content maps section keys to either a
// LocalizedText or a plain string (legacy simple content); use ResolveValue
// to display entries.
type Page struct {
	ID        string                 `json:"id"`
	Slug      string                 `json:"slug"`
	Title     LocalizedText          `json:"title"`
	Content   map[string]interface{} `json:"content,omitempty"`
	SEO       *PageSEO               `json:"seo,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ContactInfo is part of the settings singleton.
type ContactInfo struct {
	Address LocalizedText `json:"address"`
	Phone   string        `json:"phone,omitempty"`
	Email   string        `json:"email,omitempty"`
}

// OpeningHoursEntry describes one weekday. Open/Close are "HH:MM" strings and
// are ignored when Closed is set.
type OpeningHoursEntry struct {
	Day    string `json:"day"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

// SocialLink points at a social media profile.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Settings is the singleton site configuration record. OpeningHours holds
// seven entries, one per weekday, in display order.
type Settings struct {
	ID           string              `json:"id"`
	Name         LocalizedText       `json:"name"`
	Description  LocalizedText       `json:"description,omitempty"`
	ContactInfo  ContactInfo         `json:"contact_info"`
	OpeningHours []OpeningHoursEntry `json:"opening_hours"`
	SocialMedia  []SocialLink        `json:"social_media,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// TranslationEntry is one UI string, unique per (locale, key).
type TranslationEntry struct {
	Locale string `json:"locale"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// GalleryImage is one photo-gallery record. The binary lives in the external
// object store; only the URL is persisted here.
type GalleryImage struct {
	ID        string        `json:"id"`
	Image     Image         `json:"image"`
	Caption   LocalizedText `json:"caption,omitempty"`
	Position  int           `json:"position"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CategoryView is a Category with localized fields resolved for one locale.
type CategoryView struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
}

// ItemView is an Item with localized fields resolved for one locale.
type ItemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	CategoryID  string `json:"category_id,omitempty"`
	Image       *Image `json:"image,omitempty"`
}

// PageView is a Page with title and content resolved for one locale.
type PageView struct {
	ID      string            `json:"id"`
	Slug    string            `json:"slug"`
	Title   string            `json:"title"`
	Content map[string]string `json:"content,omitempty"`
	SEO     *PageSEO          `json:"seo,omitempty"`
}

// SettingsView is the settings singleton resolved for one locale.
type SettingsView struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description,omitempty"`
	Address      string              `json:"address,omitempty"`
	Phone        string              `json:"phone,omitempty"`
	Email        string              `json:"email,omitempty"`
	OpeningHours []OpeningHoursEntry `json:"opening_hours"`
	SocialMedia  []SocialLink        `json:"social_media,omitempty"`
}

// GalleryImageView is a GalleryImage with the caption resolved for one
// locale.
type GalleryImageView struct {
	ID       string `json:"id"`
	Image    Image  `json:"image"`
	Caption  string `json:"caption,omitempty"`
	Position int    `json:"position"`
}

// View resolves the gallery image for the given locale.
func (g *GalleryImage) View(locale string) *GalleryImageView {
	return &GalleryImageView{
		ID:       g.ID,
		Image:    g.Image,
		Caption:  g.Caption.Resolve(locale),
		Position: g.Position,
	}
}

// View resolves the category for the given locale.
func (c *Category) View(locale string) *CategoryView {
	return &CategoryView{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name.Resolve(locale),
		Description: c.Description.Resolve(locale),
		ParentID:    c.ParentID,
	}
}

// View resolves the item for the given locale.
func (i *Item) View(locale string) *ItemView {
	return &ItemView{
		ID:          i.ID,
		Name:        i.Name.Resolve(locale),
		Description: i.Description.Resolve(locale),
		Price:       i.Price,
		CategoryID:  i.CategoryID,
		Image:       i.Image,
	}
}

// View resolves the page for the given locale.
func (p *Page) View(locale string) *PageView {
	view := &PageView{
		ID:    p.ID,
		Slug:  p.Slug,
		Title: p.Title.Resolve(locale),
		SEO:   p.SEO,
	}
	if len(p.Content) > 0 {
		view.Content = make(map[string]string, len(p.Content))
		for key, value := range p.Content {
			view.Content[key] = ResolveValue(value, locale)
		}
	}
	return view
}

// View resolves the settings singleton for the given locale.
func (s *Settings) View(locale string) *SettingsView {
	return &SettingsView{
		ID:           s.ID,
		Name:         s.Name.Resolve(locale),
		Description:  s.Description.Resolve(locale),
		Address:      s.ContactInfo.Address.Resolve(locale),
		Phone:        s.ContactInfo.Phone,
		Email:        s.ContactInfo.Email,
		OpeningHours: s.OpeningHours,
		SocialMedia:  s.SocialMedia,
	}
}
