package sitecontent

// Request DTOs for Service operations.

// CreateCategoryRequest contains parameters for creating a category. Slug is
// derived from the representative name when omitted. Localized maps carry
// only the locales supplied by the caller.
type CreateCategoryRequest struct {
	Slug        string
	Name        LocalizedText
	Description LocalizedText
	ParentID    string
}

// UpdateCategoryRequest contains a partial update. Nil localized maps leave
// the field untouched; populated maps are merged per locale. Pointer fields
// distinguish "clear" from "leave unchanged".
type UpdateCategoryRequest struct {
	Slug        *string
	Name        LocalizedText
	Description LocalizedText
	ParentID    *string
}

// CreateItemRequest contains parameters for creating a menu or beverage item.
type CreateItemRequest struct {
	Name        LocalizedText
	Description LocalizedText
	Price       string
	CategoryID  string
	Image       *Image
}

// UpdateItemRequest contains a partial item update.
type UpdateItemRequest struct {
	Name        LocalizedText
	Description LocalizedText
	Price       *string
	CategoryID  *string
	Image       *Image
}

// CreatePageRequest contains parameters for creating a page.
type CreatePageRequest struct {
	Slug    string
	Title   LocalizedText
	Content map[string]interface{}
	SEO     *PageSEO
}

// UpdatePageRequest contains a partial page update. Content entries are
// merged by section key; localized section values are merged per locale.
type UpdatePageRequest struct {
	Slug    *string
	Title   LocalizedText
	Content map[string]interface{}
	SEO     *PageSEO
}

// UpdateSettingsRequest contains a partial update of the settings singleton.
type UpdateSettingsRequest struct {
	Name         LocalizedText
	Description  LocalizedText
	Address      LocalizedText
	Phone        *string
	Email        *string
	OpeningHours []OpeningHoursEntry
	SocialMedia  []SocialLink
}

// CreateGalleryImageRequest contains parameters for adding a gallery image.
type CreateGalleryImageRequest struct {
	Image    Image
	Caption  LocalizedText
	Position int
}

// UpdateGalleryImageRequest contains a partial gallery image update.
type UpdateGalleryImageRequest struct {
	Image    *Image
	Caption  LocalizedText
	Position *int
}
