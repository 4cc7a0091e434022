// Package sitecontent provides the localized content store behind a
// restaurant website and its admin console: menu and beverage categories and
// items, pages, a photo gallery, site settings, and UI-string translations.
//
// It exposes a single Service interface that orchestrates category/item CRUD,
// slug uniqueness, parent/child detachment on delete, and locale-fallback
// resolution of multilingual fields. Persistence is pluggable behind the
// Repository interface; a flat JSON-file backend and a PostgreSQL backend are
// provided under subpackages. Backends are chosen per domain at construction
// time and never mixed at runtime for the same domain.
//
// Locale Resolution
//
// Every localized field is a LocalizedText map. Public read operations return
// display-ready views with each field resolved through the fallback chain
// requested locale -> "en" -> first populated locale in sorted order, holding
// the empty string only when no locale has a value. The raw multilingual maps
// are only returned by the explicit *Record accessors used by admin forms.
package sitecontent
