// Package migrate moves the content of one Repository into another. It backs
// the one-shot cutover from the flat-file store to the relational store:
// categories receive fresh identifiers, items are rewritten to reference the
// new category IDs, and records that cannot be carried over are logged and
// skipped. The run is best-effort, sequential, and never all-or-nothing.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/marcvives/site-content/pkg/sitecontent"
)

// DefaultLocales are the translation locales migrated when none are given.
var DefaultLocales = []string{"es", "en", "ca", "fr", "it", "de", "ru"}

// Runner copies content from Source into Target.
type Runner struct {
	Source  sitecontent.Repository
	Target  sitecontent.Repository
	Logger  *slog.Logger
	Locales []string
	NewID   sitecontent.IDGenerator
}

// Summary reports what a run accomplished.
type Summary struct {
	Categories    int
	Items         int
	SkippedItems  int
	Pages         int
	Settings      int
	Translations  int
	GalleryImages int
	Failures      int
}

// Run executes the migration. Only a failure to read a source document aborts
// the run; individual insert failures are logged and counted.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if r.Source == nil || r.Target == nil {
		return nil, errors.New("source and target repositories are required")
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	newID := r.NewID
	if newID == nil {
		newID = func(sitecontent.Domain) string { return uuid.NewString() }
	}
	locales := r.Locales
	if len(locales) == 0 {
		locales = DefaultLocales
	}

	summary := &Summary{}
	for _, domain := range sitecontent.ItemDomains {
		if err := r.migrateCatalog(ctx, domain, newID, logger, summary); err != nil {
			return summary, err
		}
	}
	if err := r.migratePages(ctx, logger, summary); err != nil {
		return summary, err
	}
	if err := r.migrateSettings(ctx, logger, summary); err != nil {
		return summary, err
	}
	if err := r.migrateTranslations(ctx, locales, logger, summary); err != nil {
		return summary, err
	}
	if err := r.migrateGallery(ctx, logger, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (r *Runner) migrateCatalog(ctx context.Context, domain sitecontent.Domain, newID sitecontent.IDGenerator, logger *slog.Logger, summary *Summary) error {
	categories, err := r.Source.ListCategories(ctx, domain)
	if err != nil {
		return fmt.Errorf("read %s categories: %w", domain, err)
	}
	items, err := r.Source.ListItems(ctx, domain)
	if err != nil {
		return fmt.Errorf("read %s items: %w", domain, err)
	}

	// Mint all new IDs up front so parent references can be remapped
	// regardless of document order.
	idMap := make(map[string]string, len(categories))
	for _, c := range categories {
		idMap[c.ID] = newID(domain)
	}

	for _, c := range categories {
		migrated := *c
		migrated.ID = idMap[c.ID]
		if c.ParentID != "" {
			mapped, ok := idMap[c.ParentID]
			if !ok {
				logger.Warn("category parent not found, clearing reference",
					"domain", domain, "category_id", c.ID, "parent_id", c.ParentID)
				mapped = ""
			}
			migrated.ParentID = mapped
		}
		if err := r.Target.CreateCategory(ctx, domain, &migrated); err != nil {
			logger.Error("category insert failed, skipping",
				"domain", domain, "category_id", c.ID, "slug", c.Slug, "error", err)
			summary.Failures++
			// Dependents of this category must not point at a row that was
			// never written.
			delete(idMap, c.ID)
			continue
		}
		summary.Categories++
	}

	for _, item := range items {
		migrated := *item
		if item.CategoryID != "" {
			mapped, ok := idMap[item.CategoryID]
			if !ok {
				logger.Warn("item category not found, skipping item",
					"domain", domain, "item_id", item.ID, "category_id", item.CategoryID)
				summary.SkippedItems++
				continue
			}
			migrated.CategoryID = mapped
		}
		if err := r.Target.CreateItem(ctx, domain, &migrated); err != nil {
			logger.Error("item insert failed, skipping",
				"domain", domain, "item_id", item.ID, "error", err)
			summary.Failures++
			continue
		}
		summary.Items++
	}
	return nil
}

func (r *Runner) migratePages(ctx context.Context, logger *slog.Logger, summary *Summary) error {
	pages, err := r.Source.ListPages(ctx)
	if err != nil {
		return fmt.Errorf("read pages: %w", err)
	}
	for _, page := range pages {
		if err := r.Target.CreatePage(ctx, page); err != nil {
			logger.Error("page insert failed, skipping", "page_id", page.ID, "slug", page.Slug, "error", err)
			summary.Failures++
			continue
		}
		summary.Pages++
	}
	return nil
}

func (r *Runner) migrateSettings(ctx context.Context, logger *slog.Logger, summary *Summary) error {
	settings, err := r.Source.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, sitecontent.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("read settings: %w", err)
	}
	if err := r.Target.SaveSettings(ctx, settings); err != nil {
		logger.Error("settings insert failed", "error", err)
		summary.Failures++
		return nil
	}
	summary.Settings++
	return nil
}

func (r *Runner) migrateTranslations(ctx context.Context, locales []string, logger *slog.Logger, summary *Summary) error {
	for _, locale := range locales {
		values, err := r.Source.GetTranslations(ctx, locale)
		if err != nil {
			return fmt.Errorf("read translations for %s: %w", locale, err)
		}
		for key, value := range values {
			entry := sitecontent.TranslationEntry{Locale: locale, Key: key, Value: value}
			if err := r.Target.SetTranslation(ctx, entry); err != nil {
				logger.Error("translation insert failed, skipping",
					"locale", locale, "key", key, "error", err)
				summary.Failures++
				continue
			}
			summary.Translations++
		}
	}
	return nil
}

func (r *Runner) migrateGallery(ctx context.Context, logger *slog.Logger, summary *Summary) error {
	images, err := r.Source.ListGalleryImages(ctx)
	if err != nil {
		return fmt.Errorf("read gallery: %w", err)
	}
	for _, img := range images {
		if err := r.Target.CreateGalleryImage(ctx, img); err != nil {
			logger.Error("gallery image insert failed, skipping", "image_id", img.ID, "error", err)
			summary.Failures++
			continue
		}
		summary.GalleryImages++
	}
	return nil
}
