package migrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcvives/site-content/pkg/sitecontent"
	"github.com/marcvives/site-content/pkg/sitecontent/migrate"
	"github.com/marcvives/site-content/pkg/sitecontent/repo/jsonfile"
)

func newRepo(t *testing.T) *jsonfile.Repository {
	t.Helper()
	repo, err := jsonfile.New(jsonfile.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	return repo
}

func TestRunRequiresRepositories(t *testing.T) {
	runner := &migrate.Runner{}
	_, err := runner.Run(context.Background())
	assert.Error(t, err)
}

func TestRunMigratesCatalog(t *testing.T) {
	source := newRepo(t)
	target := newRepo(t)
	ctx := context.Background()

	wines := &sitecontent.Category{ID: "old-wines", Slug: "wines", Name: sitecontent.LocalizedText{"en": "Wines"}}
	tintos := &sitecontent.Category{ID: "old-tintos", Slug: "tintos", Name: sitecontent.LocalizedText{"es": "Tintos"}, ParentID: "old-wines"}
	require.NoError(t, source.CreateCategory(ctx, sitecontent.DomainBeverages, wines))
	require.NoError(t, source.CreateCategory(ctx, sitecontent.DomainBeverages, tintos))

	require.NoError(t, source.CreateItem(ctx, sitecontent.DomainBeverages, &sitecontent.Item{
		ID: "old-rioja", Name: sitecontent.LocalizedText{"es": "Rioja"}, Price: "4.50", CategoryID: "old-tintos",
	}))
	require.NoError(t, source.CreateItem(ctx, sitecontent.DomainBeverages, &sitecontent.Item{
		ID: "old-water", Name: sitecontent.LocalizedText{"en": "Water"}, Price: "1.50",
	}))
	require.NoError(t, source.CreateItem(ctx, sitecontent.DomainBeverages, &sitecontent.Item{
		ID: "old-orphan", Name: sitecontent.LocalizedText{"en": "Orphan"}, Price: "2.00", CategoryID: "gone",
	}))

	runner := &migrate.Runner{Source: source, Target: target}
	summary, err := runner.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Categories)
	assert.Equal(t, 2, summary.Items)
	assert.Equal(t, 1, summary.SkippedItems)
	assert.Equal(t, 0, summary.Failures)

	categories, err := target.ListCategories(ctx, sitecontent.DomainBeverages)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	byID := make(map[string]*sitecontent.Category, len(categories))
	bySlug := make(map[string]*sitecontent.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
		bySlug[c.Slug] = c
		assert.NotEqual(t, "old-wines", c.ID, "categories receive fresh identifiers")
		assert.NotEqual(t, "old-tintos", c.ID)
	}

	// The child's parent reference was rewritten to the new wines ID.
	migratedTintos := bySlug["tintos"]
	require.NotNil(t, migratedTintos)
	require.NotEmpty(t, migratedTintos.ParentID)
	parent, ok := byID[migratedTintos.ParentID]
	require.True(t, ok)
	assert.Equal(t, "wines", parent.Slug)

	items, err := target.ListItems(ctx, sitecontent.DomainBeverages)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		switch item.Name.Resolve("en") {
		case "Water":
			assert.Empty(t, item.CategoryID, "uncategorized items migrate as uncategorized")
		default:
			assert.Equal(t, migratedTintos.ID, item.CategoryID)
		}
	}
}

func TestRunMigratesSiteContent(t *testing.T) {
	source := newRepo(t)
	target := newRepo(t)
	ctx := context.Background()

	require.NoError(t, source.CreatePage(ctx, &sitecontent.Page{
		ID: "p1", Slug: "about", Title: sitecontent.LocalizedText{"en": "About"},
	}))
	require.NoError(t, source.SaveSettings(ctx, &sitecontent.Settings{
		ID: "s1", Name: sitecontent.LocalizedText{"en": "Casa Mar"},
	}))
	require.NoError(t, source.SetTranslation(ctx, sitecontent.TranslationEntry{Locale: "es", Key: "nav.menu", Value: "Carta"}))
	require.NoError(t, source.SetTranslation(ctx, sitecontent.TranslationEntry{Locale: "ca", Key: "nav.menu", Value: "Carta"}))
	require.NoError(t, source.CreateGalleryImage(ctx, &sitecontent.GalleryImage{
		ID: "g1", Image: sitecontent.Image{URL: "/a.jpg"}, Position: 1,
	}))

	runner := &migrate.Runner{Source: source, Target: target}
	summary, err := runner.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Pages)
	assert.Equal(t, 1, summary.Settings)
	assert.Equal(t, 2, summary.Translations)
	assert.Equal(t, 1, summary.GalleryImages)

	// Pages keep their identifiers across the move.
	page, err := target.GetPage(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "about", page.Slug)

	values, err := target.GetTranslations(ctx, "es")
	require.NoError(t, err)
	assert.Equal(t, "Carta", values["nav.menu"])
}

func TestRunEmptySource(t *testing.T) {
	runner := &migrate.Runner{Source: newRepo(t), Target: newRepo(t)}
	summary, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &migrate.Summary{}, summary)
}
