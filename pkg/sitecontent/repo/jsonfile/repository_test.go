package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcvives/site-content/pkg/sitecontent"
	"github.com/marcvives/site-content/pkg/sitecontent/repo/jsonfile"
)

func newRepo(t *testing.T) (*jsonfile.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := jsonfile.New(jsonfile.Config{BaseDir: dir})
	require.NoError(t, err)
	return repo, dir
}

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := jsonfile.New(jsonfile.Config{})
	assert.Error(t, err)
}

func TestMissingDocumentsActAsEmpty(t *testing.T) {
	repo, dir := newRepo(t)
	ctx := context.Background()

	categories, err := repo.ListCategories(ctx, sitecontent.DomainMenu)
	require.NoError(t, err)
	assert.Empty(t, categories)

	_, err = repo.GetCategory(ctx, sitecontent.DomainMenu, "nope")
	assert.ErrorIs(t, err, sitecontent.ErrNotFound)

	_, err = repo.GetSettings(ctx)
	assert.ErrorIs(t, err, sitecontent.ErrNotFound)

	values, err := repo.GetTranslations(ctx, "de")
	require.NoError(t, err)
	assert.Empty(t, values)

	// Listing alone must not create the document.
	_, err = os.Stat(filepath.Join(dir, "menu.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestCatalogPersistsAcrossInstances(t *testing.T) {
	repo, dir := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	category := &sitecontent.Category{
		ID:        "menu-1",
		Slug:      "starters",
		Name:      sitecontent.LocalizedText{"en": "Starters", "es": "Entrantes"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateCategory(ctx, sitecontent.DomainMenu, category))

	item := &sitecontent.Item{
		ID:         "menu-2",
		Name:       sitecontent.LocalizedText{"en": "Croquettes"},
		Price:      "7.50",
		CategoryID: category.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.CreateItem(ctx, sitecontent.DomainMenu, item))

	// A second repository over the same directory sees everything.
	reopened, err := jsonfile.New(jsonfile.Config{BaseDir: dir})
	require.NoError(t, err)

	got, err := reopened.GetCategoryBySlug(ctx, sitecontent.DomainMenu, "starters")
	require.NoError(t, err)
	assert.Equal(t, "Entrantes", got.Name["es"])

	items, err := reopened.ListItemsByCategory(ctx, sitecontent.DomainMenu, category.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "7.50", items[0].Price)

	// Each catalog domain lives in its own document.
	beverages, err := reopened.ListCategories(ctx, sitecontent.DomainBeverages)
	require.NoError(t, err)
	assert.Empty(t, beverages)
}

func TestCategoryUpdateAndDelete(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	category := &sitecontent.Category{ID: "c1", Slug: "wines", Name: sitecontent.LocalizedText{"en": "Wines"}}
	require.NoError(t, repo.CreateCategory(ctx, sitecontent.DomainBeverages, category))

	category.Name = sitecontent.LocalizedText{"en": "Wines", "ca": "Vins"}
	require.NoError(t, repo.UpdateCategory(ctx, sitecontent.DomainBeverages, category))

	got, err := repo.GetCategory(ctx, sitecontent.DomainBeverages, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Vins", got.Name["ca"])

	require.NoError(t, repo.DeleteCategory(ctx, sitecontent.DomainBeverages, "c1"))
	_, err = repo.GetCategory(ctx, sitecontent.DomainBeverages, "c1")
	assert.ErrorIs(t, err, sitecontent.ErrNotFound)

	err = repo.DeleteCategory(ctx, sitecontent.DomainBeverages, "c1")
	assert.ErrorIs(t, err, sitecontent.ErrNotFound)

	err = repo.UpdateCategory(ctx, sitecontent.DomainBeverages, category)
	assert.ErrorIs(t, err, sitecontent.ErrNotFound)
}

func TestCorruptDocumentReportsStoreUnavailable(t *testing.T) {
	repo, dir := newRepo(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "menu.json"), []byte("{not json"), 0o644))

	_, err := repo.ListCategories(ctx, sitecontent.DomainMenu)
	assert.ErrorIs(t, err, sitecontent.ErrStoreUnavailable)
}

func TestPagesRoundTrip(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	page := &sitecontent.Page{
		ID:    "p1",
		Slug:  "contact",
		Title: sitecontent.LocalizedText{"en": "Contact"},
		Content: map[string]interface{}{
			"intro": map[string]interface{}{"en": "Find us here"},
		},
	}
	require.NoError(t, repo.CreatePage(ctx, page))

	got, err := repo.GetPageBySlug(ctx, "contact")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	_, err = repo.GetPageBySlug(ctx, "missing")
	assert.ErrorIs(t, err, sitecontent.ErrNotFound)

	require.NoError(t, repo.DeletePage(ctx, "p1"))
	_, err = repo.GetPage(ctx, "p1")
	assert.ErrorIs(t, err, sitecontent.ErrNotFound)
}

func TestSettingsRoundTrip(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	settings := &sitecontent.Settings{
		ID:   "s1",
		Name: sitecontent.LocalizedText{"en": "Casa Mar"},
	}
	require.NoError(t, repo.SaveSettings(ctx, settings))

	settings.ContactInfo.Phone = "+34 600 000 000"
	require.NoError(t, repo.SaveSettings(ctx, settings))

	got, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, "+34 600 000 000", got.ContactInfo.Phone)
}

func TestTranslationsPerLocaleFiles(t *testing.T) {
	repo, dir := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetTranslation(ctx, sitecontent.TranslationEntry{Locale: "es", Key: "nav.menu", Value: "Carta"}))
	require.NoError(t, repo.SetTranslation(ctx, sitecontent.TranslationEntry{Locale: "ca", Key: "nav.menu", Value: "Carta"}))
	require.NoError(t, repo.SetTranslation(ctx, sitecontent.TranslationEntry{Locale: "es", Key: "nav.menu", Value: "La Carta"}))

	values, err := repo.GetTranslations(ctx, "es")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"nav.menu": "La Carta"}, values)

	_, err = os.Stat(filepath.Join(dir, "translations", "es.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "translations", "ca.json"))
	assert.NoError(t, err)

	require.NoError(t, repo.DeleteTranslation(ctx, "es", "nav.menu"))
	err = repo.DeleteTranslation(ctx, "es", "nav.menu")
	assert.ErrorIs(t, err, sitecontent.ErrNotFound)
}

func TestGalleryOrdering(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateGalleryImage(ctx, &sitecontent.GalleryImage{
		ID: "g2", Image: sitecontent.Image{URL: "/b.jpg"}, Position: 2,
	}))
	require.NoError(t, repo.CreateGalleryImage(ctx, &sitecontent.GalleryImage{
		ID: "g1", Image: sitecontent.Image{URL: "/a.jpg"}, Position: 1,
	}))

	images, err := repo.ListGalleryImages(ctx)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "g1", images[0].ID)
	assert.Equal(t, "g2", images[1].ID)
}

func TestIDGeneratorTokens(t *testing.T) {
	gen := jsonfile.NewIDGenerator()
	a := gen(sitecontent.DomainMenu)
	b := gen(sitecontent.DomainMenu)
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "menu-")
}
