// Package jsonfile implements sitecontent.Repository on flat JSON documents,
// one per content domain. The whole document is the unit of durability: every
// mutation reads the file, changes the decoded document in memory, and
// rewrites the file. A per-domain mutex serializes writers within the
// process; concurrent writers in separate processes can still lose updates
// (last write wins), an accepted limitation of the admin-only usage pattern.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marcvives/site-content/pkg/sitecontent"
)

var _ sitecontent.Repository = (*Repository)(nil)

// Repository implements sitecontent.Repository using JSON files under a base
// directory.
type Repository struct {
	baseDir string

	guard sync.Mutex
	locks map[string]*sync.Mutex
}

// Config options for the flat-file backend.
type Config struct {
	BaseDir string // Base directory holding the domain documents
}

// New creates a new flat-file repository, creating the base directory if
// needed.
func New(config Config) (*Repository, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if err := os.MkdirAll(filepath.Join(config.BaseDir, "translations"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &Repository{
		baseDir: config.BaseDir,
		locks:   make(map[string]*sync.Mutex),
	}, nil
}

var idCounter atomic.Int64

// NewIDGenerator returns the historical flat-file ID scheme: a domain-prefixed
// timestamp token. Tokens are distinguishable within the process but carry no
// global uniqueness guarantee across processes.
func NewIDGenerator() sitecontent.IDGenerator {
	return func(domain sitecontent.Domain) string {
		return fmt.Sprintf("%s-%d-%d", domain, time.Now().UnixMilli(), idCounter.Add(1))
	}
}

// catalogDocument is the persisted shape of the menu and beverages domains.
type catalogDocument struct {
	Categories []*sitecontent.Category `json:"categories"`
	Items      []*sitecontent.Item     `json:"items"`
}

type pagesDocument struct {
	Pages []*sitecontent.Page `json:"pages"`
}

type galleryDocument struct {
	Images []*sitecontent.GalleryImage `json:"images"`
}

// lock returns the mutex serializing writes to one document file.
func (r *Repository) lock(name string) *sync.Mutex {
	r.guard.Lock()
	defer r.guard.Unlock()
	mu, ok := r.locks[name]
	if !ok {
		mu = &sync.Mutex{}
		r.locks[name] = mu
	}
	return mu
}

func (r *Repository) path(name string) string {
	return filepath.Join(r.baseDir, name)
}

// readDocument decodes the named file into v. A missing file is not a
// failure; found reports whether the file existed.
func (r *Repository) readDocument(name string, v interface{}) (found bool, err error) {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, storeErr("read "+name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, storeErr("parse "+name, err)
	}
	return true, nil
}

// writeDocument serializes v and overwrites the named file whole. There is no
// partial write.
func (r *Repository) writeDocument(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return storeErr("encode "+name, err)
	}
	if err := os.WriteFile(r.path(name), data, 0o644); err != nil {
		return storeErr("write "+name, err)
	}
	return nil
}

func storeErr(op string, err error) error {
	return &sitecontent.StoreError{
		Backend: "jsonfile",
		Op:      op,
		Err:     errors.Join(sitecontent.ErrStoreUnavailable, err),
	}
}

func catalogFile(domain sitecontent.Domain) (string, error) {
	switch domain {
	case sitecontent.DomainMenu:
		return "menu.json", nil
	case sitecontent.DomainBeverages:
		return "beverages.json", nil
	default:
		return "", fmt.Errorf("domain %s has no category/item document", domain)
	}
}

func (r *Repository) readCatalog(domain sitecontent.Domain) (*catalogDocument, string, error) {
	file, err := catalogFile(domain)
	if err != nil {
		return nil, "", err
	}
	doc := &catalogDocument{}
	if _, err := r.readDocument(file, doc); err != nil {
		return nil, "", err
	}
	return doc, file, nil
}

// Category operations

func (r *Repository) ListCategories(ctx context.Context, domain sitecontent.Domain) ([]*sitecontent.Category, error) {
	doc, _, err := r.readCatalog(domain)
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

func (r *Repository) ListCategoriesByParent(ctx context.Context, domain sitecontent.Domain, parentID string) ([]*sitecontent.Category, error) {
	doc, _, err := r.readCatalog(domain)
	if err != nil {
		return nil, err
	}
	var result []*sitecontent.Category
	for _, c := range doc.Categories {
		if c.ParentID == parentID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *Repository) GetCategory(ctx context.Context, domain sitecontent.Domain, id string) (*sitecontent.Category, error) {
	doc, _, err := r.readCatalog(domain)
	if err != nil {
		return nil, err
	}
	for _, c := range doc.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, sitecontent.ErrNotFound
}

func (r *Repository) GetCategoryBySlug(ctx context.Context, domain sitecontent.Domain, slug string) (*sitecontent.Category, error) {
	doc, _, err := r.readCatalog(domain)
	if err != nil {
		return nil, err
	}
	for _, c := range doc.Categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, sitecontent.ErrNotFound
}

func (r *Repository) CreateCategory(ctx context.Context, domain sitecontent.Domain, category *sitecontent.Category) error {
	file, err := catalogFile(domain)
	if err != nil {
		return err
	}
	mu := r.lock(file)
	mu.Lock()
	defer mu.Unlock()

	doc := &catalogDocument{}
	if _, err := r.readDocument(file, doc); err != nil {
		return err
	}
	doc.Categories = append(doc.Categories, category)
	return r.writeDocument(file, doc)
}

func (r *Repository) UpdateCategory(ctx context.Context, domain sitecontent.Domain, category *sitecontent.Category) error {
	file, err := catalogFile(domain)
	if err != nil {
		return err
	}
	mu := r.lock(file)
	mu.Lock()
	defer mu.Unlock()

	doc := &catalogDocument{}
	if _, err := r.readDocument(file, doc); err != nil {
		return err
	}
	for i, c := range doc.Categories {
		if c.ID == category.ID {
			doc.Categories[i] = category
			return r.writeDocument(file, doc)
		}
	}
	return sitecontent.ErrNotFound
}

func (r *Repository) DeleteCategory(ctx context.Context, domain sitecontent.Domain, id string) error {
	file, err := catalogFile(domain)
	if err != nil {
		return err
	}
	mu := r.lock(file)
	mu.Lock()
	defer mu.Unlock()

	doc := &catalogDocument{}
	if _, err := r.readDocument(file, doc); err != nil {
		return err
	}
	for i, c := range doc.Categories {
		if c.ID == id {
			doc.Categories = append(doc.Categories[:i], doc.Categories[i+1:]...)
			return r.writeDocument(file, doc)
		}
	}
	return sitecontent.ErrNotFound
}

// Item operations

func (r *Repository) ListItems(ctx context.Context, domain sitecontent.Domain) ([]*sitecontent.Item, error) {
	doc, _, err := r.readCatalog(domain)
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

func (r *Repository) ListItemsByCategory(ctx context.Context, domain sitecontent.Domain, categoryID string) ([]*sitecontent.Item, error) {
	doc, _, err := r.readCatalog(domain)
	if err != nil {
		return nil, err
	}
	var result []*sitecontent.Item
	for _, item := range doc.Items {
		if item.CategoryID == categoryID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *Repository) GetItem(ctx context.Context, domain sitecontent.Domain, id string) (*sitecontent.Item, error) {
	doc, _, err := r.readCatalog(domain)
	if err != nil {
		return nil, err
	}
	for _, item := range doc.Items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, sitecontent.ErrNotFound
}

func (r *Repository) CreateItem(ctx context.Context, domain sitecontent.Domain, item *sitecontent.Item) error {
	file, err := catalogFile(domain)
	if err != nil {
		return err
	}
	mu := r.lock(file)
	mu.Lock()
	defer mu.Unlock()

	doc := &catalogDocument{}
	if _, err := r.readDocument(file, doc); err != nil {
		return err
	}
	doc.Items = append(doc.Items, item)
	return r.writeDocument(file, doc)
}

func (r *Repository) UpdateItem(ctx context.Context, domain sitecontent.Domain, item *sitecontent.Item) error {
	file, err := catalogFile(domain)
	if err != nil {
		return err
	}
	mu := r.lock(file)
	mu.Lock()
	defer mu.Unlock()

	doc := &catalogDocument{}
	if _, err := r.readDocument(file, doc); err != nil {
		return err
	}
	for i, existing := range doc.Items {
		if existing.ID == item.ID {
			doc.Items[i] = item
			return r.writeDocument(file, doc)
		}
	}
	return sitecontent.ErrNotFound
}

func (r *Repository) DeleteItem(ctx context.Context, domain sitecontent.Domain, id string) error {
	file, err := catalogFile(domain)
	if err != nil {
		return err
	}
	mu := r.lock(file)
	mu.Lock()
	defer mu.Unlock()

	doc := &catalogDocument{}
	if _, err := r.readDocument(file, doc); err != nil {
		return err
	}
	for i, item := range doc.Items {
		if item.ID == id {
			doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)
			return r.writeDocument(file, doc)
		}
	}
	return sitecontent.ErrNotFound
}

// Page operations

func (r *Repository) ListPages(ctx context.Context) ([]*sitecontent.Page, error) {
	doc := &pagesDocument{}
	if _, err := r.readDocument("pages.json", doc); err != nil {
		return nil, err
	}
	return doc.Pages, nil
}

func (r *Repository) GetPage(ctx context.Context, id string) (*sitecontent.Page, error) {
	doc := &pagesDocument{}
	if _, err := r.readDocument("pages.json", doc); err != nil {
		return nil, err
	}
	for _, p := range doc.Pages {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, sitecontent.ErrNotFound
}

func (r *Repository) GetPageBySlug(ctx context.Context, slug string) (*sitecontent.Page, error) {
	doc := &pagesDocument{}
	if _, err := r.readDocument("pages.json", doc); err != nil {
		return nil, err
	}
	for _, p := range doc.Pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, sitecontent.ErrNotFound
}

func (r *Repository) CreatePage(ctx context.Context, page *sitecontent.Page) error {
	mu := r.lock("pages.json")
	mu.Lock()
	defer mu.Unlock()

	doc := &pagesDocument{}
	if _, err := r.readDocument("pages.json", doc); err != nil {
		return err
	}
	doc.Pages = append(doc.Pages, page)
	return r.writeDocument("pages.json", doc)
}

func (r *Repository) UpdatePage(ctx context.Context, page *sitecontent.Page) error {
	mu := r.lock("pages.json")
	mu.Lock()
	defer mu.Unlock()

	doc := &pagesDocument{}
	if _, err := r.readDocument("pages.json", doc); err != nil {
		return err
	}
	for i, p := range doc.Pages {
		if p.ID == page.ID {
			doc.Pages[i] = page
			return r.writeDocument("pages.json", doc)
		}
	}
	return sitecontent.ErrNotFound
}

func (r *Repository) DeletePage(ctx context.Context, id string) error {
	mu := r.lock("pages.json")
	mu.Lock()
	defer mu.Unlock()

	doc := &pagesDocument{}
	if _, err := r.readDocument("pages.json", doc); err != nil {
		return err
	}
	for i, p := range doc.Pages {
		if p.ID == id {
			doc.Pages = append(doc.Pages[:i], doc.Pages[i+1:]...)
			return r.writeDocument("pages.json", doc)
		}
	}
	return sitecontent.ErrNotFound
}

// Settings singleton

func (r *Repository) GetSettings(ctx context.Context) (*sitecontent.Settings, error) {
	settings := &sitecontent.Settings{}
	found, err := r.readDocument("settings.json", settings)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, sitecontent.ErrNotFound
	}
	return settings, nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings *sitecontent.Settings) error {
	mu := r.lock("settings.json")
	mu.Lock()
	defer mu.Unlock()
	return r.writeDocument("settings.json", settings)
}

// Translation operations. One document per locale under translations/.

func translationFile(locale string) string {
	return filepath.Join("translations", locale+".json")
}

func (r *Repository) GetTranslations(ctx context.Context, locale string) (map[string]string, error) {
	values := map[string]string{}
	if _, err := r.readDocument(translationFile(locale), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (r *Repository) SetTranslation(ctx context.Context, entry sitecontent.TranslationEntry) error {
	file := translationFile(entry.Locale)
	mu := r.lock(file)
	mu.Lock()
	defer mu.Unlock()

	values := map[string]string{}
	if _, err := r.readDocument(file, &values); err != nil {
		return err
	}
	values[entry.Key] = entry.Value
	return r.writeDocument(file, values)
}

func (r *Repository) DeleteTranslation(ctx context.Context, locale, key string) error {
	file := translationFile(locale)
	mu := r.lock(file)
	mu.Lock()
	defer mu.Unlock()

	values := map[string]string{}
	if _, err := r.readDocument(file, &values); err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return sitecontent.ErrNotFound
	}
	delete(values, key)
	return r.writeDocument(file, values)
}

// Gallery operations

func (r *Repository) ListGalleryImages(ctx context.Context) ([]*sitecontent.GalleryImage, error) {
	doc := &galleryDocument{}
	if _, err := r.readDocument("gallery.json", doc); err != nil {
		return nil, err
	}
	images := doc.Images
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Position < images[j].Position
	})
	return images, nil
}

func (r *Repository) GetGalleryImage(ctx context.Context, id string) (*sitecontent.GalleryImage, error) {
	doc := &galleryDocument{}
	if _, err := r.readDocument("gallery.json", doc); err != nil {
		return nil, err
	}
	for _, img := range doc.Images {
		if img.ID == id {
			return img, nil
		}
	}
	return nil, sitecontent.ErrNotFound
}

func (r *Repository) CreateGalleryImage(ctx context.Context, image *sitecontent.GalleryImage) error {
	mu := r.lock("gallery.json")
	mu.Lock()
	defer mu.Unlock()

	doc := &galleryDocument{}
	if _, err := r.readDocument("gallery.json", doc); err != nil {
		return err
	}
	doc.Images = append(doc.Images, image)
	return r.writeDocument("gallery.json", doc)
}

func (r *Repository) UpdateGalleryImage(ctx context.Context, image *sitecontent.GalleryImage) error {
	mu := r.lock("gallery.json")
	mu.Lock()
	defer mu.Unlock()

	doc := &galleryDocument{}
	if _, err := r.readDocument("gallery.json", doc); err != nil {
		return err
	}
	for i, img := range doc.Images {
		if img.ID == image.ID {
			doc.Images[i] = image
			return r.writeDocument("gallery.json", doc)
		}
	}
	return sitecontent.ErrNotFound
}

func (r *Repository) DeleteGalleryImage(ctx context.Context, id string) error {
	mu := r.lock("gallery.json")
	mu.Lock()
	defer mu.Unlock()

	doc := &galleryDocument{}
	if _, err := r.readDocument("gallery.json", doc); err != nil {
		return err
	}
	for i, img := range doc.Images {
		if img.ID == id {
			doc.Images = append(doc.Images[:i], doc.Images[i+1:]...)
			return r.writeDocument("gallery.json", doc)
		}
	}
	return sitecontent.ErrNotFound
}
