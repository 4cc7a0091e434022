package sitecontent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// service implements the Service interface
type service struct {
	defaultRepo Repository
	domainRepos map[Domain]Repository
	logger      *slog.Logger
	newID       IDGenerator
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository used for every domain that has no
// explicit override.
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.defaultRepo = repo
	}
}

// WithDomainRepository overrides the repository for a single domain. The
// choice is fixed at construction time; a domain is never served by more than
// one backend at runtime.
func WithDomainRepository(domain Domain, repo Repository) Option {
	return func(s *service) {
		if s.domainRepos == nil {
			s.domainRepos = make(map[Domain]Repository)
		}
		s.domainRepos[domain] = repo
	}
}

// WithLogger sets the structured logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// WithIDGenerator overrides record ID generation.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *service) {
		s.newID = gen
	}
}

// New creates a new service instance with the given options.
func New(options ...Option) (Service, error) {
	s := &service{
		domainRepos: make(map[Domain]Repository),
	}

	for _, option := range options {
		option(s)
	}

	if s.defaultRepo == nil && len(s.domainRepos) == 0 {
		return nil, fmt.Errorf("repository is required")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.newID == nil {
		s.newID = func(Domain) string { return uuid.NewString() }
	}

	return s, nil
}

// repo returns the repository serving the given domain.
func (s *service) repo(domain Domain) (Repository, error) {
	if r, ok := s.domainRepos[domain]; ok {
		return r, nil
	}
	if s.defaultRepo != nil {
		return s.defaultRepo, nil
	}
	return nil, fmt.Errorf("no repository configured for domain %s", domain)
}

// Category operations

func (s *service) ListCategories(ctx context.Context, domain Domain, locale string) ([]*CategoryView, error) {
	r, err := s.repo(domain)
	if err != nil {
		return nil, err
	}
	categories, err := r.ListCategories(ctx, domain)
	if err != nil {
		return nil, err
	}
	views := make([]*CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, c.View(locale))
	}
	return views, nil
}

func (s *service) GetCategory(ctx context.Context, domain Domain, id, locale string) (*CategoryView, error) {
	c, err := s.GetCategoryRecord(ctx, domain, id)
	if err != nil {
		return nil, err
	}
	return c.View(locale), nil
}

func (s *service) GetCategoryRecord(ctx context.Context, domain Domain, id string) (*Category, error) {
	r, err := s.repo(domain)
	if err != nil {
		return nil, err
	}
	return r.GetCategory(ctx, domain, id)
}

func (s *service) CreateCategory(ctx context.Context, domain Domain, req CreateCategoryRequest) (*CategoryView, error) {
	r, err := s.repo(domain)
	if err != nil {
		return nil, err
	}

	if len(req.Name) == 0 {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	categorySlug := req.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(req.Name.Representative())
	}
	if !slug.IsSlug(categorySlug) {
		return nil, fmt.Errorf("%w: invalid slug %q", ErrValidation, categorySlug)
	}

	if err := s.checkSlugFree(ctx, r, domain, categorySlug, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &Category{
		ID:          s.newID(domain),
		Slug:        categorySlug,
		Name:        req.Name.Clone(),
		Description: req.Description.Clone(),
		ParentID:    req.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.CreateCategory(ctx, domain, category); err != nil {
		return nil, &CategoryError{Domain: domain, ID: category.ID, Op: "create", Err: err}
	}

	return representativeCategoryView(category), nil
}

func (s *service) UpdateCategory(ctx context.Context, domain Domain, id string, req UpdateCategoryRequest) (*CategoryView, error) {
	r, err := s.repo(domain)
	if err != nil {
		return nil, err
	}

	category, err := r.GetCategory(ctx, domain, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != category.Slug {
		if !slug.IsSlug(*req.Slug) {
			return nil, fmt.Errorf("%w: invalid slug %q", ErrValidation, *req.Slug)
		}
		if err := s.checkSlugFree(ctx, r, domain, *req.Slug, id); err != nil {
			return nil, err
		}
		category.Slug = *req.Slug
	}

	if req.Name != nil {
		category.Name = category.Name.Merge(req.Name)
	}
	if req.Description != nil {
		category.Description = category.Description.Merge(req.Description)
	}
	if req.ParentID != nil {
		if *req.ParentID != "" {
			if err := s.checkParentCycle(ctx, r, domain, id, *req.ParentID); err != nil {
				return nil, err
			}
		}
		category.ParentID = *req.ParentID
	}

	category.UpdatedAt = time.Now().UTC()
	if err := r.UpdateCategory(ctx, domain, category); err != nil {
		return nil, &CategoryError{Domain: domain, ID: id, Op: "update", Err: err}
	}

	return representativeCategoryView(category), nil
}

func (s *service) DeleteCategory(ctx context.Context, domain Domain, id string) error {
	r, err := s.repo(domain)
	if err != nil {
		return err
	}

	if _, err := r.GetCategory(ctx, domain, id); err != nil {
		return err
	}

	// Detach cascade: items and child categories keep existing but lose the
	// reference. A backend failure while detaching aborts the delete; the
	// category survives and the caller sees the error instead of an empty
	// success over live references to a vanished category.
	items, err := r.ListItemsByCategory(ctx, domain, id)
	if err != nil {
		s.logger.Error("listing items for detach failed", "domain", domain, "category_id", id, "error", err)
		return &CategoryError{Domain: domain, ID: id, Op: "delete", Err: err}
	}
	for _, item := range items {
		item.CategoryID = ""
		item.UpdatedAt = time.Now().UTC()
		if err := r.UpdateItem(ctx, domain, item); err != nil {
			s.logger.Error("detaching item failed", "domain", domain, "item_id", item.ID, "error", err)
			return &CategoryError{Domain: domain, ID: id, Op: "delete", Err: err}
		}
	}

	children, err := r.ListCategoriesByParent(ctx, domain, id)
	if err != nil {
		s.logger.Error("listing child categories for detach failed", "domain", domain, "category_id", id, "error", err)
		return &CategoryError{Domain: domain, ID: id, Op: "delete", Err: err}
	}
	for _, child := range children {
		child.ParentID = ""
		child.UpdatedAt = time.Now().UTC()
		if err := r.UpdateCategory(ctx, domain, child); err != nil {
			s.logger.Error("detaching child category failed", "domain", domain, "child_id", child.ID, "error", err)
			return &CategoryError{Domain: domain, ID: id, Op: "delete", Err: err}
		}
	}

	if err := r.DeleteCategory(ctx, domain, id); err != nil {
		return &CategoryError{Domain: domain, ID: id, Op: "delete", Err: err}
	}
	return nil
}

// checkSlugFree rejects a slug already used by a different category in the
// domain. The check-then-write pair is not atomic; the relational backend
// additionally enforces uniqueness with a constraint.
func (s *service) checkSlugFree(ctx context.Context, r Repository, domain Domain, categorySlug, selfID string) error {
	existing, err := r.GetCategoryBySlug(ctx, domain, categorySlug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: %q in domain %s", ErrSlugConflict, categorySlug, domain)
	}
	return nil
}

// checkParentCycle rejects a parent change that would make the category its
// own ancestor. The walk stops at a missing parent: ParentID is a weak
// reference and a dangling one breaks no invariant.
func (s *service) checkParentCycle(ctx context.Context, r Repository, domain Domain, id, parentID string) error {
	seen := map[string]bool{id: true}
	current := parentID
	for current != "" {
		if seen[current] {
			return fmt.Errorf("%w: category %s cannot become a descendant of itself", ErrCategoryCycle, id)
		}
		seen[current] = true
		parent, err := r.GetCategory(ctx, domain, current)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}
		current = parent.ParentID
	}
	return nil
}

// Item operations

func (s *service) ListItems(ctx context.Context, domain Domain, locale, categoryID string) ([]*ItemView, error) {
	r, err := s.repo(domain)
	if err != nil {
		return nil, err
	}

	var items []*Item
	if categoryID != "" {
		items, err = r.ListItemsByCategory(ctx, domain, categoryID)
	} else {
		items, err = r.ListItems(ctx, domain)
	}
	if err != nil {
		return nil, err
	}

	views := make([]*ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, item.View(locale))
	}
	return views, nil
}

func (s *service) GetItem(ctx context.Context, domain Domain, id, locale string) (*ItemView, error) {
	item, err := s.GetItemRecord(ctx, domain, id)
	if err != nil {
		return nil, err
	}
	return item.View(locale), nil
}

func (s *service) GetItemRecord(ctx context.Context, domain Domain, id string) (*Item, error) {
	r, err := s.repo(domain)
	if err != nil {
		return nil, err
	}
	return r.GetItem(ctx, domain, id)
}

func (s *service) CreateItem(ctx context.Context, domain Domain, req CreateItemRequest) (*ItemView, error) {
	r, err := s.repo(domain)
	if err != nil {
		return nil, err
	}

	if len(req.Name) == 0 {
		return nil, fmt.Errorf("%w: item name is required", ErrValidation)
	}

	now := time.Now().UTC()
	item := &Item{
		ID:          s.newID(domain),
		Name:        req.Name.Clone(),
		Description: req.Description.Clone(),
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.CreateItem(ctx, domain, item); err != nil {
		return nil, &ItemError{Domain: domain, ID: item.ID, Op: "create", Err: err}
	}

	return representativeItemView(item), nil
}

func (s *service) UpdateItem(ctx context.Context, domain Domain, id string, req UpdateItemRequest) (*ItemView, error) {
	r, err := s.repo(domain)
	if err != nil {
		return nil, err
	}

	item, err := r.GetItem(ctx, domain, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = item.Name.Merge(req.Name)
	}
	if req.Description != nil {
		item.Description = item.Description.Merge(req.Description)
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.CategoryID != nil {
		item.CategoryID = *req.CategoryID
	}
	if req.Image != nil {
		item.Image = req.Image
	}

	item.UpdatedAt = time.Now().UTC()
	if err := r.UpdateItem(ctx, domain, item); err != nil {
		return nil, &ItemError{Domain: domain, ID: id, Op: "update", Err: err}
	}

	return representativeItemView(item), nil
}

func (s *service) DeleteItem(ctx context.Context, domain Domain, id string) error {
	r, err := s.repo(domain)
	if err != nil {
		return err
	}
	if err := r.DeleteItem(ctx, domain, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return &ItemError{Domain: domain, ID: id, Op: "delete", Err: err}
	}
	return nil
}

// Representative views resolve to the default locale, falling back to the
// first populated locale, for response envelopes of create/update calls.

func representativeCategoryView(c *Category) *CategoryView {
	return &CategoryView{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name.Representative(),
		Description: c.Description.Representative(),
		ParentID:    c.ParentID,
	}
}

func representativeItemView(i *Item) *ItemView {
	return &ItemView{
		ID:          i.ID,
		Name:        i.Name.Representative(),
		Description: i.Description.Representative(),
		Price:       i.Price,
		CategoryID:  i.CategoryID,
		Image:       i.Image,
	}
}
