// Package postgres implements sitecontent.Repository against PostgreSQL
// tables mirroring the content domains. Two access levels are used: a
// restricted connection for selects and an elevated service connection for
// writes, which bypasses row-level authorization because its only caller is
// the already-authenticated admin service layer.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcvives/site-content/pkg/sitecontent"
)

// DBTX is an interface that allows us to use either a database connection or
// a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

var _ sitecontent.Repository = (*Repository)(nil)

// Repository implements sitecontent.Repository using PostgreSQL.
type Repository struct {
	read  DBTX // restricted credentials, selects only
	write DBTX // elevated service credentials
}

// New creates a new PostgreSQL repository from read and write connections.
// Passing the same connection for both is valid for single-credential
// deployments.
func New(read, write DBTX) *Repository {
	return &Repository{read: read, write: write}
}

// NewWithPools creates a new PostgreSQL repository from connection pools.
func NewWithPools(read, write *pgxpool.Pool) *Repository {
	return &Repository{read: read, write: write}
}

// handleError maps engine errors onto the sitecontent taxonomy.
func handleError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "slug") || strings.Contains(pgErr.ConstraintName, "pkey") {
				return fmt.Errorf("%w: %s", sitecontent.ErrSlugConflict, pgErr.ConstraintName)
			}
			return fmt.Errorf("duplicate entry in %s: %s", operation, pgErr.ConstraintName)
		case "23502": // not_null_violation
			return fmt.Errorf("%w: required field %s is missing", sitecontent.ErrValidation, pgErr.ColumnName)
		case "42P01": // undefined_table
			return storeErr(operation, fmt.Errorf("table missing, migration required: %s", pgErr.Message))
		default:
			return storeErr(operation, fmt.Errorf("%s (code: %s)", pgErr.Message, pgErr.Code))
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return sitecontent.ErrNotFound
	}
	return storeErr(operation, err)
}

func storeErr(op string, err error) error {
	return &sitecontent.StoreError{
		Backend: "postgres",
		Op:      op,
		Err:     errors.Join(sitecontent.ErrStoreUnavailable, err),
	}
}

func categoryTable(domain sitecontent.Domain) (string, error) {
	switch domain {
	case sitecontent.DomainMenu:
		return "menu_categories", nil
	case sitecontent.DomainBeverages:
		return "beverage_categories", nil
	default:
		return "", fmt.Errorf("domain %s has no category table", domain)
	}
}

func itemTable(domain sitecontent.Domain) (string, error) {
	switch domain {
	case sitecontent.DomainMenu:
		return "menu_items", nil
	case sitecontent.DomainBeverages:
		return "beverage_items", nil
	default:
		return "", fmt.Errorf("domain %s has no item table", domain)
	}
}

// Category operations

func (r *Repository) scanCategories(rows pgx.Rows) ([]*sitecontent.Category, error) {
	defer rows.Close()
	var categories []*sitecontent.Category
	for rows.Next() {
		var c sitecontent.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, handleError("scan category", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError("iterate category rows", err)
	}
	return categories, nil
}

func (r *Repository) ListCategories(ctx context.Context, domain sitecontent.Domain) ([]*sitecontent.Category, error) {
	table, err := categoryTable(domain)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
        SELECT id, slug, name, description, parent_id, created_at, updated_at
        FROM %s ORDER BY created_at`, table)

	rows, err := r.read.Query(ctx, query)
	if err != nil {
		return nil, handleError("list categories", err)
	}
	return r.scanCategories(rows)
}

func (r *Repository) ListCategoriesByParent(ctx context.Context, domain sitecontent.Domain, parentID string) ([]*sitecontent.Category, error) {
	table, err := categoryTable(domain)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
        SELECT id, slug, name, description, parent_id, created_at, updated_at
        FROM %s WHERE parent_id = $1 ORDER BY created_at`, table)

	rows, err := r.read.Query(ctx, query, parentID)
	if err != nil {
		return nil, handleError("list categories by parent", err)
	}
	return r.scanCategories(rows)
}

func (r *Repository) getCategoryBy(ctx context.Context, table, column, value string) (*sitecontent.Category, error) {
	query := fmt.Sprintf(`
        SELECT id, slug, name, description, parent_id, created_at, updated_at
        FROM %s WHERE %s = $1`, table, column)

	var c sitecontent.Category
	err := r.read.QueryRow(ctx, query, value).Scan(
		&c.ID, &c.Slug, &c.Name, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, handleError("get category", err)
	}
	return &c, nil
}

func (r *Repository) GetCategory(ctx context.Context, domain sitecontent.Domain, id string) (*sitecontent.Category, error) {
	table, err := categoryTable(domain)
	if err != nil {
		return nil, err
	}
	return r.getCategoryBy(ctx, table, "id", id)
}

func (r *Repository) GetCategoryBySlug(ctx context.Context, domain sitecontent.Domain, slug string) (*sitecontent.Category, error) {
	table, err := categoryTable(domain)
	if err != nil {
		return nil, err
	}
	return r.getCategoryBy(ctx, table, "slug", slug)
}

func (r *Repository) CreateCategory(ctx context.Context, domain sitecontent.Domain, category *sitecontent.Category) error {
	table, err := categoryTable(domain)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
        INSERT INTO %s (id, slug, name, description, parent_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`, table)

	_, err = r.write.Exec(ctx, query,
		category.ID, category.Slug, category.Name, category.Description,
		category.ParentID, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return handleError("create category", err)
	}
	return nil
}

func (r *Repository) UpdateCategory(ctx context.Context, domain sitecontent.Domain, category *sitecontent.Category) error {
	table, err := categoryTable(domain)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
        UPDATE %s SET slug = $2, name = $3, description = $4, parent_id = $5, updated_at = $6
        WHERE id = $1`, table)

	tag, err := r.write.Exec(ctx, query,
		category.ID, category.Slug, category.Name, category.Description,
		category.ParentID, category.UpdatedAt)
	if err != nil {
		return handleError("update category", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, domain sitecontent.Domain, id string) error {
	table, err := categoryTable(domain)
	if err != nil {
		return err
	}
	tag, err := r.write.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return handleError("delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrNotFound
	}
	return nil
}

// Item operations

func (r *Repository) scanItems(rows pgx.Rows) ([]*sitecontent.Item, error) {
	defer rows.Close()
	var items []*sitecontent.Item
	for rows.Next() {
		var item sitecontent.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
			&item.CategoryID, &item.Image, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, handleError("scan item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError("iterate item rows", err)
	}
	return items, nil
}

func (r *Repository) ListItems(ctx context.Context, domain sitecontent.Domain) ([]*sitecontent.Item, error) {
	table, err := itemTable(domain)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
        SELECT id, name, description, price, category_id, image, created_at, updated_at
        FROM %s ORDER BY created_at`, table)

	rows, err := r.read.Query(ctx, query)
	if err != nil {
		return nil, handleError("list items", err)
	}
	return r.scanItems(rows)
}

func (r *Repository) ListItemsByCategory(ctx context.Context, domain sitecontent.Domain, categoryID string) ([]*sitecontent.Item, error) {
	table, err := itemTable(domain)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
        SELECT id, name, description, price, category_id, image, created_at, updated_at
        FROM %s WHERE category_id = $1 ORDER BY created_at`, table)

	rows, err := r.read.Query(ctx, query, categoryID)
	if err != nil {
		return nil, handleError("list items by category", err)
	}
	return r.scanItems(rows)
}

func (r *Repository) GetItem(ctx context.Context, domain sitecontent.Domain, id string) (*sitecontent.Item, error) {
	table, err := itemTable(domain)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
        SELECT id, name, description, price, category_id, image, created_at, updated_at
        FROM %s WHERE id = $1`, table)

	var item sitecontent.Item
	err = r.read.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price,
		&item.CategoryID, &item.Image, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, handleError("get item", err)
	}
	return &item, nil
}

func (r *Repository) CreateItem(ctx context.Context, domain sitecontent.Domain, item *sitecontent.Item) error {
	table, err := itemTable(domain)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
        INSERT INTO %s (id, name, description, price, category_id, image, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, table)

	_, err = r.write.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Price,
		item.CategoryID, item.Image, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return handleError("create item", err)
	}
	return nil
}

func (r *Repository) UpdateItem(ctx context.Context, domain sitecontent.Domain, item *sitecontent.Item) error {
	table, err := itemTable(domain)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
        UPDATE %s SET name = $2, description = $3, price = $4, category_id = $5, image = $6, updated_at = $7
        WHERE id = $1`, table)

	tag, err := r.write.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Price,
		item.CategoryID, item.Image, item.UpdatedAt)
	if err != nil {
		return handleError("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteItem(ctx context.Context, domain sitecontent.Domain, id string) error {
	table, err := itemTable(domain)
	if err != nil {
		return err
	}
	tag, err := r.write.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return handleError("delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrNotFound
	}
	return nil
}
