package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/marcvives/site-content/pkg/sitecontent"
)

// Page operations

func (r *Repository) scanPages(rows pgx.Rows) ([]*sitecontent.Page, error) {
	defer rows.Close()
	var pages []*sitecontent.Page
	for rows.Next() {
		var p sitecontent.Page
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.SEO, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, handleError("scan page", err)
		}
		pages = append(pages, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError("iterate page rows", err)
	}
	return pages, nil
}

func (r *Repository) ListPages(ctx context.Context) ([]*sitecontent.Page, error) {
	query := `
        SELECT id, slug, title, content, seo, created_at, updated_at
        FROM pages ORDER BY created_at`

	rows, err := r.read.Query(ctx, query)
	if err != nil {
		return nil, handleError("list pages", err)
	}
	return r.scanPages(rows)
}

func (r *Repository) getPageBy(ctx context.Context, column, value string) (*sitecontent.Page, error) {
	query := `
        SELECT id, slug, title, content, seo, created_at, updated_at
        FROM pages WHERE ` + column + ` = $1`

	var p sitecontent.Page
	err := r.read.QueryRow(ctx, query, value).Scan(
		&p.ID, &p.Slug, &p.Title, &p.Content, &p.SEO, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, handleError("get page", err)
	}
	return &p, nil
}

func (r *Repository) GetPage(ctx context.Context, id string) (*sitecontent.Page, error) {
	return r.getPageBy(ctx, "id", id)
}

func (r *Repository) GetPageBySlug(ctx context.Context, slug string) (*sitecontent.Page, error) {
	return r.getPageBy(ctx, "slug", slug)
}

func (r *Repository) CreatePage(ctx context.Context, page *sitecontent.Page) error {
	query := `
        INSERT INTO pages (id, slug, title, content, seo, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.write.Exec(ctx, query,
		page.ID, page.Slug, page.Title, page.Content, page.SEO, page.CreatedAt, page.UpdatedAt)
	if err != nil {
		return handleError("create page", err)
	}
	return nil
}

func (r *Repository) UpdatePage(ctx context.Context, page *sitecontent.Page) error {
	query := `
        UPDATE pages SET slug = $2, title = $3, content = $4, seo = $5, updated_at = $6
        WHERE id = $1`

	tag, err := r.write.Exec(ctx, query,
		page.ID, page.Slug, page.Title, page.Content, page.SEO, page.UpdatedAt)
	if err != nil {
		return handleError("update page", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrNotFound
	}
	return nil
}

func (r *Repository) DeletePage(ctx context.Context, id string) error {
	tag, err := r.write.Exec(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return handleError("delete page", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrNotFound
	}
	return nil
}

// Settings singleton. The table holds a single row.

func (r *Repository) GetSettings(ctx context.Context) (*sitecontent.Settings, error) {
	query := `
        SELECT id, name, description, contact_info, opening_hours, social_media, updated_at
        FROM site_settings LIMIT 1`

	var s sitecontent.Settings
	err := r.read.QueryRow(ctx, query).Scan(
		&s.ID, &s.Name, &s.Description, &s.ContactInfo, &s.OpeningHours, &s.SocialMedia, &s.UpdatedAt)
	if err != nil {
		return nil, handleError("get settings", err)
	}
	return &s, nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings *sitecontent.Settings) error {
	query := `
        INSERT INTO site_settings (id, name, description, contact_info, opening_hours, social_media, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            contact_info = EXCLUDED.contact_info,
            opening_hours = EXCLUDED.opening_hours,
            social_media = EXCLUDED.social_media,
            updated_at = EXCLUDED.updated_at`

	_, err := r.write.Exec(ctx, query,
		settings.ID, settings.Name, settings.Description, settings.ContactInfo,
		settings.OpeningHours, settings.SocialMedia, settings.UpdatedAt)
	if err != nil {
		return handleError("save settings", err)
	}
	return nil
}

// Translation operations

func (r *Repository) GetTranslations(ctx context.Context, locale string) (map[string]string, error) {
	query := `SELECT key, value FROM translations WHERE locale = $1`

	rows, err := r.read.Query(ctx, query, locale)
	if err != nil {
		return nil, handleError("get translations", err)
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, handleError("scan translation", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, handleError("iterate translation rows", err)
	}
	return values, nil
}

func (r *Repository) SetTranslation(ctx context.Context, entry sitecontent.TranslationEntry) error {
	query := `
        INSERT INTO translations (locale, key, value)
        VALUES ($1, $2, $3)
        ON CONFLICT (locale, key) DO UPDATE SET value = EXCLUDED.value`

	_, err := r.write.Exec(ctx, query, entry.Locale, entry.Key, entry.Value)
	if err != nil {
		return handleError("set translation", err)
	}
	return nil
}

func (r *Repository) DeleteTranslation(ctx context.Context, locale, key string) error {
	tag, err := r.write.Exec(ctx, `DELETE FROM translations WHERE locale = $1 AND key = $2`, locale, key)
	if err != nil {
		return handleError("delete translation", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrNotFound
	}
	return nil
}

// Gallery operations

func (r *Repository) ListGalleryImages(ctx context.Context) ([]*sitecontent.GalleryImage, error) {
	query := `
        SELECT id, image, caption, position, created_at, updated_at
        FROM gallery_images ORDER BY position, created_at`

	rows, err := r.read.Query(ctx, query)
	if err != nil {
		return nil, handleError("list gallery images", err)
	}
	defer rows.Close()

	var images []*sitecontent.GalleryImage
	for rows.Next() {
		var img sitecontent.GalleryImage
		if err := rows.Scan(&img.ID, &img.Image, &img.Caption, &img.Position, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, handleError("scan gallery image", err)
		}
		images = append(images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError("iterate gallery rows", err)
	}
	return images, nil
}

func (r *Repository) GetGalleryImage(ctx context.Context, id string) (*sitecontent.GalleryImage, error) {
	query := `
        SELECT id, image, caption, position, created_at, updated_at
        FROM gallery_images WHERE id = $1`

	var img sitecontent.GalleryImage
	err := r.read.QueryRow(ctx, query, id).Scan(
		&img.ID, &img.Image, &img.Caption, &img.Position, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return nil, handleError("get gallery image", err)
	}
	return &img, nil
}

func (r *Repository) CreateGalleryImage(ctx context.Context, image *sitecontent.GalleryImage) error {
	query := `
        INSERT INTO gallery_images (id, image, caption, position, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.write.Exec(ctx, query,
		image.ID, image.Image, image.Caption, image.Position, image.CreatedAt, image.UpdatedAt)
	if err != nil {
		return handleError("create gallery image", err)
	}
	return nil
}

func (r *Repository) UpdateGalleryImage(ctx context.Context, image *sitecontent.GalleryImage) error {
	query := `
        UPDATE gallery_images SET image = $2, caption = $3, position = $4, updated_at = $5
        WHERE id = $1`

	tag, err := r.write.Exec(ctx, query,
		image.ID, image.Image, image.Caption, image.Position, image.UpdatedAt)
	if err != nil {
		return handleError("update gallery image", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteGalleryImage(ctx context.Context, id string) error {
	tag, err := r.write.Exec(ctx, `DELETE FROM gallery_images WHERE id = $1`, id)
	if err != nil {
		return handleError("delete gallery image", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrNotFound
	}
	return nil
}
