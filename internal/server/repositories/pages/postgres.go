package pages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/dbx"
	"github.com/chati-cms/chati/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const pageColumns = `id, slug, title, description, layout, status, theme_id, published_at, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }) (*models.Page, error) {
	page := &models.Page{}
	var themeID sql.NullString
	err := row.Scan(&page.ID, &page.Slug, &page.Title, &page.Description, &page.Layout,
		&page.Status, &themeID, &page.PublishedAt, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return nil, err
	}
	page.ThemeID = themeID.String
	return page, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *PostgresRepository) Create(ctx context.Context, page *models.Page) (*models.Page, error) {
	query :=
		`INSERT INTO pages (id, slug, title, description, layout, status, theme_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING ` + pageColumns

	page.ID = uuid.NewString()

	created, err := scanPage(r.db.QueryRowContext(ctx, query,
		page.ID, page.Slug, page.Title, page.Description, page.Layout, page.Status, nullable(page.ThemeID)))

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %v", err)
	}

	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Page, error) {
	page, err := scanPage(r.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return page, nil
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	page, err := scanPage(r.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return page, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE 1=1`
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR slug ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY updated_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	var result []*models.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %v", err)
		}
		result = append(result, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, page *models.Page) (*models.Page, error) {
	query :=
		`UPDATE pages
		 SET slug = $2, title = $3, description = $4, layout = $5, theme_id = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + pageColumns

	updated, err := scanPage(r.db.QueryRowContext(ctx, query,
		page.ID, page.Slug, page.Title, page.Description, page.Layout, nullable(page.ThemeID)))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %v", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// SetStatus flips publish state. published_at is stamped on publish and
// cleared on unpublish.
func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.ContentStatus) (*models.Page, error) {
	query :=
		`UPDATE pages
		 SET status = $2,
		     published_at = CASE WHEN $2 = 'PUBLISHED' THEN now() ELSE NULL END,
		     updated_at = now()
		 WHERE id = $1
		 RETURNING ` + pageColumns

	page, err := scanPage(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return page, nil
}

const sectionColumns = `id, page_id, kind, sort_order, visible, content`

func scanSection(row interface{ Scan(...any) error }) (*models.Section, error) {
	section := &models.Section{}
	var content []byte
	err := row.Scan(&section.ID, &section.PageID, &section.Kind, &section.Order, &section.Visible, &content)
	if err != nil {
		return nil, err
	}
	section.Content = content
	return section, nil
}

func (r *PostgresRepository) GetSection(ctx context.Context, id string) (*models.Section, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE id = $1`, id)

	section, err := scanSection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return section, nil
}

func (r *PostgresRepository) SectionsByPage(ctx context.Context, pageID string) ([]*models.Section, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE page_id = $1 ORDER BY sort_order ASC`, pageID)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	var result []*models.Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %v", err)
		}
		result = append(result, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}

	return result, nil
}

func (r *PostgresRepository) CreateSection(ctx context.Context, section *models.Section) (*models.Section, error) {
	query :=
		`INSERT INTO sections (id, page_id, kind, sort_order, visible, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + sectionColumns

	section.ID = uuid.NewString()

	created, err := scanSection(r.db.QueryRowContext(ctx, query,
		section.ID, section.PageID, section.Kind, section.Order, section.Visible, []byte(section.Content)))
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	return created, nil
}

func (r *PostgresRepository) UpdateSection(ctx context.Context, section *models.Section) (*models.Section, error) {
	query :=
		`UPDATE sections
		 SET kind = $2, sort_order = $3, visible = $4, content = $5
		 WHERE id = $1
		 RETURNING ` + sectionColumns

	updated, err := scanSection(r.db.QueryRowContext(ctx, query,
		section.ID, section.Kind, section.Order, section.Visible, []byte(section.Content)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return updated, nil
}

func (r *PostgresRepository) DeleteSection(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetSectionOrder(ctx context.Context, id string, order int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sections SET sort_order = $2 WHERE id = $1`, id, order)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
