package taxonomy

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

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	c.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, slug, title, description) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Slug, c.Title, c.Description)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %v", err)
	}

	return c, nil
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	c := &models.Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, slug, title, description FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Slug, &c.Title, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, slug, title, description FROM categories ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	var result []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title, &c.Description); err != nil {
			return nil, fmt.Errorf("db error: %v", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET slug = $2, title = $3, description = $4 WHERE id = $1`,
		c.ID, c.Slug, c.Title, c.Description)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
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

func (r *PostgresRepository) CreateTag(ctx context.Context, t *models.Tag) (*models.Tag, error) {
	t.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, slug, title) VALUES ($1, $2, $3)`,
		t.ID, t.Slug, t.Title)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %v", err)
	}

	return t, nil
}

func (r *PostgresRepository) GetTag(ctx context.Context, id string) (*models.Tag, error) {
	t := &models.Tag{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, slug, title FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Slug, &t.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListTags(ctx context.Context) ([]*models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, slug, title FROM tags ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		t := &models.Tag{}
		if err := rows.Scan(&t.ID, &t.Slug, &t.Title); err != nil {
			return nil, fmt.Errorf("db error: %v", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateTag(ctx context.Context, t *models.Tag) (*models.Tag, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tags SET slug = $2, title = $3 WHERE id = $1`, t.ID, t.Slug, t.Title)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return nil, common.ErrNotFound
	}
	return t, nil
}

func (r *PostgresRepository) DeleteTag(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
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
