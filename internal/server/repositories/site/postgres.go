package site

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

func (r *PostgresRepository) GetNavigation(ctx context.Context, key string) (*models.Navigation, error) {
	nav := &models.Navigation{}
	var items []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT key, items, updated_at FROM navigation WHERE key = $1`, key).
		Scan(&nav.Key, &items, &nav.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	nav.Items = items
	return nav, nil
}

func (r *PostgresRepository) UpsertNavigation(ctx context.Context, nav *models.Navigation) (*models.Navigation, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO navigation (key, items, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET items = EXCLUDED.items, updated_at = now()`,
		nav.Key, []byte(nav.Items))
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	return r.GetNavigation(ctx, nav.Key)
}

const themeColumns = `id, name, primary_color, secondary_color, accent_color, logo_url, favicon_url, typography, is_default, created_at, updated_at`

func scanTheme(row interface{ Scan(...any) error }) (*models.Theme, error) {
	theme := &models.Theme{}
	var typography []byte
	err := row.Scan(&theme.ID, &theme.Name, &theme.PrimaryColor, &theme.SecondaryColor,
		&theme.AccentColor, &theme.LogoURL, &theme.FaviconURL, &typography,
		&theme.IsDefault, &theme.CreatedAt, &theme.UpdatedAt)
	if err != nil {
		return nil, err
	}
	theme.Typography = typography
	return theme, nil
}

func (r *PostgresRepository) CreateTheme(ctx context.Context, theme *models.Theme) (*models.Theme, error) {
	query :=
		`INSERT INTO themes (id, name, primary_color, secondary_color, accent_color, logo_url, favicon_url, typography, is_default)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING ` + themeColumns

	theme.ID = uuid.NewString()

	created, err := scanTheme(r.db.QueryRowContext(ctx, query,
		theme.ID, theme.Name, theme.PrimaryColor, theme.SecondaryColor,
		theme.AccentColor, theme.LogoURL, theme.FaviconURL, []byte(theme.Typography), theme.IsDefault))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetTheme(ctx context.Context, id string) (*models.Theme, error) {
	theme, err := scanTheme(r.db.QueryRowContext(ctx,
		`SELECT `+themeColumns+` FROM themes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return theme, nil
}

func (r *PostgresRepository) GetDefaultTheme(ctx context.Context) (*models.Theme, error) {
	theme, err := scanTheme(r.db.QueryRowContext(ctx,
		`SELECT `+themeColumns+` FROM themes WHERE is_default LIMIT 1`))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return theme, nil
}

func (r *PostgresRepository) ListThemes(ctx context.Context) ([]*models.Theme, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+themeColumns+` FROM themes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	var result []*models.Theme
	for rows.Next() {
		theme, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %v", err)
		}
		result = append(result, theme)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateTheme(ctx context.Context, theme *models.Theme) (*models.Theme, error) {
	query :=
		`UPDATE themes
		 SET name = $2, primary_color = $3, secondary_color = $4, accent_color = $5,
		     logo_url = $6, favicon_url = $7, typography = $8, is_default = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + themeColumns

	updated, err := scanTheme(r.db.QueryRowContext(ctx, query,
		theme.ID, theme.Name, theme.PrimaryColor, theme.SecondaryColor,
		theme.AccentColor, theme.LogoURL, theme.FaviconURL, []byte(theme.Typography), theme.IsDefault))
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

// ClearDefaultThemes unsets is_default everywhere except exceptID, keeping
// the "one default theme" invariant when another becomes the default.
func (r *PostgresRepository) ClearDefaultThemes(ctx context.Context, exceptID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE themes SET is_default = FALSE WHERE is_default AND id <> $1`, exceptID)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	return nil
}
