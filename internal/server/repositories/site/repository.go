// Package site stores sitewide settings: navigation menus and themes.
package site

import (
	"context"

	"github.com/chati-cms/chati/internal/server/models"
)

type Repository interface {
	GetNavigation(ctx context.Context, key string) (*models.Navigation, error)
	UpsertNavigation(ctx context.Context, nav *models.Navigation) (*models.Navigation, error)

	CreateTheme(ctx context.Context, theme *models.Theme) (*models.Theme, error)
	GetTheme(ctx context.Context, id string) (*models.Theme, error)
	GetDefaultTheme(ctx context.Context) (*models.Theme, error)
	ListThemes(ctx context.Context) ([]*models.Theme, error)
	UpdateTheme(ctx context.Context, theme *models.Theme) (*models.Theme, error)
	ClearDefaultThemes(ctx context.Context, exceptID string) error
}
