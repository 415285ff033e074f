package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/dbx"
	"github.com/chati-cms/chati/internal/server/models"
	"github.com/chati-cms/chati/internal/server/repositories/repomanager"
)

// navigationKeys are the menus the frontend knows how to render.
var navigationKeys = map[string]bool{
	"header": true,
	"footer": true,
}

type SiteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSiteService(db *sql.DB, m repomanager.RepositoryManager) *SiteService {
	return &SiteService{db: db, repomanager: m}
}

func (s *SiteService) GetNavigation(ctx context.Context, key string) (*models.Navigation, error) {
	if !navigationKeys[key] {
		return nil, fmt.Errorf("%w: unknown navigation %q", common.ErrValidation, key)
	}
	return s.repomanager.Site(s.db).GetNavigation(ctx, key)
}

func (s *SiteService) UpdateNavigation(ctx context.Context, key string, items json.RawMessage) (*models.Navigation, error) {
	if !navigationKeys[key] {
		return nil, fmt.Errorf("%w: unknown navigation %q", common.ErrValidation, key)
	}
	if !json.Valid(items) {
		return nil, fmt.Errorf("%w: navigation items must be valid JSON", common.ErrValidation)
	}
	return s.repomanager.Site(s.db).UpsertNavigation(ctx, &models.Navigation{Key: key, Items: items})
}

// ThemeInput carries the writable fields of a theme.
type ThemeInput struct {
	Name           string          `json:"name"`
	PrimaryColor   string          `json:"primaryColor"`
	SecondaryColor string          `json:"secondaryColor"`
	AccentColor    string          `json:"accentColor"`
	LogoURL        string          `json:"logoUrl"`
	FaviconURL     string          `json:"faviconUrl"`
	Typography     json.RawMessage `json:"typography"`
	IsDefault      bool            `json:"isDefault"`
}

func (in *ThemeInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: theme name is required", common.ErrValidation)
	}
	if in.PrimaryColor == "" || in.SecondaryColor == "" {
		return fmt.Errorf("%w: primary and secondary colors are required", common.ErrValidation)
	}
	return nil
}

func (s *SiteService) ListThemes(ctx context.Context) ([]*models.Theme, error) {
	return s.repomanager.Site(s.db).ListThemes(ctx)
}

func (s *SiteService) GetTheme(ctx context.Context, id string) (*models.Theme, error) {
	return s.repomanager.Site(s.db).GetTheme(ctx, id)
}

func (s *SiteService) GetDefaultTheme(ctx context.Context) (*models.Theme, error) {
	return s.repomanager.Site(s.db).GetDefaultTheme(ctx)
}

// CreateTheme adds a theme. When the new theme is flagged as default, the
// flag is taken away from every other theme in the same transaction.
func (s *SiteService) CreateTheme(ctx context.Context, in *ThemeInput) (*models.Theme, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var created *models.Theme
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Site(tx)

		theme, err := repo.CreateTheme(ctx, &models.Theme{
			Name:           in.Name,
			PrimaryColor:   in.PrimaryColor,
			SecondaryColor: in.SecondaryColor,
			AccentColor:    in.AccentColor,
			LogoURL:        in.LogoURL,
			FaviconURL:     in.FaviconURL,
			Typography:     in.Typography,
			IsDefault:      in.IsDefault,
		})
		if err != nil {
			return err
		}
		if theme.IsDefault {
			if err := repo.ClearDefaultThemes(ctx, theme.ID); err != nil {
				return err
			}
		}
		created = theme
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *SiteService) UpdateTheme(ctx context.Context, id string, in *ThemeInput) (*models.Theme, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var updated *models.Theme
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Site(tx)

		theme, err := repo.UpdateTheme(ctx, &models.Theme{
			ID:             id,
			Name:           in.Name,
			PrimaryColor:   in.PrimaryColor,
			SecondaryColor: in.SecondaryColor,
			AccentColor:    in.AccentColor,
			LogoURL:        in.LogoURL,
			FaviconURL:     in.FaviconURL,
			Typography:     in.Typography,
			IsDefault:      in.IsDefault,
		})
		if err != nil {
			return err
		}
		if theme.IsDefault {
			if err := repo.ClearDefaultThemes(ctx, theme.ID); err != nil {
				return err
			}
		}
		updated = theme
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
