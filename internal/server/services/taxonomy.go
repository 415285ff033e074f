package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/server/models"
	"github.com/chati-cms/chati/internal/server/repositories/repomanager"
	"github.com/chati-cms/chati/internal/slugx"
)

type TaxonomyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaxonomyService(db *sql.DB, m repomanager.RepositoryManager) *TaxonomyService {
	return &TaxonomyService{db: db, repomanager: m}
}

func normalizeSlug(slug, title string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if slug == "" {
		slug = slugx.Make(title)
	}
	if !slugx.Valid(slug) {
		return "", fmt.Errorf("%w: invalid slug %q", common.ErrValidation, slug)
	}
	return slug, nil
}

func (s *TaxonomyService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repomanager.Taxonomy(s.db).ListCategories(ctx)
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, slug, title, description string) (*models.Category, error) {
	slug, err := normalizeSlug(slug, title)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Taxonomy(s.db).CreateCategory(ctx, &models.Category{
		Slug:        slug,
		Title:       title,
		Description: description,
	})
}

func (s *TaxonomyService) UpdateCategory(ctx context.Context, id, slug, title, description string) (*models.Category, error) {
	slug, err := normalizeSlug(slug, title)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Taxonomy(s.db).UpdateCategory(ctx, &models.Category{
		ID:          id,
		Slug:        slug,
		Title:       title,
		Description: description,
	})
}

func (s *TaxonomyService) DeleteCategory(ctx context.Context, id string) error {
	return s.repomanager.Taxonomy(s.db).DeleteCategory(ctx, id)
}

func (s *TaxonomyService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.repomanager.Taxonomy(s.db).ListTags(ctx)
}

func (s *TaxonomyService) CreateTag(ctx context.Context, slug, title string) (*models.Tag, error) {
	slug, err := normalizeSlug(slug, title)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Taxonomy(s.db).CreateTag(ctx, &models.Tag{Slug: slug, Title: title})
}

func (s *TaxonomyService) UpdateTag(ctx context.Context, id, slug, title string) (*models.Tag, error) {
	slug, err := normalizeSlug(slug, title)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Taxonomy(s.db).UpdateTag(ctx, &models.Tag{ID: id, Slug: slug, Title: title})
}

func (s *TaxonomyService) DeleteTag(ctx context.Context, id string) error {
	return s.repomanager.Taxonomy(s.db).DeleteTag(ctx, id)
}
