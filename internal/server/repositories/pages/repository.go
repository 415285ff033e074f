// Package pages stores pages and their ordered sections.
package pages

import (
	"context"

	"github.com/chati-cms/chati/internal/server/models"
)

// Filter narrows List results. Zero values mean "no filter".
type Filter struct {
	Status string
	Search string
}

type Repository interface {
	Create(ctx context.Context, page *models.Page) (*models.Page, error)
	GetByID(ctx context.Context, id string) (*models.Page, error)
	GetBySlug(ctx context.Context, slug string) (*models.Page, error)
	List(ctx context.Context, f Filter) ([]*models.Page, error)
	Update(ctx context.Context, page *models.Page) (*models.Page, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.ContentStatus) (*models.Page, error)

	GetSection(ctx context.Context, id string) (*models.Section, error)
	SectionsByPage(ctx context.Context, pageID string) ([]*models.Section, error)
	CreateSection(ctx context.Context, section *models.Section) (*models.Section, error)
	UpdateSection(ctx context.Context, section *models.Section) (*models.Section, error)
	DeleteSection(ctx context.Context, id string) error
	SetSectionOrder(ctx context.Context, id string, order int) error
}
