// Package taxonomy stores blog categories and tags.
package taxonomy

import (
	"context"

	"github.com/chati-cms/chati/internal/server/models"
)

type Repository interface {
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateTag(ctx context.Context, t *models.Tag) (*models.Tag, error)
	GetTag(ctx context.Context, id string) (*models.Tag, error)
	ListTags(ctx context.Context) ([]*models.Tag, error)
	UpdateTag(ctx context.Context, t *models.Tag) (*models.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}
