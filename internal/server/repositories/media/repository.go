// Package media stores metadata rows for uploaded assets; the bytes
// themselves live in the object store.
package media

import (
	"context"

	"github.com/chati-cms/chati/internal/server/models"
)

// Filter narrows List results; Page/Limit are 1-based pagination inputs.
type Filter struct {
	Search string
	Page   int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, m *models.Media) (*models.Media, error)
	GetByID(ctx context.Context, id string) (*models.Media, error)
	List(ctx context.Context, f Filter) ([]*models.Media, int, error)
	UpdateAlt(ctx context.Context, id, alt string) (*models.Media, error)
	Delete(ctx context.Context, id string) error
}
