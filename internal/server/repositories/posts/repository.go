// Package posts stores blog posts, their taxonomy links and author
// projections.
package posts

import (
	"context"

	"github.com/chati-cms/chati/internal/server/models"
)

// Filter narrows List results. Zero values mean "no filter". Page/Limit are
// 1-based pagination inputs.
type Filter struct {
	Status     string
	CategoryID string
	Search     string
	Page       int
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, post *models.BlogPost, tagIDs []string) (*models.BlogPost, error)
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	List(ctx context.Context, f Filter) ([]*models.BlogPost, int, error)
	Update(ctx context.Context, post *models.BlogPost, tagIDs []string) (*models.BlogPost, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.ContentStatus) (*models.BlogPost, error)
}
