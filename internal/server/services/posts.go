package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/server/models"
	"github.com/chati-cms/chati/internal/server/repositories/posts"
	"github.com/chati-cms/chati/internal/server/repositories/repomanager"
	"github.com/chati-cms/chati/internal/slugx"
)

type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// PostInput carries the writable fields of a blog post.
type PostInput struct {
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	CategoryID string   `json:"categoryId"`
	CoverID    string   `json:"coverId"`
	TagIDs     []string `json:"tagIds"`
}

func (in *PostInput) normalize() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if in.Slug == "" {
		in.Slug = slugx.Make(in.Title)
	}
	if !slugx.Valid(in.Slug) {
		return fmt.Errorf("%w: invalid slug %q", common.ErrValidation, in.Slug)
	}
	return nil
}

// PostPage is one page of a post listing plus the total match count for
// pagination.
type PostPage struct {
	Posts []*models.BlogPost
	Total int
}

func (s *PostService) List(ctx context.Context, f posts.Filter) (*PostPage, error) {
	items, total, err := s.repomanager.Posts(s.db).List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: items, Total: total}, nil
}

// Create adds a post in DRAFT status authored by the caller.
func (s *PostService) Create(ctx context.Context, authorID string, in *PostInput) (*models.BlogPost, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	return s.repomanager.Posts(s.db).Create(ctx, &models.BlogPost{
		Slug:       in.Slug,
		Title:      in.Title,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		Status:     models.ContentStatusDraft,
		AuthorID:   authorID,
		CategoryID: in.CategoryID,
		CoverID:    in.CoverID,
	}, in.TagIDs)
}

func (s *PostService) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	return s.repomanager.Posts(s.db).GetByID(ctx, id)
}

func (s *PostService) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.repomanager.Posts(s.db).GetBySlug(ctx, slug)
}

// Update rewrites the post fields and replaces its tag set. Authorship does
// not change on edit.
func (s *PostService) Update(ctx context.Context, id string, in *PostInput) (*models.BlogPost, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Slug = in.Slug
	post.Title = in.Title
	post.Excerpt = in.Excerpt
	post.Content = in.Content
	post.CategoryID = in.CategoryID
	post.CoverID = in.CoverID

	return repo.Update(ctx, post, in.TagIDs)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Posts(s.db).Delete(ctx, id)
}

func (s *PostService) Publish(ctx context.Context, id string) (*models.BlogPost, error) {
	return s.repomanager.Posts(s.db).SetStatus(ctx, id, models.ContentStatusPublished)
}

func (s *PostService) Unpublish(ctx context.Context, id string) (*models.BlogPost, error) {
	return s.repomanager.Posts(s.db).SetStatus(ctx, id, models.ContentStatusDraft)
}
