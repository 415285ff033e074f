package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/dbx"
	"github.com/chati-cms/chati/internal/server/models"
	"github.com/chati-cms/chati/internal/server/repositories/pages"
	"github.com/chati-cms/chati/internal/server/repositories/repomanager"
	"github.com/chati-cms/chati/internal/slugx"
)

type PageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPageService(db *sql.DB, m repomanager.RepositoryManager) *PageService {
	return &PageService{db: db, repomanager: m}
}

// PageInput carries the writable fields of a page. Slug is derived from the
// title when left empty.
type PageInput struct {
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Layout      models.PageLayout `json:"layout"`
	ThemeID     string            `json:"themeId"`
}

func (in *PageInput) normalize() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if in.Slug == "" {
		in.Slug = slugx.Make(in.Title)
	}
	if !slugx.Valid(in.Slug) {
		return fmt.Errorf("%w: invalid slug %q", common.ErrValidation, in.Slug)
	}
	if in.Layout == "" {
		in.Layout = models.PageLayoutStandard
	}
	return nil
}

func (s *PageService) List(ctx context.Context, f pages.Filter) ([]*models.Page, error) {
	return s.repomanager.Pages(s.db).List(ctx, f)
}

// Create adds a page in DRAFT status. A slug collision yields ErrConflict.
func (s *PageService) Create(ctx context.Context, in *PageInput) (*models.Page, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	return s.repomanager.Pages(s.db).Create(ctx, &models.Page{
		Slug:        in.Slug,
		Title:       in.Title,
		Description: in.Description,
		Layout:      in.Layout,
		Status:      models.ContentStatusDraft,
		ThemeID:     in.ThemeID,
	})
}

// Get returns a page with its sections attached in display order.
func (s *PageService) Get(ctx context.Context, id string) (*models.Page, error) {
	repo := s.repomanager.Pages(s.db)

	page, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sections, err := repo.SectionsByPage(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	page.Sections = sections
	return page, nil
}

func (s *PageService) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	repo := s.repomanager.Pages(s.db)

	page, err := repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	sections, err := repo.SectionsByPage(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	page.Sections = sections
	return page, nil
}

func (s *PageService) Update(ctx context.Context, id string, in *PageInput) (*models.Page, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Pages(s.db)

	page, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	page.Slug = in.Slug
	page.Title = in.Title
	page.Description = in.Description
	page.Layout = in.Layout
	page.ThemeID = in.ThemeID

	return repo.Update(ctx, page)
}

func (s *PageService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Pages(s.db).Delete(ctx, id)
}

func (s *PageService) Publish(ctx context.Context, id string) (*models.Page, error) {
	return s.repomanager.Pages(s.db).SetStatus(ctx, id, models.ContentStatusPublished)
}

func (s *PageService) Unpublish(ctx context.Context, id string) (*models.Page, error) {
	return s.repomanager.Pages(s.db).SetStatus(ctx, id, models.ContentStatusDraft)
}

// SectionInput carries the writable fields of a section.
type SectionInput struct {
	Kind    string          `json:"kind"`
	Order   int             `json:"order"`
	Visible *bool           `json:"visible"`
	Content json.RawMessage `json:"content"`
}

// AddSection appends a section to a page. An omitted order places the
// section after the current last one.
func (s *PageService) AddSection(ctx context.Context, pageID string, in *SectionInput) (*models.Section, error) {
	if in.Kind == "" {
		return nil, fmt.Errorf("%w: section kind is required", common.ErrValidation)
	}

	repo := s.repomanager.Pages(s.db)

	if _, err := repo.GetByID(ctx, pageID); err != nil {
		return nil, err
	}

	order := in.Order
	if order == 0 {
		existing, err := repo.SectionsByPage(ctx, pageID)
		if err != nil {
			return nil, err
		}
		order = len(existing) + 1
	}

	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}

	return repo.CreateSection(ctx, &models.Section{
		PageID:  pageID,
		Kind:    in.Kind,
		Order:   order,
		Visible: visible,
		Content: in.Content,
	})
}

func (s *PageService) Section(ctx context.Context, id string) (*models.Section, error) {
	return s.repomanager.Pages(s.db).GetSection(ctx, id)
}

// SectionUpdate is a partial update. Nil fields keep their stored values,
// so editing a hidden section's content does not un-hide it.
type SectionUpdate struct {
	Kind    *string         `json:"kind"`
	Order   *int            `json:"order"`
	Visible *bool           `json:"visible"`
	Content json.RawMessage `json:"content"`
}

func (s *PageService) UpdateSection(ctx context.Context, id string, in *SectionUpdate) (*models.Section, error) {
	repo := s.repomanager.Pages(s.db)

	section, err := repo.GetSection(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Kind != nil {
		if *in.Kind == "" {
			return nil, fmt.Errorf("%w: section kind cannot be empty", common.ErrValidation)
		}
		section.Kind = *in.Kind
	}
	if in.Order != nil {
		section.Order = *in.Order
	}
	if in.Visible != nil {
		section.Visible = *in.Visible
	}
	if in.Content != nil {
		section.Content = in.Content
	}

	return repo.UpdateSection(ctx, section)
}

func (s *PageService) DeleteSection(ctx context.Context, id string) error {
	return s.repomanager.Pages(s.db).DeleteSection(ctx, id)
}

// ReorderSections applies a batch of (id, order) pairs atomically. Either
// every section moves or none does.
func (s *PageService) ReorderSections(ctx context.Context, orders []models.SectionOrder) error {
	if len(orders) == 0 {
		return fmt.Errorf("%w: empty reorder request", common.ErrValidation)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Pages(tx)
		for _, o := range orders {
			if err := repo.SetSectionOrder(ctx, o.ID, o.Order); err != nil {
				return err
			}
		}
		return nil
	})
}
