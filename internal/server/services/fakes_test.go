package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/chati-cms/chati/internal/dbx"
	mediarepo "github.com/chati-cms/chati/internal/server/repositories/media"
	pagesrepo "github.com/chati-cms/chati/internal/server/repositories/pages"
	postsrepo "github.com/chati-cms/chati/internal/server/repositories/posts"
	siterepo "github.com/chati-cms/chati/internal/server/repositories/site"
	taxonomyrepo "github.com/chati-cms/chati/internal/server/repositories/taxonomy"
	usersrepo "github.com/chati-cms/chati/internal/server/repositories/users"
	"github.com/chati-cms/chati/internal/server/models"
)

// errBoom is a marker error for fake repo failures.
type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	listOut []*models.User
	listErr error

	updateErr error

	deleteErr error
	deletedID string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *u
	out.ID = "new-id"
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	return f.listOut, f.listErr
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return u, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

type fakePagesRepo struct {
	createOut *models.Page
	createErr error

	byIDOut *models.Page
	byIDErr error

	bySlugOut *models.Page
	bySlugErr error

	listOut []*models.Page
	listErr error

	updateErr error
	deleteErr error

	statusOut *models.Page
	statusErr error
	statusSet models.ContentStatus

	sectionsOut []*models.Section
	sectionsErr error

	sectionOut *models.Section
	sectionErr error

	createSectionOut *models.Section
	createSectionErr error

	updateSectionErr error
	deleteSectionErr error

	orderErr   error
	orderCalls []models.SectionOrder
}

func (f *fakePagesRepo) Create(ctx context.Context, p *models.Page) (*models.Page, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *p
	out.ID = "new-id"
	return &out, nil
}

func (f *fakePagesRepo) GetByID(ctx context.Context, id string) (*models.Page, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakePagesRepo) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	if f.bySlugErr != nil {
		return nil, f.bySlugErr
	}
	return f.bySlugOut, nil
}

func (f *fakePagesRepo) List(ctx context.Context, filter pagesrepo.Filter) ([]*models.Page, error) {
	return f.listOut, f.listErr
}

func (f *fakePagesRepo) Update(ctx context.Context, p *models.Page) (*models.Page, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return p, nil
}

func (f *fakePagesRepo) Delete(ctx context.Context, id string) error { return f.deleteErr }

func (f *fakePagesRepo) SetStatus(ctx context.Context, id string, status models.ContentStatus) (*models.Page, error) {
	f.statusSet = status
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if f.statusOut != nil {
		return f.statusOut, nil
	}
	return &models.Page{ID: id, Status: status}, nil
}

func (f *fakePagesRepo) GetSection(ctx context.Context, id string) (*models.Section, error) {
	if f.sectionErr != nil {
		return nil, f.sectionErr
	}
	return f.sectionOut, nil
}

func (f *fakePagesRepo) SectionsByPage(ctx context.Context, pageID string) ([]*models.Section, error) {
	return f.sectionsOut, f.sectionsErr
}

func (f *fakePagesRepo) CreateSection(ctx context.Context, s *models.Section) (*models.Section, error) {
	if f.createSectionErr != nil {
		return nil, f.createSectionErr
	}
	if f.createSectionOut != nil {
		return f.createSectionOut, nil
	}
	out := *s
	out.ID = "new-section"
	return &out, nil
}

func (f *fakePagesRepo) UpdateSection(ctx context.Context, s *models.Section) (*models.Section, error) {
	if f.updateSectionErr != nil {
		return nil, f.updateSectionErr
	}
	return s, nil
}

func (f *fakePagesRepo) DeleteSection(ctx context.Context, id string) error {
	return f.deleteSectionErr
}

func (f *fakePagesRepo) SetSectionOrder(ctx context.Context, id string, order int) error {
	if f.orderErr != nil {
		return f.orderErr
	}
	f.orderCalls = append(f.orderCalls, models.SectionOrder{ID: id, Order: order})
	return nil
}

type fakePostsRepo struct {
	createOut *models.BlogPost
	createErr error
	createdBy string
	tagIDs    []string

	byIDOut *models.BlogPost
	byIDErr error

	listOut   []*models.BlogPost
	listTotal int
	listErr   error

	updateErr error
	deleteErr error

	statusOut *models.BlogPost
	statusErr error
	statusSet models.ContentStatus
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.BlogPost, tagIDs []string) (*models.BlogPost, error) {
	f.createdBy = p.AuthorID
	f.tagIDs = tagIDs
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *p
	out.ID = "new-id"
	return &out, nil
}

func (f *fakePostsRepo) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakePostsRepo) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return f.byIDOut, f.byIDErr
}

func (f *fakePostsRepo) List(ctx context.Context, filter postsrepo.Filter) ([]*models.BlogPost, int, error) {
	return f.listOut, f.listTotal, f.listErr
}

func (f *fakePostsRepo) Update(ctx context.Context, p *models.BlogPost, tagIDs []string) (*models.BlogPost, error) {
	f.tagIDs = tagIDs
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return p, nil
}

func (f *fakePostsRepo) Delete(ctx context.Context, id string) error { return f.deleteErr }

func (f *fakePostsRepo) SetStatus(ctx context.Context, id string, status models.ContentStatus) (*models.BlogPost, error) {
	f.statusSet = status
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &models.BlogPost{ID: id, Status: status}, nil
}

type fakeTaxonomyRepo struct {
	categoryOut *models.Category
	categoryErr error

	tagOut *models.Tag
	tagErr error

	categories []*models.Category
	tags       []*models.Tag
	deleteErr  error
}

func (f *fakeTaxonomyRepo) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	if f.categoryOut != nil {
		return f.categoryOut, nil
	}
	out := *c
	out.ID = "new-id"
	return &out, nil
}

func (f *fakeTaxonomyRepo) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return f.categoryOut, f.categoryErr
}

func (f *fakeTaxonomyRepo) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return f.categories, f.categoryErr
}

func (f *fakeTaxonomyRepo) UpdateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	return c, nil
}

func (f *fakeTaxonomyRepo) DeleteCategory(ctx context.Context, id string) error { return f.deleteErr }

func (f *fakeTaxonomyRepo) CreateTag(ctx context.Context, tg *models.Tag) (*models.Tag, error) {
	if f.tagErr != nil {
		return nil, f.tagErr
	}
	if f.tagOut != nil {
		return f.tagOut, nil
	}
	out := *tg
	out.ID = "new-id"
	return &out, nil
}

func (f *fakeTaxonomyRepo) GetTag(ctx context.Context, id string) (*models.Tag, error) {
	return f.tagOut, f.tagErr
}

func (f *fakeTaxonomyRepo) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return f.tags, f.tagErr
}

func (f *fakeTaxonomyRepo) UpdateTag(ctx context.Context, tg *models.Tag) (*models.Tag, error) {
	if f.tagErr != nil {
		return nil, f.tagErr
	}
	return tg, nil
}

func (f *fakeTaxonomyRepo) DeleteTag(ctx context.Context, id string) error { return f.deleteErr }

type fakeMediaRepo struct {
	createOut *models.Media
	createErr error

	byIDOut *models.Media
	byIDErr error

	listOut   []*models.Media
	listTotal int
	listErr   error

	updateAltErr error
	deleteErr    error
	deletedID    string
}

func (f *fakeMediaRepo) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *m
	out.ID = "new-id"
	return &out, nil
}

func (f *fakeMediaRepo) GetByID(ctx context.Context, id string) (*models.Media, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeMediaRepo) List(ctx context.Context, filter mediarepo.Filter) ([]*models.Media, int, error) {
	return f.listOut, f.listTotal, f.listErr
}

func (f *fakeMediaRepo) UpdateAlt(ctx context.Context, id, alt string) (*models.Media, error) {
	if f.updateAltErr != nil {
		return nil, f.updateAltErr
	}
	return &models.Media{ID: id, Alt: alt}, nil
}

func (f *fakeMediaRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeSiteRepo struct {
	navOut *models.Navigation
	navErr error

	themeOut *models.Theme
	themeErr error

	themes []*models.Theme

	clearedExcept string
	clearErr      error
}

func (f *fakeSiteRepo) GetNavigation(ctx context.Context, key string) (*models.Navigation, error) {
	return f.navOut, f.navErr
}

func (f *fakeSiteRepo) UpsertNavigation(ctx context.Context, nav *models.Navigation) (*models.Navigation, error) {
	if f.navErr != nil {
		return nil, f.navErr
	}
	return nav, nil
}

func (f *fakeSiteRepo) CreateTheme(ctx context.Context, theme *models.Theme) (*models.Theme, error) {
	if f.themeErr != nil {
		return nil, f.themeErr
	}
	if f.themeOut != nil {
		return f.themeOut, nil
	}
	out := *theme
	out.ID = "new-id"
	return &out, nil
}

func (f *fakeSiteRepo) GetTheme(ctx context.Context, id string) (*models.Theme, error) {
	return f.themeOut, f.themeErr
}

func (f *fakeSiteRepo) GetDefaultTheme(ctx context.Context) (*models.Theme, error) {
	return f.themeOut, f.themeErr
}

func (f *fakeSiteRepo) ListThemes(ctx context.Context) ([]*models.Theme, error) {
	return f.themes, f.themeErr
}

func (f *fakeSiteRepo) UpdateTheme(ctx context.Context, theme *models.Theme) (*models.Theme, error) {
	if f.themeErr != nil {
		return nil, f.themeErr
	}
	return theme, nil
}

func (f *fakeSiteRepo) ClearDefaultThemes(ctx context.Context, exceptID string) error {
	f.clearedExcept = exceptID
	return f.clearErr
}

// --- fake manager ---

type fakeRepoManager struct {
	u  *fakeUsersRepo
	pg *fakePagesRepo
	po *fakePostsRepo
	tx *fakeTaxonomyRepo
	md *fakeMediaRepo
	st *fakeSiteRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Pages(db dbx.DBTX) pagesrepo.Repository       { return m.pg }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository       { return m.po }
func (m *fakeRepoManager) Taxonomy(db dbx.DBTX) taxonomyrepo.Repository { return m.tx }
func (m *fakeRepoManager) Media(db dbx.DBTX) mediarepo.Repository       { return m.md }
func (m *fakeRepoManager) Site(db dbx.DBTX) siterepo.Repository         { return m.st }
