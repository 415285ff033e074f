package httpapi

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/dbx"
	"github.com/chati-cms/chati/internal/logging"
	"github.com/chati-cms/chati/internal/server/auth"
	"github.com/chati-cms/chati/internal/server/config"
	"github.com/chati-cms/chati/internal/server/models"
	mediarepo "github.com/chati-cms/chati/internal/server/repositories/media"
	pagesrepo "github.com/chati-cms/chati/internal/server/repositories/pages"
	postsrepo "github.com/chati-cms/chati/internal/server/repositories/posts"
	siterepo "github.com/chati-cms/chati/internal/server/repositories/site"
	taxonomyrepo "github.com/chati-cms/chati/internal/server/repositories/taxonomy"
	usersrepo "github.com/chati-cms/chati/internal/server/repositories/users"
	"github.com/chati-cms/chati/internal/server/services"
)

const testSecret = "api-test-secret"

func usersNotFound() error { return common.ErrNotFound }

// fakeUsersRepo serves the handful of accounts a test seeds into it.
type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	deletedID string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	out := *u
	out.ID = "created-id"
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, usersNotFound()
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, usersNotFound()
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) { return nil, nil }

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	return u, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return nil
}

type fakePagesRepo struct {
	pages   []*models.Page
	section *models.Section

	orderCalls int
}

func (f *fakePagesRepo) Create(ctx context.Context, p *models.Page) (*models.Page, error) {
	out := *p
	out.ID = "page-id"
	return &out, nil
}

func (f *fakePagesRepo) GetByID(ctx context.Context, id string) (*models.Page, error) {
	for _, p := range f.pages {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, usersNotFound()
}

func (f *fakePagesRepo) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	for _, p := range f.pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, usersNotFound()
}

func (f *fakePagesRepo) List(ctx context.Context, filter pagesrepo.Filter) ([]*models.Page, error) {
	return f.pages, nil
}

func (f *fakePagesRepo) Update(ctx context.Context, p *models.Page) (*models.Page, error) {
	return p, nil
}

func (f *fakePagesRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakePagesRepo) SetStatus(ctx context.Context, id string, status models.ContentStatus) (*models.Page, error) {
	return &models.Page{ID: id, Status: status}, nil
}

func (f *fakePagesRepo) GetSection(ctx context.Context, id string) (*models.Section, error) {
	if f.section != nil && f.section.ID == id {
		return f.section, nil
	}
	return nil, usersNotFound()
}

func (f *fakePagesRepo) SectionsByPage(ctx context.Context, pageID string) ([]*models.Section, error) {
	return nil, nil
}

func (f *fakePagesRepo) CreateSection(ctx context.Context, s *models.Section) (*models.Section, error) {
	out := *s
	out.ID = "section-id"
	return &out, nil
}

func (f *fakePagesRepo) UpdateSection(ctx context.Context, s *models.Section) (*models.Section, error) {
	return s, nil
}

func (f *fakePagesRepo) DeleteSection(ctx context.Context, id string) error { return nil }

func (f *fakePagesRepo) SetSectionOrder(ctx context.Context, id string, order int) error {
	f.orderCalls++
	return nil
}

type fakePostsRepo struct {
	posts []*models.BlogPost
	total int
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.BlogPost, tagIDs []string) (*models.BlogPost, error) {
	out := *p
	out.ID = "post-id"
	return &out, nil
}

func (f *fakePostsRepo) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	return nil, usersNotFound()
}

func (f *fakePostsRepo) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	for _, p := range f.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, usersNotFound()
}

func (f *fakePostsRepo) List(ctx context.Context, filter postsrepo.Filter) ([]*models.BlogPost, int, error) {
	return f.posts, f.total, nil
}

func (f *fakePostsRepo) Update(ctx context.Context, p *models.BlogPost, tagIDs []string) (*models.BlogPost, error) {
	return p, nil
}

func (f *fakePostsRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakePostsRepo) SetStatus(ctx context.Context, id string, status models.ContentStatus) (*models.BlogPost, error) {
	return &models.BlogPost{ID: id, Status: status}, nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	pg *fakePagesRepo
	po *fakePostsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Pages(db dbx.DBTX) pagesrepo.Repository       { return m.pg }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository       { return m.po }
func (m *fakeRepoManager) Taxonomy(db dbx.DBTX) taxonomyrepo.Repository { return nil }
func (m *fakeRepoManager) Media(db dbx.DBTX) mediarepo.Repository       { return nil }
func (m *fakeRepoManager) Site(db dbx.DBTX) siterepo.Repository         { return nil }

// testServer wires a Server around fakes. The sqlmock DB is only a handle;
// queries never reach it because the fake repos answer everything.
func testServer(t *testing.T, rm *fakeRepoManager) (http.Handler, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}

	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		MaxUploadSize:         5 * 1024 * 1024,
	}

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	srv := NewServer(cfg, log,
		services.NewUserService(db, rm, cfg),
		services.NewPageService(db, rm),
		services.NewPostService(db, rm),
		services.NewTaxonomyService(db, rm),
		services.NewMediaService(db, rm, nil, cfg),
		services.NewSiteService(db, rm),
	)
	return srv.Handler(), mock, func() { db.Close() }
}

func tokenFor(t *testing.T, id, email string, role models.Role) string {
	t.Helper()
	token, err := auth.GenerateToken(id, email, role, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return token
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return hash
}
