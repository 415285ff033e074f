package posts

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/chati-cms/chati/internal/common"
)

// sliceConverter lets the mock driver accept []string args, which the pgx
// stdlib driver encodes natively for ANY($1) queries in production.
type sliceConverter struct{}

func (sliceConverter) ConvertValue(v any) (driver.Value, error) {
	if _, ok := v.([]string); ok {
		return v, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

var now = time.Now()

var postCols = []string{
	"id", "slug", "title", "excerpt", "content", "status",
	"author_id", "name", "email",
	"category_id", "c_slug", "c_title",
	"cover_id", "published_at", "created_at", "updated_at",
}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.ValueConverterOption(sliceConverter{}),
	)
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func postRow() *sqlmock.Rows {
	return sqlmock.NewRows(postCols).
		AddRow("b-1", "hello", "Hello", "", "body", "DRAFT",
			"u-1", "Alice", "alice@example.com",
			"cat-1", "news", "News",
			nil, nil, now, now)
}

func expectTags(mock sqlmock.Sqlmock) {
	rows := sqlmock.NewRows([]string{"post_id", "id", "slug", "title"}).
		AddRow("b-1", "t-1", "go", "Go")
	mock.ExpectQuery(`(?s)^SELECT\s+pt\.post_id`).WillReturnRows(rows)
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+p\.id.*WHERE\s+p\.id\s*=\s*\$1`).
		WithArgs("b-1").
		WillReturnRows(postRow())
	expectTags(mock)

	got, err := repo.GetByID(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Author == nil || got.Author.Email != "alice@example.com" {
		t.Fatalf("author projection missing: %+v", got)
	}
	if got.Category == nil || got.Category.Slug != "news" {
		t.Fatalf("category projection missing: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0].Slug != "go" {
		t.Fatalf("tags not loaded: %+v", got.Tags)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+p\.id.*WHERE\s+p\.id\s*=\s*\$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestList_PaginatesAndCounts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+count\(\*\)\s+FROM\s+blog_posts`).
		WithArgs("PUBLISHED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	mock.ExpectQuery(`(?s)^\s*SELECT\s+p\.id.*LIMIT\s+\$2\s+OFFSET\s+\$3`).
		WithArgs("PUBLISHED", 10, 10).
		WillReturnRows(postRow())
	expectTags(mock)

	posts, total, err := repo.List(context.Background(), Filter{Status: "PUBLISHED", Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 11 {
		t.Fatalf("total = %d, want 11", total)
	}
	if len(posts) != 1 || posts[0].ID != "b-1" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestSetStatus_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+blog_posts\s+SET\s+status`).
		WithArgs("nope", "PUBLISHED").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.SetStatus(context.Background(), "nope", "PUBLISHED")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE\s+FROM\s+blog_posts\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "b-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
