// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/chati-cms/chati/internal/dbx"
	"github.com/chati-cms/chati/internal/server/migrations"
	"github.com/chati-cms/chati/internal/server/repositories/media"
	"github.com/chati-cms/chati/internal/server/repositories/pages"
	"github.com/chati-cms/chati/internal/server/repositories/posts"
	"github.com/chati-cms/chati/internal/server/repositories/site"
	"github.com/chati-cms/chati/internal/server/repositories/taxonomy"
	"github.com/chati-cms/chati/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Pages returns a pages.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Pages(db dbx.DBTX) pages.Repository {
	return pages.NewPostgresRepository(db)
}

// Posts returns a posts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	return posts.NewPostgresRepository(db)
}

// Taxonomy returns a taxonomy.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Taxonomy(db dbx.DBTX) taxonomy.Repository {
	return taxonomy.NewPostgresRepository(db)
}

// Media returns a media.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Media(db dbx.DBTX) media.Repository {
	return media.NewPostgresRepository(db)
}

// Site returns a site.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Site(db dbx.DBTX) site.Repository {
	return site.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
