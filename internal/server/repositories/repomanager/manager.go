package repomanager

import (
	"context"
	"database/sql"

	"github.com/chati-cms/chati/internal/dbx"
	"github.com/chati-cms/chati/internal/server/repositories/media"
	"github.com/chati-cms/chati/internal/server/repositories/pages"
	"github.com/chati-cms/chati/internal/server/repositories/posts"
	"github.com/chati-cms/chati/internal/server/repositories/site"
	"github.com/chati-cms/chati/internal/server/repositories/taxonomy"
	"github.com/chati-cms/chati/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// several repository calls inside one transaction, and owns schema
// migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Pages(db dbx.DBTX) pages.Repository
	Posts(db dbx.DBTX) posts.Repository
	Taxonomy(db dbx.DBTX) taxonomy.Repository
	Media(db dbx.DBTX) media.Repository
	Site(db dbx.DBTX) site.Repository
}
