package repomanager

import (
	"context"
	"database/sql"

	"github.com/asemenov-dev/bookmarkd/internal/dbx"
	"github.com/asemenov-dev/bookmarkd/internal/server/repositories/bookmarks"
	"github.com/asemenov-dev/bookmarkd/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run several repository calls on one transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Bookmarks(db dbx.DBTX) bookmarks.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
