package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"

	"github.com/asemenov-dev/bookmarkd/internal/server/repositories/bookmarks"
	"github.com/asemenov-dev/bookmarkd/internal/server/repositories/users"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)

	m := &PostgresRepositoryManager{}

	var _ users.Repository = m.Users(db)
	var _ bookmarks.Repository = m.Bookmarks(db)

	if m.Users(db) == nil {
		t.Fatal("Users() nil")
	}
	if m.Bookmarks(db) == nil {
		t.Fatal("Bookmarks() nil")
	}
}

func TestRunMigrations_UsesEmbeddedDir(t *testing.T) {
	db := newDB(t)

	orig := gooseUpContext
	called := false
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		called = true
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
	if !called {
		t.Fatal("expected goose.UpContext to be called")
	}
}
