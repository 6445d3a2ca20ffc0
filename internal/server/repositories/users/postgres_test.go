package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/asemenov-dev/bookmarkd/internal/common"
	"github.com/asemenov-dev/bookmarkd/internal/server/models"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func userColumns() []string {
	return []string{"id", "email", "password_hash", "first_name", "last_name", "created_at", "updated_at"}
}

func TestCreate_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@x.com", "hash", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	user, err := repo.Create(context.Background(), &models.User{Email: "a@x.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("expected assigned id 7, got %d", user.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{Email: "a@x.com", PasswordHash: "hash"})
	if !errors.Is(err, common.ErrorDuplicate) {
		t.Fatalf("expected common.ErrorDuplicate, got %v", err)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash")).
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "missing@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestFindByID_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(int64(7), "a@x.com", "hash", "Ann", "Lee", now, now))

	user, err := repo.FindByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if user.Email != "a@x.com" || user.FirstName != "Ann" {
		t.Fatalf("unexpected record: %+v", user)
	}
}

func TestUpdate_DuplicateEmail(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Update(context.Background(), &models.User{ID: 7, Email: "taken@x.com"})
	if !errors.Is(err, common.ErrorDuplicate) {
		t.Fatalf("expected common.ErrorDuplicate, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
		WithArgs(int64(7), "new@x.com", "Ann", "Lee").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	user, err := repo.Update(context.Background(), &models.User{ID: 7, Email: "new@x.com", FirstName: "Ann", LastName: "Lee"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !user.UpdatedAt.Equal(now) {
		t.Fatalf("expected refreshed updated_at")
	}
}
