package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/asemenov-dev/bookmarkd/internal/common"
	"github.com/asemenov-dev/bookmarkd/internal/dbx"
	"github.com/asemenov-dev/bookmarkd/internal/server/models"
	bookmarksrepo "github.com/asemenov-dev/bookmarkd/internal/server/repositories/bookmarks"
	usersrepo "github.com/asemenov-dev/bookmarkd/internal/server/repositories/users"
)

// --- in-memory stand-ins for the real repositories ---

type fakeUsersRepo struct {
	nextID  int64
	byEmail map[string]*models.User

	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorDuplicate
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	for email, stored := range f.byEmail {
		if stored.ID == u.ID {
			if other, ok := f.byEmail[u.Email]; ok && other.ID != u.ID {
				return nil, common.ErrorDuplicate
			}
			delete(f.byEmail, email)
			stored.Email = u.Email
			stored.FirstName = u.FirstName
			stored.LastName = u.LastName
			stored.UpdatedAt = time.Now()
			f.byEmail[u.Email] = stored
			cp := *stored
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeBookmarksRepo struct {
	nextID int64
	byID   map[int64]*models.Bookmark
}

func newFakeBookmarksRepo() *fakeBookmarksRepo {
	return &fakeBookmarksRepo{byID: map[int64]*models.Bookmark{}}
}

func (f *fakeBookmarksRepo) Create(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.byID[b.ID] = b
	return b, nil
}

func (f *fakeBookmarksRepo) FindByID(ctx context.Context, id int64) (*models.Bookmark, error) {
	if b, ok := f.byID[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeBookmarksRepo) FindByOwner(ctx context.Context, userID int64) ([]*models.Bookmark, error) {
	result := []*models.Bookmark{}
	for _, b := range f.byID {
		if b.UserID == userID {
			cp := *b
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeBookmarksRepo) Update(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	stored, ok := f.byID[b.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	stored.Title = b.Title
	stored.Description = b.Description
	stored.Link = b.Link
	stored.UpdatedAt = time.Now()
	cp := *stored
	return &cp, nil
}

func (f *fakeBookmarksRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	b *fakeBookmarksRepo
}

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Bookmarks(db dbx.DBTX) bookmarksrepo.Repository { return m.b }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
