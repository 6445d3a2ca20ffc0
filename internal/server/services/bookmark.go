package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/asemenov-dev/bookmarkd/internal/common"
	"github.com/asemenov-dev/bookmarkd/internal/dbx"
	"github.com/asemenov-dev/bookmarkd/internal/server/models"
	"github.com/asemenov-dev/bookmarkd/internal/server/repositories/bookmarks"
	"github.com/asemenov-dev/bookmarkd/internal/server/repositories/repomanager"
)

type BookmarkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookmarkService(db *sql.DB, m repomanager.RepositoryManager) *BookmarkService {
	return &BookmarkService{db: db, repomanager: m}
}

// Create stamps the new bookmark with the caller's id. No ownership check is
// needed here; the record cannot belong to anyone else.
func (s *BookmarkService) Create(ctx context.Context, userID int64, title, description, link string) (*models.Bookmark, error) {

	bookmark := &models.Bookmark{
		UserID:      userID,
		Title:       title,
		Description: description,
		Link:        link,
	}

	bookmark, err := s.repomanager.Bookmarks(s.db).Create(ctx, bookmark)
	if err != nil {
		return nil, fmt.Errorf("error creating bookmark: %w", err)
	}

	return bookmark, nil
}

// List returns the caller's bookmarks. The repository query is scoped by
// owner, so other users' records never enter the result.
func (s *BookmarkService) List(ctx context.Context, userID int64) ([]*models.Bookmark, error) {
	return s.repomanager.Bookmarks(s.db).FindByOwner(ctx, userID)
}

// Get returns the bookmark if it exists and belongs to userID. A missing
// record and a record owned by someone else produce the same
// ErrorAccessDenied, so a caller cannot probe which ids exist.
func (s *BookmarkService) Get(ctx context.Context, userID, bookmarkID int64) (*models.Bookmark, error) {
	return s.ownedBookmark(ctx, s.repomanager.Bookmarks(s.db), userID, bookmarkID)
}

// BookmarkUpdate carries the optional fields of a PATCH; nil means "leave
// unchanged".
type BookmarkUpdate struct {
	Title       *string
	Description *string
	Link        *string
}

// Update applies upd to the bookmark after the ownership gate. The gate and
// the write run on one transaction so the owner cannot change in between.
func (s *BookmarkService) Update(ctx context.Context, userID, bookmarkID int64, upd BookmarkUpdate) (*models.Bookmark, error) {

	var bookmark *models.Bookmark

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bookmarks(tx)

		b, err := s.ownedBookmark(ctx, repo, userID, bookmarkID)
		if err != nil {
			return err
		}

		if upd.Title != nil {
			b.Title = *upd.Title
		}
		if upd.Description != nil {
			b.Description = *upd.Description
		}
		if upd.Link != nil {
			b.Link = *upd.Link
		}

		bookmark, err = repo.Update(ctx, b)
		if err != nil {
			return fmt.Errorf("error updating bookmark: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return bookmark, nil
}

// Delete removes the bookmark after the ownership gate. Deletion is permanent.
func (s *BookmarkService) Delete(ctx context.Context, userID, bookmarkID int64) error {

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bookmarks(tx)

		if _, err := s.ownedBookmark(ctx, repo, userID, bookmarkID); err != nil {
			return err
		}

		if err := repo.Delete(ctx, bookmarkID); err != nil {
			return fmt.Errorf("error deleting bookmark: %w", err)
		}
		return nil
	})
}

func (s *BookmarkService) ownedBookmark(ctx context.Context, repo bookmarks.Repository, userID, bookmarkID int64) (*models.Bookmark, error) {

	bookmark, err := repo.FindByID(ctx, bookmarkID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorAccessDenied
		}
		return nil, fmt.Errorf("error searching bookmark: %w", err)
	}

	if bookmark.UserID != userID {
		return nil, common.ErrorAccessDenied
	}

	return bookmark, nil
}
