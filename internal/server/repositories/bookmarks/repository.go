package bookmarks

import (
	"context"

	"github.com/asemenov-dev/bookmarkd/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	FindByID(ctx context.Context, id int64) (*models.Bookmark, error)
	FindByOwner(ctx context.Context, userID int64) ([]*models.Bookmark, error)
	Update(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	Delete(ctx context.Context, id int64) error
}
