// Package bookmarks provides the PostgreSQL-backed repository for bookmark
// records. Ownership is not checked here; that is the service's job.
package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/asemenov-dev/bookmarkd/internal/common"
	"github.com/asemenov-dev/bookmarkd/internal/dbx"
	"github.com/asemenov-dev/bookmarkd/internal/server/models"
)

// PostgresRepository implements bookmark storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {

	query :=
		`INSERT INTO bookmarks (user_id, title, description, link)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		bookmark.UserID, bookmark.Title, bookmark.Description, bookmark.Link).
		Scan(&bookmark.ID, &bookmark.CreatedAt, &bookmark.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return bookmark, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Bookmark, error) {
	query :=
		`SELECT id, user_id, title, description, link, created_at, updated_at
		 FROM bookmarks
		 WHERE id = $1
		 `

	bookmark := &models.Bookmark{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bookmark.ID, &bookmark.UserID, &bookmark.Title, &bookmark.Description,
		&bookmark.Link, &bookmark.CreatedAt, &bookmark.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return bookmark, nil
}

// FindByOwner returns all bookmarks of userID, newest first. Scoping by
// owner in the query is what keeps list results tenant-isolated.
func (r *PostgresRepository) FindByOwner(ctx context.Context, userID int64) ([]*models.Bookmark, error) {
	query :=
		`SELECT id, user_id, title, description, link, created_at, updated_at
		 FROM bookmarks
		 WHERE user_id = $1
		 ORDER BY id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select bookmarks: %w", err)
	}
	defer rows.Close()

	result := []*models.Bookmark{}
	for rows.Next() {
		var item models.Bookmark
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Description,
			&item.Link, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	query :=
		`UPDATE bookmarks
		 SET title = $2, description = $3, link = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		bookmark.ID, bookmark.Title, bookmark.Description, bookmark.Link).
		Scan(&bookmark.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return bookmark, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM bookmarks WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
