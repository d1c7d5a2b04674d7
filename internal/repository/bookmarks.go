package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/rentwheels/internal/models"
)

type BookmarkRepository struct {
	db *sqlx.DB
}

// Create inserts a bookmark. Returns ErrDuplicate when the vehicle is already bookmarked.
func (r *BookmarkRepository) Create(ctx context.Context, b *models.Bookmark) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ts := now()
	id, err := insertReturningID(ctx, r.db, r.db.Rebind(`
		INSERT INTO bookmarks (user_id, vehicle_id, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`), b.UserID, b.VehicleID, ts)
	if err != nil {
		return err
	}
	b.ID = id
	b.CreatedAt = ts
	return nil
}

func (r *BookmarkRepository) Get(ctx context.Context, id int64) (*models.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var b models.Bookmark
	if err := get(ctx, r.db, &b, r.db.Rebind(`SELECT id, user_id, vehicle_id, created_at FROM bookmarks WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookmarkRepository) ListByUser(ctx context.Context, userID int64) ([]models.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	bookmarks := []models.Bookmark{}
	err := r.db.SelectContext(ctx, &bookmarks, r.db.Rebind(`SELECT id, user_id, vehicle_id, created_at FROM bookmarks WHERE user_id = ? ORDER BY id DESC`), userID)
	return bookmarks, err
}

func (r *BookmarkRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return execOne(ctx, r.db, r.db.Rebind(`DELETE FROM bookmarks WHERE id = ?`), id)
}
