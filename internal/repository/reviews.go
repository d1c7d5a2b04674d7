package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/rentwheels/internal/models"
)

type ReviewRepository struct {
	db *sqlx.DB
}

const reviewColumns = `id, vehicle_id, renter_id, rating, comment, created_at, updated_at`

// Create inserts a review. Returns ErrDuplicate when the renter already reviewed the vehicle.
func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ts := now()
	id, err := insertReturningID(ctx, r.db, r.db.Rebind(`
		INSERT INTO reviews (vehicle_id, renter_id, rating, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`), rv.VehicleID, rv.RenterID, rv.Rating, rv.Comment, ts, ts)
	if err != nil {
		return err
	}
	rv.ID = id
	rv.CreatedAt = ts
	rv.UpdatedAt = ts
	return nil
}

func (r *ReviewRepository) Get(ctx context.Context, id int64) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rv models.Review
	if err := get(ctx, r.db, &rv, r.db.Rebind(`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &rv, nil
}

// List returns reviews newest first, optionally for one vehicle.
func (r *ReviewRepository) List(ctx context.Context, vehicleID int64, p Page) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	p = p.normalize()
	reviews := []models.Review{}
	var err error
	if vehicleID != 0 {
		err = r.db.SelectContext(ctx, &reviews, r.db.Rebind(`SELECT `+reviewColumns+` FROM reviews WHERE vehicle_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`), vehicleID, p.Limit, p.Offset)
	} else {
		err = r.db.SelectContext(ctx, &reviews, r.db.Rebind(`SELECT `+reviewColumns+` FROM reviews ORDER BY id DESC LIMIT ? OFFSET ?`), p.Limit, p.Offset)
	}
	return reviews, err
}

func (r *ReviewRepository) Update(ctx context.Context, rv *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rv.UpdatedAt = now()
	return execOne(ctx, r.db, r.db.Rebind(`UPDATE reviews SET rating = ?, comment = ?, updated_at = ? WHERE id = ?`),
		rv.Rating, rv.Comment, rv.UpdatedAt, rv.ID)
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return execOne(ctx, r.db, r.db.Rebind(`DELETE FROM reviews WHERE id = ?`), id)
}
