package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/rentwheels/internal/models"
)

type VehicleRepository struct {
	db *sqlx.DB
}

const vehicleColumns = `id, owner_id, make, model, year, daily_rate, location, description, available, created_at, updated_at`

// VehicleFilter narrows a vehicle listing. Zero values do not filter.
type VehicleFilter struct {
	OwnerID   int64
	Location  string
	Available *bool
	Page      Page
}

func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ts := now()
	id, err := insertReturningID(ctx, r.db, r.db.Rebind(`
		INSERT INTO vehicles (owner_id, make, model, year, daily_rate, location, description, available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), v.OwnerID, v.Make, v.Model, v.Year, v.DailyRate, v.Location, v.Description, v.Available, ts, ts)
	if err != nil {
		return err
	}
	v.ID = id
	v.CreatedAt = ts
	v.UpdatedAt = ts
	return nil
}

func (r *VehicleRepository) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var v models.Vehicle
	if err := get(ctx, r.db, &v, r.db.Rebind(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context, f VehicleFilter) ([]models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var (
		where []string
		args  []any
	)
	if f.OwnerID != 0 {
		where = append(where, "owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(loc)+"%")
	}
	if f.Available != nil {
		where = append(where, "available = ?")
		args = append(args, *f.Available)
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	p := f.Page.normalize()
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset)

	vehicles := []models.Vehicle{}
	err := r.db.SelectContext(ctx, &vehicles, r.db.Rebind(query), args...)
	return vehicles, err
}

func (r *VehicleRepository) Update(ctx context.Context, v *models.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	v.UpdatedAt = now()
	return execOne(ctx, r.db, r.db.Rebind(`
		UPDATE vehicles
		SET make = ?, model = ?, year = ?, daily_rate = ?, location = ?, description = ?, available = ?, updated_at = ?
		WHERE id = ?
	`), v.Make, v.Model, v.Year, v.DailyRate, v.Location, v.Description, v.Available, v.UpdatedAt, v.ID)
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return execOne(ctx, r.db, r.db.Rebind(`DELETE FROM vehicles WHERE id = ?`), id)
}
