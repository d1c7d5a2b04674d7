package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/rentwheels/internal/models"
)

type BookingRepository struct {
	db *sqlx.DB
}

const bookingColumns = `id, vehicle_id, renter_id, start_date, end_date, status, total_price, created_at, updated_at`

// BookingFilter narrows a booking listing. Zero values do not filter.
type BookingFilter struct {
	VehicleID int64
	RenterID  int64
	Status    models.BookingStatus
	Page      Page
}

// CreateWithNoOverlap inserts b unless an active booking of the same vehicle
// intersects its date range, in which case it returns ErrOverlap.
func (r *BookingRepository) CreateWithNoOverlap(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serialize bookings per vehicle. SQLite already holds a single writer.
	if tx.DriverName() != "sqlite" {
		var id int64
		if err := tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM vehicles WHERE id = ? FOR UPDATE`), b.VehicleID); err != nil {
			return err
		}
	}

	var overlapping int
	err = tx.GetContext(ctx, &overlapping, tx.Rebind(`
		SELECT COUNT(*) FROM bookings
		WHERE vehicle_id = ? AND status IN (?, ?)
		  AND start_date < ? AND end_date > ?
	`), b.VehicleID, models.BookingPending, models.BookingConfirmed, b.EndDate, b.StartDate)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return ErrOverlap
	}

	ts := now()
	id, err := insertReturningID(ctx, tx, tx.Rebind(`
		INSERT INTO bookings (vehicle_id, renter_id, start_date, end_date, status, total_price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), b.VehicleID, b.RenterID, b.StartDate, b.EndDate, b.Status, b.TotalPrice, ts, ts)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	b.ID = id
	b.CreatedAt = ts
	b.UpdatedAt = ts
	return nil
}

func (r *BookingRepository) Get(ctx context.Context, id int64) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var b models.Booking
	if err := get(ctx, r.db, &b, r.db.Rebind(`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var (
		where []string
		args  []any
	)
	if f.VehicleID != 0 {
		where = append(where, "vehicle_id = ?")
		args = append(args, f.VehicleID)
	}
	if f.RenterID != 0 {
		where = append(where, "renter_id = ?")
		args = append(args, f.RenterID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	p := f.Page.normalize()
	query += " ORDER BY start_date, id LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset)

	bookings := []models.Booking{}
	err := r.db.SelectContext(ctx, &bookings, r.db.Rebind(query), args...)
	return bookings, err
}

// UpdateStatus sets the status of booking id.
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *models.Booking, status models.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ts := now()
	if err := execOne(ctx, r.db, r.db.Rebind(`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`), status, ts, b.ID); err != nil {
		return err
	}
	b.Status = status
	b.UpdatedAt = ts
	return nil
}

// HasRented reports whether renterID holds a confirmed or completed booking of vehicleID.
func (r *BookingRepository) HasRented(ctx context.Context, renterID, vehicleID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`
		SELECT COUNT(*) FROM bookings
		WHERE renter_id = ? AND vehicle_id = ? AND status IN (?, ?)
	`), renterID, vehicleID, models.BookingConfirmed, models.BookingCompleted)
	return n > 0, err
}
