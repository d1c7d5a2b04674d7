package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/rentwheels/internal/models"
)

type UserRepository struct {
	db *sqlx.DB
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

// Create inserts u and fills in its ID and timestamps.
// Returns ErrDuplicate when the email is already registered.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ts := now()
	id, err := insertReturningID(ctx, r.db, r.db.Rebind(`
		INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`), u.Name, u.Email, u.Password, u.Role, ts, ts)
	if err != nil {
		return err
	}
	u.ID = id
	u.CreatedAt = ts
	u.UpdatedAt = ts
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u models.User
	if err := get(ctx, r.db, &u, r.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u models.User
	if err := get(ctx, r.db, &u, r.db.Rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`), email); err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailTaken reports whether another user (not excludeID) holds email.
// Pass 0 to check against every user.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM users WHERE email = ? AND id <> ?`), email, excludeID)
	return n > 0, err
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`)
	return users, err
}

// Update writes the mutable profile fields of u (name, email, password hash).
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	u.UpdatedAt = now()
	return execOne(ctx, r.db, r.db.Rebind(`
		UPDATE users
		SET name = ?, email = ?, password_hash = ?, updated_at = ?
		WHERE id = ?
	`), u.Name, u.Email, u.Password, u.UpdatedAt, u.ID)
}

// Delete removes the user; tokens and owned records cascade.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return execOne(ctx, r.db, r.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
}
