package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/rentwheels/internal/models"
)

type TokenRepository struct {
	db *sqlx.DB
}

const tokenColumns = `id, user_id, name, created_at, last_used_at, expires_at`

// Create stores an issued token. The caller assigns ID and ExpiresAt.
func (r *TokenRepository) Create(ctx context.Context, t *models.AccessToken) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	t.CreatedAt = now()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO access_tokens (id, user_id, name, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`), t.ID, t.UserID, t.Name, t.CreatedAt, t.ExpiresAt.UTC())
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *TokenRepository) Get(ctx context.Context, id string) (*models.AccessToken, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t models.AccessToken
	if err := get(ctx, r.db, &t, r.db.Rebind(`SELECT `+tokenColumns+` FROM access_tokens WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) ListByUser(ctx context.Context, userID int64) ([]models.AccessToken, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	tokens := []models.AccessToken{}
	err := r.db.SelectContext(ctx, &tokens, r.db.Rebind(`SELECT `+tokenColumns+` FROM access_tokens WHERE user_id = ? ORDER BY created_at`), userID)
	return tokens, err
}

// Touch records that the token authenticated a request at.
func (r *TokenRepository) Touch(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return execOne(ctx, r.db, r.db.Rebind(`UPDATE access_tokens SET last_used_at = ? WHERE id = ?`), at.UTC(), id)
}

// Delete revokes a single token.
func (r *TokenRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return execOne(ctx, r.db, r.db.Rebind(`DELETE FROM access_tokens WHERE id = ?`), id)
}

// DeleteExpired prunes tokens that expired before cutoff and returns how many were removed.
func (r *TokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM access_tokens WHERE expires_at < ?`), cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
