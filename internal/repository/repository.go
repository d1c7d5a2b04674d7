// Package repository persists marketplace records through sqlx. Queries are
// written with ? placeholders and rebound for the connected driver.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrOverlap indicates a booking collides with an active booking of the same vehicle.
	ErrOverlap = errors.New("booking overlaps an existing booking")
)

const (
	queryTimeout = 3 * time.Second
	listTimeout  = 5 * time.Second
)

// Store groups the repositories sharing one connection pool.
type Store struct {
	DB        *sqlx.DB
	Users     *UserRepository
	Tokens    *TokenRepository
	Vehicles  *VehicleRepository
	Bookings  *BookingRepository
	Reviews   *ReviewRepository
	Bookmarks *BookmarkRepository
}

func New(db *sqlx.DB) *Store {
	return &Store{
		DB:        db,
		Users:     &UserRepository{db: db},
		Tokens:    &TokenRepository{db: db},
		Vehicles:  &VehicleRepository{db: db},
		Bookings:  &BookingRepository{db: db},
		Reviews:   &ReviewRepository{db: db},
		Bookmarks: &BookmarkRepository{db: db},
	}
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.DB.PingContext(ctx)
}

// now is the clock used for timestamps; UTC with microsecond precision so
// values survive a round trip through either driver unchanged.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// insertReturningID runs an INSERT ... RETURNING id statement.
func insertReturningID(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

// get scans one row into dest, mapping sql.ErrNoRows to ErrNotFound.
func get(ctx context.Context, q sqlx.QueryerContext, dest any, query string, args ...any) error {
	err := sqlx.GetContext(ctx, q, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, e sqlx.ExecerContext, query string, args ...any) error {
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// Page bounds a list query.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() Page {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
