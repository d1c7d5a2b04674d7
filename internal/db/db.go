package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/vaughan-dsouza/rentwheels/internal/config"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Connect opens the configured database, checks it is reachable and applies
// pending migrations for its dialect.
func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Driver {
	case "pgx", "":
		db, err = openPostgres(cfg)
	case "sqlite":
		db, err = openSQLite(cfg.URL)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	// ---- Connectivity Check ----
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db: failed to connect: %w", err)
	}

	// ---- Health Check Query ----
	var tmp int
	if err := db.QueryRow("SELECT 1").Scan(&tmp); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db: health check failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db: migrate: %w", err)
	}
	return db, nil
}

func openPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	// Parse DSN → pgx config struct
	pcfg, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}

	// Fail fast on startup if PG is unreachable
	pcfg.ConnectTimeout = 5 * time.Second
	// Booking dates are DATE columns compared against UTC midnights.
	pcfg.RuntimeParams["timezone"] = "UTC"

	db := sqlx.NewDb(stdlib.OpenDB(*pcfg), "pgx")

	// ---- Connection Pool Settings ----
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(cfg.MaxLifetime)
	return db, nil
}

// openSQLite opens a modernc SQLite database. A single connection is kept
// open for the lifetime of the pool so ":memory:" databases survive and
// writers never contend for the file lock.
func openSQLite(dsn string) (*sqlx.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = ":memory:"
	}
	sqlDB, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("db: open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	return sqlx.NewDb(sqlDB, "sqlite"), nil
}

func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Dialect returns the migration dialect for a sqlx driver name.
func Dialect(db *sqlx.DB) string {
	if db.DriverName() == "sqlite" {
		return "sqlite"
	}
	return "postgres"
}
