package db

import (
	"embed"
	"fmt"
	stdfs "io/fs"
	"regexp"
	"sort"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationsFS embed.FS

type migration struct {
	version  int
	name     string
	upFile   string
	downFile string
}

var migFileRe = regexp.MustCompile(`^([0-9]{4})_(.+)\.(up|down)\.sql$`)

// loadMigrations reads migrations/<dialect>/NNNN_name.{up,down}.sql.
func loadMigrations(dialect string) (map[int]migration, error) {
	dir := "migrations/" + dialect
	list, err := stdfs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	entries := map[int]migration{}
	for _, de := range list {
		if de.IsDir() {
			continue
		}
		m := migFileRe.FindStringSubmatch(de.Name())
		if m == nil {
			continue
		}
		var ver int
		if _, err := fmt.Sscanf(m[1], "%04d", &ver); err != nil {
			continue
		}
		item := entries[ver]
		item.version = ver
		item.name = m[2]
		p := dir + "/" + de.Name()
		if m[3] == "up" {
			item.upFile = p
		} else {
			item.downFile = p
		}
		entries[ver] = item
	}
	return entries, nil
}

func ensureMigrationsTable(db *sqlx.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`)
	return err
}

// Migrate applies every migration for the connection's dialect that has not
// been recorded in schema_migrations, in version order, one transaction each.
func Migrate(db *sqlx.DB) error {
	migs, err := loadMigrations(Dialect(db))
	if err != nil {
		return err
	}
	if err := ensureMigrationsTable(db); err != nil {
		return err
	}

	var applied []int
	if err := db.Select(&applied, `SELECT version FROM schema_migrations`); err != nil {
		return err
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	versions := make([]int, 0, len(migs))
	for v := range migs {
		versions = append(versions, v)
	}
	sort.Ints(versions)

	for _, v := range versions {
		if done[v] {
			continue
		}
		m := migs[v]
		if m.upFile == "" {
			return fmt.Errorf("missing up migration for version %04d", v)
		}
		text, err := migrationsFS.ReadFile(m.upFile)
		if err != nil {
			return err
		}
		tx, err := db.Beginx()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(text)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %04d failed: %w", v, err)
		}
		if _, err := tx.Exec(tx.Rebind(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`), v, m.name); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// RollbackLast reverts the most recently applied migration.
func RollbackLast(db *sqlx.DB) error {
	if err := ensureMigrationsTable(db); err != nil {
		return err
	}
	var versions []int
	if err := db.Select(&versions, `SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1`); err != nil {
		return err
	}
	if len(versions) == 0 {
		return nil
	}
	version := versions[0]

	migs, err := loadMigrations(Dialect(db))
	if err != nil {
		return err
	}
	m, ok := migs[version]
	if !ok || m.downFile == "" {
		return fmt.Errorf("no down migration found for version %d", version)
	}
	text, err := migrationsFS.ReadFile(m.downFile)
	if err != nil {
		return err
	}
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(text)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(tx.Rebind(`DELETE FROM schema_migrations WHERE version = ?`), version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
