package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/mdci-projets/bank-account/internal/infrastructure/migration"
)

// MigrationsDir returns the sqlite migrations directory under root.
func MigrationsDir(root string) string {
	return filepath.Join(root, "sqlite")
}

// RunMigrations applies pending migrations to db.
func RunMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	// m is not closed: closing it would close db as well.
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return migration.Apply(m, "sqlite")
}
