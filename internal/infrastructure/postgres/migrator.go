package postgres

import (
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/mdci-projets/bank-account/internal/infrastructure/migration"
)

// MigrationsDir returns the postgres migrations directory under root.
func MigrationsDir(root string) string {
	return filepath.Join(root, "postgres")
}

// RunMigrations applies the migrations found in migrationsPath to the
// database at databaseURL.
func RunMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	return migration.Apply(m, "postgres")
}
