// Package migration applies golang-migrate schemas for any database driver.
package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"
)

// Apply runs every pending migration and logs the resulting schema version.
// An up-to-date schema is not an error.
func Apply(m *migrate.Migrate, driver string) error {
	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run %s migrations: %w", driver, upErr)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read %s schema version: %w", driver, err)
	}
	if dirty {
		return fmt.Errorf("%s schema is dirty at version %d", driver, version)
	}

	log.Info().
		Str("driver", driver).
		Uint("version", version).
		Bool("changed", upErr == nil).
		Msg("database schema up to date")

	return nil
}
