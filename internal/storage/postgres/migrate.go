package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationResult reports the schema state after Migrate.
type MigrationResult struct {
	Version  uint
	Dirty    bool
	NoChange bool
}

// Migrate applies the migrations in dir to the database at dsn.
// steps of 0 runs every pending migration in the given direction.
//
// Precondition: dir must contain golang-migrate numbered .up.sql/.down.sql files.
// Postcondition: Returns the resulting version, or an error if the run failed.
func Migrate(dsn, dir string, down bool, steps int) (MigrationResult, error) {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	switch {
	case steps > 0 && down:
		err = m.Steps(-steps)
	case steps > 0:
		err = m.Steps(steps)
	case down:
		err = m.Down()
	default:
		err = m.Up()
	}
	noChange := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !noChange {
		return MigrationResult{}, fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationResult{}, fmt.Errorf("reading version: %w", err)
	}
	return MigrationResult{Version: version, Dirty: dirty, NoChange: noChange}, nil
}
