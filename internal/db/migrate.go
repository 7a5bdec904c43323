package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema at dbUrl up to date. It returns false when there
// was nothing to apply.
func Migrate(dbUrl string) (bool, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return false, fmt.Errorf("load migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrationURL(dbUrl))
	if err != nil {
		return false, fmt.Errorf("migration setup: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("migrate up: %w", err)
	}
	return true, nil
}

// migrationURL rewrites a postgres URL to the scheme registered by the pgx
// migration driver.
func migrationURL(dbUrl string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dbUrl, scheme) {
			return "pgx5://" + strings.TrimPrefix(dbUrl, scheme)
		}
	}
	return dbUrl
}
