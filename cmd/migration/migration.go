package migration

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

const migrationDir = "internal/migration"

// Run applies every pending up migration for the payments and tickets tables.
func Run(db *sql.DB, log *zap.Logger) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: filepath.Join(wd, migrationDir),
	}

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return fmt.Errorf("executing migrations: %w", err)
	}

	log.Info("Applied migrations", zap.Int("count", n))
	return nil
}
