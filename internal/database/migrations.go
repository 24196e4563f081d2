package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Migrate runs all database migrations.
func (db *DB) Migrate(ctx context.Context) error {
	log.Info().Msg("Running database migrations")

	_, err := db.exec(ctx, "create migrations table", `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	if err := db.queryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get current migration version: %w", db.observe("migration version", err))
	}

	log.Debug().Int("current_version", currentVersion).Msg("Current schema version")

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}
		log.Info().Int("version", migration.Version).Str("name", migration.Name).Msg("Applying migration")

		// MySQL DDL commits implicitly, so statements run outside a
		// transaction; the version row is recorded last.
		for i, stmt := range splitSQLStatements(migration.SQL) {
			if _, err := db.exec(ctx, "apply migration", stmt); err != nil {
				return fmt.Errorf("migration %d statement %d failed: %w", migration.Version, i+1, err)
			}
		}
		if _, err := db.exec(ctx, "record migration",
			`INSERT INTO schema_migrations (version) VALUES (?)`, migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	log.Info().Msg("Database migrations complete")
	return nil
}

type migration struct {
	Version int
	Name    string
	SQL     string
}

// splitSQLStatements splits a SQL string into individual statements,
// skipping comments and empty statements.
func splitSQLStatements(sql string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(sql, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" && stmt != ";" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		statements = append(statements, remaining)
	}

	return statements
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "user_table",
		SQL: `
			-- User records; password holds a bcrypt hash
			CREATE TABLE IF NOT EXISTS user (
				id VARCHAR(64) NOT NULL,
				username VARCHAR(255) NOT NULL,
				email VARCHAR(255) NOT NULL,
				password VARCHAR(255) NOT NULL,
				PRIMARY KEY (id)
			);
		`,
	},
}
