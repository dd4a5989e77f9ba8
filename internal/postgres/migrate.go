package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

const migrationsTable = "schema_migrations"

// Migration is a schema file that has not been applied yet
type Migration struct {
	Version string
	SQL     string
}

func (db *DB) ensureMigrationsTable(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationsTable+` (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// Pending lists the *.sql files in fsys that have not been recorded yet,
// in lexical order.
func (db *DB) Pending(ctx context.Context, fsys fs.FS) ([]Migration, error) {
	if err := db.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	var pending []Migration
	for _, file := range files {
		version := strings.TrimSuffix(file, ".sql")

		var exists bool
		if err := db.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM `+migrationsTable+` WHERE version = $1)`, version); err != nil {
			return nil, fmt.Errorf("failed to check migration %s: %w", version, err)
		}
		if exists {
			continue
		}

		body, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", version, err)
		}
		pending = append(pending, Migration{Version: version, SQL: string(body)})
	}

	return pending, nil
}

// Migrate applies every pending migration, each inside its own transaction
func (db *DB) Migrate(ctx context.Context, fsys fs.FS) ([]string, error) {
	pending, err := db.Pending(ctx, fsys)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, m := range pending {
		err := db.WithTx(ctx, func(ctx context.Context) error {
			q := db.Querier(ctx)
			if _, err := q.ExecContext(ctx, m.SQL); err != nil {
				return err
			}
			_, err := q.ExecContext(ctx, `INSERT INTO `+migrationsTable+` (version) VALUES ($1)`, m.Version)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("failed to apply migration %s: %w", m.Version, err)
		}

		db.logger.Infow("applied migration", "version", m.Version)
		applied = append(applied, m.Version)
	}

	return applied, nil
}
