package migrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrations holds every schema change. Each file registers itself, and bun
// names the migration after that file.
var Migrations = migrate.NewMigrations()

// Apply brings the schema up to date and returns the group it applied.
func Apply(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return group, nil
}

// sqlSteps runs up on the way in and drops the tables, in the given order, on the way out.
func sqlSteps(up string, tables ...string) (migrate.MigrationFunc, migrate.MigrationFunc) {
	apply := func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, up)
		return err
	}
	rollback := func(ctx context.Context, db *bun.DB) error {
		stmts := make([]string, 0, len(tables))
		for _, table := range tables {
			stmts = append(stmts, "DROP TABLE IF EXISTS "+table)
		}
		_, err := db.ExecContext(ctx, strings.Join(stmts, "; "))
		return err
	}
	return apply, rollback
}
