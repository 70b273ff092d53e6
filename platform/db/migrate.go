package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"

	"railspace_backend/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

func openForMigrations(cfg config.DatabaseConfig) (*sql.DB, error) {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("pgx", cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}
	return sqlDB, nil
}

// RunMigrations applies all pending embedded migrations.
func RunMigrations(ctx context.Context, cfg config.DatabaseConfig) error {
	if !cfg.IsDatabaseConfigured() {
		return nil
	}

	sqlDB, err := openForMigrations(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// MigrationStatus writes the applied/pending state of every embedded migration to w.
func MigrationStatus(ctx context.Context, cfg config.DatabaseConfig, w io.Writer) error {
	sqlDB, err := openForMigrations(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	current, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}

	migrations, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("collect migrations: %w", err)
	}

	for _, m := range migrations {
		state := "pending"
		if m.Version <= current {
			state = "applied"
		}
		if _, err := fmt.Fprintf(w, "%-8s %d %s\n", state, m.Version, m.Source); err != nil {
			return err
		}
	}
	return nil
}
