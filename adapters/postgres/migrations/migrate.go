package migrations

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.sql
var migrationFiles embed.FS

// Migrator handles database schema migrations
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a new migrator
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// Up executes all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	files, err := findMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to find migration files: %w", err)
	}

	for _, file := range files {
		if applied[file.Version] {
			continue
		}

		if err := m.applyMigration(ctx, file); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Version, err)
		}
	}

	return nil
}

// Status returns applied and pending migration versions
func (m *Migrator) Status(ctx context.Context) (applied, pending []string, err error) {
	appliedSet, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	files, err := findMigrationFiles()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find migration files: %w", err)
	}

	for _, file := range files {
		if appliedSet[file.Version] {
			applied = append(applied, file.Version)
		} else {
			pending = append(pending, file.Version)
		}
	}
	return applied, pending, nil
}

// MigrationFile represents a migration file
type MigrationFile struct {
	Version string
	Name    string
}

// getAppliedMigrations returns map of applied migration versions
func (m *Migrator) getAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// calculateChecksum computes SHA256 checksum of migration content
func calculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// findMigrationFiles discovers embedded migration files, sorted by version
func findMigrationFiles() ([]MigrationFile, error) {
	entries, err := migrationFiles.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var files []MigrationFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		// Parse filename: 001_initial_schema.sql
		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) < 2 {
			continue // skip invalid filenames
		}

		files = append(files, MigrationFile{
			Version: parts[0],
			Name:    entry.Name(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Version < files[j].Version
	})

	return files, nil
}

// applyMigration executes a single migration file in a transaction
func (m *Migrator) applyMigration(ctx context.Context, file MigrationFile) error {
	sqlBytes, err := migrationFiles.ReadFile(file.Name)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	checksum := calculateChecksum(sqlBytes)

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)
	`, file.Version, checksum)
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}
