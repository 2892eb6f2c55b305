package db

import (
	"cmp"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/terraincognita07/ovumcy/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_[\w-]+\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

const schemaMigrationsDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type migration struct {
	version    string
	order      int
	name       string
	statements []string
}

// ApplyMigrations runs every embedded migration not yet recorded in
// schema_migrations and returns the names it applied, in order.
func ApplyMigrations(database *gorm.DB) ([]string, error) {
	return applyMigrations(database, migrations.Files)
}

func applyMigrations(database *gorm.DB, files fs.FS) ([]string, error) {
	if err := database.Exec(schemaMigrationsDDL).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := readMigrations(files)
	if err != nil {
		return nil, err
	}
	applied, err := appliedMigrationVersions(database)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(pending))
	for _, next := range pending {
		if applied[next.version] {
			continue
		}
		if err := runMigration(database, next); err != nil {
			return names, err
		}
		names = append(names, next.name)
	}
	return names, nil
}

// readMigrations parses NNN_name.sql files from the root of files, ordered by
// numeric version. Other files are ignored.
func readMigrations(files fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	found := make([]migration, 0, len(entries))
	byVersion := make(map[string]string, len(entries))
	for _, entry := range entries {
		match := migrationNamePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || match == nil {
			continue
		}

		version := match[1]
		if previous, duplicate := byVersion[version]; duplicate {
			return nil, fmt.Errorf("migration version %s used by %s and %s", version, previous, entry.Name())
		}
		byVersion[version] = entry.Name()

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", entry.Name(), err)
		}
		raw, err := fs.ReadFile(files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		statements := splitSQLStatements(string(raw))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s has no statements", entry.Name())
		}

		found = append(found, migration{
			version:    version,
			order:      order,
			name:       entry.Name(),
			statements: statements,
		})
	}

	slices.SortFunc(found, func(a, b migration) int {
		return cmp.Compare(a.order, b.order)
	})
	return found, nil
}

func appliedMigrationVersions(database *gorm.DB) (map[string]bool, error) {
	var versions []string
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}
	return applied, nil
}

// runMigration executes one file and records it in the same transaction.
// ADD COLUMN statements for columns that already exist are skipped, which lets
// databases created by older AutoMigrate builds adopt the embedded history.
func runMigration(database *gorm.DB, next migration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range next.statements {
			exists, err := addedColumnExists(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", next.name, err)
			}
			if exists {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %w", next.name, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			next.version,
			next.name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", next.name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func addedColumnExists(database *gorm.DB, statement string) (bool, error) {
	match := addColumnPattern.FindStringSubmatch(statement)
	if match == nil {
		return false, nil
	}
	table := unquoteIdentifier(match[1])
	column := unquoteIdentifier(match[2])

	var columns []string
	query := fmt.Sprintf(`SELECT name FROM pragma_table_info('%s')`, strings.ReplaceAll(table, "'", "''"))
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load columns of %s: %w", table, err)
	}
	return slices.ContainsFunc(columns, func(name string) bool {
		return strings.EqualFold(name, column)
	}), nil
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(strings.TrimSpace(identifier), "\"`[]")
}
