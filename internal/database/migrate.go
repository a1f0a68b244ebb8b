package database

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed sql/mysql/*.sql sql/sqlite/*.sql
var migrationFiles embed.FS

// migration is one versioned schema step for a single dialect.
type migration struct {
	version int
	name    string
	up      string
}

// Migrate applies all pending up-migrations for the given driver
// (DriverMySQL or DriverSQLite). Applied versions are recorded in
// schema_migrations so the function is safe to run at every startup.
func Migrate(db *sql.DB, driver string) error {
	dialect := "mysql"
	if driver == DriverSQLite {
		dialect = "sqlite"
	}

	migrations, err := loadMigrations(dialect)
	if err != nil {
		return err
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER NOT NULL PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, m.version).Scan(&n)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.version, err)
		}
		if n > 0 {
			continue
		}
		for _, stmt := range splitStatements(m.up) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
			}
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
	}
	return nil
}

// loadMigrations reads the embedded up-migrations for one dialect, sorted by
// version. Filenames follow NNNN_name_up.sql.
func loadMigrations(dialect string) ([]migration, error) {
	dir := path.Join("sql", dialect)
	entries, err := migrationFiles.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migration directory: %w", err)
	}

	var migrations []migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, "_up.sql") {
			continue
		}
		parts := strings.SplitN(name, "_", 2)
		version, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("bad migration filename %q", name)
		}
		content, err := migrationFiles.ReadFile(path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, migration{version: version, name: name, up: string(content)})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].version < migrations[j].version })
	return migrations, nil
}

// splitStatements breaks a migration file into individual statements. The
// MySQL driver rejects multi-statement Exec by default. Migration SQL must
// not contain literal semicolons inside values.
func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}
