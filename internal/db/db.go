// Package db provides database initialization and access for SQLite and
// Postgres backends.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/evcraddock/propdb/internal/schema"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// DefaultPath returns the default database path: ~/.propdb/properties.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".propdb", "properties.db"), nil
}

// DialectFor returns the SQL dialect spoken by a driver.
func DialectFor(driver string) (schema.Dialect, error) {
	switch driver {
	case DriverSQLite, "":
		return schema.SQLite, nil
	case DriverPostgres:
		return schema.Postgres, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q (want %s or %s)", driver, DriverSQLite, DriverPostgres)
}

// Open opens (or creates) a SQLite database at the given path,
// enables WAL mode and foreign keys, and runs migrations.
func Open(path string) (*sql.DB, error) {
	return OpenDriver(context.Background(), DriverSQLite, path)
}

// OpenDriver opens a database with the named driver, checks the connection
// and runs migrations. For SQLite the dsn is a file path.
func OpenDriver(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite && strings.HasPrefix(dsn, ":memory:") {
		dsn = sharedMemoryDSN(dsn)
	} else if driver == DriverSQLite {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, closeOnErr(db, fmt.Errorf("connecting to database: %w", err))
	}

	if driver == DriverSQLite {
		if err := configure(ctx, db); err != nil {
			return nil, closeOnErr(db, err)
		}
	}

	if err := migrate(ctx, db, dialect); err != nil {
		return nil, closeOnErr(db, fmt.Errorf("running migrations: %w", err))
	}

	return db, nil
}

// sharedMemoryDSN turns a ":memory:" dsn into a named in-memory database
// with a shared cache, so every pooled connection sees the same tables.
// Each call gets its own name.
func sharedMemoryDSN(dsn string) string {
	shared := fmt.Sprintf("file:propdb-%s?mode=memory&cache=shared", uuid.NewString())
	if params := strings.TrimPrefix(strings.TrimPrefix(dsn, ":memory:"), "?"); params != "" {
		shared += "&" + params
	}
	return shared
}

// closeOnErr closes db after a failed setup step and folds any close error
// into err.
func closeOnErr(db *sql.DB, err error) error {
	if closeErr := db.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}

// configure sets SQLite pragmas for WAL mode and foreign keys.
func configure(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}

	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}

	return nil
}
