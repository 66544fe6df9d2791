package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/evcraddock/propdb/internal/schema"
)

// tables lists every mapped table, created in order.
var tables = []schema.Table{
	schema.Property,
}

// migrate creates missing tables, then adds any mapped column an older
// table is missing.
func migrate(ctx context.Context, db *sql.DB, d schema.Dialect) error {
	for i, t := range tables {
		if _, err := db.ExecContext(ctx, t.CreateSQL(d)); err != nil {
			return fmt.Errorf("migration %d (%s): %w", i, t.Name, err)
		}

		for _, c := range t.Columns {
			if err := addColumnIfNotExists(ctx, db, d, t.Name, c); err != nil {
				return fmt.Errorf("adding %s.%s: %w", t.Name, c.Name, err)
			}
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(ctx context.Context, db *sql.DB, d schema.Dialect, table string, col schema.Column) error {
	if d == schema.Postgres {
		_, err := db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s",
			d.Quote(table), d.Quote(col.Name), d.TypeName(col.Type)))
		return err
	}

	exists, err := sqliteHasColumn(ctx, db, table, col.Name)
	if err != nil || exists {
		return err
	}

	slog.Info("adding column", "table", table, "column", col.Name)
	_, err = db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s",
		d.Quote(table), d.Quote(col.Name), d.TypeName(col.Type)))
	return err
}

// sqliteHasColumn reports whether table has the named column.
func sqliteHasColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", schema.SQLite.Quote(table)))
	if err != nil {
		return false, fmt.Errorf("checking table info: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			slog.Warn("closing rows", "error", cerr)
		}
	}()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("iterating columns: %w", err)
	}

	return false, nil
}
