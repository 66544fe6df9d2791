package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/evcraddock/propdb/internal/schema"
)

// postgresDSN returns a DSN whose search_path is a fresh schema dropped at
// cleanup. Tests using it are skipped unless PROPDB_TEST_PG_DSN is set.
func postgresDSN(t *testing.T) string {
	t.Helper()
	base := os.Getenv("PROPDB_TEST_PG_DSN")
	if base == "" {
		t.Skip("PROPDB_TEST_PG_DSN not set")
	}

	name := "propdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin, err := sql.Open(DriverPostgres, base)
	if err != nil {
		t.Fatalf("open admin connection: %v", err)
	}
	t.Cleanup(func() {
		if _, err := admin.Exec(fmt.Sprintf(`DROP SCHEMA IF EXISTS %q CASCADE`, name)); err != nil {
			t.Errorf("drop schema: %v", err)
		}
		if err := admin.Close(); err != nil {
			t.Errorf("close admin connection: %v", err)
		}
	})
	if _, err := admin.Exec(fmt.Sprintf(`CREATE SCHEMA %q`, name)); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	if strings.Contains(base, "://") {
		u, err := url.Parse(base)
		if err != nil {
			t.Fatalf("parse dsn: %v", err)
		}
		q := u.Query()
		q.Set("search_path", name)
		u.RawQuery = q.Encode()
		return u.String()
	}
	return base + " search_path=" + name
}

func openPostgres(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	d, err := OpenDriver(context.Background(), DriverPostgres, dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return d
}

func postgresColumns(t *testing.T, d *sql.DB) []string {
	t.Helper()
	rows, err := d.Query(`SELECT column_name FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = 'Property'
		ORDER BY ordinal_position`)
	if err != nil {
		t.Fatalf("query columns: %v", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			t.Errorf("close rows: %v", err)
		}
	}()

	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			t.Fatalf("scan column: %v", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate columns: %v", err)
	}
	return cols
}

func TestPostgresMigrations(t *testing.T) {
	dsn := postgresDSN(t)
	d := openPostgres(t, dsn)

	want := []string{"id", "address", "price", "size", "description"}
	if got := postgresColumns(t, d); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("columns = %v, want %v", got, want)
	}

	// A second open runs the migrations again against the same schema.
	openPostgres(t, dsn)
}

func TestPostgresIdentityKeyAssigned(t *testing.T) {
	d := openPostgres(t, postgresDSN(t))

	insert := schema.Property.InsertSQL(schema.Postgres)
	var first, second int64
	if err := d.QueryRow(insert, nil, nil, nil, nil).Scan(&first); err != nil {
		t.Fatalf("insert all-null row: %v", err)
	}
	if err := d.QueryRow(insert, "1 Elm St", 1.5, 2.5, "x").Scan(&second); err != nil {
		t.Fatalf("insert second row: %v", err)
	}
	if first == 0 || second <= first {
		t.Errorf("ids = %d, %d; want increasing non-zero", first, second)
	}
}

func TestPostgresMigrationAddsMissingColumn(t *testing.T) {
	dsn := postgresDSN(t)

	raw, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	if _, err := raw.Exec(`CREATE TABLE "Property" ("id" BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY, "address" TEXT, "price" DOUBLE PRECISION, "size" DOUBLE PRECISION)`); err != nil {
		t.Fatalf("create old table: %v", err)
	}
	if err := raw.Close(); err != nil {
		t.Fatalf("close raw: %v", err)
	}

	d := openPostgres(t, dsn)
	cols := postgresColumns(t, d)
	if cols[len(cols)-1] != "description" {
		t.Errorf("columns = %v, want description added", cols)
	}
}
