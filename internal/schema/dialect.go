package schema

import (
	"fmt"
	"strings"
)

// Dialect renders the database-specific parts of a statement.
type Dialect interface {
	Name() string
	Quote(ident string) string
	Placeholder(n int) string
	IdentityKey() string
	TypeName(t ColumnType) string
}

var (
	SQLite   Dialect = sqliteDialect{}
	Postgres Dialect = postgresDialect{}
)

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Quote(ident string) string { return quote(ident) }

func (sqliteDialect) Placeholder(int) string { return "?" }

func (sqliteDialect) IdentityKey() string { return "INTEGER PRIMARY KEY AUTOINCREMENT" }

func (sqliteDialect) TypeName(t ColumnType) string {
	switch t {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	default:
		return "TEXT"
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Quote(ident string) string { return quote(ident) }

func (postgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (postgresDialect) IdentityKey() string {
	return "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
}

func (postgresDialect) TypeName(t ColumnType) string {
	switch t {
	case Integer:
		return "BIGINT"
	case Real:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

// quote wraps an identifier in double quotes so mixed-case table names
// survive Postgres case folding.
func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
