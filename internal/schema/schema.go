// Package schema describes how record types map onto relational tables and
// renders the SQL each supported database needs for them.
package schema

import (
	"fmt"
	"strings"
)

// ColumnType is the storage class of a column.
type ColumnType int

const (
	Integer ColumnType = iota
	Real
	Text
)

// Column is a single non-key column.
type Column struct {
	Name string
	Type ColumnType
}

// Table maps a record type onto a table whose primary key is generated by
// the database on insert.
type Table struct {
	Name    string
	Key     string
	Columns []Column
}

// ColumnNames returns the non-key column names in mapping order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// CreateSQL returns an idempotent CREATE TABLE statement.
func (t Table) CreateSQL(d Dialect) string {
	defs := []string{fmt.Sprintf("%s %s", d.Quote(t.Key), d.IdentityKey())}
	for _, c := range t.Columns {
		defs = append(defs, fmt.Sprintf("%s %s", d.Quote(c.Name), d.TypeName(c.Type)))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		d.Quote(t.Name), strings.Join(defs, ",\n\t"))
}

// InsertSQL returns an INSERT for every non-key column that returns the
// generated key.
func (t Table) InsertSQL(d Dialect) string {
	cols := make([]string, len(t.Columns))
	params := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = d.Quote(c.Name)
		params[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		d.Quote(t.Name), strings.Join(cols, ", "), strings.Join(params, ", "), d.Quote(t.Key))
}

// SelectSQL returns a SELECT of the key followed by every column, with no
// WHERE clause.
func (t Table) SelectSQL(d Dialect) string {
	cols := []string{d.Quote(t.Key)}
	for _, c := range t.Columns {
		cols = append(cols, d.Quote(c.Name))
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), d.Quote(t.Name))
}

// UpdateSQL returns an UPDATE of every column by key. The key is the last
// parameter.
func (t Table) UpdateSQL(d Dialect) string {
	sets := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		sets[i] = fmt.Sprintf("%s = %s", d.Quote(c.Name), d.Placeholder(i+1))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		d.Quote(t.Name), strings.Join(sets, ", "), d.Quote(t.Key), d.Placeholder(len(t.Columns)+1))
}

// DeleteSQL returns a DELETE by key.
func (t Table) DeleteSQL(d Dialect) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		d.Quote(t.Name), d.Quote(t.Key), d.Placeholder(1))
}
