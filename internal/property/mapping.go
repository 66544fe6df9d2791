package property

import (
	"database/sql"

	"github.com/evcraddock/propdb/internal/schema"
)

// Table is the relational mapping for Property records.
var Table = schema.Property

// columnValues returns the record's column values in Table.Columns order.
// Unset fields become SQL NULL.
func columnValues(p *Property) []interface{} {
	return []interface{}{p.address, p.price, p.size, p.description}
}

// scanProperty scans a property from a row selected with Table.SelectSQL.
func scanProperty(row interface{ Scan(...interface{}) error }) (*Property, error) {
	var id int64
	var address, description sql.NullString
	var price, size sql.NullFloat64

	if err := row.Scan(&id, &address, &price, &size, &description); err != nil {
		return nil, err
	}

	p := &Property{id: &id}
	if address.Valid {
		p.address = &address.String
	}
	if price.Valid {
		p.price = &price.Float64
	}
	if size.Valid {
		p.size = &size.Float64
	}
	if description.Valid {
		p.description = &description.String
	}

	return p, nil
}
