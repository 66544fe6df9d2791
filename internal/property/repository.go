package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/evcraddock/propdb/internal/schema"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("property not found")

// notFound returns an error that reads "property <id> not found" and
// matches ErrNotFound.
func notFound(id int64) error {
	return fmt.Errorf("property %d not found: %w", id, ErrNotFound)
}

// Repository provides CRUD operations for properties.
type Repository struct {
	db      *sql.DB
	dialect schema.Dialect
}

// NewRepository creates a property repository over db, which speaks dialect.
func NewRepository(db *sql.DB, dialect schema.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// Insert stores a new property and returns it with its generated ID.
// Any ID already set on p is ignored.
func (r *Repository) Insert(ctx context.Context, p *Property) (*Property, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, Table.InsertSQL(r.dialect), columnValues(p)...).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("inserting property: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID returns a property by its ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Property, error) {
	query := fmt.Sprintf("%s WHERE %s = %s",
		Table.SelectSQL(r.dialect), r.dialect.Quote(Table.Key), r.dialect.Placeholder(1))
	row := r.db.QueryRowContext(ctx, query, id)

	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying property %d: %w", id, err)
	}

	return p, nil
}

// ListOptions controls filtering for List. Zero values mean no filter.
type ListOptions struct {
	MinPrice *float64
	MaxPrice *float64
	Query    string // case-insensitive match on address or description
	Limit    int
}

// List returns properties ordered by ID, optionally filtered.
func (r *Repository) List(ctx context.Context, opts ListOptions) (properties []*Property, err error) {
	d := r.dialect
	var args []interface{}
	var conditions []string

	next := func(v interface{}) string {
		args = append(args, v)
		return d.Placeholder(len(args))
	}

	if opts.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("%s >= %s", d.Quote("price"), next(*opts.MinPrice)))
	}
	if opts.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("%s <= %s", d.Quote("price"), next(*opts.MaxPrice)))
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(%s) LIKE %s OR LOWER(%s) LIKE %s)",
			d.Quote("address"), next(pattern), d.Quote("description"), next(pattern)))
	}

	query := Table.SelectSQL(d)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + d.Quote(Table.Key)
	if opts.Limit > 0 {
		query += " LIMIT " + next(opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}

	return properties, nil
}

// Update replaces every column of the stored record with p's values.
// p must carry an ID.
func (r *Repository) Update(ctx context.Context, p *Property) (*Property, error) {
	if p.id == nil {
		return nil, errors.New("updating property: record has no ID")
	}
	id := *p.id

	args := append(columnValues(p), id)
	result, err := r.db.ExecContext(ctx, Table.UpdateSQL(r.dialect), args...)
	if err != nil {
		return nil, fmt.Errorf("updating property %d: %w", id, err)
	}

	if err := checkAffected(result, id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes a property by ID.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, Table.DeleteSQL(r.dialect), id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	return checkAffected(result, id)
}

// checkAffected returns a not-found error when result touched no rows.
func checkAffected(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return notFound(id)
	}
	return nil
}
