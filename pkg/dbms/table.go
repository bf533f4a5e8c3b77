package dbms

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// idColumn is the system column holding the row identifier. It is not
// part of any schema and is assigned at insert time.
const idColumn = "_id"

// Row is a record mapping column names to validated values, plus the
// system _id column.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	return Row(maps.Clone(map[string]any(r)))
}

// ID returns the row's identifier, or "" if unset.
func (r Row) ID() string {
	id, _ := r[idColumn].(string)

	return id
}

// Table owns a fixed schema and an ordered sequence of rows, and
// enforces the schema on every mutation. Row order is insertion order
// until SortBy is invoked.
//
// Row identifiers are expected unique but not enforced: when a caller
// supplies a duplicate _id, lookups match the first occurrence in
// physical order.
type Table struct {
	name   string
	schema *Schema
	rows   []Row
}

// NewTable creates a table with the given column specs. Any descriptor
// resolution failure aborts the whole creation.
func NewTable(name string, columns []ColumnSpec) (*Table, error) {
	schema, err := newSchema(columns)
	if err != nil {
		return nil, err
	}

	return &Table{name: name, schema: schema}, nil
}

// Name returns the table's immutable identity.
func (t *Table) Name() string { return t.name }

// Schema returns the table's schema.
func (t *Table) Schema() *Schema { return t.schema }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Insert validates row against the schema and appends it. Every schema
// column must be present; unknown extra columns are silently dropped.
// The _id is taken from the input when non-empty, else generated.
// Returns a copy of the stored row.
func (t *Table) Insert(row Row) (Row, error) {
	return t.insertRow(row, false)
}

// insertRow is the shared insert path. allowMissing is used by FromMap
// reconstruction, where columns absent from a stored payload are
// silently omitted rather than erroring.
func (t *Table) insertRow(row Row, allowMissing bool) (Row, error) {
	prepared, err := t.validateRow(row, allowMissing)
	if err != nil {
		return nil, err
	}

	t.rows = append(t.rows, prepared)

	return prepared.Clone(), nil
}

// Update merges partial values over the row with the given id, in
// place. Only columns present in values are validated; untouched
// columns keep their stored values. The _id is never altered, even if
// present in values. Returns a copy of the updated row.
func (t *Table) Update(id string, values Row) (Row, error) {
	row, err := t.findRow(id)
	if err != nil {
		return nil, err
	}

	merged := make(Row, len(values))

	for _, col := range t.schema.columns {
		raw, ok := values[col.Name]
		if !ok {
			continue
		}

		validated, err := col.Type.Validate(raw)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}

		merged[col.Name] = validated
	}

	maps.Copy(row, merged)

	return row.Clone(), nil
}

// Delete removes the first row matching id.
func (t *Table) Delete(id string) error {
	for i, row := range t.rows {
		if row.ID() == id {
			t.rows = slices.Delete(t.rows, i, i+1)

			return nil
		}
	}

	return fmt.Errorf("%w: _id=%q", ErrRowNotFound, id)
}

// Get returns a copy of the first row matching id.
func (t *Table) Get(id string) (Row, error) {
	row, err := t.findRow(id)
	if err != nil {
		return nil, err
	}

	return row.Clone(), nil
}

// ListRows returns copies of all rows in current physical order.
func (t *Table) ListRows() []Row {
	out := make([]Row, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.Clone()
	}

	return out
}

// SortBy stably sorts rows in place by the stored value of a schema
// column, using the value domain's natural ordering (numeric for
// integer/real, lexicographic for text). Only schema columns are
// sortable; _id is not a schema column.
func (t *Table) SortBy(column string, descending bool) error {
	if _, ok := t.schema.FieldType(column); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	sort.SliceStable(t.rows, func(i, j int) bool {
		cmp, err := compareValues(t.rows[i][column], t.rows[j][column])
		if err != nil {
			return false
		}

		if descending {
			return cmp > 0
		}

		return cmp < 0
	})

	return nil
}

// ToMap serializes the table: name, schema (tagged type specs per
// column), and rows (plain values including _id). Rows are copied, so
// later table mutations are not observable through the result.
func (t *Table) ToMap() map[string]any {
	rows := make([]any, len(t.rows))
	for i, row := range t.rows {
		rows[i] = map[string]any(row.Clone())
	}

	return map[string]any{
		"name":   t.name,
		"schema": t.schema.ToMap(),
		"rows":   rows,
	}
}

// TableFromMap reconstructs a table from its serialized form. Every
// stored row is re-inserted through the schema, so rows are
// re-validated rather than blindly trusted. Reconstruction is lenient:
// columns absent from a row payload are silently omitted (live Insert
// stays strict).
func TableFromMap(payload map[string]any) (*Table, error) {
	name, ok := payload["name"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: table payload missing %q", ErrSchemaInvalid, "name")
	}

	schemaPayload, ok := payload["schema"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: table %q payload missing schema", ErrSchemaInvalid, name)
	}

	schema, err := schemaFromMap(schemaPayload)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", name, err)
	}

	table := &Table{name: name, schema: schema}

	rawRows, _ := payload["rows"].([]any)

	for i, rawRow := range rawRows {
		rowPayload, ok := rawRow.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: table %q row %d is not a mapping", ErrValidation, name, i)
		}

		prepared := make(Row, len(rowPayload))

		for _, col := range schema.columns {
			if value, ok := rowPayload[col.Name]; ok {
				prepared[col.Name] = value
			}
		}

		if id, ok := rowPayload[idColumn]; ok {
			prepared[idColumn] = id
		}

		if _, err := table.insertRow(prepared, true); err != nil {
			return nil, fmt.Errorf("table %q row %d: %w", name, i, err)
		}
	}

	return table, nil
}

// validateRow validates all schema columns of row, dropping unknown
// extra columns, and stamps the _id.
func (t *Table) validateRow(row Row, allowMissing bool) (Row, error) {
	validated := make(Row, t.schema.Len()+1)

	for _, col := range t.schema.columns {
		raw, ok := row[col.Name]
		if !ok {
			if allowMissing {
				continue
			}

			return nil, fmt.Errorf("%w: missing column %q", ErrValidation, col.Name)
		}

		value, err := col.Type.Validate(raw)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}

		validated[col.Name] = value
	}

	id, _ := row[idColumn].(string)
	if id == "" {
		id = newRowID()
	}

	validated[idColumn] = id

	return validated, nil
}

// findRow returns the first stored row matching id.
func (t *Table) findRow(id string) (Row, error) {
	for _, row := range t.rows {
		if row.ID() == id {
			return row, nil
		}
	}

	return nil, fmt.Errorf("%w: _id=%q", ErrRowNotFound, id)
}
