package dbms

import (
	"fmt"
	"sort"
)

// ColumnSpec declares one schema column. Type accepts any descriptor
// form understood by ResolveFieldType: a FieldType value, a tagged spec
// map, or a bare type name string.
type ColumnSpec struct {
	Name string
	Type any
}

// Column is a resolved schema column.
type Column struct {
	Name string
	Type FieldType
}

// Schema is an ordered mapping of column name to field type, fixed
// after creation. Column order matters for display, not validation.
type Schema struct {
	columns []Column
	index   map[string]int
}

// newSchema resolves column specs in declaration order. Any resolution
// failure aborts the whole schema (no partial schema is ever built).
func newSchema(specs []ColumnSpec) (*Schema, error) {
	schema := &Schema{
		columns: make([]Column, 0, len(specs)),
		index:   make(map[string]int, len(specs)),
	}

	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: column names must be non-empty strings", ErrSchemaInvalid)
		}

		if spec.Name == idColumn {
			return nil, fmt.Errorf("%w: column name %q is reserved", ErrSchemaInvalid, idColumn)
		}

		if _, ok := schema.index[spec.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchemaInvalid, spec.Name)
		}

		ft, err := ResolveFieldType(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %w", ErrSchemaInvalid, spec.Name, err)
		}

		schema.index[spec.Name] = len(schema.columns)
		schema.columns = append(schema.columns, Column{Name: spec.Name, Type: ft})
	}

	return schema, nil
}

// ColumnSpecsFromMap converts a name→descriptor mapping into ordered
// column specs. Map keys carry no order, so columns are listed in
// sorted-name order for determinism.
func ColumnSpecsFromMap(payload map[string]any) []ColumnSpec {
	names := make([]string, 0, len(payload))
	for name := range payload {
		names = append(names, name)
	}

	sort.Strings(names)

	specs := make([]ColumnSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, ColumnSpec{Name: name, Type: payload[name]})
	}

	return specs
}

// schemaFromMap resolves a name→descriptor mapping.
func schemaFromMap(payload map[string]any) (*Schema, error) {
	return newSchema(ColumnSpecsFromMap(payload))
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// Columns returns the columns in declaration order. The returned slice
// is a copy; the schema itself cannot be mutated through it.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)

	return out
}

// ColumnNames returns the column names in declaration order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}

	return names
}

// FieldType returns the field type for a column, if present.
func (s *Schema) FieldType(name string) (FieldType, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}

	return s.columns[i].Type, true
}

// ToMap serializes the schema as a name→type-spec mapping.
func (s *Schema) ToMap() map[string]any {
	out := make(map[string]any, len(s.columns))
	for _, col := range s.columns {
		out[col.Name] = TypeSpec(col.Type)
	}

	return out
}
