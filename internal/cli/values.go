package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LenaPetrachkova/dbms/pkg/dbms"
)

// ParseColumnSpec parses one --column argument of the form
// "name:type", "name:stringInvl[:min[:max]]", or
// "name:interval:base[:min[:max]]".
func ParseColumnSpec(arg string) (dbms.ColumnSpec, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 {
		return dbms.ColumnSpec{}, fmt.Errorf("%w: %q", errColumnSpecMalformed, arg)
	}

	name := strings.TrimSpace(parts[0])
	typeName := strings.TrimSpace(parts[1])

	if name == "" {
		return dbms.ColumnSpec{}, fmt.Errorf("%w: %q", errColumnNameRequired, arg)
	}

	switch typeName {
	case dbms.TypeNameStringInterval:
		spec := map[string]any{"type": typeName, "config": map[string]any{
			"min_value": optionalPart(parts, 2),
			"max_value": optionalPart(parts, 3),
		}}

		return dbms.ColumnSpec{Name: name, Type: spec}, nil
	case dbms.TypeNameInterval:
		if len(parts) < 3 {
			return dbms.ColumnSpec{}, fmt.Errorf("%w: interval needs a base type: %q", errColumnSpecMalformed, arg)
		}

		base := strings.TrimSpace(parts[2])

		minValue, err := intervalBound(base, optionalPart(parts, 3))
		if err != nil {
			return dbms.ColumnSpec{}, fmt.Errorf("%q: %w", arg, err)
		}

		maxValue, err := intervalBound(base, optionalPart(parts, 4))
		if err != nil {
			return dbms.ColumnSpec{}, fmt.Errorf("%q: %w", arg, err)
		}

		spec := map[string]any{"type": typeName, "config": map[string]any{
			"base_type": map[string]any{"type": base},
			"min_value": minValue,
			"max_value": maxValue,
		}}

		return dbms.ColumnSpec{Name: name, Type: spec}, nil
	default:
		// Bare type name; the core rejects unknown ones.
		return dbms.ColumnSpec{Name: name, Type: typeName}, nil
	}
}

// optionalPart returns parts[i] or nil when absent/empty.
func optionalPart(parts []string, i int) any {
	if i >= len(parts) {
		return nil
	}

	s := strings.TrimSpace(parts[i])
	if s == "" {
		return nil
	}

	return s
}

// intervalBound parses a textual bound into the base type's domain.
func intervalBound(baseType string, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, nil //nolint:nilnil // absent bound means unbounded
	}

	switch baseType {
	case dbms.TypeNameInteger:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bound %q is not an integer", s)
		}

		return n, nil
	case dbms.TypeNameReal:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("bound %q is not a number", s)
		}

		return f, nil
	default:
		return s, nil
	}
}

// ParseAssignments converts "column=value" arguments into a row,
// coercing each textual value into its column's domain.
func ParseAssignments(schema *dbms.Schema, args []string) (dbms.Row, error) {
	if len(args) == 0 {
		return nil, errValuesRequired
	}

	row := make(dbms.Row, len(args))

	for _, arg := range args {
		column, value, ok := strings.Cut(arg, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("%w: %q", errAssignmentMalformed, arg)
		}

		ft, ok := schema.FieldType(column)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownColumn, column)
		}

		coerced, err := coerceValue(ft, value)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", column, err)
		}

		row[column] = coerced
	}

	return row, nil
}

// coerceValue converts a textual value into the field type's input
// domain: integers and reals parse numerically, everything else stays
// text. Intervals coerce for their base type.
func coerceValue(ft dbms.FieldType, value string) (any, error) {
	switch t := ft.(type) {
	case dbms.IntegerType:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", value)
		}

		return n, nil
	case dbms.RealType:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", value)
		}

		return f, nil
	case dbms.IntervalType:
		return coerceValue(t.Base, value)
	default:
		return value, nil
	}
}
