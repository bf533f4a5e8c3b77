package dbms

import "fmt"

// IntervalType constrains a base field type to an inclusive [min, max]
// range. Either bound may be nil (unbounded). The base type is itself a
// FieldType, so intervals nest arbitrarily.
type IntervalType struct {
	// Base validates values before the range check.
	Base FieldType

	// MinValue and MaxValue are inclusive bounds in the base type's value
	// domain. A nil bound is unbounded.
	MinValue any
	MaxValue any
}

func (t IntervalType) TypeName() string { return TypeNameInterval }

func (t IntervalType) Config() map[string]any {
	return map[string]any{
		"base_type": TypeSpec(t.Base),
		"min_value": t.MinValue,
		"max_value": t.MaxValue,
	}
}

func (t IntervalType) Validate(value any) (any, error) {
	result, err := t.Base.Validate(value)
	if err != nil {
		return nil, err
	}

	return checkBounds(result, t.MinValue, t.MaxValue)
}

// checkBounds range-checks an already base-validated value.
func checkBounds(value, minValue, maxValue any) (any, error) {
	if minValue != nil {
		cmp, err := compareValues(value, minValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}

		if cmp < 0 {
			return nil, fmt.Errorf("%w: value %v is less than minimum %v", ErrValidation, value, minValue)
		}
	}

	if maxValue != nil {
		cmp, err := compareValues(value, maxValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}

		if cmp > 0 {
			return nil, fmt.Errorf("%w: value %v exceeds maximum %v", ErrValidation, value, maxValue)
		}
	}

	return value, nil
}

// StringIntervalType is an interval with the base fixed to StringType:
// a string constrained to a lexicographic [min, max] range. Unlike
// IntervalType, its serialized config carries only the bounds.
type StringIntervalType struct {
	MinValue any
	MaxValue any
}

func (t StringIntervalType) TypeName() string { return TypeNameStringInterval }

func (t StringIntervalType) Config() map[string]any {
	return map[string]any{
		"min_value": t.MinValue,
		"max_value": t.MaxValue,
	}
}

func (t StringIntervalType) Validate(value any) (any, error) {
	result, err := StringType{}.Validate(value)
	if err != nil {
		return nil, err
	}

	return checkBounds(result, t.MinValue, t.MaxValue)
}
