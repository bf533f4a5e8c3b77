package dbms

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Wire tags for the built-in field types. These are stable identifiers
// used as registry keys and in serialized schemas.
const (
	TypeNameInteger        = "integer"
	TypeNameReal           = "real"
	TypeNameChar           = "char"
	TypeNameString         = "string"
	TypeNameHTMLFile       = "htmlFile"
	TypeNameInterval       = "interval"
	TypeNameStringInterval = "stringInvl"
)

// FieldType describes how to validate and serialize one column's values.
//
// Implementations are immutable: they are created once when a schema is
// built or deserialized and never change afterwards.
type FieldType interface {
	// TypeName returns the unique wire tag for this field type.
	TypeName() string

	// Validate checks value against the type's contract and returns the
	// (possibly coerced) stored form, or an error wrapping ErrValidation.
	//
	// Validation is pure except HTMLFileType's optional file read, and
	// idempotent on its own output.
	Validate(value any) (any, error)

	// Config returns the type's serializable configuration. Empty for
	// types that need none.
	Config() map[string]any
}

// IntegerType validates whole numbers.
//
// Accepts Go integer kinds and integral floats (JSON decodes every
// number to float64, so 3 arrives as 3.0 after a round trip through a
// file). Booleans and fractional values are rejected. The stored form
// is int64.
type IntegerType struct{}

func (IntegerType) TypeName() string { return TypeNameInteger }

func (IntegerType) Config() map[string]any { return map[string]any{} }

func (IntegerType) Validate(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%w: integer %d out of range", ErrValidation, v)
		}

		return int64(v), nil
	case float32:
		return integralFloat(float64(v))
	case float64:
		return integralFloat(v)
	default:
		return nil, fmt.Errorf("%w: expected integer, got %T", ErrValidation, value)
	}
}

// integralFloat converts a float to int64 when it has no fractional part.
func integralFloat(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("%w: expected integer, got %v", ErrValidation, f)
	}

	if f < math.MinInt64 || f > math.MaxInt64 {
		return nil, fmt.Errorf("%w: integer %v out of range", ErrValidation, f)
	}

	return int64(f), nil
}

// RealType validates numbers. Integer inputs are coerced to float64;
// booleans and non-numeric inputs (including numeric strings) are
// rejected. The stored form is float64.
type RealType struct{}

func (RealType) TypeName() string { return TypeNameReal }

func (RealType) Config() map[string]any { return map[string]any{} }

func (RealType) Validate(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("%w: expected real number, got %T", ErrValidation, value)
	}
}

// CharType validates single-character strings.
type CharType struct{}

func (CharType) TypeName() string { return TypeNameChar }

func (CharType) Config() map[string]any { return map[string]any{} }

func (CharType) Validate(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: expected single character string, got %T", ErrValidation, value)
	}

	if utf8.RuneCountInString(s) != 1 {
		return nil, fmt.Errorf("%w: expected single character string, got %q", ErrValidation, s)
	}

	return s, nil
}

// StringType validates text.
type StringType struct{}

func (StringType) TypeName() string { return TypeNameString }

func (StringType) Config() map[string]any { return map[string]any{} }

func (StringType) Validate(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: expected string, got %T", ErrValidation, value)
	}

	return s, nil
}

// HTMLFileType validates HTML content. It accepts, in order:
//
//   - a map with a string "content" key (upload payloads)
//   - raw bytes, decoded as UTF-8
//   - a path to an existing .html/.htm file, read into the stored value
//   - inline markup containing both '<' and '>'
//
// The stored form is always the HTML text itself, never a path.
type HTMLFileType struct{}

func (HTMLFileType) TypeName() string { return TypeNameHTMLFile }

func (HTMLFileType) Config() map[string]any { return map[string]any{} }

func (HTMLFileType) Validate(value any) (any, error) {
	if m, ok := value.(map[string]any); ok {
		if content, ok := m["content"].(string); ok {
			return content, nil
		}

		return nil, fmt.Errorf("%w: expected HTML content string", ErrValidation)
	}

	if b, ok := value.([]byte); ok {
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("%w: HTML bytes must be UTF-8", ErrValidation)
		}

		value = string(b)
	}

	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: expected string, got %T", ErrValidation, value)
	}

	if isHTMLFilePath(s) {
		data, err := os.ReadFile(s) //nolint:gosec // path is intentionally user-controlled
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read HTML file %q: %w", ErrValidation, s, err)
		}

		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: HTML file %q is not UTF-8", ErrValidation, s)
		}

		return string(data), nil
	}

	if strings.Contains(s, "<") && strings.Contains(s, ">") {
		return s, nil
	}

	return nil, fmt.Errorf("%w: expected HTML content or path to .html/.htm file", ErrValidation)
}

// isHTMLFilePath reports whether s names an existing regular file with
// an .html or .htm suffix.
func isHTMLFilePath(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	if ext != ".html" && ext != ".htm" {
		return false
	}

	info, err := os.Stat(s)

	return err == nil && info.Mode().IsRegular()
}
