package dbms

import "fmt"

// decoderFunc reconstructs a field type from its serialized config.
// A nil config means "no configuration given" (bare type name).
type decoderFunc func(config map[string]any) (FieldType, error)

// typeDecoders is the static dispatch table mapping wire tags to
// constructors. The variant set is closed: the table is built once at
// package init and never mutated, so no runtime registration exists.
var typeDecoders map[string]decoderFunc

func init() {
	typeDecoders = map[string]decoderFunc{
		TypeNameInteger:        decodeConfigless(IntegerType{}),
		TypeNameReal:           decodeConfigless(RealType{}),
		TypeNameChar:           decodeConfigless(CharType{}),
		TypeNameString:         decodeConfigless(StringType{}),
		TypeNameHTMLFile:       decodeConfigless(HTMLFileType{}),
		TypeNameInterval:       decodeInterval,
		TypeNameStringInterval: decodeStringInterval,
	}
}

// decodeConfigless builds a decoder for a type that takes no
// configuration. Unexpected config keys are rejected.
func decodeConfigless(ft FieldType) decoderFunc {
	return func(config map[string]any) (FieldType, error) {
		if len(config) > 0 {
			return nil, fmt.Errorf("%w: type %q takes no config", ErrSchemaInvalid, ft.TypeName())
		}

		return ft, nil
	}
}

// decodeInterval reconstructs an IntervalType, recursively decoding the
// nested base type.
func decodeInterval(config map[string]any) (FieldType, error) {
	baseSpec, ok := config["base_type"]
	if !ok {
		return nil, fmt.Errorf("%w: interval needs a base_type and bounds", ErrConfigRequired)
	}

	basePayload, ok := baseSpec.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: interval base_type must be a type spec, got %T", ErrSchemaInvalid, baseSpec)
	}

	base, err := FieldTypeFromMap(basePayload)
	if err != nil {
		return nil, err
	}

	return IntervalType{
		Base:     base,
		MinValue: config["min_value"],
		MaxValue: config["max_value"],
	}, nil
}

// decodeStringInterval reconstructs a StringIntervalType. The base is
// fixed, so only the bounds appear in the config.
func decodeStringInterval(config map[string]any) (FieldType, error) {
	return StringIntervalType{
		MinValue: config["min_value"],
		MaxValue: config["max_value"],
	}, nil
}

// TypeSpec serializes a field type to its tagged wire form:
//
//	{"type": <type name>, "config": {...}}
func TypeSpec(ft FieldType) map[string]any {
	return map[string]any{
		"type":   ft.TypeName(),
		"config": ft.Config(),
	}
}

// FieldTypeFromMap reconstructs a field type from its tagged wire form.
// Unknown type names fail with ErrUnknownType, distinct from value
// validation failures.
func FieldTypeFromMap(payload map[string]any) (FieldType, error) {
	name, ok := payload["type"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: type spec missing %q key", ErrSchemaInvalid, "type")
	}

	var config map[string]any

	if raw, ok := payload["config"]; ok && raw != nil {
		config, ok = raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: type %q config must be a mapping, got %T", ErrSchemaInvalid, name, raw)
		}
	}

	decode, ok := typeDecoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}

	return decode(config)
}

// ResolveFieldType builds a field type from a schema descriptor, which
// may be:
//
//   - an already-constructed FieldType, used as-is
//   - a tagged spec map {"type": ..., "config": ...}
//   - a bare type name string, for types with no required config
//
// A bare "interval" fails with ErrConfigRequired since its base type
// and bounds are mandatory.
func ResolveFieldType(descriptor any) (FieldType, error) {
	switch d := descriptor.(type) {
	case FieldType:
		return d, nil
	case map[string]any:
		return FieldTypeFromMap(d)
	case string:
		decode, ok := typeDecoders[d]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, d)
		}

		return decode(nil)
	default:
		return nil, fmt.Errorf("%w: unsupported type descriptor %T", ErrSchemaInvalid, descriptor)
	}
}
