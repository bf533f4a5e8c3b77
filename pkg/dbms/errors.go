package dbms

import "errors"

// Error variables for database, table, and field type operations.
//
// All failures are synchronous and deterministic: retrying the same
// input fails identically. Use [errors.Is] to classify:
//
//	if errors.Is(err, dbms.ErrValidation) { ... }
var (
	// ErrValidation reports a value that fails a field type's contract.
	ErrValidation = errors.New("validation failed")

	// ErrSchemaInvalid reports a bad schema definition at table-creation time.
	ErrSchemaInvalid = errors.New("invalid schema")

	// ErrTableExists reports a table-name conflict on CreateTable.
	ErrTableExists = errors.New("table already exists")

	// ErrTableNotFound reports a missing table on GetTable/DropTable.
	ErrTableNotFound = errors.New("table not found")

	// ErrRowNotFound reports a row lookup with no matching _id.
	ErrRowNotFound = errors.New("row not found")

	// ErrUnknownColumn reports a reference to a column absent from the schema.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownType reports a type name missing from the field type registry.
	// Distinct from ErrValidation: the payload names a type that does not
	// exist, rather than a value that fails an existing type's contract.
	ErrUnknownType = errors.New("unknown field type")

	// ErrConfigRequired reports a bare type name that cannot be constructed
	// without configuration (interval needs a base type and bounds).
	ErrConfigRequired = errors.New("field type requires configuration")
)
