package cli

import "errors"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigFileRead     = errors.New("cannot read config file")
	errConfigInvalid      = errors.New("invalid config file")
	errDatabasePathEmpty  = errors.New("database_path must not be empty")

	errFlagRequiresArg = errors.New("flag requires an argument")
	errUnknownFlag     = errors.New("unknown flag")

	errTableNameRequired   = errors.New("table name required")
	errColumnRequired      = errors.New("at least one --column required")
	errRowIDRequired       = errors.New("row id required")
	errColumnNameRequired  = errors.New("column name required")
	errAssignmentMalformed = errors.New("expected column=value")
	errColumnSpecMalformed = errors.New("expected name:type")
	errUnknownColumn       = errors.New("unknown column")
	errValuesRequired      = errors.New("at least one column=value required")
)
