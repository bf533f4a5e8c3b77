package dbms

import (
	"fmt"
	"maps"
)

// Database owns a named mapping of table name to Table. Table names are
// unique within a database; tables are never shared between instances.
type Database struct {
	name   string
	tables map[string]*Table
}

// NewDatabase creates an empty database.
func NewDatabase(name string) *Database {
	return &Database{
		name:   name,
		tables: make(map[string]*Table),
	}
}

// Name returns the database's identity.
func (db *Database) Name() string { return db.name }

// CreateTable builds a table from column specs and registers it under
// name. Fails with ErrTableExists on a name conflict; the conflicting
// table is left untouched.
func (db *Database) CreateTable(name string, columns []ColumnSpec) (*Table, error) {
	if _, ok := db.tables[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrTableExists, name)
	}

	table, err := NewTable(name, columns)
	if err != nil {
		return nil, err
	}

	db.tables[name] = table

	return table, nil
}

// DropTable removes a table. Destruction is synchronous and immediate;
// the freed name is available for reuse right away.
func (db *Database) DropTable(name string) error {
	if _, ok := db.tables[name]; !ok {
		return fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}

	delete(db.tables, name)

	return nil
}

// GetTable returns the table registered under name.
func (db *Database) GetTable(name string) (*Table, error) {
	table, ok := db.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}

	return table, nil
}

// ListTables returns a copy of the name→table mapping. The copy is
// shallow: Table values are shared references, not clones.
func (db *Database) ListTables() map[string]*Table {
	return maps.Clone(db.tables)
}

// ToMap serializes the database, aggregating each table's ToMap keyed
// by table name.
func (db *Database) ToMap() map[string]any {
	tables := make(map[string]any, len(db.tables))
	for name, table := range db.tables {
		tables[name] = table.ToMap()
	}

	return map[string]any{
		"name":   db.name,
		"tables": tables,
	}
}

// DatabaseFromMap reconstructs a database from its serialized form.
// Each table payload passes through TableFromMap, so every row is
// re-validated against its schema.
func DatabaseFromMap(payload map[string]any) (*Database, error) {
	name, _ := payload["name"].(string)
	db := NewDatabase(name)

	rawTables, ok := payload["tables"].(map[string]any)
	if !ok {
		return db, nil
	}

	for tableName, rawTable := range rawTables {
		tablePayload, ok := rawTable.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: table %q payload is not a mapping", ErrSchemaInvalid, tableName)
		}

		table, err := TableFromMap(tablePayload)
		if err != nil {
			return nil, err
		}

		db.tables[tableName] = table
	}

	return db, nil
}
