// Package jsonstore persists a dbms.Database as a pretty-printed JSON
// snapshot. Save is a full-snapshot overwrite through an atomic rename,
// so readers never observe a partially written file.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/LenaPetrachkova/dbms/pkg/dbms"
)

// Save writes the database snapshot to path atomically.
func Save(db *dbms.Database, path string) error {
	data, err := json.MarshalIndent(db.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: marshal database: %w", err)
	}

	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("jsonstore: write %s: %w", path, err)
	}

	return nil
}

// Load reads a database snapshot from path. Every row passes back
// through schema validation during reconstruction.
func Load(path string) (*dbms.Database, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		return nil, fmt.Errorf("jsonstore: read %s: %w", path, err)
	}

	var payload map[string]any

	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("jsonstore: parse %s: %w", path, err)
	}

	db, err := dbms.DatabaseFromMap(payload)
	if err != nil {
		return nil, fmt.Errorf("jsonstore: load %s: %w", path, err)
	}

	return db, nil
}
