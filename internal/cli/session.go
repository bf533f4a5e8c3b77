package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/LenaPetrachkova/dbms/pkg/dbms"
	"github.com/LenaPetrachkova/dbms/pkg/dbms/jsonstore"
)

// session resolves the database file for one command invocation.
// Every command loads the snapshot, operates on it, and saves it back
// after a successful mutation.
type session struct {
	cfg  Config
	path string // absolute database file path
}

// load reads the database snapshot. A missing file yields a fresh empty
// database named per config.
func (s *session) load() (*dbms.Database, error) {
	db, err := jsonstore.Load(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dbms.NewDatabase(s.cfg.DatabaseName), nil
		}

		return nil, err
	}

	return db, nil
}

// save persists the database snapshot atomically.
func (s *session) save(db *dbms.Database) error {
	return jsonstore.Save(db, s.path)
}

// printRow writes a row as a single JSON object line.
func printRow(o *IO, row dbms.Row) error {
	data, err := json.Marshal(map[string]any(row))
	if err != nil {
		return fmt.Errorf("format row: %w", err)
	}

	o.Println(string(data))

	return nil
}
