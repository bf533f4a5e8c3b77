// Package web exposes the database over a JSON HTTP API.
//
// The core types are single-goroutine by contract, so the server
// serializes all access behind one mutex and persists the snapshot
// after every successful mutation.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/LenaPetrachkova/dbms/pkg/dbms"
	"github.com/LenaPetrachkova/dbms/pkg/dbms/jsonstore"
)

// Server serves one database snapshot file.
type Server struct {
	mu   sync.Mutex
	db   *dbms.Database
	path string
}

// NewServer loads the snapshot at path, or starts a fresh database
// named name when the file does not exist yet.
func NewServer(path, name string) (*Server, error) {
	db, err := jsonstore.Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}

		db = dbms.NewDatabase(name)
	}

	return &Server{db: db, path: path}, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /tables", s.handleListTables)
	mux.HandleFunc("POST /tables", s.handleCreateTable)
	mux.HandleFunc("GET /tables/{table}", s.handleGetTable)
	mux.HandleFunc("DELETE /tables/{table}", s.handleDropTable)
	mux.HandleFunc("GET /tables/{table}/rows", s.handleListRows)
	mux.HandleFunc("POST /tables/{table}/rows", s.handleInsertRow)
	mux.HandleFunc("GET /tables/{table}/rows/{id}", s.handleGetRow)
	mux.HandleFunc("PATCH /tables/{table}/rows/{id}", s.handleUpdateRow)
	mux.HandleFunc("DELETE /tables/{table}/rows/{id}", s.handleDeleteRow)
	mux.HandleFunc("POST /tables/{table}/sort", s.handleSortTable)

	return mux
}

// persist writes the snapshot after a mutation.
func (s *Server) persist() error {
	return jsonstore.Save(s.db, s.path)
}

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dbms.ErrTableNotFound), errors.Is(err, dbms.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequestBody),
		errors.Is(err, dbms.ErrValidation),
		errors.Is(err, dbms.ErrSchemaInvalid),
		errors.Is(err, dbms.ErrTableExists),
		errors.Is(err, dbms.ErrUnknownColumn),
		errors.Is(err, dbms.ErrUnknownType),
		errors.Is(err, dbms.ErrConfigRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errBadRequestBody
	}

	return nil
}

var errBadRequestBody = errors.New("request body must be a JSON object")
