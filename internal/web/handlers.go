package web

import (
	"net/http"
	"sort"

	"github.com/LenaPetrachkova/dbms/pkg/dbms"
)

// tableSummary is one entry of the GET /tables listing.
type tableSummary struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

func (s *Server) handleListTables(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := s.db.ListTables()

	summaries := make([]tableSummary, 0, len(tables))
	for name, table := range tables {
		summaries = append(summaries, tableSummary{Name: name, Rows: table.Len()})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })

	writeJSON(w, http.StatusOK, map[string]any{
		"database": s.db.Name(),
		"tables":   summaries,
	})
}

type createTableRequest struct {
	Name    string `json:"name"`
	Columns []struct {
		Name string `json:"name"`
		Type any    `json:"type"`
	} `json:"columns"`
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)

		return
	}

	specs := make([]dbms.ColumnSpec, 0, len(req.Columns))
	for _, col := range req.Columns {
		specs = append(specs, dbms.ColumnSpec{Name: col.Name, Type: col.Type})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.db.CreateTable(req.Name, specs)
	if err != nil {
		writeError(w, err)

		return
	}

	if err := s.persist(); err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusCreated, table.ToMap())
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.db.GetTable(r.PathValue("table"))
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, table.ToMap())
}

func (s *Server) handleDropTable(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DropTable(r.PathValue("table")); err != nil {
		writeError(w, err)

		return
	}

	if err := s.persist(); err != nil {
		writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRows(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.db.GetTable(r.PathValue("table"))
	if err != nil {
		writeError(w, err)

		return
	}

	rows := table.ListRows()

	payload := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, row)
	}

	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleInsertRow(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := decodeBody(r, &values); err != nil {
		writeError(w, err)

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.db.GetTable(r.PathValue("table"))
	if err != nil {
		writeError(w, err)

		return
	}

	stored, err := table.Insert(dbms.Row(values))
	if err != nil {
		writeError(w, err)

		return
	}

	if err := s.persist(); err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleGetRow(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.db.GetTable(r.PathValue("table"))
	if err != nil {
		writeError(w, err)

		return
	}

	row, err := table.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleUpdateRow(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := decodeBody(r, &values); err != nil {
		writeError(w, err)

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.db.GetTable(r.PathValue("table"))
	if err != nil {
		writeError(w, err)

		return
	}

	updated, err := table.Update(r.PathValue("id"), dbms.Row(values))
	if err != nil {
		writeError(w, err)

		return
	}

	if err := s.persist(); err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.db.GetTable(r.PathValue("table"))
	if err != nil {
		writeError(w, err)

		return
	}

	if err := table.Delete(r.PathValue("id")); err != nil {
		writeError(w, err)

		return
	}

	if err := s.persist(); err != nil {
		writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type sortRequest struct {
	Column     string `json:"column"`
	Descending bool   `json:"descending"`
}

func (s *Server) handleSortTable(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)

		return
	}

	if req.Column == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "column is required"})

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.db.GetTable(r.PathValue("table"))
	if err != nil {
		writeError(w, err)

		return
	}

	if err := table.SortBy(req.Column, req.Descending); err != nil {
		writeError(w, err)

		return
	}

	if err := s.persist(); err != nil {
		writeError(w, err)

		return
	}

	rows := table.ListRows()

	payload := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, row)
	}

	writeJSON(w, http.StatusOK, payload)
}
