package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer starts a server backed by a snapshot file in a temp dir.
func testServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.json")

	srv, err := NewServer(path, "test")
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts, path
}

// doJSON performs a request with an optional JSON body and decodes the
// JSON response.
func doJSON(t *testing.T, ts *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()

	status, raw := doRaw(t, ts, method, path, body)

	if len(raw) == 0 {
		return status, nil
	}

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload), "response body: %s", raw)

	return status, payload
}

func doRaw(t *testing.T, ts *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, raw
}

func createPeopleTable(t *testing.T, ts *httptest.Server) {
	t.Helper()

	status, _ := doJSON(t, ts, http.MethodPost, "/tables", `{
		"name": "people",
		"columns": [
			{"name": "age", "type": "integer"},
			{"name": "name", "type": "string"}
		]
	}`)
	require.Equal(t, http.StatusCreated, status)
}

func Test_Server_Creates_And_Lists_Tables(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	status, payload := doJSON(t, ts, http.MethodGet, "/tables", "")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "test", payload["database"])

	tables, ok := payload["tables"].([]any)
	require.True(t, ok)
	require.Len(t, tables, 1)

	entry, ok := tables[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "people", entry["name"])
	assert.Equal(t, float64(0), entry["rows"])
}

func Test_Server_Rejects_Duplicate_Table_With_400(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	status, payload := doJSON(t, ts, http.MethodPost, "/tables",
		`{"name": "people", "columns": [{"name": "age", "type": "integer"}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, payload["error"], "already exists")
}

func Test_Server_Rejects_Unknown_Type_With_400(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)

	status, payload := doJSON(t, ts, http.MethodPost, "/tables",
		`{"name": "people", "columns": [{"name": "age", "type": "varchar"}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, payload["error"], "unknown field type")
}

func Test_Server_Inserts_And_Fetches_Row(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	status, row := doJSON(t, ts, http.MethodPost, "/tables/people/rows",
		`{"age": 30, "name": "Ada"}`)
	require.Equal(t, http.StatusCreated, status)

	id, _ := row["_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, float64(30), row["age"])

	status, fetched := doJSON(t, ts, http.MethodGet, "/tables/people/rows/"+id, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, row, fetched)
}

func Test_Server_Rejects_Invalid_Row_With_400(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	status, payload := doJSON(t, ts, http.MethodPost, "/tables/people/rows",
		`{"age": "thirty", "name": "Ada"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, payload["error"], "validation failed")
}

func Test_Server_Returns_404_For_Missing_Table_And_Row(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	status, _ := doJSON(t, ts, http.MethodGet, "/tables/nope", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, ts, http.MethodGet, "/tables/people/rows/nope", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, ts, http.MethodDelete, "/tables/people/rows/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func Test_Server_Updates_Row_Partially(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	_, row := doJSON(t, ts, http.MethodPost, "/tables/people/rows",
		`{"age": 30, "name": "Ada"}`)
	id, _ := row["_id"].(string)

	status, updated := doJSON(t, ts, http.MethodPatch, "/tables/people/rows/"+id,
		`{"age": 31}`)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, float64(31), updated["age"])
	assert.Equal(t, "Ada", updated["name"])
	assert.Equal(t, id, updated["_id"])
}

func Test_Server_Deletes_Row(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	_, row := doJSON(t, ts, http.MethodPost, "/tables/people/rows",
		`{"age": 30, "name": "Ada"}`)
	id, _ := row["_id"].(string)

	status, _ := doRaw(t, ts, http.MethodDelete, "/tables/people/rows/"+id, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = doJSON(t, ts, http.MethodGet, "/tables/people/rows/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func Test_Server_Sorts_Rows_By_Column(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	for _, body := range []string{
		`{"age": 5, "name": "c"}`,
		`{"age": 2, "name": "a"}`,
		`{"age": 8, "name": "b"}`,
	} {
		status, _ := doJSON(t, ts, http.MethodPost, "/tables/people/rows", body)
		require.Equal(t, http.StatusCreated, status)
	}

	status, raw := doRaw(t, ts, http.MethodPost, "/tables/people/sort",
		`{"column": "age"}`)
	require.Equal(t, http.StatusOK, status)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 3)

	assert.Equal(t, float64(2), rows[0]["age"])
	assert.Equal(t, float64(5), rows[1]["age"])
	assert.Equal(t, float64(8), rows[2]["age"])

	status, raw = doRaw(t, ts, http.MethodPost, "/tables/people/sort",
		`{"column": "age", "descending": true}`)
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, json.Unmarshal(raw, &rows))
	assert.Equal(t, float64(8), rows[0]["age"])
}

func Test_Server_Rejects_Sort_On_Unknown_Column(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	status, payload := doJSON(t, ts, http.MethodPost, "/tables/people/sort",
		`{"column": "height"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, payload["error"], "unknown column")

	status, payload = doJSON(t, ts, http.MethodPost, "/tables/people/sort", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, payload["error"], "column is required")
}

func Test_Server_Rejects_Malformed_Body_With_400(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	status, payload := doJSON(t, ts, http.MethodPost, "/tables/people/rows", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, payload["error"], "JSON object")
}

func Test_Server_Persists_Mutations_Across_Restart(t *testing.T) {
	t.Parallel()

	ts, path := testServer(t)
	createPeopleTable(t, ts)

	_, row := doJSON(t, ts, http.MethodPost, "/tables/people/rows",
		`{"age": 30, "name": "Ada"}`)
	id, _ := row["_id"].(string)

	reloaded, err := NewServer(path, "test")
	require.NoError(t, err)

	ts2 := httptest.NewServer(reloaded.Handler())
	defer ts2.Close()

	status, fetched := doJSON(t, ts2, http.MethodGet, "/tables/people/rows/"+id, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ada", fetched["name"])
}

func Test_Server_Drops_Table(t *testing.T) {
	t.Parallel()

	ts, _ := testServer(t)
	createPeopleTable(t, ts)

	status, _ := doRaw(t, ts, http.MethodDelete, "/tables/people", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = doJSON(t, ts, http.MethodGet, "/tables/people", "")
	assert.Equal(t, http.StatusNotFound, status)
}
