package dbms_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LenaPetrachkova/dbms/pkg/dbms"
)

// sampleDatabase builds a database exercising every field type variant.
func sampleDatabase(t *testing.T) *dbms.Database {
	t.Helper()

	db := dbms.NewDatabase("sample")

	people, err := db.CreateTable("people", []dbms.ColumnSpec{
		{Name: "age", Type: dbms.IntervalType{Base: dbms.IntegerType{}, MinValue: 0, MaxValue: 150}},
		{Name: "grade", Type: "char"},
		{Name: "name", Type: dbms.StringIntervalType{MinValue: "a", MaxValue: "zzz"}},
		{Name: "score", Type: "real"},
	})
	require.NoError(t, err)

	_, err = people.Insert(dbms.Row{"age": 30, "grade": "a", "name": "alice", "score": 9.5})
	require.NoError(t, err)

	_, err = people.Insert(dbms.Row{"age": 41, "grade": "b", "name": "bob", "score": 7.0})
	require.NoError(t, err)

	pages, err := db.CreateTable("pages", []dbms.ColumnSpec{
		{Name: "body", Type: "htmlFile"},
	})
	require.NoError(t, err)

	_, err = pages.Insert(dbms.Row{"body": "<h1>hi</h1>"})
	require.NoError(t, err)

	return db
}

func Test_Database_ToMap_Round_Trips_When_Reconstructed(t *testing.T) {
	t.Parallel()

	db := sampleDatabase(t)
	snapshot := db.ToMap()

	loaded, err := dbms.DatabaseFromMap(snapshot)
	require.NoError(t, err)

	if diff := cmp.Diff(snapshot, loaded.ToMap()); diff != "" {
		t.Errorf("round trip changed the snapshot (-want +got):\n%s", diff)
	}
}

func Test_Database_ToMap_Round_Trips_When_Passed_Through_JSON(t *testing.T) {
	t.Parallel()

	// JSON decoding widens every number to float64; reconstruction must
	// re-validate values back into their schema domains.
	db := sampleDatabase(t)

	data, err := json.Marshal(db.ToMap())
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))

	loaded, err := dbms.DatabaseFromMap(payload)
	require.NoError(t, err)

	people, err := loaded.GetTable("people")
	require.NoError(t, err)

	rows := people.ListRows()
	require.Len(t, rows, 2)
	assert.IsType(t, int64(0), rows[0]["age"], "integers are re-normalized after JSON widening")
	assert.IsType(t, float64(0), rows[0]["score"])

	again, err := json.Marshal(loaded.ToMap())
	require.NoError(t, err)

	var payloadAgain map[string]any
	require.NoError(t, json.Unmarshal(again, &payloadAgain))

	if diff := cmp.Diff(payload, payloadAgain); diff != "" {
		t.Errorf("JSON round trip changed the snapshot (-want +got):\n%s", diff)
	}
}

func Test_Database_ToMap_Snapshots_Rows_When_Table_Mutates_Later(t *testing.T) {
	t.Parallel()

	db := sampleDatabase(t)
	snapshot := db.ToMap()

	people, err := db.GetTable("people")
	require.NoError(t, err)

	rows := people.ListRows()
	_, err = people.Update(rows[0].ID(), dbms.Row{"name": "changed"})
	require.NoError(t, err)

	loaded, err := dbms.DatabaseFromMap(snapshot)
	require.NoError(t, err)

	loadedPeople, err := loaded.GetTable("people")
	require.NoError(t, err)

	got, err := loadedPeople.Get(rows[0].ID())
	require.NoError(t, err)
	assert.Equal(t, "alice", got["name"], "snapshot must not observe later mutations")
}

func Test_TableFromMap_Revalidates_Rows_When_Payload_Corrupt(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"name": "people",
		"schema": map[string]any{
			"age": map[string]any{"type": "integer", "config": map[string]any{}},
		},
		"rows": []any{
			map[string]any{"age": "not a number", "_id": "r1"},
		},
	}

	_, err := dbms.TableFromMap(payload)
	require.ErrorIs(t, err, dbms.ErrValidation, "stored rows are re-validated, not trusted")
}

func Test_TableFromMap_Omits_Absent_Columns_When_Reconstructing(t *testing.T) {
	t.Parallel()

	// Live insertion is strict, reconstruction is lenient: a column
	// missing from a stored row payload is silently omitted.
	payload := map[string]any{
		"name": "people",
		"schema": map[string]any{
			"age":  map[string]any{"type": "integer", "config": map[string]any{}},
			"name": map[string]any{"type": "string", "config": map[string]any{}},
		},
		"rows": []any{
			map[string]any{"age": float64(30), "_id": "r1"},
		},
	}

	table, err := dbms.TableFromMap(payload)
	require.NoError(t, err)

	got, err := table.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), got["age"])
	assert.NotContains(t, got, "name")
}

func Test_TableFromMap_Preserves_IDs_When_Reconstructing(t *testing.T) {
	t.Parallel()

	db := sampleDatabase(t)

	people, err := db.GetTable("people")
	require.NoError(t, err)

	wantIDs := make([]string, 0, 2)
	for _, row := range people.ListRows() {
		wantIDs = append(wantIDs, row.ID())
	}

	loaded, err := dbms.DatabaseFromMap(db.ToMap())
	require.NoError(t, err)

	loadedPeople, err := loaded.GetTable("people")
	require.NoError(t, err)

	gotIDs := make([]string, 0, 2)
	for _, row := range loadedPeople.ListRows() {
		gotIDs = append(gotIDs, row.ID())
	}

	assert.Equal(t, wantIDs, gotIDs, "ids are reused verbatim, never regenerated")
}

func Test_DatabaseFromMap_Fails_When_Schema_Names_Unknown_Type(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"name": "broken",
		"tables": map[string]any{
			"t": map[string]any{
				"name": "t",
				"schema": map[string]any{
					"col": map[string]any{"type": "decimal", "config": map[string]any{}},
				},
				"rows": []any{},
			},
		},
	}

	_, err := dbms.DatabaseFromMap(payload)
	require.ErrorIs(t, err, dbms.ErrUnknownType)
}
