package datasource

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func makeTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE records (id TEXT PRIMARY KEY, payload TEXT, extra_json TEXT, size INTEGER)`,
		`INSERT INTO records VALUES ('r1', '{"a":1}', NULL, 3)`,
		`CREATE TABLE field_labels (field TEXT PRIMARY KEY, label TEXT)`,
		`INSERT INTO field_labels VALUES ('payload', 'Payload')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestDetect(t *testing.T) {
	jsonPath := writeTempFile(t, "doc.json", `{"a":1}`)
	if typ, err := Detect(jsonPath); err != nil || typ != SourceTypeFile {
		t.Errorf("Detect(json file) = %v, %v; want file", typ, err)
	}

	dbPath := makeTestDB(t)
	if typ, err := Detect(dbPath); err != nil || typ != SourceTypeSQLite {
		t.Errorf("Detect(sqlite db) = %v, %v; want sqlite", typ, err)
	}

	if _, err := Detect(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrNoSource) {
		t.Errorf("Detect(missing) err = %v, want ErrNoSource", err)
	}
}

func TestFileSourceFetch(t *testing.T) {
	path := writeTempFile(t, "doc.json", `{"a":1}`)
	src := NewFileSource(path)

	v, err := src.FetchField(context.Background(), "", "payload")
	if err != nil {
		t.Fatalf("FetchField: %v", err)
	}
	if v.Null || v.Text != `{"a":1}` {
		t.Errorf("FetchField = %+v", v)
	}
}

func TestFileSourceEmptyFileIsNull(t *testing.T) {
	path := writeTempFile(t, "empty.json", "")
	v, err := NewFileSource(path).FetchField(context.Background(), "", "payload")
	if err != nil {
		t.Fatalf("FetchField: %v", err)
	}
	if !v.Null {
		t.Errorf("empty file: FieldValue = %+v, want Null", v)
	}
}

func TestFileSourceMissingFileIsError(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "gone.json"))
	if _, err := src.FetchField(context.Background(), "", "payload"); err == nil {
		t.Error("expected fetch error for missing file")
	}
}

func TestSQLiteFetchField(t *testing.T) {
	src, err := OpenSQLite(makeTestDB(t), "records")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()
	ctx := context.Background()

	v, err := src.FetchField(ctx, "r1", "payload")
	if err != nil {
		t.Fatalf("FetchField: %v", err)
	}
	if v.Null || v.Text != `{"a":1}` {
		t.Errorf("payload = %+v", v)
	}

	v, err = src.FetchField(ctx, "r1", "extra_json")
	if err != nil {
		t.Fatalf("FetchField(NULL column): %v", err)
	}
	if !v.Null {
		t.Errorf("NULL column = %+v, want Null", v)
	}

	if _, err := src.FetchField(ctx, "nope", "payload"); !errors.Is(err, ErrRecordMissing) {
		t.Errorf("missing record err = %v, want ErrRecordMissing", err)
	}
	if _, err := src.FetchField(ctx, "r1", "no_such_col"); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("missing field err = %v, want ErrFieldMissing", err)
	}
}

func TestSQLiteListJSONFields(t *testing.T) {
	src, err := OpenSQLite(makeTestDB(t), "records")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()

	fields, err := src.ListJSONFields(context.Background())
	if err != nil {
		t.Fatalf("ListJSONFields: %v", err)
	}
	want := []string{"payload", "extra_json"}
	if len(fields) != len(want) {
		t.Fatalf("fields = %v, want %v", fields, want)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields[%d] = %q, want %q", i, fields[i], want[i])
		}
	}
}

func TestSQLiteFieldLabel(t *testing.T) {
	src, err := OpenSQLite(makeTestDB(t), "records")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()
	ctx := context.Background()

	if label, _ := src.FieldLabel(ctx, "payload"); label != "Payload" {
		t.Errorf("label = %q, want Payload", label)
	}
	// No row: fall back to the field name.
	if label, _ := src.FieldLabel(ctx, "extra_json"); label != "extra_json" {
		t.Errorf("fallback label = %q, want extra_json", label)
	}
}

func TestLoadFieldConcurrent(t *testing.T) {
	src, err := OpenSQLite(makeTestDB(t), "records")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()

	data, err := LoadField(context.Background(), src, "r1", "payload")
	if err != nil {
		t.Fatalf("LoadField: %v", err)
	}
	if data.Value.Text != `{"a":1}` || data.Label != "Payload" {
		t.Errorf("LoadField = %+v", data)
	}
}

func TestLoadFieldFetchErrorWins(t *testing.T) {
	src, err := OpenSQLite(makeTestDB(t), "records")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()

	if _, err := LoadField(context.Background(), src, "missing", "payload"); !errors.Is(err, ErrRecordMissing) {
		t.Errorf("err = %v, want ErrRecordMissing", err)
	}
}

func TestStaticSource(t *testing.T) {
	v, err := NewStaticSource(`{"a":1}`).FetchField(context.Background(), "", "")
	if err != nil || v.Null || v.Text != `{"a":1}` {
		t.Errorf("FetchField = %+v, %v", v, err)
	}

	v, err = NewStaticSource("").FetchField(context.Background(), "", "")
	if err != nil || !v.Null {
		t.Errorf("empty static source = %+v, %v, want Null", v, err)
	}
}

func TestOpenDispatch(t *testing.T) {
	src, typ, err := Open(makeTestDB(t))
	if err != nil || typ != SourceTypeSQLite {
		t.Fatalf("Open(db) = %v, %v", typ, err)
	}
	src.Close()

	src, typ, err = Open(writeTempFile(t, "doc.json", `1`))
	if err != nil || typ != SourceTypeFile {
		t.Fatalf("Open(file) = %v, %v", typ, err)
	}
	src.Close()
}
