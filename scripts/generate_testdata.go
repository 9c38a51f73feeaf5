//go:build ignore

// generate_testdata.go creates sample datasets for manual testing and the
// e2e suite.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//   tests/testdata/sample.json      (nested document, a bit of everything)
//   tests/testdata/wide.json        (1000-element array)
//   tests/testdata/deep.json        (64 levels of nesting)
//   tests/testdata/records.db       (SQLite records + field_labels tables)
package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

func main() {
	outputDir := "tests/testdata"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	docs := map[string]string{
		"sample.json": sampleDoc(),
		"wide.json":   wideDoc(1000),
		"deep.json":   deepDoc(64),
	}
	for name, content := range docs {
		path := filepath.Join(outputDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Written %s (%d bytes)\n", path, len(content))
	}

	dbPath := filepath.Join(outputDir, "records.db")
	if err := writeDatabase(dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", dbPath, err)
		os.Exit(1)
	}
	fmt.Printf("Written %s\n", dbPath)

	fmt.Println("\nDone! Test datasets created in", outputDir)
}

func sampleDoc() string {
	return `{
  "name": "jsonlens sample",
  "version": 3,
  "active": true,
  "owner": null,
  "tags": ["viewer", "tree", "json"],
  "limits": {
    "depth": 64,
    "rows": 10000,
    "nested": {"enabled": true, "window": [1, 2, 3]}
  },
  "empty_list": [],
  "empty_obj": {}
}`
}

func wideDoc(n int) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, `{"id": %d, "name": "item-%d"}`, i, i)
	}
	sb.WriteString("]")
	return sb.String()
}

func deepDoc(levels int) string {
	var sb strings.Builder
	for i := 0; i < levels; i++ {
		fmt.Fprintf(&sb, `{"level%d": `, i)
	}
	sb.WriteString("42")
	sb.WriteString(strings.Repeat("}", levels))
	return sb.String()
}

func writeDatabase(path string) error {
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return err
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE records (id TEXT PRIMARY KEY, payload TEXT, settings TEXT)`,
		`CREATE TABLE field_labels (field TEXT PRIMARY KEY, label TEXT)`,
		`INSERT INTO field_labels VALUES ('payload', 'Payload'), ('settings', 'Settings')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	records := []struct{ id, payload, settings string }{
		{"rec-1", sampleDoc(), `{"theme": "dark", "watch": true}`},
		{"rec-2", wideDoc(50), `{"theme": "light"}`},
		{"rec-3", "", ""},
	}
	for _, r := range records {
		payload := sql.NullString{String: r.payload, Valid: r.payload != ""}
		settings := sql.NullString{String: r.settings, Valid: r.settings != ""}
		if _, err := db.Exec(`INSERT INTO records VALUES (?, ?, ?)`, r.id, payload, settings); err != nil {
			return err
		}
	}
	return nil
}
