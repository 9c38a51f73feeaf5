package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// DefaultTable is the table queried when the caller doesn't name one.
const DefaultTable = "records"

// SQLiteSource reads record fields from a SQLite database. The database is
// opened read-only; the viewer never writes.
type SQLiteSource struct {
	db    *sql.DB
	path  string
	table string
}

// OpenSQLite opens the database at path for reading fields of the given
// table. An empty table name selects DefaultTable.
func OpenSQLite(path, table string) (*SQLiteSource, error) {
	if table == "" {
		table = DefaultTable
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Read-performance pragmas; failures are non-fatal.
	pragmas := []string{
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		db.Exec(pragma)
	}

	return &SQLiteSource{db: db, path: path, table: table}, nil
}

// Close closes the database connection.
func (s *SQLiteSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path, used for change watching.
func (s *SQLiteSource) Path() string { return s.path }

// Table returns the table fields are read from.
func (s *SQLiteSource) Table() string { return s.table }

// FetchField reads one column of one row. A NULL column comes back as an
// explicit null FieldValue; a missing row or column is a fetch error.
func (s *SQLiteSource) FetchField(ctx context.Context, recordID, field string) (FieldValue, error) {
	col, err := s.resolveColumn(ctx, field)
	if err != nil {
		return FieldValue{}, err
	}

	// Identifiers can't be bound as parameters; col was validated against
	// the table schema above.
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, quoteIdent(col), quoteIdent(s.table))

	var text sql.NullString
	err = s.db.QueryRowContext(ctx, query, recordID).Scan(&text)
	if err == sql.ErrNoRows {
		return FieldValue{}, fmt.Errorf("%w: %s", ErrRecordMissing, recordID)
	}
	if err != nil {
		return FieldValue{}, fmt.Errorf("fetch %s.%s: %w", s.table, field, err)
	}
	if !text.Valid {
		return FieldValue{Null: true}, nil
	}
	return FieldValue{Text: text.String}, nil
}

// ListJSONFields enumerates the table's text-typed columns, in schema order.
// These are the candidates offered by the field picker; the id column is
// excluded.
func (s *SQLiteSource) ListJSONFields(ctx context.Context) ([]string, error) {
	cols, err := s.tableColumns(ctx)
	if err != nil {
		return nil, err
	}
	var fields []string
	for _, c := range cols {
		if c.name == "id" {
			continue
		}
		typ := strings.ToUpper(c.declType)
		if typ == "" || strings.Contains(typ, "TEXT") || strings.Contains(typ, "CHAR") ||
			strings.Contains(typ, "CLOB") || strings.Contains(typ, "JSON") {
			fields = append(fields, c.name)
		}
	}
	return fields, nil
}

// FieldLabel implements LabelSource from an optional field_labels table
// (field, label). Missing table or row falls back to the field name.
func (s *SQLiteSource) FieldLabel(ctx context.Context, field string) (string, error) {
	var label string
	err := s.db.QueryRowContext(ctx,
		`SELECT label FROM field_labels WHERE field = ?`, field).Scan(&label)
	if err != nil || label == "" {
		return field, nil
	}
	return label, nil
}

type columnInfo struct {
	name     string
	declType string
}

func (s *SQLiteSource) tableColumns(ctx context.Context) ([]columnInfo, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, quoteIdent(s.table)))
	if err != nil {
		return nil, fmt.Errorf("inspect table %s: %w", s.table, err)
	}
	defer rows.Close()

	var cols []columnInfo
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &primaryKey); err != nil {
			return nil, err
		}
		cols = append(cols, columnInfo{name: name, declType: typ})
	}
	return cols, rows.Err()
}

// resolveColumn validates field against the actual table schema so it can be
// interpolated into the query safely.
func (s *SQLiteSource) resolveColumn(ctx context.Context, field string) (string, error) {
	cols, err := s.tableColumns(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range cols {
		if c.name == field {
			return c.name, nil
		}
	}
	return "", fmt.Errorf("%w: %s.%s", ErrFieldMissing, s.table, field)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
