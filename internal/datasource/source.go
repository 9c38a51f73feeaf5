// Package datasource supplies the raw JSON text of a named field of a record,
// plus a human-readable label for that field. Sources are asynchronous from
// the viewer's point of view: text (or null, or an error) becomes available
// at some point and may change on a later fetch.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Common errors.
var (
	ErrNoSource      = errors.New("no data source at path")
	ErrRecordMissing = errors.New("record not found")
	ErrFieldMissing  = errors.New("field not found")
)

// SourceType identifies the kind of backing store.
type SourceType string

const (
	// SourceTypeSQLite is a SQLite database holding records.
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeFile is a plain file whose whole content is the field text.
	SourceTypeFile SourceType = "file"
)

// FieldValue is the outcome of a successful fetch: either text or an explicit
// null (e.g. a NULL column), which the viewer treats as "no data".
type FieldValue struct {
	Text string
	Null bool
}

// RecordSource fetches the raw JSON text of one field of one record.
type RecordSource interface {
	FetchField(ctx context.Context, recordID, field string) (FieldValue, error)
	Close() error
}

// LabelSource resolves a display label for a field name. Purely cosmetic;
// a failed lookup falls back to the field name itself.
type LabelSource interface {
	FieldLabel(ctx context.Context, field string) (string, error)
}

// sqliteMagic is the first 16 bytes of every SQLite database file.
const sqliteMagic = "SQLite format 3\x00"

// Detect classifies the backing store at path. SQLite is recognized by file
// magic, not extension, since databases get named all sorts of things.
func Detect(path string) (SourceType, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNoSource, path)
		}
		return "", err
	}
	defer f.Close()

	header := make([]byte, len(sqliteMagic))
	n, _ := f.Read(header)
	if n == len(sqliteMagic) && strings.HasPrefix(string(header), sqliteMagic) {
		return SourceTypeSQLite, nil
	}
	return SourceTypeFile, nil
}

// Open detects the source type at path and returns the matching RecordSource.
func Open(path string) (RecordSource, SourceType, error) {
	typ, err := Detect(path)
	if err != nil {
		return nil, "", err
	}
	switch typ {
	case SourceTypeSQLite:
		src, err := OpenSQLite(path, DefaultTable)
		return src, typ, err
	default:
		return NewFileSource(path), SourceTypeFile, nil
	}
}
