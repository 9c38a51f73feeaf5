package datasource

import (
	"context"
	"os"
)

// FileSource serves a single field whose text is the entire file content.
// The record id is ignored; a file is one record with one field.
type FileSource struct {
	path string
}

// NewFileSource returns a source backed by the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchField reads the file. A missing file is a fetch error, not a null
// value; an empty file is the "no data" case and comes back as null.
func (s *FileSource) FetchField(ctx context.Context, recordID, field string) (FieldValue, error) {
	if err := ctx.Err(); err != nil {
		return FieldValue{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return FieldValue{}, err
	}
	if len(data) == 0 {
		return FieldValue{Null: true}, nil
	}
	return FieldValue{Text: string(data)}, nil
}

// Close is a no-op; the file is opened per fetch.
func (s *FileSource) Close() error { return nil }

// Path returns the backing file path, used for change watching.
func (s *FileSource) Path() string { return s.path }

// FieldLabel implements LabelSource with the field name itself; files carry
// no metadata.
func (s *FileSource) FieldLabel(ctx context.Context, field string) (string, error) {
	return field, nil
}
