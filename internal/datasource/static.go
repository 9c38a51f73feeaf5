package datasource

import "context"

// StaticSource serves a fixed piece of text, used when the document arrives
// on stdin and there is nothing to re-fetch.
type StaticSource struct {
	text string
}

// NewStaticSource wraps text in a RecordSource.
func NewStaticSource(text string) *StaticSource {
	return &StaticSource{text: text}
}

// FetchField returns the captured text; recordID and field are ignored.
func (s *StaticSource) FetchField(ctx context.Context, recordID, field string) (FieldValue, error) {
	if s.text == "" {
		return FieldValue{Null: true}, nil
	}
	return FieldValue{Text: s.text}, nil
}

// Close is a no-op.
func (s *StaticSource) Close() error { return nil }
