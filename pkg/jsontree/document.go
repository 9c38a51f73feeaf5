package jsontree

import "strings"

// PrettyIndent is the indent unit used when re-serializing a document for
// display or the clipboard.
const PrettyIndent = "  "

// Document is the raw-text boundary around the parse step. Absent, blank, or
// "{}" text counts as "no data" rather than a failure; anything else either
// parses into a value or leaves a human-readable error message behind.
type Document struct {
	raw   string
	value *Value
	err   string
}

// NewDocument parses raw field text into a Document. It never fails: a parse
// error is captured on the document's error surface and the value stays nil,
// so the caller materializes an empty tree.
func NewDocument(raw string) Document {
	d := Document{raw: raw}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "{}" {
		return d
	}

	v, err := Parse(trimmed)
	if err != nil {
		d.err = "Invalid JSON: " + err.Error()
		return d
	}
	d.value = v
	return d
}

// Value returns the parsed value, or nil when there is no data or parsing
// failed.
func (d Document) Value() *Value { return d.value }

// Err returns the parse error message, empty when parsing succeeded or there
// was nothing to parse.
func (d Document) Err() string { return d.err }

// Raw returns the original field text.
func (d Document) Raw() string { return d.raw }

// HasPayload reports whether materializing the document yields at least one
// row with no error set.
func (d Document) HasPayload() bool {
	if d.err != "" || d.value == nil {
		return false
	}
	if d.value.IsContainer() {
		return d.value.Len() > 0
	}
	return true
}

// Pretty re-serializes the document with two-space indentation when it
// parsed, and returns the raw text verbatim otherwise. This is the text the
// copy-to-clipboard path uses.
func (d Document) Pretty() string {
	if d.value == nil {
		return d.raw
	}
	return d.value.IndentJSON(PrettyIndent)
}
