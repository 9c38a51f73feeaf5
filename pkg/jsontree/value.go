// Package jsontree derives a partial, collapsible display tree from a JSON
// document and a set of expanded node ids. The tree is rebuilt from scratch
// after every mutation; the expansion set is the only state that survives a
// rebuild.
package jsontree

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Kind classifies a JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value *Value
}

// Value is an immutable parsed JSON value. Object members keep the order in
// which keys first appeared in the document; rebuilding the display tree must
// reproduce the exact same row order on every derivation, and Go's map-based
// decode cannot guarantee that. Numbers are held as json.Number so their
// source text round-trips verbatim.
type Value struct {
	kind    Kind
	boolVal bool
	num     json.Number
	str     string
	items   []*Value
	members []Member
}

// Kind returns the value's classification. Total: every parsed value has one.
func (v *Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. Only meaningful for KindBool.
func (v *Value) Bool() bool { return v.boolVal }

// Number returns the numeric payload. Only meaningful for KindNumber.
func (v *Value) Number() json.Number { return v.num }

// Str returns the string payload. Only meaningful for KindString.
func (v *Value) Str() string { return v.str }

// IsContainer reports whether the value is an object or array.
func (v *Value) IsContainer() bool {
	return v.kind == KindArray || v.kind == KindObject
}

// Len returns the entry count for containers and 0 for scalars.
func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Entry returns the i-th entry of a container in document order. Array
// entries are keyed by their decimal index.
func (v *Value) Entry(i int) (string, *Value) {
	if v.kind == KindObject {
		m := v.members[i]
		return m.Key, m.Value
	}
	return strconv.Itoa(i), v.items[i]
}

// Members returns the ordered members of an object, nil for anything else.
func (v *Value) Members() []Member { return v.members }

// Items returns the elements of an array, nil for anything else.
func (v *Value) Items() []*Value { return v.items }

// Parse decodes a JSON document into an ordered Value. It is the single
// upstream parse step: callers must not materialize on a parse failure and
// should surface the returned diagnostic instead.
func Parse(text string) (*Value, error) {
	// Decoder.Token accepts bare top-level literals like tru and 1.2.3,
	// handing back true and 1.2.3 without error. Validate the raw text
	// before the token walk so those fail as parse errors.
	if !json.Valid([]byte(text)) {
		if _, err := decode(text); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("malformed JSON value")
	}
	return decode(text)
}

func decode(text string) (*Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Reject trailing content after the first value; a document is exactly
	// one JSON value.
	if dec.More() {
		return nil, fmt.Errorf("unexpected trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case nil:
		return &Value{kind: KindNull}, nil
	case bool:
		return &Value{kind: KindBool, boolVal: t}, nil
	case string:
		return &Value{kind: KindString, str: t}, nil
	case json.Number:
		return &Value{kind: KindNumber, num: t}, nil
	case float64:
		// UseNumber is set, so this branch should be unreachable; keep the
		// value representable anyway.
		return &Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(t, 'g', -1, 64))}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (*Value, error) {
	obj := &Value{kind: KindObject}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.members = append(obj.members, Member{Key: key, Value: val})
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (*Value, error) {
	arr := &Value{kind: KindArray}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.items = append(arr.items, val)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// Lookup resolves a dotted key path against the value: object segments match
// member keys, array segments are decimal indices. The empty path is the
// value itself. Keys that themselves contain dots are not addressable this
// way; node identity in the tree never depends on Lookup.
func (v *Value) Lookup(path string) (*Value, bool) {
	if path == "" {
		return v, true
	}
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch cur.kind {
		case KindObject:
			found := false
			for _, m := range cur.members {
				if m.Key == seg {
					cur = m.Value
					found = true
					break
				}
			}
			if !found {
				return nil, false
			}
		case KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(cur.items) {
				return nil, false
			}
			cur = cur.items[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// CompactJSON re-serializes the value without whitespace, preserving object
// member order.
func (v *Value) CompactJSON() string {
	var sb strings.Builder
	v.writeJSON(&sb, "", 0)
	return sb.String()
}

// IndentJSON re-serializes the value with the given indent unit per nesting
// level, preserving object member order.
func (v *Value) IndentJSON(indent string) string {
	var sb strings.Builder
	v.writeJSON(&sb, indent, 0)
	return sb.String()
}

func (v *Value) writeJSON(sb *strings.Builder, indent string, depth int) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.boolVal))
	case KindNumber:
		sb.WriteString(v.num.String())
	case KindString:
		sb.WriteString(quoteString(v.str))
	case KindArray:
		if len(v.items) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeNewlineIndent(sb, indent, depth+1)
			item.writeJSON(sb, indent, depth+1)
		}
		writeNewlineIndent(sb, indent, depth)
		sb.WriteByte(']')
	case KindObject:
		if len(v.members) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeNewlineIndent(sb, indent, depth+1)
			sb.WriteString(quoteString(m.Key))
			sb.WriteByte(':')
			if indent != "" {
				sb.WriteByte(' ')
			}
			m.Value.writeJSON(sb, indent, depth+1)
		}
		writeNewlineIndent(sb, indent, depth)
		sb.WriteByte('}')
	}
}

func writeNewlineIndent(sb *strings.Builder, indent string, depth int) {
	if indent == "" {
		return
	}
	sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		sb.WriteString(indent)
	}
}

// quoteString JSON-escapes s via the serializer so escapes match what a
// round-trip would produce.
func quoteString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// Marshal of a string cannot fail; fall back to a bare quote anyway.
		return `"` + s + `"`
	}
	return string(b)
}
