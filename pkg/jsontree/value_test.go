package jsontree

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, text string) *Value {
	t.Helper()
	v, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", text, err)
	}
	return v
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
	}{
		{`null`, KindNull},
		{`true`, KindBool},
		{`false`, KindBool},
		{`42`, KindNumber},
		{`-3.14`, KindNumber},
		{`"hello"`, KindString},
		{`""`, KindString},
	}

	for _, tt := range tests {
		v := mustParse(t, tt.text)
		if v.Kind() != tt.kind {
			t.Errorf("Parse(%q): kind = %v, want %v", tt.text, v.Kind(), tt.kind)
		}
		if v.IsContainer() {
			t.Errorf("Parse(%q): scalar reported as container", tt.text)
		}
	}
}

func TestParsePreservesMemberOrder(t *testing.T) {
	// Deliberately not alphabetical; map-based decoding would reshuffle.
	v := mustParse(t, `{"zebra":1,"apple":2,"mango":3,"banana":4}`)

	want := []string{"zebra", "apple", "mango", "banana"}
	members := v.Members()
	if len(members) != len(want) {
		t.Fatalf("member count = %d, want %d", len(members), len(want))
	}
	for i, m := range members {
		if m.Key != want[i] {
			t.Errorf("member[%d].Key = %q, want %q", i, m.Key, want[i])
		}
	}
}

func TestParseNumberTextRoundTrips(t *testing.T) {
	// json.Number keeps the source text, so 1.50 must not become 1.5.
	v := mustParse(t, `[1.50, 1e10, -0.001, 9007199254740993]`)

	want := []string{"1.50", "1e10", "-0.001", "9007199254740993"}
	for i, item := range v.Items() {
		if got := item.Number().String(); got != want[i] {
			t.Errorf("item %d: number text = %q, want %q", i, got, want[i])
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	invalid := []string{
		`{invalid`,
		`{"a":}`,
		`[1,2,`,
		`{"a":1}{"b":2}`,
		// Truncated literals and a malformed number decode cleanly through
		// the token reader, so these exercise the upfront validation.
		`tru`,
		`fals`,
		`nul`,
		`1.2.3`,
	}
	for _, text := range invalid {
		if _, err := Parse(text); err == nil {
			t.Errorf("Parse(%q): expected error, got nil", text)
		}
	}
}

func TestParseNestedStructure(t *testing.T) {
	v := mustParse(t, `{"a":{"b":[1,{"c":null}]},"d":[]}`)

	if v.Kind() != KindObject || v.Len() != 2 {
		t.Fatalf("root: kind=%v len=%d, want object of 2", v.Kind(), v.Len())
	}
	key, a := v.Entry(0)
	if key != "a" || a.Kind() != KindObject {
		t.Fatalf("entry 0: key=%q kind=%v", key, a.Kind())
	}
	_, b := a.Entry(0)
	if b.Kind() != KindArray || b.Len() != 2 {
		t.Fatalf("a.b: kind=%v len=%d, want array of 2", b.Kind(), b.Len())
	}
	idx, first := b.Entry(0)
	if idx != "0" || first.Kind() != KindNumber {
		t.Errorf("a.b[0]: key=%q kind=%v, want \"0\" number", idx, first.Kind())
	}
	_, d := v.Entry(1)
	if d.Kind() != KindArray || d.Len() != 0 {
		t.Errorf("d: kind=%v len=%d, want empty array", d.Kind(), d.Len())
	}
}

func TestIndentJSONPreservesOrder(t *testing.T) {
	v := mustParse(t, `{"z":1,"a":{"y":true,"b":null}}`)

	got := v.IndentJSON("  ")
	want := "{\n  \"z\": 1,\n  \"a\": {\n    \"y\": true,\n    \"b\": null\n  }\n}"
	if got != want {
		t.Errorf("IndentJSON:\ngot  %q\nwant %q", got, want)
	}
}

func TestCompactJSONRoundTrip(t *testing.T) {
	tests := []string{
		`null`,
		`true`,
		`"with \"escapes\" and \n newline"`,
		`{"a":1.50,"b":[1,2,3],"c":{},"d":[]}`,
		`[{"x":"y"},null,false]`,
	}
	for _, text := range tests {
		v := mustParse(t, text)
		got := v.CompactJSON()
		// Re-parse and compare serializations; escape forms may legitimately
		// differ from the input, but must be stable.
		v2 := mustParse(t, got)
		if again := v2.CompactJSON(); again != got {
			t.Errorf("CompactJSON(%q) not stable: %q then %q", text, got, again)
		}
	}
}

func TestParseDeeplyNested(t *testing.T) {
	// Stack depth grows with document nesting; make sure practical depths
	// parse and re-serialize cleanly.
	const depth = 500
	text := strings.Repeat(`{"n":`, depth) + "1" + strings.Repeat("}", depth)

	v := mustParse(t, text)
	cur := v
	for i := 0; i < depth; i++ {
		if cur.Kind() != KindObject || cur.Len() != 1 {
			t.Fatalf("level %d: kind=%v len=%d", i, cur.Kind(), cur.Len())
		}
		_, cur = cur.Entry(0)
	}
	if cur.Kind() != KindNumber {
		t.Fatalf("innermost kind = %v, want number", cur.Kind())
	}
}
