package jsontree

import (
	"reflect"
	"testing"
)

func TestMaterializeCollapsedTopLevel(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":{"c":2}}`)

	rows := Materialize(v, ExpansionSet{})
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}

	a := rows[0]
	if a.DisplayKey != "a" || a.ValueSummary != "1" || a.Expandable || a.ValueKind != KindNumber {
		t.Errorf("row a = %+v", a)
	}
	b := rows[1]
	if b.DisplayKey != "b" || !b.Expandable || b.Expanded {
		t.Errorf("row b = %+v", b)
	}
	if b.ValueSummary != "{1 properties}" {
		t.Errorf("b summary = %q, want {1 properties}", b.ValueSummary)
	}
	if len(b.Children) != 0 {
		t.Errorf("collapsed b has %d children, want 0", len(b.Children))
	}
}

func TestMaterializeExpandedChild(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":{"c":2}}`)

	set := ExpansionSet{NodeID("b", 0): {}}
	rows := Materialize(v, set)

	b := rows[1]
	if !b.Expanded {
		t.Fatalf("b not expanded: %+v", b)
	}
	if len(b.Children) != 1 {
		t.Fatalf("b children = %d, want 1", len(b.Children))
	}
	c := b.Children[0]
	if c.DisplayKey != "c" || c.ValueSummary != "2" || c.Expandable {
		t.Errorf("row c = %+v", c)
	}
	if c.Depth != 1 {
		t.Errorf("c depth = %d, want 1", c.Depth)
	}
	if c.ID != NodeID("b.c", 1) {
		t.Errorf("c id = %q, want %q", c.ID, NodeID("b.c", 1))
	}
}

func TestMaterializeScalarRoot(t *testing.T) {
	tests := []struct {
		text    string
		summary string
		kind    Kind
	}{
		{`null`, "null", KindNull},
		{`true`, "true", KindBool},
		{`42`, "42", KindNumber},
		{`"hi"`, `"hi"`, KindString},
	}
	for _, tt := range tests {
		rows := Materialize(mustParse(t, tt.text), ExpansionSet{})
		if len(rows) != 1 {
			t.Fatalf("Materialize(%s): %d rows, want 1", tt.text, len(rows))
		}
		row := rows[0]
		if row.ValueSummary != tt.summary || row.ValueKind != tt.kind || row.Expandable {
			t.Errorf("Materialize(%s): row = %+v", tt.text, row)
		}
		if row.Depth != 0 {
			t.Errorf("Materialize(%s): depth = %d, want 0", tt.text, row.Depth)
		}
	}
}

func TestMaterializeEmptyContainersNotExpandable(t *testing.T) {
	v := mustParse(t, `{"obj":{},"arr":[]}`)

	// Even with their ids force-inserted, empty containers stay collapsed.
	set := ExpansionSet{
		NodeID("obj", 0): {},
		NodeID("arr", 0): {},
	}
	rows := Materialize(v, set)

	if rows[0].Expandable || rows[0].Expanded {
		t.Errorf("empty object row = %+v", rows[0])
	}
	if rows[0].ValueSummary != "{0 properties}" {
		t.Errorf("empty object summary = %q", rows[0].ValueSummary)
	}
	if rows[1].Expandable || rows[1].Expanded {
		t.Errorf("empty array row = %+v", rows[1])
	}
	if rows[1].ValueSummary != "[0 items]" {
		t.Errorf("empty array summary = %q", rows[1].ValueSummary)
	}
}

func TestMaterializeArrayIndices(t *testing.T) {
	v := mustParse(t, `[10, [20], "x"]`)

	set := ExpansionSet{NodeID("1", 0): {}}
	rows := Materialize(v, set)
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want 3", len(rows))
	}
	if rows[0].DisplayKey != "0" || rows[1].DisplayKey != "1" || rows[2].DisplayKey != "2" {
		t.Errorf("display keys = %q %q %q", rows[0].DisplayKey, rows[1].DisplayKey, rows[2].DisplayKey)
	}
	if rows[1].ValueSummary != "[1 items]" {
		t.Errorf("nested array summary = %q", rows[1].ValueSummary)
	}
	if len(rows[1].Children) != 1 {
		t.Fatalf("expanded nested array children = %d, want 1", len(rows[1].Children))
	}
	if got := rows[1].Children[0].ID; got != NodeID("1.0", 1) {
		t.Errorf("nested child id = %q, want %q", got, NodeID("1.0", 1))
	}
}

func TestMaterializeStaleIDsAreInert(t *testing.T) {
	v := mustParse(t, `{"a":{"b":1}}`)

	// Ids from a previous document shape simply fail to match.
	set := ExpansionSet{
		NodeID("gone", 0):   {},
		NodeID("a.gone", 1): {},
		NodeID("a", 3):      {},
		NodeID("a", 0):      {},
	}
	rows := Materialize(v, set)
	if len(rows) != 1 || !rows[0].Expanded {
		t.Fatalf("rows = %+v", rows)
	}
	if len(rows[0].Children) != 1 {
		t.Errorf("a children = %d, want 1", len(rows[0].Children))
	}
}

func TestMaterializeDeterministicOrder(t *testing.T) {
	v := mustParse(t, `{"z":{"k":1},"a":[1,2],"m":{"x":{"y":2}}}`)

	ctrl := NewController()
	ctrl.ExpandAll(v)

	first := Flatten(Materialize(v, ctrl.Expanded()))
	second := Flatten(Materialize(v, ctrl.Expanded()))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-materialization changed row order:\nfirst  %+v\nsecond %+v", first, second)
	}

	wantKeys := []string{"z", "k", "a", "0", "1", "m", "x", "y"}
	if len(first) != len(wantKeys) {
		t.Fatalf("flat row count = %d, want %d", len(first), len(wantKeys))
	}
	for i, row := range first {
		if row.DisplayKey != wantKeys[i] {
			t.Errorf("row %d key = %q, want %q", i, row.DisplayKey, wantKeys[i])
		}
	}
}

func TestCountRowsMatchesFlatten(t *testing.T) {
	v := mustParse(t, `{"a":[1,{"b":2}],"c":3}`)
	ctrl := NewController()
	ctrl.ExpandAll(v)

	rows := Materialize(v, ctrl.Expanded())
	if got, want := CountRows(rows), len(Flatten(rows)); got != want {
		t.Errorf("CountRows = %d, Flatten length = %d", got, want)
	}
}
