package jsontree

// DisplayNode is one visible row of the tree. Nodes are rebuilt on every
// materialization and carry no identity beyond the current render; the
// presentation layer must never mutate them in place and must route any
// interaction back through the expansion controller.
type DisplayNode struct {
	ID           string
	DisplayKey   string
	ValueSummary string
	ValueKind    Kind
	Depth        int
	Expandable   bool
	Expanded     bool
	Children     []DisplayNode
}

// ExpansionSet holds the ids of currently-expanded nodes. It has a single
// writer (the Controller) and is only read during materialization.
type ExpansionSet map[string]struct{}

// Contains reports whether id is in the set.
func (s ExpansionSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Materialize derives the display tree for value under the given expansion
// set. Children are populated only for expanded container rows; a collapsed
// node's contents are never visited. Total over well-formed values: it does
// not fail, the upstream parse does.
func Materialize(value *Value, set ExpansionSet) []DisplayNode {
	return materialize(value, set, "", 0)
}

func materialize(value *Value, set ExpansionSet, path string, depth int) []DisplayNode {
	if value == nil {
		return nil
	}

	// A bare scalar only reaches here at the root: one leaf row, no
	// synthetic wrapper node.
	if !value.IsContainer() {
		return []DisplayNode{{
			ID:           NodeID(path, depth),
			ValueSummary: Summarize(value),
			ValueKind:    value.kind,
			Depth:        depth,
		}}
	}

	nodes := make([]DisplayNode, 0, value.Len())
	for i, n := 0, value.Len(); i < n; i++ {
		localKey, child := value.Entry(i)
		fullPath := JoinPath(path, localKey)
		id := NodeID(fullPath, depth)

		// Empty containers never show an expand affordance.
		expandable := child.IsContainer() && child.Len() > 0
		expanded := expandable && set.Contains(id)

		node := DisplayNode{
			ID:         id,
			DisplayKey: localKey,
			ValueKind:  child.kind,
			Depth:      depth,
			Expandable: expandable,
			Expanded:   expanded,
		}
		if child.IsContainer() {
			node.ValueSummary = ContainerSummary(child)
		} else {
			node.ValueSummary = Summarize(child)
		}
		if expanded {
			node.Children = materialize(child, set, fullPath, depth+1)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// CountRows returns the total number of visible rows, children included.
func CountRows(nodes []DisplayNode) int {
	total := 0
	for i := range nodes {
		total += 1 + CountRows(nodes[i].Children)
	}
	return total
}

// Flatten lists the tree's rows in render order, depth-first.
func Flatten(nodes []DisplayNode) []DisplayNode {
	out := make([]DisplayNode, 0, len(nodes))
	var walk func([]DisplayNode)
	walk = func(ns []DisplayNode) {
		for i := range ns {
			out = append(out, ns[i])
			walk(ns[i].Children)
		}
	}
	walk(nodes)
	return out
}
