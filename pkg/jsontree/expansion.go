package jsontree

// Controller owns the expansion set and the expand-all state machine. The
// derivation side (Materialize) only ever reads the set; every mutation here
// is followed by a full re-materialization by the caller, never an in-place
// patch of the previous tree.
type Controller struct {
	set ExpansionSet

	// allExpanded is advisory: it only picks the toggle-all affordance's
	// label. A manual toggle hard-resets it to false instead of recomputing
	// whether the document happens to be fully expanded.
	allExpanded bool
}

// NewController returns a controller with an empty expansion set.
func NewController() *Controller {
	return &Controller{set: make(ExpansionSet)}
}

// Expanded exposes the live expansion set for materialization. Callers must
// treat it as read-only.
func (c *Controller) Expanded() ExpansionSet { return c.set }

// AllExpanded reports the advisory toggle-all state.
func (c *Controller) AllExpanded() bool { return c.allExpanded }

// Toggle flips membership of id in the expansion set.
func (c *Controller) Toggle(id string) {
	if _, ok := c.set[id]; ok {
		delete(c.set, id)
	} else {
		c.set[id] = struct{}{}
	}
	c.allExpanded = false
}

// ExpandAll inserts the id of every container with at least one entry, at
// every depth, ignoring the current expansion state of its ancestors.
func (c *Controller) ExpandAll(value *Value) {
	c.expandBelow(value, "", 0, -1)
	c.allExpanded = true
}

// ExpandToDepth expands containers whose rows sit above the given depth,
// so depth 1 opens only the top-level containers.
func (c *Controller) ExpandToDepth(value *Value, maxDepth int) {
	if maxDepth <= 0 {
		return
	}
	c.expandBelow(value, "", 0, maxDepth)
}

func (c *Controller) expandBelow(value *Value, path string, depth, maxDepth int) {
	if value == nil || !value.IsContainer() {
		return
	}
	if maxDepth >= 0 && depth >= maxDepth {
		return
	}
	for i, n := 0, value.Len(); i < n; i++ {
		key, child := value.Entry(i)
		fullPath := JoinPath(path, key)
		if child.IsContainer() && child.Len() > 0 {
			c.set[NodeID(fullPath, depth)] = struct{}{}
		}
		c.expandBelow(child, fullPath, depth+1, maxDepth)
	}
}

// CollapseAll empties the expansion set.
func (c *Controller) CollapseAll() {
	clear(c.set)
	c.allExpanded = false
}

// ToggleAll is the single entry point for the toggle-all affordance: collapse
// everything when the advisory flag says the tree is fully expanded, expand
// everything otherwise.
func (c *Controller) ToggleAll(value *Value) {
	if c.allExpanded {
		c.CollapseAll()
	} else {
		c.ExpandAll(value)
	}
}
