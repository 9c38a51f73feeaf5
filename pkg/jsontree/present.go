package jsontree

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeID derives the identifier for the tree position reached by the dotted
// key path at the given nesting depth. The same position always yields the
// same id across re-derivations, which is what lets the expansion set survive
// a full rebuild. The root position has an empty path.
func NodeID(path string, depth int) string {
	return path + "_" + strconv.Itoa(depth)
}

// PathFromID recovers the dotted path from a node id given the row's depth.
func PathFromID(id string, depth int) string {
	return strings.TrimSuffix(id, "_"+strconv.Itoa(depth))
}

// JoinPath appends a local key or array index to a dotted path.
func JoinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Summarize renders a value for a single display row: strings quoted
// verbatim, numbers and booleans in their canonical text form, null as the
// literal. Containers fall through to generic serialization; callers that
// want a count placeholder use ContainerSummary instead.
func Summarize(v *Value) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	case KindNumber:
		return v.num.String()
	case KindString:
		return `"` + v.str + `"`
	default:
		return v.CompactJSON()
	}
}

// ContainerSummary renders the count placeholder shown for a container row
// whose children are not materialized inline.
func ContainerSummary(v *Value) string {
	if v.kind == KindArray {
		return fmt.Sprintf("[%d items]", len(v.items))
	}
	return fmt.Sprintf("{%d properties}", len(v.members))
}
