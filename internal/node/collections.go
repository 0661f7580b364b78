package node

import "github.com/lc/yamlnode/internal/log"

// List returns the sequence stored at path. A scalar is not promoted to a
// one-element list. The returned slice shares its backing array with the
// document.
func (n *Node) List(path string) ([]Value, bool) {
	return n.get(path).Items()
}

// listOf extracts a typed list from the sequence at path. Elements that do
// not cast are dropped. When nothing is stored, def is written back if
// write-defaults is on and def is non-nil; the result is then def, or an
// empty list for a nil def. A non-sequence value is never overwritten.
func listOf[T any](n *Node, path string, def []T, cast func(Value) (T, outcome)) []T {
	v := n.get(path)
	raw, ok := v.Items()
	if !ok {
		if v.IsNull() && n.writeDefaults && def != nil {
			n.SetProperty(path, def)
		} else if !v.IsNull() {
			log.Debug("node: value is not a sequence", "path", path, "kind", v.Kind())
		}
		if def == nil {
			return []T{}
		}
		return def
	}

	out := make([]T, 0, len(raw))
	for _, item := range raw {
		if x, res := cast(item); res == found {
			out = append(out, x)
		}
	}
	return out
}

// StringList returns the elements of the sequence at path in textual form.
// Null elements are dropped.
func (n *Node) StringList(path string, def []string) []string {
	return listOf(n, path, def, castString)
}

// IntList returns the numeric elements of the sequence at path, truncated.
func (n *Node) IntList(path string, def []int) []int {
	return listOf(n, path, def, castInt)
}

// FloatList returns the numeric elements of the sequence at path.
func (n *Node) FloatList(path string, def []float64) []float64 {
	return listOf(n, path, def, castFloat)
}

// BoolList returns the boolean elements of the sequence at path.
func (n *Node) BoolList(path string, def []bool) []bool {
	return listOf(n, path, def, castBool)
}

// NodeList returns a view over every mapping element of the sequence at
// path. Writing a default stores each default node's mapping by reference.
func (n *Node) NodeList(path string, def []*Node) []*Node {
	return listOf(n, path, def, func(v Value) (*Node, outcome) {
		m, ok := v.Mapping()
		if !ok {
			return nil, wrongType
		}
		return n.child(m), found
	})
}
