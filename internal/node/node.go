package node

import (
	"strings"

	"github.com/lc/yamlnode/internal/log"
)

// Separator splits a dotted path into mapping keys.
const Separator = "."

// Node is a live view over one mapping of a document. Nodes handed out by
// navigation share their mapping with the node they came from, so a write
// through any of them is visible through all of them.
type Node struct {
	root          *Mapping
	writeDefaults bool
}

// New wraps root. A nil root is replaced with a new, empty mapping.
// writeDefaults controls whether the *Or accessors persist a missing value.
func New(root *Mapping, writeDefaults bool) *Node {
	if root == nil {
		root = NewMapping()
	}
	return &Node{root: root, writeDefaults: writeDefaults}
}

// Map returns the backing mapping.
func (n *Node) Map() *Mapping { return n.root }

// Clear empties the backing mapping in place.
func (n *Node) Clear() { n.root.Clear() }

// WriteDefaults reports whether missing values read with a default are
// written back.
func (n *Node) WriteDefaults() bool { return n.writeDefaults }

// SetWriteDefaults changes the default-injection flag for this node only.
// Nodes created from n afterwards copy the new value; nodes created earlier
// keep theirs.
func (n *Node) SetWriteDefaults(writeDefaults bool) { n.writeDefaults = writeDefaults }

// outcome is the result of resolving and casting a value.
type outcome uint8

const (
	found outcome = iota
	notFound
	wrongType
)

// Property returns the value at path. A missing key, an intermediate value
// that is not a mapping, and a stored null all report ok == false.
func (n *Node) Property(path string) (Value, bool) {
	v := n.get(path)
	return v, !v.IsNull()
}

// get resolves path, returning the null Value when nothing usable is there.
func (n *Node) get(path string) Value {
	parts := strings.Split(path, Separator)
	cur := n.root
	for i, part := range parts {
		v, ok := cur.Get(part)
		if !ok {
			return Value{}
		}
		if i == len(parts)-1 {
			return v
		}
		if cur, ok = v.Mapping(); !ok {
			return Value{}
		}
	}
	return Value{}
}

// SetProperty stores value at path, creating intermediate mappings as
// needed. An intermediate key holding anything other than a mapping is
// replaced by an empty mapping, discarding what was there. value is
// converted to a document Value first; see Prepare.
func (n *Node) SetProperty(path string, value any) {
	n.set(path, Prepare(value))
}

func (n *Node) set(path string, v Value) {
	parts := strings.Split(path, Separator)
	cur := n.root
	for _, part := range parts[:len(parts)-1] {
		child, _ := cur.Get(part)
		next, ok := child.Mapping()
		if !ok {
			if !child.IsNull() {
				log.Debug("node: replacing non-mapping value", "key", part, "kind", child.Kind())
			}
			next = NewMapping()
			cur.Set(part, Map(next))
		}
		cur = next
	}
	cur.Set(parts[len(parts)-1], v)
}

// RemoveProperty deletes the value at path. It does nothing when any
// intermediate key is missing or is not a mapping.
func (n *Node) RemoveProperty(path string) {
	parts := strings.Split(path, Separator)
	cur := n.root
	for _, part := range parts[:len(parts)-1] {
		child, _ := cur.Get(part)
		next, ok := child.Mapping()
		if !ok {
			return
		}
		cur = next
	}
	cur.Delete(parts[len(parts)-1])
}

// AddNode stores a new, empty mapping at path, replacing whatever was there,
// and returns a node over it.
func (n *Node) AddNode(path string) *Node {
	child := New(nil, n.writeDefaults)
	n.set(path, Map(child.root))
	return child
}

// Node returns a view over the mapping at path.
func (n *Node) Node(path string) (*Node, bool) {
	m, ok := n.get(path).Mapping()
	if !ok {
		return nil, false
	}
	return n.child(m), true
}

// Nodes returns a view over every entry of the mapping at path whose value
// is itself a mapping. Other entries are left out.
func (n *Node) Nodes(path string) (map[string]*Node, bool) {
	m, ok := n.get(path).Mapping()
	if !ok {
		return nil, false
	}
	nodes := make(map[string]*Node, m.Len())
	m.Range(func(key string, v Value) bool {
		if sub, ok := v.Mapping(); ok {
			nodes[key] = n.child(sub)
		}
		return true
	})
	return nodes, true
}

// Keys returns the keys of the mapping at path in document order. An empty
// path names this node's own mapping.
func (n *Node) Keys(path string) ([]string, bool) {
	if path == "" {
		return n.root.Keys(), true
	}
	m, ok := n.get(path).Mapping()
	if !ok {
		return nil, false
	}
	return m.Keys(), true
}

func (n *Node) child(m *Mapping) *Node {
	return &Node{root: m, writeDefaults: n.writeDefaults}
}
