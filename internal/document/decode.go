package document

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/lc/yamlnode/internal/node"
)

// maxDepth bounds nesting, which also stops alias cycles.
const maxDepth = 512

// Decode parses a YAML document into a root mapping. Empty input and an
// explicit null document decode to an empty mapping; any other non-mapping
// document is a *FormatError.
func Decode(data []byte) (*node.Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, syntaxError(err)
	}
	root := content(&doc)
	if root == nil || (root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null") {
		return node.NewMapping(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &FormatError{Line: root.Line, Err: errors.New("top-level value is not a mapping")}
	}
	return new(decoder).mapping(root, 0)
}

// DecodeReader is Decode over the full contents of r.
func DecodeReader(r io.Reader) (*node.Mapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return Decode(data)
}

// ParseValue parses a single YAML value, such as "42", "[a, b]" or
// "{x: 1, y: 2}". Empty input is null.
func ParseValue(text string) (node.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return node.Null(), syntaxError(err)
	}
	root := content(&doc)
	if root == nil {
		return node.Null(), nil
	}
	return new(decoder).value(root, 0)
}

// content unwraps the document node yaml.v3 always returns at the top.
func content(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	return doc.Content[0]
}

// decoder walks one document. Aliases are expanded into copies, so it
// counts the values it builds and how many of them came from an alias, and
// gives up when aliasing dominates the way yaml.v3 does for Go values.
type decoder struct {
	decoded    int
	aliased    int
	aliasDepth int
}

// allowedAliasRatio mirrors yaml.v3: small documents may be almost all
// aliases, large ones may not.
func allowedAliasRatio(decoded int) float64 {
	switch {
	case decoded <= 400_000:
		return 0.99
	case decoded >= 4_000_000:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decoded-400_000)/3_600_000)
	}
}

// count records one built value and fails once aliases have been expanded
// past the allowed ratio.
func (d *decoder) count(n *yaml.Node) error {
	d.decoded++
	if d.aliasDepth > 0 {
		d.aliased++
	}
	if d.aliased > 100 && d.decoded > 1000 &&
		float64(d.aliased)/float64(d.decoded) > allowedAliasRatio(d.decoded) {
		return &FormatError{Line: n.Line, Err: errors.New("document contains excessive aliasing")}
	}
	return nil
}

func (d *decoder) value(n *yaml.Node, depth int) (node.Value, error) {
	if depth > maxDepth {
		return node.Null(), &FormatError{Line: n.Line, Err: errors.New("document nested too deeply")}
	}
	if n.Kind == yaml.MappingNode {
		m, err := d.mapping(n, depth)
		if err != nil {
			return node.Null(), err
		}
		return node.Map(m), nil
	}
	if err := d.count(n); err != nil {
		return node.Null(), err
	}

	switch n.Kind {
	case yaml.AliasNode:
		d.aliasDepth++
		defer func() { d.aliasDepth-- }()
		return d.value(n.Alias, depth+1)
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.SequenceNode:
		items := make([]node.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.value(c, depth+1)
			if err != nil {
				return node.Null(), err
			}
			items = append(items, v)
		}
		return node.Seq(items...), nil
	default:
		return node.Null(), &FormatError{Line: n.Line, Err: fmt.Errorf("unexpected node kind %d", n.Kind)}
	}
}

func decodeScalar(n *yaml.Node) (node.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return node.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return node.Null(), &FormatError{Line: n.Line, Err: err}
		}
		return node.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return node.Int(i), nil
		}
		// Out of int64 range.
		var f float64
		if err := n.Decode(&f); err != nil {
			return node.Null(), &FormatError{Line: n.Line, Err: err}
		}
		return node.Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return node.Null(), &FormatError{Line: n.Line, Err: err}
		}
		return node.Float(f), nil
	default:
		return node.String(n.Value), nil
	}
}

// mapping keeps key order. Keys pulled in through "<<" merge keys are
// appended after the explicit keys and never override them.
func (d *decoder) mapping(n *yaml.Node, depth int) (*node.Mapping, error) {
	if depth > maxDepth {
		return nil, &FormatError{Line: n.Line, Err: errors.New("document nested too deeply")}
	}
	if err := d.count(n); err != nil {
		return nil, err
	}
	m := node.NewMapping()
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.AliasNode {
			k = k.Alias
		}
		if k.Kind != yaml.ScalarNode {
			return nil, &FormatError{Line: k.Line, Err: errors.New("mapping keys must be scalars")}
		}
		if k.ShortTag() == "!!merge" {
			merges = append(merges, v)
			continue
		}
		val, err := d.value(v, depth+1)
		if err != nil {
			return nil, err
		}
		m.Set(k.Value, val)
	}

	for _, src := range merges {
		if err := d.merge(m, src, depth+1); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (d *decoder) merge(dst *node.Mapping, src *yaml.Node, depth int) error {
	if src.Kind == yaml.AliasNode {
		d.aliasDepth++
		defer func() { d.aliasDepth-- }()
		src = src.Alias
	}
	switch src.Kind {
	case yaml.MappingNode:
		m, err := d.mapping(src, depth)
		if err != nil {
			return err
		}
		m.Range(func(k string, v node.Value) bool {
			if _, exists := dst.Get(k); !exists {
				dst.Set(k, v)
			}
			return true
		})
		return nil
	case yaml.SequenceNode:
		for _, c := range src.Content {
			if err := d.merge(dst, c, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return &FormatError{Line: src.Line, Err: errors.New("merge value must be a mapping or a sequence of mappings")}
	}
}
