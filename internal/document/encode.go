package document

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lc/yamlnode/internal/node"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// Options controls Encode.
type Options struct {
	// Format selects block or compact layout.
	Format Format
	// Indent is the number of spaces per level; zero means DefaultIndent.
	Indent int
	// Header is written above the document as a comment block. Lines that
	// do not already start with "#" are prefixed with "# ".
	Header string
}

// Encode renders m as a YAML document.
func Encode(m *node.Mapping, opts Options) ([]byte, error) {
	indent := opts.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	var buf bytes.Buffer
	writeHeader(&buf, opts.Header)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	root := encodeMapping(m, opts.Format)
	// The document itself always stays in block style.
	root.Style = 0
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, header string) {
	if header == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(header, "\r\n"), "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "#"):
		case line == "":
			line = "#"
		default:
			line = "# " + line
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

func encodeValue(v node.Value, f Format) *yaml.Node {
	switch v.Kind() {
	case node.KindNull:
		return scalar("!!null", "null")
	case node.KindBool:
		b, _ := v.Bool()
		return scalar("!!bool", strconv.FormatBool(b))
	case node.KindInt:
		i, _ := v.Int()
		return scalar("!!int", strconv.FormatInt(i, 10))
	case node.KindFloat:
		fl, _ := v.Float()
		return scalar("!!float", node.FormatFloat(fl))
	case node.KindString:
		s, _ := v.Text()
		return scalar("!!str", s)
	case node.KindSequence:
		items, _ := v.Items()
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			out.Content = append(out.Content, encodeValue(item, f))
		}
		if f == Compact && allScalars(out.Content) {
			out.Style = yaml.FlowStyle
		}
		return out
	case node.KindMapping:
		m, _ := v.Mapping()
		return encodeMapping(m, f)
	default:
		return scalar("!!null", "null")
	}
}

func encodeMapping(m *node.Mapping, f Format) *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var values []*yaml.Node
	m.Range(func(k string, v node.Value) bool {
		val := encodeValue(v, f)
		out.Content = append(out.Content, scalar("!!str", k), val)
		values = append(values, val)
		return true
	})
	if f == Compact && len(values) > 0 && allScalars(values) {
		out.Style = yaml.FlowStyle
	}
	return out
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func allScalars(nodes []*yaml.Node) bool {
	for _, n := range nodes {
		if n.Kind != yaml.ScalarNode {
			return false
		}
	}
	return true
}
