package document

import (
	"fmt"
	"strings"
)

// Format selects how collections are laid out when encoding.
type Format uint8

const (
	// Extended writes every collection in block style, one entry per line.
	Extended Format = iota
	// Compact writes collections whose entries are all scalars in flow
	// style ([a, b] and {k: v}) and everything else in block style.
	Compact
)

// String returns the name ParseFormat accepts.
func (f Format) String() string {
	switch f {
	case Extended:
		return "extended"
	case Compact:
		return "compact"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat parses a format name. "block" and "flow" are accepted as
// aliases of extended and compact.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "extended", "block":
		return Extended, nil
	case "compact", "flow":
		return Compact, nil
	default:
		return Extended, fmt.Errorf("unknown format %q (want extended or compact)", s)
	}
}
