package node

import (
	"math"

	"github.com/google/uuid"

	"github.com/lc/yamlnode/internal/log"
)

// The cast* functions convert a resolved value; null always casts to notFound.

func castString(v Value) (string, outcome) {
	switch v.kind {
	case KindNull:
		return "", notFound
	case KindString:
		return v.s, found
	case KindBool, KindInt, KindFloat, KindSequence, KindMapping:
		return v.String(), found
	default:
		return "", wrongType
	}
}

func castInt(v Value) (int, outcome) {
	switch v.kind {
	case KindNull:
		return 0, notFound
	case KindInt:
		return int(v.i), found
	case KindFloat:
		i, ok := truncate(v.f)
		if !ok {
			return 0, wrongType
		}
		return i, found
	case KindBool, KindString, KindSequence, KindMapping:
		return 0, wrongType
	default:
		return 0, wrongType
	}
}

// truncate converts f toward zero, failing for NaN, infinities and values
// outside the int range.
func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || f < math.MinInt || f >= -float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}

func castFloat(v Value) (float64, outcome) {
	switch v.kind {
	case KindNull:
		return 0, notFound
	case KindInt:
		return float64(v.i), found
	case KindFloat:
		return v.f, found
	case KindBool, KindString, KindSequence, KindMapping:
		return 0, wrongType
	default:
		return 0, wrongType
	}
}

func castBool(v Value) (bool, outcome) {
	switch v.kind {
	case KindNull:
		return false, notFound
	case KindBool:
		return v.b, found
	case KindInt, KindFloat, KindString, KindSequence, KindMapping:
		return false, wrongType
	default:
		return false, wrongType
	}
}

func castUUID(v Value) (uuid.UUID, outcome) {
	switch v.kind {
	case KindNull:
		return uuid.Nil, notFound
	case KindString:
		id, err := uuid.Parse(v.s)
		if err != nil {
			return uuid.Nil, wrongType
		}
		return id, found
	default:
		return uuid.Nil, wrongType
	}
}

// lookup resolves path and casts it, logging values that are present but
// unusable as T.
func lookup[T any](n *Node, path, want string, cast func(Value) (T, outcome)) (T, outcome) {
	v := n.get(path)
	out, res := cast(v)
	if res == wrongType {
		log.Debug("node: value has wrong type", "path", path, "want", want, "kind", v.Kind())
	}
	return out, res
}

// lookupOr is lookup with a default. The default is written back only when
// nothing was stored; a value of the wrong type is never overwritten. Writing
// back goes through SetProperty, so a scalar or sequence standing where an
// intermediate mapping belongs (such as "a" when reading "a.b") is replaced.
func lookupOr[T any](n *Node, path, want string, cast func(Value) (T, outcome), def T) T {
	out, res := lookup(n, path, want, cast)
	if res == found {
		return out
	}
	if res == notFound && n.writeDefaults {
		n.SetProperty(path, def)
	}
	return def
}

// String returns the value at path in its textual form. Any non-null value
// converts.
func (n *Node) String(path string) (string, bool) {
	s, res := lookup(n, path, "string", castString)
	return s, res == found
}

// StringOr is String with a default.
func (n *Node) StringOr(path, def string) string {
	return lookupOr(n, path, "string", castString, def)
}

// Int returns the number at path, truncating floats toward zero.
func (n *Node) Int(path string) (int, bool) {
	i, res := lookup(n, path, "int", castInt)
	return i, res == found
}

// IntOr is Int with a default.
func (n *Node) IntOr(path string, def int) int {
	return lookupOr(n, path, "int", castInt, def)
}

// Float returns the number at path as a float64.
func (n *Node) Float(path string) (float64, bool) {
	f, res := lookup(n, path, "float", castFloat)
	return f, res == found
}

// FloatOr is Float with a default.
func (n *Node) FloatOr(path string, def float64) float64 {
	return lookupOr(n, path, "float", castFloat, def)
}

// Bool returns the boolean at path. Strings such as "true" do not convert.
func (n *Node) Bool(path string) (bool, bool) {
	b, res := lookup(n, path, "bool", castBool)
	return b, res == found
}

// BoolOr is Bool with a default.
func (n *Node) BoolOr(path string, def bool) bool {
	return lookupOr(n, path, "bool", castBool, def)
}

// UUID parses the string at path as a UUID.
func (n *Node) UUID(path string) (uuid.UUID, bool) {
	id, res := lookup(n, path, "uuid", castUUID)
	return id, res == found
}

// UUIDOr is UUID with a default.
func (n *Node) UUIDOr(path string, def uuid.UUID) uuid.UUID {
	return lookupOr(n, path, "uuid", castUUID, def)
}
