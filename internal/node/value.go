package node

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which member of the document value union a Value holds.
type Kind uint8

const (
	// KindNull is the zero Kind; a zero Value is null.
	KindNull Kind = iota
	// KindBool holds a boolean.
	KindBool
	// KindInt holds a signed 64-bit integer.
	KindInt
	// KindFloat holds a 64-bit float.
	KindFloat
	// KindString holds a string.
	KindString
	// KindSequence holds an ordered list of values.
	KindSequence
	// KindMapping holds a shared *Mapping.
	KindMapping
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a single document value. Scalars are held by value; a mapping is
// held by pointer, so copying a Value that wraps a mapping still refers to
// the same mapping.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	seq  []Value
	m    *Mapping
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Seq returns a sequence value holding items. A nil result of no items is
// normalized to an empty sequence.
func Seq(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, seq: items}
}

// Map returns a mapping value wrapping m. A nil m is replaced with a new,
// empty mapping.
func Map(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{kind: KindMapping, m: m}
}

// Kind reports which union member v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean held by v; ok is false for any other kind.
func (v Value) Bool() (b, ok bool) { return v.b, v.kind == KindBool }

// Int returns the integer held by v; ok is false for any other kind.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float returns the float held by v; ok is false for any other kind.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Text returns the string held by v; ok is false for any other kind.
func (v Value) Text() (string, bool) { return v.s, v.kind == KindString }

// Items returns the elements of a sequence. The slice is shared with v.
func (v Value) Items() ([]Value, bool) { return v.seq, v.kind == KindSequence }

// Mapping returns the mapping held by v.
func (v Value) Mapping() (*Mapping, bool) { return v.m, v.kind == KindMapping }

// String returns the canonical textual form of v: scalars render as plain
// YAML scalars, sequences as "[a, b]" and mappings as "{k: v}".
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		sb.WriteString(FormatFloat(v.f))
	case KindString:
		sb.WriteString(v.s)
	case KindSequence:
		sb.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeTo(sb)
		}
		sb.WriteByte(']')
	case KindMapping:
		sb.WriteByte('{')
		for i, key := range v.m.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(key)
			sb.WriteString(": ")
			val, _ := v.m.Get(key)
			val.writeTo(sb)
		}
		sb.WriteByte('}')
	}
}

// Equal reports whether v and o hold the same data. Mappings compare by
// content and key order; Int(1) and Float(1) are not equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindString:
		return v.s == o.s
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		return v.m.Equal(o.m)
	default:
		return false
	}
}

// clone returns a deep copy of v.
func (v Value) clone() Value {
	switch v.kind {
	case KindSequence:
		items := make([]Value, len(v.seq))
		for i, item := range v.seq {
			items[i] = item.clone()
		}
		return Value{kind: KindSequence, seq: items}
	case KindMapping:
		return Value{kind: KindMapping, m: v.m.Clone()}
	default:
		return v
	}
}

// FormatFloat renders f the way documents spell floats: always with a
// decimal point or exponent so it reads back as a float, and with the
// YAML spellings for infinities and NaN.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	abs := math.Abs(f)
	var s string
	if abs != 0 && (abs < 1e-4 || abs >= 1e21) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
