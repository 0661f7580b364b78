package node

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Prepare converts a Go value into a document Value before it is stored, so
// that everything reachable from a root is a member of the value union.
//
// Records become ordered mappings of their fields (x, y, z). A *Node or
// *Mapping is stored by reference, not copied. Go scalars, slices, arrays and
// maps convert structurally; map keys are stringified and sorted. UUIDs and
// durations become strings. Any other type is stored as its fmt form.
//
// New non-primitive types are supported by adding a case here.
func Prepare(value any) Value {
	switch v := value.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case *Mapping:
		if v == nil {
			return Null()
		}
		return Map(v)
	case *Node:
		if v == nil {
			return Null()
		}
		return Map(v.root)
	case Vector:
		return Map(v.fields())
	case Vector2D:
		return Map(v.fields())
	case BlockVector2D:
		return Map(v.fields())
	case uuid.UUID:
		return String(v.String())
	case time.Duration:
		return String(v.String())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Float(float64(u))
		}
		return Int(int64(u))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			return Seq()
		}
		return prepareItems(rv)
	case reflect.Array:
		return prepareItems(rv)
	case reflect.Map:
		return prepareMap(rv)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return Prepare(rv.Elem().Interface())
	default:
		return String(fmt.Sprint(value))
	}
}

func prepareItems(rv reflect.Value) Value {
	items := make([]Value, rv.Len())
	for i := range items {
		items[i] = Prepare(rv.Index(i).Interface())
	}
	return Seq(items...)
}

func prepareMap(rv reflect.Value) Value {
	if rv.IsNil() {
		return Map(nil)
	}
	entries := make(map[string]reflect.Value, rv.Len())
	keys := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := fmt.Sprint(iter.Key().Interface())
		entries[k] = iter.Value()
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := NewMapping()
	for _, k := range keys {
		m.Set(k, Prepare(entries[k].Interface()))
	}
	return Map(m)
}
