package node

// Mapping is an insertion-ordered map from string keys to values. It is
// always handled by pointer; every Node and Value that refers to a mapping
// sees the same data.
//
// The zero Mapping is not usable; call NewMapping. A nil *Mapping behaves as
// an empty, read-only mapping.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores v under key. A new key is appended to the key order; an
// existing key keeps its position.
func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Delete removes key and reports whether it was present.
func (m *Mapping) Delete(key string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns a copy of the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return []string{}
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in order until fn returns false.
func (m *Mapping) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clear removes every entry in place.
func (m *Mapping) Clear() {
	m.keys = m.keys[:0]
	clear(m.values)
}

// Clone returns a deep copy of m that shares nothing with it.
func (m *Mapping) Clone() *Mapping {
	out := NewMapping()
	m.Range(func(k string, v Value) bool {
		out.Set(k, v.clone())
		return true
	})
	return out
}

// Equal reports whether m and o hold equal entries in the same order.
func (m *Mapping) Equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i, k := range m.Keys() {
		if o.keys[i] != k {
			return false
		}
		if !m.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}
