package node

// Vector is a point in 3D space.
type Vector struct {
	X, Y, Z float64
}

// Vector2D is a point on the horizontal plane.
type Vector2D struct {
	X, Z float64
}

// BlockVector2D is a Vector2D snapped to whole block coordinates.
type BlockVector2D struct {
	X, Z int
}

func (v Vector) fields() *Mapping {
	m := NewMapping()
	m.Set("x", Float(v.X))
	m.Set("y", Float(v.Y))
	m.Set("z", Float(v.Z))
	return m
}

func (v Vector2D) fields() *Mapping {
	m := NewMapping()
	m.Set("x", Float(v.X))
	m.Set("z", Float(v.Z))
	return m
}

func (v BlockVector2D) fields() *Mapping {
	m := NewMapping()
	m.Set("x", Int(int64(v.X)))
	m.Set("z", Int(int64(v.Z)))
	return m
}

// Records rebuild all-or-nothing: if any field is missing or not a number
// the whole value is treated as having the wrong type.

func castVector(v Value) (Vector, outcome) {
	m, ok := v.Mapping()
	if !ok {
		if v.IsNull() {
			return Vector{}, notFound
		}
		return Vector{}, wrongType
	}
	f := Node{root: m}
	x, okX := f.Float("x")
	y, okY := f.Float("y")
	z, okZ := f.Float("z")
	if !okX || !okY || !okZ {
		return Vector{}, wrongType
	}
	return Vector{X: x, Y: y, Z: z}, found
}

func castVector2D(v Value) (Vector2D, outcome) {
	m, ok := v.Mapping()
	if !ok {
		if v.IsNull() {
			return Vector2D{}, notFound
		}
		return Vector2D{}, wrongType
	}
	f := Node{root: m}
	x, okX := f.Float("x")
	z, okZ := f.Float("z")
	if !okX || !okZ {
		return Vector2D{}, wrongType
	}
	return Vector2D{X: x, Z: z}, found
}

func castBlockVector2D(v Value) (BlockVector2D, outcome) {
	vec, res := castVector2D(v)
	if res != found {
		return BlockVector2D{}, res
	}
	x, okX := truncate(vec.X)
	z, okZ := truncate(vec.Z)
	if !okX || !okZ {
		return BlockVector2D{}, wrongType
	}
	return BlockVector2D{X: x, Z: z}, found
}

// Vector reads the x, y and z fields of the mapping at path.
func (n *Node) Vector(path string) (Vector, bool) {
	v, res := lookup(n, path, "vector", castVector)
	return v, res == found
}

// VectorOr is Vector with a default.
func (n *Node) VectorOr(path string, def Vector) Vector {
	return lookupOr(n, path, "vector", castVector, def)
}

// Vector2D reads the x and z fields of the mapping at path.
func (n *Node) Vector2D(path string) (Vector2D, bool) {
	v, res := lookup(n, path, "vector2d", castVector2D)
	return v, res == found
}

// Vector2DOr is Vector2D with a default.
func (n *Node) Vector2DOr(path string, def Vector2D) Vector2D {
	return lookupOr(n, path, "vector2d", castVector2D, def)
}

// VectorList returns every element of the sequence at path that reads as a
// Vector.
func (n *Node) VectorList(path string, def []Vector) []Vector {
	return listOf(n, path, def, castVector)
}

// Vector2DList returns every element of the sequence at path that reads as
// a Vector2D.
func (n *Node) Vector2DList(path string, def []Vector2D) []Vector2D {
	return listOf(n, path, def, castVector2D)
}

// BlockVector2DList is Vector2DList with coordinates truncated to blocks.
func (n *Node) BlockVector2DList(path string, def []BlockVector2D) []BlockVector2D {
	return listOf(n, path, def, castBlockVector2D)
}
