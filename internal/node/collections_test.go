package node_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lc/yamlnode/internal/node"
)

type CollectionsTestSuite struct {
	suite.Suite
	root *node.Node
}

func (s *CollectionsTestSuite) SetupTest() {
	s.root = node.New(mapping(
		"mixed", []any{1, "x", 3, 2.7, nil, true},
		"names", []string{"alpha", "beta"},
		"scalar", "alpha",
		"spawns", []any{
			mapping("x", 1, "y", 2, "z", 3),
			mapping("x", 1, "y", 2),
			"junk",
			mapping("x", 4.5, "y", 5, "z", 6),
		},
		"arenas", []any{mapping("name", "a"), 5, mapping("name", "b")},
	), false)
}

func (s *CollectionsTestSuite) TestList() {
	items, ok := s.root.List("names")
	s.True(ok)
	s.Len(items, 2)

	_, ok = s.root.List("scalar")
	s.False(ok, "a scalar is not promoted to a list")
	_, ok = s.root.List("missing")
	s.False(ok)
}

func (s *CollectionsTestSuite) TestTypedListsDropMismatches() {
	s.Equal([]int{1, 3, 2}, s.root.IntList("mixed", nil))
	s.Equal([]float64{1, 3, 2.7}, s.root.FloatList("mixed", nil))
	s.Equal([]bool{true}, s.root.BoolList("mixed", nil))
	s.Equal([]string{"1", "x", "3", "2.7", "true"}, s.root.StringList("mixed", nil))
}

func (s *CollectionsTestSuite) TestListDefaults() {
	testCases := []struct {
		name          string
		path          string
		writeDefaults bool
		def           []string
		expect        []string
		expectStored  bool
	}{
		{
			name:          "missing with write-back stores the default",
			path:          "new.list",
			writeDefaults: true,
			def:           []string{"a"},
			expect:        []string{"a"},
			expectStored:  true,
		},
		{
			name:   "missing without write-back returns the default",
			path:   "new.list",
			def:    []string{"a"},
			expect: []string{"a"},
		},
		{
			name:          "nil default is never stored",
			path:          "new.list",
			writeDefaults: true,
			expect:        []string{},
		},
		{
			name:          "non-sequence is left alone",
			path:          "scalar",
			writeDefaults: true,
			def:           []string{"a"},
			expect:        []string{"a"},
			expectStored:  true,
		},
		{
			name:          "present list ignores the default",
			path:          "names",
			writeDefaults: true,
			def:           []string{"z"},
			expect:        []string{"alpha", "beta"},
			expectStored:  true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.root.SetWriteDefaults(tc.writeDefaults)

			got := s.root.StringList(tc.path, tc.def)
			s.Equal(tc.expect, got)
			s.NotNil(got)

			_, stored := s.root.Property(tc.path)
			s.Equal(tc.expectStored, stored)
		})
	}

	s.Run("scalar keeps its value", func() {
		s.SetupTest()
		s.root.SetWriteDefaults(true)
		s.root.StringList("scalar", []string{"a"})
		got, _ := s.root.String("scalar")
		s.Equal("alpha", got)
	})
}

func (s *CollectionsTestSuite) TestNodeList() {
	nodes := s.root.NodeList("arenas", nil)
	s.Require().Len(nodes, 2)
	s.Equal("a", nodes[0].StringOr("name", ""))
	s.Equal("b", nodes[1].StringOr("name", ""))

	nodes[0].SetProperty("size", 3)
	items, _ := s.root.List("arenas")
	m, ok := items[0].Mapping()
	s.Require().True(ok)
	v, ok := m.Get("size")
	s.True(ok)
	s.True(node.Int(3).Equal(v))
}

func (s *CollectionsTestSuite) TestNodeListDefaultIsStoredByReference() {
	s.root.SetWriteDefaults(true)
	def := node.New(nil, false)
	def.SetProperty("name", "c")

	got := s.root.NodeList("new", []*node.Node{def})
	s.Len(got, 1)

	def.SetProperty("size", 9)
	nodes := s.root.NodeList("new", nil)
	s.Require().Len(nodes, 1)
	s.Equal(9, nodes[0].IntOr("size", 0))
}

func (s *CollectionsTestSuite) TestVectorLists() {
	vectors := s.root.VectorList("spawns", nil)
	s.Equal([]node.Vector{{X: 1, Y: 2, Z: 3}, {X: 4.5, Y: 5, Z: 6}}, vectors)

	flat := s.root.Vector2DList("spawns", nil)
	s.Equal([]node.Vector2D{{X: 1, Z: 3}, {X: 4.5, Z: 6}}, flat)

	blocks := s.root.BlockVector2DList("spawns", nil)
	s.Equal([]node.BlockVector2D{{X: 1, Z: 3}, {X: 4, Z: 6}}, blocks)
}

func TestCollectionsSuite(t *testing.T) {
	suite.Run(t, new(CollectionsTestSuite))
}
