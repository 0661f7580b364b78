package document_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lc/yamlnode/internal/document"
	"github.com/lc/yamlnode/internal/node"
)

type DecodeTestSuite struct {
	suite.Suite
}

func (s *DecodeTestSuite) TestScalars() {
	m, err := document.Decode([]byte(`
name: lobby
count: 5
ratio: 2.5
whole: 5.0
enabled: true
nothing: ~
quoted: "42"
inf: .inf
big: 9223372036854775808
`))
	s.Require().NoError(err)

	testCases := []struct {
		key    string
		expect node.Value
	}{
		{key: "name", expect: node.String("lobby")},
		{key: "count", expect: node.Int(5)},
		{key: "ratio", expect: node.Float(2.5)},
		{key: "whole", expect: node.Float(5)},
		{key: "enabled", expect: node.Bool(true)},
		{key: "nothing", expect: node.Null()},
		{key: "quoted", expect: node.String("42")},
		{key: "inf", expect: node.Float(math.Inf(1))},
		{key: "big", expect: node.Float(9223372036854775808)},
	}

	for _, tc := range testCases {
		s.Run(tc.key, func() {
			v, ok := m.Get(tc.key)
			s.True(ok)
			s.True(tc.expect.Equal(v), "got %s (%s)", v, v.Kind())
		})
	}
}

func (s *DecodeTestSuite) TestKeepsKeyOrder() {
	m, err := document.Decode([]byte("zeta: 1\nalpha: 2\nmid:\n  b: 1\n  a: 2\n"))
	s.Require().NoError(err)
	s.Equal([]string{"zeta", "alpha", "mid"}, m.Keys())

	mid, _ := m.Get("mid")
	mm, ok := mid.Mapping()
	s.Require().True(ok)
	s.Equal([]string{"b", "a"}, mm.Keys())
}

func (s *DecodeTestSuite) TestEmptyDocuments() {
	for _, in := range []string{"", "\n", "# only a comment\n", "~\n", "null"} {
		s.Run(in, func() {
			m, err := document.Decode([]byte(in))
			s.NoError(err)
			s.Zero(m.Len())
		})
	}
}

func (s *DecodeTestSuite) TestAliasesAndMerges() {
	m, err := document.Decode([]byte(`
base: &base
  host: localhost
  port: 80
extra: &extra
  tls: false
prod:
  <<: [*base, *extra]
  port: 443
copy: *base
`))
	s.Require().NoError(err)

	root := node.New(m, false)
	keys, ok := root.Keys("prod")
	s.True(ok)
	s.Equal([]string{"port", "host", "tls"}, keys)
	s.Equal(443, root.IntOr("prod.port", 0))
	s.Equal("localhost", root.StringOr("prod.host", ""))

	s.Equal(80, root.IntOr("copy.port", 0))
}

func (s *DecodeTestSuite) TestFormatErrors() {
	testCases := []struct {
		name       string
		input      string
		expectLine int
	}{
		{name: "syntax error", input: "a: 1\nb: c: d\n", expectLine: 2},
		{name: "top-level sequence", input: "- a\n- b\n", expectLine: 1},
		{name: "top-level scalar", input: "just text\n", expectLine: 1},
		{name: "non-scalar key", input: "? [a, b]\n: 1\n", expectLine: 1},
		{name: "bad merge value", input: "a:\n  <<: 5\n", expectLine: 2},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := document.Decode([]byte(tc.input))
			s.Require().Error(err)
			s.True(errors.Is(err, document.ErrDocumentFormat))

			var fe *document.FormatError
			s.Require().ErrorAs(err, &fe)
			s.Equal(tc.expectLine, fe.Line)
		})
	}
}

func (s *DecodeTestSuite) TestNestingLimit() {
	deep := "a: " + strings.Repeat("[", 600) + strings.Repeat("]", 600) + "\n"
	_, err := document.Decode([]byte(deep))
	s.Require().Error(err)
	s.ErrorIs(err, document.ErrDocumentFormat)
}

func (s *DecodeTestSuite) TestAliasExpansionLimit() {
	var b strings.Builder
	b.WriteString("a0: &a0 [" + strings.Repeat("x, ", 9) + "x]\n")
	for i := 1; i <= 8; i++ {
		ref := fmt.Sprintf("*a%d", i-1)
		fmt.Fprintf(&b, "a%d: &a%d [%s%s]\n", i, i, strings.Repeat(ref+", ", 9), ref)
	}

	_, err := document.Decode([]byte(b.String()))
	s.Require().Error(err)
	s.ErrorIs(err, document.ErrDocumentFormat)
	s.ErrorContains(err, "excessive aliasing")

	_, err = document.ParseValue("{" + strings.ReplaceAll(strings.TrimSpace(b.String()), "\n", ", ") + "}")
	s.ErrorIs(err, document.ErrDocumentFormat)
}

func (s *DecodeTestSuite) TestModestAliasingIsAllowed() {
	var b strings.Builder
	b.WriteString("base: &base {a: 1, b: 2}\n")
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&b, "k%d: *base\n", i)
	}

	m, err := document.Decode([]byte(b.String()))
	s.Require().NoError(err)
	s.Equal(201, m.Len())
}

func (s *DecodeTestSuite) TestDecodeReader() {
	m, err := document.DecodeReader(strings.NewReader("a: 1\n"))
	s.Require().NoError(err)
	s.Equal([]string{"a"}, m.Keys())
}

func (s *DecodeTestSuite) TestParseValue() {
	testCases := []struct {
		input  string
		expect string
		kind   node.Kind
	}{
		{input: "42", expect: "42", kind: node.KindInt},
		{input: "4.5", expect: "4.5", kind: node.KindFloat},
		{input: "hello", expect: "hello", kind: node.KindString},
		{input: "[1, two]", expect: "[1, two]", kind: node.KindSequence},
		{input: "{x: 1, y: 2}", expect: "{x: 1, y: 2}", kind: node.KindMapping},
		{input: "", expect: "null", kind: node.KindNull},
	}

	for _, tc := range testCases {
		s.Run(tc.input, func() {
			v, err := document.ParseValue(tc.input)
			s.Require().NoError(err)
			s.Equal(tc.kind, v.Kind())
			s.Equal(tc.expect, v.String())
		})
	}

	_, err := document.ParseValue("[unclosed")
	s.ErrorIs(err, document.ErrDocumentFormat)
}

func TestDecodeSuite(t *testing.T) {
	suite.Run(t, new(DecodeTestSuite))
}
