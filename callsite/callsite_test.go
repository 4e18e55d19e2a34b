package callsite

import (
	"testing"

	"github.com/codelintel/phpcompat/token"
	"github.com/stretchr/testify/require"
)

// findName tokenizes src and returns the stream plus the index of the first
// Name token with the given text.
func findName(t *testing.T, src, name string) (*token.Stream, int) {
	t.Helper()
	s, err := token.TokenizePHP([]byte(src))
	require.NoError(t, err)
	for _, tk := range s.Tokens() {
		if tk.Kind == token.Name && tk.Text == name {
			return s, tk.Index
		}
	}
	t.Fatalf("no %q token in %q", name, src)
	return nil, 0
}

func TestZeroArgumentCall(t *testing.T) {
	s, pos := findName(t, `<?php array_merge();`, "array_merge")
	call, ok := At(s, pos)
	require.True(t, ok)
	require.Empty(t, call.Args)
	require.Greater(t, call.Close, call.Open)
}

func TestPositionalArguments(t *testing.T) {
	s, pos := findName(t, `<?php array_merge($a, $b);`, "array_merge")
	call, ok := At(s, pos)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	require.Empty(t, call.Args[0].Name)
	require.Empty(t, call.Args[1].Name)
}

func TestNestedBracketsStayBalanced(t *testing.T) {
	s, pos := findName(t, `<?php f(g($a, $b), [$c, $d], ($e));`, "f")
	call, ok := At(s, pos)
	require.True(t, ok)
	require.Len(t, call.Args, 3)
}

func TestStringContentsNeverSplit(t *testing.T) {
	s, pos := findName(t, `<?php f('a,b,c', "d,e");`, "f")
	call, ok := At(s, pos)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
}

func TestTrailingComma(t *testing.T) {
	s, pos := findName(t, `<?php f($a, $b,);`, "f")
	call, ok := At(s, pos)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
}

func TestNamedArguments(t *testing.T) {
	s, pos := findName(t, `<?php array_fill(count: 3, value: $x);`, "array_fill")
	call, ok := At(s, pos)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	require.Equal(t, "count", call.Args[0].Name)
	require.Equal(t, "value", call.Args[1].Name)
	require.True(t, call.HasNamed("value"))
	require.False(t, call.HasNamed("start_index"))
}

func TestMixedPositionalAndNamed(t *testing.T) {
	s, pos := findName(t, `<?php f($a, b: $x);`, "f")
	call, ok := At(s, pos)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	require.Empty(t, call.Args[0].Name)
	require.Equal(t, "b", call.Args[1].Name)
	require.Equal(t, 1, call.PositionalCount())
}

func TestPositionalCount(t *testing.T) {
	s, pos := findName(t, `<?php f($a, $b);`, "f")
	call, ok := At(s, pos)
	require.True(t, ok)
	require.Equal(t, 2, call.PositionalCount())

	// Named arguments never fill positional slots.
	s, pos = findName(t, `<?php f(first: $a, second: $b);`, "f")
	call, ok = At(s, pos)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	require.Equal(t, 0, call.PositionalCount())
}

func TestTernaryIsNotNamed(t *testing.T) {
	s, pos := findName(t, `<?php f(FOO ? 1 : 2);`, "f")
	call, ok := At(s, pos)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	require.Empty(t, call.Args[0].Name)
}

func TestBareNameIsNotACall(t *testing.T) {
	s, pos := findName(t, `<?php $x = array_merge;`, "array_merge")
	_, ok := At(s, pos)
	require.False(t, ok)
}

func TestCallingContextExclusions(t *testing.T) {
	cases := map[string]string{
		"member access":   `<?php $obj->array_merge();`,
		"nullsafe access": `<?php $obj?->array_merge();`,
		"static access":   `<?php Foo::array_merge();`,
		"definition":      `<?php function array_merge($a) {}`,
		"constant":        `<?php const array_merge = 1;`,
		"instantiation":   `<?php new array_merge();`,
		"namespaced call": `<?php Foo\array_merge();`,
		"variable call":   `<?php $array_merge();`,
	}
	for label, src := range cases {
		s, pos := findName(t, src, "array_merge")
		_, ok := At(s, pos)
		require.False(t, ok, label)
	}
}

func TestGlobalFallbackIsACall(t *testing.T) {
	s, pos := findName(t, `<?php \array_merge($a);`, "array_merge")
	call, ok := At(s, pos)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
}

func TestMalformedCallSiteIsSkipped(t *testing.T) {
	// Hand-built stream with an unbalanced bracket; the tokenizer would never
	// produce this, but arbitrary adapters can.
	stream := token.NewStream([]token.Token{
		{Kind: token.Name, Text: "f"},
		{Kind: token.OpenParen, Text: "("},
		{Kind: token.Name, Text: "a"},
	})
	_, ok := At(stream, 0)
	require.False(t, ok)
}

func TestNotANameToken(t *testing.T) {
	stream := token.NewStream([]token.Token{
		{Kind: token.OpenParen, Text: "("},
		{Kind: token.CloseParen, Text: ")"},
	})
	_, ok := At(stream, 0)
	require.False(t, ok)
	_, ok = At(stream, 9)
	require.False(t, ok)
}
