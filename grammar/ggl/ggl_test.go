package ggl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/opg"
	"github.com/npillmayer/opg/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprGrammar = `
// stratified expression grammar
E -> E + T | T
T -> T * F
   | F
F -> ( E ) | id
`

func TestParseAlternatives(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.grammar")
	defer teardown()
	//
	prods, err := Parse("expr", strings.NewReader(exprGrammar))
	require.NoError(t, err)
	expected := []grammar.Production{
		{Left: "E", Right: []string{"E", "+", "T"}},
		{Left: "E", Right: []string{"T"}},
		{Left: "T", Right: []string{"T", "*", "F"}},
		{Left: "T", Right: []string{"F"}},
		{Left: "F", Right: []string{"(", "E", ")"}},
		{Left: "F", Right: []string{"id"}},
	}
	assert.Equal(t, expected, prods)
}

func TestParseQuotedAndArrows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.grammar")
	defer teardown()
	//
	prods, err := Parse("quoted", strings.NewReader("X ::= 'a' '|' b '->'\r\nY -> x//comment\n"))
	require.NoError(t, err)
	require.Len(t, prods, 2)
	assert.Equal(t, []string{"a", "|", "b", "->"}, prods[0].Right)
	assert.Equal(t, "Y", prods[1].Left)
	assert.Equal(t, []string{"x//comment"}, prods[1].Right)
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.grammar")
	defer teardown()
	//
	inputs := []struct {
		source string
		line   int
	}{
		{"S -> a\nS a b\n", 2},       // missing arrow
		{"S -> a\nS T -> b\n", 2},    // left side with 2 symbols
		{"S -> a |\n", 1},            // empty alternative
		{"S -> a\n\n-> b\n", 3},      // empty left side
		{"| a\n", 1},                 // continuation without left side
		{"S -> a -> b\n", 1},         // 2 arrows
		{"S ->\n", 1},                // empty right side
		{"\n// nothing here\n", 0},   // no productions
		{"E E -> id\n", 1},           // left side with 2 symbols, first line
		{"// c\nS -> a\n\nS b\n", 4}, // missing arrow after comment and blank line
		{"S -> a\nT -> b |", 2},      // empty alternative at end of input
	}
	for i, input := range inputs {
		_, err := Parse("test", strings.NewReader(input.source))
		require.Error(t, err, "test #%d", i)
		assert.True(t, errors.Is(err, opg.ErrMalformedGrammar), "test #%d: %v", i, err)
		var gerr *opg.GrammarError
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, input.line, gerr.Line, "test #%d: %v", i, err)
	}
}

func TestLoadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.grammar")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "expr.grammar")
	require.NoError(t, os.WriteFile(path, []byte(exprGrammar), 0644))
	g, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "expr", g.Name)
	assert.Equal(t, 7, g.Size())
	assert.Equal(t, "E", g.StartSymbol().Name)
	_, err = LoadFile(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestLoadRejectsEndMarkerLHS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.grammar")
	defer teardown()
	//
	_, err := Load("G", strings.NewReader("$ -> a\n"))
	assert.True(t, errors.Is(err, opg.ErrMalformedGrammar))
}
