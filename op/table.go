package op

import (
	"fmt"
	"strings"

	"github.com/npillmayer/opg"
	"github.com/npillmayer/opg/grammar"
	"github.com/npillmayer/opg/op/sparse"
	"golang.org/x/exp/slices"
)

// Ordering is the order of terminals for enumerating and rendering a table.
type Ordering int

// Orderings for terminals.
const (
	GrammarOrder  Ordering = iota // order of first occurence in the grammar
	Lexicographic                 // sorted by name
)

// ParseOrdering returns the Ordering for "grammar" or "lex".
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(s) {
	case "", "grammar":
		return GrammarOrder, nil
	case "lex", "lexicographic":
		return Lexicographic, nil
	}
	return GrammarOrder, fmt.Errorf("unknown ordering %q", s)
}

// Table is an operator precedence table for the terminals of a grammar.
// It maps ordered pairs of terminals to a precedence relation. Every pair
// maps to at most one relation.
type Table struct {
	g         *grammar.Grammar
	terminals []*grammar.Symbol // in grammar order
	index     map[*grammar.Symbol]int
	matrix    *sparse.IntMatrix
}

// Entry is a single relation of a table.
type Entry struct {
	Left, Right *grammar.Symbol
	Relation    opg.Relation
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s", e.Left, e.Relation, e.Right)
}

// NewTable creates an empty table for the terminals of grammar g.
func NewTable(g *grammar.Grammar) *Table {
	n := len(g.Terminals())
	t := &Table{
		g:         g,
		terminals: g.Terminals(),
		index:     make(map[*grammar.Symbol]int, n),
		matrix:    sparse.NewIntMatrix(n, n, sparse.DefaultNullValue),
	}
	for i, a := range t.terminals {
		t.index[a] = i
	}
	return t
}

// Grammar returns the grammar this table is for.
func (t *Table) Grammar() *grammar.Grammar {
	return t.g
}

// Insert sets relation r for the pair (a,b). Inserting a relation twice is
// fine; inserting a relation different from one already present for (a,b)
// will return an *opg.AmbiguityError and leave the table unchanged.
func (t *Table) Insert(a, b *grammar.Symbol, r opg.Relation) error {
	return t.insert(a, b, r, false)
}

// insert sets relation r for (a,b). With keep set, a conflicting relation will
// be recorded as the second value of the cell, if the cell does not yet hold one.
func (t *Table) insert(a, b *grammar.Symbol, r opg.Relation, keep bool) error {
	i, j, err := t.cell(a, b)
	if err != nil {
		return err
	}
	if r == opg.NoRelation {
		return fmt.Errorf("cannot insert empty relation for (%s,%s)", a, b)
	}
	v1, v2 := t.matrix.Values(i, j)
	if v1 == t.matrix.NullValue() {
		t.matrix.Set(i, j, int32(r))
		return nil
	}
	if opg.Relation(v1) == r {
		return nil
	}
	if keep && v2 == t.matrix.NullValue() {
		t.matrix.Add(i, j, int32(r))
	}
	return &opg.AmbiguityError{
		Left:     a.Name,
		Right:    b.Name,
		Stored:   opg.Relation(v1),
		Inserted: r,
	}
}

func (t *Table) cell(a, b *grammar.Symbol) (int, int, error) {
	i, ok1 := t.index[a]
	j, ok2 := t.index[b]
	if !ok1 || !ok2 {
		return 0, 0, fmt.Errorf("(%v,%v) is not a pair of terminals of grammar %s", a, b, t.g.Name)
	}
	return i, j, nil
}

// Relation returns the relation for (a,b), or opg.NoRelation.
func (t *Table) Relation(a, b *grammar.Symbol) opg.Relation {
	i, j, err := t.cell(a, b)
	if err != nil {
		return opg.NoRelation
	}
	v := t.matrix.Value(i, j)
	if v == t.matrix.NullValue() {
		return opg.NoRelation
	}
	return opg.Relation(v)
}

// RelationByName returns the relation for the terminals named a and b.
func (t *Table) RelationByName(a, b string) opg.Relation {
	A, B := t.g.SymbolByName(a), t.g.SymbolByName(b)
	if A == nil || B == nil {
		return opg.NoRelation
	}
	return t.Relation(A, B)
}

// Size returns the number of pairs with a relation.
func (t *Table) Size() int {
	return t.matrix.ValueCount()
}

// Entries returns all relations of the table, row by row, with terminals
// in grammar order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, t.matrix.ValueCount())
	t.matrix.Each(func(i, j int, a, _ int32) {
		entries = append(entries, Entry{
			Left:     t.terminals[i],
			Right:    t.terminals[j],
			Relation: opg.Relation(a),
		})
	})
	return entries
}

// Terminals returns the terminals of the table in the given order.
func (t *Table) Terminals(order Ordering) []*grammar.Symbol {
	terms := make([]*grammar.Symbol, len(t.terminals))
	copy(terms, t.terminals)
	if order == Lexicographic {
		slices.SortFunc(terms, func(a, b *grammar.Symbol) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
	return terms
}

// Render returns the table as a square matrix of strings, with a header row
// and a header column of terminal names. The top left cell and cells without
// relation are empty. Cells holding conflicting relations (see
// TableGenerator.Diagnose) show both, separated by '/'.
func (t *Table) Render(order Ordering) [][]string {
	terms := t.Terminals(order)
	rows := make([][]string, len(terms)+1)
	rows[0] = make([]string, len(terms)+1)
	for j, b := range terms {
		rows[0][j+1] = b.Name
	}
	for i, a := range terms {
		row := make([]string, len(terms)+1)
		row[0] = a.Name
		for j, b := range terms {
			row[j+1] = t.cellString(a, b)
		}
		rows[i+1] = row
	}
	return rows
}

func (t *Table) cellString(a, b *grammar.Symbol) string {
	v1, v2 := t.matrix.Values(t.index[a], t.index[b])
	if v1 == t.matrix.NullValue() {
		return ""
	} else if v2 == t.matrix.NullValue() {
		return opg.Relation(v1).String()
	}
	return opg.Relation(v1).String() + "/" + opg.Relation(v2).String()
}
