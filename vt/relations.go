package vt

import (
	"github.com/npillmayer/opg/grammar"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/tools/container/intsets"
)

// Direction selects FIRSTVT or LASTVT.
type Direction int8

// Directions for VT computation.
const (
	First Direction = iota // FIRSTVT
	Last                   // LASTVT
)

func (d Direction) String() string {
	if d == Last {
		return "LASTVT"
	}
	return "FIRSTVT"
}

// Relations holds the direct relations of the non-terminals of a grammar for
// one direction. Sets contain symbol serial numbers. Every non-terminal of
// the grammar has an entry in both maps, possibly empty.
type Relations struct {
	Dir  Direction
	Mono map[*grammar.Symbol]*intsets.Sparse // terminals directly visible
	Con  map[*grammar.Symbol]*intsets.Sparse // non-terminals contained at the edge
	g    *grammar.Grammar
}

// Grammar returns the grammar the relations have been extracted from.
func (rel *Relations) Grammar() *grammar.Grammar {
	return rel.g
}

// Extract scans the (augmented) rules of a grammar once and returns the
// direct relations for direction dir. For a rule U → s1 s2 … sn and
// direction First:
//
//     s1 terminal     ⇒ s1 ∈ mono(U)
//     s1 non-terminal ⇒ s1 ∈ con(U), and if s2 is a terminal, s2 ∈ mono(U)
//
// Direction Last does the same on the reversed right side.
func Extract(g *grammar.Grammar, dir Direction) *Relations {
	rel := &Relations{
		Dir:  dir,
		Mono: make(map[*grammar.Symbol]*intsets.Sparse),
		Con:  make(map[*grammar.Symbol]*intsets.Sparse),
		g:    g,
	}
	for _, A := range g.NonTerminals() {
		rel.Mono[A] = &intsets.Sparse{}
		rel.Con[A] = &intsets.Sparse{}
	}
	for _, r := range g.AugmentedRules() {
		s1, s2 := edge(r.RHS(), dir)
		if s1.IsTerminal() {
			rel.Mono[r.LHS].Insert(s1.Value)
			continue
		}
		rel.Con[r.LHS].Insert(s1.Value)
		if s2 != nil && s2.IsTerminal() {
			rel.Mono[r.LHS].Insert(s2.Value)
		}
	}
	if tracer().GetTraceLevel() >= tracing.LevelDebug {
		for _, A := range g.NonTerminals() {
			tracer().Debugf("%s: mono(%s) = %s, con(%s) = %s", dir, A,
				names(g, rel.Mono[A]), A, names(g, rel.Con[A]))
		}
	}
	return rel
}

// edge returns the first two symbols of rhs, seen from direction dir.
// The second one is nil for right sides of length 1.
func edge(rhs []*grammar.Symbol, dir Direction) (*grammar.Symbol, *grammar.Symbol) {
	n := len(rhs)
	var s1, s2 *grammar.Symbol
	if dir == First {
		s1 = rhs[0]
		if n > 1 {
			s2 = rhs[1]
		}
	} else {
		s1 = rhs[n-1]
		if n > 1 {
			s2 = rhs[n-2]
		}
	}
	return s1, s2
}
