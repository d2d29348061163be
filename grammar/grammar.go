package grammar

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/opg"
)

// EndMarker is the name of the end marker terminal, introduced by augmentation.
const EndMarker = "$"

// Production is a grammar production as read from grammar source: a left
// side symbol and a non-empty sequence of right side symbols. Alternatives
// are separate productions.
type Production struct {
	Left  string
	Right []string
}

func (p Production) String() string {
	var b bytes.Buffer
	b.WriteString(p.Left)
	b.WriteString(" ->")
	for _, s := range p.Right {
		b.WriteString(" ")
		b.WriteString(s)
	}
	return b.String()
}

// --- Rules -----------------------------------------------------------------

// Rule is a type for rules of a grammar. Rules cannot be shared between grammars.
type Rule struct {
	Serial int     // ordinal no. of this rule within its grammar
	LHS    *Symbol // symbol of left hand side
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule. Clients must not modify it.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("%s ->", r.LHS.Name))
	for _, A := range r.rhs {
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	return b.String()
}

// --- Grammars --------------------------------------------------------------

// Grammar is a type for a context-free grammar, augmented by a fresh start
// rule. Grammars are immutable after construction.
type Grammar struct {
	Name         string
	rules        []*Rule // user rules, followed by the augmented start rule
	symbols      *SymbolTable
	nonterminals []*Symbol // in order of first occurence as left side
	terminals    []*Symbol // in order of first occurence on a right side, plus '$'
	start        *Symbol   // left side of the first production
	augStart     *Symbol   // fresh start symbol of the augmented rule
	endmarker    *Symbol
	productions  []Production
}

// NewGrammar creates a grammar from a list of productions. The left side
// of the first production is the start symbol. The grammar will be augmented
// by a rule
//
//     S' -> $ S $
//
// with S the start symbol and S' a fresh non-terminal.
//
// Returns an error wrapping opg.ErrMalformedGrammar if the list is empty,
// a right side is empty, or the end marker is used as a left side.
func NewGrammar(name string, prods []Production) (*Grammar, error) {
	if len(prods) == 0 {
		return nil, opg.MalformedGrammar(0, "grammar %q has no productions", name)
	}
	g := &Grammar{
		Name:        name,
		symbols:     NewSymbolTable(),
		productions: make([]Production, len(prods)),
	}
	for i, p := range prods { // first pass: non-terminals
		if p.Left == "" {
			return nil, opg.MalformedGrammar(0, "production #%d has an empty left side", i)
		}
		if p.Left == EndMarker {
			return nil, opg.MalformedGrammar(0, "end marker %q used as left side", EndMarker)
		}
		if len(p.Right) == 0 {
			return nil, opg.MalformedGrammar(0, "empty right side for %s", p.Left)
		}
		if A, found := g.symbols.ResolveOrDefineSymbol(p.Left); !found {
			g.nonterminals = append(g.nonterminals, A)
		}
		g.productions[i] = Production{Left: p.Left, Right: append([]string(nil), p.Right...)}
	}
	for i, p := range prods { // second pass: terminals and rules
		r := &Rule{Serial: i, LHS: g.symbols.ResolveSymbol(p.Left)}
		for _, s := range p.Right {
			if s == "" {
				return nil, opg.MalformedGrammar(0, "empty symbol in production %v", p)
			}
			A, found := g.symbols.ResolveOrDefineSymbol(s)
			if !found {
				A.terminal = true
				g.terminals = append(g.terminals, A)
			}
			r.rhs = append(r.rhs, A)
		}
		g.rules = append(g.rules, r)
	}
	g.start = g.rules[0].LHS
	g.augment()
	tracer().Debugf("grammar %q: %d rules, %d non-terminals, %d terminals", g.Name,
		len(g.rules), len(g.nonterminals), len(g.terminals))
	return g, nil
}

// augment appends the rule S' -> $ S $.
func (g *Grammar) augment() {
	var found bool
	if g.endmarker, found = g.symbols.ResolveOrDefineSymbol(EndMarker); !found {
		g.endmarker.terminal = true
		g.terminals = append(g.terminals, g.endmarker)
	}
	name := g.start.Name + "'"
	for g.symbols.ResolveSymbol(name) != nil {
		name += "'"
	}
	g.augStart = g.symbols.DefineSymbol(name)
	g.nonterminals = append(g.nonterminals, g.augStart)
	g.rules = append(g.rules, &Rule{
		Serial: len(g.rules),
		LHS:    g.augStart,
		rhs:    []*Symbol{g.endmarker, g.start, g.endmarker},
	})
}

// StartSymbol returns the start symbol of the grammar, i.e. the left side
// of the first production (not the augmented start symbol).
func (g *Grammar) StartSymbol() *Symbol {
	return g.start
}

// AugmentedStartSymbol returns the fresh start symbol of the augmented rule.
func (g *Grammar) AugmentedStartSymbol() *Symbol {
	return g.augStart
}

// EndMarker returns the end marker terminal '$'.
func (g *Grammar) EndMarker() *Symbol {
	return g.endmarker
}

// Size returns the number of rules, including the augmented start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule gets a grammar rule by serial number. The augmented start rule is
// the last one.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Rules returns the rules created from the productions, without the augmented
// start rule.
func (g *Grammar) Rules() []*Rule {
	return g.rules[:len(g.rules)-1]
}

// AugmentedRules returns all rules of the grammar, with the augmented start
// rule last.
func (g *Grammar) AugmentedRules() []*Rule {
	return g.rules
}

// IsStartRule is true for the augmented start rule.
func (g *Grammar) IsStartRule(r *Rule) bool {
	return r == g.rules[len(g.rules)-1]
}

// Productions returns a copy of the productions this grammar has been
// created from.
func (g *Grammar) Productions() []Production {
	prods := make([]Production, len(g.productions))
	copy(prods, g.productions)
	return prods
}

// NonTerminals returns the non-terminals in order of first occurence as a
// left side. The augmented start symbol is the last one.
func (g *Grammar) NonTerminals() []*Symbol {
	return g.nonterminals
}

// Terminals returns the terminals in order of first occurence on a right side.
// The end marker is part of the terminals exactly once.
func (g *Grammar) Terminals() []*Symbol {
	return g.terminals
}

// SymbolByName gets a symbol for a given name, if found in the grammar.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols.ResolveSymbol(name)
}

// SymbolBySerial gets a symbol by its serial number, if found in the grammar.
func (g *Grammar) SymbolBySerial(n int) *Symbol {
	return g.symbols.SymbolBySerial(n)
}

// SymbolCount returns the number of symbols of the grammar.
func (g *Grammar) SymbolCount() int {
	return g.symbols.Size()
}

// EachNonTerminal iterates over all non-terminals of the grammar.
// Return values of the mapper function for all non-terminals are returned as an
// array.
func (g *Grammar) EachNonTerminal(mapper func(sym *Symbol) interface{}) []interface{} {
	var r = make([]interface{}, 0, len(g.nonterminals))
	for _, A := range g.nonterminals {
		r = append(r, mapper(A))
	}
	return r
}

// EachTerminal iterates over all terminals of the grammar.
// Return values of the mapper function for all terminals are returned as an array.
func (g *Grammar) EachTerminal(mapper func(sym *Symbol) interface{}) []interface{} {
	var r = make([]interface{}, 0, len(g.terminals))
	for _, A := range g.terminals {
		r = append(r, mapper(A))
	}
	return r
}

// EachSymbol iterates over all symbols of the grammar, non-terminals first.
// Return values of the mapper function are returned as an array.
func (g *Grammar) EachSymbol(mapper func(sym *Symbol) interface{}) []interface{} {
	r := g.EachNonTerminal(mapper)
	return append(r, g.EachTerminal(mapper)...)
}

// Hash returns a fingerprint of the productions of a grammar. Grammars with
// identical production lists have identical fingerprints, regardless of
// their names.
func (g *Grammar) Hash() string {
	return fmt.Sprintf("%x", structhash.Md5(struct{ Productions []Production }{g.Productions()}, 1))
}

// Dump is a debugging helper: dump symbols and rules of a grammar to
// the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	tracer().Debugf("N = %v", sortedNames(g.nonterminals))
	tracer().Debugf("T = %v", sortedNames(g.terminals))
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, ruleString(r))
	}
	tracer().Debugf("-------------------------------------------------------")
}

func ruleString(r *Rule) string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("[%s] ::= [", r.LHS.Name))
	for i, A := range r.rhs {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(A.Name)
	}
	b.WriteString("]")
	return b.String()
}

func sortedNames(syms []*Symbol) []interface{} {
	set := treeset.NewWithStringComparator()
	for _, A := range syms {
		set.Add(A.Name)
	}
	return set.Values()
}
