package grammar

import (
	"github.com/npillmayer/opg"
)

// GrammarBuilder is a builder type for grammars. Clients add rules one at
// a time, each started with LHS() and finished with End():
//
//     b := NewGrammarBuilder("G")
//     b.LHS("S").N("A").T("a").End()
//
// Symbols added with N() have to be defined as a left side by some rule,
// symbols added with T() must not.
type GrammarBuilder struct {
	name    string
	prods   []Production
	current *Production
	kinds   map[string]symbolUse // how symbols have been added on right sides
	err     error
}

type symbolUse struct {
	asTerminal, asNonTerminal bool
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		name:  gname,
		kinds: make(map[string]symbolUse),
	}
}

// RuleBuilder is a builder type for a single rule.
type RuleBuilder struct {
	gb *GrammarBuilder
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	if gb.current != nil {
		tracer().Errorf("rule for %s not terminated with End()", gb.current.Left)
		gb.setErr(opg.MalformedGrammar(0, "rule for %s not terminated", gb.current.Left))
	}
	if s == "" {
		gb.setErr(opg.MalformedGrammar(0, "empty left hand side"))
	}
	gb.current = &Production{Left: s}
	return &RuleBuilder{gb: gb}
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.append(s, false)
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.append(s, true)
	return rb
}

func (rb *RuleBuilder) append(s string, terminal bool) {
	if s == "" {
		rb.gb.setErr(opg.MalformedGrammar(0, "empty symbol in rule for %s", rb.gb.current.Left))
		return
	}
	use := rb.gb.kinds[s]
	if terminal {
		use.asTerminal = true
	} else {
		use.asNonTerminal = true
	}
	rb.gb.kinds[s] = use
	rb.gb.current.Right = append(rb.gb.current.Right, s)
}

// End ends a rule.
func (rb *RuleBuilder) End() *GrammarBuilder {
	gb := rb.gb
	if gb.current == nil {
		return gb
	}
	tracer().Debugf("new rule %v", gb.current)
	gb.prods = append(gb.prods, *gb.current)
	gb.current = nil
	return gb
}

// Grammar returns the (completed) grammar. The builder should not be used
// afterwards.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.current != nil {
		gb.setErr(opg.MalformedGrammar(0, "rule for %s not terminated", gb.current.Left))
	}
	if gb.err != nil {
		return nil, gb.err
	}
	g, err := NewGrammar(gb.name, gb.prods)
	if err != nil {
		return nil, err
	}
	for _, p := range gb.prods { // check symbol usage against left sides
		for _, s := range p.Right {
			A := g.SymbolByName(s)
			use := gb.kinds[s]
			if use.asTerminal && !A.IsTerminal() {
				return nil, opg.MalformedGrammar(0, "symbol %s added as terminal, but has rules", s)
			}
			if use.asNonTerminal && A.IsTerminal() {
				return nil, opg.MalformedGrammar(0, "symbol %s added as non-terminal, but has no rules", s)
			}
		}
	}
	return g, nil
}

func (gb *GrammarBuilder) setErr(err error) {
	if gb.err == nil {
		gb.err = err
	}
}
