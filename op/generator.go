package op

import (
	"errors"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/opg"
	"github.com/npillmayer/opg/grammar"
	"github.com/npillmayer/opg/vt"
	"github.com/npillmayer/schuko/gconf"
)

// TableGenerator is a generator object to construct operator precedence tables.
// Clients usually create a Grammar G, then a vt.GrammarAnalysis for G,
// and then a table generator. TableGenerator.CreateTable() constructs
// the precedence table for G.
type TableGenerator struct {
	g              *grammar.Grammar
	ga             *vt.GrammarAnalysis
	table          *Table
	endMarkerEqual bool // derive '=' from the augmented start rule
	classicEqual   bool // '=' only for terminals at most one non-terminal apart
	HasConflicts   bool
}

// Option configures a table generator.
type Option func(*TableGenerator)

// EndMarkerEqual, if set, derives relation '=' from the augmented start rule
// S' → $ S $ as from any other rule, resulting in ($,$) = '='. The default is
// not to derive '=' from the augmented start rule.
func EndMarkerEqual(b bool) Option {
	return func(gen *TableGenerator) {
		gen.endMarkerEqual = b
	}
}

// ClassicEqual, if set, restricts relation '=' to terminals which are adjacent
// in a right side or separated by exactly one non-terminal. The default is to
// relate every terminal of a right side to every terminal following it.
func ClassicEqual(b bool) Option {
	return func(gen *TableGenerator) {
		gen.classicEqual = b
	}
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *vt.GrammarAnalysis, opts ...Option) *TableGenerator {
	gen := &TableGenerator{
		g:  ga.Grammar(),
		ga: ga,
	}
	for _, opt := range opts {
		opt(gen)
	}
	return gen
}

// Table returns the precedence table. The table has to be built by calling
// CreateTable() previously.
func (gen *TableGenerator) Table() *Table {
	if gen.table == nil {
		tracer().Errorf("table not yet created; call CreateTable() first")
	}
	return gen.table
}

// CreateTable creates the precedence table. Passes run in the order '=', '<', '>',
// each iterating over the rules in grammar order. The first conflicting relation
// stops construction with an *opg.AmbiguityError.
func (gen *TableGenerator) CreateTable() error {
	gen.table = nil
	gen.HasConflicts = false
	t := NewTable(gen.g)
	err := gen.build(func(a, b *grammar.Symbol, r opg.Relation, rule *grammar.Rule) error {
		err := t.Insert(a, b, r)
		if err == nil {
			return nil
		}
		var amb *opg.AmbiguityError
		if errors.As(err, &amb) {
			amb.Rule = rule.String()
			gen.HasConflicts = true
			tracer().Errorf(amb.Error())
			if gconf.GetBool("panic-on-ambiguity") {
				panic(amb)
			}
		}
		return err
	})
	if err != nil {
		return err
	}
	gen.table = t
	tracer().Infof("precedence table for %s has %d entries", gen.g.Name, t.Size())
	return nil
}

// Diagnose builds a scratch table without stopping at conflicts and returns
// all conflicts found, together with the table. Cells with conflicts hold
// the first relation and the first conflicting one. Diagnose is intended for
// debugging grammars; the table returned is not a valid precedence table if
// conflicts are reported.
func (gen *TableGenerator) Diagnose() ([]*opg.AmbiguityError, *Table) {
	t := NewTable(gen.g)
	conflicts := arraylist.New()
	reported := hashset.New() // of conflictKey
	gen.build(func(a, b *grammar.Symbol, r opg.Relation, rule *grammar.Rule) error {
		err := t.insert(a, b, r, true)
		var amb *opg.AmbiguityError
		if !errors.As(err, &amb) {
			return nil
		}
		key := conflictKey{a: a, b: b, r: r}
		if !reported.Contains(key) {
			reported.Add(key)
			amb.Rule = rule.String()
			conflicts.Add(amb)
		}
		return nil
	})
	gen.HasConflicts = !conflicts.Empty()
	result := make([]*opg.AmbiguityError, 0, conflicts.Size())
	it := conflicts.Iterator()
	for it.Next() {
		result = append(result, it.Value().(*opg.AmbiguityError))
	}
	tracer().Infof("%d conflicts in grammar %s", len(result), gen.g.Name)
	return result, t
}

// conflictKey identifies a conflicting relation r for terminal pair (a,b).
type conflictKey struct {
	a, b *grammar.Symbol
	r    opg.Relation
}

type inserter func(a, b *grammar.Symbol, r opg.Relation, rule *grammar.Rule) error

func (gen *TableGenerator) build(insert inserter) error {
	if err := gen.equalPass(insert); err != nil {
		return err
	}
	if err := gen.lessPass(insert); err != nil {
		return err
	}
	return gen.greaterPass(insert)
}

// equalPass relates terminals of the same right side: a = b if b follows a.
func (gen *TableGenerator) equalPass(insert inserter) error {
	for _, r := range gen.g.AugmentedRules() {
		if gen.g.IsStartRule(r) && !gen.endMarkerEqual {
			continue
		}
		rhs := r.RHS()
		var pos []int // positions of terminals in rhs
		for k, A := range rhs {
			if A.IsTerminal() {
				pos = append(pos, k)
			}
		}
		for i := 0; i < len(pos); i++ {
			for j := i + 1; j < len(pos); j++ {
				if gen.classicEqual && (j > i+1 || pos[j]-pos[i] > 2) {
					break
				}
				a, b := rhs[pos[i]], rhs[pos[j]]
				tracer().P("pass", "=").Debugf("%s = %s from %v", a, b, r)
				if err := insert(a, b, opg.Equal, r); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// lessPass: for a terminal a followed by a non-terminal B, a < b for all b ∈ FIRSTVT(B).
func (gen *TableGenerator) lessPass(insert inserter) error {
	first := gen.ga.FirstVT()
	for _, r := range gen.g.AugmentedRules() {
		rhs := r.RHS()
		for k := 0; k+1 < len(rhs); k++ {
			a, B := rhs[k], rhs[k+1]
			if !a.IsTerminal() || B.IsTerminal() {
				continue
			}
			for _, b := range first.Of(B) {
				tracer().P("pass", "<").Debugf("%s < %s from %v", a, b, r)
				if err := insert(a, b, opg.Less, r); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// greaterPass: for a non-terminal A followed by a terminal b, a > b for all a ∈ LASTVT(A).
func (gen *TableGenerator) greaterPass(insert inserter) error {
	last := gen.ga.LastVT()
	for _, r := range gen.g.AugmentedRules() {
		rhs := r.RHS()
		for k := 0; k+1 < len(rhs); k++ {
			A, b := rhs[k], rhs[k+1]
			if A.IsTerminal() || !b.IsTerminal() {
				continue
			}
			for _, a := range last.Of(A) {
				tracer().P("pass", ">").Debugf("%s > %s from %v", a, b, r)
				if err := insert(a, b, opg.Greater, r); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
