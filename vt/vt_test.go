package vt

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/npillmayer/opg/grammar"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/tools/container/intsets"
)

func TestCyclicFirstVT(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.vt")
	defer teardown()
	//
	tracing.Select("opg.vt").SetTraceLevel(tracing.LevelDebug)
	b := grammar.NewGrammarBuilder("G")
	b.LHS("A").N("B").T("a").End()
	b.LHS("B").N("A").T("b").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga, err := Analysis(g)
	if err != nil {
		t.Fatal(err)
	}
	ga.Dump()
	A, B := g.SymbolByName("A"), g.SymbolByName("B")
	first := ga.FirstVT()
	expectVT(t, first, A, "a", "b")
	expectVT(t, first, B, "a", "b")
	if first.Set(A) != first.Set(B) {
		t.Errorf("members of a category should share one set")
	}
	if first.Category(A) != first.Category(B) {
		t.Errorf("A and B expected to be in the same category")
	}
	S := g.AugmentedStartSymbol()
	if first.Category(S) <= first.Category(A) {
		t.Errorf("category of %v should be completed after category of A", S)
	}
	expectVT(t, first, S, "$")
	expectVT(t, ga.LastVT(), A, "a")
	expectVT(t, ga.LastVT(), B, "b")
	if first.Category(g.SymbolByName("a")) != -1 {
		t.Errorf("terminals have no category")
	}
}

func TestSelfRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.vt")
	defer teardown()
	//
	b := grammar.NewGrammarBuilder("G")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("id").End()
	g, _ := b.Grammar()
	ga, _ := Analysis(g)
	E, T := g.SymbolByName("E"), g.SymbolByName("T")
	expectVT(t, ga.FirstVT(), E, "+", "id")
	expectVT(t, ga.FirstVT(), T, "id")
	expectVT(t, ga.LastVT(), E, "+", "id")
	expectVT(t, ga.VT(Last), T, "id")
	if !ga.FirstVT().Contains(E, g.SymbolByName("+")) {
		t.Errorf("expected + ∈ FIRSTVT(E)")
	}
}

func TestEmptyVT(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.vt")
	defer teardown()
	//
	b := grammar.NewGrammarBuilder("G")
	b.LHS("S").N("A").T("x").End()
	b.LHS("A").N("B").End()
	b.LHS("B").N("A").End()
	g, _ := b.Grammar()
	ga, _ := Analysis(g)
	expectVT(t, ga.FirstVT(), g.SymbolByName("A"))
	expectVT(t, ga.FirstVT(), g.SymbolByName("B"))
	expectVT(t, ga.FirstVT(), g.SymbolByName("S"), "x")
	expectVT(t, ga.LastVT(), g.SymbolByName("S"), "x")
}

func TestExtractRelations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.vt")
	defer teardown()
	//
	b := grammar.NewGrammarBuilder("G")
	b.LHS("S").N("A").T("x").N("A").End()
	b.LHS("A").T("y").End()
	g, _ := b.Grammar()
	S, A := g.SymbolByName("S"), g.SymbolByName("A")
	x := g.SymbolByName("x")
	for _, dir := range []Direction{First, Last} {
		rel := Extract(g, dir)
		if len(rel.Mono) != len(g.NonTerminals()) || len(rel.Con) != len(g.NonTerminals()) {
			t.Errorf("%s: every non-terminal should have an entry", dir)
		}
		if !rel.Con[S].Has(A.Value) || rel.Con[S].Len() != 1 {
			t.Errorf("%s: expected con(S) = {A}", dir)
		}
		if !rel.Mono[S].Has(x.Value) || rel.Mono[S].Len() != 1 {
			t.Errorf("%s: expected mono(S) = {x}", dir)
		}
		if !rel.Con[A].IsEmpty() {
			t.Errorf("%s: expected con(A) to be empty", dir)
		}
	}
}

// Cross-check the closure engine against a naive fixpoint iteration.
func TestClosureAgainstFixpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.vt")
	defer teardown()
	//
	rnd := rand.New(rand.NewSource(4711))
	for run := 0; run < 50; run++ {
		g := randomGrammar(t, rnd)
		for _, dir := range []Direction{First, Last} {
			rel := Extract(g, dir)
			vt := Closure(rel)
			naive := fixpoint(g, rel)
			for _, A := range g.NonTerminals() {
				if !vt.Set(A).Equals(naive[A]) {
					t.Errorf("run %d, %s(%s): closure = %s, fixpoint = %s", run, dir, A,
						names(g, vt.Set(A)), names(g, naive[A]))
				}
			}
		}
	}
}

func fixpoint(g *grammar.Grammar, rel *Relations) map[*grammar.Symbol]*intsets.Sparse {
	sets := make(map[*grammar.Symbol]*intsets.Sparse)
	for _, A := range g.NonTerminals() {
		sets[A] = &intsets.Sparse{}
		sets[A].Copy(rel.Mono[A])
	}
	for changed := true; changed; {
		changed = false
		for _, A := range g.NonTerminals() {
			for _, n := range rel.Con[A].AppendTo(nil) {
				if sets[A].UnionWith(sets[g.SymbolBySerial(n)]) {
					changed = true
				}
			}
		}
	}
	return sets
}

func randomGrammar(t *testing.T, rnd *rand.Rand) *grammar.Grammar {
	nonterms := 2 + rnd.Intn(6)
	terms := []string{"a", "b", "c", "d", "e"}
	var prods []grammar.Production
	for i := 0; i < nonterms; i++ {
		for r := 0; r < 1+rnd.Intn(3); r++ {
			rhs := make([]string, 1+rnd.Intn(4))
			for j := range rhs {
				if rnd.Intn(2) == 0 {
					rhs[j] = fmt.Sprintf("N%d", rnd.Intn(nonterms))
				} else {
					rhs[j] = terms[rnd.Intn(len(terms))]
				}
			}
			prods = append(prods, grammar.Production{Left: fmt.Sprintf("N%d", i), Right: rhs})
		}
	}
	g, err := grammar.NewGrammar("random", prods)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func expectVT(t *testing.T, vt *VT, A *grammar.Symbol, terminals ...string) {
	t.Helper()
	S := vt.Of(A)
	if len(S) != len(terminals) {
		t.Errorf("expected %s(%s) = %v, have %v", vt.Dir, A, terminals, S)
		return
	}
	for i, term := range S {
		if term.Name != terminals[i] {
			t.Errorf("expected %s(%s) = %v, have %v", vt.Dir, A, terminals, S)
			return
		}
	}
}
