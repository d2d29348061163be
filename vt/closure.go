package vt

import (
	"bytes"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/opg/grammar"
	"golang.org/x/tools/container/intsets"
)

// VT holds the FIRSTVT or LASTVT sets of all non-terminals of a grammar.
// A VT is immutable after construction.
type VT struct {
	Dir        Direction
	g          *grammar.Grammar
	sets       map[*grammar.Symbol]*intsets.Sparse
	category   map[*grammar.Symbol]int
	categories [][]*grammar.Symbol // members by category id
}

// Of returns VT(A) as a list of terminals, in order of their serial numbers.
// Returns nil for terminals.
func (vt *VT) Of(A *grammar.Symbol) []*grammar.Symbol {
	S := vt.sets[A]
	if S == nil {
		return nil
	}
	serials := S.AppendTo(nil)
	terms := make([]*grammar.Symbol, len(serials))
	for i, n := range serials {
		terms[i] = vt.g.SymbolBySerial(n)
	}
	return terms
}

// Set returns VT(A) as a set of terminal serial numbers, or nil for terminals.
// Members of a category share a single set. Clients must not modify it.
func (vt *VT) Set(A *grammar.Symbol) *intsets.Sparse {
	return vt.sets[A]
}

// Contains is true if terminal t ∈ VT(A).
func (vt *VT) Contains(A, t *grammar.Symbol) bool {
	S := vt.sets[A]
	return S != nil && S.Has(t.Value)
}

// Category returns the id of the strongly connected component of con which
// non-terminal A is a member of, or -1 for terminals. Categories are numbered
// in reverse topological order: a category only contains references to
// categories with lower ids.
func (vt *VT) Category(A *grammar.Symbol) int {
	if c, ok := vt.category[A]; ok {
		return c
	}
	return -1
}

// Categories returns the number of categories.
func (vt *VT) Categories() int {
	return len(vt.categories)
}

// Members returns the non-terminals of category c.
func (vt *VT) Members(c int) []*grammar.Symbol {
	if c < 0 || c >= len(vt.categories) {
		return nil
	}
	return vt.categories[c]
}

// Dump is a debugging helper: dump all VT sets to the tracer.
func (vt *VT) Dump() {
	tracer().Debugf("--- %s ------------------------------------------", vt.Dir)
	for _, A := range vt.g.NonTerminals() {
		tracer().Debugf("%s(%s) = %s   [category %d]", vt.Dir, A, names(vt.g, vt.sets[A]), vt.category[A])
	}
	tracer().Debugf("-------------------------------------------------------")
}

// --- Closure ---------------------------------------------------------------

// Closure computes the VT sets from direct relations:
//
//     VT(A) = mono(A) ∪ ⋃ { mono(B) | B reachable from A via con }
//
// The strongly connected components of con are found with Tarjan's algorithm.
// Tarjan produces components in reverse topological order of the condensation,
// thus every component is completed after all the components it refers to.
// Closure always terminates and cannot fail.
func Closure(rel *Relations) *VT {
	g := rel.Grammar()
	vt := &VT{
		Dir:      rel.Dir,
		g:        g,
		sets:     make(map[*grammar.Symbol]*intsets.Sparse),
		category: make(map[*grammar.Symbol]int),
	}
	t := &tarjan{
		rel:     rel,
		vt:      vt,
		index:   make(map[*grammar.Symbol]int),
		lowlink: make(map[*grammar.Symbol]int),
		onStack: make(map[*grammar.Symbol]bool),
		stack:   arraystack.New(),
	}
	for _, A := range g.NonTerminals() {
		if _, visited := t.index[A]; !visited {
			t.strongConnect(A)
		}
	}
	tracer().Infof("%s: %d non-terminals in %d categories", vt.Dir,
		len(g.NonTerminals()), len(vt.categories))
	return vt
}

type tarjan struct {
	rel     *Relations
	vt      *VT
	counter int
	index   map[*grammar.Symbol]int
	lowlink map[*grammar.Symbol]int
	onStack map[*grammar.Symbol]bool
	stack   *arraystack.Stack // Tarjan's stack of nodes
}

// frame is a stack frame of the (non-recursive) depth first search.
type frame struct {
	node  *grammar.Symbol
	succs []*grammar.Symbol
	next  int
}

func (t *tarjan) enter(A *grammar.Symbol) *frame {
	t.index[A] = t.counter
	t.lowlink[A] = t.counter
	t.counter++
	t.stack.Push(A)
	t.onStack[A] = true
	return &frame{node: A, succs: t.successors(A)}
}

func (t *tarjan) successors(A *grammar.Symbol) []*grammar.Symbol {
	serials := t.rel.Con[A].AppendTo(nil)
	succs := make([]*grammar.Symbol, len(serials))
	for i, n := range serials {
		succs[i] = t.rel.Grammar().SymbolBySerial(n)
	}
	return succs
}

func (t *tarjan) strongConnect(root *grammar.Symbol) {
	callstack := arraystack.New()
	callstack.Push(t.enter(root))
	for !callstack.Empty() {
		top, _ := callstack.Peek()
		f := top.(*frame)
		if f.next < len(f.succs) {
			B := f.succs[f.next]
			f.next++
			if _, visited := t.index[B]; !visited {
				callstack.Push(t.enter(B))
			} else if t.onStack[B] {
				t.lowlink[f.node] = min(t.lowlink[f.node], t.index[B])
			}
			continue
		}
		callstack.Pop()
		if t.lowlink[f.node] == t.index[f.node] {
			t.component(f.node)
		}
		if parent, ok := callstack.Peek(); ok {
			P := parent.(*frame).node
			t.lowlink[P] = min(t.lowlink[P], t.lowlink[f.node])
		}
	}
}

// component pops a strongly connected component with root A off the stack and
// computes the set shared by all of its members.
func (t *tarjan) component(A *grammar.Symbol) {
	id := len(t.vt.categories)
	var members []*grammar.Symbol
	for {
		x, _ := t.stack.Pop()
		B := x.(*grammar.Symbol)
		t.onStack[B] = false
		t.vt.category[B] = id
		members = append(members, B)
		if B == A {
			break
		}
	}
	S := &intsets.Sparse{}
	for _, B := range members {
		S.UnionWith(t.rel.Mono[B])
		for _, C := range t.successors(B) {
			if t.vt.category[C] != id { // completed earlier
				S.UnionWith(t.vt.sets[C])
			}
		}
	}
	for _, B := range members {
		t.vt.sets[B] = S
	}
	t.vt.categories = append(t.vt.categories, members)
	if len(members) > 1 {
		tracer().Debugf("%s: category %d = %v", t.vt.Dir, id, members)
	}
}

// names is a debugging helper to print a set of symbol serials.
func names(g *grammar.Grammar, S *intsets.Sparse) string {
	var b bytes.Buffer
	b.WriteString("{")
	if S != nil {
		for i, n := range S.AppendTo(nil) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(g.SymbolBySerial(n).Name)
		}
	}
	b.WriteString("}")
	return b.String()
}
