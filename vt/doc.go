/*
Package vt computes FIRSTVT and LASTVT sets of the non-terminals of a grammar.

FIRSTVT(A) is the set of terminals which may appear as the first visible
terminal in a string derived from A, i.e. as the first symbol or directly
behind a leading non-terminal. LASTVT(A) is defined symmetrically. These
sets are the prerequisite for constructing operator precedence tables.

Computation takes two steps. First, productions are scanned once per direction
to extract two relations per non-terminal U:

■ mono(U): terminals directly visible at the relevant end of a right side of U

■ con(U): non-terminals a right side of U starts with (or ends with, for LASTVT)

Then VT(A) is the union of mono(B) for every B reachable from A via con,
including A itself. Recursive grammars make con cyclic; the closure engine
collapses strongly connected components of con (Tarjan's algorithm) and
computes the sets bottom-up over the condensation. All members of a
component (a category) share the identical set.

    ga, err := vt.Analysis(g)          // g is a grammar.Grammar
    ga.FirstVT().Of(g.SymbolByName("E"))

FIRSTVT and LASTVT are computed concurrently.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vt

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'opg.vt'.
func tracer() tracing.Trace {
	return tracing.Select("opg.vt")
}
