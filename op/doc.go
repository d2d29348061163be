/*
Package op constructs operator precedence tables.

An operator precedence table holds, for an ordered pair of terminals (a,b),
one of the relations

    a = b    a and b are part of the same handle
    a < b    a yields precedence to b
    a > b    a takes precedence over b

Tables are constructed by a TableGenerator from the FIRSTVT and LASTVT sets
of a grammar (see package vt):

    ga, _ := vt.Analysis(g)                  // g is an augmented grammar
    gen := op.NewTableGenerator(ga)
    if err := gen.CreateTable(); err != nil {
        // errors.Is(err, opg.ErrAmbiguousGrammar)
    }
    op.TableAsText(os.Stdout, gen.Table(), op.GrammarOrder)

If a pair of terminals would receive two different relations, the grammar is
not an operator precedence grammar and table construction stops with an
*opg.AmbiguityError. For debugging grammars, TableGenerator.Diagnose reports
all conflicts instead of stopping at the first one.

Configuration

If the global configuration flag 'panic-on-ambiguity' is set, the generator
will panic on the first conflict, which may help with post-mortem debugging.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package op

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'opg.op'.
func tracer() tracing.Trace {
	return tracing.Select("opg.op")
}
