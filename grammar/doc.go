/*
Package grammar holds context-free grammars for operator precedence analysis.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Right hand sides
of rules must not be empty.

Example:

    b := grammar.NewGrammarBuilder("G")
    b.LHS("E").N("E").T("+").N("T").End()  // E  ->  E + T
    b.LHS("E").N("T").End()                // E  ->  T
    b.LHS("T").T("id").End()               // T  ->  id
    g, err := b.Grammar()

This results in the following grammar:

   g.Dump()

   0: [E] ::= [E + T]
   1: [E] ::= [T]
   2: [T] ::= [id]
   3: [E'] ::= [$ E $]

The last rule is the augmentation of the grammar: a fresh start symbol
derives the original start symbol, framed by end markers '$'. Grammars are
always augmented upon construction.

Alternatively, clients may create a grammar from a list of productions,
as produced by package ggl:

    g, err := grammar.NewGrammar("G", []grammar.Production{
        {Left: "E", Right: []string{"E", "+", "T"}},
        {Left: "E", Right: []string{"T"}},
        {Left: "T", Right: []string{"id"}},
    })

Symbols

Non-terminals are exactly the symbols appearing on the left side of a
production. Every other symbol is a terminal. Symbols are interned per
grammar and carry a serial number (Value), which other packages use for
compact set representations.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'opg.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("opg.grammar")
}
