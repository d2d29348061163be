/*
Package opg is an operator precedence table generator.

OPG computes the operator precedence relations between the terminals of a
context-free grammar, as consulted by an operator precedence parser.
It detects grammars which are not operator precedence grammars, i.e. where
some pair of terminals would require two different relations. Package
structure is as follows:

■ grammar: Package grammar holds grammar symbols and rules, together with
a builder and the augmentation by an end marker. Sub-package ggl reads
grammars from text.

■ vt: Package vt computes FIRSTVT and LASTVT sets of non-terminals.

■ op: Package op builds, checks and exports precedence tables.

■ scanner: Package scanner defines a tokenizer interface and a lexmachine
adapter.

The base package contains data types which are used throughout all the other
packages: precedence relations, tokens, spans and the error kinds.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package opg
