/*
Package scanner defines an interface for scanners used to read grammar
sources, together with an adapter for lexmachine.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing literals, keywords and regular
expressions. Package scanner is very opinionated on how to do the setup of
lexmachine:

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens
	var tokenIds map[string]int // A map from the token names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// scanner.Skip      is a pre-defined action which ignores the scanned match
		// scanner.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   token
	}
	LM, err := scanner.NewLMAdapter(init, literals, keywords, tokenIds)

Literals and keywords are added to the lexer before the patterns of init.
Lexmachine prefers the longest match and, for matches of equal length, the
pattern added first. Literals therefore win against general patterns
matching the same text.

A scanner is instantiated for each concrete input sequence and read until EOF.

	scan, err := LM.Scanner("input string to tokenize")
	for token := scan.NextToken(); token.TokType() != scanner.EOF; token = scan.NextToken() {
		…
	}

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/opg"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'opg.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("opg.scanner")
}

// EOF is the token type signalling the end of input. Scanners are free to
// define all other token types.
const EOF opg.TokType = -1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() opg.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the LexMachine
// scanner.
type DefaultToken struct {
	kind   opg.TokType
	lexeme string
	Val    interface{}
	span   opg.Span
	line   int
}

var _ opg.Token = DefaultToken{}

// MakeDefaultToken creates a token. Its value is initially the lexeme.
func MakeDefaultToken(typ opg.TokType, lexeme string, span opg.Span, line int) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		Val:    lexeme,
		span:   span,
		line:   line,
	}
}

func (t DefaultToken) TokType() opg.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() opg.Span {
	return t.span
}

// Line returns the 1-based line number the token starts on, or 0 for EOF.
func (t DefaultToken) Line() int {
	return t.line
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d|%q %s>", t.kind, t.lexeme, t.span)
}
