package opg

import (
	"errors"
	"fmt"
)

// --- Precedence relations --------------------------------------------------

// Relation is an operator precedence relation between an ordered pair of
// terminals. Relations are directional: a = b does not imply b = a.
type Relation int8

// Relations between terminals. NoRelation denotes an empty table cell.
const (
	NoRelation Relation = iota
	Equal               // a ≐ b: a and b belong to the same handle
	Less                // a ⋖ b: a yields precedence to b
	Greater             // a ⋗ b: a takes precedence over b
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "="
	case Less:
		return "<"
	case Greater:
		return ">"
	}
	return ""
}

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to scanners to define them.
type TokType int

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect the lexemes of a grammar source, e.g. a symbol name:
//
//    TokType = Sym         // identifier for this kind of tokens (scanner specific)
//    Lexeme  = "id"        // lexeme how it appeared in the input stream
//    Value   = "id"        // symbol name, possibly unquoted
//    Span    = 67…69       // occured from position 67 in the input stream
//    Line    = 3           // on line 3 of the input
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
	Line() int
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input run. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Errors ----------------------------------------------------------------

// ErrMalformedGrammar is the error kind for grammars which cannot be constructed:
// empty grammars, empty right hand sides, or lines of grammar source
// which cannot be split into a left and a right side.
var ErrMalformedGrammar = errors.New("malformed grammar")

// ErrAmbiguousGrammar is the error kind for grammars where a pair of terminals
// receives two different precedence relations. Such a grammar is not an operator
// precedence grammar; retrying will not help, the grammar has to change.
var ErrAmbiguousGrammar = errors.New("grammar is not an operator precedence grammar")

// GrammarError reports a malformed grammar. Line is 1-based and 0 if the
// error does not relate to a line of grammar source.
type GrammarError struct {
	Line int
	Msg  string
}

// MalformedGrammar creates a GrammarError for a source line (or 0).
func MalformedGrammar(line int, format string, args ...interface{}) *GrammarError {
	return &GrammarError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (e *GrammarError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed grammar, line %d: %s", e.Line, e.Msg)
	}
	return "malformed grammar: " + e.Msg
}

// Unwrap makes GrammarError match ErrMalformedGrammar with errors.Is.
func (e *GrammarError) Unwrap() error {
	return ErrMalformedGrammar
}

// AmbiguityError reports a pair of terminals (Left, Right) which already holds
// relation Stored when relation Inserted is derived for it. Rule is the
// grammar rule the conflicting relation stems from, if known.
type AmbiguityError struct {
	Left, Right string
	Stored      Relation
	Inserted    Relation
	Rule        string
}

func (e *AmbiguityError) Error() string {
	msg := fmt.Sprintf("ambiguous grammar: (%s,%s) is %s %s %s, cannot also be %s %s %s",
		e.Left, e.Right, e.Left, e.Stored, e.Right, e.Left, e.Inserted, e.Right)
	if e.Rule != "" {
		msg += " (from " + e.Rule + ")"
	}
	return msg
}

// Unwrap makes AmbiguityError match ErrAmbiguousGrammar with errors.Is.
func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguousGrammar
}
