/*
Package ggl reads grammars from text.

Grammar source contains one production per line. Alternatives are separated
by '|', and a line starting with '|' continues the previous left side:

    E -> E + T | T
    T -> T * F
       | F            // comments extend to the end of the line
    F -> ( E ) | id
    X ::= 'a' '|' b   // '::=' is an arrow, too

Symbols are runs of characters separated by whitespace. Single-quoted symbols
are taken literally, without the quotes, and may contain '|', '->' or
whitespace. Please note that arrows and bars have to be separated from
symbols: 'E->T' is a single symbol.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ggl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/opg"
	"github.com/npillmayer/opg/grammar"
	"github.com/npillmayer/opg/scanner"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
)

// tracer traces with key 'opg.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("opg.grammar")
}

// Token types of grammar source.
const (
	tokSym opg.TokType = iota + 1
	tokQuoted
	tokNewline
	tokArrow
	tokBar
)

var literals = []string{"->", "::=", "|"}

var tokenIds = map[string]int{
	"->":  int(tokArrow),
	"::=": int(tokArrow),
	"|":   int(tokBar),
	"SYM": int(tokSym),
	"QUO": int(tokQuoted),
	"NL":  int(tokNewline),
}

var adapter *scanner.LMAdapter
var adapterErr error
var adapterOnce sync.Once

// lexer compiles the DFA for grammar source once.
func lexer() (*scanner.LMAdapter, error) {
	adapterOnce.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`//[^\n]*`), scanner.Skip)
			lexer.Add([]byte(`'[^'\n]*'`), scanner.MakeToken("QUO", tokenIds["QUO"]))
			lexer.Add([]byte(`\n`), scanner.MakeToken("NL", tokenIds["NL"]))
			lexer.Add([]byte(`( |\t|\r)+`), scanner.Skip)
			lexer.Add([]byte(`[^ \t\r\n\|']+`), scanner.MakeToken("SYM", tokenIds["SYM"]))
		}
		adapter, adapterErr = scanner.NewLMAdapter(init, literals, nil, tokenIds)
	})
	return adapter, adapterErr
}

// Parse reads grammar source and returns the list of productions, one
// production per alternative, in order of appearance. source names the input
// for error messages.
//
// Errors wrap opg.ErrMalformedGrammar and carry the line number.
func Parse(source string, r io.Reader) ([]grammar.Production, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading grammar %s: %w", source, err)
	}
	lm, err := lexer()
	if err != nil {
		return nil, err
	}
	scan, err := lm.Scanner(string(input))
	if err != nil {
		return nil, err
	}
	p := &parser{source: source, line: 1}
	scan.SetErrorHandler(func(e error) {
		if p.err == nil {
			p.err = opg.MalformedGrammar(p.line, "%s: cannot read symbol: %v", source, e)
		}
	})
	for {
		token := scan.NextToken()
		if token.TokType() == scanner.EOF {
			p.endLine()
			break
		}
		if token.TokType() != tokNewline && token.Line() > 0 {
			p.line = token.Line() // newline tokens carry the number of the following line
		}
		p.consume(token)
		if p.err != nil {
			break
		}
	}
	if p.err != nil {
		tracer().Errorf(p.err.Error())
		return nil, p.err
	}
	if len(p.prods) == 0 {
		return nil, opg.MalformedGrammar(0, "%s: no productions found", source)
	}
	tracer().Infof("read %d productions from %s", len(p.prods), source)
	return p.prods, nil
}

// Load reads grammar source and creates an (augmented) grammar from it.
func Load(name string, r io.Reader) (*grammar.Grammar, error) {
	prods, err := Parse(name, r)
	if err != nil {
		return nil, err
	}
	return grammar.NewGrammar(name, prods)
}

// LoadFile reads a grammar from a file. The grammar is named after the file.
func LoadFile(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Load(name, f)
}

// --- Line parser -----------------------------------------------------------

// parser collects the tokens of one source line at a time.
type parser struct {
	source string
	line   int
	lhs    string     // current left side, carries over to continuation lines
	head   []string   // symbols before the arrow
	arrow  bool       // arrow seen on this line
	alt    []string   // symbols of the current alternative
	alts   [][]string // completed alternatives of this line
	bar    bool       // line started with '|' or contains a bar
	prods  []grammar.Production
	err    error
}

func (p *parser) consume(token opg.Token) {
	switch token.TokType() {
	case tokNewline:
		p.endLine()
		p.line++
	case tokArrow:
		if p.arrow {
			p.err = opg.MalformedGrammar(p.line, "%s: more than one arrow", p.source)
			return
		}
		p.arrow = true
		p.head, p.alt = p.alt, nil
	case tokBar:
		p.bar = true
		if !p.arrow && len(p.alt) == 0 && len(p.alts) == 0 { // continuation line
			if p.lhs == "" {
				p.err = opg.MalformedGrammar(p.line, "%s: alternative without left side", p.source)
				return
			}
			p.arrow = true
			p.head = []string{p.lhs}
			return
		}
		p.alts = append(p.alts, p.alt)
		p.alt = nil
	case tokQuoted:
		lexeme := token.Lexeme()
		p.alt = append(p.alt, lexeme[1:len(lexeme)-1])
	default:
		p.alt = append(p.alt, token.Lexeme())
	}
}

// endLine turns the tokens of a source line into productions.
func (p *parser) endLine() {
	if p.err != nil {
		return
	}
	defer p.reset()
	if !p.arrow {
		if len(p.alt) > 0 || p.bar {
			p.err = opg.MalformedGrammar(p.line, "%s: missing arrow", p.source)
		}
		return // blank line
	}
	if len(p.head) != 1 {
		p.err = opg.MalformedGrammar(p.line, "%s: left side must be a single symbol, is %v",
			p.source, p.head)
		return
	}
	p.lhs = p.head[0]
	alts := append(p.alts, p.alt)
	for _, alt := range alts {
		if len(alt) == 0 || hasEmptySymbol(alt) {
			p.err = opg.MalformedGrammar(p.line, "%s: empty alternative for %s", p.source, p.lhs)
			return
		}
		tracer().Debugf("%s -> %v", p.lhs, alt)
		p.prods = append(p.prods, grammar.Production{Left: p.lhs, Right: alt})
	}
}

func (p *parser) reset() {
	p.head, p.alt, p.alts = nil, nil, nil
	p.arrow, p.bar = false, false
}

func hasEmptySymbol(alt []string) bool {
	for _, s := range alt {
		if s == "" {
			return true
		}
	}
	return false
}
