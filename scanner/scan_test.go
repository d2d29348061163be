package scanner

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		scanner, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMKeywordsAndLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	scanner, _ := LM.Scanner("t\n  nil\nx")
	expected := []struct {
		id   int
		line int
		from uint64
	}{
		{tokenIds["t"], 1, 0},
		{tokenIds["nil"], 2, 4},
		{tokenIds["ID"], 3, 8},
	}
	for i, exp := range expected {
		token := scanner.NextToken()
		if int(token.TokType()) != exp.id {
			t.Errorf("token #%d: expected type %d, have %d", i, exp.id, token.TokType())
		}
		if token.Line() != exp.line {
			t.Errorf("token #%d: expected line %d, have %d", i, exp.line, token.Line())
		}
		if token.Span().From() != exp.from || token.Span().Len() != uint64(len(token.Lexeme())) {
			t.Errorf("token #%d: unexpected span %v", i, token.Span())
		}
	}
	if token := scanner.NextToken(); token.TokType() != EOF {
		t.Errorf("expected EOF, have %v", token)
	}
}

func TestLMErrorHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opg.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	scanner, _ := LM.Scanner("a ~ b")
	errcnt := 0
	scanner.SetErrorHandler(func(error) { errcnt++ })
	count := 0
	for token := scanner.NextToken(); token.TokType() != EOF; token = scanner.NextToken() {
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 tokens, have %d", count)
	}
	if errcnt == 0 {
		t.Errorf("expected error handler to be called for unmatched input")
	}
}

func makeAdapter(t *testing.T) *LMAdapter {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = 1
	tokenIds["ID"] = 2
	tokenIds["NUM"] = 3
	tokenIds["STRING"] = 4
	for i, tok := range tokens[4:] {
		tokenIds[tok] = i + 10
	}
}
