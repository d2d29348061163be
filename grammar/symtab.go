package grammar

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Symbol table for grammar symbols. Every grammar owns one symbol table,
// which interns symbols by name and hands out serial numbers.

// --- Symbols ---------------------------------------------------------------

// Symbol is a grammar symbol, i.e. a terminal or a non-terminal.
// Symbols are unique per name within a grammar.
type Symbol struct {
	Name     string
	Value    int // serial number, unique within a grammar
	terminal bool
}

// IsTerminal returns true if this symbol is a terminal.
func (A *Symbol) IsTerminal() bool {
	return A.terminal
}

func (A *Symbol) String() string {
	return A.Name
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store grammar symbols (map-like semantics).
type SymbolTable struct {
	Table   map[string]*Symbol
	serials []*Symbol // symbols by serial number
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	var symtab = SymbolTable{
		Table: make(map[string]*Symbol),
	}
	return &symtab
}

// ResolveSymbol checks for a symbol in the symbol table.
// Returns a symbol or nil.
func (t *SymbolTable) ResolveSymbol(name string) *Symbol {
	return t.Table[name]
}

// ResolveOrDefineSymbol finds a symbol in the table, inserts a new one if not
// found. Returns the symbol and a flag, signalling wether the symbol
// has already been present.
func (t *SymbolTable) ResolveOrDefineSymbol(name string) (*Symbol, bool) {
	if len(name) == 0 {
		return nil, false
	}
	if sym := t.ResolveSymbol(name); sym != nil {
		return sym, true
	}
	return t.DefineSymbol(name), false
}

// DefineSymbol creates a new symbol to store into the symbol table.
// The symbol's name may not be empty. It is a programming error to define
// a symbol twice.
func (t *SymbolTable) DefineSymbol(name string) *Symbol {
	if len(name) == 0 {
		return nil
	}
	if t.ResolveSymbol(name) != nil {
		panic(fmt.Sprintf("symbol %q defined twice", name))
	}
	sym := &Symbol{Name: name, Value: len(t.serials)}
	t.Table[name] = sym
	t.serials = append(t.serials, sym)
	return sym
}

// SymbolBySerial returns the symbol with serial number n, or nil.
func (t *SymbolTable) SymbolBySerial(n int) *Symbol {
	if n < 0 || n >= len(t.serials) {
		return nil
	}
	return t.serials[n]
}

// Size counts the symbols in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each iterates over each symbol in the table, in lexicographic order of the
// symbol names, executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Symbol)) {
	names := maps.Keys(t.Table)
	slices.Sort(names)
	for _, name := range names {
		mapper(name, t.Table[name])
	}
}
