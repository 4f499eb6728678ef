package table

import (
	"fmt"

	"kestrel/internal/semantics/symbols"
)

// SymbolTable holds the symbols of one scope. Function parameters live in the
// outermost scope of a function; each block opens a child.
type SymbolTable struct {
	parent  *SymbolTable
	symbols map[string]*symbols.Symbol
}

// NewSymbolTable creates a new symbol table with optional parent scope
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		parent:  parent,
		symbols: make(map[string]*symbols.Symbol),
	}
}

// Parent returns the enclosing scope, nil for the outermost one
func (st *SymbolTable) Parent() *SymbolTable {
	return st.parent
}

// Declare adds a symbol to the table
func (st *SymbolTable) Declare(name string, symbol *symbols.Symbol) error {
	if _, exists := st.symbols[name]; exists {
		return fmt.Errorf("symbol '%s' already declared", name)
	}
	st.symbols[name] = symbol
	return nil
}

// Lookup finds a symbol in this scope or parent scopes
func (st *SymbolTable) Lookup(name string) (*symbols.Symbol, bool) {
	if sym, ok := st.symbols[name]; ok {
		return sym, true
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	return nil, false
}

// GetSymbol finds a symbol in this scope only
func (st *SymbolTable) GetSymbol(name string) (*symbols.Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}
