package types

import "github.com/aemlang/aemc/internal/ast"

// Scope represents a lexical scope containing symbols.
type Scope struct {
	Parent  *Scope
	Symbols map[string]*ast.Symbol
	Depth   int
}

// NewScope creates a new scope with an optional parent.
func NewScope(parent *Scope) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	return &Scope{
		Parent:  parent,
		Symbols: make(map[string]*ast.Symbol),
		Depth:   depth,
	}
}

// Insert adds a symbol to the current scope.
func (s *Scope) Insert(name string, sym *ast.Symbol) {
	sym.Depth = s.Depth
	s.Symbols[name] = sym
}

// Lookup finds a symbol in the current scope or any parent scope.
func (s *Scope) Lookup(name string) *ast.Symbol {
	if sym, ok := s.Symbols[name]; ok {
		return sym
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil
}

// LookupLocal finds a symbol in the current scope only. Shadowing checks use
// this to allow redeclaration in nested scopes.
func (s *Scope) LookupLocal(name string) *ast.Symbol {
	return s.Symbols[name]
}
