package symbols

import (
	"kestrel/internal/source"
	"kestrel/internal/types"
)

// Symbol is a value name visible inside a function body
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Type     types.Ref        // NoRef if the declared type did not resolve
	Location *source.Location // Declaring identifier
}

// SymbolKind categorizes symbols
type SymbolKind int

const (
	SymbolParameter SymbolKind = iota
	SymbolLocal
)

func (sk SymbolKind) String() string {
	switch sk {
	case SymbolParameter:
		return "parameter"
	case SymbolLocal:
		return "local"
	default:
		return "unknown"
	}
}
