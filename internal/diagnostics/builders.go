package diagnostics

import (
	"fmt"

	"kestrel/internal/source"
)

// Common diagnostic builders for the resolver and type checker

// RedeclaredSymbol creates a diagnostic for a name defined twice in the type table
func RedeclaredSymbol(newLoc, prevLoc *source.Location, name string) *Diagnostic {
	diag := NewError(fmt.Sprintf("duplicate definition of '%s'", name)).
		WithCode(ErrRedeclaredSymbol).
		WithPrimaryLabel(newLoc, "")
	if prevLoc != nil {
		diag.WithSecondaryLabel(prevLoc, "previously defined here")
	}
	return diag
}

// UnknownType creates a diagnostic for a type name that is not in the table
func UnknownType(loc *source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("unknown type '%s'", name)).
		WithCode(ErrUnknownType).
		WithPrimaryLabel(loc, "")
}

// UndefinedSymbol creates a diagnostic for an identifier with no binding
func UndefinedSymbol(loc *source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("undefined identifier '%s'", name)).
		WithCode(ErrUndefinedSymbol).
		WithPrimaryLabel(loc, "")
}

// TypeMismatch creates a diagnostic for an assignment between different types
func TypeMismatch(loc *source.Location, target, value string) *Diagnostic {
	return NewError(fmt.Sprintf("mismatched types: cannot assign '%s' to '%s'", value, target)).
		WithCode(ErrTypeMismatch).
		WithPrimaryLabel(loc, "")
}

// WrongArgumentCount creates a diagnostic for a call with the wrong arity
func WrongArgumentCount(loc *source.Location, name string, expected, found int) *Diagnostic {
	return NewError(fmt.Sprintf("function '%s' expects %d argument(s), found %d", name, expected, found)).
		WithCode(ErrWrongArgumentCount).
		WithPrimaryLabel(loc, "")
}

// FieldNotFound creates a diagnostic for a field missing from a struct
func FieldNotFound(loc *source.Location, fieldName, typeName string) *Diagnostic {
	return NewError(fmt.Sprintf("no field '%s' in struct '%s'", fieldName, typeName)).
		WithCode(ErrFieldNotFound).
		WithPrimaryLabel(loc, "")
}
