package types

import (
	"fmt"
	"strings"

	"kestrel/internal/source"
)

type TYPE_NAME string

const (
	TYPE_INT  TYPE_NAME = "int"
	TYPE_BOOL TYPE_NAME = "bool"
	TYPE_VOID TYPE_NAME = "void"
)

// Sizes are measured in abstract units, not bytes.
const (
	SIZE_INT      = 1
	SIZE_BOOL     = 1
	SIZE_VOID     = 0
	SIZE_FUNCTION = 1
	// A field holding a reference to its own struct, or an array, is one unit.
	SIZE_REFERENCE = 1
)

// IsPrimitive reports whether name is one of the builtin type names
func IsPrimitive(name string) bool {
	switch TYPE_NAME(name) {
	case TYPE_INT, TYPE_BOOL, TYPE_VOID:
		return true
	}
	return false
}

// Kind tags the variant of a Type.
type Kind int

const (
	KindPrimitive Kind = iota
	KindStruct
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindStruct:
		return "struct"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Handle indexes a Type inside the Table that produced it.
type Handle int

// NoHandle marks an absent type.
const NoHandle Handle = -1

// Member is a struct field or a function parameter.
// ArraySize is 0 for an unsized array reference.
type Member struct {
	Name      string
	Type      Handle
	IsArray   bool
	ArraySize int
}

// Type is one entry of the type table.
type Type struct {
	Name          string
	Size          int
	Kind          Kind
	Fields        []Member // KindStruct
	Return        Handle   // KindFunction
	ReturnIsArray bool     // KindFunction
	Params        []Member // KindFunction
	// Location of the defining name; nil for primitives.
	Location *source.Location
}

// Field returns the member called name.
func (t *Type) Field(name string) (Member, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Member{}, false
}

// ReturnRef is the type of a call to the function t.
func (t *Type) ReturnRef() Ref {
	return Ref{Type: t.Return, IsArray: t.ReturnIsArray}
}

// Ref is the type of an expression: a table entry, possibly as an array.
type Ref struct {
	Type    Handle
	IsArray bool
}

// NoRef is the type of an expression that could not be typed.
var NoRef = Ref{Type: NoHandle}

// Known reports whether the ref names a table entry.
func (r Ref) Known() bool {
	return r.Type != NoHandle
}

// Element returns the element type of an array ref.
func (r Ref) Element() Ref {
	return Ref{Type: r.Type}
}

// MemberRef returns the expression type of a field or parameter.
func MemberRef(m Member) Ref {
	return Ref{Type: m.Type, IsArray: m.IsArray}
}

// Describe renders a type entry for debug output.
func (tbl *Table) Describe(h Handle) string {
	t := tbl.Get(h)
	switch t.Kind {
	case KindStruct:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = fmt.Sprintf("%s: %s", f.Name, tbl.RefName(MemberRef(f)))
		}
		return fmt.Sprintf("struct %s { %s } size %d", t.Name, strings.Join(parts, "; "), t.Size)
	case KindFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = fmt.Sprintf("%s: %s", p.Name, tbl.RefName(MemberRef(p)))
		}
		return fmt.Sprintf("fn %s(%s): %s", t.Name, strings.Join(parts, ", "), tbl.RefName(t.ReturnRef()))
	default:
		return fmt.Sprintf("%s size %d", t.Name, t.Size)
	}
}
