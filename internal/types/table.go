package types

import "fmt"

// Table is the append-only type table of one compilation unit.
type Table struct {
	types []Type
}

// NewTable returns a table seeded with the primitives.
func NewTable() *Table {
	tbl := &Table{}
	tbl.Add(Type{Name: string(TYPE_INT), Size: SIZE_INT, Kind: KindPrimitive})
	tbl.Add(Type{Name: string(TYPE_BOOL), Size: SIZE_BOOL, Kind: KindPrimitive})
	tbl.Add(Type{Name: string(TYPE_VOID), Size: SIZE_VOID, Kind: KindPrimitive})
	return tbl
}

// Handles of the seeded primitives.
const (
	Int Handle = iota
	Bool
	Void
)

// Add appends t and returns its handle.
func (tbl *Table) Add(t Type) Handle {
	tbl.types = append(tbl.types, t)
	return Handle(len(tbl.types) - 1)
}

// Next is the handle the next Add will return.
func (tbl *Table) Next() Handle {
	return Handle(len(tbl.types))
}

// Get returns the entry for h. It panics on a handle from another table.
func (tbl *Table) Get(h Handle) *Type {
	if !tbl.Valid(h) {
		panic(fmt.Sprintf("invalid type handle %d (table has %d types)", h, len(tbl.types)))
	}
	return &tbl.types[h]
}

func (tbl *Table) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(tbl.types)
}

func (tbl *Table) Len() int {
	return len(tbl.types)
}

// Lookup finds the first entry named name.
func (tbl *Table) Lookup(name string) (Handle, bool) {
	for i := range tbl.types {
		if tbl.types[i].Name == name {
			return Handle(i), true
		}
	}
	return NoHandle, false
}

// RefName renders an expression type as written in source.
func (tbl *Table) RefName(r Ref) string {
	if !r.Known() || !tbl.Valid(r.Type) {
		return "?"
	}
	name := tbl.types[r.Type].Name
	if r.IsArray {
		return "[" + name + "]"
	}
	return name
}
