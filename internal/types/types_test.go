package types

import (
	"strings"
	"testing"
)

func TestNewTable_Primitives(t *testing.T) {
	tbl := NewTable()

	tests := []struct {
		name   string
		handle Handle
		size   int
	}{
		{"int", Int, 1},
		{"bool", Bool, 1},
		{"void", Void, 0},
	}

	if tbl.Len() != 3 {
		t.Fatalf("Expected 3 seeded types, got %d", tbl.Len())
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := tbl.Lookup(tt.name)
			if !ok || h != tt.handle {
				t.Fatalf("Expected %s at handle %d, got %d (%v)", tt.name, tt.handle, h, ok)
			}
			typ := tbl.Get(h)
			if typ.Size != tt.size || typ.Kind != KindPrimitive {
				t.Errorf("Expected primitive of size %d, got %v of size %d", tt.size, typ.Kind, typ.Size)
			}
		})
	}
}

func TestTable_AddAndLookup(t *testing.T) {
	tbl := NewTable()

	if tbl.Next() != 3 {
		t.Errorf("Expected next handle 3, got %d", tbl.Next())
	}

	h := tbl.Add(Type{Name: "Node", Size: 2, Kind: KindStruct, Fields: []Member{
		{Name: "value", Type: Int},
		{Name: "next", Type: 3},
	}})
	if h != 3 {
		t.Errorf("Expected handle 3, got %d", h)
	}

	got, ok := tbl.Lookup("Node")
	if !ok || got != h {
		t.Errorf("Expected Lookup(Node) = %d, got %d (%v)", h, got, ok)
	}

	if _, ok := tbl.Lookup("Missing"); ok {
		t.Error("Expected Lookup of an unknown name to fail")
	}

	f, ok := tbl.Get(h).Field("next")
	if !ok || f.Type != h {
		t.Errorf("Expected field next to refer back to Node, got %+v", f)
	}
	if _, ok := tbl.Get(h).Field("prev"); ok {
		t.Error("Expected missing field lookup to fail")
	}
}

func TestTable_LookupReturnsFirstMatch(t *testing.T) {
	tbl := NewTable()
	first := tbl.Add(Type{Name: "dup", Kind: KindStruct})
	tbl.Add(Type{Name: "dup", Kind: KindFunction})

	if h, _ := tbl.Lookup("dup"); h != first {
		t.Errorf("Expected first match %d, got %d", first, h)
	}
}

func TestTable_GetInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected Get to panic on an invalid handle")
		}
	}()
	NewTable().Get(42)
}

func TestRefName(t *testing.T) {
	tbl := NewTable()

	tests := []struct {
		ref  Ref
		want string
	}{
		{Ref{Type: Int}, "int"},
		{Ref{Type: Bool, IsArray: true}, "[bool]"},
		{NoRef, "?"},
		{Ref{Type: 99}, "?"},
	}

	for _, tt := range tests {
		if got := tbl.RefName(tt.ref); got != tt.want {
			t.Errorf("RefName(%+v) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestRef_Helpers(t *testing.T) {
	arr := MemberRef(Member{Name: "xs", Type: Int, IsArray: true})
	if !arr.IsArray || arr.Element() != (Ref{Type: Int}) {
		t.Errorf("Expected array of int with int element, got %+v", arr)
	}
	if NoRef.Known() {
		t.Error("Expected NoRef to be unknown")
	}
}

func TestIsPrimitive(t *testing.T) {
	for _, name := range []string{"int", "bool", "void"} {
		if !IsPrimitive(name) {
			t.Errorf("Expected %q to be primitive", name)
		}
	}
	if IsPrimitive("Node") {
		t.Error("Expected Node not to be primitive")
	}
}

func TestDescribe(t *testing.T) {
	tbl := NewTable()
	pt := tbl.Add(Type{Name: "Point", Size: 2, Kind: KindStruct, Fields: []Member{
		{Name: "x", Type: Int},
		{Name: "tags", Type: Bool, IsArray: true},
	}})
	fn := tbl.Add(Type{Name: "len", Size: 1, Kind: KindFunction, Return: Int, Params: []Member{
		{Name: "p", Type: pt},
	}})

	if got := tbl.Describe(pt); got != "struct Point { x: int; tags: [bool] } size 2" {
		t.Errorf("Unexpected struct description %q", got)
	}
	if got := tbl.Describe(fn); got != "fn len(p: Point): int" {
		t.Errorf("Unexpected function description %q", got)
	}
	arr := tbl.Add(Type{Name: "all", Size: 1, Kind: KindFunction, Return: Bool, ReturnIsArray: true})
	if got := tbl.Describe(arr); got != "fn all(): [bool]" {
		t.Errorf("Unexpected function description %q", got)
	}
	if got := tbl.Describe(Void); !strings.HasPrefix(got, "void") {
		t.Errorf("Unexpected primitive description %q", got)
	}
}

func TestKind_String(t *testing.T) {
	if KindStruct.String() != "struct" || KindFunction.String() != "function" || Kind(9).String() != "unknown" {
		t.Error("Unexpected Kind names")
	}
}
