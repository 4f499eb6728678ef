package ast

// Walk visits h and its descendants in pre-order. Returning false from visit
// skips the node's children.
func Walk(a *Arena, h Handle, visit func(Handle, Node) bool) {
	if h == NoHandle {
		return
	}
	n := a.Get(h)
	if !visit(h, n) {
		return
	}
	for _, child := range n.Children() {
		Walk(a, child, visit)
	}
}

// Equal reports whether the tree at ha in a and the tree at hb in b have the
// same shape and payloads. Locations are ignored.
func Equal(a *Arena, ha Handle, b *Arena, hb Handle) bool {
	if ha == NoHandle || hb == NoHandle {
		return ha == hb
	}
	na, nb := a.Get(ha), b.Get(hb)
	if na.Kind() != nb.Kind() || !samePayload(na, nb) {
		return false
	}
	ca, cb := na.Children(), nb.Children()
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if !Equal(a, ca[i], b, cb[i]) {
			return false
		}
	}
	return true
}

// samePayload compares the non-handle data of two nodes of the same kind.
// Optional children are compared by presence, since Children skips them.
func samePayload(x, y Node) bool {
	switch x := x.(type) {
	case *StructDef:
		return x.Name == y.(*StructDef).Name
	case *FunctionDef:
		y := y.(*FunctionDef)
		return x.Name == y.Name && len(x.Params) == len(y.Params) && (x.Return == NoHandle) == (y.Return == NoHandle)
	case *Operator:
		return x.Op == y.(*Operator).Op
	case *IfStmt:
		return (x.Else == NoHandle) == (y.(*IfStmt).Else == NoHandle)
	case *FunctionCall:
		return x.Name == y.(*FunctionCall).Name
	case *Identifier:
		return x.Name == y.(*Identifier).Name
	case *IntegerConstant:
		return x.Value == y.(*IntegerConstant).Value
	case *StringConstant:
		return x.Value == y.(*StringConstant).Value
	case *CharConstant:
		return x.Value == y.(*CharConstant).Value
	case *BooleanConstant:
		return x.Value == y.(*BooleanConstant).Value
	case *TypeAnnotation:
		y := y.(*TypeAnnotation)
		return x.Name == y.Name && x.IsArray == y.IsArray && x.ArraySize == y.ArraySize
	}
	return true
}
