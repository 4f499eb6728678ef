package typechecker

import (
	"fmt"

	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/ast"
	"kestrel/internal/types"
)

var (
	intRef  = types.Ref{Type: types.Int}
	boolRef = types.Ref{Type: types.Bool}
)

// expr types the expression h and its operands.
func (c *checker) expr(h ast.Handle) types.Ref {
	switch n := c.arena.Get(h).(type) {
	case *ast.IntegerConstant, *ast.CharConstant:
		return c.record(h, intRef)
	case *ast.BooleanConstant:
		return c.record(h, boolRef)
	case *ast.StringConstant:
		// There is no string type.
		return types.NoRef
	case *ast.Identifier:
		sym, ok := c.lookup(n)
		if !ok {
			return types.NoRef
		}
		return c.record(h, sym.Type)
	case *ast.ArrayAccess:
		base := c.expr(n.Name)
		return c.record(h, c.index(n, base))
	case *ast.LValue:
		return c.record(h, c.lvalue(n))
	case *ast.Operator:
		return c.record(h, c.operator(n))
	case *ast.FunctionCall:
		return c.record(h, c.call(n))
	default:
		return types.NoRef
	}
}

// index checks `base[i]` and returns the element type.
func (c *checker) index(n *ast.ArrayAccess, base types.Ref) types.Ref {
	idx := c.expr(n.Index)
	if idx.Known() && idx != intRef {
		c.report(diagnostics.NewError(fmt.Sprintf("array index must be 'int', found '%s'", c.name(idx))).
			WithCode(diagnostics.ErrInvalidIndex).
			WithPrimaryLabel(c.arena.Get(n.Index).Loc(), ""))
	}

	if !base.Known() {
		return types.NoRef
	}
	if !base.IsArray {
		name := c.arena.Get(n.Name).(*ast.Identifier).Name
		c.report(diagnostics.NewError(fmt.Sprintf("'%s' is not an array", name)).
			WithCode(diagnostics.ErrNotIndexable).
			WithPrimaryLabel(&n.Location, fmt.Sprintf("type '%s'", c.name(base))))
		return types.NoRef
	}
	return base.Element()
}

// lvalue types a chain such as `a.b[i].c`. The first part is a name in
// scope; each later part selects a field of the struct before it.
func (c *checker) lvalue(n *ast.LValue) types.Ref {
	cur := c.expr(n.Parts[0])

	for _, part := range n.Parts[1:] {
		var id *ast.Identifier
		access, isIndex := c.arena.Get(part).(*ast.ArrayAccess)
		if isIndex {
			id = c.arena.Get(access.Name).(*ast.Identifier)
		} else {
			id = c.arena.Get(part).(*ast.Identifier)
		}

		field := c.field(cur, id)
		if isIndex {
			c.record(access.Name, field)
			field = c.record(part, c.index(access, field))
		} else {
			c.record(part, field)
		}
		cur = field
	}
	return cur
}

// field selects id from a value of type owner.
func (c *checker) field(owner types.Ref, id *ast.Identifier) types.Ref {
	if !owner.Known() {
		return types.NoRef
	}

	t := c.tbl.Get(owner.Type)
	if owner.IsArray || t.Kind != types.KindStruct {
		c.report(diagnostics.NewError(fmt.Sprintf("type '%s' has no fields", c.name(owner))).
			WithCode(diagnostics.ErrFieldNotFound).
			WithPrimaryLabel(&id.Location, ""))
		return types.NoRef
	}

	m, ok := t.Field(id.Name)
	if !ok {
		c.report(diagnostics.FieldNotFound(&id.Location, id.Name, t.Name))
		return types.NoRef
	}
	return types.MemberRef(m)
}

// operator walks both operands. Arithmetic yields int; comparisons, logic
// and `!` yield bool. Operand types are not checked against each other.
func (c *checker) operator(n *ast.Operator) types.Ref {
	c.expr(n.Left)
	if n.Right != ast.NoHandle {
		c.expr(n.Right)
	}

	if n.Op.IsArithmetic() {
		return intRef
	}
	return boolRef
}

// call checks the callee, the arity and every argument against its
// parameter. Arguments are typed even when the callee is unknown.
func (c *checker) call(n *ast.FunctionCall) types.Ref {
	args := make([]types.Ref, len(n.Args))
	for i, arg := range n.Args {
		args[i] = c.expr(arg)
	}

	h, ok := c.tbl.Lookup(n.Name)
	if !ok {
		c.report(diagnostics.NewError(fmt.Sprintf("undefined function '%s'", n.Name)).
			WithCode(diagnostics.ErrUndefinedSymbol).
			WithPrimaryLabel(&n.Location, ""))
		return types.NoRef
	}
	fn := c.tbl.Get(h)
	if fn.Kind != types.KindFunction {
		c.report(diagnostics.NewError(fmt.Sprintf("'%s' is not a function", n.Name)).
			WithCode(diagnostics.ErrNotCallable).
			WithPrimaryLabel(&n.Location, fmt.Sprintf("'%s' is a %s", n.Name, fn.Kind)))
		return types.NoRef
	}

	if len(args) != len(fn.Params) {
		c.report(diagnostics.WrongArgumentCount(&n.Location, n.Name, len(fn.Params), len(args)))
		return fn.ReturnRef()
	}

	for i, param := range fn.Params {
		want := types.MemberRef(param)
		if args[i].Known() && args[i] != want {
			c.report(diagnostics.NewError(fmt.Sprintf("mismatched types: cannot pass '%s' as parameter '%s' of type '%s'", c.name(args[i]), param.Name, c.name(want))).
				WithCode(diagnostics.ErrTypeMismatch).
				WithPrimaryLabel(c.arena.Get(n.Args[i]).Loc(), ""))
		}
	}
	return fn.ReturnRef()
}
