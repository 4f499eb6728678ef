// Package typechecker assigns a type to every expression of a resolved
// compilation unit.
//
// The walk is best-effort. It reports what it can prove wrong and records a
// types.Ref for each expression it can type; an expression it cannot type
// gets no entry and is never reported as a mismatch. After an error it keeps
// going with the next sibling.
package typechecker

import (
	"fmt"

	"kestrel/internal/context_v2"
	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/ast"
	"kestrel/internal/phase"
	"kestrel/internal/semantics/symbols"
	"kestrel/internal/semantics/table"
	"kestrel/internal/types"
)

type checker struct {
	ctx   *context_v2.CompilerContext
	arena *ast.Arena
	tbl   *types.Table

	fn    *types.Type
	scope *table.SymbolTable
}

// Check walks every function body of ctx.Root and advances ctx to
// PhaseTypeChecked.
func Check(ctx *context_v2.CompilerContext) {
	if !ctx.CanProcessPhase(phase.PhaseTypeChecked) {
		return
	}
	defer ctx.AdvancePhase(phase.PhaseTypeChecked)

	if !ctx.Arena.Valid(ctx.Root) {
		return
	}
	prog, ok := ctx.Arena.Get(ctx.Root).(*ast.Program)
	if !ok {
		return
	}

	c := &checker{ctx: ctx, arena: ctx.Arena, tbl: ctx.Types}
	for _, def := range prog.Definitions {
		if fd, ok := c.arena.Get(def).(*ast.FunctionDef); ok {
			c.checkFunction(fd)
		}
	}
}

func (c *checker) report(diag *diagnostics.Diagnostic) {
	c.ctx.Diagnostics.Add(diag)
}

func (c *checker) record(h ast.Handle, ref types.Ref) types.Ref {
	if ref.Known() {
		c.ctx.ExprTypes[h] = ref
	}
	return ref
}

func (c *checker) name(ref types.Ref) string {
	return c.tbl.RefName(ref)
}

// checkFunction walks one body with the function's parameters in scope.
// Definitions the resolver rejected have no entry of their own and are
// skipped.
func (c *checker) checkFunction(fd *ast.FunctionDef) {
	h, ok := c.tbl.Lookup(fd.Name)
	if !ok {
		return
	}
	entry := c.tbl.Get(h)
	if entry.Kind != types.KindFunction || entry.Location != &fd.Location {
		return
	}

	c.fn = entry
	c.scope = table.NewSymbolTable(nil)
	for i, ph := range fd.Params {
		param := c.arena.Get(ph).(*ast.Param)
		id := c.arena.Get(param.Name).(*ast.Identifier)
		c.scope.Declare(id.Name, &symbols.Symbol{
			Name:     id.Name,
			Kind:     symbols.SymbolParameter,
			Type:     types.MemberRef(entry.Params[i]),
			Location: &id.Location,
		})
	}

	c.checkBlock(fd.Body)
	c.fn, c.scope = nil, nil
}

func (c *checker) checkBlock(h ast.Handle) {
	block := c.arena.Get(h).(*ast.StatementList)

	if c.ctx.Config.TrackLocals {
		c.scope = table.NewSymbolTable(c.scope)
		defer func() { c.scope = c.scope.Parent() }()
	}

	for _, stmt := range block.Statements {
		c.checkStmt(stmt)
	}
}

func (c *checker) checkStmt(h ast.Handle) {
	switch n := c.arena.Get(h).(type) {
	case *ast.StatementList:
		c.checkBlock(h)
	case *ast.VarDecl:
		c.declareLocal(n, c.annotation(n.Type))
	case *ast.AssignStmt:
		c.checkAssign(n)
	case *ast.IfStmt:
		c.checkCondition("if", n.Cond)
		c.constantIf(n)
		c.checkBlock(n.Then)
		if n.Else != ast.NoHandle {
			c.checkStmt(n.Else)
		}
	case *ast.WhileStmt:
		c.checkCondition("while", n.Cond)
		c.constantWhile(n)
		c.checkBlock(n.Body)
	case *ast.ReturnStmt:
		c.checkReturn(n)
	default:
		c.expr(h)
	}
}

// checkAssign requires both sides to have exactly the same type. A `let`
// target binds after its initializer is checked, so `let x: int = x;` sees
// the outer x.
func (c *checker) checkAssign(n *ast.AssignStmt) {
	var target types.Ref
	decl, isDecl := c.arena.Get(n.Target).(*ast.VarDecl)
	if isDecl {
		target = c.annotation(decl.Type)
	} else {
		target = c.expr(n.Target)
	}

	value := c.expr(n.Value)

	if target.Known() && value.Known() && target != value {
		c.report(diagnostics.TypeMismatch(&n.Location, c.name(target), c.name(value)).
			WithSecondaryLabel(c.arena.Get(n.Value).Loc(), fmt.Sprintf("this is '%s'", c.name(value))))
	}

	if isDecl {
		c.declareLocal(decl, target)
	}
}

func (c *checker) checkCondition(keyword string, h ast.Handle) {
	ref := c.expr(h)
	if ref.Known() && ref != (types.Ref{Type: types.Bool}) {
		c.report(diagnostics.NewError(fmt.Sprintf("%s condition must be 'bool', found '%s'", keyword, c.name(ref))).
			WithCode(diagnostics.ErrInvalidCondition).
			WithPrimaryLabel(c.arena.Get(h).Loc(), ""))
	}
}

// constantIf warns when a literal condition leaves one branch dead.
func (c *checker) constantIf(n *ast.IfStmt) {
	lit, ok := c.arena.Get(n.Cond).(*ast.BooleanConstant)
	if !ok {
		return
	}
	if lit.Value {
		if n.Else != ast.NoHandle {
			c.report(diagnostics.NewWarning("condition is always true").
				WithCode(diagnostics.WarnConstantConditionTrue).
				WithPrimaryLabel(&lit.Location, "this condition is always true").
				WithSecondaryLabel(c.arena.Get(n.Else).Loc(), "this branch will never execute").
				WithHelp("remove the if statement or the unreachable else branch"))
		}
		return
	}
	c.report(diagnostics.NewWarning("condition is always false").
		WithCode(diagnostics.WarnConstantConditionFalse).
		WithPrimaryLabel(&lit.Location, "this condition is always false").
		WithSecondaryLabel(c.arena.Get(n.Then).Loc(), "this branch will never execute").
		WithHelp("remove the if statement or fix the condition"))
}

// constantWhile warns about a loop that can never run. `while true` is left
// alone.
func (c *checker) constantWhile(n *ast.WhileStmt) {
	lit, ok := c.arena.Get(n.Cond).(*ast.BooleanConstant)
	if !ok || lit.Value {
		return
	}
	c.report(diagnostics.NewWarning("condition is always false").
		WithCode(diagnostics.WarnConstantConditionFalse).
		WithPrimaryLabel(&lit.Location, "this condition is always false").
		WithSecondaryLabel(c.arena.Get(n.Body).Loc(), "this loop will never execute").
		WithHelp("remove the while loop or fix the condition"))
}

func (c *checker) checkReturn(n *ast.ReturnStmt) {
	want := c.fn.ReturnRef()
	isVoid := want == types.Ref{Type: types.Void}

	if n.Value == ast.NoHandle {
		if !isVoid {
			c.report(diagnostics.NewError("missing return value").
				WithCode(diagnostics.ErrInvalidReturn).
				WithPrimaryLabel(&n.Location, "").
				WithHelp(fmt.Sprintf("function '%s' returns '%s'", c.fn.Name, c.name(want))))
		}
		return
	}

	got := c.expr(n.Value)
	if isVoid {
		c.report(diagnostics.NewError("unexpected return value in function returning 'void'").
			WithCode(diagnostics.ErrInvalidReturn).
			WithPrimaryLabel(c.arena.Get(n.Value).Loc(), ""))
		return
	}
	if got.Known() && got != want {
		c.report(diagnostics.NewError(fmt.Sprintf("mismatched types: cannot return '%s' from function returning '%s'", c.name(got), c.name(want))).
			WithCode(diagnostics.ErrTypeMismatch).
			WithPrimaryLabel(c.arena.Get(n.Value).Loc(), ""))
	}
}

// annotation resolves a `let` type annotation through the table.
func (c *checker) annotation(h ast.Handle) types.Ref {
	ann := c.arena.Get(h).(*ast.TypeAnnotation)
	th, ok := c.tbl.Lookup(ann.Name)
	if !ok {
		c.report(diagnostics.UnknownType(&ann.Location, ann.Name))
		return types.NoRef
	}
	if c.tbl.Get(th).Kind == types.KindFunction {
		c.report(diagnostics.NewError(fmt.Sprintf("'%s' is not a type", ann.Name)).
			WithCode(diagnostics.ErrInvalidType).
			WithPrimaryLabel(&ann.Location, ""))
		return types.NoRef
	}
	return types.Ref{Type: th, IsArray: ann.IsArray}
}

// declareLocal binds a `let` name when locals are tracked.
func (c *checker) declareLocal(decl *ast.VarDecl, ref types.Ref) {
	if !c.ctx.Config.TrackLocals {
		return
	}

	id := c.arena.Get(decl.Name).(*ast.Identifier)
	sym := &symbols.Symbol{Name: id.Name, Kind: symbols.SymbolLocal, Type: ref, Location: &id.Location}
	if err := c.scope.Declare(id.Name, sym); err != nil {
		prev, _ := c.scope.GetSymbol(id.Name)
		c.report(diagnostics.RedeclaredSymbol(&id.Location, prev.Location, id.Name))
	}
}

func (c *checker) lookup(id *ast.Identifier) (*symbols.Symbol, bool) {
	sym, ok := c.scope.Lookup(id.Name)
	if !ok {
		c.report(diagnostics.UndefinedSymbol(&id.Location, id.Name))
	}
	return sym, ok
}
