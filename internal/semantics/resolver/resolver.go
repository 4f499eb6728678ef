// Package resolver builds the type table of a compilation unit from its
// parsed definitions.
//
// Resolution runs in two passes over the program. Pass 1 appends every
// struct in source order, so a field may only name primitives, structs
// defined earlier, or its own struct. Pass 2 appends every function; by then
// all structs are known, so parameters and return types may name any of
// them.
//
// A definition with an error is reported and left out of the table. Both
// passes always run to the end so one run reports every problem it finds.
package resolver

import (
	"fmt"

	"kestrel/internal/context_v2"
	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/ast"
	"kestrel/internal/phase"
	"kestrel/internal/source"
	"kestrel/internal/types"
)

type resolver struct {
	ctx   *context_v2.CompilerContext
	arena *ast.Arena
	tbl   *types.Table
}

// Resolve runs both passes over ctx.Root and advances ctx to PhaseResolved.
func Resolve(ctx *context_v2.CompilerContext) {
	if !ctx.CanProcessPhase(phase.PhaseResolved) {
		return
	}
	defer ctx.AdvancePhase(phase.PhaseResolved)

	if !ctx.Arena.Valid(ctx.Root) {
		return
	}
	prog, ok := ctx.Arena.Get(ctx.Root).(*ast.Program)
	if !ok {
		return
	}

	r := &resolver{ctx: ctx, arena: ctx.Arena, tbl: ctx.Types}

	for _, def := range prog.Definitions {
		if sd, ok := r.arena.Get(def).(*ast.StructDef); ok {
			r.resolveStruct(sd)
		}
	}
	for _, def := range prog.Definitions {
		if fd, ok := r.arena.Get(def).(*ast.FunctionDef); ok {
			r.resolveFunction(fd)
		}
	}
}

func (r *resolver) report(diag *diagnostics.Diagnostic) {
	r.ctx.Diagnostics.Add(diag)
}

// declared reports a duplicate definition if name is already in the table.
func (r *resolver) declared(name string, loc *source.Location) bool {
	prev, exists := r.tbl.Lookup(name)
	if !exists {
		return false
	}

	existing := r.tbl.Get(prev)
	diag := diagnostics.RedeclaredSymbol(loc, existing.Location, name)
	if existing.Kind == types.KindPrimitive {
		diag.WithNote(fmt.Sprintf("'%s' is a builtin type", name))
	}
	r.report(diag)
	return true
}

func (r *resolver) resolveStruct(sd *ast.StructDef) {
	if r.declared(sd.Name, &sd.Location) {
		return
	}

	// The struct is not in the table yet; a field naming it refers to the
	// slot it is about to occupy.
	self := r.tbl.Next()
	fields := make([]types.Member, 0, len(sd.Fields))
	seen := make(map[string]bool, len(sd.Fields))
	size := 0
	valid := true

	for _, h := range sd.Fields {
		field := r.arena.Get(h).(*ast.Field)
		name := r.arena.Get(field.Name).(*ast.Identifier)

		if seen[name.Name] {
			r.report(diagnostics.NewError(fmt.Sprintf("duplicate field '%s' in struct '%s'", name.Name, sd.Name)).
				WithCode(diagnostics.ErrDuplicateField).
				WithPrimaryLabel(&name.Location, ""))
			valid = false
			continue
		}
		seen[name.Name] = true

		member, memberSize, ok := r.resolveMember("field", name.Name, field.Type, sd.Name, self)
		if !ok {
			valid = false
			continue
		}
		fields = append(fields, member)
		size += memberSize
	}

	if !valid {
		return
	}

	r.tbl.Add(types.Type{
		Name:     sd.Name,
		Size:     size,
		Kind:     types.KindStruct,
		Fields:   fields,
		Location: &sd.Location,
	})
}

func (r *resolver) resolveFunction(fd *ast.FunctionDef) {
	if r.declared(fd.Name, &fd.Location) {
		return
	}

	valid := true
	ret, retArray := types.Void, false
	if fd.Return != ast.NoHandle {
		ann := r.arena.Get(fd.Return).(*ast.TypeAnnotation)
		h, ok := r.lookupType(ann)
		if ok {
			ret, retArray = h, ann.IsArray
		} else {
			valid = false
		}
	}

	params := make([]types.Member, 0, len(fd.Params))
	seen := make(map[string]bool, len(fd.Params))
	for _, h := range fd.Params {
		param := r.arena.Get(h).(*ast.Param)
		name := r.arena.Get(param.Name).(*ast.Identifier)

		if seen[name.Name] {
			r.report(diagnostics.NewError(fmt.Sprintf("duplicate parameter '%s' in function '%s'", name.Name, fd.Name)).
				WithCode(diagnostics.ErrDuplicateParameter).
				WithPrimaryLabel(&name.Location, ""))
			valid = false
			continue
		}
		seen[name.Name] = true

		member, _, ok := r.resolveMember("parameter", name.Name, param.Type, "", types.NoHandle)
		if !ok {
			valid = false
			continue
		}
		params = append(params, member)
	}

	if !valid {
		return
	}

	r.tbl.Add(types.Type{
		Name:          fd.Name,
		Size:          types.SIZE_FUNCTION,
		Kind:          types.KindFunction,
		Return:        ret,
		ReturnIsArray: retArray,
		Params:        params,
		Location:      &fd.Location,
	})
}

// resolveMember resolves the declared type of a field or parameter and
// returns the member with its size. selfName is the enclosing struct, or ""
// when self-reference is not allowed.
func (r *resolver) resolveMember(role, name string, typeHandle ast.Handle, selfName string, self types.Handle) (types.Member, int, bool) {
	ann := r.arena.Get(typeHandle).(*ast.TypeAnnotation)
	member := types.Member{Name: name, IsArray: ann.IsArray, ArraySize: ann.ArraySize}

	if selfName != "" && ann.Name == selfName {
		member.Type = self
		return member, types.SIZE_REFERENCE, true
	}

	h, ok := r.lookupType(ann)
	if !ok {
		return member, 0, false
	}
	if h == types.Void {
		r.report(diagnostics.NewError(fmt.Sprintf("%s '%s' cannot have type 'void'", role, name)).
			WithCode(diagnostics.ErrInvalidType).
			WithPrimaryLabel(&ann.Location, ""))
		return member, 0, false
	}

	member.Type = h
	if ann.IsArray {
		return member, types.SIZE_REFERENCE, true
	}
	return member, r.tbl.Get(h).Size, true
}

// lookupType finds the table entry an annotation names. Functions share the
// namespace but are not types.
func (r *resolver) lookupType(ann *ast.TypeAnnotation) (types.Handle, bool) {
	h, ok := r.tbl.Lookup(ann.Name)
	if !ok {
		r.report(diagnostics.UnknownType(&ann.Location, ann.Name))
		return types.NoHandle, false
	}
	if r.tbl.Get(h).Kind == types.KindFunction {
		r.report(diagnostics.NewError(fmt.Sprintf("'%s' is not a type", ann.Name)).
			WithCode(diagnostics.ErrInvalidType).
			WithPrimaryLabel(&ann.Location, "").
			WithHelp(fmt.Sprintf("'%s' is a function", ann.Name)))
		return types.NoHandle, false
	}
	return h, true
}
