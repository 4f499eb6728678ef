package ast

import (
	"kestrel/internal/source"
	"kestrel/internal/tokens"
)

// Program is the root: struct and function definitions in source order.
type Program struct {
	Definitions []Handle
	source.Location
}

// StructDef is `struct Name { field; ... }`.
type StructDef struct {
	Name   string
	Fields []Handle // Field
	source.Location
}

// FunctionDef is `fn name(params): Return { body }`. Return is NoHandle when
// the return type is not written.
type FunctionDef struct {
	Name   string
	Params []Handle // Param
	Return Handle   // TypeAnnotation
	Body   Handle   // StatementList
	source.Location
}

// Field is `name: Type` inside a struct.
type Field struct {
	Name Handle // Identifier
	Type Handle // TypeAnnotation
	source.Location
}

// Param is `name: Type` in a function header.
type Param struct {
	Name Handle // Identifier
	Type Handle // TypeAnnotation
	source.Location
}

// VarDecl is `let name: Type`.
type VarDecl struct {
	Name Handle // Identifier
	Type Handle // TypeAnnotation
	source.Location
}

// LValue is a chain like `a.b[i].c`; each part is an Identifier or an
// ArrayAccess.
type LValue struct {
	Parts []Handle
	source.Location
}

// ArrayAccess is `name[index]`.
type ArrayAccess struct {
	Name  Handle // Identifier
	Index Handle
	source.Location
}

// Operator is a binary operation, or `!` with its operand in Left and
// Right set to NoHandle.
type Operator struct {
	Op    tokens.Operator
	Left  Handle
	Right Handle
	source.Location
}

// StatementList is a `{ ... }` block.
type StatementList struct {
	Statements []Handle
	source.Location
}

// AssignStmt assigns Value to Target, an LValue or a VarDecl.
type AssignStmt struct {
	Target Handle
	Value  Handle
	source.Location
}

// IfStmt has Else set to NoHandle, a StatementList, or another IfStmt for
// `else if`.
type IfStmt struct {
	Cond Handle
	Then Handle
	Else Handle
	source.Location
}

type WhileStmt struct {
	Cond Handle
	Body Handle
	source.Location
}

// ReturnStmt has Value set to NoHandle for a bare `return;`.
type ReturnStmt struct {
	Value Handle
	source.Location
}

type FunctionCall struct {
	Name string
	Args []Handle
	source.Location
}

type Identifier struct {
	Name string
	source.Location
}

type IntegerConstant struct {
	Value int64
	source.Location
}

type StringConstant struct {
	Value string
	source.Location
}

type CharConstant struct {
	Value byte
	source.Location
}

type BooleanConstant struct {
	Value bool
	source.Location
}

// TypeAnnotation is `Name` or `[Name]`. ArraySize is 0 for an unsized array.
type TypeAnnotation struct {
	Name      string
	IsArray   bool
	ArraySize int
	source.Location
}

func (n *Program) node()         {}
func (n *StructDef) node()       {}
func (n *FunctionDef) node()     {}
func (n *Field) node()           {}
func (n *Param) node()           {}
func (n *VarDecl) node()         {}
func (n *LValue) node()          {}
func (n *ArrayAccess) node()     {}
func (n *Operator) node()        {}
func (n *StatementList) node()   {}
func (n *AssignStmt) node()      {}
func (n *IfStmt) node()          {}
func (n *WhileStmt) node()       {}
func (n *ReturnStmt) node()      {}
func (n *FunctionCall) node()    {}
func (n *Identifier) node()      {}
func (n *IntegerConstant) node() {}
func (n *StringConstant) node()  {}
func (n *CharConstant) node()    {}
func (n *BooleanConstant) node() {}
func (n *TypeAnnotation) node()  {}

func (n *Program) Kind() NodeKind         { return KindProgram }
func (n *StructDef) Kind() NodeKind       { return KindStructDef }
func (n *FunctionDef) Kind() NodeKind     { return KindFunctionDef }
func (n *Field) Kind() NodeKind           { return KindField }
func (n *Param) Kind() NodeKind           { return KindParam }
func (n *VarDecl) Kind() NodeKind         { return KindVarDecl }
func (n *LValue) Kind() NodeKind          { return KindLValue }
func (n *ArrayAccess) Kind() NodeKind     { return KindArrayAccess }
func (n *Operator) Kind() NodeKind        { return KindOperator }
func (n *StatementList) Kind() NodeKind   { return KindStatementList }
func (n *AssignStmt) Kind() NodeKind      { return KindAssignStmt }
func (n *IfStmt) Kind() NodeKind          { return KindIfStmt }
func (n *WhileStmt) Kind() NodeKind       { return KindWhileStmt }
func (n *ReturnStmt) Kind() NodeKind      { return KindReturnStmt }
func (n *FunctionCall) Kind() NodeKind    { return KindFunctionCall }
func (n *Identifier) Kind() NodeKind      { return KindIdentifier }
func (n *IntegerConstant) Kind() NodeKind { return KindIntegerConstant }
func (n *StringConstant) Kind() NodeKind  { return KindStringConstant }
func (n *CharConstant) Kind() NodeKind    { return KindCharConstant }
func (n *BooleanConstant) Kind() NodeKind { return KindBooleanConstant }
func (n *TypeAnnotation) Kind() NodeKind  { return KindTypeAnnotation }

func (n *Program) Children() []Handle       { return present(n.Definitions...) }
func (n *StructDef) Children() []Handle     { return present(n.Fields...) }
func (n *Field) Children() []Handle         { return present(n.Name, n.Type) }
func (n *Param) Children() []Handle         { return present(n.Name, n.Type) }
func (n *VarDecl) Children() []Handle       { return present(n.Name, n.Type) }
func (n *LValue) Children() []Handle        { return present(n.Parts...) }
func (n *ArrayAccess) Children() []Handle   { return present(n.Name, n.Index) }
func (n *Operator) Children() []Handle      { return present(n.Left, n.Right) }
func (n *StatementList) Children() []Handle { return present(n.Statements...) }
func (n *AssignStmt) Children() []Handle    { return present(n.Target, n.Value) }
func (n *IfStmt) Children() []Handle        { return present(n.Cond, n.Then, n.Else) }
func (n *WhileStmt) Children() []Handle     { return present(n.Cond, n.Body) }
func (n *ReturnStmt) Children() []Handle    { return present(n.Value) }
func (n *FunctionCall) Children() []Handle  { return present(n.Args...) }

func (n *FunctionDef) Children() []Handle {
	children := present(n.Params...)
	return append(children, present(n.Return, n.Body)...)
}

func (n *Identifier) Children() []Handle      { return nil }
func (n *IntegerConstant) Children() []Handle { return nil }
func (n *StringConstant) Children() []Handle  { return nil }
func (n *CharConstant) Children() []Handle    { return nil }
func (n *BooleanConstant) Children() []Handle { return nil }
func (n *TypeAnnotation) Children() []Handle  { return nil }

func (n *Program) Loc() *source.Location         { return &n.Location }
func (n *StructDef) Loc() *source.Location       { return &n.Location }
func (n *FunctionDef) Loc() *source.Location     { return &n.Location }
func (n *Field) Loc() *source.Location           { return &n.Location }
func (n *Param) Loc() *source.Location           { return &n.Location }
func (n *VarDecl) Loc() *source.Location         { return &n.Location }
func (n *LValue) Loc() *source.Location          { return &n.Location }
func (n *ArrayAccess) Loc() *source.Location     { return &n.Location }
func (n *Operator) Loc() *source.Location        { return &n.Location }
func (n *StatementList) Loc() *source.Location   { return &n.Location }
func (n *AssignStmt) Loc() *source.Location      { return &n.Location }
func (n *IfStmt) Loc() *source.Location          { return &n.Location }
func (n *WhileStmt) Loc() *source.Location       { return &n.Location }
func (n *ReturnStmt) Loc() *source.Location      { return &n.Location }
func (n *FunctionCall) Loc() *source.Location    { return &n.Location }
func (n *Identifier) Loc() *source.Location      { return &n.Location }
func (n *IntegerConstant) Loc() *source.Location { return &n.Location }
func (n *StringConstant) Loc() *source.Location  { return &n.Location }
func (n *CharConstant) Loc() *source.Location    { return &n.Location }
func (n *BooleanConstant) Loc() *source.Location { return &n.Location }
func (n *TypeAnnotation) Loc() *source.Location  { return &n.Location }
