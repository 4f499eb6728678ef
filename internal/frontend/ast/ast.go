package ast

import (
	"kestrel/internal/source"
)

// Handle identifies a node in the Arena that produced it.
type Handle int

// NoHandle marks an absent optional child.
const NoHandle Handle = -1

// NodeKind is the tag of a node variant.
type NodeKind int

const (
	KindProgram NodeKind = iota
	KindStructDef
	KindFunctionDef
	KindField
	KindParam
	KindVarDecl
	KindLValue
	KindArrayAccess
	KindOperator
	KindStatementList
	KindAssignStmt
	KindIfStmt
	KindWhileStmt
	KindReturnStmt
	KindFunctionCall
	KindIdentifier
	KindIntegerConstant
	KindStringConstant
	KindCharConstant
	KindBooleanConstant
	KindTypeAnnotation
)

var kindNames = [...]string{
	KindProgram:         "program",
	KindStructDef:       "struct def",
	KindFunctionDef:     "function def",
	KindField:           "field",
	KindParam:           "param",
	KindVarDecl:         "var decl",
	KindLValue:          "l value",
	KindArrayAccess:     "array access",
	KindOperator:        "operator",
	KindStatementList:   "statement block",
	KindAssignStmt:      "assignment statement",
	KindIfStmt:          "if statement",
	KindWhileStmt:       "while statement",
	KindReturnStmt:      "return statement",
	KindFunctionCall:    "function call",
	KindIdentifier:      "id",
	KindIntegerConstant: "integer const",
	KindStringConstant:  "string const",
	KindCharConstant:    "char const",
	KindBooleanConstant: "bool const",
	KindTypeAnnotation:  "type",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node is implemented only by the variants in this package.
type Node interface {
	node()
	Kind() NodeKind
	// Children lists child handles in source order, skipping absent ones.
	Children() []Handle
	Loc() *source.Location
}

// present drops NoHandle entries.
func present(handles ...Handle) []Handle {
	out := make([]Handle, 0, len(handles))
	for _, h := range handles {
		if h != NoHandle {
			out = append(out, h)
		}
	}
	return out
}
