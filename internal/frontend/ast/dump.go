package ast

import (
	"fmt"
	"io"
	"strings"

	"kestrel/internal/tokens"
)

// Dump writes the tree rooted at h, one node per line:
//
//	+- program:
//	   +- function def: 'main'
func Dump(w io.Writer, a *Arena, h Handle) {
	dump(w, a, h, 0)
}

func dump(w io.Writer, a *Arena, h Handle, depth int) {
	if h == NoHandle {
		return
	}
	n := a.Get(h)
	fmt.Fprintf(w, "%s+- %s\n", strings.Repeat("   ", depth), describe(n))
	for _, child := range n.Children() {
		dump(w, a, child, depth+1)
	}
}

func describe(n Node) string {
	switch n := n.(type) {
	case *StructDef:
		return fmt.Sprintf("struct def: '%s'", n.Name)
	case *FunctionDef:
		return fmt.Sprintf("function def: '%s'", n.Name)
	case *TypeAnnotation:
		return fmt.Sprintf("type: id: '%s', is_array: %t, dim: %d", n.Name, n.IsArray, n.ArraySize)
	case *FunctionCall:
		return fmt.Sprintf("function call: '%s()'", n.Name)
	case *StatementList:
		if len(n.Statements) == 0 {
			return "statement block: '{empty}'"
		}
		return "statement block: '{}'"
	case *AssignStmt:
		return "assignment statement: '='"
	case *Operator:
		return fmt.Sprintf("%s: '%s'", operatorGroup(n.Op), n.Op)
	case *Identifier:
		return fmt.Sprintf("id: '%s'", n.Name)
	case *IntegerConstant:
		return fmt.Sprintf("integer const: '%d'", n.Value)
	case *StringConstant:
		return fmt.Sprintf("string const: '%s'", n.Value)
	case *CharConstant:
		return fmt.Sprintf("char const: '%c'", n.Value)
	case *BooleanConstant:
		return fmt.Sprintf("bool const: '%t'", n.Value)
	default:
		return n.Kind().String() + ":"
	}
}

func operatorGroup(op tokens.Operator) string {
	switch {
	case op.IsArithmetic():
		return "math_op"
	case op.IsComparison():
		return "compare_op"
	default:
		return "boolean_op"
	}
}
