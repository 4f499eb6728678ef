package tokens

// Operator is the sub-code carried by operator tokens and operator nodes.
type Operator int

const (
	OpNone Operator = iota // not an operator
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLess
	OpGreater
	OpEqual
	OpNotEqual
	OpLessEqual
	OpGreaterEqual
	OpAnd
	OpOr
	OpNot
)

type opInfo struct {
	token      TOKEN
	precedence int // 0 means not a binary operator
}

var opTable = [...]opInfo{
	OpNone:         {"", 0},
	OpAdd:          {PLUS_TOKEN, 4},
	OpSub:          {MINUS_TOKEN, 4},
	OpMul:          {MUL_TOKEN, 5},
	OpDiv:          {DIV_TOKEN, 5},
	OpMod:          {MOD_TOKEN, 5},
	OpLess:         {LESS_TOKEN, 3},
	OpGreater:      {GREATER_TOKEN, 3},
	OpEqual:        {DOUBLE_EQUAL_TOKEN, 2},
	OpNotEqual:     {NOT_EQUAL_TOKEN, 2},
	OpLessEqual:    {LESS_EQUAL_TOKEN, 3},
	OpGreaterEqual: {GREATER_EQUAL_TOKEN, 3},
	OpAnd:          {AND_TOKEN, 1},
	OpOr:           {OR_TOKEN, 1},
	OpNot:          {NOT_TOKEN, 0},
}

// OperatorFor maps a token kind to its operator sub-code.
func OperatorFor(kind TOKEN) Operator {
	for op, info := range opTable {
		if op != int(OpNone) && info.token == kind {
			return Operator(op)
		}
	}
	return OpNone
}

// Precedence returns the binding strength of a binary operator, from 1
// (&& ||) to 5 (* / %). Non-binary operators return 0.
func (op Operator) Precedence() int {
	if op < 0 || int(op) >= len(opTable) {
		return 0
	}
	return opTable[op].precedence
}

// IsBinary reports whether op can appear between two operands.
// Every binary operator is left-associative.
func (op Operator) IsBinary() bool {
	return op.Precedence() > 0
}

func (op Operator) IsArithmetic() bool {
	return op >= OpAdd && op <= OpMod
}

func (op Operator) IsComparison() bool {
	return op >= OpLess && op <= OpGreaterEqual
}

func (op Operator) IsLogical() bool {
	return op == OpAnd || op == OpOr || op == OpNot
}

func (op Operator) String() string {
	if op <= OpNone || int(op) >= len(opTable) {
		return "none"
	}
	return string(opTable[op].token)
}
