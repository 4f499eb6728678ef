package diagnostics

// Error codes for the kestrel front end
const (
	// Lexer errors (L prefix)
	ErrUnexpectedCharacter  = "L0001"
	ErrUnterminatedString   = "L0002"
	ErrInvalidNumber        = "L0003"
	ErrEmptyString          = "L0004"
	ErrUnterminatedComment  = "L0005"
	ErrInvalidCharConstant  = "L0006"
	ErrUnterminatedChar     = "L0007"
	ErrIncompleteOperator   = "L0008"
	ErrInvalidStringContent = "L0009"

	// Parser errors (P prefix)
	ErrUnexpectedToken   = "P0001"
	ErrExpectedToken     = "P0002"
	ErrMissingExpression = "P0003"
	ErrMissingType       = "P0004"
	ErrInvalidAssignment = "P0005"
	ErrInvalidTopLevel   = "P0006"

	// Semantic errors (T prefix)
	ErrTypeMismatch       = "T0001"
	ErrUndefinedSymbol    = "T0002"
	ErrRedeclaredSymbol   = "T0003"
	ErrUnknownType        = "T0004"
	ErrDuplicateParameter = "T0005"
	ErrWrongArgumentCount = "T0006"
	ErrNotIndexable       = "T0007"
	ErrInvalidIndex       = "T0008"
	ErrFieldNotFound      = "T0009"
	ErrNotCallable        = "T0010"
	ErrInvalidReturn      = "T0011"
	ErrInvalidCondition   = "T0012"
	ErrDuplicateField     = "T0013"
	ErrInvalidType        = "T0014"
	ErrFileNotReadable    = "T0015"

	// Warnings (W prefix)
	WarnConstantConditionTrue  = "W0001"
	WarnConstantConditionFalse = "W0002"
)
