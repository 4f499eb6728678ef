package tokens

import (
	"fmt"
	"io"

	"kestrel/colors"
	"kestrel/internal/source"
)

type TOKEN string

const (
	//keywords
	FUNCTION_TOKEN TOKEN = "fn"
	STRUCT_TOKEN   TOKEN = "struct"
	IF_TOKEN       TOKEN = "if"
	ELSE_TOKEN     TOKEN = "else"
	WHILE_TOKEN    TOKEN = "while"
	RETURN_TOKEN   TOKEN = "return"
	LET_TOKEN      TOKEN = "let"
	TRUE_TOKEN     TOKEN = "true"
	FALSE_TOKEN    TOKEN = "false"
	//constants
	INTEGER_TOKEN TOKEN = "integer constant"
	STRING_TOKEN  TOKEN = "string constant"
	CHAR_TOKEN    TOKEN = "character constant"
	//names of variables, user defined types and functions
	IDENTIFIER_TOKEN TOKEN = "identifier"
	//arithmetic operators
	PLUS_TOKEN  TOKEN = "+"
	MINUS_TOKEN TOKEN = "-"
	MUL_TOKEN   TOKEN = "*"
	DIV_TOKEN   TOKEN = "/"
	MOD_TOKEN   TOKEN = "%"
	//relational operators
	LESS_TOKEN          TOKEN = "<"
	GREATER_TOKEN       TOKEN = ">"
	DOUBLE_EQUAL_TOKEN  TOKEN = "=="
	NOT_EQUAL_TOKEN     TOKEN = "!="
	LESS_EQUAL_TOKEN    TOKEN = "<="
	GREATER_EQUAL_TOKEN TOKEN = ">="
	//boolean operators
	AND_TOKEN TOKEN = "&&"
	OR_TOKEN  TOKEN = "||"
	NOT_TOKEN TOKEN = "!"
	//assignment
	EQUALS_TOKEN TOKEN = "="
	//delimiters
	OPEN_PAREN      TOKEN = "("
	CLOSE_PAREN     TOKEN = ")"
	OPEN_CURLY      TOKEN = "{"
	CLOSE_CURLY     TOKEN = "}"
	OPEN_BRACKET    TOKEN = "["
	CLOSE_BRACKET   TOKEN = "]"
	COLON_TOKEN     TOKEN = ":"
	SEMICOLON_TOKEN TOKEN = ";"
	COMMA_TOKEN     TOKEN = ","
	DOT_TOKEN       TOKEN = "."

	EOF_TOKEN TOKEN = "end of file"
)

// Class groups token kinds into the broad categories the parser cares about.
type Class int

const (
	ClassConstant Class = iota
	ClassIdentifier
	ClassOperator
	ClassKeyword
	ClassPunctuation
	ClassEnd
)

func (c Class) String() string {
	switch c {
	case ClassConstant:
		return "constant"
	case ClassIdentifier:
		return "identifier"
	case ClassOperator:
		return "operator"
	case ClassKeyword:
		return "keyword"
	case ClassPunctuation:
		return "punctuation"
	case ClassEnd:
		return "end"
	default:
		return "unknown"
	}
}

// keywords is ordered; the lexer matches it by exact length and text.
var keywords = []TOKEN{
	FUNCTION_TOKEN,
	STRUCT_TOKEN,
	IF_TOKEN,
	ELSE_TOKEN,
	WHILE_TOKEN,
	RETURN_TOKEN,
	LET_TOKEN,
	TRUE_TOKEN,
	FALSE_TOKEN,
}

// LookupKeyword returns the keyword kind spelled exactly by word.
func LookupKeyword(word string) (TOKEN, bool) {
	for _, kw := range keywords {
		if len(kw) == len(word) && string(kw) == word {
			return kw, true
		}
	}
	return "", false
}

func IsKeyword(word string) bool {
	_, ok := LookupKeyword(word)
	return ok
}

// Class returns the category of the token kind.
func (k TOKEN) Class() Class {
	switch k {
	case INTEGER_TOKEN, STRING_TOKEN, CHAR_TOKEN:
		return ClassConstant
	case IDENTIFIER_TOKEN:
		return ClassIdentifier
	case EOF_TOKEN:
		return ClassEnd
	case OPEN_PAREN, CLOSE_PAREN, OPEN_CURLY, CLOSE_CURLY, OPEN_BRACKET, CLOSE_BRACKET,
		COLON_TOKEN, SEMICOLON_TOKEN, COMMA_TOKEN, DOT_TOKEN:
		return ClassPunctuation
	}
	if IsKeyword(string(k)) {
		return ClassKeyword
	}
	return ClassOperator
}

// Token is a single lexeme. Pos is the start of the lexeme and Size its byte
// length, so source[Pos.Offset:Pos.Offset+Size] is exactly the matched text.
type Token struct {
	Kind      TOKEN
	Op        Operator // set for operator tokens
	IntValue  int64    // INTEGER_TOKEN
	CharValue byte     // CHAR_TOKEN
	Text      string   // identifier name or string contents (quotes excluded)
	Pos       source.Position
	Size      int
}

// NewToken creates a token without a literal payload.
func NewToken(kind TOKEN, pos source.Position, size int) Token {
	return Token{
		Kind: kind,
		Op:   OperatorFor(kind),
		Pos:  pos,
		Size: size,
	}
}

// Location returns the span of the token in filename.
func (t Token) Location(filename string) *source.Location {
	return source.NewLocation(filename, t.Pos, t.Size)
}

func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER_TOKEN:
		return fmt.Sprintf("identifier(%s)", t.Text)
	case INTEGER_TOKEN:
		return fmt.Sprintf("integer(%d)", t.IntValue)
	case STRING_TOKEN:
		return fmt.Sprintf("string(%q)", t.Text)
	case CHAR_TOKEN:
		return fmt.Sprintf("char(%q)", t.CharValue)
	default:
		return string(t.Kind)
	}
}

// Debug writes one line describing the token, with 1-based position.
func (t *Token) Debug(w io.Writer, filename string) {
	line, col := t.Pos.Human()
	colors.GREY.Fprintf(w, "%s:%d:%d:%d ", filename, line, col, t.Pos.Offset)
	fmt.Fprintf(w, "%s (%s), size: %d\n", t.String(), t.Kind.Class(), t.Size)
}
