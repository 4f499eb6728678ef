package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"kestrel/internal/diagnostics"
	"kestrel/internal/source"
	"kestrel/internal/tokens"
)

type Lexer struct {
	diagnostics *diagnostics.DiagnosticBag
	Tokens      []tokens.Token
	Position    source.Position
	sourceCode  string
	FilePath    string
}

func New(filepath, content string, diag *diagnostics.DiagnosticBag) *Lexer {
	return &Lexer{
		sourceCode:  content,
		Tokens:      make([]tokens.Token, 0),
		diagnostics: diag,
		FilePath:    filepath,
	}
}

// Tokenize lexes content in one pass. Lexical errors are added to diag and
// the offending lexeme is skipped; the result always ends with EOF_TOKEN.
func Tokenize(filepath, content string, diag *diagnostics.DiagnosticBag) []tokens.Token {
	return New(filepath, content, diag).Tokenize()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(c byte) bool {
	return isAlpha(c) || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isVisible(c byte) bool {
	return c >= 33 && c <= 126
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func (lex *Lexer) atEOF() bool {
	return lex.Position.Offset >= len(lex.sourceCode)
}

// peek returns the byte n positions ahead, or 0 past the end.
func (lex *Lexer) peek(n int) byte {
	i := lex.Position.Offset + n
	if i >= len(lex.sourceCode) {
		return 0
	}
	return lex.sourceCode[i]
}

func (lex *Lexer) advance() byte {
	c := lex.sourceCode[lex.Position.Offset]
	lex.Position.Advance(c)
	return c
}

func (lex *Lexer) push(token tokens.Token) {
	lex.Tokens = append(lex.Tokens, token)
}

// lexeme returns the source text from start up to the current position.
func (lex *Lexer) lexeme(start source.Position) string {
	return lex.sourceCode[start.Offset:lex.Position.Offset]
}

func (lex *Lexer) error(start source.Position, size int, code, msg string) {
	lex.diagnostics.Add(
		diagnostics.NewError(msg).
			WithCode(code).
			WithPrimaryLabel(source.NewLocation(lex.FilePath, start, size), ""),
	)
}

func (lex *Lexer) Tokenize() []tokens.Token {
	for !lex.atEOF() {
		c := lex.peek(0)

		switch {
		case isWhitespace(c):
			lex.advance()
		case c == '/' && lex.peek(1) == '/':
			lex.skipLineComment()
		case c == '/' && lex.peek(1) == '*':
			lex.skipBlockComment()
		case isDigit(c):
			lex.lexInteger()
		case isIdentStart(c):
			lex.lexWord()
		case c == '"':
			lex.lexString()
		case c == '\'':
			lex.lexChar()
		default:
			lex.lexOperator()
		}
	}

	lex.push(tokens.NewToken(tokens.EOF_TOKEN, lex.Position, 0))
	return lex.Tokens
}

func (lex *Lexer) skipLineComment() {
	for !lex.atEOF() && lex.peek(0) != '\n' {
		lex.advance()
	}
}

func (lex *Lexer) skipBlockComment() {
	start := lex.Position
	lex.advance()
	lex.advance()
	for !lex.atEOF() {
		if lex.peek(0) == '*' && lex.peek(1) == '/' {
			lex.advance()
			lex.advance()
			return
		}
		lex.advance()
	}
	lex.error(start, 2, diagnostics.ErrUnterminatedComment, "unterminated block comment")
}

func (lex *Lexer) lexInteger() {
	start := lex.Position
	for isDigit(lex.peek(0)) {
		lex.advance()
	}
	digits := lex.lexeme(start)

	if isIdentStart(lex.peek(0)) {
		for isIdentPart(lex.peek(0)) {
			lex.advance()
		}
		lex.error(start, lex.Position.Offset-start.Offset, diagnostics.ErrInvalidNumber, "invalid suffix for integer constant")
		return
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		lex.error(start, len(digits), diagnostics.ErrInvalidNumber, "integer constant too large")
		return
	}

	token := tokens.NewToken(tokens.INTEGER_TOKEN, start, len(digits))
	token.IntValue = value
	lex.push(token)
}

// lexWord tries the maximal alphabetic run as a keyword first, so "let1"
// lexes as `let` then `1`. Any other word is rescanned from its start as
// [A-Za-z_][A-Za-z0-9_]*.
func (lex *Lexer) lexWord() {
	start := lex.Position
	for isAlpha(lex.peek(0)) {
		lex.advance()
	}

	if kind, ok := tokens.LookupKeyword(lex.lexeme(start)); ok {
		lex.push(tokens.NewToken(kind, start, lex.Position.Offset-start.Offset))
		return
	}

	lex.Position = start
	for isIdentPart(lex.peek(0)) {
		lex.advance()
	}
	word := lex.lexeme(start)

	token := tokens.NewToken(tokens.IDENTIFIER_TOKEN, start, len(word))
	token.Text = word
	lex.push(token)
}

// lexString scans a double quoted literal. Content is kept verbatim and may
// span lines.
func (lex *Lexer) lexString() {
	start := lex.Position
	lex.advance()

	valid := true
	for {
		if lex.atEOF() {
			lex.error(start, 1, diagnostics.ErrUnterminatedString, "string literal missing terminating character '\"'")
			return
		}
		c := lex.peek(0)
		if c == '"' {
			break
		}
		if !isVisible(c) && !isWhitespace(c) && c < utf8.RuneSelf {
			lex.error(lex.Position, 1, diagnostics.ErrInvalidStringContent, "invalid character in string literal")
			valid = false
		}
		lex.advance()
	}
	lex.advance()

	text := lex.lexeme(start)
	if len(text) == 2 {
		lex.error(start, 2, diagnostics.ErrEmptyString, "string literal cannot be empty")
		return
	}
	if !valid {
		return
	}

	token := tokens.NewToken(tokens.STRING_TOKEN, start, len(text))
	token.Text = text[1 : len(text)-1]
	lex.push(token)
}

func (lex *Lexer) lexChar() {
	start := lex.Position
	lex.advance()

	if lex.peek(0) == '\'' {
		lex.advance()
		lex.error(start, 2, diagnostics.ErrInvalidCharConstant, "empty character constant")
		return
	}

	count := 0
	for !lex.atEOF() && lex.peek(0) != '\'' && lex.peek(0) != '\n' {
		lex.advance()
		count++
	}

	if lex.peek(0) != '\'' {
		lex.error(start, 1, diagnostics.ErrUnterminatedChar, "character constant missing terminating character \"'\"")
		return
	}
	lex.advance()

	size := lex.Position.Offset - start.Offset
	if count > 1 {
		lex.error(start, size, diagnostics.ErrInvalidCharConstant, "multi-character character constant")
		return
	}

	value := lex.sourceCode[start.Offset+1]
	if !isVisible(value) && value != ' ' {
		lex.error(start, size, diagnostics.ErrInvalidCharConstant, "invalid character in character constant")
		return
	}

	token := tokens.NewToken(tokens.CHAR_TOKEN, start, size)
	token.CharValue = value
	lex.push(token)
}

// operators maps one-byte lexemes to their token kinds. Bytes that may
// start a two-byte lexeme are handled in lexOperator.
var operators = map[byte]tokens.TOKEN{
	'+': tokens.PLUS_TOKEN,
	'-': tokens.MINUS_TOKEN,
	'*': tokens.MUL_TOKEN,
	'/': tokens.DIV_TOKEN,
	'%': tokens.MOD_TOKEN,
	'(': tokens.OPEN_PAREN,
	')': tokens.CLOSE_PAREN,
	'{': tokens.OPEN_CURLY,
	'}': tokens.CLOSE_CURLY,
	'[': tokens.OPEN_BRACKET,
	']': tokens.CLOSE_BRACKET,
	':': tokens.COLON_TOKEN,
	';': tokens.SEMICOLON_TOKEN,
	',': tokens.COMMA_TOKEN,
	'.': tokens.DOT_TOKEN,
}

// withEquals lists bytes that form a second operator when followed by '='.
var withEquals = map[byte][2]tokens.TOKEN{
	'=': {tokens.EQUALS_TOKEN, tokens.DOUBLE_EQUAL_TOKEN},
	'<': {tokens.LESS_TOKEN, tokens.LESS_EQUAL_TOKEN},
	'>': {tokens.GREATER_TOKEN, tokens.GREATER_EQUAL_TOKEN},
	'!': {tokens.NOT_TOKEN, tokens.NOT_EQUAL_TOKEN},
}

var doubled = map[byte]tokens.TOKEN{
	'&': tokens.AND_TOKEN,
	'|': tokens.OR_TOKEN,
}

func (lex *Lexer) lexOperator() {
	start := lex.Position
	c := lex.peek(0)

	if pair, ok := withEquals[c]; ok {
		lex.advance()
		if lex.peek(0) == '=' {
			lex.advance()
			lex.push(tokens.NewToken(pair[1], start, 2))
			return
		}
		lex.push(tokens.NewToken(pair[0], start, 1))
		return
	}

	if kind, ok := doubled[c]; ok {
		lex.advance()
		if lex.peek(0) != c {
			lex.error(start, 1, diagnostics.ErrIncompleteOperator, fmt.Sprintf("found '%c' expected '%c%c'", c, c, c))
			return
		}
		lex.advance()
		lex.push(tokens.NewToken(kind, start, 2))
		return
	}

	if kind, ok := operators[c]; ok {
		lex.advance()
		lex.push(tokens.NewToken(kind, start, 1))
		return
	}

	r, width := utf8.DecodeRuneInString(lex.sourceCode[start.Offset:])
	for i := 0; i < width; i++ {
		lex.advance()
	}
	lex.error(start, width, diagnostics.ErrUnexpectedCharacter, fmt.Sprintf("unsupported character %q", r))
}
