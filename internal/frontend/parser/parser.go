package parser

import (
	"fmt"

	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/ast"
	"kestrel/internal/source"
	"kestrel/internal/tokens"
)

// Parser holds temporary state during parsing of a single file.
// Nodes are pushed into the arena children first, so every handle a node
// holds is older than the node itself.
type Parser struct {
	tokens      []tokens.Token
	current     int // current position in tokens
	arena       *ast.Arena
	diagnostics *diagnostics.DiagnosticBag
	filepath    string
}

// bailout unwinds the parser to the nearest statement or definition after
// an error has been reported.
type bailout struct{}

func newParser(toks []tokens.Token, arena *ast.Arena, filepath string, diag *diagnostics.DiagnosticBag) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Kind != tokens.EOF_TOKEN {
		// the token stream must end with the sentinel
		toks = append(toks, tokens.NewToken(tokens.EOF_TOKEN, source.Position{}, 0))
	}
	return &Parser{
		tokens:      toks,
		arena:       arena,
		diagnostics: diag,
		filepath:    filepath,
	}
}

// Parse builds the Program for toks into arena and returns its handle.
// Syntax errors are reported to diag; the parser resynchronizes and keeps
// going, so the returned tree may be missing the broken parts.
func Parse(toks []tokens.Token, arena *ast.Arena, filepath string, diag *diagnostics.DiagnosticBag) ast.Handle {
	return newParser(toks, arena, filepath, diag).parseProgram()
}

// ParseExpression parses toks as a single expression. It returns
// ast.NoHandle when the expression has an error.
func ParseExpression(toks []tokens.Token, arena *ast.Arena, filepath string, diag *diagnostics.DiagnosticBag) (h ast.Handle) {
	p := newParser(toks, arena, filepath, diag)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			h = ast.NoHandle
		}
	}()
	expr := p.parseExpression()
	p.expect(tokens.EOF_TOKEN)
	return expr
}

func (p *Parser) parseProgram() ast.Handle {
	loc := p.location(p.peek())
	defs := []ast.Handle{}

	for !p.isAtEnd() {
		var h ast.Handle
		switch p.peek().Kind {
		case tokens.STRUCT_TOKEN:
			h = p.parseDefinition(p.parseStructDef)
		case tokens.FUNCTION_TOKEN:
			h = p.parseDefinition(p.parseFunctionDef)
		default:
			p.errorAt(p.peek(), diagnostics.ErrInvalidTopLevel, "expected 'struct' or 'fn' at top level")
			p.advance()
			p.syncDefinition()
			continue
		}
		if h != ast.NoHandle {
			defs = append(defs, h)
		}
	}

	return p.arena.Push(&ast.Program{Definitions: defs, Location: *loc})
}

// parseDefinition runs parse and recovers from a bailout by skipping to the
// next 'struct' or 'fn'.
func (p *Parser) parseDefinition(parse func() ast.Handle) (h ast.Handle) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.syncDefinition()
			h = ast.NoHandle
		}
	}()
	return parse()
}

func (p *Parser) syncDefinition() {
	for !p.isAtEnd() && !p.match(tokens.STRUCT_TOKEN, tokens.FUNCTION_TOKEN) {
		p.advance()
	}
}

// syncStatement skips past the next ';', or stops before a '}' or the start
// of a definition.
func (p *Parser) syncStatement() {
	for !p.isAtEnd() {
		switch p.peek().Kind {
		case tokens.SEMICOLON_TOKEN:
			p.advance()
			return
		case tokens.CLOSE_CURLY, tokens.STRUCT_TOKEN, tokens.FUNCTION_TOKEN:
			return
		}
		p.advance()
	}
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == tokens.EOF_TOKEN
}

func (p *Parser) peek() tokens.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) advance() tokens.Token {
	tok := p.peek()
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	return tok
}

func (p *Parser) match(kinds ...tokens.TOKEN) bool {
	for _, kind := range kinds {
		if p.peek().Kind == kind {
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind or reports
// "expected 'X' but found 'Y'" and bails out.
func (p *Parser) expect(kind tokens.TOKEN) tokens.Token {
	if p.match(kind) {
		return p.advance()
	}
	tok := p.peek()
	p.fail(tok, diagnostics.ErrExpectedToken, fmt.Sprintf("expected '%s' but found '%s'", kind, tok.Kind))
	return tok
}

func (p *Parser) location(tok tokens.Token) *source.Location {
	return tok.Location(p.filepath)
}

func (p *Parser) errorAt(tok tokens.Token, code, msg string) {
	p.diagnostics.Add(
		diagnostics.NewError(msg).
			WithCode(code).
			WithPrimaryLabel(p.location(tok), ""),
	)
}

// fail reports an error at tok and abandons the current statement.
func (p *Parser) fail(tok tokens.Token, code, msg string) {
	p.errorAt(tok, code, msg)
	panic(bailout{})
}
