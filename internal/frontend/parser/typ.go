package parser

import (
	"fmt"

	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/ast"
	"kestrel/internal/tokens"
)

// parseType parses `Name` or `[Name]`. Arrays carry no dimension, so
// ArraySize is always 0.
func (p *Parser) parseType() ast.Handle {
	isArray := false
	if p.match(tokens.OPEN_BRACKET) {
		p.advance()
		isArray = true
	}

	tok := p.peek()
	if tok.Kind != tokens.IDENTIFIER_TOKEN {
		p.fail(tok, diagnostics.ErrMissingType, fmt.Sprintf("expected type, but found '%s'", tok.Kind))
	}
	p.advance()

	if isArray {
		p.expect(tokens.CLOSE_BRACKET)
	}

	return p.arena.Push(&ast.TypeAnnotation{
		Name:     tok.Text,
		IsArray:  isArray,
		Location: *p.location(tok),
	})
}
