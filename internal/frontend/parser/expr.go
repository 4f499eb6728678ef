package parser

import (
	"fmt"

	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/ast"
	"kestrel/internal/source"
	"kestrel/internal/tokens"
)

func (p *Parser) parseExpression() ast.Handle {
	return p.parseBinary(p.parseAtom(), 1)
}

// parseBinary extends left by precedence climbing. It consumes binary
// operators binding at least minPrec; the right operand is parsed with
// prec+1 so operators of equal strength group to the left.
func (p *Parser) parseBinary(left ast.Handle, minPrec int) ast.Handle {
	for {
		op := p.peek()
		prec := op.Op.Precedence()
		if prec == 0 || prec < minPrec {
			return left
		}
		p.advance()

		right := p.parseBinary(p.parseAtom(), prec+1)
		left = p.arena.Push(&ast.Operator{
			Op:       op.Op,
			Left:     left,
			Right:    right,
			Location: *p.spanFrom(p.arena.Get(left).Loc().Start),
		})
	}
}

// spanFrom locates the source from start to the end of the last consumed
// token, so a binary node covers both operands.
func (p *Parser) spanFrom(start source.Position) *source.Location {
	last := p.tokens[p.current-1]
	return source.NewLocation(p.filepath, start, last.Pos.Offset+last.Size-start.Offset)
}

func (p *Parser) parseAtom() ast.Handle {
	tok := p.peek()

	switch tok.Kind {
	case tokens.IDENTIFIER_TOKEN:
		return p.parseIdentAtom()

	case tokens.NOT_TOKEN:
		p.advance()
		operand := p.parseAtom()
		return p.arena.Push(&ast.Operator{
			Op:       tokens.OpNot,
			Left:     operand,
			Right:    ast.NoHandle,
			Location: *p.spanFrom(tok.Pos),
		})

	case tokens.INTEGER_TOKEN:
		p.advance()
		return p.arena.Push(&ast.IntegerConstant{Value: tok.IntValue, Location: *p.location(tok)})

	case tokens.STRING_TOKEN:
		p.advance()
		return p.arena.Push(&ast.StringConstant{Value: tok.Text, Location: *p.location(tok)})

	case tokens.CHAR_TOKEN:
		p.advance()
		return p.arena.Push(&ast.CharConstant{Value: tok.CharValue, Location: *p.location(tok)})

	case tokens.TRUE_TOKEN, tokens.FALSE_TOKEN:
		p.advance()
		return p.arena.Push(&ast.BooleanConstant{Value: tok.Kind == tokens.TRUE_TOKEN, Location: *p.location(tok)})

	case tokens.OPEN_PAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(tokens.CLOSE_PAREN)
		return expr
	}

	p.fail(tok, diagnostics.ErrMissingExpression, fmt.Sprintf("expecting an expression before '%s'", tok.Kind))
	return ast.NoHandle
}

// parseIdentAtom parses a call `name(args)` or an lvalue chain such as
// `a.b[i].c`.
func (p *Parser) parseIdentAtom() ast.Handle {
	name := p.expect(tokens.IDENTIFIER_TOKEN)

	if p.match(tokens.OPEN_PAREN) {
		return p.parseCall(name)
	}

	parts := []ast.Handle{p.parseSimpleLValue(name)}
	for p.match(tokens.DOT_TOKEN) {
		p.advance()
		parts = append(parts, p.parseSimpleLValue(p.expect(tokens.IDENTIFIER_TOKEN)))
	}

	return p.arena.Push(&ast.LValue{Parts: parts, Location: *p.location(name)})
}

func (p *Parser) parseSimpleLValue(name tokens.Token) ast.Handle {
	id := p.pushIdentifier(name)
	if !p.match(tokens.OPEN_BRACKET) {
		return id
	}
	p.advance()
	index := p.parseExpression()
	p.expect(tokens.CLOSE_BRACKET)
	return p.arena.Push(&ast.ArrayAccess{Name: id, Index: index, Location: *p.location(name)})
}

func (p *Parser) parseCall(name tokens.Token) ast.Handle {
	p.expect(tokens.OPEN_PAREN)

	args := []ast.Handle{}
	if !p.match(tokens.CLOSE_PAREN) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(tokens.COMMA_TOKEN) {
				break
			}
			p.advance()
		}
	}
	p.expect(tokens.CLOSE_PAREN)

	return p.arena.Push(&ast.FunctionCall{Name: name.Text, Args: args, Location: *p.location(name)})
}
