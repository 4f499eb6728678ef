package parser

import (
	"kestrel/internal/frontend/ast"
	"kestrel/internal/tokens"
)

// parseStructDef parses `struct Name { field: Type; ... }`.
func (p *Parser) parseStructDef() ast.Handle {
	p.expect(tokens.STRUCT_TOKEN)
	name := p.expect(tokens.IDENTIFIER_TOKEN)
	p.expect(tokens.OPEN_CURLY)

	fields := []ast.Handle{}
	for !p.match(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		if p.match(tokens.SEMICOLON_TOKEN) {
			p.advance()
			continue
		}
		fields = append(fields, p.parseField())
	}
	p.expect(tokens.CLOSE_CURLY)

	return p.arena.Push(&ast.StructDef{
		Name:     name.Text,
		Fields:   fields,
		Location: *p.location(name),
	})
}

func (p *Parser) parseField() ast.Handle {
	nameTok := p.expect(tokens.IDENTIFIER_TOKEN)
	name := p.pushIdentifier(nameTok)
	p.expect(tokens.COLON_TOKEN)
	typ := p.parseType()
	p.expect(tokens.SEMICOLON_TOKEN)

	return p.arena.Push(&ast.Field{Name: name, Type: typ, Location: *p.location(nameTok)})
}

// parseFunctionDef parses `fn name(p: Type, ...): Ret { ... }`; the return
// type is optional.
func (p *Parser) parseFunctionDef() ast.Handle {
	p.expect(tokens.FUNCTION_TOKEN)
	name := p.expect(tokens.IDENTIFIER_TOKEN)
	p.expect(tokens.OPEN_PAREN)

	params := []ast.Handle{}
	if !p.match(tokens.CLOSE_PAREN) {
		for {
			params = append(params, p.parseParam())
			if !p.match(tokens.COMMA_TOKEN) {
				break
			}
			p.advance()
		}
	}
	p.expect(tokens.CLOSE_PAREN)

	ret := ast.NoHandle
	if p.match(tokens.COLON_TOKEN) {
		p.advance()
		ret = p.parseType()
	}

	body := p.parseBlock()

	return p.arena.Push(&ast.FunctionDef{
		Name:     name.Text,
		Params:   params,
		Return:   ret,
		Body:     body,
		Location: *p.location(name),
	})
}

func (p *Parser) parseParam() ast.Handle {
	nameTok := p.expect(tokens.IDENTIFIER_TOKEN)
	name := p.pushIdentifier(nameTok)
	p.expect(tokens.COLON_TOKEN)
	typ := p.parseType()

	return p.arena.Push(&ast.Param{Name: name, Type: typ, Location: *p.location(nameTok)})
}

func (p *Parser) pushIdentifier(tok tokens.Token) ast.Handle {
	return p.arena.Push(&ast.Identifier{Name: tok.Text, Location: *p.location(tok)})
}
