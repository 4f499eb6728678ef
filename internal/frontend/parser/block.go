package parser

import (
	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/ast"
	"kestrel/internal/tokens"
)

// parseBlock parses `{ stmt* }`. A statement with an error is dropped and
// parsing resumes after it.
func (p *Parser) parseBlock() ast.Handle {
	open := p.expect(tokens.OPEN_CURLY)

	stmts := []ast.Handle{}
	for !p.match(tokens.CLOSE_CURLY, tokens.STRUCT_TOKEN, tokens.FUNCTION_TOKEN) && !p.isAtEnd() {
		if p.match(tokens.SEMICOLON_TOKEN) {
			p.advance()
			continue
		}
		if h := p.parseStatement(); h != ast.NoHandle {
			stmts = append(stmts, h)
		}
	}
	p.expect(tokens.CLOSE_CURLY)

	return p.arena.Push(&ast.StatementList{Statements: stmts, Location: *p.location(open)})
}

func (p *Parser) parseStatement() (h ast.Handle) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.syncStatement()
			h = ast.NoHandle
		}
	}()
	return p.parseStmt()
}

func (p *Parser) parseStmt() ast.Handle {
	switch p.peek().Kind {
	case tokens.LET_TOKEN:
		return p.parseLet()
	case tokens.IF_TOKEN:
		return p.parseIfStmt()
	case tokens.WHILE_TOKEN:
		return p.parseWhileStmt()
	case tokens.RETURN_TOKEN:
		return p.parseReturnStmt()
	default:
		return p.parseExprOrAssign()
	}
}

// parseLet parses `let x: T;` into a VarDecl, or `let x: T = e;` into an
// AssignStmt whose target is the VarDecl.
func (p *Parser) parseLet() ast.Handle {
	p.expect(tokens.LET_TOKEN)
	nameTok := p.expect(tokens.IDENTIFIER_TOKEN)
	name := p.pushIdentifier(nameTok)
	p.expect(tokens.COLON_TOKEN)
	typ := p.parseType()

	decl := p.arena.Push(&ast.VarDecl{Name: name, Type: typ, Location: *p.location(nameTok)})

	if !p.match(tokens.EQUALS_TOKEN) {
		p.expect(tokens.SEMICOLON_TOKEN)
		return decl
	}

	eq := p.advance()
	value := p.parseExpression()
	p.expect(tokens.SEMICOLON_TOKEN)

	return p.arena.Push(&ast.AssignStmt{Target: decl, Value: value, Location: *p.location(eq)})
}

// parseExprOrAssign parses an assignment or an expression statement. The
// leading operand is parsed once; an '=' after it makes the statement an
// assignment, anything else continues it as an expression. Only a statement
// led by a name can assign, so `(a) = 1;` is rejected.
func (p *Parser) parseExprOrAssign() ast.Handle {
	first := p.peek()
	lhs := p.parseAtom()

	if p.match(tokens.EQUALS_TOKEN) {
		eq := p.advance()
		if first.Kind != tokens.IDENTIFIER_TOKEN || p.arena.Get(lhs).Kind() != ast.KindLValue {
			p.fail(eq, diagnostics.ErrInvalidAssignment, "invalid assignment target")
		}
		value := p.parseExpression()
		p.expect(tokens.SEMICOLON_TOKEN)
		return p.arena.Push(&ast.AssignStmt{Target: lhs, Value: value, Location: *p.location(eq)})
	}

	expr := p.parseBinary(lhs, 1)
	if p.match(tokens.EQUALS_TOKEN) {
		p.fail(p.peek(), diagnostics.ErrInvalidAssignment, "invalid assignment target")
	}
	p.expect(tokens.SEMICOLON_TOKEN)
	return expr
}

// parseIfStmt parses `if cond { } [else { } | else if ...]`. An else-if
// chain nests as an IfStmt in the Else slot.
func (p *Parser) parseIfStmt() ast.Handle {
	ifTok := p.expect(tokens.IF_TOKEN)
	cond := p.parseExpression()
	then := p.parseBlock()

	elseBranch := ast.NoHandle
	if p.match(tokens.ELSE_TOKEN) {
		p.advance()
		if p.match(tokens.IF_TOKEN) {
			elseBranch = p.parseIfStmt()
		} else {
			elseBranch = p.parseBlock()
		}
	}

	return p.arena.Push(&ast.IfStmt{Cond: cond, Then: then, Else: elseBranch, Location: *p.location(ifTok)})
}

func (p *Parser) parseWhileStmt() ast.Handle {
	whileTok := p.expect(tokens.WHILE_TOKEN)
	cond := p.parseExpression()
	body := p.parseBlock()

	return p.arena.Push(&ast.WhileStmt{Cond: cond, Body: body, Location: *p.location(whileTok)})
}

func (p *Parser) parseReturnStmt() ast.Handle {
	retTok := p.expect(tokens.RETURN_TOKEN)

	value := ast.NoHandle
	if !p.match(tokens.SEMICOLON_TOKEN) {
		value = p.parseExpression()
	}
	p.expect(tokens.SEMICOLON_TOKEN)

	return p.arena.Push(&ast.ReturnStmt{Value: value, Location: *p.location(retTok)})
}
