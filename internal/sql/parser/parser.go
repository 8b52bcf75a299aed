// Package parser builds the AST from a token stream using precedence
// climbing: every token type can carry one prefix handler and one infix
// handler, and a table of binding powers decides how far an infix handler may
// reach. The parser never aborts on malformed input; it records a diagnostic,
// skips to the next statement boundary, and keeps going.
package parser

import (
	"strconv"
	"strings"

	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/ast"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/diag"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/lexer"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/token"
)

type precedence int

const (
	precLowest precedence = iota + 1
	precEquals
	precLessGreater
	precSum
	precProduct
	precPrefix
	precCall
	precAlias
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes tokens from one lexer and produces one Program. The
// precedence table and the handler maps are per-instance state built by New,
// not package globals.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	arena       *ast.Arena
	diagnostics []diag.Diagnostic

	precedences    map[token.Type]precedence
	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:     l,
		arena: ast.NewArena(),
	}

	p.precedences = map[token.Type]precedence{
		token.EQ:       precEquals,
		token.NOT_EQ:   precEquals,
		token.IS:       precEquals,
		token.LIKE:     precEquals,
		token.BETWEEN:  precEquals,
		token.IN:       precEquals,
		token.AND:      precEquals,
		token.OR:       precEquals,
		token.LT:       precLessGreater,
		token.GT:       precLessGreater,
		token.LTE:      precLessGreater,
		token.GTE:      precLessGreater,
		token.PLUS:     precSum,
		token.MINUS:    precSum,
		token.SLASH:    precProduct,
		token.ASTERISK: precProduct,
		token.LPAREN:   precCall,
		token.AS:       precAlias,
	}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseIntegerLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.NULL:     p.parseNullLiteral,
		token.NOT:      p.parsePrefixExpression,
		token.MINUS:    p.parsePrefixExpression,
		token.LPAREN:   p.parseGroupedExpression,
		token.ASTERISK: p.parseAllColumns,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.EQ:       p.parseInfixExpression,
		token.NOT_EQ:   p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.LTE:      p.parseInfixExpression,
		token.GTE:      p.parseInfixExpression,
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.AND:      p.parseInfixExpression,
		token.OR:       p.parseInfixExpression,
		token.IS:       p.parseInfixExpression,
		token.LIKE:     p.parseInfixExpression,
		token.BETWEEN:  p.parseInfixExpression,
		token.IN:       p.parseInfixExpression,
		token.AS:       p.parseAliasExpression,
		token.LPAREN:   p.parseCallExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Diagnostics returns the syntax findings accumulated so far.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	return p.diagnostics
}

// ParseProgram parses the whole input. It always returns a non-nil Program;
// a statement that fails to parse contributes no node, only diagnostics.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Arena: p.arena}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.skipStatement()
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.SELECT:
		// Do not convert a nil *SelectStatement into a non-nil Statement.
		if stmt := p.parseSelectStatement(); stmt != nil {
			return stmt
		}
		return nil
	default:
		p.errorf(p.curToken, "expected SELECT statement, got %s", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseSelectStatement() *ast.SelectStatement {
	stmt := &ast.SelectStatement{Token: p.curToken}

	p.nextToken()
	if first := p.parseExpression(precLowest); first != nil {
		stmt.Columns = append(stmt.Columns, first)
	}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		if e := p.parseExpression(precLowest); e != nil {
			stmt.Columns = append(stmt.Columns, e)
		}
	}

	// A missing FROM keyword is recorded but not fatal: the statement is kept
	// with From == nil so validation can point at the follow-on problems. A
	// FROM without a table name fails the whole statement.
	if !p.peekTokenIs(token.FROM) {
		p.errorf(p.peekToken, "expected FROM clause, got %s", p.peekToken.Type)
	} else {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.From = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		p.arena.Register(stmt.From)
	}

	if p.peekTokenIs(token.WHERE) {
		p.nextToken()
		p.nextToken()
		stmt.Where = p.parseExpression(precLowest)
	}

	if p.peekTokenIs(token.ORDER) {
		p.nextToken()
		if !p.expectPeek(token.BY) {
			return nil
		}
		p.nextToken()
		stmt.OrderBy = append(stmt.OrderBy, p.parseOrderByExpression())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			stmt.OrderBy = append(stmt.OrderBy, p.parseOrderByExpression())
		}
	}

	if p.peekTokenIs(token.LIMIT) {
		p.nextToken()
		lc := &ast.LimitClause{Token: p.curToken}
		p.nextToken()
		lc.Value = p.parseExpression(precLowest)
		p.arena.Register(lc)
		stmt.Limit = lc
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseExpression is the precedence-climbing core: the current token's prefix
// handler produces the left arm, then infix handlers take over for as long as
// the next token binds tighter than the caller.
func (p *Parser) parseExpression(prec precedence) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "no prefix parse function for %s found", p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && prec < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

// ----- prefix handlers -----

func (p *Parser) parseIdentifier() ast.Expression {
	ident := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.arena.Register(ident)

	// An identifier directly followed by '(' is a function call.
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		return p.parseCallExpression(ident)
	}
	return ident
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errorf(p.curToken, "could not parse %q as integer", p.curToken.Literal)
		return nil
	}
	lit := &ast.IntegerLiteral{Token: p.curToken, Value: v}
	p.arena.Register(lit)
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	lit := &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	p.arena.Register(lit)
	return lit
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	lit := &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
	p.arena.Register(lit)
	return lit
}

func (p *Parser) parseNullLiteral() ast.Expression {
	lit := &ast.NullLiteral{Token: p.curToken}
	p.arena.Register(lit)
	return lit
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	pe := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: operatorText(p.curToken),
	}
	p.nextToken()
	pe.Right = p.parseExpression(precPrefix)
	p.arena.Register(pe)
	return pe
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(precLowest)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseAllColumns() ast.Expression {
	ac := &ast.AllColumns{Token: p.curToken}
	p.arena.Register(ac)
	return ac
}

// ----- infix handlers -----

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	ie := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: operatorText(p.curToken),
		Left:     left,
	}
	prec := p.curPrecedence()
	p.nextToken()
	ie.Right = p.parseExpression(prec)
	p.arena.Register(ie)
	return ie
}

func (p *Parser) parseAliasExpression(left ast.Expression) ast.Expression {
	ae := &ast.AliasExpression{Token: p.curToken, Expression: left}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	ae.Alias = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.arena.Register(ae.Alias)
	p.arena.Register(ae)
	return ae
}

func (p *Parser) parseCallExpression(left ast.Expression) ast.Expression {
	name, ok := left.(*ast.Identifier)
	if !ok {
		p.errorf(p.curToken, "expected function name before '('")
		return nil
	}
	call := &ast.FunctionCall{Token: name.Token, Name: name}
	call.Arguments = p.parseCallArguments()
	p.arena.Register(call)
	return call
}

func (p *Parser) parseCallArguments() []ast.Expression {
	args := []ast.Expression{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}

	p.nextToken()
	if e := p.parseExpression(precLowest); e != nil {
		args = append(args, e)
	}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		if e := p.parseExpression(precLowest); e != nil {
			args = append(args, e)
		}
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return args
}

func (p *Parser) parseOrderByExpression() *ast.OrderByExpression {
	oe := &ast.OrderByExpression{Token: p.curToken}
	oe.Column = p.parseExpression(precLowest)

	if p.peekTokenIs(token.ASC) || p.peekTokenIs(token.DESC) {
		p.nextToken()
		oe.Direction = strings.ToUpper(p.curToken.Literal)
	}
	p.arena.Register(oe)
	return oe
}

// ----- token plumbing -----

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool { return p.curToken.Type == t }

func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken, "expected next token to be %s, got %s instead", t, p.peekToken.Type)
	return false
}

func (p *Parser) curPrecedence() precedence {
	if prec, ok := p.precedences[p.curToken.Type]; ok {
		return prec
	}
	return precLowest
}

func (p *Parser) peekPrecedence() precedence {
	if prec, ok := p.precedences[p.peekToken.Type]; ok {
		return prec
	}
	return precLowest
}

// skipStatement advances to the next statement boundary after a failed parse
// so one broken statement yields one diagnostic, not one per token.
func (p *Parser) skipStatement() {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.diagnostics = append(p.diagnostics, diag.Newf(tok.Line, tok.Column, format, args...))
}

// operatorText canonicalizes word operators (NOT, AND, OR, IS, ...) to upper
// case so later passes can match them regardless of the input's casing.
// Symbol operators pass through unchanged.
func operatorText(tok token.Token) string {
	return strings.ToUpper(tok.Literal)
}
