// Package parser implements the recursive-descent parser that transforms a
// token stream into an abstract syntax tree.
package parser

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/scanner"
	"github.com/mna/loxi/lang/token"
)

// maxArgs is the maximum number of arguments a call or parameters a function
// may declare.
const maxArgs = 255

// Error is a single parse-time error, formatted to match the scanner's wire
// contract: "[line N] Error: message". Unlike resolver errors, parse errors
// never name the offending lexeme.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// errPanicMode is the sentinel panicked with when a production fails to
// find what it requires; it is recovered at the statement boundary, which
// then synchronizes to the next likely-good token.
var errPanicMode = errors.New("panic")

// Parse scans src and parses it into a program (a slice of top-level
// statements). The returned error, if non-nil, aggregates every parse error
// encountered; callers that only care about the first one can still treat
// it as a plain error via Error().
func Parse(src []byte) ([]ast.Stmt, error) {
	toks, err := scanner.Scan(src)
	if err != nil {
		return nil, err
	}
	var p parser
	p.init(toks)
	stmts := p.parseProgram()
	if p.errs == nil {
		return stmts, nil
	}
	// errors.Join exposes each accumulated error through Unwrap() []error.
	return stmts, errors.Join(p.errs.Errors...)
}

// parser consumes a token slice produced by the scanner and builds an AST.
type parser struct {
	toks    []token.Token
	current int
	errs    *multierror.Error
}

func (p *parser) init(toks []token.Token) {
	p.toks = toks
	p.current = 0
}

func (p *parser) parseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	return stmts
}

// declaration parses a single declaration, recovering to the next statement
// boundary on error. Returns nil if the parse failed (the error has already
// been recorded).
func (p *parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r == errPanicMode {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.matches(token.CLASS):
		return p.classDecl()
	case p.matches(token.FUN):
		return p.funDecl("function")
	case p.matches(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *parser) classDecl() ast.Stmt {
	name := p.expect(token.IDENT, "Expect class name.")

	var super *ast.Variable
	if p.matches(token.LESS) {
		p.expect(token.IDENT, "Expect superclass name.")
		super = &ast.Variable{Name: p.previous()}
	}

	p.expect(token.LBRACE, "Expect '{' before class body.")
	var methods []*ast.Function
	for !p.check(token.RBRACE) && !p.atEnd() {
		methods = append(methods, p.funDecl("method").(*ast.Function))
	}
	p.expect(token.RBRACE, "Expect '}' after class body.")

	return &ast.Class{Name: name, Superclass: super, Methods: methods}
}

func (p *parser) funDecl(kind string) ast.Stmt {
	name := p.expect(token.IDENT, "Expect "+kind+" name.")
	return p.functionBody(name, kind)
}

// functionBody parses "(params) { body }", shared by function declarations
// and class methods, which differ only in what comes before the name.
func (p *parser) functionBody(name token.Token, kind string) *ast.Function {
	p.expect(token.LPAREN, "Expect '(' after "+kind+" name.")
	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAtCurrent(fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.expect(token.IDENT, "Expect parameter name."))
			if !p.matches(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN, "Expect ')' after parameters.")

	p.expect(token.LBRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.Function{Name: name, Params: params, Body: body}
}

func (p *parser) varDecl() ast.Stmt {
	name := p.expect(token.IDENT, "Expect variable name.")
	var init ast.Expr
	if p.matches(token.EQUAL) {
		init = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: init}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.matches(token.FOR):
		return p.forStatement()
	case p.matches(token.IF):
		return p.ifStatement()
	case p.matches(token.PRINT):
		return p.printStatement()
	case p.matches(token.RETURN):
		return p.returnStatement()
	case p.matches(token.WHILE):
		return p.whileStatement()
	case p.matches(token.LBRACE):
		return &ast.Block{LBrace: p.previous(), Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; post) body` into the equivalent
// while loop, so the interpreter never needs to know for loops exist.
func (p *parser) forStatement() ast.Stmt {
	keyword := p.previous()
	p.expect(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.matches(token.SEMICOLON):
		// no initializer
	case p.matches(token.VAR):
		init = p.varDecl()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after loop condition.")

	var post ast.Expr
	if !p.check(token.RPAREN) {
		post = p.expression()
	}
	p.expect(token.RPAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if post != nil {
		body = &ast.Block{LBrace: keyword, Statements: []ast.Stmt{body, &ast.Expression{Expr: post}}}
	}
	if cond == nil {
		cond = &ast.Literal{Token: keyword, Value: true}
	}
	body = &ast.While{Keyword: keyword, Cond: cond, Body: body}

	if init != nil {
		body = &ast.Block{LBrace: keyword, Statements: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) ifStatement() ast.Stmt {
	keyword := p.previous()
	p.expect(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.expect(token.RPAREN, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.matches(token.ELSE) {
		els = p.statement()
	}
	return &ast.If{Keyword: keyword, Cond: cond, Then: then, Else: els}
}

func (p *parser) printStatement() ast.Stmt {
	keyword := p.previous()
	value := p.expression()
	p.expect(token.SEMICOLON, "Expect ';' after value.")
	return &ast.Print{Keyword: keyword, Expr: value}
}

func (p *parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *parser) whileStatement() ast.Stmt {
	keyword := p.previous()
	p.expect(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.expect(token.RPAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{Keyword: keyword, Cond: cond, Body: body}
}

func (p *parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.expect(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.Expression{Expr: expr}
}

func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.atEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	p.expect(token.RBRACE, "Expect '}' after block.")
	return stmts
}

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

func (p *parser) assignment() ast.Expr {
	expr := p.or()

	if p.matches(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: e.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: e.Object, Name: e.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}
	return expr
}

func (p *parser) or() ast.Expr {
	expr := p.and()
	for p.matches(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) and() ast.Expr {
	expr := p.equality()
	for p.matches(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.matches(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.matches(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.matches(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.matches(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.matches(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.matches(token.LPAREN):
			expr = p.finishCall(expr)
		case p.matches(token.DOT):
			name := p.expect(token.IDENT, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAtCurrent(fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.expression())
			if !p.matches(token.COMMA) {
				break
			}
		}
	}
	paren := p.expect(token.RPAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.matches(token.FALSE):
		return &ast.Literal{Token: p.previous(), Value: false}
	case p.matches(token.TRUE):
		return &ast.Literal{Token: p.previous(), Value: true}
	case p.matches(token.NIL):
		return &ast.Literal{Token: p.previous(), Value: nil}
	case p.matches(token.NUMBER, token.STRING):
		tok := p.previous()
		return &ast.Literal{Token: tok, Value: tok.Literal}
	case p.matches(token.SUPER):
		keyword := p.previous()
		p.expect(token.DOT, "Expect '.' after 'super'.")
		method := p.expect(token.IDENT, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.matches(token.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.matches(token.IDENT):
		return &ast.Variable{Name: p.previous()}
	case p.matches(token.LPAREN):
		paren := p.previous()
		expr := p.expression()
		p.expect(token.RPAREN, "Expect ')' after expression.")
		return &ast.Grouping{Paren: paren, Inner: expr}
	default:
		p.errorAtCurrent("Expect expression.")
		panic(errPanicMode)
	}
}

// synchronize discards tokens until it reaches what looks like the start of
// the next statement, so a single malformed statement doesn't cascade into a
// flood of spurious errors.
func (p *parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

func (p *parser) matches(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(k token.Kind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Kind == k
}

func (p *parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *parser) peek() token.Token {
	return p.toks[p.current]
}

func (p *parser) previous() token.Token {
	return p.toks[p.current-1]
}

// expect consumes the current token if it has kind k, reporting an error and
// entering panic mode otherwise.
func (p *parser) expect(k token.Kind, message string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	panic(errPanicMode)
}

func (p *parser) errorAtCurrent(message string) {
	p.errorAt(p.peek(), message)
}

func (p *parser) errorAt(tok token.Token, message string) {
	p.errs = multierror.Append(p.errs, &Error{Line: tok.Line, Message: message})
}
