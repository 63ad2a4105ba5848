// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

// Package parser implements the Kaubo Pratt parser: recursive descent for
// statements, precedence climbing for expressions (spec.md §4.7).
//
// Design overview:
//   - Unlike the teacher's parser, which collects errors and recovers by
//     skipping to the next statement boundary, Parse returns the first
//     error and stops — there is no partial AST worth salvaging, and
//     spec.md §4.7 mandates it.
//   - Comments are lexed as ordinary tokens (so the lexer engine never
//     special-cases them) and discarded here, in advance().
//   - Statement listener callbacks fire in the textual order of each
//     statement's opening token; expression callbacks fire post-order,
//     each once its node is complete (see parseExpression).
package parser

import (
	"strconv"

	"github.com/probechain/kaubo/ast"
	"github.com/probechain/kaubo/frontend/kaubo"
	"github.com/probechain/kaubo/lexer"
	"github.com/probechain/kaubo/token"
)

// Parser holds the mutable state for a single parse run over one
// lexer.Engine. The engine is assumed to already have had its complete
// input Fed and Terminated — Parse is not an incremental, re-entrant API
// (spec.md §1 Non-goals: "no incremental re-lexing on edits").
type Parser struct {
	eng  *lexer.Engine
	cur  token.Token
	peek token.Token

	listeners *ast.Broadcaster
}

// New primes a Parser by reading two tokens (cur and peek) from eng,
// discarding comments along the way.
func New(eng *lexer.Engine) *Parser {
	p := &Parser{eng: eng, listeners: ast.NewBroadcaster()}
	p.advance()
	p.advance()
	return p
}

// BindListener registers l to fire on every subsequent production,
// after any already-bound listener (spec.md §4.7: "bind_listener(l)
// subscribes").
func (p *Parser) BindListener(l ast.Listener) {
	p.listeners.Add(l)
}

// Parse runs the grammar to completion and returns the resulting Module,
// or the first ParseError encountered.
func Parse(eng *lexer.Engine, listeners ...ast.Listener) (*ast.Module, error) {
	p := New(eng)
	for _, l := range listeners {
		p.BindListener(l)
	}
	return p.parseModule()
}

// ---------------------------------------------------------------------------
// Token navigation
// ---------------------------------------------------------------------------

// advance pulls the next non-comment token from the engine into peek,
// sliding the old peek into cur. The engine is assumed fully fed and
// terminated, so NextToken returning ok=false always means true
// end-of-input here, never "wait for more bytes" (spec.md §5's alternative
// blocking-pop mode, which this parser does not use).
func (p *Parser) advance() {
	p.cur = p.peek
	for {
		tok, ok := p.eng.NextToken()
		if !ok {
			p.peek = token.Token{Kind: kaubo.KindEOF, Coordinate: p.cur.Coordinate}
			return
		}
		if tok.Kind == kaubo.KindLineComment || tok.Kind == kaubo.KindBlockComment {
			continue
		}
		p.peek = tok
		return
	}
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }
func (p *Parser) atEOF() bool              { return p.cur.Kind == kaubo.KindEOF }

// expect consumes cur if it has kind k, returning it. Otherwise it returns
// a ParseError and does not advance.
func (p *Parser) expect(k token.Kind, code ErrorCode, what string) (token.Token, error) {
	if p.cur.Kind == k {
		tok := p.cur
		p.advance()
		return tok, nil
	}
	if p.atEOF() {
		return token.Token{}, newError(UnexpectedEndOfInput, p.cur.Coordinate, "expected %s, got end of input", what)
	}
	return token.Token{}, newError(code, p.cur.Coordinate, "expected %s, got %q", what, p.cur.Lexeme)
}

// ---------------------------------------------------------------------------
// module := statement* EOF
// ---------------------------------------------------------------------------

func (p *Parser) parseModule() (*ast.Module, error) {
	m := &ast.Module{}
	p.listeners.EnterModule(m)
	for !p.atEOF() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		m.Statements = append(m.Statements, s)
	}
	p.listeners.ExitModule(m)
	return m, nil
}

// ---------------------------------------------------------------------------
// statement := block | var-decl | if | while | for | return | ';' | expr ';'
// ---------------------------------------------------------------------------

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Kind {
	case kaubo.KindLBrace:
		return p.parseBlock()
	case kaubo.KindVar:
		return p.parseVarDecl()
	case kaubo.KindIf:
		return p.parseIf()
	case kaubo.KindWhile:
		return p.parseWhile()
	case kaubo.KindFor:
		return p.parseFor()
	case kaubo.KindReturn:
		return p.parseReturn()
	case kaubo.KindSemicolon:
		tok := p.cur
		p.advance()
		return &ast.EmptyStmt{Base: ast.Base{Tok: tok}}, nil
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	open := p.cur
	p.advance() // consume '{'
	b := &ast.Block{Base: ast.Base{Tok: open}}
	p.listeners.EnterBlock(b)
	for !p.curIs(kaubo.KindRBrace) && !p.atEOF() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, s)
	}
	if _, err := p.expect(kaubo.KindRBrace, MissingRightBrace, "'}'"); err != nil {
		return nil, err
	}
	p.listeners.ExitBlock(b)
	return b, nil
}

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	varTok := p.cur
	p.advance() // consume 'var'
	nameTok, err := p.expect(kaubo.KindIdentifier, UnexpectedToken, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(kaubo.KindEqual, UnexpectedToken, "'='"); err != nil {
		return nil, err
	}

	v := &ast.VarDecl{Base: ast.Base{Tok: varTok}, Name: nameTok.Lexeme}
	p.listeners.EnterVarDecl(v)

	init, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	v.Initializer = init
	if _, err := p.expect(kaubo.KindSemicolon, UnexpectedToken, "';'"); err != nil {
		return nil, err
	}

	p.listeners.ExitVarDecl(v)
	return v, nil
}

func (p *Parser) parseIf() (*ast.If, error) {
	ifTok := p.cur
	p.advance() // consume 'if'

	n := &ast.If{Base: ast.Base{Tok: ifTok}}
	p.listeners.EnterIf(n)

	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	n.Cond = cond
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n.Then = then

	if p.curIs(kaubo.KindElse) {
		p.advance()
		if p.curIs(kaubo.KindIf) {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			n.Else = elseIf
		} else {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			n.Else = elseBlock
		}
	}
	p.listeners.ExitIf(n)
	return n, nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	whileTok := p.cur
	p.advance() // consume 'while'

	n := &ast.While{Base: ast.Base{Tok: whileTok}}
	p.listeners.EnterWhile(n)

	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	n.Cond = cond
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n.Body = body

	p.listeners.ExitWhile(n)
	return n, nil
}

func (p *Parser) parseFor() (*ast.For, error) {
	forTok := p.cur
	p.advance() // consume 'for'
	if _, err := p.expect(kaubo.KindLParen, UnexpectedToken, "'('"); err != nil {
		return nil, err
	}

	n := &ast.For{Base: ast.Base{Tok: forTok}}
	p.listeners.EnterFor(n)

	if !p.curIs(kaubo.KindSemicolon) {
		init, err := p.parseForClauseStatement()
		if err != nil {
			return nil, err
		}
		n.Init = init
	} else {
		if _, err := p.expect(kaubo.KindSemicolon, UnexpectedToken, "';'"); err != nil {
			return nil, err
		}
	}

	if !p.curIs(kaubo.KindSemicolon) {
		cond, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		n.Cond = cond
	}
	if _, err := p.expect(kaubo.KindSemicolon, UnexpectedToken, "';'"); err != nil {
		return nil, err
	}

	if !p.curIs(kaubo.KindRParen) {
		post, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		n.Post = &ast.ExprStmt{Expr: post}
	}
	if _, err := p.expect(kaubo.KindRParen, UnexpectedToken, "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n.Body = body

	p.listeners.ExitFor(n)
	return n, nil
}

// parseForClauseStatement parses the init clause of a for-loop header: a
// var-decl (without requiring the trailing ';' to be re-consumed here,
// since parseVarDecl already consumes it) or a bare expression followed by
// ';'.
func (p *Parser) parseForClauseStatement() (ast.Statement, error) {
	if p.curIs(kaubo.KindVar) {
		return p.parseVarDecl()
	}
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(kaubo.KindSemicolon, UnexpectedToken, "';'"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	retTok := p.cur
	p.advance() // consume 'return'
	n := &ast.Return{Base: ast.Base{Tok: retTok}}
	p.listeners.EnterReturn(n)
	if !p.curIs(kaubo.KindSemicolon) {
		val, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		n.Value = val
	}
	if _, err := p.expect(kaubo.KindSemicolon, UnexpectedToken, "';'"); err != nil {
		return nil, err
	}
	p.listeners.ExitReturn(n)
	return n, nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	tok := p.cur
	n := &ast.ExprStmt{Base: ast.Base{Tok: tok}}
	p.listeners.EnterExprStmt(n)

	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	n.Expr = expr
	if _, err := p.expect(kaubo.KindSemicolon, UnexpectedToken, "';'"); err != nil {
		return nil, err
	}

	p.listeners.ExitExprStmt(n)
	return n, nil
}

// ---------------------------------------------------------------------------
// expression := precedence-climb(prefix, minPrec=0)
// ---------------------------------------------------------------------------

// parseExpression climbs from left to right, tightest-binding operator
// first. Unlike the statement productions, a Pratt climb does not know a
// combined node's identity until it builds it, so rather than bracketing
// the whole climb with one Enter/Exit pair, parseExpression reports each
// node — the leading primary, then every Binary/Assign the loop folds it
// into — as soon as that node is complete, children always before the
// parent they end up part of.
func (p *Parser) parseExpression(minPrec precedence) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	p.listeners.EnterExpression(left)
	p.listeners.ExitExpression(left)

	for {
		rule, has := infixTable[p.cur.Kind]
		if !has || rule.prec <= minPrec {
			break
		}
		opTok := p.cur
		p.advance()
		nextMin := rule.prec
		if rule.right {
			nextMin--
		}
		right, err := p.parseExpression(nextMin)
		if err != nil {
			return nil, err
		}
		if opTok.Kind == kaubo.KindEqual {
			name, ok := left.(*ast.VarRef)
			if !ok {
				return nil, newError(UnexpectedToken, opTok.Coordinate, "left-hand side of '=' must be an identifier")
			}
			left = &ast.Assign{Base: ast.Base{Tok: opTok}, Name: name.Name, Value: right}
		} else {
			left = &ast.Binary{Base: ast.Base{Tok: opTok}, Left: left, Operator: operatorText(opTok), Right: right}
		}
		p.listeners.EnterExpression(left)
		p.listeners.ExitExpression(left)
	}

	return left, nil
}

// prefix := ('+' | '-' | '!') prefix | primary
func (p *Parser) parsePrefix() (ast.Expression, error) {
	switch p.cur.Kind {
	case kaubo.KindPlus, kaubo.KindMinus, kaubo.KindBang:
		opTok := p.cur
		p.advance()
		operand, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Base: ast.Base{Tok: opTok}, Operator: operatorText(opTok), Operand: operand}, nil
	default:
		return p.parsePostfix()
	}
}

// postfix := primary ( '.' IDENT | '(' arg-list? ')' )*
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Kind {
		case kaubo.KindDot:
			dotTok := p.cur
			p.advance()
			nameTok, err := p.expect(kaubo.KindIdentifier, ExpectedIdentifierAfterDot, "identifier after '.'")
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberAccess{Base: ast.Base{Tok: dotTok}, Object: expr, Name: nameTok.Lexeme}
		case kaubo.KindLParen:
			openTok := p.cur
			p.advance()
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(kaubo.KindRParen, MissingRightParen, "')'"); err != nil {
				return nil, err
			}
			expr = &ast.FunctionCall{Base: ast.Base{Tok: openTok}, Callee: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

// arg-list := expression (',' expression)*
func (p *Parser) parseArgList() ([]ast.Expression, error) {
	var args []ast.Expression
	if p.curIs(kaubo.KindRParen) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.curIs(kaubo.KindComma) {
			break
		}
		p.advance()
		if p.curIs(kaubo.KindRParen) {
			return nil, newError(ExpectedCommaOrRightParen, p.cur.Coordinate, "trailing comma not accepted in argument list")
		}
	}
	return args, nil
}

// primary := INT | FLOAT | STRING | TRUE | FALSE | IDENT | '(' expression ')' | lambda
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur
	switch tok.Kind {
	case kaubo.KindInteger:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, newError(InvalidNumberFormat, tok.Coordinate, "invalid integer literal %q", tok.Lexeme)
		}
		return &ast.LiteralInt{Base: ast.Base{Tok: tok}, Value: v}, nil
	case kaubo.KindFloat:
		p.advance()
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, newError(InvalidNumberFormat, tok.Coordinate, "invalid float literal %q", tok.Lexeme)
		}
		return &ast.LiteralFloat{Base: ast.Base{Tok: tok}, Value: v}, nil
	case kaubo.KindString:
		p.advance()
		return &ast.LiteralString{Base: ast.Base{Tok: tok}, Value: tok.Lexeme}, nil
	case kaubo.KindTrue:
		p.advance()
		return &ast.LiteralBool{Base: ast.Base{Tok: tok}, Value: true}, nil
	case kaubo.KindFalse:
		p.advance()
		return &ast.LiteralBool{Base: ast.Base{Tok: tok}, Value: false}, nil
	case kaubo.KindIdentifier:
		p.advance()
		return &ast.VarRef{Base: ast.Base{Tok: tok}, Name: tok.Lexeme}, nil
	case kaubo.KindLParen:
		p.advance()
		inner, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(kaubo.KindRParen, MissingRightParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Base: ast.Base{Tok: tok}, Inner: inner}, nil
	case kaubo.KindPipe:
		return p.parseLambda()
	case kaubo.KindEOF:
		return nil, newError(UnexpectedEndOfInput, tok.Coordinate, "expected expression, got end of input")
	default:
		return nil, newError(UnexpectedToken, tok.Coordinate, "unexpected token %q in expression", tok.Lexeme)
	}
}

// lambda := '|' params? '|' block
func (p *Parser) parseLambda() (*ast.Lambda, error) {
	pipeTok := p.cur
	p.advance() // consume opening '|'

	var params []string
	if !p.curIs(kaubo.KindPipe) {
		for {
			nameTok, err := p.expect(kaubo.KindIdentifier, ExpectedIdentifierInLambdaParams, "identifier in lambda parameters")
			if err != nil {
				return nil, err
			}
			params = append(params, nameTok.Lexeme)
			if !p.curIs(kaubo.KindComma) {
				break
			}
			p.advance()
			if p.curIs(kaubo.KindPipe) {
				return nil, newError(ExpectedCommaOrPipeInLambda, p.cur.Coordinate, "trailing comma not accepted in lambda parameters")
			}
		}
	}
	if _, err := p.expect(kaubo.KindPipe, ExpectedPipe, "'|'"); err != nil {
		return nil, err
	}
	if !p.curIs(kaubo.KindLBrace) {
		return nil, newError(ExpectedLeftBraceInLambdaBody, p.cur.Coordinate, "expected '{' to open lambda body")
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Base: ast.Base{Tok: pipeTok}, Params: params, Body: body}, nil
}
