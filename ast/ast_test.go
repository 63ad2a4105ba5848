// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package ast

import (
	"testing"

	"github.com/probechain/kaubo/token"
	"github.com/stretchr/testify/assert"
)

func tok(lexeme string) token.Token {
	return token.Token{Lexeme: lexeme, Coordinate: token.Coordinate{Line: 1, Column: 1}}
}

func TestBinaryString(t *testing.T) {
	n := &Binary{
		Base:     Base{Tok: tok("+")},
		Left:     &LiteralInt{Base: Base{Tok: tok("1")}, Value: 1},
		Operator: "+",
		Right:    &LiteralInt{Base: Base{Tok: tok("2")}, Value: 2},
	}
	assert.Equal(t, "(1 + 2)", n.String())
}

func TestIfWithElseIfChain(t *testing.T) {
	cond := &VarRef{Base: Base{Tok: tok("x")}, Name: "x"}
	then := &Block{Base: Base{Tok: tok("{")}}
	elseIf := &If{
		Base: Base{Tok: tok("if")},
		Cond: &VarRef{Base: Base{Tok: tok("y")}, Name: "y"},
		Then: &Block{Base: Base{Tok: tok("{")}},
	}
	n := &If{Base: Base{Tok: tok("if")}, Cond: cond, Then: then, Else: elseIf}
	assert.Equal(t, "if x { } else if y { }", n.String())
}

func TestForHeaderRendersEmptyClauses(t *testing.T) {
	body := &Block{Base: Base{Tok: tok("{")}}
	n := &For{Base: Base{Tok: tok("for")}, Body: body}
	assert.Equal(t, "for ( ; ) { }", n.String())
}

func TestLambdaString(t *testing.T) {
	body := &Block{Base: Base{Tok: tok("{")}, Statements: []Statement{
		&Return{Base: Base{Tok: tok("return")}, Value: &VarRef{Base: Base{Tok: tok("a")}, Name: "a"}},
	}}
	n := &Lambda{Base: Base{Tok: tok("|")}, Params: []string{"a", "b"}, Body: body}
	assert.Equal(t, "|a, b| { return a; }", n.String())
}

func TestModuleCoordinateFallsBackWhenEmpty(t *testing.T) {
	m := &Module{}
	assert.Equal(t, token.Coordinate{Line: 1, Column: 1}, m.Coordinate())
}

func TestBroadcasterFansOutInOrder(t *testing.T) {
	var order []string
	l1 := recorder{name: "l1", order: &order}
	l2 := recorder{name: "l2", order: &order}
	b := NewBroadcaster(l1, l2)

	b.EnterModule(&Module{})
	assert.Equal(t, []string{"l1", "l2"}, order)
}

type recorder struct {
	BaseListener
	name  string
	order *[]string
}

func (r recorder) EnterModule(*Module) { *r.order = append(*r.order, r.name) }
