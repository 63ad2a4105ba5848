// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package kaubo

import (
	"fmt"
	"io"
	"strings"

	"github.com/probechain/kaubo/ast"
)

// Printer is a Listener that renders an indented tree as productions are
// entered and exited. It never walks the tree itself — every line it writes
// comes from a callback the parser drives, so the indentation counter
// tracks nesting the same way the parser's own recursion does.
type Printer struct {
	ast.BaseListener
	w      io.Writer
	depth  int
	indent string
}

// NewPrinter returns a Printer writing to w, indenting each level with
// indent (typically two spaces).
func NewPrinter(w io.Writer, indent string) *Printer {
	return &Printer{w: w, indent: indent}
}

func (p *Printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(p.indent, p.depth), fmt.Sprintf(format, args...))
}

func (p *Printer) EnterModule(*ast.Module) {
	p.line("Module")
	p.depth++
}
func (p *Printer) ExitModule(*ast.Module) { p.depth-- }

func (p *Printer) EnterBlock(*ast.Block) {
	p.line("Block")
	p.depth++
}
func (p *Printer) ExitBlock(*ast.Block) { p.depth-- }

func (p *Printer) EnterVarDecl(v *ast.VarDecl) {
	p.line("VarDecl %s", v.Name)
	p.depth++
}
func (p *Printer) ExitVarDecl(*ast.VarDecl) { p.depth-- }

func (p *Printer) EnterIf(*ast.If) {
	p.line("If")
	p.depth++
}
func (p *Printer) ExitIf(*ast.If) { p.depth-- }

func (p *Printer) EnterWhile(*ast.While) {
	p.line("While")
	p.depth++
}
func (p *Printer) ExitWhile(*ast.While) { p.depth-- }

func (p *Printer) EnterFor(*ast.For) {
	p.line("For")
	p.depth++
}
func (p *Printer) ExitFor(*ast.For) { p.depth-- }

func (p *Printer) EnterReturn(*ast.Return) {
	p.line("Return")
	p.depth++
}
func (p *Printer) ExitReturn(*ast.Return) { p.depth-- }

func (p *Printer) EnterExprStmt(*ast.ExprStmt) {
	p.line("ExprStmt")
	p.depth++
}
func (p *Printer) ExitExprStmt(*ast.ExprStmt) { p.depth-- }

func (p *Printer) EnterExpression(e ast.Expression) {
	p.line("%s %s", exprTag(e), e.String())
	p.depth++
}
func (p *Printer) ExitExpression(ast.Expression) { p.depth-- }

// exprTag names the concrete expression kind for the printer line, since
// String() alone collapses everything to the same parenthesised form.
func exprTag(e ast.Expression) string {
	switch e.(type) {
	case *ast.LiteralInt:
		return "LiteralInt"
	case *ast.LiteralFloat:
		return "LiteralFloat"
	case *ast.LiteralBool:
		return "LiteralBool"
	case *ast.LiteralString:
		return "LiteralString"
	case *ast.VarRef:
		return "VarRef"
	case *ast.Binary:
		return "Binary"
	case *ast.Unary:
		return "Unary"
	case *ast.Grouping:
		return "Grouping"
	case *ast.FunctionCall:
		return "FunctionCall"
	case *ast.MemberAccess:
		return "MemberAccess"
	case *ast.Lambda:
		return "Lambda"
	case *ast.Assign:
		return "Assign"
	default:
		return "Expression"
	}
}
