// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package parser

import (
	"github.com/probechain/kaubo/frontend/kaubo"
	"github.com/probechain/kaubo/token"
)

// precedence is a binding power in the Pratt table. Higher binds tighter.
type precedence int

// infixRule is one entry of the fixed precedence/associativity table
// spec.md §4.7 gives as example values. '.' and '(' are not listed here —
// they are handled by the dedicated postfix loop, never by the generic
// infix climb.
type infixRule struct {
	prec  precedence
	right bool
}

var infixTable = map[token.Kind]infixRule{
	kaubo.KindStar:         {300, false},
	kaubo.KindSlash:        {300, false},
	kaubo.KindPlus:         {200, false},
	kaubo.KindMinus:        {200, false},
	kaubo.KindEqualEqual:   {100, false},
	kaubo.KindBangEqual:    {100, false},
	kaubo.KindLess:         {100, false},
	kaubo.KindGreater:      {100, false},
	kaubo.KindLessEqual:    {100, false},
	kaubo.KindGreaterEqual: {100, false},
	kaubo.KindAnd:          {80, false},
	kaubo.KindPipe:         {70, false},
	kaubo.KindOr:           {60, false},
	kaubo.KindEqual:        {50, true},
}

const precLowest precedence = 0

// operatorText returns the literal spelling used when rendering a Binary
// node's Operator field. It is just the lexeme for every kind in
// infixTable, so this exists mainly for readability at call sites.
func operatorText(tok token.Token) string { return tok.Lexeme }
