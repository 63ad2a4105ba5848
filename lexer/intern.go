// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package lexer

import (
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/text/unicode/norm"
)

// Interner deduplicates identifier lexemes so a long-running lexer (the
// lexserver front-end keeps one alive per connection) doesn't allocate a
// fresh string for every repeated occurrence of a common name. It is an
// ambient addition over spec.md's core (SPEC_FULL.md §11): the core lexer
// works without it, but front-ends that care about allocation churn on
// identifier-heavy sources can route Identifier lexemes through it before
// building a token.Token.
//
// Lexemes are normalized to Unicode NFC before interning so that visually
// identical identifiers using different combining-character sequences
// collide onto the same string, matching how most source-language
// specifications define identifier equivalence.
type Interner struct {
	cache *lru.Cache
}

// NewInterner creates an Interner holding up to capacity distinct strings.
func NewInterner(capacity int) *Interner {
	cache, err := lru.New(capacity)
	if err != nil {
		// Only returns an error for capacity <= 0, which is a construction
		// mistake, not a runtime condition callers should have to handle.
		panic(err)
	}
	return &Interner{cache: cache}
}

// Intern returns a canonical string equal to lexeme, reusing a previously
// interned copy when one exists.
func (in *Interner) Intern(lexeme string) string {
	normalized := norm.NFC.String(lexeme)
	if cached, ok := in.cache.Get(normalized); ok {
		return cached.(string)
	}
	in.cache.Add(normalized, normalized)
	return normalized
}
