// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/kaubo/frontend/kaubo"
	"github.com/probechain/kaubo/lexer"
)

// parseErr feeds src through a fresh Kaubo engine and Parse, requiring the
// result to be a *ParseError so the test can assert on its Code.
func parseErr(t *testing.T, src string) *ParseError {
	e := kaubo.NewEngine(lexer.DefaultConfig())
	require.NoError(t, e.Feed([]byte(src)))
	e.Terminate()
	_, err := Parse(e)
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
	return perr
}

func TestMissingRightParenOnCallArgs(t *testing.T) {
	perr := parseErr(t, "x(1;")
	assert.Equal(t, MissingRightParen, perr.Code)
}

func TestExpectedCommaOrRightParenOnTrailingComma(t *testing.T) {
	perr := parseErr(t, "x(1,);")
	assert.Equal(t, ExpectedCommaOrRightParen, perr.Code)
}

func TestExpectedIdentifierAfterDotOnNonIdentifier(t *testing.T) {
	perr := parseErr(t, "x.123;")
	assert.Equal(t, ExpectedIdentifierAfterDot, perr.Code)
}

func TestExpectedIdentifierInLambdaParamsOnNonIdentifier(t *testing.T) {
	perr := parseErr(t, "|1| { return 1; };")
	assert.Equal(t, ExpectedIdentifierInLambdaParams, perr.Code)
}

func TestExpectedCommaOrPipeInLambdaOnTrailingComma(t *testing.T) {
	perr := parseErr(t, "|a,| { return a; };")
	assert.Equal(t, ExpectedCommaOrPipeInLambda, perr.Code)
}

func TestExpectedPipeOnMissingSeparator(t *testing.T) {
	perr := parseErr(t, "|a b| { return a; };")
	assert.Equal(t, ExpectedPipe, perr.Code)
}
