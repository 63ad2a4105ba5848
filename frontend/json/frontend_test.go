// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/kaubo/lexer"
	"github.com/probechain/kaubo/token"
)

func newTestEngine(t *testing.T, src string) *lexer.Engine {
	e := NewEngine(lexer.DefaultConfig())
	require.NoError(t, e.Feed([]byte(src)))
	e.Terminate()
	return e
}

func TestLexMinimalObject(t *testing.T) {
	e := newTestEngine(t, `{"a":123}`)

	want := []token.Token{
		{Kind: KindLeftCurly, Lexeme: "{", Coordinate: token.Coordinate{Line: 1, Column: 1}},
		{Kind: KindString, Lexeme: `"a"`, Coordinate: token.Coordinate{Line: 1, Column: 2}},
		{Kind: KindColon, Lexeme: ":", Coordinate: token.Coordinate{Line: 1, Column: 5}},
		{Kind: KindInteger, Lexeme: "123", Coordinate: token.Coordinate{Line: 1, Column: 6}},
		{Kind: KindRightCurly, Lexeme: "}", Coordinate: token.Coordinate{Line: 1, Column: 9}},
	}
	for i, w := range want {
		tok, ok := e.NextToken()
		require.True(t, ok, "token %d", i)
		assert.Equal(t, w, tok, "token %d", i)
	}
	_, ok := e.NextToken()
	assert.False(t, ok)
}

func TestParseAndRoundTripMinimalObject(t *testing.T) {
	e := newTestEngine(t, `{"a":123}`)
	v, err := Parse(e)
	require.NoError(t, err)

	require.Equal(t, ValueObject, v.Kind)
	require.Len(t, v.Object, 1)
	assert.Equal(t, "a", v.Object[0].Key)
	assert.Equal(t, int64(123), v.Object[0].Value.Int)

	assert.Equal(t, `{"a": 123}`, v.String())
}

func TestParseNestedArrayAndTypes(t *testing.T) {
	e := newTestEngine(t, `{"x": [1, 2.5, true, false, null, "hi"], "y": -3}`)
	v, err := Parse(e)
	require.NoError(t, err)

	arr, ok := v.Get("x")
	require.True(t, ok)
	require.Equal(t, ValueArray, arr.Kind)
	require.Len(t, arr.Array, 6)
	assert.Equal(t, int64(1), arr.Array[0].Int)
	assert.Equal(t, 2.5, arr.Array[1].Num)
	assert.True(t, arr.Array[2].Bool)
	assert.False(t, arr.Array[3].Bool)
	assert.Equal(t, ValueNull, arr.Array[4].Kind)
	assert.Equal(t, "hi", arr.Array[5].Str)

	y, ok := v.Get("y")
	require.True(t, ok)
	assert.Equal(t, int64(-3), y.Int)
}

func TestParseStringEscapes(t *testing.T) {
	e := newTestEngine(t, `"a\"b\\c\ndé"`)
	v, err := Parse(e)
	require.NoError(t, err)
	assert.Equal(t, "a\"b\\c\ndé", v.Str)
}

func TestParseExponentFloat(t *testing.T) {
	e := newTestEngine(t, `1.5e10`)
	v, err := Parse(e)
	require.NoError(t, err)
	assert.Equal(t, ValueFloat, v.Kind)
	assert.InDelta(t, 1.5e10, v.Num, 1)
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	e := newTestEngine(t, `123 456`)
	_, err := Parse(e)
	require.Error(t, err)
}

func TestParseMissingColonIsError(t *testing.T) {
	e := newTestEngine(t, `{"a" 1}`)
	_, err := Parse(e)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
