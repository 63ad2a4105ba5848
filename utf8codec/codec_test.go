// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package utf8codec

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuickByteLength(t *testing.T) {
	cases := []struct {
		b    byte
		want int
		ok   bool
	}{
		{0x41, 1, true},  // 'A'
		{0xC2, 2, true},  // lead of 2-byte seq
		{0xE4, 3, true},  // lead of 3-byte seq ("你")
		{0xF0, 4, true},  // lead of 4-byte seq
		{0x80, 0, false}, // stray continuation byte
		{0xFF, 0, false}, // invalid
	}
	for _, c := range cases {
		n, err := QuickByteLength(c.b)
		if c.ok {
			require.NoError(t, err)
			assert.Equal(t, c.want, n)
		} else {
			assert.Error(t, err)
		}
	}
}

func TestDecodeASCII(t *testing.T) {
	cp, n, err := Decode([]byte("A"), 0)
	require.NoError(t, err)
	assert.Equal(t, uint32('A'), cp)
	assert.Equal(t, 1, n)
}

func TestDecodeMultiByte(t *testing.T) {
	cp, n, err := Decode([]byte("你好"), 0)
	require.NoError(t, err)
	assert.Equal(t, rune(cp), '你')
	assert.Equal(t, 3, n)
}

func TestDecodeIncomplete(t *testing.T) {
	// Two of the three bytes of '你' (0xE4 0xBD 0xA0).
	_, _, err := Decode([]byte{0xE4, 0xBD}, 0)
	assert.Equal(t, ErrIncompleteSequence, err)
}

func TestDecodeInvalidContinuation(t *testing.T) {
	_, _, err := Decode([]byte{0xE4, 0x00, 0xA0}, 0)
	assert.Equal(t, ErrInvalidContinuation, err)
}

func TestDecodeOverlong(t *testing.T) {
	// 0xC0 0x80 is an overlong encoding of NUL.
	_, _, err := Decode([]byte{0xC0, 0x80}, 0)
	assert.Equal(t, ErrOverlongEncoding, err)
}

func TestDecodeInvalidCodePoint(t *testing.T) {
	// 0xF4 0x90 0x80 0x80 decodes to 0x110000, just past the Unicode range.
	_, _, err := Decode([]byte{0xF4, 0x90, 0x80, 0x80}, 0)
	assert.Equal(t, ErrInvalidCodePoint, err)
}

func TestDecodeSurrogateRejected(t *testing.T) {
	// 0xED 0xA0 0x80 would decode to U+D800, a surrogate.
	_, _, err := Decode([]byte{0xED, 0xA0, 0x80}, 0)
	assert.Equal(t, ErrInvalidCodePoint, err)
}

func TestDecodeInvalidPosition(t *testing.T) {
	_, _, err := Decode([]byte("A"), 5)
	assert.Equal(t, ErrInvalidPosition, err)
}

func TestDecodeRoundTripsWithToUTF8(t *testing.T) {
	for cp := uint32(0); cp <= 0x10FFFF; cp += 97 {
		if cp >= 0xD800 && cp <= 0xDFFF {
			continue
		}
		encoded := ToUTF8(cp)
		gotCP, gotLen, err := Decode(encoded, 0)
		require.NoError(t, err)
		assert.Equal(t, cp, gotCP)
		assert.Equal(t, len(encoded), gotLen)
	}
}

func TestToUTF8MatchesStandardLibrary(t *testing.T) {
	for _, r := range []rune{'A', '$', '你', '好', 0x1F600} {
		want := make([]byte, utf8.RuneLen(r))
		utf8.EncodeRune(want, r)
		assert.Equal(t, want, ToUTF8(uint32(r)))
	}
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsDigit('5'))
	assert.False(t, IsDigit('a'))
	assert.True(t, IsHexDigit('f'))
	assert.True(t, IsHexDigit('F'))
	assert.False(t, IsHexDigit('g'))
	assert.True(t, IsIdentifierStart('_'))
	assert.True(t, IsIdentifierStart('z'))
	assert.False(t, IsIdentifierStart('5'))
	assert.True(t, IsIdentifierPart('5'))
	assert.True(t, IsWhitespace(' '))
	assert.False(t, IsWhitespace('\t'))
	assert.True(t, IsTab('\t'))
	assert.True(t, IsNewline('\n'))
	assert.True(t, IsNewline('\r'))
	assert.True(t, IsStringQuote('"'))
	assert.True(t, IsStringQuote('\''))
}
