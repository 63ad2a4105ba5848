// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package json

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/probechain/kaubo/lexer"
	"github.com/probechain/kaubo/token"
)

// ParseError is the single error a Parse can return: a source coordinate
// plus a human-readable message. JSON's grammar has no operator table to
// climb, so there is no ErrorCode enum here the way parser.ParseError has
// one — just where and what.
type ParseError struct {
	Coordinate token.Coordinate
	Message    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Coordinate, e.Message)
}

func newError(coord token.Coordinate, format string, args ...interface{}) *ParseError {
	return &ParseError{Coordinate: coord, Message: fmt.Sprintf(format, args...)}
}

// parser holds the token-navigation state for one recursive-descent run,
// mirroring the cur/peek-free single-token-lookahead style of the Pratt
// parser's own advance, since JSON's grammar never needs to look two
// tokens ahead.
type parser struct {
	eng *lexer.Engine
	cur token.Token
}

// Parse lexes and parses a complete JSON document from eng, which must
// already have had its input Fed and Terminated.
func Parse(eng *lexer.Engine) (Value, error) {
	p := &parser{eng: eng}
	p.advance()
	v, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	if p.cur.Kind != KindEOF {
		return Value{}, newError(p.cur.Coordinate, "unexpected trailing token %q", p.cur.Lexeme)
	}
	return v, nil
}

func (p *parser) advance() {
	tok, ok := p.eng.NextToken()
	if !ok {
		p.cur = token.Token{Kind: KindEOF, Coordinate: p.cur.Coordinate}
		return
	}
	p.cur = tok
}

func (p *parser) expect(k token.Kind, what string) (token.Token, error) {
	if p.cur.Kind == k {
		tok := p.cur
		p.advance()
		return tok, nil
	}
	return token.Token{}, newError(p.cur.Coordinate, "expected %s, got %q", what, p.cur.Lexeme)
}

func (p *parser) parseValue() (Value, error) {
	switch p.cur.Kind {
	case KindLeftCurly:
		return p.parseObject()
	case KindLeftBracket:
		return p.parseArray()
	case KindString:
		tok := p.cur
		p.advance()
		s, err := unescape(tok.Lexeme)
		if err != nil {
			return Value{}, newError(tok.Coordinate, "%s", err)
		}
		return Value{Kind: ValueString, Str: s}, nil
	case KindInteger:
		tok := p.cur
		p.advance()
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return Value{}, newError(tok.Coordinate, "invalid integer %q", tok.Lexeme)
		}
		return Value{Kind: ValueInteger, Int: n, Num: float64(n)}, nil
	case KindFloat:
		tok := p.cur
		p.advance()
		n, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return Value{}, newError(tok.Coordinate, "invalid number %q", tok.Lexeme)
		}
		return Value{Kind: ValueFloat, Num: n}, nil
	case KindTrue:
		p.advance()
		return Value{Kind: ValueBool, Bool: true}, nil
	case KindFalse:
		p.advance()
		return Value{Kind: ValueBool, Bool: false}, nil
	case KindNull:
		p.advance()
		return Value{Kind: ValueNull}, nil
	case KindEOF:
		return Value{}, newError(p.cur.Coordinate, "unexpected end of input, expected a value")
	default:
		return Value{}, newError(p.cur.Coordinate, "unexpected token %q, expected a value", p.cur.Lexeme)
	}
}

func (p *parser) parseObject() (Value, error) {
	p.advance() // consume '{'
	v := Value{Kind: ValueObject}
	if p.cur.Kind == KindRightCurly {
		p.advance()
		return v, nil
	}
	for {
		keyTok, err := p.expect(KindString, "object key")
		if err != nil {
			return Value{}, err
		}
		key, err := unescape(keyTok.Lexeme)
		if err != nil {
			return Value{}, newError(keyTok.Coordinate, "%s", err)
		}
		if _, err := p.expect(KindColon, "':'"); err != nil {
			return Value{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		v.Object = append(v.Object, Member{Key: key, Value: val})
		if p.cur.Kind == KindComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(KindRightCurly, "'}'"); err != nil {
		return Value{}, err
	}
	return v, nil
}

func (p *parser) parseArray() (Value, error) {
	p.advance() // consume '['
	v := Value{Kind: ValueArray}
	if p.cur.Kind == KindRightBracket {
		p.advance()
		return v, nil
	}
	for {
		elem, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		v.Array = append(v.Array, elem)
		if p.cur.Kind == KindComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(KindRightBracket, "']'"); err != nil {
		return Value{}, err
	}
	return v, nil
}

// unescape strips the surrounding quotes from a matched String lexeme and
// resolves JSON's backslash escapes (the lexer's EscapedString machine only
// tracks where the string ends; it does not interpret escape bytes).
func unescape(lexeme string) (string, error) {
	body := lexeme[1 : len(lexeme)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			out.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("unterminated escape sequence")
		}
		switch body[i] {
		case '"':
			out.WriteByte('"')
		case '\\':
			out.WriteByte('\\')
		case '/':
			out.WriteByte('/')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'u':
			if i+4 >= len(body) {
				return "", fmt.Errorf("truncated \\u escape")
			}
			code, err := strconv.ParseUint(body[i+1:i+5], 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid \\u escape %q", body[i+1:i+5])
			}
			out.WriteRune(rune(code))
			i += 4
		default:
			return "", fmt.Errorf("invalid escape character %q", body[i])
		}
	}
	return out.String(), nil
}
