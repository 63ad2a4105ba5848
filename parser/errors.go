// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package parser

import (
	"fmt"

	"github.com/probechain/kaubo/token"
)

// ErrorCode enumerates the parse error kinds the grammar can surface
// (spec.md §6). DivisionByZero is reserved for evaluators layered on top of
// this AST and is never produced by Parse itself.
type ErrorCode int

const (
	UnexpectedToken ErrorCode = iota
	UnexpectedEndOfInput
	InvalidNumberFormat
	MissingRightParen
	MissingRightBrace
	ExpectedCommaOrRightParen
	ExpectedIdentifierAfterDot
	ExpectedPipe
	ExpectedIdentifierInLambdaParams
	ExpectedCommaOrPipeInLambda
	ExpectedLeftBraceInLambdaBody
	DivisionByZero
)

func (c ErrorCode) String() string {
	switch c {
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case InvalidNumberFormat:
		return "InvalidNumberFormat"
	case MissingRightParen:
		return "MissingRightParen"
	case MissingRightBrace:
		return "MissingRightBrace"
	case ExpectedCommaOrRightParen:
		return "ExpectedCommaOrRightParen"
	case ExpectedIdentifierAfterDot:
		return "ExpectedIdentifierAfterDot"
	case ExpectedPipe:
		return "ExpectedPipe"
	case ExpectedIdentifierInLambdaParams:
		return "ExpectedIdentifierInLambdaParams"
	case ExpectedCommaOrPipeInLambda:
		return "ExpectedCommaOrPipeInLambda"
	case ExpectedLeftBraceInLambdaBody:
		return "ExpectedLeftBraceInLambdaBody"
	case DivisionByZero:
		return "DivisionByZero"
	default:
		return "Unknown"
	}
}

// ParseError is the single error value Parse can return. Unlike the
// teacher's parser, which collects errors and attempts recovery, this
// parser returns the first error and stops (spec.md §4.7, §7.2): there is
// no partial AST to salvage, and no skipTo-style recovery loop.
type ParseError struct {
	Code       ErrorCode
	Coordinate token.Coordinate
	Message    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Coordinate, e.Code, e.Message)
}

func newError(code ErrorCode, coord token.Coordinate, format string, args ...interface{}) *ParseError {
	return &ParseError{Code: code, Coordinate: coord, Message: fmt.Sprintf(format, args...)}
}
