// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package json

import (
	"strconv"
	"strings"
)

// String renders v back to JSON text, one space after ':' and after ','
// (spec.md §8 scenario 1: `{"a": 123}`). Object members print in the order
// Parse read them; Value carries no sorting behavior of its own.
func (v Value) String() string {
	var out strings.Builder
	v.write(&out)
	return out.String()
}

func (v Value) write(out *strings.Builder) {
	switch v.Kind {
	case ValueNull:
		out.WriteString("null")
	case ValueBool:
		if v.Bool {
			out.WriteString("true")
		} else {
			out.WriteString("false")
		}
	case ValueInteger:
		out.WriteString(strconv.FormatInt(v.Int, 10))
	case ValueFloat:
		out.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
	case ValueString:
		out.WriteByte('"')
		out.WriteString(escape(v.Str))
		out.WriteByte('"')
	case ValueArray:
		out.WriteByte('[')
		for i, e := range v.Array {
			if i > 0 {
				out.WriteString(", ")
			}
			e.write(out)
		}
		out.WriteByte(']')
	case ValueObject:
		out.WriteByte('{')
		for i, m := range v.Object {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteByte('"')
			out.WriteString(escape(m.Key))
			out.WriteString("\": ")
			m.Value.write(out)
		}
		out.WriteByte('}')
	}
}

// escape is unescape's inverse for the handful of bytes JSON requires
// quoted inside a string.
func escape(s string) string {
	var out strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
