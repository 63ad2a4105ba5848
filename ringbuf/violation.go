// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package ringbuf

import (
	"fmt"

	"github.com/go-stack/stack"
)

// ContractViolation is the panic value for misuse this package treats as a
// programmer error rather than a runtime condition a caller should recover
// from (spec.md §7.3) — constructing a Buffer with a non-positive capacity,
// for instance. It carries the call stack at the point of violation so a
// recovering caller (cmd/lexserver's request handler recovers around the
// whole tokenize call) can log exactly where the misuse originated.
type ContractViolation struct {
	Message string
	Stack   stack.CallStack
}

func (v *ContractViolation) Error() string {
	return fmt.Sprintf("%s\n%+v", v.Message, v.Stack)
}

func violate(format string, args ...interface{}) {
	panic(&ContractViolation{
		Message: fmt.Sprintf(format, args...),
		Stack:   stack.Trace().TrimRuntime(),
	})
}
