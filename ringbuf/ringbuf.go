// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ringbuf implements the single concurrency boundary of the lexer
// framework: a fixed-capacity circular byte queue between a producer (the
// feeder of source bytes) and a consumer (the lexer). It is the only
// component in the framework that needs to be safe for concurrent use.
package ringbuf

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Push when the buffer has already been closed.
var ErrClosed = errors.New("ringbuf: push on closed buffer")

// ErrEmptyAndClosed is returned by Pop when the buffer is both empty and
// closed: there is nothing left to read and nothing more will ever arrive.
var ErrEmptyAndClosed = errors.New("ringbuf: pop on empty, closed buffer")

// Buffer is a bounded, circular FIFO of bytes. The zero value is not usable;
// construct one with New. A Buffer is safe for concurrent use by any number
// of producers and consumers, though the framework's intended shape is a
// single producer paired with a single consumer (the Lexer).
type Buffer struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	data   []byte
	head   int // index of the oldest byte
	size   int // number of live bytes
	closed bool
}

// New creates a Buffer with the given fixed capacity. Capacity must be at
// least 1.
func New(capacity int) *Buffer {
	if capacity < 1 {
		violate("ringbuf: capacity must be >= 1")
	}
	b := &Buffer{data: make([]byte, capacity)}
	b.notFull = sync.NewCond(&b.mu)
	b.notEmpty = sync.NewCond(&b.mu)
	return b
}

// Capacity returns the fixed capacity the Buffer was constructed with.
func (b *Buffer) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Size returns the number of bytes currently queued.
func (b *Buffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// IsSizeAtLeast reports whether at least n bytes are currently queued. It is
// purely observational and never blocks.
func (b *Buffer) IsSizeAtLeast(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size >= n
}

// Closed reports whether Close has been called.
func (b *Buffer) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Push appends one byte, blocking while the buffer is full and not closed.
// It returns ErrClosed if the buffer was already closed, whether or not it
// was full at the time.
func (b *Buffer) Push(c byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.size == len(b.data) && !b.closed {
		b.notFull.Wait()
	}
	if b.closed {
		return ErrClosed
	}
	tail := (b.head + b.size) % len(b.data)
	b.data[tail] = c
	b.size++
	b.notEmpty.Signal()
	return nil
}

// PushAll pushes every byte in p, in order, blocking as needed. It stops and
// returns ErrClosed at the first byte it cannot push because the buffer has
// been closed.
func (b *Buffer) PushAll(p []byte) error {
	for _, c := range p {
		if err := b.Push(c); err != nil {
			return err
		}
	}
	return nil
}

// Pop removes and returns the oldest byte, blocking while the buffer is
// empty and not closed. It returns ErrEmptyAndClosed once the buffer is
// drained and closed.
func (b *Buffer) Pop() (byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.size == 0 && !b.closed {
		b.notEmpty.Wait()
	}
	if b.size == 0 {
		return 0, ErrEmptyAndClosed
	}
	c := b.data[b.head]
	b.head = (b.head + 1) % len(b.data)
	b.size--
	b.notFull.Signal()
	return c, nil
}

// TryPop removes and returns the oldest byte without blocking. The second
// return value is false if the buffer was empty.
func (b *Buffer) TryPop() (byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.size == 0 {
		return 0, false
	}
	c := b.data[b.head]
	b.head = (b.head + 1) % len(b.data)
	b.size--
	b.notFull.Signal()
	return c, true
}

// TryPeek returns the oldest byte without removing it. The second return
// value is false if the buffer was empty.
func (b *Buffer) TryPeek() (byte, bool) {
	return b.TryPeekAt(0)
}

// TryPeekAt returns the byte at offset bytes past the oldest byte without
// removing anything. It requires offset < Size(); otherwise it returns
// false. TryPeekAt never blocks.
func (b *Buffer) TryPeekAt(offset int) (byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if offset < 0 || offset >= b.size {
		return 0, false
	}
	idx := (b.head + offset) % len(b.data)
	return b.data[idx], true
}

// Close marks the buffer as terminated: no further Push will succeed, but a
// consumer may still Pop or TryPeek whatever bytes remain. Close is
// idempotent and wakes every blocked Push and Pop.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.notFull.Broadcast()
	b.notEmpty.Broadcast()
}
