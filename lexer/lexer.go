// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

// Package lexer orchestrates the ring buffer, the UTF-8 codec, and the
// state-machine manager into the streaming multi-machine tokenizer spec.md
// §4.5 describes. Engine is generic over any front-end's token.Vocabulary:
// a front-end registers its fsm.Machine set and gets a Token stream back.
package lexer

import (
	"github.com/probechain/kaubo/fsm"
	"github.com/probechain/kaubo/ringbuf"
	"github.com/probechain/kaubo/token"
	"github.com/probechain/kaubo/utf8codec"
)

// Engine is the streaming lexer. The zero value is not usable; construct
// one with New.
type Engine struct {
	ring    *ringbuf.Buffer
	vocab   token.Vocabulary
	manager *fsm.Manager
	cfg     Config

	cursor      token.Coordinate
	tokenStart  token.Coordinate
	tokenLength int // bytes already peeked into the manager for this attempt

	registeredLocked bool

	interner      *Interner
	internedKinds map[token.Kind]bool
}

// New creates an Engine backed by a ring buffer of cfg.RingCapacity bytes,
// tokenizing according to vocab.
func New(cfg Config, vocab token.Vocabulary) *Engine {
	token.AssertVocabulary(vocab)
	return &Engine{
		ring:    ringbuf.New(cfg.RingCapacity),
		vocab:   vocab,
		manager: fsm.NewManager(),
		cfg:     cfg,
		cursor:  token.Coordinate{Line: 1, Column: 1},
	}
}

// RegisterMachine adds m to the manager. Every machine must be registered
// before the first call to NextToken (spec.md §4.5); registering afterward
// is a contract violation and panics, matching the fatal-on-programmer-error
// policy spec.md §7.3 sets for this class of misuse.
func (e *Engine) RegisterMachine(m *fsm.Machine) {
	if e.registeredLocked {
		panic("lexer: RegisterMachine called after lexing has begun")
	}
	e.manager.AddMachine(m)
}

// InternKinds routes every future token of the given kinds through in
// before it's handed back from NextToken, so repeated lexemes (identifiers,
// typically) share one underlying string instead of each allocating its
// own. A front-end calls this once after New, naming whichever of its own
// token.Kind values are worth deduplicating; kinds outside that set are
// left exactly as popBytes produced them.
func (e *Engine) InternKinds(in *Interner, kinds ...token.Kind) {
	e.interner = in
	e.internedKinds = make(map[token.Kind]bool, len(kinds))
	for _, k := range kinds {
		e.internedKinds[k] = true
	}
}

// Feed appends data to the ring buffer, blocking while it is full. It
// returns ringbuf.ErrClosed if Terminate has already been called.
func (e *Engine) Feed(data []byte) error {
	return e.ring.PushAll(data)
}

// Terminate marks the input stream as ended. Subsequent Feed calls fail.
func (e *Engine) Terminate() {
	e.ring.Close()
}

// EndOfInput reports whether the stream is terminated and fully drained:
// no more tokens, partial or otherwise, remain to be produced.
func (e *Engine) EndOfInput() bool {
	return e.ring.Closed() && e.ring.Size() == 0 && e.tokenLength == 0
}

// NextToken returns the next token, or ok=false if input is exhausted but
// not yet terminated (the caller should Feed more and retry) or if input is
// exhausted and terminated (truly done; every subsequent call also returns
// false).
func (e *Engine) NextToken() (token.Token, bool) {
	e.registeredLocked = true
	for {
		if e.tokenLength == 0 {
			e.tokenStart = e.cursor
		}

		lead, gotLead := e.ring.TryPeekAt(e.tokenLength)
		if !gotLead {
			if e.ring.Closed() {
				return e.finalize()
			}
			return token.Token{}, false
		}

		cpLen, decodeErr := utf8codec.QuickByteLength(lead)
		decodeFailed := decodeErr != nil
		if !decodeFailed && !e.ring.IsSizeAtLeast(e.tokenLength+cpLen) {
			if !e.ring.Closed() {
				return token.Token{}, false
			}
			decodeFailed = true // terminated with an incomplete trailing codepoint
		}

		if decodeFailed {
			// lead is not a usable UTF-8 leading byte here, either because
			// it structurally isn't one or because the stream ended before
			// its continuation bytes arrived. Anything already accumulated
			// in this attempt stands on its own; the bad byte itself is
			// left for the next NextToken call to surface as Utf8Error.
			if e.tokenLength == 0 {
				return e.emitUtf8Error()
			}
			if tok, ok := e.resolveAttempt(); ok {
				return tok, true
			}
			continue
		}

		rejected := false
		for i := 0; i < cpLen; i++ {
			b, _ := e.ring.TryPeekAt(e.tokenLength)
			if e.manager.ProcessEvent(b) {
				e.tokenLength++
			} else {
				rejected = true
				break
			}
		}
		if !rejected {
			// Every machine that's still live accepted the whole codepoint;
			// keep accumulating instead of evaluating a winner yet.
			continue
		}

		if tok, ok := e.resolveAttempt(); ok {
			return tok, true
		}
		// resolveAttempt folded a whitespace/tab/newline winner into the
		// cursor and reset the attempt; loop back for the next one.
	}
}

// resolveAttempt calls select_best_match on the manager and, if there is a
// winner, either folds whitespace/tab/newline into cursor bookkeeping (and
// reports ok=false so NextToken's loop continues) or emits the winning
// token. If there is no winner at all, it emits the accumulated bytes (or
// the one rejected byte) as an InvalidToken via emitInvalid.
func (e *Engine) resolveAttempt() (token.Token, bool) {
	kind, matchLength, hasWinner := e.manager.SelectBestMatch()
	if !hasWinner {
		return e.emitInvalid()
	}

	if e.vocab.IsWhitespace(kind) || e.vocab.IsTab(kind) || e.vocab.IsNewline(kind) {
		e.popMatchAndFoldCursor(kind, matchLength)
		e.resetAttempt()
		return token.Token{}, false
	}
	return e.emitMatch(kind, matchLength)
}

// emitMatch pops matchLength bytes as the winning lexeme, advances the
// cursor past them (a multi-line match — a block comment, or a string
// literal with a newline in its body — moves the cursor onto the line its last
// byte ended on, not just sideways), and resets manager state for the next
// token.
func (e *Engine) emitMatch(kind token.Kind, matchLength int) (token.Token, bool) {
	lexeme := e.popBytes(matchLength)
	coord := e.tokenStart
	e.cursor = advanceCursor(e.cursor, lexeme, e.cfg.TabStride)
	e.resetAttempt()
	if e.interner != nil && e.internedKinds[kind] {
		lexeme = e.interner.Intern(lexeme)
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Coordinate: coord}, true
}

// emitInvalid pops every byte accumulated in the current failed attempt and
// emits it as a single InvalidToken (spec.md §4.5 step 4, §7.1). If nothing
// was accumulated — the very first byte of this attempt was rejected by
// every machine — it pops that one otherwise-unconsumed byte instead, so
// the engine always makes progress.
func (e *Engine) emitInvalid() (token.Token, bool) {
	n := e.tokenLength
	if n == 0 {
		n = 1
	}
	lexeme := e.popBytes(n)
	coord := e.tokenStart
	e.cursor = advanceCursor(e.cursor, lexeme, e.cfg.TabStride)
	e.resetAttempt()
	return token.Token{Kind: e.vocab.InvalidToken(), Lexeme: lexeme, Coordinate: coord}, true
}

// emitUtf8Error pops exactly one byte and emits it as a Utf8Error token
// (spec.md §4.5 step 4, §8 scenario 4).
func (e *Engine) emitUtf8Error() (token.Token, bool) {
	lexeme := e.popBytes(1)
	coord := e.cursor
	e.cursor.Column++
	return token.Token{Kind: e.vocab.Utf8Error(), Lexeme: lexeme, Coordinate: coord}, true
}

// popMatchAndFoldCursor pops a winning whitespace/tab/newline match and
// folds it into cursor bookkeeping instead of emitting a token.
func (e *Engine) popMatchAndFoldCursor(kind token.Kind, matchLength int) {
	lexeme := e.popBytes(matchLength)
	switch {
	case e.vocab.IsNewline(kind):
		e.cursor.Line++
		e.cursor.Column = 1
	case e.vocab.IsTab(kind):
		e.cursor.Column += e.cfg.TabStride
	default: // whitespace
		e.cursor.Column += uint32(codepointCount(lexeme))
	}
}

// popBytes pops exactly n bytes off the ring and returns them as a string.
func (e *Engine) popBytes(n int) string {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b, ok := e.ring.TryPop()
		if !ok {
			panic("lexer: popBytes: fewer bytes available than the manager reported matched")
		}
		buf[i] = b
	}
	return string(buf)
}

// resetAttempt clears per-attempt bookkeeping and resets the manager so the
// next NextToken call starts a fresh attempt.
func (e *Engine) resetAttempt() {
	e.tokenLength = 0
	e.manager.Reset()
}

// finalize implements spec.md §4.5's finalization rule: once the ring is
// drained and closed, emit one last token for whatever bytes remain in the
// current attempt, then report end-of-input forever after.
func (e *Engine) finalize() (token.Token, bool) {
	if e.tokenLength == 0 {
		return token.Token{}, false
	}
	if tok, ok := e.resolveAttempt(); ok {
		return tok, true
	}
	// resolveAttempt folded whitespace/tab/newline into the cursor and left
	// tokenLength at 0; there is nothing left to finalize.
	return token.Token{}, false
}

// codepointCount returns the number of UTF-8 codepoints in s, used for
// column advancement (spec.md §3: "column counts UTF-8 codepoints, not
// bytes"). Error-token lexemes are raw bytes that may not be valid UTF-8;
// undecodable bytes count as one column each.
func codepointCount(s string) int {
	n := 0
	for i := 0; i < len(s); {
		length, err := utf8codec.QuickByteLength(s[i])
		if err != nil || i+length > len(s) {
			i++
		} else {
			i += length
		}
		n++
	}
	return n
}

// advanceCursor walks lexeme codepoint by codepoint and returns the
// coordinate that follows it, honoring embedded newlines and tabs the same
// way popMatchAndFoldCursor does for a dedicated Newline/Tab match. Most
// lexemes (identifiers, numbers, operators) never contain either, so this
// degenerates to the plain column-add case; block comments and string
// literals are the machines in this package whose match can span lines.
func advanceCursor(c token.Coordinate, lexeme string, tabStride uint32) token.Coordinate {
	for i := 0; i < len(lexeme); {
		length, err := utf8codec.QuickByteLength(lexeme[i])
		if err != nil || i+length > len(lexeme) {
			length = 1
		}
		switch lexeme[i] {
		case '\n':
			c.Line++
			c.Column = 1
		case '\t':
			c.Column += tabStride
		default:
			c.Column++
		}
		i += length
	}
	return c
}
