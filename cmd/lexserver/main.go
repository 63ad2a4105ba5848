// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

// Command lexserver exposes the lexer engine over HTTP: POST /tokenize
// returns a complete token list for a source string, and GET /ws streams
// tokens back over a websocket as they're produced, one frame at a time,
// demonstrating the ring buffer's producer/consumer boundary across a real
// transport instead of an in-process goroutine (spec.md §5).
//
// Usage:
//
//	lexserver [-addr :8080] [-trace trace.log.snappy]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	jsonfe "github.com/probechain/kaubo/frontend/json"
	kaubofe "github.com/probechain/kaubo/frontend/kaubo"
	"github.com/probechain/kaubo/fsm"
	"github.com/probechain/kaubo/lexer"
	"github.com/probechain/kaubo/ringbuf"
	"github.com/probechain/kaubo/token"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	tracePath := flag.String("trace", "lexserver.trace.snappy", "append-only compressed request trace log")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	trace, err := newTraceLog(*tracePath)
	if err != nil {
		logger.Error("opening trace log", "error", err)
		os.Exit(1)
	}
	defer trace.Close()

	srv := &server{log: logger, trace: trace}

	router := httprouter.New()
	router.POST("/tokenize", srv.handleTokenize)
	router.GET("/ws", srv.handleWebsocket)

	handler := cors.Default().Handler(router)

	logger.Info("lexserver listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// server holds the shared state every request handler needs: a logger and
// the append-only trace log. There is no other mutable state — each request
// gets its own lexer.Engine, so concurrent requests never share one.
type server struct {
	log   *slog.Logger
	trace *traceLog

	upgrader websocket.Upgrader
}

type tokenizeRequest struct {
	Source   string `json:"source"`
	Frontend string `json:"frontend"` // "kaubo" or "json"
}

type tokenView struct {
	Kind       uint8  `json:"kind"`
	Name       string `json:"name"`
	Lexeme     string `json:"lexeme"`
	Coordinate string `json:"coordinate"`
}

type tokenizeResponse struct {
	RequestID string      `json:"request_id"`
	Tokens    []tokenView `json:"tokens"`
}

// newEngineAndVocab builds the engine for the requested front-end, returning
// a closure that names a token.Kind using that front-end's own Vocabulary.
func newEngineAndVocab(cfg lexer.Config, frontend string) (*lexer.Engine, func(token.Kind) string, error) {
	switch frontend {
	case "", "kaubo":
		return kaubofe.NewEngine(cfg), kaubofe.Vocabulary{}.Name, nil
	case "json":
		return jsonfe.NewEngine(cfg), jsonfe.Vocabulary{}.Name, nil
	default:
		return nil, nil, fmt.Errorf("unknown frontend %q", frontend)
	}
}

func (s *server) handleTokenize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := uuid.New().String()
	start := time.Now()

	var req tokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tokens, err := s.withRecover(requestID, func() ([]tokenView, error) {
		return tokenizeAll(req.Source, req.Frontend)
	})
	s.trace.Append(requestID, req.Frontend, len(req.Source), time.Since(start), err)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = jsonEncode(w, tokenizeResponse{RequestID: requestID, Tokens: tokens})
}

func tokenizeAll(source, frontend string) ([]tokenView, error) {
	e, name, err := newEngineAndVocab(lexer.DefaultConfig(), frontend)
	if err != nil {
		return nil, err
	}
	if err := e.Feed([]byte(source)); err != nil {
		return nil, err
	}
	e.Terminate()

	var out []tokenView
	for {
		tok, ok := e.NextToken()
		if !ok {
			break
		}
		out = append(out, tokenView{
			Kind:       uint8(tok.Kind),
			Name:       name(tok.Kind),
			Lexeme:     tok.Lexeme,
			Coordinate: tok.Coordinate.String(),
		})
	}
	return out, nil
}

// handleWebsocket upgrades the connection, then alternates between reading
// source chunks as they arrive (each fed straight into the ring buffer) and
// writing back whatever tokens that unblocks, one websocket frame per
// token, until the client closes the connection.
func (s *server) handleWebsocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := uuid.New().String()
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "request_id", requestID, "error", err)
		return
	}
	defer conn.Close()

	frontend := r.URL.Query().Get("frontend")
	e, name, err := newEngineAndVocab(lexer.DefaultConfig(), frontend)
	if err != nil {
		_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}

	done := make(chan struct{})
	go s.streamTokens(conn, e, name, requestID, done)

	for {
		_, chunk, err := conn.ReadMessage()
		if err != nil {
			e.Terminate()
			break
		}
		if feedErr := e.Feed(chunk); feedErr != nil {
			break
		}
	}
	<-done
}

func (s *server) streamTokens(conn *websocket.Conn, e *lexer.Engine, name func(token.Kind) string, requestID string, done chan struct{}) {
	defer close(done)
	defer s.recoverInto(requestID)

	for {
		tok, ok := e.NextToken()
		if !ok {
			if e.EndOfInput() {
				return
			}
			time.Sleep(time.Millisecond)
			continue
		}
		view := tokenView{
			Kind:       uint8(tok.Kind),
			Name:       name(tok.Kind),
			Lexeme:     tok.Lexeme,
			Coordinate: tok.Coordinate.String(),
		}
		if err := conn.WriteJSON(view); err != nil {
			return
		}
	}
}

// withRecover runs fn, converting a *ringbuf.ContractViolation or
// *fsm.ContractViolation panic into a plain error logged with its captured
// call stack — the one place this server turns spec.md §7.3's fatal
// programmer-error policy back into something an HTTP client sees as a
// normal 400 instead of taking the whole process down.
func (s *server) withRecover(requestID string, fn func() ([]tokenView, error)) (tokens []tokenView, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = s.logViolation(requestID, r)
		}
	}()
	return fn()
}

func (s *server) recoverInto(requestID string) {
	if r := recover(); r != nil {
		s.logViolation(requestID, r)
	}
}

func (s *server) logViolation(requestID string, r interface{}) error {
	switch v := r.(type) {
	case *ringbuf.ContractViolation:
		s.log.Error("ringbuf contract violation", "request_id", requestID, "message", v.Message, "stack", fmt.Sprintf("%+v", v.Stack))
		return v
	case *fsm.ContractViolation:
		s.log.Error("fsm contract violation", "request_id", requestID, "message", v.Message, "stack", fmt.Sprintf("%+v", v.Stack))
		return v
	default:
		s.log.Error("unrecovered panic", "request_id", requestID, "value", fmt.Sprintf("%v", r))
		return fmt.Errorf("internal error: %v", r)
	}
}

func jsonEncode(w http.ResponseWriter, v interface{}) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

// traceLog is an append-only, snappy-compressed record of one line per
// /tokenize request (websocket sessions are not traced): request id, front-end, input size,
// latency, and outcome. Grounded on the teacher's own dependency on
// golang/snappy for exactly this kind of log compaction.
type traceLog struct {
	mu sync.Mutex
	f  *os.File
	w  *snappy.Writer
}

func newTraceLog(path string) (*traceLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &traceLog{f: f, w: snappy.NewWriter(f)}, nil
}

type traceEntry struct {
	RequestID string `json:"request_id"`
	Frontend  string `json:"frontend"`
	Bytes     int    `json:"bytes"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (t *traceLog) Append(requestID, frontend string, nbytes int, latency time.Duration, err error) {
	entry := traceEntry{RequestID: requestID, Frontend: frontend, Bytes: nbytes, LatencyMS: latency.Milliseconds()}
	if err != nil {
		entry.Error = err.Error()
	}
	line, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w.Write(append(line, '\n'))
	t.w.Flush()
}

func (t *traceLog) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w.Close()
	return t.f.Close()
}
