// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package lexer

import (
	"bufio"
	"os"
	"reflect"

	"github.com/naoina/toml"
)

// Config holds the tunables spec.md §6 fixes for the lexer engine. It is
// meant to be loaded from a TOML file by a host binary (see
// cmd/kaubo, which uses github.com/naoina/toml) and passed to New verbatim.
type Config struct {
	// RingCapacity is the ring buffer's fixed byte capacity. It must be at
	// least as large as the longest token the registered machines can
	// produce, or a legitimate token can stall the engine waiting for ring
	// space that Feed will never get to fill in time.
	RingCapacity int `toml:"ring_capacity"`

	// TabStride is how many columns a tab advances the cursor by.
	TabStride uint32 `toml:"tab_stride"`
}

// DefaultConfig returns the spec's documented defaults: a ring capacity
// generous enough for typical source tokens, and a 4-column tab stride.
func DefaultConfig() Config {
	return Config{RingCapacity: 4096, TabStride: 4}
}

// tomlSettings keeps TOML keys identical to the Go struct field names, the
// same convention the teacher's node-config loader uses.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
}

// LoadConfig reads path as a TOML document into a copy of DefaultConfig,
// overriding only the fields the file sets. cmd/kaubo wires this to its
// -config flag.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	if err := tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
