// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

// Command jsonfmt lexes, parses, and re-prints a JSON document, the round
// trip spec.md §8 scenario 1 exercises end to end through a real file.
//
// Usage:
//
//	jsonfmt [-check] <file.json>
package main

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/probechain/kaubo/frontend/json"
	"github.com/probechain/kaubo/lexer"
)

func main() {
	app := cli.NewApp()
	app.Name = "jsonfmt"
	app.Usage = "lex, parse, and re-print a JSON document"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "check", Usage: "only validate; print nothing on success"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "jsonfmt: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: jsonfmt [-check] <file.json>")
	}
	path := c.Args().Get(0)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmap %s: %w", path, err)
	}
	defer data.Unmap()

	e := json.NewEngine(lexer.DefaultConfig())
	if err := e.Feed([]byte(data)); err != nil {
		return err
	}
	e.Terminate()

	v, err := json.Parse(e)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if c.Bool("check") {
		return nil
	}
	fmt.Println(v.String())
	return nil
}
