// abiguess: Ethereum calldata signature guesser
// Copyright 2024 abiguess Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command abiguess guesses the argument type list of raw Ethereum ABI
// calldata whose function signature is unknown.
//
// Usage:
//
//	abiguess [-cache path] <hex-calldata>
//	abiguess -vectors path/to/vectors.yaml
//	abiguess sign <signature>
//
// With no flags, abiguess treats its single positional argument (or stdin,
// if no argument is given) as hex-encoded calldata, strips an optional "0x"
// prefix, splits off the 4-byte selector, and prints a guessed fragment.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"

	"github.com/0xSt1ng3R/abi-guesser-go/internal/selector"
	abiguess "github.com/0xSt1ng3R/abi-guesser-go"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "sign" {
		runSign(os.Args[2:])
		return
	}

	cachePath := flag.String("cache", "", "path to a snappy-compressed memoization cache")
	vectorsPath := flag.String("vectors", "", "path to a YAML file of {calldata, expect} test vectors to run in batch")
	flag.Parse()

	if *vectorsPath != "" {
		if err := runVectors(*vectorsPath); err != nil {
			fmt.Fprintln(os.Stderr, "abiguess:", err)
			os.Exit(1)
		}
		return
	}

	raw, err := readCalldataArg(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "abiguess:", err)
		os.Exit(1)
	}

	cache := loadCache(*cachePath)
	if fragment, hit := cache[string(raw)]; hit {
		fmt.Println(fragment)
		return
	}

	fragment, ok := abiguess.GuessFragment(raw)
	if !ok {
		fmt.Fprintln(os.Stderr, "abiguess: no consistent interpretation found")
		os.Exit(1)
	}
	fmt.Println(fragment)

	if *cachePath != "" {
		cache[string(raw)] = fragment
		saveCache(*cachePath, cache)
	}
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: abiguess sign <signature>")
		os.Exit(2)
	}
	sel := selector.FromSignature(fs.Arg(0))
	fmt.Printf("0x%s\n", hex.EncodeToString(sel[:]))
}

func readCalldataArg(positional []string) ([]byte, error) {
	var text string
	if len(positional) > 0 {
		text = positional[0]
	} else {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		text = string(b)
	}
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "0x")
	text = strings.TrimPrefix(text, "0X")
	raw, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decoding hex calldata: %w", err)
	}
	return raw, nil
}

// vector is one golden-fixture entry in a -vectors YAML file.
type vector struct {
	Name     string   `yaml:"name"`
	Calldata string   `yaml:"calldata"`
	Expect   []string `yaml:"expect"`
}

func runVectors(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening vectors file: %w", err)
	}
	defer f.Close()

	var vectors []vector
	if err := yaml.NewDecoder(f).Decode(&vectors); err != nil {
		return fmt.Errorf("parsing vectors file: %w", err)
	}

	failures := 0
	for _, v := range vectors {
		raw, err := hex.DecodeString(strings.TrimPrefix(v.Calldata, "0x"))
		if err != nil {
			fmt.Printf("FAIL %s: bad hex: %v\n", v.Name, err)
			failures++
			continue
		}
		got, ok := abiguess.GuessABIEncodedData(raw)
		if !ok {
			fmt.Printf("FAIL %s: no guess produced\n", v.Name)
			failures++
			continue
		}
		if !equalSlices(got, v.Expect) {
			fmt.Printf("FAIL %s: got %v, want %v\n", v.Name, got, v.Expect)
			failures++
			continue
		}
		fmt.Printf("ok   %s\n", v.Name)
	}

	fmt.Printf("%d/%d vectors passed\n", len(vectors)-failures, len(vectors))
	if failures > 0 {
		return fmt.Errorf("%d vector(s) failed", failures)
	}
	return nil
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// loadCache reads a snappy-compressed, newline-delimited "hexcalldata\tfragment"
// memoization cache. A missing or unreadable cache file is treated as empty —
// the cache is a pure optimization, never load-bearing for correctness.
func loadCache(path string) map[string]string {
	cache := map[string]string{}
	if path == "" {
		return cache
	}
	compressed, err := os.ReadFile(path)
	if err != nil {
		return cache
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return cache
	}
	for _, line := range strings.Split(string(raw), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		key, err := hex.DecodeString(parts[0])
		if err != nil {
			continue
		}
		cache[string(key)] = parts[1]
	}
	return cache
}

func saveCache(path string, cache map[string]string) {
	var sb strings.Builder
	for key, fragment := range cache {
		sb.WriteString(hex.EncodeToString([]byte(key)))
		sb.WriteByte('\t')
		sb.WriteString(fragment)
		sb.WriteByte('\n')
	}
	compressed := snappy.Encode(nil, []byte(sb.String()))
	_ = os.WriteFile(path, compressed, 0o644)
}
