// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfp

import (
	"github.com/dsnet/pfbwt/rollhash"
	"github.com/ledgerwatch/log/v3"
)

// Params holds the options of a parsing run.
//
// If both TrimNonACGT and NonACGTToA are set, TrimNonACGT takes precedence.
type Params struct {
	W           int    `toml:"window" comment:"Size of the rolling hash window (at most 32)"`
	P           uint64 `toml:"modulus" comment:"Phrase boundaries fire where hash mod p == 0"`
	Hash        string `toml:"hash" comment:"Rolling hash family: kr or cyclic"`
	GetSAI      bool   `toml:"sai" comment:"Record the text offset of every phrase boundary"`
	GetDA       bool   `toml:"docs" comment:"Record the start offset of every input record"`
	TrimNonACGT bool   `toml:"trim-non-acgt" comment:"Drop runs of non-ACGT characters, recording them in the run table"`
	NonACGTToA  bool   `toml:"non-acgt-to-a" comment:"Replace non-ACGT characters with A"`
	PrintDocs   bool   `toml:"print-docs" comment:"Emit (name, start) of every record to the record sink"`
	Verbose     bool   `toml:"verbose"`
}

// DefaultParams returns the default parameters.
func DefaultParams() Params {
	return Params{W: 10, P: 100, Hash: "kr"}
}

// Validate checks that the parameters describe a runnable configuration.
func (p Params) Validate() error {
	if p.W < 1 || p.W > MaxWindow {
		return ErrWindowSize
	}
	if p.P < 1 {
		return ErrModulus
	}
	if _, err := rollhash.Lookup(p.hash()); err != nil {
		return err
	}
	return nil
}

func (p Params) hash() string {
	if p.Hash == "" {
		return "kr"
	}
	return p.Hash
}

// NucleotideTable classifies A, C, G, and T (in either case) as 0 to 3 and
// every other byte as 4.
var NucleotideTable = func() (t [256]uint8) {
	for i := range t {
		t[i] = 4
	}
	for i, c := range "ACGT" {
		t[c] = uint8(i)
		t[c+'a'-'A'] = uint8(i)
	}
	return t
}()

// SAFunc computes the suffix array of text over the alphabet [0, k) into sa.
// It returns a negative depth or an error on failure.
type SAFunc func(text, sa []Word, k int) (int, error)

// DictFunc receives the dictionary phrases in rank order.
type DictFunc func(phrase []byte, freq Offset) error

// BWTFunc receives the outputs of BWTOfParse. The bwsai slice is empty
// unless GetSAI is set.
type BWTFunc func(bwlast []byte, ilist, bwsai []Offset) error

// DocFunc receives the name and start offset of every record read.
type DocFunc func(name string, start Offset) error

// ParserConfig configures the collaborators of a Parser.
// The zero value selects the defaults.
type ParserConfig struct {
	// Hasher creates the rolling hash. The default is chosen by Params.Hash.
	Hasher rollhash.Func

	// SuffixSort computes suffix arrays. The default is SA-IS.
	SuffixSort SAFunc

	// Terminator marks text boundaries. The default is Dollar.
	Terminator byte

	// Alphabet classifies uppercase bytes as ACGT (0..3) or not (4).
	// The default is NucleotideTable.
	Alphabet *[256]uint8

	// OnRecord receives every record start when Params.PrintDocs is set.
	OnRecord DocFunc

	// Logger receives progress messages. The default discards them.
	Logger log.Logger
}
