// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package pfp implements the prefix-free parsing front end of BWT construction.
//
// A Parser splits a sequence collection into phrases whose boundaries are
// chosen by a rolling hash over the last w characters: a boundary fires where
// the window hash is divisible by the modulus p, and the triggering window
// becomes the start of the next phrase. Consecutive phrases therefore overlap
// by exactly w characters. The distinct phrases form the dictionary, and the
// sequence of phrase occurrences forms the parse, which is much shorter than
// the text for repetitive collections.
//
// After parsing, the dictionary is ranked lexicographically and the parse is
// rewritten in terms of ranks. The BWT of the ranked parse is then computed
// together with the bookkeeping arrays (bwlast, ilist, and optionally bwsai)
// that a later merge stage needs to produce the BWT of the whole text.
//
// A Parser is not safe for concurrent use.
package pfp

const (
	// Dollar is the terminator byte that marks text boundaries. It seeds the
	// first phrase and pads the last.
	Dollar = 0x02

	// EndOfWord and EndOfDict delimit phrases in the dictionary file and may
	// not be used as terminators.
	EndOfWord = 0x01
	EndOfDict = 0x00

	// MaxWindow is the largest supported window size.
	MaxWindow = 32
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "pfp: " + string(e) }

var (
	ErrWindowSize     error = Error("window size w must be in 1..32")
	ErrModulus        error = Error("modulus p must be positive")
	ErrTerminator     error = Error("invalid terminator byte")
	ErrInputTooLong   error = Error("input too long for 32-bit offsets, rebuild with the pfp64 tag")
	ErrNoDict         error = Error("dictionary not created yet, run Parse")
	ErrNotRanked      error = Error("dictionary not ranked yet, run UpdateDict")
	ErrNoParseRanks   error = Error("parse ranks have not been generated")
	ErrOneWord        error = Error("only one dictionary word in total, reduce the modulus p")
	ErrTooManyPhrases error = Error("parse exceeds the maximum number of phrases")
	ErrSuffixSort     error = Error("suffix array construction failed")
	ErrInconsistent   error = Error("internal consistency check failed")
)
