// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build pfp64
// +build pfp64

package pfp

type (
	// Offset is a position in the text or a row of the BWT of the parse.
	Offset = uint64

	// Word is a phrase id or rank, and the element type of the suffix array
	// of the parse.
	Word = int64
)

// Wide reports whether this build uses 64-bit offsets.
const Wide = true

// Capacity limits of a parsing run.
var (
	maxInputLen   uint64 = 0xFFFFFFFFFFFFFFFF
	maxParseRanks uint64 = 0xFFFFFFFE // 2^32-2 phrases, currently a hard limit
)
