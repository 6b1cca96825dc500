// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !pfp64
// +build !pfp64

package pfp

type (
	// Offset is a position in the text or a row of the BWT of the parse.
	Offset = uint32

	// Word is a phrase id or rank, and the element type of the suffix array
	// of the parse.
	Word = int32
)

// Wide reports whether this build uses 64-bit offsets.
const Wide = false

// Capacity limits of a parsing run.
var (
	maxInputLen   uint64 = 0xFFFFFFFF
	maxParseRanks uint64 = 0x7FFFFFFE // 2^31-2 phrases
)
