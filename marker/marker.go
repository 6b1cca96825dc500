// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package marker implements the packed 64-bit markers used to tag text
// positions with their sequence and allele identity.
//
// A marker is laid out as follows (most significant bit first):
//
//	63..60  allele       (4 bits)
//	59..44  sequence id  (mask, see below)
//	43..0   position     (44 bits)
//
// The sequence id is written with a shift of 46 but read through a mask that
// starts at bit 44. Consequently the top two bits of a written id land in the
// allele field, and only the low 14 bits of an id survive a round trip.
// This layout is part of the on-disk format and must not be "repaired".
//
// All setters are pure: they return a new value and silently truncate inputs
// that do not fit into their field.
package marker

import "fmt"

// Marker is a packed (allele, sequence id, position) triple.
type Marker = uint64

const (
	AlleleMask = 0xF000000000000000
	SeqMask    = 0x0FFFF00000000000
	PosMask    = 0x00000FFFFFFFFFFF

	SeqShift    = 46
	AlleleShift = 60

	MaxPos    = PosMask // Largest position that can be stored
	MaxAllele = 0xF     // Largest allele that can be stored
)

// Encode creates a marker for the given position and allele with a zero
// sequence id.
func Encode(pos uint64, allele uint8) Marker {
	return SetPos(SetAllele(0, allele), pos)
}

// Pos reports the position field of x.
func Pos(x Marker) uint64 { return x & PosMask }

// SeqID reports the sequence id field of x.
func SeqID(x Marker) uint64 { return (x & SeqMask) >> SeqShift }

// Allele reports the allele field of x.
func Allele(x Marker) uint8 { return uint8((x & AlleleMask) >> AlleleShift) }

// SetPos returns x with its position replaced by i.
func SetPos(x Marker, i uint64) Marker {
	return (x &^ PosMask) | (i & PosMask)
}

// SetSeqID returns x with its sequence id replaced by i.
func SetSeqID(x Marker, i uint16) Marker {
	return ((uint64(i) & 0xFFFF) << SeqShift) | (x &^ SeqMask)
}

// SetAllele returns x with its allele replaced by i.
func SetAllele(x Marker, i uint8) Marker {
	return ((uint64(i) & 0xF) << AlleleShift) | (x &^ AlleleMask)
}

// Format renders x as "allele:seq:pos".
func Format(x Marker) string {
	return fmt.Sprintf("%d:%d:%d", Allele(x), SeqID(x), Pos(x))
}
