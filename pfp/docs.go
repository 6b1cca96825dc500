// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfp

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/dsnet/pfbwt/marker"
)

// NRun is a run of trimmed non-ACGT characters. Pos is the position in the
// processed text that precedes the run, or NoPredecessor.
type NRun struct {
	Pos Offset
	Len Offset
}

// DocTable records where every input record starts in the processed text.
type DocTable struct {
	Starts []Offset
	Names  []string

	bm   *roaring64.Bitmap
	docs []int // Last document for each distinct start, in order
}

// Len reports the number of documents.
func (t *DocTable) Len() int { return len(t.Starts) }

// Reset empties the table.
func (t *DocTable) Reset() {
	t.Starts, t.Names, t.docs = t.Starts[:0], t.Names[:0], t.docs[:0]
	if t.bm != nil {
		t.bm.Clear()
	}
}

func (t *DocTable) add(name string, start Offset) {
	if t.bm == nil {
		t.bm = roaring64.New()
	}
	if t.bm.CheckedAdd(uint64(start)) {
		t.docs = append(t.docs, len(t.Starts))
	} else {
		t.docs[len(t.docs)-1] = len(t.Starts)
	}
	t.Starts = append(t.Starts, start)
	t.Names = append(t.Names, name)
}

// Lookup returns the index of the document that holds text position pos.
// Empty documents never hold a position.
func (t *DocTable) Lookup(pos Offset) (int, bool) {
	if t.bm == nil {
		return -1, false
	}
	r := t.bm.Rank(uint64(pos))
	if r == 0 {
		return -1, false
	}
	return t.docs[r-1], true
}

// Mark returns a marker for text position pos, tagged with the index of the
// document that holds it and the given allele. Positions outside every
// document are tagged with document 0.
//
// The sequence field of a marker holds 14 bits, so only the low 14 bits of
// the document index are kept. The allele is always preserved.
func (t *DocTable) Mark(pos Offset, allele uint8) marker.Marker {
	doc, _ := t.Lookup(pos)
	if doc < 0 {
		doc = 0
	}
	x := marker.SetPos(0, uint64(pos))
	x = marker.SetSeqID(x, uint16(doc))
	return marker.SetAllele(x, allele)
}
