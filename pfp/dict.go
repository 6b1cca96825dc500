// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfp

import (
	"bytes"

	"github.com/zeebo/xxh3"
)

// Dictionary is the set of distinct phrases with their frequencies.
//
// Phrases are stored back to back in a single arena and referred to by a dense
// id in insertion order, so growing the arena never invalidates an id.
// After ranking, each phrase also has a lexicographic rank starting at 1.
type Dictionary struct {
	arena  []byte
	offs   []int           // Phrase i is arena[offs[i]:offs[i+1]]
	counts []Offset        // Occurrences of each phrase
	ranks  []Word          // Rank of each phrase, valid only if ranked
	index  map[uint64]Word // First id with a given hash
	next   []Word          // Next id with the same hash, or -1
	ranked bool
}

// Len reports the number of distinct phrases.
func (d *Dictionary) Len() int { return len(d.counts) }

// Bytes reports the total length of all distinct phrases.
func (d *Dictionary) Bytes() int { return len(d.arena) }

// Phrase returns the bytes of phrase id. The slice must not be modified.
func (d *Dictionary) Phrase(id Word) []byte {
	return d.arena[d.offs[id]:d.offs[id+1]:d.offs[id+1]]
}

// Count reports the number of occurrences of phrase id.
func (d *Dictionary) Count(id Word) Offset { return d.counts[id] }

// Rank reports the lexicographic rank of phrase id, or 0 if the dictionary
// has not been ranked.
func (d *Dictionary) Rank(id Word) Word {
	if !d.ranked {
		return 0
	}
	return d.ranks[id]
}

// Ranked reports whether ranks are up to date.
func (d *Dictionary) Ranked() bool { return d.ranked }

// Lookup returns the id of the phrase, if present.
func (d *Dictionary) Lookup(phrase []byte) (Word, bool) {
	id, ok := d.index[xxh3.Hash(phrase)]
	if !ok {
		return -1, false
	}
	for ; id >= 0; id = d.next[id] {
		if bytes.Equal(d.Phrase(id), phrase) {
			return id, true
		}
	}
	return -1, false
}

// Insert registers one occurrence of phrase and returns its id.
// The phrase is copied into the arena.
func (d *Dictionary) Insert(phrase []byte) Word {
	if d.index == nil {
		d.index = make(map[uint64]Word)
		d.offs = append(d.offs[:0], 0)
	}
	d.ranked = false

	h := xxh3.Hash(phrase)
	head, ok := d.index[h]
	if !ok {
		head = -1
	}
	for id := head; id >= 0; id = d.next[id] {
		if bytes.Equal(d.Phrase(id), phrase) {
			d.counts[id]++
			return id
		}
	}

	id := Word(len(d.counts))
	d.arena = append(d.arena, phrase...)
	d.offs = append(d.offs, len(d.arena))
	d.counts = append(d.counts, 1)
	d.next = append(d.next, head)
	d.index[h] = id
	return id
}

// Reset empties the dictionary and releases its memory.
func (d *Dictionary) Reset() { *d = Dictionary{} }
