// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rollhash

import "math/bits"

// cyclicTable maps every byte to a pseudo-random 64-bit value.
// It is generated with SplitMix64 so that hashes are stable across runs.
var cyclicTable [256]uint64

func init() {
	x := uint64(0x9e3779b97f4a7c15)
	for i := range cyclicTable {
		x += 0x9e3779b97f4a7c15
		z := x
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		cyclicTable[i] = z ^ (z >> 31)
	}
}

// Cyclic is a cyclic polynomial hash (also known as buzhash).
type Cyclic struct {
	window []byte
	hash   uint64
	cnt    uint64
}

// NewCyclic creates a cyclic polynomial hasher over a window of w bytes.
func NewCyclic(w int) *Cyclic {
	return &Cyclic{window: make([]byte, w)}
}

func (h *Cyclic) Update(c byte) {
	w := len(h.window)
	k := h.cnt % uint64(w)
	h.hash = bits.RotateLeft64(h.hash, 1) ^ cyclicTable[c]
	if h.cnt >= uint64(w) {
		h.hash ^= bits.RotateLeft64(cyclicTable[h.window[k]], w)
	}
	h.window[k] = c
	h.cnt++
}

func (h *Cyclic) Value() uint64 { return h.hash }

func (h *Cyclic) Reset() {
	for i := range h.window {
		h.window[i] = 0
	}
	h.hash, h.cnt = 0, 0
}
