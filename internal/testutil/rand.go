// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Rand implements a deterministic pseudo-random number generator.
// This differs from the math.Rand in that the exact output will be consistent
// across different versions of Go.
type Rand struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	r, _ := aes.NewCipher(key[:])
	return &Rand{Block: r}
}

func (r *Rand) Int() (x int) {
	r.Encrypt(r.blk[:], r.blk[:])
	x |= int(r.blk[0]) << 0
	x |= int(r.blk[1]) << 8
	x |= int(r.blk[2]) << 16
	x |= int(r.blk[3]) << 24
	x |= int(r.blk[4]) << 32
	x |= int(r.blk[5]) << 40
	x |= int(r.blk[6]) << 48
	x |= int(r.blk[7]&0x3f) << 56
	return x
}

func (r *Rand) Intn(n int) int {
	return r.Int() % n
}

func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	bb := b
	for len(bb) > 0 {
		r.Encrypt(r.blk[:], r.blk[:])
		cnt := copy(bb, r.blk[:])
		bb = bb[cnt:]
	}
	return b
}

const nucleotides = "ACGT"

// DNA returns n random nucleotides drawn uniformly from ACGT.
func (r *Rand) DNA(n int) []byte {
	b := r.Bytes(n)
	for i := range b {
		b[i] = nucleotides[b[i]&3]
	}
	return b
}

// Mutate returns a copy of seq where roughly one in every rate positions
// is substituted by a different nucleotide. A rate <= 0 returns an exact copy.
func (r *Rand) Mutate(seq []byte, rate int) []byte {
	out := append([]byte(nil), seq...)
	if rate <= 0 {
		return out
	}
	for i := range out {
		if r.Intn(rate) == 0 {
			out[i] = nucleotides[(indexNucleotide(out[i])+1+r.Intn(3))&3]
		}
	}
	return out
}

func indexNucleotide(c byte) int {
	switch c {
	case 'C', 'c':
		return 1
	case 'G', 'g':
		return 2
	case 'T', 't':
		return 3
	default:
		return 0
	}
}
