// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rollhash

const (
	krBase  = 256
	krPrime = 1999999973
)

// KarpRabin is a polynomial hash of the window modulo a prime, using the
// alphabet size as the base.
type KarpRabin struct {
	window []byte
	pot    uint64 // krBase^(w-1) mod krPrime
	hash   uint64
	cnt    uint64 // Total number of bytes fed
}

// NewKarpRabin creates a Karp-Rabin hasher over a window of w bytes.
func NewKarpRabin(w int) *KarpRabin {
	kr := &KarpRabin{window: make([]byte, w), pot: 1}
	for i := 1; i < w; i++ {
		kr.pot = (kr.pot * krBase) % krPrime
	}
	return kr
}

func (kr *KarpRabin) Update(c byte) {
	k := kr.cnt % uint64(len(kr.window))
	kr.cnt++

	// Remove the outgoing byte, then shift in the new one.
	out := (uint64(kr.window[k]) * kr.pot) % krPrime
	kr.hash = (krPrime - out + kr.hash) % krPrime
	kr.hash = (krBase*kr.hash + uint64(c)) % krPrime
	kr.window[k] = c
}

func (kr *KarpRabin) Value() uint64 { return kr.hash }

func (kr *KarpRabin) Reset() {
	for i := range kr.window {
		kr.window[i] = 0
	}
	kr.hash, kr.cnt = 0, 0
}
