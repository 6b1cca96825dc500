// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sais implements a linear time suffix array algorithm.
package sais

// This package implements the SA-IS algorithm by Nong, Zhang, and Chan over
// integer alphabets. Texts are expected to be terminated by a unique sentinel
// symbol 0, which is the convention used by the parse of a prefix-free parsing
// where every phrase is replaced by a rank starting at 1.
//
// References:
//	https://sites.google.com/site/yuta256/sais
//	https://ge-nong.googlecode.com/files/Two%20Efficient%20Algorithms%20for%20Linear%20Time%20Suffix%20Array%20Construction.pdf

// Integer is the set of symbol types that ComputeSA operates on.
// The same type is used for the suffix array itself.
type Integer interface {
	~int32 | ~int64
}

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "sais: " + string(e) }

var (
	ErrAlphabet = Error("symbol outside of alphabet")
	ErrSentinel = Error("text must end with a unique 0 symbol")
)

// ComputeSA computes the suffix array of text and places the result in sa.
// Both text and sa must be the same length. All symbols must be within [0, k)
// and the last symbol must be the only 0 in the text.
//
// The depth of recursion is returned, which is always non-negative on success.
func ComputeSA[T Integer](text, sa []T, k int) (int, error) {
	if len(sa) != len(text) {
		panic("mismatching sizes")
	}
	if len(text) == 0 {
		return 0, nil
	}
	if err := checkText(text, k); err != nil {
		return -1, err
	}
	return computeSA(text, sa, k, 0), nil
}

func checkText[T Integer](text []T, k int) error {
	n := len(text)
	for i, c := range text {
		if c < 0 || int64(c) >= int64(k) {
			return ErrAlphabet
		}
		if (c == 0) != (i == n-1) {
			return ErrSentinel
		}
	}
	return nil
}

func computeSA[T Integer](text, sa []T, k, depth int) int {
	n := len(text)
	if n == 1 {
		sa[0] = 0
		return depth
	}

	// Classify every suffix as S-type (true) or L-type (false).
	stype := make([]bool, n)
	stype[n-1] = true
	for i := n - 2; i >= 0; i-- {
		stype[i] = text[i] < text[i+1] || (text[i] == text[i+1] && stype[i+1])
	}
	isLMS := func(i int) bool { return i > 0 && stype[i] && !stype[i-1] }

	bkt := make([]int, k)
	for _, c := range text {
		bkt[c]++
	}

	// Stage 1: sort all LMS-substrings by induction.
	for i := range sa {
		sa[i] = -1
	}
	ends := bucketEnds(bkt, nil)
	for i := 1; i < n; i++ {
		if isLMS(i) {
			c := text[i]
			ends[c]--
			sa[ends[c]] = T(i)
		}
	}
	induce(text, sa, stype, bkt)

	// Compact the sorted LMS positions into the front of sa.
	m := 0
	for i := 0; i < n; i++ {
		if j := int(sa[i]); isLMS(j) {
			sa[m] = T(j)
			m++
		}
	}

	// Name the LMS-substrings. Adjacent LMS positions are at least two apart,
	// so j/2 is a unique slot within sa[m:].
	for i := m; i < n; i++ {
		sa[i] = -1
	}
	names, prev := 0, -1
	for i := 0; i < m; i++ {
		j := int(sa[i])
		if prev < 0 || !equalLMS(text, stype, prev, j) {
			names++
		}
		prev = j
		sa[m+j/2] = T(names - 1)
	}
	for i, j := n-1, n-1; i >= m; i-- {
		if sa[i] >= 0 {
			sa[j] = sa[i]
			j--
		}
	}

	// Stage 2: sort the reduced string, recursing if names are not unique.
	sa1, s1 := sa[:m], sa[n-m:]
	if names < m {
		depth = computeSA(s1, sa1, names, depth+1)
	} else {
		for i := 0; i < m; i++ {
			sa1[s1[i]] = T(i)
		}
	}

	// Stage 3: induce the final suffix array from the sorted LMS-suffixes.
	for i, j := 1, 0; i < n; i++ {
		if isLMS(i) {
			s1[j] = T(i)
			j++
		}
	}
	for i := 0; i < m; i++ {
		sa1[i] = s1[sa1[i]]
	}
	for i := m; i < n; i++ {
		sa[i] = -1
	}
	ends = bucketEnds(bkt, ends)
	for i := m - 1; i >= 0; i-- {
		j := sa[i]
		sa[i] = -1
		c := text[j]
		ends[c]--
		sa[ends[c]] = j
	}
	induce(text, sa, stype, bkt)
	return depth
}

// induce sorts the L-type suffixes from left to right and then the S-type
// suffixes from right to left, using the LMS-suffixes already placed in sa.
func induce[T Integer](text, sa []T, stype []bool, bkt []int) {
	n := len(text)
	starts := bucketStarts(bkt, nil)
	for i := 0; i < n; i++ {
		if sa[i] <= 0 {
			continue
		}
		if j := sa[i] - 1; !stype[j] {
			c := text[j]
			sa[starts[c]] = j
			starts[c]++
		}
	}
	ends := bucketEnds(bkt, starts)
	for i := n - 1; i >= 0; i-- {
		if sa[i] <= 0 {
			continue
		}
		if j := sa[i] - 1; stype[j] {
			c := text[j]
			ends[c]--
			sa[ends[c]] = j
		}
	}
}

// equalLMS reports whether the LMS-substrings starting at a and b are equal.
func equalLMS[T Integer](text []T, stype []bool, a, b int) bool {
	n := len(text)
	if a == n-1 || b == n-1 {
		return a == b // The sentinel substring is unique
	}
	isLMS := func(i int) bool { return i > 0 && stype[i] && !stype[i-1] }
	for d := 0; ; d++ {
		if text[a+d] != text[b+d] || stype[a+d] != stype[b+d] {
			return false
		}
		if d > 0 && (isLMS(a+d) || isLMS(b+d)) {
			return isLMS(a+d) && isLMS(b+d)
		}
	}
}

// bucketStarts computes the first index of every bucket.
func bucketStarts(bkt, dst []int) []int {
	if cap(dst) < len(bkt) {
		dst = make([]int, len(bkt))
	}
	dst = dst[:len(bkt)]
	var sum int
	for i, v := range bkt {
		dst[i] = sum
		sum += v
	}
	return dst
}

// bucketEnds computes one past the last index of every bucket.
func bucketEnds(bkt, dst []int) []int {
	if cap(dst) < len(bkt) {
		dst = make([]int, len(bkt))
	}
	dst = dst[:len(bkt)]
	var sum int
	for i, v := range bkt {
		sum += v
		dst[i] = sum
	}
	return dst
}
