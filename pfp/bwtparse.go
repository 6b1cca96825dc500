// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfp

import "github.com/dsnet/golib/errs"

// BWTOfParse computes the BWT of the ranked parse and passes the results to fn.
//
// For every row of the BWT of the parse, bwlast holds the last character
// preceding the phrase at that row and bwsai holds the matching boundary
// offset. The ilist array lists the rows of the BWT grouped by the rank of
// the phrase that starts them, so that ilist[F[r]:F[r+1]] are the rows whose
// BWT symbol is r.
//
// The ranked parse is generated first if needed, and a terminating 0 is
// appended to it.
func (p *Parser) BWTOfParse(fn BWTFunc) (err error) {
	defer errs.Recover(&err)

	if len(p.parseRanks) == 0 {
		if err := p.GenerateParseRanks(); err != nil {
			return err
		}
	}
	if len(p.occs) == 0 {
		return ErrNotRanked
	}
	if len(p.parseRanks) <= 1 {
		return ErrOneWord
	}
	if uint64(len(p.parseRanks)) > maxParseRanks {
		p.log.Error("Too many phrases", "phrases", len(p.parseRanks))
		return ErrTooManyPhrases
	}

	// Terminate the parse with the sentinel rank.
	var n int
	if p.parseRanks[len(p.parseRanks)-1] != 0 {
		n = len(p.parseRanks)
		p.parseRanks = append(p.parseRanks, 0)
	} else {
		n = len(p.parseRanks) - 1
	}
	if n < 2 {
		return ErrOneWord
	}
	ranks := p.parseRanks
	var k Word
	for _, r := range ranks[:n] {
		if r > k {
			k = r
		}
	}

	p.log.Debug("Computing suffix array of the parse", "size", n+1, "alphabet", k+1)
	sa := make([]Word, n+1)
	depth, err := p.suffixSort(ranks, sa, int(k)+1)
	if err != nil || depth < 0 {
		p.log.Error("Suffix sorting failed", "depth", depth, "err", err)
		return ErrSuffixSort
	}
	p.log.Debug("Suffix array computed", "depth", depth)

	// Transform the suffix array into the BWT in place.
	getSAI := p.params.GetSAI
	bwlast := make([]byte, n+1)
	var bwsai []Offset
	if getSAI {
		bwsai = make([]Offset, n+1)
	}
	errs.Assert(sa[0] == Word(n), ErrInconsistent)
	sa[0] = ranks[n-1]
	bwlast[0] = p.last[n-2]
	if getSAI {
		bwsai[0] = p.sai[n-1]
	}
	for i := 1; i <= n; i++ {
		j := sa[i]
		if j == 0 {
			continue // Preceded by the sentinel
		}
		if j == 1 {
			bwlast[i] = p.last[n-1]
		} else {
			bwlast[i] = p.last[j-2]
		}
		if getSAI {
			bwsai[i] = p.sai[j-1]
		}
		sa[i] = ranks[j-1]
	}

	// F[r] is the first row of ilist for BWT symbol r.
	occs := p.occs
	d := len(occs)
	f := make([]Offset, d+1)
	f[1] = 1
	for i := 2; i <= d; i++ {
		f[i] = f[i-1] + occs[i-2]
	}
	errs.Assert(f[d]+occs[d-1] == Offset(n+1), ErrInconsistent)

	ilist := make([]Offset, n+1)
	for i, r := range sa {
		ilist[f[r]] = Offset(i)
		f[r]++
	}
	errs.Assert(ilist[0] == 1, ErrInconsistent)
	errs.Assert(sa[ilist[0]] == 0, ErrInconsistent)

	if fn == nil {
		return nil
	}
	return fn(bwlast, ilist, bwsai)
}
