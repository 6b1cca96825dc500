// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfp

import (
	"bytes"
	"sort"
)

// UpdateDict ranks the dictionary in lexicographic order of the phrases and
// builds the occurrence counts. The phrases are then passed to fn in rank
// order. The first error returned by fn aborts the update.
func (p *Parser) UpdateDict(fn DictFunc) error {
	d := &p.dict
	if d.Len() == 0 {
		return ErrNoDict
	}
	ids := make([]Word, d.Len())
	for i := range ids {
		ids[i] = Word(i)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(d.Phrase(ids[i]), d.Phrase(ids[j])) < 0
	})

	if cap(d.ranks) < len(ids) {
		d.ranks = make([]Word, len(ids))
	}
	d.ranks = d.ranks[:len(ids)]
	p.occs = p.occs[:0]
	for i, id := range ids {
		d.ranks[id] = Word(i + 1)
		p.occs = append(p.occs, d.counts[id])
	}
	d.ranked = true

	if fn != nil {
		for _, id := range ids {
			if err := fn(d.Phrase(id), d.counts[id]); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenerateParseRanks replaces every phrase of the parse by its rank.
func (p *Parser) GenerateParseRanks() error {
	if p.dict.Len() == 0 {
		return ErrNoDict
	}
	if !p.dict.Ranked() {
		return ErrNotRanked
	}
	p.ClearParseRanks()
	for _, id := range p.parse {
		p.parseRanks = append(p.parseRanks, p.dict.ranks[id])
	}
	return nil
}

// ParseRanks returns the ranked parse.
func (p *Parser) ParseRanks() ([]Word, error) {
	if len(p.parseRanks) == 0 {
		return nil, ErrNoParseRanks
	}
	return p.parseRanks, nil
}
