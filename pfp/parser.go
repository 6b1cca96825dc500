// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfp

import (
	"github.com/dsnet/pfbwt/internal/sais"
	"github.com/dsnet/pfbwt/rollhash"
	"github.com/ledgerwatch/log/v3"
)

// Parser owns every structure of a single parsing run.
//
// The expected call sequence is Parse (or ParseFile), UpdateDict,
// GenerateParseRanks, and BWTOfParse. The Clear methods release structures
// that are no longer needed.
type Parser struct {
	params     Params
	newHash    rollhash.Func
	suffixSort SAFunc
	term       byte
	alpha      *[256]uint8
	onRecord   DocFunc
	log        log.Logger

	dict       Dictionary
	parse      []Word   // Phrase ids in text order
	last       []byte   // Character preceding the trailing window of each phrase
	sai        []Offset // Text offset of every boundary
	occs       []Offset // Occurrences of each phrase in rank order
	parseRanks []Word   // Parse with ids replaced by ranks
	docs       DocTable
	ntab       []NRun
	stats      Stats
}

// NewParser creates a Parser for the given parameters.
// A nil conf selects the default collaborators.
func NewParser(p Params, conf *ParserConfig) (*Parser, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var c ParserConfig
	if conf != nil {
		c = *conf
	}
	if c.Hasher == nil {
		c.Hasher, _ = rollhash.Lookup(p.hash())
	}
	if c.SuffixSort == nil {
		c.SuffixSort = sais.ComputeSA[Word]
	}
	if c.Alphabet == nil {
		c.Alphabet = &NucleotideTable
	}
	if c.Terminator == 0 {
		c.Terminator = Dollar
	}
	if c.Terminator == EndOfWord || c.Alphabet[c.Terminator] < 4 {
		return nil, ErrTerminator
	}
	if c.Logger == nil {
		c.Logger = log.New()
		c.Logger.SetHandler(log.DiscardHandler())
	}
	return &Parser{
		params:     p,
		newHash:    c.Hasher,
		suffixSort: c.SuffixSort,
		term:       c.Terminator,
		alpha:      c.Alphabet,
		onRecord:   c.OnRecord,
		log:        c.Logger,
	}, nil
}

// Params reports the parameters the Parser was created with.
func (p *Parser) Params() Params { return p.params }

// Dict returns the phrase dictionary.
func (p *Parser) Dict() *Dictionary { return &p.dict }

// PhraseIDs returns the phrase ids in text order.
func (p *Parser) PhraseIDs() []Word { return p.parse }

// Last returns, for every phrase of the parse, the character that precedes
// its trailing window.
func (p *Parser) Last() []byte { return p.last }

// SAI returns the 1-based text offset of every phrase boundary.
// It is empty unless GetSAI is set.
func (p *Parser) SAI() []Offset { return p.sai }

// Occs returns the occurrence count of every phrase in rank order.
// It is empty until UpdateDict has run.
func (p *Parser) Occs() []Offset { return p.occs }

// Docs returns the document table. It is empty unless GetDA is set.
func (p *Parser) Docs() *DocTable { return &p.docs }

// NTab returns the table of trimmed non-ACGT runs.
// It is empty unless TrimNonACGT is set.
func (p *Parser) NTab() []NRun { return p.ntab }

// Stats reports statistics of the last parsing run.
func (p *Parser) Stats() Stats { return p.stats }

// ClearDict releases the dictionary.
func (p *Parser) ClearDict() { p.dict.Reset() }

// ClearParse releases the parse.
func (p *Parser) ClearParse() { p.parse = nil }

// ClearParseRanks releases the ranked parse.
func (p *Parser) ClearParseRanks() { p.parseRanks = nil }

// ClearOcc releases the occurrence counts.
func (p *Parser) ClearOcc() { p.occs = nil }

// ClearLast releases the last array.
func (p *Parser) ClearLast() { p.last = nil }

// Clear releases the dictionary, the parse, the ranked parse, and the
// last array.
func (p *Parser) Clear() {
	p.ClearDict()
	p.ClearParse()
	p.ClearParseRanks()
	p.ClearLast()
}
