// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfp

// Text reconstructs the processed text from the dictionary and the parse.
//
// The phrases are concatenated in parse order with the leading window of
// every phrase after the first removed. The terminators that the parser adds
// at both ends are stripped.
func (p *Parser) Text() []byte {
	if len(p.parse) == 0 {
		return nil
	}
	w := p.params.W
	b := make([]byte, 0, p.stats.Length+uint64(w)+1)
	for i, id := range p.parse {
		phrase := p.dict.Phrase(id)
		if i > 0 {
			phrase = phrase[w:]
		}
		b = append(b, phrase...)
	}
	return b[1 : len(b)-w]
}
