// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfp

import (
	"hash/crc32"
	"io"

	"github.com/c2h5oh/datasize"
	"github.com/cockroachdb/errors"
	"github.com/dsnet/golib/hashutil"
	"github.com/dsnet/pfbwt/seqio"
)

// NoPredecessor is the start of a non-ACGT run at the very beginning of the
// text, which has no preceding position.
const NoPredecessor = ^Offset(0)

// crcChunkSize is the number of processed characters buffered before they
// are folded into the checksum of a record.
const crcChunkSize = 4096

// Stats summarizes a parsing run.
type Stats struct {
	Records  int    // Number of records read
	Residues uint64 // Number of characters read, including trimmed ones
	Length   uint64 // Number of characters processed
	Trimmed  uint64 // Number of characters dropped by run trimming
	Phrases  int    // Number of phrases in the parse
	CRC      uint32 // CRC-32 of the processed text
}

// ParseFile parses the FASTA or FASTQ file at path. The path "-" reads
// standard input.
func (p *Parser) ParseFile(path string) (uint64, error) {
	r, err := seqio.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "pfp: failed to open %s", path)
	}
	defer r.Close()
	return p.Parse(r)
}

// Parse splits every record of r into phrases and returns the number of
// characters processed. Any previous parsing results are discarded.
func (p *Parser) Parse(r seqio.Reader) (n uint64, err error) {
	w := p.params.W
	p.Clear()
	p.ClearOcc()
	p.sai = p.sai[:0]
	p.ntab = p.ntab[:0]
	p.docs.Reset()
	p.stats = Stats{}

	var (
		pos    Offset // Position in the processed text
		total  uint64 // Characters read, for the input length check
		fed    int    // Characters fed to the hash, saturated at w+1
		inRun  bool
		run    NRun
		crc    uint32 // CRC-32 of all completed records
		rcrc   uint32 // CRC-32 of the current record
		rlen   int64  // Length of the current record
		chunk  [crcChunkSize]byte
		nc     int // Bytes of chunk pending
		phrase = make([]byte, 0, 2*w+1)
	)
	hash := p.newHash(w)
	phrase = append(phrase, p.term)

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, errors.Wrap(err, "pfp: failed to read record")
		}
		if total+uint64(len(rec.Seq)) > maxInputLen {
			p.log.Error("Input too long", "size", total+uint64(len(rec.Seq)))
			return n, ErrInputTooLong
		}
		total += uint64(len(rec.Seq))

		if p.params.GetDA {
			p.docs.add(rec.Name, pos)
		}
		if p.params.PrintDocs && p.onRecord != nil {
			if err := p.onRecord(rec.Name, pos); err != nil {
				return n, err
			}
		}

		rcrc, rlen = 0, 0
		inRun = false
		for _, c := range rec.Seq {
			if 'a' <= c && c <= 'z' {
				c -= 'a' - 'A'
			}
			acgt := p.alpha[c] < 4
			switch {
			case p.params.TrimNonACGT && !acgt:
				if !inRun {
					inRun = true
					run = NRun{Pos: pos - 1, Len: 1}
				} else {
					run.Len++
				}
				p.stats.Trimmed++
				continue
			case p.params.TrimNonACGT && inRun:
				p.ntab = append(p.ntab, run)
				inRun = false
			case p.params.NonACGTToA && !acgt:
				c = 'A'
			}

			phrase = append(phrase, c)
			chunk[nc] = c
			nc++
			if nc == len(chunk) {
				rcrc = crc32.Update(rcrc, crc32.IEEETable, chunk[:nc])
				rlen += int64(nc)
				nc = 0
			}
			hash.Update(c)
			if fed <= w {
				fed++
			}
			if fed > w && hash.Value()%p.params.P == 0 {
				p.processPhrase(phrase)
				if p.params.GetSAI {
					p.sai = append(p.sai, pos+1)
				}
				phrase = append(phrase[:0], phrase[len(phrase)-w:]...)
			}
			n++
			pos++
		}
		if inRun {
			p.ntab = append(p.ntab, run)
		}
		rcrc = crc32.Update(rcrc, crc32.IEEETable, chunk[:nc])
		rlen += int64(nc)
		nc = 0
		crc = hashutil.CombineCRC32(crc32.IEEE, crc, rcrc, rlen)
		p.stats.Records++
		p.stats.Residues += uint64(len(rec.Seq))
		if p.params.Verbose {
			p.log.Debug("Parsed record", "name", rec.Name, "size", datasize.ByteSize(len(rec.Seq)).HR(), "phrases", len(p.parse))
		}
	}

	for i := 0; i < w; i++ {
		phrase = append(phrase, p.term)
	}
	p.processPhrase(phrase)
	if p.params.GetSAI {
		p.sai = append(p.sai, pos+Offset(w))
	}

	p.stats.Length = n
	p.stats.Phrases = len(p.parse)
	p.stats.CRC = crc
	p.log.Info("Parsing done", "records", p.stats.Records, "length", datasize.ByteSize(n).HR(),
		"phrases", len(p.parse), "distinct", p.dict.Len(), "dictSize", datasize.ByteSize(p.dict.Bytes()).HR())
	return n, nil
}

func (p *Parser) processPhrase(phrase []byte) {
	id := p.dict.Insert(phrase)
	p.parse = append(p.parse, id)
	p.last = append(p.last, phrase[len(phrase)-p.params.W-1])
}
