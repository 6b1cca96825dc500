// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dsnet/pfbwt/seqio"
)

func FuzzParse(f *testing.F) {
	f.Add([]byte("ACGTACGTACGT"), uint8(4), uint8(1))
	f.Add([]byte("acgtnnnnACGT\nGATTACA\n\nTTTT"), uint8(3), uint8(2))
	f.Add([]byte("NNNNNNNNNNNNNNNNNNNN"), uint8(2), uint8(5))
	f.Add([]byte(""), uint8(1), uint8(1))

	f.Fuzz(func(t *testing.T, data []byte, w, p uint8) {
		params := Params{W: 1 + int(w)%MaxWindow, P: 1 + uint64(p)%16, GetSAI: true, NonACGTToA: true}
		var recs []seqio.Record
		var want []byte
		for _, line := range bytes.Split(data, []byte{'\n'}) {
			recs = append(recs, seqio.Record{Name: "r", Seq: line})
			for _, c := range line {
				switch c {
				case 'a', 'c', 'g', 't':
					c -= 'a' - 'A'
				case 'A', 'C', 'G', 'T':
				default:
					c = 'A'
				}
				want = append(want, c)
			}
		}

		ps, err := NewParser(params, nil)
		if err != nil {
			t.Fatalf("unexpected NewParser error: %v", err)
		}
		n, err := ps.Parse(seqio.NewSliceReader(recs...))
		if err != nil {
			t.Fatalf("unexpected Parse error: %v", err)
		}
		if n != uint64(len(want)) {
			t.Fatalf("length mismatch: got %d, want %d", n, len(want))
		}
		if got := ps.Text(); !bytes.Equal(got, want) {
			t.Fatalf("text mismatch:\ngot  %q\nwant %q", got, want)
		}
		if err := ps.UpdateDict(nil); err != nil {
			t.Fatalf("unexpected UpdateDict error: %v", err)
		}

		var rows int
		err = ps.BWTOfParse(func(bwlast []byte, ilist, bwsai []Offset) error {
			if len(bwlast) != len(ilist) || len(bwsai) != len(ilist) {
				t.Errorf("output lengths mismatch: %d, %d, %d", len(bwlast), len(ilist), len(bwsai))
			}
			if len(ilist) > 0 && ilist[0] != 1 {
				t.Errorf("ilist[0] = %d, want 1", ilist[0])
			}
			rows = len(ilist)
			return nil
		})
		switch {
		case errors.Is(err, ErrOneWord):
		case err != nil:
			t.Fatalf("unexpected BWTOfParse error: %v", err)
		case rows != len(ps.PhraseIDs())+1:
			t.Errorf("row count mismatch: got %d, want %d", rows, len(ps.PhraseIDs())+1)
		}
	})
}
