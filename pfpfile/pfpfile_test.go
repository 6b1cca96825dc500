// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfpfile

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/pfbwt/internal/testutil"
	"github.com/dsnet/pfbwt/pfp"
	"github.com/dsnet/pfbwt/seqio"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// writeAll runs every stage of the parser and writes every output.
func writeAll(t *testing.T, wr *Writer, ps *pfp.Parser, recs []seqio.Record) {
	t.Helper()
	if _, err := ps.Parse(seqio.NewSliceReader(recs...)); err != nil {
		t.Fatalf("unexpected Parse error: %v", err)
	}
	dw, err := wr.Dict()
	if err != nil {
		t.Fatalf("unexpected Dict error: %v", err)
	}
	if err := ps.UpdateDict(dw.Add); err != nil {
		t.Fatalf("unexpected UpdateDict error: %v", err)
	}
	if err := dw.Close(); err != nil {
		t.Fatalf("unexpected Close error: %v", err)
	}
	if err := wr.WriteLast(ps.Last()); err != nil {
		t.Fatalf("unexpected WriteLast error: %v", err)
	}
	if err := wr.WriteSAI(ps.SAI()); err != nil {
		t.Fatalf("unexpected WriteSAI error: %v", err)
	}
	if err := wr.WriteDocs(ps.Docs()); err != nil {
		t.Fatalf("unexpected WriteDocs error: %v", err)
	}
	if err := wr.WriteNTab(ps.NTab()); err != nil {
		t.Fatalf("unexpected WriteNTab error: %v", err)
	}
	if err := ps.BWTOfParse(wr.WriteBWT); err != nil {
		t.Fatalf("unexpected BWTOfParse error: %v", err)
	}
	ranks, err := ps.ParseRanks()
	if err != nil {
		t.Fatalf("unexpected ParseRanks error: %v", err)
	}
	if err := wr.WriteParse(ranks); err != nil {
		t.Fatalf("unexpected WriteParse error: %v", err)
	}
	if err := wr.WriteInfo(NewInfo("mem", ps)); err != nil {
		t.Fatalf("unexpected WriteInfo error: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	recs := testutil.Pangenome(testutil.NewRand(0), 4, 3000, 60)
	recs[1].Seq = append(append(recs[1].Seq[:100:100], "NNNNN"...), recs[1].Seq[100:]...)
	var in []seqio.Record
	for _, r := range recs {
		in = append(in, seqio.Record{Name: r.Name, Seq: r.Seq})
	}
	params := pfp.Params{W: 6, P: 16, Hash: "kr", GetSAI: true, GetDA: true, TrimNonACGT: true}

	for _, name := range []string{"none", "gzip", "zstd", "xz", "snappy"} {
		t.Run(name, func(t *testing.T) {
			prefix := filepath.Join(t.TempDir(), "out")
			wr, err := NewWriter(prefix, name, 0)
			if err != nil {
				t.Fatalf("unexpected NewWriter error: %v", err)
			}
			ps, err := pfp.NewParser(params, nil)
			if err != nil {
				t.Fatalf("unexpected NewParser error: %v", err)
			}
			writeAll(t, wr, ps, in)

			phrases, err := ReadDict(wr.Path(Dict))
			if err != nil {
				t.Fatalf("unexpected ReadDict error: %v", err)
			}
			if len(phrases) != ps.Dict().Len() {
				t.Errorf("dictionary size mismatch: got %d, want %d", len(phrases), ps.Dict().Len())
			}
			for i := 1; i < len(phrases); i++ {
				if bytes.Compare(phrases[i-1], phrases[i]) >= 0 {
					t.Errorf("phrases out of order at rank %d", i+1)
				}
			}

			occs, err := ReadOffsets(wr.Path(Occ))
			if err != nil {
				t.Fatalf("unexpected ReadOffsets error: %v", err)
			}
			if diff := cmp.Diff(ps.Occs(), occs); diff != "" {
				t.Errorf("occ mismatch (-want +got):\n%s", diff)
			}

			parse, err := ReadWords(wr.Path(Parse))
			if err != nil {
				t.Fatalf("unexpected ReadWords error: %v", err)
			}
			ranks, _ := ps.ParseRanks()
			if diff := cmp.Diff(ranks, parse); diff != "" {
				t.Errorf("parse mismatch (-want +got):\n%s", diff)
			}
			if parse[len(parse)-1] != 0 {
				t.Errorf("parse not terminated by 0")
			}

			// The ranked parse and the dictionary spell the text.
			var text []byte
			for i, r := range parse[:len(parse)-1] {
				p := phrases[r-1]
				if i > 0 {
					p = p[params.W:]
				}
				text = append(text, p...)
			}
			text = text[1 : len(text)-params.W]
			if !bytes.Equal(text, ps.Text()) {
				t.Errorf("text spelled by the files mismatch")
			}

			last, err := ReadBytes(wr.Path(Last))
			if err != nil {
				t.Fatalf("unexpected ReadBytes error: %v", err)
			}
			if !bytes.Equal(last, ps.Last()) {
				t.Errorf("last mismatch")
			}
			sai, err := ReadOffsets(wr.Path(SAI))
			if err != nil {
				t.Fatalf("unexpected ReadOffsets error: %v", err)
			}
			if diff := cmp.Diff(ps.SAI(), sai); diff != "" {
				t.Errorf("sai mismatch (-want +got):\n%s", diff)
			}
			for _, kind := range []string{BWLast, IList, BWSAI} {
				b, err := ReadBytes(wr.Path(kind))
				if err != nil {
					t.Fatalf("unexpected ReadBytes error: %v", err)
				}
				if len(b) == 0 {
					t.Errorf("%s is empty", kind)
				}
			}
			ilist, err := ReadOffsets(wr.Path(IList))
			if err != nil {
				t.Fatalf("unexpected ReadOffsets error: %v", err)
			}
			if len(ilist) != len(parse) || ilist[0] != 1 {
				t.Errorf("ilist mismatch: length %d, first %d", len(ilist), ilist[0])
			}

			names, starts, err := ReadDocs(wr.Path(Docs))
			if err != nil {
				t.Fatalf("unexpected ReadDocs error: %v", err)
			}
			if diff := cmp.Diff(ps.Docs().Names, names); diff != "" {
				t.Errorf("doc names mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(ps.Docs().Starts, starts); diff != "" {
				t.Errorf("doc starts mismatch (-want +got):\n%s", diff)
			}

			ntab, err := ReadNTab(wr.Path(NTab))
			if err != nil {
				t.Fatalf("unexpected ReadNTab error: %v", err)
			}
			if diff := cmp.Diff([]pfp.NRun{{Pos: 3099, Len: 5}}, ntab); diff != "" {
				t.Errorf("ntab mismatch (-want +got):\n%s", diff)
			}

			info, err := ReadInfo(wr.Path(InfoFile))
			if err != nil {
				t.Fatalf("unexpected ReadInfo error: %v", err)
			}
			want := NewInfo("mem", ps)
			want.Codec = name
			want.Files = wr.Files()[:len(wr.Files())-1]
			if diff := cmp.Diff(want, info, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("info mismatch (-want +got):\n%s", diff)
			}
			if info.CRC == 0 || info.Length != 12000 || info.Trimmed != 5 {
				t.Errorf("unexpected info: %+v", info)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	wr, err := NewWriter("/tmp/x", "zstd", 3)
	if err != nil {
		t.Fatalf("unexpected NewWriter error: %v", err)
	}
	var vectors = []struct {
		kind string
		want string
	}{
		{Dict, "/tmp/x.dict.zst"},
		{Parse, "/tmp/x.parse.zst"},
		{InfoFile, "/tmp/x.info.toml"},
	}
	for i, v := range vectors {
		if got := wr.Path(v.kind); got != v.want {
			t.Errorf("test %d, Path(%q) = %q, want %q", i, v.kind, got, v.want)
		}
	}
	if _, err := NewWriter("/tmp/x", "lz4", 0); err == nil {
		t.Errorf("NewWriter with unknown codec: got nil error")
	}
}

func TestWriteInts(t *testing.T) {
	vs := make([]pfp.Offset, 3*chunkSize+7)
	for i := range vs {
		vs[i] = pfp.Offset(i * 31)
	}
	var bb bytes.Buffer
	if err := writeInts(&bb, vs); err != nil {
		t.Fatalf("unexpected writeInts error: %v", err)
	}
	if got, want := bb.Len(), len(vs)*offsetSize(); got != want {
		t.Errorf("encoded size mismatch: got %d, want %d", got, want)
	}

	errBuggy := errors.New("buggy writer")
	bw := &testutil.BuggyWriter{W: io.Discard, N: 1000, Err: errBuggy}
	if err := writeInts(bw, vs); err != errBuggy {
		t.Errorf("writeInts error mismatch: got %v, want %v", err, errBuggy)
	}
	bw = &testutil.BuggyWriter{W: io.Discard, N: 10, Err: errBuggy}
	if err := writeDocs(bw, []string{"chr1", "chr2"}, []pfp.Offset{0, 100}); err != errBuggy {
		t.Errorf("writeDocs error mismatch: got %v, want %v", err, errBuggy)
	}
}

func offsetSize() int {
	if pfp.Wide {
		return 8
	}
	return 4
}

func TestCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	var vectors = []struct {
		name string
		data string
		read func(string) error
	}{{
		name: "a.dict",
		data: "ACGT\x01ACG",
		read: func(p string) error { _, err := ReadDict(p); return err },
	}, {
		name: "b.dict",
		data: "ACGT\x01ACG\x00",
		read: func(p string) error { _, err := ReadDict(p); return err },
	}, {
		name: "c.occ",
		data: "\x01\x00\x00",
		read: func(p string) error { _, err := ReadOffsets(p); return err },
	}, {
		name: "d.ntab",
		data: string(make([]byte, 3*offsetSize())),
		read: func(p string) error { _, err := ReadNTab(p); return err },
	}}

	for i, v := range vectors {
		path := filepath.Join(dir, v.name)
		if err := os.WriteFile(path, []byte(v.data), 0664); err != nil {
			t.Fatalf("test %d, unexpected WriteFile error: %v", i, err)
		}
		if err := v.read(path); !errors.Is(err, ErrCorrupt) {
			t.Errorf("test %d, read error mismatch: got %v, want %v", i, err, ErrCorrupt)
		}
	}

	path := filepath.Join(dir, "e.docs")
	if err := os.WriteFile(path, []byte("chr1 0\n"), 0664); err != nil {
		t.Fatalf("unexpected WriteFile error: %v", err)
	}
	if _, _, err := ReadDocs(path); !errors.Is(err, ErrDocs) {
		t.Errorf("ReadDocs error mismatch: got %v, want %v", err, ErrDocs)
	}
	if _, err := ReadDict(filepath.Join(dir, "missing.dict")); err == nil {
		t.Errorf("ReadDict on a missing file: got nil error")
	}
}
