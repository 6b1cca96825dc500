// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package pfpfile persists the outputs of prefix-free parsing.
//
// Every output is written to its own file named after a common prefix:
//
//	<prefix>.dict    phrases in rank order, each followed by 0x01, then 0x00
//	<prefix>.occ     occurrence count of every phrase in rank order
//	<prefix>.parse   the ranked parse, including the final 0
//	<prefix>.last    last character of every phrase of the parse
//	<prefix>.sai     text offset of every phrase boundary
//	<prefix>.bwlast  last characters permuted by the BWT of the parse
//	<prefix>.ilist   rows of the BWT of the parse grouped by rank
//	<prefix>.bwsai   boundary offsets permuted by the BWT of the parse
//	<prefix>.docs    tab separated record names and start offsets
//	<prefix>.ntab    start and length of every trimmed non-ACGT run
//
// Integers are little-endian with the width of pfp.Offset or pfp.Word.
// When a codec is used, its extension is appended to every file name.
// The run summary is written uncompressed to <prefix>.info.toml.
package pfpfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dsnet/pfbwt/internal/codec"
	"github.com/dsnet/pfbwt/pfp"
)

// File kinds.
const (
	Dict   = "dict"
	Occ    = "occ"
	Parse  = "parse"
	Last   = "last"
	SAI    = "sai"
	BWLast = "bwlast"
	IList  = "ilist"
	BWSAI  = "bwsai"
	Docs   = "docs"
	NTab   = "ntab"

	InfoFile = "info.toml"
)

// Writer creates the output files of a parsing run.
type Writer struct {
	prefix string
	codec  string
	ext    string
	level  int
	files  []string
}

// NewWriter creates a Writer for files named after prefix and compressed
// with the named codec at the given level.
func NewWriter(prefix, codecName string, level int) (*Writer, error) {
	ext, err := codec.Ext(codecName)
	if err != nil {
		return nil, err
	}
	return &Writer{prefix: prefix, codec: codecName, ext: ext, level: level}, nil
}

// Path returns the name of the file of the given kind.
func (w *Writer) Path(kind string) string {
	if kind == InfoFile {
		return w.prefix + "." + kind
	}
	return w.prefix + "." + kind + w.ext
}

// Files lists the files written so far.
func (w *Writer) Files() []string { return w.files }

// Codec reports the codec the files are written with.
func (w *Writer) Codec() string { return w.codec }

type file struct {
	*bufio.Writer
	zw   io.WriteCloser
	f    *os.File
	path string
}

func (w *Writer) create(kind string) (*file, error) {
	path := w.Path(kind)
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "pfpfile: failed to create %s", path)
	}
	zw, err := codec.NewWriter(w.codec, f, w.level)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "pfpfile: failed to compress %s", path)
	}
	w.files = append(w.files, path)
	return &file{bufio.NewWriter(zw), zw, f, path}, nil
}

// finish flushes and closes the file, keeping the first of err and any
// error it encounters.
func (f *file) finish(err error) error {
	if err == nil {
		err = f.Flush()
	}
	if cerr := f.zw.Close(); err == nil {
		err = cerr
	}
	if cerr := f.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "pfpfile: failed to write %s", f.path)
	}
	return nil
}

func (w *Writer) writeFile(kind string, fn func(io.Writer) error) error {
	f, err := w.create(kind)
	if err != nil {
		return err
	}
	return f.finish(fn(f))
}

// chunkSize bounds the memory used when encoding integer arrays.
const chunkSize = 1 << 16

type integer interface {
	~uint32 | ~uint64 | ~int32 | ~int64
}

func writeInts[T integer](w io.Writer, vs []T) error {
	for len(vs) > 0 {
		n := len(vs)
		if n > chunkSize {
			n = chunkSize
		}
		if err := binary.Write(w, binary.LittleEndian, vs[:n]); err != nil {
			return err
		}
		vs = vs[n:]
	}
	return nil
}

// DictWriter streams the ranked dictionary into the dict and occ files.
// Add has the signature of pfp.DictFunc.
type DictWriter struct {
	dict, occ *file
	err       error
}

// Dict creates the dict and occ files.
func (w *Writer) Dict() (*DictWriter, error) {
	dict, err := w.create(Dict)
	if err != nil {
		return nil, err
	}
	occ, err := w.create(Occ)
	if err != nil {
		dict.finish(nil)
		return nil, err
	}
	return &DictWriter{dict: dict, occ: occ}, nil
}

// Add appends a phrase and its frequency.
func (dw *DictWriter) Add(phrase []byte, freq pfp.Offset) error {
	if dw.err != nil {
		return dw.err
	}
	if _, err := dw.dict.Write(phrase); err != nil {
		dw.err = err
		return err
	}
	if err := dw.dict.WriteByte(pfp.EndOfWord); err != nil {
		dw.err = err
		return err
	}
	if err := binary.Write(dw.occ, binary.LittleEndian, freq); err != nil {
		dw.err = err
		return err
	}
	return nil
}

// Close terminates the dictionary and closes both files.
func (dw *DictWriter) Close() error {
	err := dw.err
	if err == nil {
		err = dw.dict.WriteByte(pfp.EndOfDict)
	}
	err1 := dw.dict.finish(err)
	err2 := dw.occ.finish(dw.err)
	if err1 != nil {
		return err1
	}
	return err2
}

// WriteParse writes the ranked parse.
func (w *Writer) WriteParse(ranks []pfp.Word) error {
	return w.writeFile(Parse, func(wr io.Writer) error { return writeInts(wr, ranks) })
}

// WriteLast writes the last array.
func (w *Writer) WriteLast(last []byte) error {
	return w.writeFile(Last, func(wr io.Writer) error {
		_, err := wr.Write(last)
		return err
	})
}

// WriteSAI writes the boundary offsets.
func (w *Writer) WriteSAI(sai []pfp.Offset) error {
	return w.writeFile(SAI, func(wr io.Writer) error { return writeInts(wr, sai) })
}

// WriteBWT writes the outputs of the BWT of the parse. The bwsai file is
// only written if bwsai is not empty. It has the signature of pfp.BWTFunc.
func (w *Writer) WriteBWT(bwlast []byte, ilist, bwsai []pfp.Offset) error {
	if err := w.writeFile(BWLast, func(wr io.Writer) error {
		_, err := wr.Write(bwlast)
		return err
	}); err != nil {
		return err
	}
	if err := w.writeFile(IList, func(wr io.Writer) error { return writeInts(wr, ilist) }); err != nil {
		return err
	}
	if len(bwsai) == 0 {
		return nil
	}
	return w.writeFile(BWSAI, func(wr io.Writer) error { return writeInts(wr, bwsai) })
}

// WriteDocs writes the document table.
func (w *Writer) WriteDocs(t *pfp.DocTable) error {
	return w.writeFile(Docs, func(wr io.Writer) error { return writeDocs(wr, t.Names, t.Starts) })
}

func writeDocs(w io.Writer, names []string, starts []pfp.Offset) error {
	for i, name := range names {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", name, starts[i]); err != nil {
			return err
		}
	}
	return nil
}

// DocsWriter streams record starts as they are read.
// Add has the signature of pfp.DocFunc.
type DocsWriter struct {
	f *file
}

// DocsStream creates the docs file for streaming.
func (w *Writer) DocsStream() (*DocsWriter, error) {
	f, err := w.create(Docs)
	if err != nil {
		return nil, err
	}
	return &DocsWriter{f}, nil
}

// Add appends a record start.
func (dw *DocsWriter) Add(name string, start pfp.Offset) error {
	return writeDocs(dw.f, []string{name}, []pfp.Offset{start})
}

// Close closes the docs file.
func (dw *DocsWriter) Close() error { return dw.f.finish(nil) }

// WriteNTab writes the run table as pairs of position and length.
func (w *Writer) WriteNTab(ntab []pfp.NRun) error {
	return w.writeFile(NTab, func(wr io.Writer) error {
		buf := make([]pfp.Offset, 0, 2*len(ntab))
		for _, r := range ntab {
			buf = append(buf, r.Pos, r.Len)
		}
		return writeInts(wr, buf)
	})
}
