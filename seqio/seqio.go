// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package seqio streams named sequence records out of FASTA and FASTQ files.
//
// Decompression is transparent: gzip, xz, zstd and bzip2 inputs are detected
// by the underlying fastx reader. The special path "-" reads standard input.
package seqio

import (
	"io"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Record is a single named sequence.
//
// Records returned by a Reader are only valid until the next call to Read.
type Record struct {
	Name string
	Seq  []byte
}

// Reader yields records one at a time. Read returns io.EOF once all records
// have been consumed.
type Reader interface {
	Read() (*Record, error)
	Close() error
}

type fastxReader struct {
	rd  *fastx.Reader
	rec Record
}

// Open opens the named file (or standard input for "-") for reading.
func Open(path string) (Reader, error) {
	rd, err := fastx.NewReader(seq.Unlimit, path, "")
	if err != nil {
		return nil, err
	}
	return &fastxReader{rd: rd}, nil
}

func (fr *fastxReader) Read() (*Record, error) {
	rec, err := fr.rd.Read()
	if err != nil {
		return nil, err
	}
	fr.rec.Name = string(rec.ID)
	fr.rec.Seq = rec.Seq.Seq
	return &fr.rec, nil
}

func (fr *fastxReader) Close() error {
	fr.rd.Close()
	return nil
}

type sliceReader struct {
	recs []Record
	rec  Record
}

// NewSliceReader creates a Reader over in-memory records.
func NewSliceReader(recs ...Record) Reader {
	return &sliceReader{recs: recs}
}

func (sr *sliceReader) Read() (*Record, error) {
	if len(sr.recs) == 0 {
		return nil, io.EOF
	}
	sr.rec, sr.recs = sr.recs[0], sr.recs[1:]
	return &sr.rec, nil
}

func (sr *sliceReader) Close() error { return nil }

// Counter wraps a Reader and invokes fn with the length of every record read.
type Counter struct {
	Reader
	Fn func(n int)
}

func (c Counter) Read() (*Record, error) {
	rec, err := c.Reader.Read()
	if err == nil && c.Fn != nil {
		c.Fn(len(rec.Seq))
	}
	return rec, err
}
