// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package testutil is a collection of testing helper methods.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Record is a single named sequence used to build test inputs.
type Record struct {
	Name string
	Seq  []byte
}

// Pangenome returns n records, each a mutated copy of a random base sequence
// of the given length. Collections like these are highly repetitive, which is
// the input shape prefix-free parsing is designed for.
func Pangenome(r *Rand, n, length, rate int) []Record {
	base := r.DNA(length)
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{Name: fmt.Sprintf("seq%d", i), Seq: r.Mutate(base, rate)}
	}
	return recs
}

// FormatFASTA renders records in FASTA format, wrapping lines at 60 columns.
func FormatFASTA(recs []Record) []byte {
	var bb bytes.Buffer
	for _, rec := range recs {
		fmt.Fprintf(&bb, ">%s\n", rec.Name)
		for s := rec.Seq; len(s) > 0; {
			n := len(s)
			if n > 60 {
				n = 60
			}
			bb.Write(s[:n])
			bb.WriteByte('\n')
			s = s[n:]
		}
	}
	return bb.Bytes()
}

// MustWriteFASTA writes the records to a FASTA file in dir or else panics.
func MustWriteFASTA(dir, name string, recs []Record) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, FormatFASTA(recs), 0644); err != nil {
		panic(err)
	}
	return path
}

// Concat returns the concatenation of all record sequences.
func Concat(recs []Record) []byte {
	var b []byte
	for _, rec := range recs {
		b = append(b, rec.Seq...)
	}
	return b
}

// BuggyWriter returns Err after N bytes have been written to W.
type BuggyWriter struct {
	W   io.Writer
	N   int64 // Number of valid bytes to write
	Err error // Return this error after N bytes
}

func (bw *BuggyWriter) Write(buf []byte) (int, error) {
	if int64(len(buf)) > bw.N {
		buf = buf[:bw.N]
	}
	n, err := bw.W.Write(buf)
	bw.N -= int64(n)
	if err == nil && bw.N <= 0 {
		return n, bw.Err
	}
	return n, err
}
