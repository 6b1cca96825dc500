// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfpfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/dsnet/pfbwt/internal/codec"
	"github.com/dsnet/pfbwt/pfp"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "pfpfile: " + string(e) }

var (
	ErrCorrupt error = Error("file is corrupted")
	ErrDocs    error = Error("malformed docs line")
)

// readFile reads and decompresses the whole file, choosing the codec by the
// file extension.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "pfpfile: failed to open %s", path)
	}
	defer f.Close()
	zr, err := codec.NewReader(codec.Detect(path), bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "pfpfile: failed to decompress %s", path)
	}
	defer zr.Close()
	b, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrapf(err, "pfpfile: failed to read %s", path)
	}
	return b, nil
}

func readInts[T integer](path string) ([]T, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var zero T
	size := binary.Size(zero)
	if len(b)%size != 0 {
		return nil, errors.Wrapf(ErrCorrupt, "pfpfile: %s", path)
	}
	vs := make([]T, len(b)/size)
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, vs); err != nil {
		return nil, errors.Wrapf(err, "pfpfile: failed to decode %s", path)
	}
	return vs, nil
}

// ReadOffsets reads an occ, sai, ilist, or bwsai file.
func ReadOffsets(path string) ([]pfp.Offset, error) { return readInts[pfp.Offset](path) }

// ReadWords reads a parse file.
func ReadWords(path string) ([]pfp.Word, error) { return readInts[pfp.Word](path) }

// ReadBytes reads a last or bwlast file.
func ReadBytes(path string) ([]byte, error) { return readFile(path) }

// ReadDict reads a dict file and returns the phrases in rank order.
func ReadDict(path string) ([][]byte, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 || b[len(b)-1] != pfp.EndOfDict {
		return nil, errors.Wrapf(ErrCorrupt, "pfpfile: %s", path)
	}
	b = b[:len(b)-1]
	var phrases [][]byte
	for len(b) > 0 {
		i := bytes.IndexByte(b, pfp.EndOfWord)
		if i < 0 {
			return nil, errors.Wrapf(ErrCorrupt, "pfpfile: %s", path)
		}
		phrases = append(phrases, b[:i:i])
		b = b[i+1:]
	}
	return phrases, nil
}

// ReadNTab reads a run table file.
func ReadNTab(path string) ([]pfp.NRun, error) {
	vs, err := ReadOffsets(path)
	if err != nil {
		return nil, err
	}
	if len(vs)%2 != 0 {
		return nil, errors.Wrapf(ErrCorrupt, "pfpfile: %s", path)
	}
	ntab := make([]pfp.NRun, 0, len(vs)/2)
	for i := 0; i < len(vs); i += 2 {
		ntab = append(ntab, pfp.NRun{Pos: vs[i], Len: vs[i+1]})
	}
	return ntab, nil
}

// ReadDocs reads a docs file.
func ReadDocs(path string) (names []string, starts []pfp.Offset, err error) {
	b, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}
	for _, line := range bytes.Split(bytes.TrimSuffix(b, []byte("\n")), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		i := bytes.LastIndexByte(line, '\t')
		if i < 0 {
			return nil, nil, errors.Wrapf(ErrDocs, "pfpfile: %s: %q", path, line)
		}
		start, err := strconv.ParseUint(string(line[i+1:]), 10, 64)
		if err != nil || start > uint64(^pfp.Offset(0)) {
			return nil, nil, errors.Wrapf(ErrDocs, "pfpfile: %s: %q", path, line)
		}
		names = append(names, string(line[:i]))
		starts = append(starts, pfp.Offset(start))
	}
	return names, starts, nil
}
