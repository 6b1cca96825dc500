// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pfpfile

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dsnet/pfbwt/pfp"
	"github.com/pelletier/go-toml/v2"
)

// Info summarizes a parsing run.
type Info struct {
	Input    string     `toml:"input" comment:"Path of the parsed input"`
	Wide     bool       `toml:"wide" comment:"Whether 64-bit offsets were used"`
	Codec    string     `toml:"codec"`
	Records  int        `toml:"records"`
	Residues uint64     `toml:"residues" comment:"Characters read, including trimmed ones"`
	Length   uint64     `toml:"length" comment:"Characters processed"`
	Trimmed  uint64     `toml:"trimmed"`
	Phrases  int        `toml:"phrases"`
	Distinct int        `toml:"distinct"`
	DictSize int        `toml:"dict-size" comment:"Total length of the distinct phrases"`
	CRC      uint32     `toml:"crc32" comment:"CRC-32 of the processed text"`
	Files    []string   `toml:"files"`
	Params   pfp.Params `toml:"params"`
}

// NewInfo fills an Info from the state of a Parser after parsing.
func NewInfo(input string, ps *pfp.Parser) Info {
	st := ps.Stats()
	return Info{
		Input:    input,
		Wide:     pfp.Wide,
		Records:  st.Records,
		Residues: st.Residues,
		Length:   st.Length,
		Trimmed:  st.Trimmed,
		Phrases:  st.Phrases,
		Distinct: ps.Dict().Len(),
		DictSize: ps.Dict().Bytes(),
		CRC:      st.CRC,
		Params:   ps.Params(),
	}
}

// WriteInfo writes the run summary, listing every file written so far.
func (w *Writer) WriteInfo(info Info) error {
	path := w.Path(InfoFile)
	info.Codec = w.codec
	info.Files = append([]string(nil), w.files...)
	b, err := toml.Marshal(info)
	if err != nil {
		return errors.Wrap(err, "pfpfile: failed to encode info")
	}
	if err := os.WriteFile(path, b, 0664); err != nil {
		return errors.Wrapf(err, "pfpfile: failed to write %s", path)
	}
	w.files = append(w.files, path)
	return nil
}

// ReadInfo reads a run summary.
func ReadInfo(path string) (Info, error) {
	var info Info
	b, err := os.ReadFile(path)
	if err != nil {
		return info, errors.Wrapf(err, "pfpfile: failed to read %s", path)
	}
	if err := toml.Unmarshal(b, &info); err != nil {
		return info, errors.Wrapf(err, "pfpfile: invalid info file %s", path)
	}
	return info, nil
}
