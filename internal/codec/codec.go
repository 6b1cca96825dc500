// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package codec is a registry of the stream compressors that output files
// may be written with.
package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DefaultLevel selects the default compression level of every codec.
const DefaultLevel = 0

type (
	Encoder func(w io.Writer, lvl int) (io.WriteCloser, error)
	Decoder func(r io.Reader) (io.ReadCloser, error)
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "codec: " + string(e) }

type codec struct {
	ext string
	enc Encoder
	dec Decoder
}

var codecs map[string]codec

// Register makes a codec available under name. Files written with the codec
// carry the extension ext, which is empty for uncompressed output.
func Register(name, ext string, enc Encoder, dec Decoder) {
	if codecs == nil {
		codecs = make(map[string]codec)
	}
	if _, ok := codecs[name]; ok {
		panic(fmt.Sprintf("codec %q registered twice", name))
	}
	codecs[name] = codec{ext, enc, dec}
}

func lookup(name string) (codec, error) {
	c, ok := codecs[name]
	if !ok {
		return codec{}, Error(fmt.Sprintf("unknown codec %q", name))
	}
	return c, nil
}

// Names lists the registered codecs in sorted order.
func Names() []string {
	var names []string
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ext returns the file extension of the named codec, including the dot.
func Ext(name string) (string, error) {
	c, err := lookup(name)
	if err != nil || c.ext == "" {
		return "", err
	}
	return "." + c.ext, nil
}

// Detect returns the codec whose extension ends path, or "none".
func Detect(path string) string {
	for name, c := range codecs {
		if c.ext != "" && strings.HasSuffix(path, "."+c.ext) {
			return name
		}
	}
	return "none"
}

// NewWriter wraps w with the compressor of the named codec.
func NewWriter(name string, w io.Writer, lvl int) (io.WriteCloser, error) {
	c, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return c.enc(w, lvl)
}

// NewReader wraps r with the decompressor of the named codec.
func NewReader(name string, r io.Reader) (io.ReadCloser, error) {
	c, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return c.dec(r)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func init() {
	Register("none", "",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			return nopWriteCloser{w}, nil
		},
		func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		})
}
