// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package codec

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func init() {
	Register("gzip", "gz",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			if lvl == DefaultLevel {
				lvl = gzip.DefaultCompression
			}
			return gzip.NewWriterLevel(w, lvl)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		})
	Register("zstd", "zst",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			var opts []zstd.EOption
			if lvl != DefaultLevel {
				opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl)))
			}
			return zstd.NewWriter(w, opts...)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr.IOReadCloser(), nil
		})
}
