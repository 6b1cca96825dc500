// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package codec

import (
	"io"

	"github.com/golang/snappy"
)

func init() {
	Register("snappy", "sz",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			return snappy.NewBufferedWriter(w), nil
		},
		func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(snappy.NewReader(r)), nil
		})
}
