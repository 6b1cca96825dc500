// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package codec

import (
	"io"

	"github.com/ulikunitz/xz"
)

func init() {
	Register("xz", "xz",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			return xz.NewWriter(w) // No compression levels
		},
		func(r io.Reader) (io.ReadCloser, error) {
			xr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(xr), nil
		})
}
