// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"compress/flate"
	"io"

	kflate "github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"
)

// Level is the compression level of the flate encoders.
const Level = 6

func init() {
	RegisterEncoder("std",
		func(w io.Writer) io.WriteCloser {
			zw, err := flate.NewWriter(w, Level)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterEncoder("kp",
		func(w io.Writer) io.WriteCloser {
			zw, err := kflate.NewWriter(w, Level)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterEncoder("xz",
		func(w io.Writer) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		})
}
