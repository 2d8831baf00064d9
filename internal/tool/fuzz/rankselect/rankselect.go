// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

package rankselect

import (
	"github.com/dsnet/succinct/rankselect"
)

var configs = []*rankselect.Config{
	nil,
	{SuperblockSize: 64, BlockSize: 64},
	{SuperblockSize: 256, BlockSize: 128},
}

// Fuzz checks that rank and select agree with each other over the bits of
// data, using every sampling configuration.
func Fuzz(data []byte) int {
	for _, c := range configs {
		rs, err := rankselect.FromBytes(data, 8*len(data), c)
		if err != nil {
			panic(err)
		}
		var ones int
		for i := 0; i < rs.Len(); i++ {
			if rs.Rank1(i) != ones {
				panic("mismatching rank")
			}
			if rs.Bit(i) {
				if p, err := rs.Select1(ones); err != nil || p != i {
					panic("mismatching select")
				}
				ones++
			} else if p, err := rs.Select0(i - ones); err != nil || p != i {
				panic("mismatching select")
			}
		}
		if rs.Rank1(rs.Len()) != ones || rs.Ones() != ones {
			panic("mismatching count")
		}
		if _, err := rs.Select1(ones); err == nil {
			panic("select past the last set bit")
		}
	}
	if len(data) == 0 {
		return 0
	}
	return 1
}
