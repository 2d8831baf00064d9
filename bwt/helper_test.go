// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"github.com/dsnet/succinct/alphabet"
	"github.com/dsnet/succinct/rankselect"
)

func mustNumeric(size int) *alphabet.Alphabet {
	a, err := alphabet.Numeric(size)
	if err != nil {
		panic(err)
	}
	return a
}

func rankselectConfig(super, block int) *rankselect.Config {
	return &rankselect.Config{SuperblockSize: super, BlockSize: block}
}
