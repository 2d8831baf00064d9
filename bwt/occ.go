// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"github.com/dsnet/succinct/alphabet"
	"github.com/dsnet/succinct/rankselect"
)

// Occ counts symbol occurrences in prefixes of a transform. It keeps one
// rank-select bit-plane per symbol, where bit k of plane c is set iff
// BWT[k] == c. All planes are filled in a single pass over the transform.
type Occ struct {
	n      int
	planes []*rankselect.RankSelect
}

// NewOcc builds the occurrence structure of b over an alphabet of sigma
// symbols. The configuration tunes the sampling of every bit-plane.
func NewOcc(b []alphabet.Symbol, sigma int, c *rankselect.Config) (*Occ, error) {
	builders := make([]*rankselect.Builder, sigma)
	for i := range builders {
		builders[i] = rankselect.NewBuilder(len(b))
	}
	for k, s := range b {
		if int(s) >= sigma {
			return nil, errorf("symbol %d at row %d is outside the alphabet", s, k)
		}
		builders[s].Set(k)
	}

	o := &Occ{n: len(b), planes: make([]*rankselect.RankSelect, sigma)}
	for i, bb := range builders {
		rs, err := bb.Build(c)
		if err != nil {
			return nil, err
		}
		o.planes[i] = rs
	}
	return o, nil
}

// Len reports the length of the underlying transform.
func (o *Occ) Len() int { return o.n }

// Sigma reports the number of symbols with a bit-plane.
func (o *Occ) Sigma() int { return len(o.planes) }

// Count reports the number of occurrences of c in BWT[0, i).
// Symbols outside the alphabet never occur.
func (o *Occ) Count(c alphabet.Symbol, i int) int {
	if int(c) >= len(o.planes) {
		return 0
	}
	return o.planes[c].Rank1(i)
}

// Symbol reports BWT[i], the only symbol whose bit-plane has bit i set.
// The planes are probed in rank order.
func (o *Occ) Symbol(i int) alphabet.Symbol {
	for c, p := range o.planes {
		if p.Bit(i) {
			return alphabet.Symbol(c)
		}
	}
	panic("row outside the transform")
}

// Select reports the row of the j-th occurrence of c, counting from zero.
func (o *Occ) Select(c alphabet.Symbol, j int) (int, error) {
	if int(c) >= len(o.planes) {
		return 0, errorf("symbol %d is outside the alphabet", c)
	}
	return o.planes[c].Select1(j)
}

// SizeBytes reports the memory held by all bit-planes.
func (o *Occ) SizeBytes() (n int) {
	for _, p := range o.planes {
		n += p.SizeBytes()
	}
	return n
}
