// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"github.com/dsnet/succinct/alphabet"
	"github.com/dsnet/succinct/fmindex"
)

// SampledRate is the suffix array sample rate of the "fm-sampled" variant.
const SampledRate = 32

func init() {
	RegisterBuilder("fm",
		func(text []alphabet.Symbol, a *alphabet.Alphabet) (Index, error) {
			return fmindex.Build(text, a, nil)
		})
	RegisterBuilder("fm-sampled",
		func(text []alphabet.Symbol, a *alphabet.Alphabet) (Index, error) {
			return fmindex.Build(text, a, &fmindex.Config{SampleRate: SampledRate})
		})
	RegisterBuilder("fmd",
		func(text []alphabet.Symbol, a *alphabet.Alphabet) (Index, error) {
			fmd, err := fmindex.BuildFMD(text, a, nil)
			if err != nil {
				return nil, err
			}
			return fmdIndex{fmd}, nil
		})
}

// fmdIndex counts the hits of a pattern on both strands.
type fmdIndex struct{ *fmindex.FMDIndex }

func (x fmdIndex) Count(pattern []alphabet.Symbol) int {
	return x.BackwardSearch(pattern).Size
}

func (x fmdIndex) SizeBytes() int {
	return x.FM().SizeBytes()
}
