// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

package fmindex

import (
	"bytes"

	"github.com/dsnet/succinct/alphabet"
	"github.com/dsnet/succinct/fmindex"
)

// Fuzz treats the first byte of data as a sample rate and the remaining DNA
// letters as the text. Every other byte is dropped.
func Fuzz(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	rate := 1 + int(data[0]%16)
	var text []byte
	for _, c := range data[1:] {
		switch c {
		case 'A', 'C', 'G', 'T':
			text = append(text, c)
		}
	}
	if len(text) == 0 {
		return 0
	}
	a := alphabet.DNA()
	conf := &fmindex.Config{SampleRate: rate}

	fm, err := fmindex.BuildString(text, a, conf)
	if err != nil {
		panic(err)
	}
	fmd, err := fmindex.BuildFMDString(text, a, conf)
	if err != nil {
		panic(err)
	}
	if got := a.Decode(fm.Text()); !bytes.Equal(got[:len(text)], text) {
		panic("mismatching text")
	}

	// Every substring of a short prefix must be found where it occurs.
	syms, _ := a.Encode(text)
	for i := 0; i < len(syms) && i < 8; i++ {
		for j := i + 1; j <= len(syms) && j <= i+8; j++ {
			testPattern(fm, fmd, syms, syms[i:j])
		}
	}
	return 1
}

func testPattern(fm *fmindex.FMIndex, fmd *fmindex.FMDIndex, text, pattern []alphabet.Symbol) {
	var want []int
	for i := 0; i+len(pattern) <= len(text); i++ {
		if equal(text[i:i+len(pattern)], pattern) {
			want = append(want, i)
		}
	}
	got := fm.Offsets(pattern)
	if len(got) != len(want) {
		panic("mismatching offset count")
	}
	for i := range got {
		if got[i] != want[i] {
			panic("mismatching offsets")
		}
	}

	// The pattern and its reverse complement select the same hits.
	rc, err := fmd.Alphabet().ReverseComplement(pattern)
	if err != nil {
		panic(err)
	}
	bi, birc := fmd.BackwardSearch(pattern), fmd.BackwardSearch(rc)
	if bi.Size != birc.Size || bi.Size < len(want) {
		panic("asymmetric bi-intervals")
	}
	if bi.Size > 0 && bi.Forward() != birc.Revcomp() {
		panic("mismatching reverse complement interval")
	}
}

func equal(x, y []alphabet.Symbol) bool {
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
