// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwt implements the Burrows-Wheeler Transform and the count tables
// that backward search is built on.
//
// The transform is derived from a suffix array computed by SA-IS, which runs
// in O(n). Every text is terminated by a unique sentinel, so the suffix order
// is total and the transform needs no separate origin pointer: the sentinel's
// row is always row 0.
//
// References:
//
//	https://sites.google.com/site/yuta256/sais
//	https://www.quora.com/How-can-I-optimize-burrows-wheeler-transform-and-inverse-transform-to-work-in-O-n-time-O-n-space
package bwt

import (
	"github.com/dsnet/golib/errs"
	"github.com/dsnet/succinct/alphabet"
	"github.com/dsnet/succinct/internal"
	"github.com/dsnet/succinct/internal/errors"
	"github.com/dsnet/succinct/internal/sais"
)

func errorf(format string, args ...interface{}) error {
	return errors.Errorf(errors.InvalidInput, "bwt", format, args...)
}

// Validate checks that text is a valid input for indexing: non-empty, made of
// symbols in [0, sigma), and holding the sentinel exactly once, at the end.
func Validate(text []alphabet.Symbol, sigma int) (err error) {
	defer errs.Recover(&err)
	errs.Assert(len(text) > 0, errorf("empty text"))
	last := len(text) - 1
	for i, c := range text {
		if int(c) >= sigma {
			errs.Panic(errorf("symbol %d at offset %d is outside the alphabet", c, i))
		}
		if c == alphabet.Sentinel && i != last {
			errs.Panic(errorf("sentinel at offset %d precedes the end of the text", i))
		}
	}
	errs.Assert(text[last] == alphabet.Sentinel, errorf("text does not end with the sentinel"))
	return nil
}

// SuffixArray validates text and returns its suffix array. SA[0] is always
// the position of the sentinel.
func SuffixArray(text []alphabet.Symbol, a *alphabet.Alphabet) ([]int, error) {
	if err := Validate(text, a.Len()); err != nil {
		return nil, err
	}
	sa := make([]int, len(text))
	sais.ComputeSA(text, sa, a.Len())
	if internal.GoFuzz {
		checkOrder(text, sa)
	}
	return sa, nil
}

// checkOrder panics unless the suffixes named by sa are strictly increasing.
func checkOrder(text []alphabet.Symbol, sa []int) {
	for i := 1; i < len(sa); i++ {
		x, y := text[sa[i-1]:], text[sa[i]:]
		k := 0
		for k < len(x) && k < len(y) && x[k] == y[k] {
			k++
		}
		if k == len(y) || (k < len(x) && x[k] > y[k]) {
			panic("suffixes out of order")
		}
	}
}

// Transform returns the transform of text given its suffix array:
// BWT[i] = text[SA[i]-1], wrapping to the last symbol when SA[i] is 0.
func Transform(text []alphabet.Symbol, sa []int) []alphabet.Symbol {
	if len(sa) != len(text) {
		panic("mismatching sizes")
	}
	n := len(text)
	b := make([]alphabet.Symbol, n)
	for i, p := range sa {
		if p == 0 {
			p = n
		}
		b[i] = text[p-1]
	}
	return b
}

// Less returns the table where Less[c] is the number of symbols in text that
// are strictly smaller than c. The table has sigma+1 entries so that
// Less[c+1]-Less[c] is the frequency of c for every symbol c.
func Less(text []alphabet.Symbol, sigma int) []int {
	less := make([]int, sigma+1)
	for _, c := range text {
		less[int(c)+1]++
	}
	for c := 1; c <= sigma; c++ {
		less[c] += less[c-1]
	}
	return less
}

// Inverse reconstructs the text from its transform by walking the LF-mapping
// from the sentinel's row. It runs in O(n) time and uses O(n) extra words.
func Inverse(b []alphabet.Symbol, sigma int) ([]alphabet.Symbol, error) {
	if len(b) == 0 {
		return nil, errorf("empty transform")
	}
	var sentinels int
	for i, c := range b {
		if int(c) >= sigma {
			return nil, errorf("symbol %d at row %d is outside the alphabet", c, i)
		}
		if c == alphabet.Sentinel {
			sentinels++
		}
	}
	if sentinels != 1 {
		return nil, errorf("transform holds %d sentinels, want 1", sentinels)
	}

	// LF[i] is the row of the suffix one position to the left of row i.
	next := Less(b, sigma)[:sigma]
	lf := make([]int, len(b))
	for i, c := range b {
		lf[i] = next[c]
		next[c]++
	}

	n := len(b)
	text := make([]alphabet.Symbol, n)
	text[n-1] = alphabet.Sentinel
	for k, r := n-2, 0; k >= 0; k-- {
		text[k] = b[r]
		r = lf[r]
	}
	return text, nil
}
