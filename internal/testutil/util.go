// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package testutil is a collection of testing helper methods.
package testutil

import (
	"sort"
	"strings"

	"github.com/dsnet/succinct/alphabet"
)

// ResizeData resizes the input. If n < 0, then the original input will be
// returned as is. If n <= len(input), then the input slice will be truncated.
// However, if n > len(input), then the input will be replicated to fill in
// the missing bytes.
//
// If n > len(input), then len(input) must be > 0.
func ResizeData(input []byte, n int) []byte {
	if n < 0 {
		return input
	}
	if len(input) >= n {
		return input[:n]
	}
	if len(input) == 0 {
		panic("unable to replicate an empty string")
	}

	output := make([]byte, n)
	for i := range output {
		output[i] = input[i%len(input)]
	}
	return output
}

// ParseBits parses a string of '0' and '1' characters into bits, where the
// first character is bit 0. Spaces and underscores are ignored.
func ParseBits(s string) []bool {
	var b []bool
	for _, c := range s {
		switch c {
		case '0', '1':
			b = append(b, c == '1')
		case ' ', '_', '\t', '\n':
		default:
			panic("invalid bit character: " + strings.TrimSpace(string(c)))
		}
	}
	return b
}

// NaiveSuffixArray computes the suffix array of text by comparison sorting
// all suffixes. It runs in O(n^2 log n) and only serves as a test oracle.
func NaiveSuffixArray(text []alphabet.Symbol) []int {
	sa := make([]int, len(text))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool {
		return compareSuffix(text[sa[i]:], text[sa[j]:]) < 0
	})
	return sa
}

func compareSuffix(a, b []alphabet.Symbol) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return +1
		}
	}
	return len(a) - len(b)
}

// NaiveOccurrences reports every offset of text where pattern begins,
// in increasing order.
func NaiveOccurrences(text, pattern []alphabet.Symbol) []int {
	var occs []int
	for i := 0; i+len(pattern) <= len(text); i++ {
		if compareSuffix(text[i:i+len(pattern)], pattern) == 0 {
			occs = append(occs, i)
		}
	}
	return occs
}
