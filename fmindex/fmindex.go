// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package fmindex implements the FM-index and the FMD-index.
//
// An FM-index answers whether and how often a pattern occurs in an indexed
// text in time proportional to the pattern length, independent of the text
// length. Every query narrows a half-open interval of rows of the sorted
// suffix matrix, one symbol at a time, from the end of the pattern towards its
// start. The rows are translated back to text positions through a (possibly
// sampled) suffix array.
//
// The FMD-index indexes a text together with its reverse complement, which
// allows a match to be extended in both directions.
//
// All indexes are immutable once built and safe for concurrent use.
//
// References:
//
//	Ferragina, P. and Manzini, G. "Opportunistic data structures with
//	applications." FOCS 2000.
//	Li, H. "Exploring single-sample SNP and INDEL calling with whole-genome de
//	novo assembly." Bioinformatics 28, 2012.
package fmindex

import (
	"iter"
	"sort"

	"github.com/dsnet/succinct/alphabet"
	"github.com/dsnet/succinct/bwt"
	"github.com/dsnet/succinct/internal/errors"
	"github.com/dsnet/succinct/rankselect"
)

// DefaultSampleRate retains the full suffix array.
const DefaultSampleRate = 1

func errorf(code int, format string, args ...interface{}) error {
	return errors.Errorf(code, "fmindex", format, args...)
}

// Config configures index construction.
// A nil *Config is equivalent to the zero value.
type Config struct {
	// RankSelect tunes the bit-planes backing the occurrence counts.
	RankSelect *rankselect.Config

	// SampleRate keeps the suffix array entry of every text position that is
	// a multiple of SampleRate. Other positions are recovered by walking the
	// LF-mapping, at most SampleRate-1 steps per position.
	// The zero value selects DefaultSampleRate.
	SampleRate int
}

func (c *Config) rankSelect() *rankselect.Config {
	if c == nil {
		return nil
	}
	return c.RankSelect
}

func (c *Config) sampleRate() (int, error) {
	if c == nil || c.SampleRate == 0 {
		return DefaultSampleRate, nil
	}
	if c.SampleRate < 0 {
		return 0, errorf(errors.InvalidInput, "sample rate %d is negative", c.SampleRate)
	}
	return c.SampleRate, nil
}

// Interval is a half-open range [Lo, Hi) of rows of the sorted suffix matrix.
// Every row in the interval is a suffix starting with the same pattern.
type Interval struct {
	Lo, Hi int
}

// Len reports the number of rows in the interval.
func (iv Interval) Len() int {
	if iv.Hi < iv.Lo {
		return 0
	}
	return iv.Hi - iv.Lo
}

// Empty reports whether the interval holds no rows.
func (iv Interval) Empty() bool { return iv.Hi <= iv.Lo }

// FMIndex is a full-text index over a sentinel-terminated text.
type FMIndex struct {
	alpha *alphabet.Alphabet
	n     int // Length of the text, including the sentinel
	less  []int
	occ   *bwt.Occ // Holds the last column as one bit-plane per symbol

	rate    int
	samples []int                  // Suffix array entries of the sampled rows, in row order
	marks   *rankselect.RankSelect // Set for every sampled row; nil if every row is sampled
}

// Build builds an FM-index over text, which must consist of symbols of a and
// end with the only sentinel. On error, no index is returned.
func Build(text []alphabet.Symbol, a *alphabet.Alphabet, c *Config) (*FMIndex, error) {
	rate, err := c.sampleRate()
	if err != nil {
		return nil, err
	}
	sa, err := bwt.SuffixArray(text, a)
	if err != nil {
		return nil, err
	}
	occ, err := bwt.NewOcc(bwt.Transform(text, sa), a.Len(), c.rankSelect())
	if err != nil {
		return nil, err
	}

	fm := &FMIndex{
		alpha: a,
		n:     len(text),
		less:  bwt.Less(text, a.Len()),
		occ:   occ,
		rate:  rate,
	}
	if rate == 1 {
		fm.samples = sa
		return fm, nil
	}

	// Position 0 is always sampled, so every LF walk stops.
	b := rankselect.NewBuilder(len(sa))
	for row, p := range sa {
		if p%rate == 0 {
			b.Set(row)
			fm.samples = append(fm.samples, p)
		}
	}
	if fm.marks, err = b.Build(c.rankSelect()); err != nil {
		return nil, err
	}
	return fm, nil
}

// BuildString encodes text with a and builds an FM-index over it.
// The sentinel is appended if text does not already end with it.
func BuildString(text []byte, a *alphabet.Alphabet, c *Config) (*FMIndex, error) {
	syms, err := a.EncodeText(text)
	if err != nil {
		return nil, err
	}
	return Build(syms, a, c)
}

// Alphabet reports the alphabet of the indexed text.
func (fm *FMIndex) Alphabet() *alphabet.Alphabet { return fm.alpha }

// Len reports the length of the indexed text, including the sentinel.
func (fm *FMIndex) Len() int { return fm.n }

// SampleRate reports the suffix array sample rate.
func (fm *FMIndex) SampleRate() int { return fm.rate }

// Less reports the number of symbols in the text smaller than c.
func (fm *FMIndex) Less(c alphabet.Symbol) int {
	if !fm.alpha.Contains(c) {
		return fm.n
	}
	return fm.less[c]
}

// Occ reports the number of occurrences of c in the first i rows of the
// last column.
func (fm *FMIndex) Occ(c alphabet.Symbol, i int) int {
	return fm.occ.Count(c, i)
}

// Full reports the interval holding every row, which matches the empty
// pattern.
func (fm *FMIndex) Full() Interval { return Interval{0, fm.n} }

// Extend narrows iv, the interval of some pattern P, to the interval of cP.
// A symbol outside the alphabet yields an empty interval.
func (fm *FMIndex) Extend(iv Interval, c alphabet.Symbol) Interval {
	if !fm.alpha.Contains(c) || iv.Empty() {
		return Interval{}
	}
	base := fm.less[c]
	return Interval{
		Lo: base + fm.occ.Count(c, iv.Lo),
		Hi: base + fm.occ.Count(c, iv.Hi),
	}
}

// BackwardSearch reports the interval of rows prefixed by pattern.
// The empty pattern matches every row.
func (fm *FMIndex) BackwardSearch(pattern []alphabet.Symbol) Interval {
	iv := fm.Full()
	for i := len(pattern) - 1; i >= 0 && !iv.Empty(); i-- {
		iv = fm.Extend(iv, pattern[i])
	}
	if iv.Empty() {
		return Interval{}
	}
	return iv
}

// Count reports the number of occurrences of pattern in the text.
func (fm *FMIndex) Count(pattern []alphabet.Symbol) int {
	return fm.BackwardSearch(pattern).Len()
}

// LF reports the row of the suffix starting one position before the suffix of
// the given row. The row of the whole text maps to the row of the sentinel.
func (fm *FMIndex) LF(row int) int {
	c := fm.occ.Symbol(row)
	return fm.less[c] + fm.occ.Count(c, row)
}

// lookup reports the text position of the suffix at row.
func (fm *FMIndex) lookup(row int) int {
	if fm.marks == nil {
		return fm.samples[row]
	}
	var steps int
	for !fm.marks.Bit(row) {
		row = fm.LF(row)
		steps++
	}
	return fm.samples[fm.marks.Rank1(row)] + steps
}

func (fm *FMIndex) checkInterval(iv Interval) error {
	if iv.Lo < 0 || iv.Hi > fm.n {
		return errorf(errors.OutOfRange, "interval [%d, %d) of %d rows", iv.Lo, iv.Hi, fm.n)
	}
	return nil
}

// Positions returns an iterator over the text positions of the rows in iv,
// in row order. The sequence may be iterated any number of times.
//
// It panics with an out of range error if iv is not within [0, Len].
func (fm *FMIndex) Positions(iv Interval) iter.Seq[int] {
	if err := fm.checkInterval(iv); err != nil {
		panic(err)
	}
	return func(yield func(int) bool) {
		for row := iv.Lo; row < iv.Hi; row++ {
			if !yield(fm.lookup(row)) {
				return
			}
		}
	}
}

// Locate reports the text positions of the rows in iv in increasing order.
func (fm *FMIndex) Locate(iv Interval) ([]int, error) {
	if err := fm.checkInterval(iv); err != nil {
		return nil, err
	}
	ps := make([]int, 0, iv.Len())
	for p := range fm.Positions(iv) {
		ps = append(ps, p)
	}
	sort.Ints(ps)
	return ps, nil
}

// Offsets reports every position where pattern occurs, in increasing order.
func (fm *FMIndex) Offsets(pattern []alphabet.Symbol) []int {
	ps, _ := fm.Locate(fm.BackwardSearch(pattern))
	return ps
}

// Text reconstructs the indexed text by walking the LF-mapping from the row of
// the whole text.
func (fm *FMIndex) Text() []alphabet.Symbol {
	n := fm.n
	text := make([]alphabet.Symbol, n)
	text[n-1] = alphabet.Sentinel
	for k, row := n-2, 0; k >= 0; k-- {
		c := fm.occ.Symbol(row)
		text[k] = c
		row = fm.less[c] + fm.occ.Count(c, row)
	}
	return text
}

// SizeBytes reports the approximate memory held by the index.
func (fm *FMIndex) SizeBytes() int {
	n := 8*len(fm.less) + 8*len(fm.samples) + fm.occ.SizeBytes()
	if fm.marks != nil {
		n += fm.marks.SizeBytes()
	}
	return n
}
