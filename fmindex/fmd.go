// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package fmindex

import (
	"sort"

	"github.com/dsnet/golib/errs"
	"github.com/dsnet/succinct/alphabet"
	"github.com/dsnet/succinct/internal/errors"
)

// The FMD-index is an FM-index over X$ where X = W#RC(W), RC is the reverse
// complement, # is a separator, and W joins the texts T1, ..., Tk with the
// separator: W = T1#T2#...#Tk. Since X is its own reverse complement, the
// interval of RC(P) can be tracked alongside the interval of P and backward
// extension of one is forward extension of the other.
//
// Internally, the sentinel keeps rank 0, the separator takes rank 1, and every
// other symbol s of the user alphabet is shifted to s+1. Both the sentinel and
// the separator are their own complements.
const separator alphabet.Symbol = 1

// Direction is the side of a match that Extend grows.
type Direction int

const (
	Backward Direction = iota // Prepend a symbol
	Forward                   // Append a symbol
)

func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "invalid"
	}
}

// Strand identifies which copy of the text a hit lies on.
type Strand int

const (
	Plus  Strand = iota // The text as given
	Minus               // The reverse complement of the text
)

func (s Strand) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// BiInterval is a pair of intervals of equal size: the rows prefixed by a
// pattern P and the rows prefixed by its reverse complement.
type BiInterval struct {
	Lower     int // First row of P
	LowerRev  int // First row of RC(P)
	Size      int // Number of rows in either interval
	MatchSize int // Length of P
}

// Forward reports the interval of the pattern.
func (bi BiInterval) Forward() Interval {
	return Interval{bi.Lower, bi.Lower + bi.Size}
}

// Revcomp reports the interval of the reverse complement of the pattern.
func (bi BiInterval) Revcomp() Interval {
	return Interval{bi.LowerRev, bi.LowerRev + bi.Size}
}

// Empty reports whether the pattern does not occur.
func (bi BiInterval) Empty() bool { return bi.Size <= 0 }

func (bi BiInterval) swapped() BiInterval {
	bi.Lower, bi.LowerRev = bi.LowerRev, bi.Lower
	return bi
}

// Hit is an occurrence of a pattern on either strand of an indexed text.
// Pos is always a position of the text as given: for a hit on the minus
// strand, the reverse complement of the pattern starts at Pos.
type Hit struct {
	Text   int // Index of the text in the collection
	Pos    int
	Strand Strand
}

// FMDIndex is a bidirectional index over a collection of texts and their
// reverse complements.
type FMDIndex struct {
	alpha  *alphabet.Alphabet // User alphabet
	fm     *FMIndex           // Index over the internal alphabet
	comp   []alphabet.Symbol  // Complement over the internal alphabet
	starts []int              // Offset of every text in W, plus len(W)+1
	n      int                // Length of W
}

// BuildFMD builds an FMD-index over text, which must consist of at least one
// non-sentinel symbol of a, optionally followed by the sentinel. The alphabet
// must carry a complement pairing.
func BuildFMD(text []alphabet.Symbol, a *alphabet.Alphabet, c *Config) (*FMDIndex, error) {
	return BuildFMDs([][]alphabet.Symbol{text}, a, c)
}

// BuildFMDs builds an FMD-index over a collection of texts, each following the
// rules of BuildFMD. Hits report the index of the text they lie in.
func BuildFMDs(texts [][]alphabet.Symbol, a *alphabet.Alphabet, c *Config) (*FMDIndex, error) {
	texts = append([][]alphabet.Symbol(nil), texts...)
	for i, t := range texts {
		if len(t) > 0 && t[len(t)-1] == alphabet.Sentinel {
			texts[i] = t[:len(t)-1]
		}
	}
	if err := validateFMD(texts, a); err != nil {
		return nil, err
	}
	inner, err := alphabet.Numeric(a.Len() + 1)
	if err != nil {
		return nil, err
	}

	comp := make([]alphabet.Symbol, a.Len()+1)
	comp[alphabet.Sentinel], comp[separator] = alphabet.Sentinel, separator
	for s := alphabet.Symbol(1); int(s) < a.Len(); s++ {
		comp[s+1] = a.Complement(s) + 1
	}

	starts := make([]int, 0, len(texts)+1)
	n := -1
	for _, t := range texts {
		starts = append(starts, n+1)
		n += len(t) + 1
	}
	starts = append(starts, n+1)

	x := make([]alphabet.Symbol, 2*n+2)
	for i, t := range texts {
		for j, s := range t {
			p := starts[i] + j
			x[p] = s + 1
			x[2*n-p] = comp[s+1]
		}
		if i > 0 {
			x[starts[i]-1] = separator
			x[2*n-starts[i]+1] = separator
		}
	}
	x[n] = separator
	x[2*n+1] = alphabet.Sentinel

	fm, err := Build(x, inner, c)
	if err != nil {
		return nil, err
	}
	return &FMDIndex{alpha: a, fm: fm, comp: comp, starts: starts, n: n}, nil
}

func validateFMD(texts [][]alphabet.Symbol, a *alphabet.Alphabet) (err error) {
	defer errs.Recover(&err)
	errs.Assert(a.HasComplement(), errorf(errors.InvalidInput, "alphabet %v has no complement pairing", a))
	errs.Assert(len(texts) > 0, errorf(errors.InvalidInput, "no texts"))
	for k, t := range texts {
		if len(t) == 0 {
			errs.Panic(errorf(errors.InvalidInput, "empty text %d", k))
		}
		for i, s := range t {
			if s == alphabet.Sentinel {
				errs.Panic(errorf(errors.InvalidInput, "sentinel at offset %d of text %d precedes its end", i, k))
			}
			if !a.Contains(s) {
				errs.Panic(errorf(errors.InvalidInput, "symbol %d at offset %d of text %d is outside the alphabet", s, i, k))
			}
		}
	}
	return nil
}

// BuildFMDString encodes text with a and builds an FMD-index over it.
func BuildFMDString(text []byte, a *alphabet.Alphabet, c *Config) (*FMDIndex, error) {
	return BuildFMDStrings([][]byte{text}, a, c)
}

// BuildFMDStrings encodes every text with a and builds an FMD-index over the
// collection.
func BuildFMDStrings(texts [][]byte, a *alphabet.Alphabet, c *Config) (*FMDIndex, error) {
	syms := make([][]alphabet.Symbol, len(texts))
	for i, t := range texts {
		var err error
		if syms[i], err = a.Encode(t); err != nil {
			return nil, err
		}
	}
	return BuildFMDs(syms, a, c)
}

// Alphabet reports the alphabet of the indexed texts.
func (fmd *FMDIndex) Alphabet() *alphabet.Alphabet { return fmd.alpha }

// NumTexts reports the number of texts in the collection.
func (fmd *FMDIndex) NumTexts() int { return len(fmd.starts) - 1 }

// TextLen reports the length of the i-th text, without its sentinel.
func (fmd *FMDIndex) TextLen(i int) int { return fmd.starts[i+1] - fmd.starts[i] - 1 }

// FM returns the underlying FM-index. Its text is W#RC(W)$ over an alphabet in
// which the separator has rank 1 and every other symbol is shifted up by one.
// Intervals reported by the FMD-index are intervals of this index.
func (fmd *FMDIndex) FM() *FMIndex { return fmd.fm }

// inner maps a user symbol to the internal alphabet. The second result is
// false for symbols outside the user alphabet.
func (fmd *FMDIndex) inner(c alphabet.Symbol) (alphabet.Symbol, bool) {
	switch {
	case c == alphabet.Sentinel:
		return alphabet.Sentinel, true
	case fmd.alpha.Contains(c):
		return c + 1, true
	default:
		return 0, false
	}
}

// Full reports the bi-interval of the empty pattern.
func (fmd *FMDIndex) Full() BiInterval {
	return BiInterval{Size: fmd.fm.Len()}
}

// Init reports the bi-interval of the single symbol pattern c.
func (fmd *FMDIndex) Init(c alphabet.Symbol) BiInterval {
	return fmd.Extend(fmd.Full(), c, Backward)
}

// Extend grows the match of bi by the symbol c on the given side.
// A symbol outside the alphabet yields an empty bi-interval.
func (fmd *FMDIndex) Extend(bi BiInterval, c alphabet.Symbol, dir Direction) BiInterval {
	a, ok := fmd.inner(c)
	if !ok {
		return BiInterval{MatchSize: bi.MatchSize + 1}
	}
	if dir == Forward {
		return fmd.backwardExt(bi.swapped(), fmd.comp[a]).swapped()
	}
	return fmd.backwardExt(bi, a)
}

// backwardExt computes the bi-interval of aP from that of P.
//
// The rows of RC(aP) = RC(P)comp(a) are the sub-range of the rows of RC(P)
// followed by comp(a). These sub-ranges are ordered by the following symbol,
// so the lower bound for a is the lower bound of RC(P) plus the sizes of the
// sub-ranges of every b with comp(b) < comp(a). Each such size equals the
// number of rows of P preceded by b.
func (fmd *FMDIndex) backwardExt(bi BiInterval, a alphabet.Symbol) BiInterval {
	lo, hi := bi.Lower, bi.Lower+bi.Size
	l := bi.LowerRev
	for x := range fmd.comp {
		b := fmd.comp[x]
		o := fmd.fm.occ.Count(b, lo)
		s := fmd.fm.occ.Count(b, hi) - o
		if b == a {
			return BiInterval{
				Lower:     fmd.fm.less[a] + o,
				LowerRev:  l,
				Size:      s,
				MatchSize: bi.MatchSize + 1,
			}
		}
		l += s
	}
	panic("unreachable")
}

// BackwardSearch reports the bi-interval of pattern.
func (fmd *FMDIndex) BackwardSearch(pattern []alphabet.Symbol) BiInterval {
	bi := fmd.Full()
	for i := len(pattern) - 1; i >= 0 && !bi.Empty(); i-- {
		bi = fmd.Extend(bi, pattern[i], Backward)
	}
	return bi
}

// SMEMs reports the super-maximal exact matches of pattern that cover the
// symbol at offset i. A super-maximal exact match is a substring of pattern
// that occurs in the text (on either strand), cannot be extended in either
// direction while still occurring, and is not contained in another such
// match. Matches are reported in order of decreasing start offset.
func (fmd *FMDIndex) SMEMs(pattern []alphabet.Symbol, i int) ([]BiInterval, error) {
	if i < 0 || i >= len(pattern) {
		return nil, errorf(errors.OutOfRange, "offset %d of pattern of length %d", i, len(pattern))
	}
	bi := fmd.Init(pattern[i])
	if bi.Empty() {
		return nil, nil
	}

	// Grow forward from i, recording each bi-interval just before its size
	// shrinks. Longer matches have smaller intervals.
	var prev, curr []BiInterval
	for _, c := range pattern[i+1:] {
		next := fmd.Extend(bi, c, Forward)
		if next.Size != bi.Size {
			curr = append(curr, bi)
		}
		if next.Empty() {
			break
		}
		bi = next
	}
	if len(curr) == 0 || curr[len(curr)-1] != bi {
		curr = append(curr, bi)
	}
	for l, r := 0, len(curr)-1; l < r; l, r = l+1, r-1 {
		curr[l], curr[r] = curr[r], curr[l]
	}

	// Grow every candidate backward. A candidate that can no longer grow is
	// a match, unless a longer candidate grew past it in the same round.
	var matches []BiInterval
	prev, curr = curr, nil
	j := len(pattern)
	for k := i - 1; k >= -1; k-- {
		c := alphabet.Sentinel
		if k >= 0 {
			c = pattern[k]
		}
		curr = curr[:0]
		lastSize := -1
		for _, cand := range prev {
			next := fmd.Extend(cand, c, Backward)
			if (next.Empty() || k == -1) && len(curr) == 0 && k < j {
				j = k
				matches = append(matches, cand)
			}
			if !next.Empty() && next.Size != lastSize {
				lastSize = next.Size
				curr = append(curr, next)
			}
		}
		if len(curr) == 0 {
			break
		}
		prev, curr = curr, prev
	}
	return matches, nil
}

// Locate reports the hits of the pattern whose bi-interval is bi, ordered by
// text, then position, then strand. Occurrences that span a separator are
// never reported.
func (fmd *FMDIndex) Locate(bi BiInterval) ([]Hit, error) {
	ps, err := fmd.fm.Locate(bi.Forward())
	if err != nil {
		return nil, err
	}
	n, m := fmd.n, bi.MatchSize
	hits := make([]Hit, 0, len(ps))
	for _, p := range ps {
		switch {
		case p < n:
			if h, ok := fmd.hit(p, m, Plus); ok {
				hits = append(hits, h)
			}
		case p > n && p <= 2*n:
			// The reverse complement of the pattern covers W[n-q-m, n-q).
			q := p - (n + 1)
			if h, ok := fmd.hit(n-q-m, m, Minus); ok {
				hits = append(hits, h)
			}
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		x, y := hits[i], hits[j]
		if x.Text != y.Text {
			return x.Text < y.Text
		}
		if x.Pos != y.Pos {
			return x.Pos < y.Pos
		}
		return x.Strand < y.Strand
	})
	return hits, nil
}

// hit maps a match of length m at offset p of W to a text of the collection.
// It fails if the match does not start on a symbol of a single text.
func (fmd *FMDIndex) hit(p, m int, s Strand) (Hit, bool) {
	if p < 0 {
		return Hit{}, false
	}
	i := sort.SearchInts(fmd.starts, p+1) - 1
	pos, end := p-fmd.starts[i], fmd.starts[i+1]-1
	if p >= end || p+m > end {
		return Hit{}, false
	}
	return Hit{Text: i, Pos: pos, Strand: s}, true
}
