// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package alphabet defines finite symbol sets for the text indexes.
//
// An Alphabet assigns every letter a dense rank. Rank 0 is reserved for the
// sentinel, which sorts before every other symbol and terminates each text.
// The remaining letters are ranked by their byte value.
//
// An Alphabet may also carry a complement pairing, which the FMD-index uses to
// search both strands of a double-stranded text at once. The pairing is
// configuration, not a property of the letters: DNA and IUPAC presets supply
// one, while user alphabets add theirs through WithComplement.
package alphabet

import (
	"math/bits"
	"sort"
	"strings"

	"github.com/dsnet/golib/errs"
	"github.com/dsnet/succinct/internal/errors"
)

// Symbol is the dense rank of a letter within an Alphabet.
type Symbol uint16

// Sentinel is the rank of the sentinel symbol in every Alphabet.
const Sentinel Symbol = 0

// MaxSize is the largest number of symbols an Alphabet may hold,
// including the sentinel.
const MaxSize = 1 << 16

func errorf(format string, args ...interface{}) error {
	return errors.Errorf(errors.InvalidInput, "alphabet", format, args...)
}

// Alphabet is an immutable symbol set. The zero value is not usable; use New,
// Numeric, or one of the presets.
type Alphabet struct {
	size     int
	sentinel byte       // Letter used for the sentinel (only if letters != nil)
	letters  []byte     // letters[r] is the letter of rank r
	ranks    [256]int32 // Rank of each letter, or -1 if absent
	comp     []Symbol   // Complement of each symbol, or nil if unpaired
}

// New returns an alphabet over the given letters. The sentinel letter is
// assigned rank 0 and the letters are ranked in increasing byte order.
func New(sentinel byte, letters string) (*Alphabet, error) {
	if len(letters) == 0 {
		return nil, errorf("empty letter set")
	}
	ls := []byte(letters)
	sort.Slice(ls, func(i, j int) bool { return ls[i] < ls[j] })

	a := &Alphabet{size: len(ls) + 1, sentinel: sentinel}
	for i := range a.ranks {
		a.ranks[i] = -1
	}
	a.letters = append([]byte{sentinel}, ls...)
	a.ranks[sentinel] = 0
	for i, c := range ls {
		if c == sentinel {
			return nil, errorf("letter %q collides with the sentinel", c)
		}
		if a.ranks[c] >= 0 {
			return nil, errorf("duplicate letter %q", c)
		}
		a.ranks[c] = int32(i + 1)
	}
	return a, nil
}

// Numeric returns a letter-less alphabet of the given size, where symbol 0 is
// the sentinel and symbols 1..size-1 are ordinary symbols.
func Numeric(size int) (*Alphabet, error) {
	if size < 2 || size > MaxSize {
		return nil, errorf("invalid size %d", size)
	}
	a := &Alphabet{size: size}
	for i := range a.ranks {
		a.ranks[i] = -1
	}
	return a, nil
}

// WithComplement returns a copy of the alphabet carrying a complement pairing.
// The pairs are whitespace separated letter pairs, such as "AT CG NN".
// Every non-sentinel letter must appear in exactly one pair.
func (a *Alphabet) WithComplement(pairs string) (*Alphabet, error) {
	if a.letters == nil {
		return nil, errorf("letter pairs on a numeric alphabet")
	}
	comp := make([]Symbol, a.size)
	set := make([]bool, a.size)
	set[Sentinel] = true
	for _, p := range strings.Fields(pairs) {
		if len(p) != 2 {
			return nil, errorf("malformed pair %q", p)
		}
		x, okx := a.Rank(p[0])
		y, oky := a.Rank(p[1])
		if !okx || !oky || x == Sentinel || y == Sentinel {
			return nil, errorf("pair %q outside the alphabet", p)
		}
		for _, xy := range [][2]Symbol{{x, y}, {y, x}} {
			if set[xy[0]] && comp[xy[0]] != xy[1] {
				return nil, errorf("conflicting pair %q", p)
			}
			comp[xy[0]], set[xy[0]] = xy[1], true
		}
	}
	return a.WithComplementTable(comp)
}

// WithComplementTable returns a copy of the alphabet using comp[s] as the
// complement of symbol s. The table must be an involution that fixes the
// sentinel.
func (a *Alphabet) WithComplementTable(comp []Symbol) (ac *Alphabet, err error) {
	defer errs.Recover(&err)
	errs.Assert(len(comp) == a.size, errorf("complement table has %d entries, want %d", len(comp), a.size))
	errs.Assert(comp[Sentinel] == Sentinel, errorf("sentinel must be its own complement"))
	for s, c := range comp {
		errs.Assert(int(c) < a.size, errorf("complement of %d is out of range", s))
		errs.Assert(comp[c] == Symbol(s), errorf("complement of %d is not an involution", s))
		errs.Assert(s == 0 || c != Sentinel, errorf("symbol %d paired with the sentinel", s))
	}
	ac = new(Alphabet)
	*ac = *a
	ac.comp = append([]Symbol(nil), comp...)
	return ac, nil
}

func mustAlphabet(sentinel byte, letters, pairs string) *Alphabet {
	a, err := New(sentinel, letters)
	if err == nil && pairs != "" {
		a, err = a.WithComplement(pairs)
	}
	if err != nil {
		panic(err)
	}
	return a
}

var (
	dna     = mustAlphabet('$', "ACGT", "AT CG")
	dnaN    = mustAlphabet('$', "ACGNT", "AT CG NN")
	iupac   = mustAlphabet('$', "ACGTRYSWKMBDHVN", "AT CG RY SS WW KM BV DH NN")
	protein = mustAlphabet('$', "ACDEFGHIKLMNPQRSTVWXY", "")
)

// DNA returns the alphabet {$, A, C, G, T} with Watson-Crick pairing.
func DNA() *Alphabet { return dna }

// DNAN returns the DNA alphabet extended with the unknown base N, which is
// its own complement.
func DNAN() *Alphabet { return dnaN }

// IUPAC returns the full IUPAC nucleotide code with its complement table.
func IUPAC() *Alphabet { return iupac }

// Protein returns the 20 standard amino acids plus the unknown residue X.
// It has no complement pairing.
func Protein() *Alphabet { return protein }

// Len reports the number of symbols, including the sentinel.
func (a *Alphabet) Len() int { return a.size }

// MaxSymbol reports the largest symbol of the alphabet.
func (a *Alphabet) MaxSymbol() Symbol { return Symbol(a.size - 1) }

// HasLetters reports whether the alphabet maps symbols to letters.
func (a *Alphabet) HasLetters() bool { return a.letters != nil }

// SentinelLetter reports the letter used for the sentinel.
func (a *Alphabet) SentinelLetter() byte { return a.sentinel }

// Rank reports the symbol for the given letter.
func (a *Alphabet) Rank(c byte) (Symbol, bool) {
	r := a.ranks[c]
	return Symbol(r), r >= 0
}

// Letter reports the letter of the given symbol.
// Letter-less alphabets report the low byte of the symbol.
func (a *Alphabet) Letter(s Symbol) byte {
	if a.letters == nil {
		return byte(s)
	}
	return a.letters[s]
}

// Contains reports whether s is a symbol of the alphabet.
func (a *Alphabet) Contains(s Symbol) bool { return int(s) < a.size }

// IsWord reports whether every letter of text belongs to the alphabet.
func (a *Alphabet) IsWord(text []byte) bool {
	for _, c := range text {
		if a.ranks[c] < 0 {
			return false
		}
	}
	return true
}

// Encode maps letters to their symbols.
func (a *Alphabet) Encode(text []byte) ([]Symbol, error) {
	if a.letters == nil {
		return nil, errorf("cannot encode letters with a numeric alphabet")
	}
	out := make([]Symbol, len(text))
	for i, c := range text {
		r := a.ranks[c]
		if r < 0 {
			return nil, errorf("letter %q at offset %d is not in the alphabet", c, i)
		}
		out[i] = Symbol(r)
	}
	return out, nil
}

// EncodeText maps letters to symbols and terminates the result with the
// sentinel if the letters do not already end with it.
func (a *Alphabet) EncodeText(text []byte) ([]Symbol, error) {
	out, err := a.Encode(text)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 || out[len(out)-1] != Sentinel {
		out = append(out, Sentinel)
	}
	return out, nil
}

// Decode maps symbols back to letters.
func (a *Alphabet) Decode(syms []Symbol) []byte {
	out := make([]byte, len(syms))
	for i, s := range syms {
		out[i] = a.Letter(s)
	}
	return out
}

// HasComplement reports whether a complement pairing is configured.
func (a *Alphabet) HasComplement() bool { return a.comp != nil }

// Complement reports the pairing partner of s.
// It panics if the alphabet has no pairing.
func (a *Alphabet) Complement(s Symbol) Symbol {
	return a.comp[s]
}

// ReverseComplement returns the reverse complement of syms.
func (a *Alphabet) ReverseComplement(syms []Symbol) ([]Symbol, error) {
	if a.comp == nil {
		return nil, errorf("alphabet has no complement pairing")
	}
	out := make([]Symbol, len(syms))
	for i, s := range syms {
		if int(s) >= a.size {
			return nil, errorf("symbol %d is not in the alphabet", s)
		}
		out[len(syms)-1-i] = a.comp[s]
	}
	return out, nil
}

// QGrams encodes every window of q consecutive symbols of text into a single
// integer, packing each symbol into ceil(log2(Len)) bits. The i-th result is
// the window ending at text[i+q-1].
func (a *Alphabet) QGrams(text []Symbol, q int) ([]uint64, error) {
	width := bits.Len(uint(a.size - 1))
	if q <= 0 || width*q > 64 {
		return nil, errorf("q-grams of length %d do not fit in 64 bits", q)
	}
	if len(text) < q {
		return nil, nil
	}
	mask := uint64(1)<<uint(width*q) - 1
	if width*q == 64 {
		mask = ^uint64(0)
	}
	var qgram uint64
	out := make([]uint64, 0, len(text)-q+1)
	for i, s := range text {
		qgram = (qgram<<uint(width) | uint64(s)) & mask
		if i >= q-1 {
			out = append(out, qgram)
		}
	}
	return out, nil
}

func (a *Alphabet) String() string {
	if a.letters == nil {
		return "numeric alphabet"
	}
	return string(a.letters)
}
