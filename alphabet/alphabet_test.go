// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package alphabet

import (
	"testing"

	"github.com/dsnet/succinct/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var vectors = []struct {
		sentinel byte
		letters  string
		valid    bool
		size     int
	}{
		{'$', "ACGT", true, 5},
		{'$', "TGCA", true, 5},
		{0, "ab", true, 3},
		{'$', "", false, 0},
		{'$', "AAC", false, 0},
		{'$', "A$C", false, 0},
	}

	for i, v := range vectors {
		a, err := New(v.sentinel, v.letters)
		if v.valid != (err == nil) {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if err != nil {
			if !errors.IsInvalidInput(err) {
				t.Errorf("test %d, mismatching error:\ngot  %v\nwant invalid input", i, err)
			}
			continue
		}
		if a.Len() != v.size {
			t.Errorf("test %d, size mismatch: got %d, want %d", i, a.Len(), v.size)
		}
	}
}

func TestRanks(t *testing.T) {
	a := DNA()
	for i, c := range []byte("$ACGT") {
		r, ok := a.Rank(c)
		assert.True(t, ok)
		assert.Equal(t, Symbol(i), r)
		assert.Equal(t, c, a.Letter(r))
	}
	_, ok := a.Rank('N')
	assert.False(t, ok)

	// Ranks follow byte order regardless of input order.
	b, err := New('#', "TGCA")
	assert.Nil(t, err)
	r, _ := b.Rank('C')
	assert.Equal(t, Symbol(2), r)
}

func TestEncode(t *testing.T) {
	a := DNA()
	syms, err := a.Encode([]byte("GATTACA$"))
	assert.Nil(t, err)
	assert.Equal(t, []Symbol{3, 1, 4, 4, 1, 2, 1, 0}, syms)
	assert.Equal(t, "GATTACA$", string(a.Decode(syms)))

	_, err = a.Encode([]byte("GANTC"))
	assert.True(t, errors.IsInvalidInput(err))

	syms, err = a.EncodeText([]byte("AC"))
	assert.Nil(t, err)
	assert.Equal(t, []Symbol{1, 2, 0}, syms)
	syms, err = a.EncodeText([]byte("AC$"))
	assert.Nil(t, err)
	assert.Equal(t, []Symbol{1, 2, 0}, syms)

	assert.True(t, a.IsWord([]byte("ACGT$")))
	assert.False(t, a.IsWord([]byte("acgt")))

	n, err := Numeric(300)
	assert.Nil(t, err)
	_, err = n.Encode([]byte("A"))
	assert.True(t, errors.IsInvalidInput(err))
}

func TestComplement(t *testing.T) {
	a := DNA()
	assert.True(t, a.HasComplement())
	rc, err := a.ReverseComplement(mustEncode(a, "AACG"))
	assert.Nil(t, err)
	assert.Equal(t, "CGTT", string(a.Decode(rc)))

	for _, p := range []*Alphabet{DNA(), DNAN(), IUPAC()} {
		for s := Symbol(0); int(s) < p.Len(); s++ {
			assert.Equal(t, s, p.Complement(p.Complement(s)), "alphabet %v", p)
		}
	}

	_, err = Protein().ReverseComplement(nil)
	assert.True(t, errors.IsInvalidInput(err))

	base, _ := New('$', "ACGT")
	for _, pairs := range []string{
		"AT",       // C and G are unpaired
		"AT CG AG", // A paired twice
		"AT CGX",   // Malformed pair
		"AT C$",    // Pair with the sentinel
	} {
		_, err := base.WithComplement(pairs)
		assert.True(t, errors.IsInvalidInput(err), "pairs %q", pairs)
	}

	n, _ := Numeric(3)
	_, err = n.WithComplementTable([]Symbol{0, 2, 1})
	assert.Nil(t, err)
	_, err = n.WithComplementTable([]Symbol{0, 2, 2})
	assert.True(t, errors.IsInvalidInput(err))
}

func TestQGrams(t *testing.T) {
	a := DNA() // 3 bits per symbol
	qs, err := a.QGrams(mustEncode(a, "ACGT"), 2)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{1<<3 | 2, 2<<3 | 3, 3<<3 | 4}, qs)

	qs, err = a.QGrams(mustEncode(a, "A"), 2)
	assert.Nil(t, err)
	assert.Empty(t, qs)

	_, err = a.QGrams(nil, 22)
	assert.True(t, errors.IsInvalidInput(err))
}

func mustEncode(a *Alphabet, s string) []Symbol {
	syms, err := a.Encode([]byte(s))
	if err != nil {
		panic(err)
	}
	return syms
}
