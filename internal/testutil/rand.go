// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"github.com/dsnet/succinct/alphabet"
)

// Rand implements a deterministic pseudo-random number generator.
// This differs from the math.Rand in that the exact output will be consistent
// across different versions of Go.
type Rand struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	r, _ := aes.NewCipher(key[:])
	return &Rand{Block: r}
}

func (r *Rand) Int() (x int) {
	r.Encrypt(r.blk[:], r.blk[:])
	x |= int(r.blk[0]) << 0
	x |= int(r.blk[1]) << 8
	x |= int(r.blk[2]) << 16
	x |= int(r.blk[3]) << 24
	x |= int(r.blk[4]) << 32
	x |= int(r.blk[5]) << 40
	x |= int(r.blk[6]) << 48
	x |= int(r.blk[7]&0x3f) << 56
	return x
}

func (r *Rand) Intn(n int) int {
	return r.Int() % n
}

func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	bb := b
	for len(bb) > 0 {
		r.Encrypt(r.blk[:], r.blk[:])
		cnt := copy(bb, r.blk[:])
		bb = bb[cnt:]
	}
	return b
}

// Bools returns n random bits, each set with probability num/den.
func (r *Rand) Bools(n, num, den int) []bool {
	b := make([]bool, n)
	for i := range b {
		b[i] = r.Intn(den) < num
	}
	return b
}

// Text returns a random text of n-1 symbols drawn from [1, sigma) and
// terminated by the sentinel, for a total length of n.
func (r *Rand) Text(n, sigma int) []alphabet.Symbol {
	t := make([]alphabet.Symbol, n)
	for i := 0; i < n-1; i++ {
		t[i] = alphabet.Symbol(1 + r.Intn(sigma-1))
	}
	return t
}

// RepeatText returns a text of length n whose body is mostly made of copies
// of earlier substrings, which stresses the suffix sorting recursion and
// produces long runs in the BWT.
func (r *Rand) RepeatText(n, sigma int) []alphabet.Symbol {
	t := r.Text(n, sigma)
	for i := 16; i < n-1; {
		l := 4 + r.Intn(60)
		d := 1 + r.Intn(i)
		for j := 0; j < l && i < n-1; j++ {
			t[i] = t[i-d]
			i++
		}
		i += r.Intn(8)
	}
	return t
}

// Letters returns n random letters drawn from the given set.
func (r *Rand) Letters(n int, set string) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = set[r.Intn(len(set))]
	}
	return b
}
