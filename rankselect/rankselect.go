// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package rankselect implements a static bit-vector supporting rank and
// select queries.
//
// The bit-vector is divided into superblocks, each holding the number of set
// bits before it, and blocks, each holding the number of set bits between the
// start of its superblock and itself. Rank is answered with one lookup in
// each table plus a population count over at most one block, in constant
// time. Select binary searches the superblock counts, then the block counts,
// and finally scans the words of a single block, in O(log n) time.
//
// Bit i is stored in bit i%64 of word i/64. When a bit-vector is written as a
// string of '0' and '1' characters, the first character is bit 0.
package rankselect

import (
	"math/bits"
	"sort"

	"github.com/dsnet/succinct/internal/errors"
)

const (
	wordSize = 64

	DefaultSuperblockSize = 512
	DefaultBlockSize      = 64

	// MaxSuperblockSize is the largest superblock size, since block counts
	// are relative to their superblock and stored in 16 bits.
	MaxSuperblockSize = 1 << 16
)

func errorf(code int, format string, args ...interface{}) error {
	return errors.Errorf(code, "rankselect", format, args...)
}

// Config configures the sampling granularity, which trades memory for time.
// Both sizes are in bits. The zero value of a field selects its default.
type Config struct {
	SuperblockSize int // Multiple of BlockSize, at most MaxSuperblockSize
	BlockSize      int // Multiple of 64
}

func (c *Config) sizes() (super, block int, err error) {
	super, block = DefaultSuperblockSize, DefaultBlockSize
	if c != nil {
		if c.SuperblockSize != 0 {
			super = c.SuperblockSize
		}
		if c.BlockSize != 0 {
			block = c.BlockSize
		}
	}
	if block <= 0 || block%wordSize != 0 {
		return 0, 0, errorf(errors.InvalidInput, "block size %d is not a positive multiple of %d", block, wordSize)
	}
	if super <= 0 || super%block != 0 || super > MaxSuperblockSize {
		return 0, 0, errorf(errors.InvalidInput, "superblock size %d is not a multiple of %d up to %d", super, block, MaxSuperblockSize)
	}
	return super, block, nil
}

// RankSelect is an immutable bit-vector with rank and select support.
// It is safe for concurrent use.
type RankSelect struct {
	words  []uint64
	n      int      // Number of bits
	ones   int      // Number of set bits
	supers []uint64 // Set bits before each superblock; one extra entry holds ones
	blocks []uint16 // Set bits from the enclosing superblock start to each block

	wordsPerBlock  int
	blocksPerSuper int
	superBits      int
	blockBits      int
}

// Builder accumulates bits for a RankSelect.
// A Builder must not be used after Build.
type Builder struct {
	words []uint64
	n     int
}

// NewBuilder returns a builder for a bit-vector of n bits, all initially unset.
func NewBuilder(n int) *Builder {
	return &Builder{words: make([]uint64, (n+wordSize-1)/wordSize), n: n}
}

// Set sets bit i.
func (b *Builder) Set(i int) {
	b.words[i/wordSize] |= 1 << uint(i%wordSize)
}

// Len reports the number of bits.
func (b *Builder) Len() int { return b.n }

// Build computes the superblock and block tables over the accumulated bits.
func (b *Builder) Build(c *Config) (*RankSelect, error) {
	super, block, err := c.sizes()
	if err != nil {
		return nil, err
	}
	rs := &RankSelect{
		words:          b.words,
		n:              b.n,
		wordsPerBlock:  block / wordSize,
		blocksPerSuper: super / block,
		superBits:      super,
		blockBits:      block,
	}
	b.words = nil

	numBlocks := (rs.n + block - 1) / block
	numSupers := (rs.n + super - 1) / super
	rs.blocks = make([]uint16, numBlocks)
	rs.supers = make([]uint64, numSupers+1)

	var total, inSuper int
	for bi := 0; bi < numBlocks; bi++ {
		if bi%rs.blocksPerSuper == 0 {
			rs.supers[bi/rs.blocksPerSuper] = uint64(total)
			inSuper = 0
		}
		rs.blocks[bi] = uint16(inSuper)
		cnt := rs.popcount(bi*rs.wordsPerBlock, (bi+1)*rs.wordsPerBlock)
		total += cnt
		inSuper += cnt
	}
	rs.supers[numSupers] = uint64(total)
	rs.ones = total
	return rs, nil
}

// popcount counts set bits in words[lo:hi], clamped to the stored words.
func (rs *RankSelect) popcount(lo, hi int) (cnt int) {
	if hi > len(rs.words) {
		hi = len(rs.words)
	}
	for _, w := range rs.words[lo:hi] {
		cnt += bits.OnesCount64(w)
	}
	return cnt
}

// FromBools returns a RankSelect holding the given bits.
func FromBools(bs []bool, c *Config) (*RankSelect, error) {
	b := NewBuilder(len(bs))
	for i, v := range bs {
		if v {
			b.Set(i)
		}
	}
	return b.Build(c)
}

// FromBytes returns a RankSelect holding the first n bits of buf.
// Bits are packed starting with the least-significant bit of each byte.
func FromBytes(buf []byte, n int, c *Config) (*RankSelect, error) {
	if n < 0 || n > 8*len(buf) {
		return nil, errorf(errors.InvalidInput, "%d bits do not fit in %d bytes", n, len(buf))
	}
	b := NewBuilder(n)
	for i := 0; i < n; i++ {
		if buf[i/8]&(1<<uint(i%8)) != 0 {
			b.Set(i)
		}
	}
	return b.Build(c)
}

// FromString returns a RankSelect from a string of '0' and '1' characters,
// where the first character is bit 0.
func FromString(s string, c *Config) (*RankSelect, error) {
	b := NewBuilder(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			b.Set(i)
		case '0':
		default:
			return nil, errorf(errors.InvalidInput, "invalid bit %q at offset %d", s[i], i)
		}
	}
	return b.Build(c)
}

// Len reports the number of bits.
func (rs *RankSelect) Len() int { return rs.n }

// Ones reports the number of set bits.
func (rs *RankSelect) Ones() int { return rs.ones }

// Zeros reports the number of unset bits.
func (rs *RankSelect) Zeros() int { return rs.n - rs.ones }

// Bit reports whether bit i is set. It panics if i is not in [0, Len).
func (rs *RankSelect) Bit(i int) bool {
	if i < 0 || i >= rs.n {
		panic(errorf(errors.OutOfRange, "bit %d of %d", i, rs.n))
	}
	return rs.words[i/wordSize]&(1<<uint(i%wordSize)) != 0
}

// Rank1 reports the number of set bits in positions [0, i).
//
// It panics with an out of range error if i is not in [0, Len]; the length of
// a bit-vector is always known to the caller, so this is a contract violation.
func (rs *RankSelect) Rank1(i int) int {
	if uint(i) > uint(rs.n) {
		panic(errorf(errors.OutOfRange, "rank %d of %d", i, rs.n))
	}
	return rs.rank1(i)
}

// Rank0 reports the number of unset bits in positions [0, i).
// It panics under the same conditions as Rank1.
func (rs *RankSelect) Rank0(i int) int {
	return i - rs.Rank1(i)
}

// CheckedRank1 is Rank1 but reports an out of range i as an error.
func (rs *RankSelect) CheckedRank1(i int) (int, error) {
	if uint(i) > uint(rs.n) {
		return 0, errorf(errors.OutOfRange, "rank %d of %d", i, rs.n)
	}
	return rs.rank1(i), nil
}

// CheckedRank0 is Rank0 but reports an out of range i as an error.
func (rs *RankSelect) CheckedRank0(i int) (int, error) {
	r, err := rs.CheckedRank1(i)
	return i - r, err
}

func (rs *RankSelect) rank1(i int) int {
	if i == rs.n {
		return rs.ones
	}
	bi := i / rs.blockBits
	r := int(rs.supers[bi/rs.blocksPerSuper]) + int(rs.blocks[bi])
	wi := i / wordSize
	r += rs.popcount(bi*rs.wordsPerBlock, wi)
	if off := uint(i % wordSize); off > 0 {
		r += bits.OnesCount64(rs.words[wi] & (1<<off - 1))
	}
	return r
}

// Select1 reports the position of the j-th set bit, counting from zero.
// It reports a not found error if fewer than j+1 bits are set.
func (rs *RankSelect) Select1(j int) (int, error) {
	if j < 0 || j >= rs.ones {
		return 0, errorf(errors.NotFound, "set bit %d of %d", j, rs.ones)
	}

	// Last superblock with fewer than j+1 set bits before it.
	si := sort.Search(len(rs.supers), func(k int) bool { return int(rs.supers[k]) > j }) - 1
	j -= int(rs.supers[si])

	lo, hi := si*rs.blocksPerSuper, (si+1)*rs.blocksPerSuper
	if hi > len(rs.blocks) {
		hi = len(rs.blocks)
	}
	bi := lo + sort.Search(hi-lo, func(k int) bool { return int(rs.blocks[lo+k]) > j }) - 1
	j -= int(rs.blocks[bi])

	for wi := bi * rs.wordsPerBlock; ; wi++ {
		w := rs.words[wi]
		if cnt := bits.OnesCount64(w); j >= cnt {
			j -= cnt
			continue
		}
		return wi*wordSize + selectWord(w, j), nil
	}
}

// Select0 reports the position of the j-th unset bit, counting from zero.
// It reports a not found error if fewer than j+1 bits are unset.
func (rs *RankSelect) Select0(j int) (int, error) {
	if j < 0 || j >= rs.n-rs.ones {
		return 0, errorf(errors.NotFound, "unset bit %d of %d", j, rs.n-rs.ones)
	}

	zerosBefore := func(si int) int { return si*rs.superBits - int(rs.supers[si]) }
	numSupers := len(rs.supers) - 1
	si := sort.Search(numSupers, func(k int) bool { return zerosBefore(k) > j }) - 1
	j -= zerosBefore(si)

	lo, hi := si*rs.blocksPerSuper, (si+1)*rs.blocksPerSuper
	if hi > len(rs.blocks) {
		hi = len(rs.blocks)
	}
	blockZeros := func(bi int) int { return (bi-lo)*rs.blockBits - int(rs.blocks[bi]) }
	bi := lo + sort.Search(hi-lo, func(k int) bool { return blockZeros(lo+k) > j }) - 1
	j -= blockZeros(bi)

	// Padding bits past n are unset, but they all follow the last real unset
	// bit, so j always resolves within the bit-vector.
	for wi := bi * rs.wordsPerBlock; ; wi++ {
		w := ^rs.words[wi]
		if cnt := bits.OnesCount64(w); j >= cnt {
			j -= cnt
			continue
		}
		return wi*wordSize + selectWord(w, j), nil
	}
}

// selectWord reports the position of the j-th set bit of w.
func selectWord(w uint64, j int) int {
	for ; j > 0; j-- {
		w &= w - 1
	}
	return bits.TrailingZeros64(w)
}

// SizeBytes reports the memory held by the bit-vector and its tables.
func (rs *RankSelect) SizeBytes() int {
	return 8*len(rs.words) + 8*len(rs.supers) + 2*len(rs.blocks)
}
