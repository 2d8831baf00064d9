// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the index variants with respect to build speed,
// search speed, and how well their transform compresses.
package bench

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/dsnet/golib/strconv"
	"github.com/dsnet/succinct/alphabet"
	"github.com/dsnet/succinct/bwt"
	"github.com/dsnet/succinct/internal/testutil"
	"golang.org/x/sync/errgroup"
)

const (
	TestBuildRate = iota
	TestSearchRate
	TestCompressRatio
	TestSpace
)

// Inputs that are generated rather than loaded from a file.
const (
	InputRandom  = "random"
	InputRepeats = "repeats"
)

// Index is the query surface shared by every variant.
type Index interface {
	Count(pattern []alphabet.Symbol) int
	SizeBytes() int
}

type Builder func(text []alphabet.Symbol, a *alphabet.Alphabet) (Index, error)
type Encoder func(io.Writer) io.WriteCloser

var (
	Builders map[string]Builder
	Encoders map[string]Encoder

	// List of search paths for input files.
	Paths []string

	// Alphabet of every input. Letters outside of it are dropped from files.
	Alphabet = alphabet.DNA()

	// PatternLen is the length of every search query.
	PatternLen = 16

	// Parallel bounds the number of indexes built at once, if positive.
	Parallel = runtime.NumCPU()
)

func RegisterBuilder(name string, b Builder) {
	if Builders == nil {
		Builders = make(map[string]Builder)
	}
	Builders[name] = b
}

func RegisterEncoder(name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[string]Encoder)
	}
	Encoders[name] = enc
}

type Result struct {
	R float64 // Rate (MB/s or kq/s), ratio (rawSize/compSize), or bytes per symbol
	D float64 // Delta ratio relative to primary benchmark
}

// LoadInput returns the sentinel-terminated text of n letters for the named
// input. Generated inputs are deterministic. Files are searched for in Paths;
// their letters outside Alphabet are dropped before they are resized to n.
func LoadInput(input string, n int) ([]alphabet.Symbol, error) {
	var b []byte
	r := testutil.NewRand(0)
	switch input {
	case InputRandom:
		syms := r.Text(n+1, Alphabet.Len())
		b = Alphabet.Decode(syms[:n])
	case InputRepeats:
		syms := r.RepeatText(n+1, Alphabet.Len())
		b = Alphabet.Decode(syms[:n])
	default:
		raw, err := os.ReadFile(getPath(input))
		if err != nil {
			return nil, err
		}
		for _, c := range bytes.ToUpper(raw) {
			if s, ok := Alphabet.Rank(c); ok && s != alphabet.Sentinel {
				b = append(b, c)
			}
		}
		if len(b) == 0 {
			return nil, fmt.Errorf("input %s holds no letters of %v", input, Alphabet)
		}
		b = testutil.ResizeData(b, n)
	}
	return Alphabet.EncodeText(b)
}

// BenchmarkBuilder benchmarks the construction of a single variant over text.
func BenchmarkBuilder(text []alphabet.Symbol, build Builder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if build == nil {
			b.Fatalf("unexpected error: nil Builder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			if _, err := build(text, Alphabet); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(text)))
		}
	})
}

// BenchmarkBuildSuite runs the build benchmark across all variants, inputs,
// and sizes.
//
// The values returned have the following structure:
//
//	results: [len(inputs)*len(sizes)][len(variants)]Result
//	names:   [len(inputs)*len(sizes)]string
func BenchmarkBuildSuite(variants, inputs []string, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(variants, inputs, sizes, tick, nil,
		func(text []alphabet.Symbol, _ int, variant string) Result {
			result := BenchmarkBuilder(text, Builders[variant])
			if result.N == 0 {
				return Result{}
			}
			us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
			rate := float64(result.Bytes) / us
			return Result{R: rate}
		})
}

// Patterns returns num patterns of length n drawn from text, so that every
// search succeeds at least once.
func Patterns(text []alphabet.Symbol, n, num int) [][]alphabet.Symbol {
	body := text[:len(text)-1]
	if len(body) < n {
		return nil
	}
	r := testutil.NewRand(1)
	ps := make([][]alphabet.Symbol, num)
	for i := range ps {
		start := r.Intn(len(body) - n + 1)
		ps[i] = body[start : start+n]
	}
	return ps
}

// BenchmarkSearch benchmarks counting every pattern with a single index.
func BenchmarkSearch(idx Index, patterns [][]alphabet.Symbol) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			for _, p := range patterns {
				if idx.Count(p) == 0 {
					b.Fatalf("pattern %v not found", p)
				}
			}
		}
	})
}

// BenchmarkSearchSuite runs the search benchmark across all variants, inputs,
// and sizes. The indexes for one input are built concurrently before any of
// them is measured.
//
// The values returned have the following structure:
//
//	results: [len(inputs)*len(sizes)][len(variants)]Result
//	names:   [len(inputs)*len(sizes)]string
func BenchmarkSearchSuite(variants, inputs []string, sizes []int, tick func()) (results [][]Result, names []string) {
	var idxs []Index
	var patterns [][]alphabet.Symbol
	prepare := func(text []alphabet.Symbol) (err error) {
		patterns = Patterns(text, PatternLen, 1000)
		idxs, err = buildAll(text, variants)
		return err
	}
	return benchmarkSuite(variants, inputs, sizes, tick, prepare,
		func(_ []alphabet.Symbol, j int, _ string) Result {
			if len(patterns) == 0 {
				return Result{}
			}
			result := BenchmarkSearch(idxs[j], patterns)
			if result.N == 0 {
				return Result{}
			}
			queries := float64(result.N * len(patterns))
			return Result{R: queries / result.T.Seconds() / 1e3}
		})
}

// BenchmarkSpaceSuite reports the memory held by every variant in bytes per
// symbol of the indexed text.
func BenchmarkSpaceSuite(variants, inputs []string, sizes []int, tick func()) (results [][]Result, names []string) {
	var idxs []Index
	prepare := func(text []alphabet.Symbol) (err error) {
		idxs, err = buildAll(text, variants)
		return err
	}
	return benchmarkSuite(variants, inputs, sizes, tick, prepare,
		func(text []alphabet.Symbol, j int, _ string) Result {
			return Result{R: float64(idxs[j].SizeBytes()) / float64(len(text))}
		})
}

// buildAll builds every variant over text, at most Parallel at a time.
func buildAll(text []alphabet.Symbol, variants []string) ([]Index, error) {
	for _, v := range variants {
		if Builders[v] == nil {
			return nil, fmt.Errorf("unknown variant %q", v)
		}
	}
	idxs := make([]Index, len(variants))
	var g errgroup.Group
	if Parallel > 0 {
		g.SetLimit(Parallel)
	}
	for i, v := range variants {
		build := Builders[v]
		g.Go(func() (err error) {
			idxs[i], err = build(text, Alphabet)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return idxs, nil
}

// BenchmarkRatioSuite compresses the transform of every input with every
// encoder and reports how much smaller it is than the compressed text.
//
// The values returned have the following structure:
//
//	results: [len(inputs)*len(sizes)][len(encs)]Result
//	names:   [len(inputs)*len(sizes)]string
func BenchmarkRatioSuite(encs, inputs []string, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, inputs, sizes, tick, nil,
		func(text []alphabet.Symbol, _ int, enc string) Result {
			sa, err := bwt.SuffixArray(text, Alphabet)
			if err != nil {
				return Result{}
			}
			raw := compressedSize(Encoders[enc], Alphabet.Decode(text))
			transformed := compressedSize(Encoders[enc], Alphabet.Decode(bwt.Transform(text, sa)))
			if raw <= 0 || transformed <= 0 {
				return Result{}
			}
			return Result{R: float64(raw) / float64(transformed)}
		})
}

func compressedSize(enc Encoder, input []byte) int {
	if enc == nil {
		return -1
	}
	buf := new(bytes.Buffer)
	wr := enc(buf)
	if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
		return -1
	}
	if wr.Close() != nil {
		return -1
	}
	return buf.Len()
}

type benchFunc func(text []alphabet.Symbol, column int, name string) Result

// benchmarkSuite runs the benchmark for every column, input, and size.
// If prepare is non-nil, it is called once per input and size before any
// column runs; the row is left empty if it fails.
func benchmarkSuite(columns, inputs []string, sizes []int, tick func(), prepare func([]alphabet.Symbol) error, run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(inputs) * len(sizes)
	d1 := len(columns)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	var i int
	for _, in := range inputs {
		for _, n := range sizes {
			text, err := LoadInput(in, n)
			if err == nil && prepare != nil {
				err = prepare(text)
			}
			name := getName(in, n)
			for j, c := range columns {
				if tick != nil {
					tick()
				}
				names[i] = name
				if err == nil {
					results[i][j] = run(text, j, c)
				}
				results[i][j].D = results[i][j].R / results[i][0].R
			}
			i++
		}
	}
	return results, names
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

func getName(input string, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile("\\.0*e\\+0*")
		sn = re.ReplaceAllString(s, "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%s", path.Base(input), sn)
}
