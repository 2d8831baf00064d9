// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to compare the index variants. Each variant is a column of
// the printed tables.
//
// Example usage:
//
//	$ go build -o benchmark ./internal/tool/bench/cmd
//	$ ./benchmark \
//		-tests    buildRate,searchRate \
//		-variants fm,fm-sampled,fmd    \
//		-inputs   random,repeats       \
//		-sizes    1e4,1e5,1e6
//
//	BENCHMARK: searchRate
//		benchmark        fm kq/s  delta      fm-sampled kq/s  delta      fmd kq/s  delta
//		random:1e4        921.41  1.00x               895.12  0.97x        460.23  0.50x
//		random:1e5        734.90  1.00x               712.38  0.97x        351.67  0.48x
//
//	RUNTIME: 1m12.434570856s
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dsnet/golib/strconv"
	"github.com/dsnet/succinct/internal/tool/bench"
)

const (
	defaultInputs = "random,repeats"
	defaultSizes  = "1e4,1e5,1e6"
)

var (
	testToEnum = map[string]int{
		"buildRate":  bench.TestBuildRate,
		"searchRate": bench.TestSearchRate,
		"ratio":      bench.TestCompressRatio,
		"space":      bench.TestSpace,
	}
	enumToTest = map[int]string{
		bench.TestBuildRate:     "buildRate",
		bench.TestSearchRate:    "searchRate",
		bench.TestCompressRatio: "ratio",
		bench.TestSpace:         "space",
	}
)

func defaultTests() string {
	var d []int
	for k := range enumToTest {
		d = append(d, k)
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, enumToTest[v])
	}
	return strings.Join(s, ",")
}

func defaultVariants() string {
	var s []string
	for k := range bench.Builders {
		s = append(s, k)
	}
	sort.Strings(s)
	return strings.Join(s, ",")
}

func defaultCodecs() string {
	hasStd := bench.Encoders["std"] != nil
	var s []string
	for k := range bench.Encoders {
		if k != "std" {
			s = append(s, k)
		}
	}
	sort.Strings(s)
	if hasStd {
		s = append([]string{"std"}, s...) // Ensure "std" always appears first
	}
	return strings.Join(s, ",")
}

func main() {
	// Setup flag arguments.
	f0 := flag.String("tests", defaultTests(), "List of different benchmark tests")
	f1 := flag.String("variants", defaultVariants(), "List of index variants to benchmark")
	f2 := flag.String("codecs", defaultCodecs(), "List of compressors for the ratio test")
	f3 := flag.String("paths", "", "List of paths to search for input files")
	f4 := flag.String("inputs", defaultInputs, "List of generated inputs or files to benchmark")
	f5 := flag.String("sizes", defaultSizes, "List of input sizes to benchmark")
	f6 := flag.Int("patlen", bench.PatternLen, "Length of every search pattern")
	f7 := flag.Int("parallel", bench.Parallel, "Number of indexes to build concurrently")
	flag.Parse()

	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	var variants, codecs, paths, inputs []string
	var tests, sizes []int
	variants = sep.Split(*f1, -1)
	codecs = sep.Split(*f2, -1)
	if *f3 != "" {
		paths = sep.Split(*f3, -1)
	}
	inputs = sep.Split(*f4, -1)
	for _, s := range sep.Split(*f0, -1) {
		if _, ok := testToEnum[s]; !ok {
			log.Fatalf("invalid test: %q", s)
		}
		tests = append(tests, testToEnum[s])
	}
	for _, v := range variants {
		if bench.Builders[v] == nil {
			log.Fatalf("invalid variant: %q", v)
		}
	}
	for _, c := range codecs {
		if bench.Encoders[c] == nil {
			log.Fatalf("invalid codec: %q", c)
		}
	}
	for _, s := range sep.Split(*f5, -1) {
		nf, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil || nf < 1 {
			log.Fatalf("invalid size: %q", s)
		}
		sizes = append(sizes, int(nf))
	}
	if *f6 < 1 {
		log.Fatalf("invalid pattern length: %d", *f6)
	}

	ts := time.Now()
	bench.Paths = paths
	bench.PatternLen = *f6
	bench.Parallel = *f7
	runBenchmarks(variants, codecs, inputs, tests, sizes)
	te := time.Now()
	fmt.Printf("RUNTIME: %v\n", te.Sub(ts))
}

func runBenchmarks(variants, codecs, inputs []string, tests, sizes []int) {
	for _, t := range tests {
		var results [][]bench.Result
		var names, columns []string
		var title, suffix string

		fmt.Printf("BENCHMARK: %s\n", enumToTest[t])
		if len(variants) == 0 || (t == bench.TestCompressRatio && len(codecs) == 0) {
			fmt.Print("\tSKIP: There is nothing to compare.\n\n")
			continue
		}

		// Progress ticker.
		var cnt int
		tick := func() {
			total := len(columns) * len(inputs) * len(sizes)
			pct := 100.0 * float64(cnt) / float64(total)
			fmt.Printf("\t[%6.2f%%] %d of %d\r", pct, cnt, total)
			cnt++
		}

		// Perform the bench. This may take some time.
		switch t {
		case bench.TestBuildRate:
			columns, title, suffix = variants, "MB/s", ""
			results, names = bench.BenchmarkBuildSuite(variants, inputs, sizes, tick)
		case bench.TestSearchRate:
			columns, title, suffix = variants, "kq/s", ""
			results, names = bench.BenchmarkSearchSuite(variants, inputs, sizes, tick)
		case bench.TestCompressRatio:
			columns, title, suffix = codecs, "ratio", "x"
			results, names = bench.BenchmarkRatioSuite(codecs, inputs, sizes, tick)
		case bench.TestSpace:
			columns, title, suffix = variants, "B/sym", ""
			results, names = bench.BenchmarkSpaceSuite(variants, inputs, sizes, tick)
		default:
			log.Fatalf("unknown test: %d", t)
		}

		// Print all of the results.
		printResults(results, names, columns, title, suffix)
		fmt.Println()
	}
}

func printResults(results [][]bench.Result, names, columns []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(columns))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range columns {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(columns))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Print("\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				row[i] = s + strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				row[i] = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			case i%2 == 0: // Column 2, 4, 6, 8, ...
				row[i] = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Print(row[i])
		}
		fmt.Println()
	}
}
