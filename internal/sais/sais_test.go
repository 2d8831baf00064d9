// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package sais

import (
	"testing"

	"github.com/dsnet/succinct/alphabet"
	"github.com/dsnet/succinct/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestComputeSA(t *testing.T) {
	a := alphabet.DNA()
	var vectors = []struct {
		input  string
		output []int
	}{
		{input: "$", output: []int{0}},
		{input: "A$", output: []int{1, 0}},
		{input: "GATTACA$", output: []int{7, 6, 4, 1, 5, 0, 3, 2}},
		{input: "AAAA$", output: []int{4, 3, 2, 1, 0}},
		{input: "ACACACGT$", output: []int{8, 0, 2, 4, 1, 3, 5, 6, 7}},
		{input: "TTTTGGGGCCCCAAAA$"},
		{input: "ACGTACGTACGTACGTACGTTTTTTTTTTTTACGACGACG$"},
	}

	for i, v := range vectors {
		text, err := a.Encode([]byte(v.input))
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		sa := make([]int, len(text))
		ComputeSA(text, sa, a.Len())

		want := v.output
		if want == nil {
			want = testutil.NaiveSuffixArray(text)
		}
		if diff := cmp.Diff(want, sa); diff != "" {
			t.Errorf("test %d (%q), suffix array mismatch (-want +got):\n%s", i, v.input, diff)
		}
	}
}

func TestComputeSARandom(t *testing.T) {
	r := testutil.NewRand(0)
	for i := 0; i < 200; i++ {
		n := 1 + r.Intn(300)
		sigma := 2 + r.Intn(6)
		text := r.Text(n, sigma)
		if i%2 == 1 {
			text = r.RepeatText(n, sigma)
		}
		sa := make([]int, n)
		ComputeSA(text, sa, sigma)
		if diff := cmp.Diff(testutil.NaiveSuffixArray(text), sa); diff != "" {
			t.Fatalf("test %d, suffix array mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestComputeSAWidths(t *testing.T) {
	// The same text under several symbol widths must sort identically.
	r := testutil.NewRand(1)
	text := r.RepeatText(1000, 5)
	want := testutil.NaiveSuffixArray(text)

	t8 := make([]uint8, len(text))
	t32 := make([]int32, len(text))
	for i, c := range text {
		t8[i], t32[i] = uint8(c), int32(c)
	}
	sa := make([]int, len(text))
	ComputeSA(t8, sa, 5)
	if diff := cmp.Diff(want, sa); diff != "" {
		t.Errorf("uint8 suffix array mismatch (-want +got):\n%s", diff)
	}
	ComputeSA(t32, sa, 5)
	if diff := cmp.Diff(want, sa); diff != "" {
		t.Errorf("int32 suffix array mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeSAMisuse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on mismatching sizes")
		}
	}()
	ComputeSA([]uint8{1, 0}, make([]int, 1), 2)
}

func BenchmarkComputeSA(b *testing.B) {
	text := testutil.NewRand(0).RepeatText(1<<20, 5)
	sa := make([]int, len(text))
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeSA(text, sa, 5)
	}
}
