// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"compress/flate"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dsnet/succinct/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/ulikunitz/xz"
)

func TestGetName(t *testing.T) {
	assert.Equal(t, "twain.txt:1e6", getName("/tmp/twain.txt", 1e6))
	assert.Equal(t, "random:1e3", getName("random", 1e3))
}

func TestLoadInput(t *testing.T) {
	for _, in := range []string{InputRandom, InputRepeats} {
		text, err := LoadInput(in, 100)
		assert.Nil(t, err)
		assert.Len(t, text, 101)
		for i, s := range text[:100] {
			assert.True(t, s > 0 && int(s) < Alphabet.Len(), "input %s, symbol %d at %d", in, s, i)
		}
		assert.EqualValues(t, 0, text[100])

		again, _ := LoadInput(in, 100)
		assert.Equal(t, text, again, "input %s is not deterministic", in)
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "reads.txt")
	assert.Nil(t, os.WriteFile(file, []byte("acgtnn X\nACGT\n"), 0644))
	text, err := LoadInput(file, 10)
	assert.Nil(t, err)
	assert.Equal(t, "ACGTACGTAC$", string(Alphabet.Decode(text)))

	Paths = []string{dir}
	defer func() { Paths = nil }()
	text, err = LoadInput("reads.txt", 4)
	assert.Nil(t, err)
	assert.Equal(t, "ACGT$", string(Alphabet.Decode(text)))

	empty := filepath.Join(dir, "empty.txt")
	assert.Nil(t, os.WriteFile(empty, []byte("xyz"), 0644))
	_, err = LoadInput(empty, 10)
	assert.NotNil(t, err)
	_, err = LoadInput(filepath.Join(dir, "missing.txt"), 10)
	assert.NotNil(t, err)
}

func TestVariants(t *testing.T) {
	text, err := LoadInput(InputRepeats, 3000)
	assert.Nil(t, err)
	patterns := Patterns(text, 6, 50)
	assert.Len(t, patterns, 50)

	var names []string
	for name := range Builders {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"fm", "fm-sampled", "fmd"}, names)

	idxs, err := buildAll(text, names)
	assert.Nil(t, err)
	for i, name := range names {
		assert.True(t, idxs[i].SizeBytes() > 0)
		for _, p := range patterns {
			want := len(testutil.NaiveOccurrences(text, p))
			if name == "fmd" {
				rc, _ := Alphabet.ReverseComplement(p)
				want += len(testutil.NaiveOccurrences(text, rc))
			}
			if got := idxs[i].Count(p); got != want {
				t.Errorf("variant %s, pattern %v: got %d, want %d", name, p, got, want)
			}
		}
	}

	_, err = buildAll(text, []string{"fm", "bogus"})
	assert.NotNil(t, err)
}

func TestEncoders(t *testing.T) {
	text, _ := LoadInput(InputRepeats, 10000)
	input := Alphabet.Decode(text)

	decoders := map[string]func(io.Reader) (io.Reader, error){
		"std": func(r io.Reader) (io.Reader, error) { return flate.NewReader(r), nil },
		"kp":  func(r io.Reader) (io.Reader, error) { return flate.NewReader(r), nil },
		"xz":  func(r io.Reader) (io.Reader, error) { return xz.NewReader(r) },
	}
	for name, enc := range Encoders {
		buf := new(bytes.Buffer)
		wr := enc(buf)
		_, err := io.Copy(wr, bytes.NewReader(input))
		assert.Nil(t, err)
		assert.Nil(t, wr.Close())

		rd, err := decoders[name](buf)
		if err != nil {
			t.Fatalf("encoder %s, unexpected error: %v", name, err)
		}
		output, err := io.ReadAll(rd)
		assert.Nil(t, err)
		assert.True(t, bytes.Equal(input, output), "encoder %s, data mismatch", name)
	}
}

func TestRatioSuite(t *testing.T) {
	encs := []string{"std", "kp", "xz"}
	results, names := BenchmarkRatioSuite(encs, []string{InputRepeats}, []int{1e4}, nil)
	assert.Equal(t, []string{"repeats:1e4"}, names)
	assert.Len(t, results, 1)
	for j, r := range results[0] {
		assert.True(t, r.R > 0, "encoder %s", encs[j])
	}
	assert.Equal(t, 1.0, results[0][0].D)
}

func TestSpaceSuite(t *testing.T) {
	variants := []string{"fm", "fm-sampled", "fmd"}
	results, _ := BenchmarkSpaceSuite(variants, []string{InputRandom}, []int{5000}, nil)
	fm, sampled, fmd := results[0][0].R, results[0][1].R, results[0][2].R
	assert.True(t, sampled < fm, "sampled %.2f, full %.2f", sampled, fm)
	assert.True(t, fmd > fm, "fmd %.2f, fm %.2f", fmd, fm)
}

func TestSearchSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timed benchmarks in short mode")
	}
	results, _ := BenchmarkSearchSuite([]string{"fm"}, []string{InputRandom}, []int{1e4}, nil)
	assert.True(t, results[0][0].R > 0)
}
