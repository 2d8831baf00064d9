// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sais implements a linear time suffix array algorithm.
package sais

// This package implements the Suffix Array by Induced Sorting (SA-IS)
// methodology by Nong, Zhang, and Chan. A single generic implementation
// serves every symbol width; the recursion on the reduced string always
// uses int symbols.
//
// SA-IS classifies each suffix as S-type (smaller than its successor) or
// L-type (larger). The leftmost S-type suffixes of each run (LMS suffixes)
// are sorted first, from which the order of all other suffixes is induced
// in two linear scans. If the LMS substrings are not unique, they are named
// and the algorithm recurses on the string of names.
//
// References:
//	https://sites.google.com/site/yuta256/sais
//	https://ge-nong.googlecode.com/files/Two%20Efficient%20Algorithms%20for%20Linear%20Time%20Suffix%20Array%20Construction.pdf

// Symbol is the set of types ComputeSA accepts as text symbols.
type Symbol interface {
	~uint8 | ~uint16 | ~uint32 | ~int32 | ~int
}

// ComputeSA computes the suffix array of T and places the result in SA.
// Both T and SA must be the same length.
//
// The text must hold values in [0, k) and end with a sentinel: a symbol that
// appears exactly once, in the final position, and is smaller than every
// other symbol. The time and space used are O(n + k).
func ComputeSA[S Symbol](T []S, SA []int, k int) {
	if len(SA) != len(T) {
		panic("mismatching sizes")
	}
	if len(T) == 0 {
		return
	}
	computeSA(T, SA, k)
}

func computeSA[S Symbol](T []S, SA []int, k int) {
	n := len(T)
	if n == 1 {
		SA[0] = 0
		return
	}

	// Classify suffixes. The sentinel is S-type; the suffix before it is L-type.
	stype := make([]bool, n)
	stype[n-1] = true
	for i := n - 3; i >= 0; i-- {
		stype[i] = T[i] < T[i+1] || (T[i] == T[i+1] && stype[i+1])
	}
	isLMS := func(i int) bool { return i > 0 && stype[i] && !stype[i-1] }

	// Stage 1: reduce the problem by at least 1/2.
	bkt := make([]int, k)
	getBuckets(T, bkt, true)
	for i := range SA {
		SA[i] = -1
	}
	for i := 1; i < n; i++ {
		if isLMS(i) {
			bkt[T[i]]--
			SA[bkt[T[i]]] = i
		}
	}
	induceL(T, SA, bkt, stype)
	induceS(T, SA, bkt, stype)

	// Compact all the sorted LMS substrings into the first n1 items of SA.
	var n1 int
	for i := 0; i < n; i++ {
		if isLMS(SA[i]) {
			SA[n1] = SA[i]
			n1++
		}
	}

	// Name the LMS substrings. Equal substrings receive equal names.
	for i := n1; i < n; i++ {
		SA[i] = -1
	}
	name, prev := 0, -1
	for i := 0; i < n1; i++ {
		pos := SA[i]
		diff := false
		for d := 0; d < n; d++ {
			if prev == -1 || T[pos+d] != T[prev+d] || stype[pos+d] != stype[prev+d] {
				diff = true
				break
			} else if d > 0 && (isLMS(pos+d) || isLMS(prev+d)) {
				break
			}
		}
		if diff {
			name++
			prev = pos
		}
		SA[n1+pos/2] = name - 1 // LMS positions are at least 2 apart
	}
	for i, j := n-1, n-1; i >= n1; i-- {
		if SA[i] >= 0 {
			SA[j] = SA[i]
			j--
		}
	}

	// Stage 2: solve the reduced problem, recursing if names are not unique.
	s1, sa1 := SA[n-n1:], SA[:n1]
	if name < n1 {
		computeSA(s1, sa1, name)
	} else {
		for i := 0; i < n1; i++ {
			sa1[s1[i]] = i
		}
	}

	// Stage 3: induce the result for the original problem.
	getBuckets(T, bkt, true)
	for i, j := 1, 0; i < n; i++ {
		if isLMS(i) {
			s1[j] = i
			j++
		}
	}
	for i := 0; i < n1; i++ {
		sa1[i] = s1[sa1[i]]
	}
	for i := n1; i < n; i++ {
		SA[i] = -1
	}
	for i := n1 - 1; i >= 0; i-- {
		j := SA[i]
		SA[i] = -1
		bkt[T[j]]--
		SA[bkt[T[j]]] = j
	}
	induceL(T, SA, bkt, stype)
	induceS(T, SA, bkt, stype)
}

// getBuckets sets bkt[c] to the start (or end, if end is set) of the bucket
// for symbol c.
func getBuckets[S Symbol](T []S, bkt []int, end bool) {
	for i := range bkt {
		bkt[i] = 0
	}
	for _, c := range T {
		bkt[c]++
	}
	var sum int
	for i, v := range bkt {
		sum += v
		if end {
			bkt[i] = sum
		} else {
			bkt[i] = sum - v
		}
	}
}

// induceL places every L-type suffix from left to right.
func induceL[S Symbol](T []S, SA, bkt []int, stype []bool) {
	getBuckets(T, bkt, false)
	for i := 0; i < len(SA); i++ {
		j := SA[i] - 1
		if j >= 0 && !stype[j] {
			SA[bkt[T[j]]] = j
			bkt[T[j]]++
		}
	}
}

// induceS places every S-type suffix from right to left.
func induceS[S Symbol](T []S, SA, bkt []int, stype []bool) {
	getBuckets(T, bkt, true)
	for i := len(SA) - 1; i >= 0; i-- {
		j := SA[i] - 1
		if j >= 0 && stype[j] {
			bkt[T[j]]--
			SA[bkt[T[j]]] = j
		}
	}
}
