// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package succinct is a collection of succinct full-text indexes built on the
// Burrows-Wheeler Transform.
//
// The index family lives in the sub-packages:
//
//	alphabet   - symbol sets, dense ranks, and reverse-complement pairings
//	rankselect - rank/select over a static bit-vector
//	bwt        - the transform, its inverse, and the Less and Occ tables
//	fmindex    - the FM-index and its bidirectional FMD variant
//
// Every structure is immutable once built and safe for concurrent queries.
package succinct

// Error is the interface implemented by all errors returned by this module.
//
// The three predicates classify errors by cause. A missing pattern is never
// reported as an error; it is an empty interval.
type Error interface {
	error
	SuccinctError() // Marker method

	IsInvalidInput() bool // Malformed alphabet or text passed to a build call
	IsOutOfRange() bool   // Rank queried past the end of a bit-vector
	IsNotFound() bool     // Select queried for a missing bit
}
