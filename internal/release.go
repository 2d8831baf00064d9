// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !gofuzz

// Package internal holds build flags shared by the index packages.
package internal

const GoFuzz = false
