// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements functions to manipulate errors returned by the
// index packages.
package errors

import "fmt"

const (
	Unknown = iota
	InvalidInput
	OutOfRange
	NotFound
)

var codeMap = map[int]string{
	Unknown:      "unknown error",
	InvalidInput: "invalid input",
	OutOfRange:   "out of range",
	NotFound:     "not found",
}

type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)
}

// Errorf returns an Error with the given code and a formatted message.
func Errorf(code int, pkg, format string, args ...interface{}) Error {
	return Error{Code: code, Pkg: pkg, Msg: fmt.Sprintf(format, args...)}
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, codeMap[e.Code], e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	if len(ss) == 0 {
		return codeMap[Unknown]
	}
	s := ss[0]
	for _, x := range ss[1:] {
		s += ": " + x
	}
	return s
}

func (e Error) SuccinctError()       {}
func (e Error) IsInvalidInput() bool { return e.Code == InvalidInput }
func (e Error) IsOutOfRange() bool   { return e.Code == OutOfRange }
func (e Error) IsNotFound() bool     { return e.Code == NotFound }

func IsInvalidInput(err error) bool { return isCode(err, InvalidInput) }
func IsOutOfRange(err error) bool   { return isCode(err, OutOfRange) }
func IsNotFound(err error) bool     { return isCode(err, NotFound) }

func isCode(err error, code int) bool {
	if cerr, ok := err.(Error); ok && cerr.Code == code {
		return true
	}
	return false
}
