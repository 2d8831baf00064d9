// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package errors

import (
	"io"
	"testing"

	"github.com/dsnet/golib/errs"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	var vectors = []struct {
		err  Error
		want string
	}{
		{Error{}, "unknown error"},
		{Error{Code: InvalidInput}, "invalid input"},
		{Error{Pkg: "bwt", Code: InvalidInput, Msg: "empty text"}, "bwt: invalid input: empty text"},
		{Errorf(OutOfRange, "rankselect", "rank %d of %d bits", 9, 8), "rankselect: out of range: rank 9 of 8 bits"},
	}
	for i, v := range vectors {
		if got := v.err.Error(); got != v.want {
			t.Errorf("test %d, mismatching string:\ngot  %q\nwant %q", i, got, v.want)
		}
	}

	assert.True(t, IsNotFound(Error{Code: NotFound}))
	assert.False(t, IsNotFound(Error{Code: OutOfRange}))
	assert.False(t, IsInvalidInput(io.EOF))
}

// TestRecover checks that errors raised through errs keep their code.
func TestRecover(t *testing.T) {
	check := func(ok bool) (err error) {
		defer errs.Recover(&err)
		errs.Assert(ok, Errorf(InvalidInput, "test", "assertion failed"))
		return nil
	}
	assert.Nil(t, check(true))
	assert.True(t, IsInvalidInput(check(false)))
}
