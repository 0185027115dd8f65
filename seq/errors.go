// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seq

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrEmptySequence is returned by Pop and PopFirst on an empty sequence.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrInvalidArgument is returned, possibly wrapped, for arguments that are
	// in range but unusable, e.g. an empty span passed to SpliceRange.
	ErrInvalidArgument = errors.New("invalid argument")
)

// BoundsError reports a position or span outside [1, Len].
type BoundsError struct {
	Lo, Hi int
	Len    int
}

func (e *BoundsError) Error() string {
	if e.Lo == e.Hi {
		return fmt.Sprintf("position %d out of bounds [1, %d]", e.Lo, e.Len)
	}
	return fmt.Sprintf("span [%d, %d] out of bounds [1, %d]", e.Lo, e.Hi, e.Len)
}

// IsBounds reports whether err is, or wraps, a *BoundsError.
func IsBounds(err error) bool {
	_, ok := errors.Cause(err).(*BoundsError)
	return ok
}

// IsEmpty reports whether err is, or wraps, ErrEmptySequence.
func IsEmpty(err error) bool {
	return errors.Cause(err) == ErrEmptySequence
}

// IsInvalid reports whether err is, or wraps, ErrInvalidArgument.
func IsInvalid(err error) bool {
	return errors.Cause(err) == ErrInvalidArgument
}

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// checkPos verifies 1 <= i <= n.
func checkPos(i, n int) error {
	if i < 1 || i > n {
		return &BoundsError{Lo: i, Hi: i, Len: n}
	}
	return nil
}

// checkSpan verifies that [lo, hi] is a nonempty span inside [1, n].
func checkSpan(lo, hi, n int) error {
	if hi < lo {
		return invalidf("empty span [%d, %d]", lo, hi)
	}
	if lo < 1 || hi > n {
		return &BoundsError{Lo: lo, Hi: hi, Len: n}
	}
	return nil
}

func checkAlphabet(dst, src Sequence) error {
	if dst.Alphabet() != src.Alphabet() {
		return invalidf("alphabet mismatch: %s vs %s", dst.Alphabet().Name(), src.Alphabet().Name())
	}
	return nil
}
