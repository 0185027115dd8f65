// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seq

import (
	"github.com/grailbio/bioseq/alphabet"
)

// View is a window [off+1, off+n] onto a Packed.  It shares storage with the
// Packed it was taken from; see the package documentation for the aliasing
// contract.
type View struct {
	p      *Packed
	off, n int
}

// View returns a view of positions [lo, hi] of p.  hi == lo-1 yields an
// empty view.
func (p *Packed) View(lo, hi int) (*View, error) {
	if !(hi == lo-1 && lo >= 1 && lo <= p.n+1) {
		if err := checkSpan(lo, hi, p.n); err != nil {
			return nil, err
		}
	}
	return &View{p: p, off: lo - 1, n: hi - lo + 1}, nil
}

// View returns a sub-view of positions [lo, hi] of v.  It shares storage with
// the same Packed as v.
func (v *View) View(lo, hi int) (*View, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	if !(hi == lo-1 && lo >= 1 && lo <= v.n+1) {
		if err := checkSpan(lo, hi, v.n); err != nil {
			return nil, err
		}
	}
	return &View{p: v.p, off: v.off + lo - 1, n: hi - lo + 1}, nil
}

// check verifies that the window still fits inside the storage owner.
func (v *View) check() error {
	if v.off+v.n > v.p.n {
		return &BoundsError{Lo: v.off + 1, Hi: v.off + v.n, Len: v.p.n}
	}
	return nil
}

// Alphabet implements Sequence.
func (v *View) Alphabet() alphabet.Alphabet { return v.p.alph }

// Len implements Sequence.
func (v *View) Len() int { return v.n }

// At implements Sequence.
func (v *View) At(i int) alphabet.Code {
	if err := v.check(); err != nil {
		panic(err)
	}
	if err := checkPos(i, v.n); err != nil {
		panic(err)
	}
	return v.p.get(v.off + i)
}

// Set implements Sequence.  The write lands in the shared storage.
func (v *View) Set(i int, c alphabet.Code) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := checkPos(i, v.n); err != nil {
		return err
	}
	if err := v.p.checkCode(c); err != nil {
		return err
	}
	v.p.set(v.off+i, c)
	return nil
}

// Copy returns an independent Packed holding the view's codes.
func (v *View) Copy() (*Packed, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	if v.n == 0 {
		return New(v.p.alph, 0), nil
	}
	return v.p.Slice(v.off+1, v.off+v.n)
}

// String decodes the view.
func (v *View) String() string {
	return decode(v)
}

// storage returns the Packed that owns s's codes and the offset of s's first
// position within it, or nil for sequences that are neither Packed nor View.
func storage(s Sequence) (*Packed, int) {
	switch t := s.(type) {
	case *Packed:
		return t, 0
	case *View:
		return t.p, t.off
	}
	return nil, 0
}

// SharesStorage reports whether writes through a can be observed through b.
func SharesStorage(a, b Sequence) bool {
	pa, _ := storage(a)
	pb, _ := storage(b)
	return pa != nil && pa == pb
}

// getter returns an unchecked positional reader for s after validating that
// s can be read at all.
func getter(s Sequence) (func(int) alphabet.Code, error) {
	switch t := s.(type) {
	case *Packed:
		return t.get, nil
	case *View:
		if err := t.check(); err != nil {
			return nil, err
		}
		p, off := t.p, t.off
		return func(i int) alphabet.Code { return p.get(off + i) }, nil
	}
	return s.At, nil
}

// setter is the writing counterpart of getter.  Codes passed to the returned
// function must already be valid for the alphabet.  Writes to a Packed or a
// View cannot fail; other Sequences report their Set errors.
func setter(s Sequence) (func(int, alphabet.Code) error, error) {
	switch t := s.(type) {
	case *Packed:
		return func(i int, c alphabet.Code) error {
			t.set(i, c)
			return nil
		}, nil
	case *View:
		if err := t.check(); err != nil {
			return nil, err
		}
		p, off := t.p, t.off
		return func(i int, c alphabet.Code) error {
			p.set(off+i, c)
			return nil
		}, nil
	}
	return s.Set, nil
}
