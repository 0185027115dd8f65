// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seq

import (
	"github.com/grailbio/bioseq/alphabet"
)

// source returns packed storage holding other's codes, and the offset of
// other's first position within it.  Sequences that alias p, and sequences
// without packed storage, are copied first so that edits of p cannot disturb
// the codes being read.
func (p *Packed) source(other Sequence) (*Packed, int, error) {
	if err := checkAlphabet(p, other); err != nil {
		return nil, 0, err
	}
	if v, ok := other.(*View); ok {
		if err := v.check(); err != nil {
			return nil, 0, err
		}
	}
	if sp, off := storage(other); sp != nil && sp != p {
		return sp, off, nil
	}
	get, err := getter(other)
	if err != nil {
		return nil, 0, err
	}
	n := other.Len()
	q := New(p.alph, n)
	for i := 1; i <= n; i++ {
		c := get(i)
		if err := q.checkCode(c); err != nil {
			return nil, 0, err
		}
		q.set(i, c)
	}
	return q, 0, nil
}

// Append adds other's codes to the end of p.  other may be p itself.
func (p *Packed) Append(other Sequence) error {
	if other == Sequence(p) {
		n := p.n
		p.resize(2 * n)
		shiftedCopy(p, n+1, p, 1, n)
		return nil
	}
	src, off, err := p.source(other)
	if err != nil {
		return err
	}
	n, m := p.n, other.Len()
	p.resize(n + m)
	shiftedCopy(p, n+1, src, off+1, m)
	return nil
}

// Push appends a single code.
func (p *Packed) Push(c alphabet.Code) error {
	if err := p.checkCode(c); err != nil {
		return err
	}
	p.resize(p.n + 1)
	p.set(p.n, c)
	return nil
}

// Pop removes and returns the last code.
func (p *Packed) Pop() (alphabet.Code, error) {
	if p.n == 0 {
		return 0, ErrEmptySequence
	}
	c := p.get(p.n)
	p.resize(p.n - 1)
	return c, nil
}

// PushFirst prepends a single code.
func (p *Packed) PushFirst(c alphabet.Code) error {
	if err := p.checkCode(c); err != nil {
		return err
	}
	n := p.n
	p.resize(n + 1)
	shiftedCopy(p, 2, p, 1, n)
	p.set(1, c)
	return nil
}

// PopFirst removes and returns the first code.
func (p *Packed) PopFirst() (alphabet.Code, error) {
	if p.n == 0 {
		return 0, ErrEmptySequence
	}
	c := p.get(1)
	shiftedCopy(p, 1, p, 2, p.n-1)
	p.resize(p.n - 1)
	return c, nil
}

// Insert places c at position i, shifting [i, Len] right by one.
// i == Len+1 appends.
func (p *Packed) Insert(i int, c alphabet.Code) error {
	if err := checkPos(i, p.n+1); err != nil {
		return err
	}
	if err := p.checkCode(c); err != nil {
		return err
	}
	n := p.n
	p.resize(n + 1)
	if i <= n {
		shiftedCopy(p, i+1, p, i, n-i+1)
	}
	p.set(i, c)
	return nil
}

// DeleteAt removes the code at position i.
func (p *Packed) DeleteAt(i int) error {
	if err := checkPos(i, p.n); err != nil {
		return err
	}
	p.deleteRange(i, i)
	return nil
}

// DeleteRange removes positions [lo, hi].  hi == lo-1 deletes nothing.
func (p *Packed) DeleteRange(lo, hi int) error {
	if hi == lo-1 && lo >= 1 && lo <= p.n+1 {
		return nil
	}
	if err := checkSpan(lo, hi, p.n); err != nil {
		return err
	}
	p.deleteRange(lo, hi)
	return nil
}

func (p *Packed) deleteRange(lo, hi int) {
	shiftedCopy(p, lo, p, hi+1, p.n-hi)
	p.resize(p.n - (hi - lo + 1))
}

// SpliceAt inserts repl so that its first code lands at position i.
// i == Len+1 appends.
func (p *Packed) SpliceAt(i int, repl Sequence) error {
	if err := checkPos(i, p.n+1); err != nil {
		return err
	}
	src, off, err := p.source(repl)
	if err != nil {
		return err
	}
	n, m := p.n, repl.Len()
	p.resize(n + m)
	if i <= n {
		shiftedCopy(p, i+m, p, i, n-i+1)
	}
	shiftedCopy(p, i, src, off+1, m)
	return nil
}

// SpliceRange replaces positions [lo, hi] with repl.  The span must be
// nonempty; to insert without replacing anything use SpliceAt.
//
// Equal lengths overwrite in place.  A longer replacement grows p and shifts
// the tail right by the difference.  A shorter one first deletes the span's
// excess suffix, which shifts the least data, and then overwrites.
func (p *Packed) SpliceRange(lo, hi int, repl Sequence) error {
	if err := checkSpan(lo, hi, p.n); err != nil {
		return err
	}
	src, off, err := p.source(repl)
	if err != nil {
		return err
	}
	n, m, span := p.n, repl.Len(), hi-lo+1
	switch {
	case m > span:
		d := m - span
		p.resize(n + d)
		shiftedCopy(p, hi+1+d, p, hi+1, n-hi)
	case m < span:
		p.deleteRange(lo+m, hi)
	}
	shiftedCopy(p, lo, src, off+1, m)
	return nil
}

// Filter keeps, in order, the codes for which keep returns true and shrinks
// p to the retained count.  It compacts in place without a second buffer.
func (p *Packed) Filter(keep func(alphabet.Code) bool) {
	i := 1
	for i <= p.n && keep(p.get(i)) {
		i++
	}
	w := i
	for j := i + 1; j <= p.n; j++ {
		if c := p.get(j); keep(c) {
			p.set(w, c)
			w++
		}
	}
	if w <= p.n {
		p.resize(w - 1)
	}
}
