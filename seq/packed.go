// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seq

import (
	"strings"

	"github.com/grailbio/bioseq/alphabet"
	"github.com/pkg/errors"
)

// Sequence is the positional capability shared by Packed and View.
// Positions are 1-based.
type Sequence interface {
	Alphabet() alphabet.Alphabet
	Len() int
	// At returns the code at position i.  It panics with a *BoundsError if i
	// is outside [1, Len()].
	At(i int) alphabet.Code
	// Set stores c at position i.
	Set(i int, c alphabet.Code) error
}

// Packed is a bit-packed, growable sequence of alphabet codes.
type Packed struct {
	alph  alphabet.Alphabet
	bits  uint
	words []uintptr
	n     int
}

// New returns a sequence of n copies of code 0.
func New(alph alphabet.Alphabet, n int) *Packed {
	if n < 0 {
		n = 0
	}
	b := alph.BitsPerSymbol()
	return &Packed{
		alph:  alph,
		bits:  b,
		words: make([]uintptr, wordsFor(n, b)),
		n:     n,
	}
}

// FromCodes packs codes into a new sequence.
func FromCodes(alph alphabet.Alphabet, codes []alphabet.Code) (*Packed, error) {
	p := New(alph, len(codes))
	nc := alph.NumCodes()
	for i, c := range codes {
		if int(c) >= nc {
			return nil, invalidf("code %d at position %d not in %s", c, i+1, alph.Name())
		}
		p.set(i+1, c)
	}
	return p, nil
}

// FromString encodes and packs s.
func FromString(alph alphabet.Alphabet, s string) (*Packed, error) {
	p := New(alph, len(s))
	for i := 0; i < len(s); i++ {
		c, err := alph.Encode(s[i])
		if err != nil {
			return nil, errors.Wrapf(err, "position %d", i+1)
		}
		p.set(i+1, c)
	}
	return p, nil
}

// MustFromString is FromString that panics on error.  Intended for tests and
// literals.
func MustFromString(alph alphabet.Alphabet, s string) *Packed {
	p, err := FromString(alph, s)
	if err != nil {
		panic(err)
	}
	return p
}

// Alphabet implements Sequence.
func (p *Packed) Alphabet() alphabet.Alphabet { return p.alph }

// Len implements Sequence.
func (p *Packed) Len() int { return p.n }

// Cap returns the number of symbols the current storage can hold without
// reallocating.
func (p *Packed) Cap() int { return cap(p.words) * wordBitsInt / int(p.bits) }

// At implements Sequence.
func (p *Packed) At(i int) alphabet.Code {
	if err := checkPos(i, p.n); err != nil {
		panic(err)
	}
	return p.get(i)
}

// Set implements Sequence.
func (p *Packed) Set(i int, c alphabet.Code) error {
	if err := checkPos(i, p.n); err != nil {
		return err
	}
	if err := p.checkCode(c); err != nil {
		return err
	}
	p.set(i, c)
	return nil
}

func (p *Packed) checkCode(c alphabet.Code) error {
	if int(c) >= p.alph.NumCodes() {
		return invalidf("code %d not in %s", c, p.alph.Name())
	}
	return nil
}

func (p *Packed) get(i int) alphabet.Code {
	w, o := addr(i, p.bits)
	return alphabet.Code((p.words[w] >> o) & lowMask(p.bits))
}

func (p *Packed) set(i int, c alphabet.Code) {
	w, o := addr(i, p.bits)
	m := lowMask(p.bits) << o
	p.words[w] = (p.words[w] &^ m) | (uintptr(c) << o & m)
}

// resize sets the length to n, reallocating only when n needs more words
// than are currently allocated.  Growth at least doubles capacity; shrinking
// keeps the storage.  Newly exposed positions are not cleared.
func (p *Packed) resize(n int) {
	need := wordsFor(n, p.bits)
	if need > len(p.words) {
		if need <= cap(p.words) {
			p.words = p.words[:need]
		} else {
			c := 2 * cap(p.words)
			if c < need {
				c = need
			}
			w := make([]uintptr, need, c)
			copy(w, p.words)
			p.words = w
		}
	}
	p.n = n
}

// Resize sets the length to n.  Positions past the old length read as code
// 0.
func (p *Packed) Resize(n int) error {
	if n < 0 {
		return invalidf("negative length %d", n)
	}
	old := p.n
	p.resize(n)
	if n > old {
		fillBits(p.words, old*int(p.bits), (n-old)*int(p.bits))
	}
	return nil
}

// shiftedCopy copies count symbols from src starting at srcPos to dst
// starting at dstPos.  dst and src must have the same symbol width and both
// ranges must already be in bounds.  When dst == src the ranges may overlap.
func shiftedCopy(dst *Packed, dstPos int, src *Packed, srcPos, count int) {
	b := int(dst.bits)
	copyBits(dst.words, (dstPos-1)*b, src.words, (srcPos-1)*b, count*b,
		dst == src && dstPos > srcPos)
}

// unpack appends the codes at [lo, hi] to dst, a word at a time.
func (p *Packed) unpack(dst []alphabet.Code, lo, hi int) []alphabet.Code {
	mask := lowMask(p.bits)
	for i := lo; i <= hi; {
		w, o := addr(i, p.bits)
		word := p.words[w] >> o
		k := roomInWord(i, p.bits)
		if k > hi-i+1 {
			k = hi - i + 1
		}
		for j := 0; j < k; j++ {
			dst = append(dst, alphabet.Code(word&mask))
			word >>= p.bits
		}
		i += k
	}
	return dst
}

// Unpack appends the codes at positions [lo, hi] of s to dst and returns the
// extended slice.  hi == lo-1 denotes an empty span.
func Unpack(dst []alphabet.Code, s Sequence, lo, hi int) ([]alphabet.Code, error) {
	if hi == lo-1 && lo >= 1 && lo <= s.Len()+1 {
		return dst, nil
	}
	if err := checkSpan(lo, hi, s.Len()); err != nil {
		return dst, err
	}
	switch t := s.(type) {
	case *Packed:
		return t.unpack(dst, lo, hi), nil
	case *View:
		if err := t.check(); err != nil {
			return dst, err
		}
		return t.p.unpack(dst, t.off+lo, t.off+hi), nil
	}
	for i := lo; i <= hi; i++ {
		dst = append(dst, s.At(i))
	}
	return dst, nil
}

// Codes returns the unpacked codes of p.
func (p *Packed) Codes() []alphabet.Code {
	return p.unpack(make([]alphabet.Code, 0, p.n), 1, p.n)
}

// Clone returns an independent copy of p.
func (p *Packed) Clone() *Packed {
	q := New(p.alph, p.n)
	copy(q.words, p.words[:len(q.words)])
	return q
}

// Slice returns an independent copy of positions [lo, hi].
func (p *Packed) Slice(lo, hi int) (*Packed, error) {
	if hi == lo-1 && lo >= 1 && lo <= p.n+1 {
		return New(p.alph, 0), nil
	}
	if err := checkSpan(lo, hi, p.n); err != nil {
		return nil, err
	}
	q := New(p.alph, hi-lo+1)
	shiftedCopy(q, 1, p, lo, q.n)
	return q, nil
}

// Equal reports whether p and s hold the same codes of the same alphabet.
func (p *Packed) Equal(s Sequence) bool {
	if s == nil || p.alph != s.Alphabet() || p.n != s.Len() {
		return false
	}
	if q, ok := s.(*Packed); ok {
		// Compare whole words except the last, whose padding may differ.
		full := p.n * int(p.bits) / wordBitsInt
		for w := 0; w < full; w++ {
			if p.words[w] != q.words[w] {
				return false
			}
		}
		for i := full*wordBitsInt/int(p.bits) + 1; i <= p.n; i++ {
			if p.get(i) != q.get(i) {
				return false
			}
		}
		return true
	}
	get, err := getter(s)
	if err != nil {
		return false
	}
	for i := 1; i <= p.n; i++ {
		if p.get(i) != get(i) {
			return false
		}
	}
	return true
}

// String decodes p.
func (p *Packed) String() string {
	return decode(p)
}

func decode(s Sequence) string {
	get, err := getter(s)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	var sb strings.Builder
	sb.Grow(s.Len())
	a := s.Alphabet()
	for i := 1; i <= s.Len(); i++ {
		sb.WriteByte(a.Decode(get(i)))
	}
	return sb.String()
}
