// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seq

import (
	"github.com/grailbio/bioseq/alphabet"
)

// Rand is the randomness Shuffle draws from.  *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

func access(s Sequence) (func(int) alphabet.Code, func(int, alphabet.Code) error, error) {
	get, err := getter(s)
	if err != nil {
		return nil, nil, err
	}
	set, err := setter(s)
	if err != nil {
		return nil, nil, err
	}
	return get, set, nil
}

func checkComplement(s Sequence) error {
	if !s.Alphabet().HasComplement() {
		return invalidf("alphabet %s has no complement", s.Alphabet().Name())
	}
	return nil
}

// swap exchanges the codes at i and j, writing x to i and y to j.
func swap(set func(int, alphabet.Code) error, i, j int, x, y alphabet.Code) error {
	if err := set(i, x); err != nil {
		return err
	}
	return set(j, y)
}

// Reverse reverses s in place.
//
// Like the other in-place transforms, Reverse cannot fail part way through on
// a Packed or a View.  A Sequence whose Set fails stops the transform and the
// error is returned; positions already written stay written.
func Reverse(s Sequence) error {
	get, set, err := access(s)
	if err != nil {
		return err
	}
	for i, j := 1, s.Len(); i < j; i, j = i+1, j-1 {
		if err := swap(set, i, j, get(j), get(i)); err != nil {
			return err
		}
	}
	return nil
}

// Complement replaces every code of s with its complement.
func Complement(s Sequence) error {
	if err := checkComplement(s); err != nil {
		return err
	}
	get, set, err := access(s)
	if err != nil {
		return err
	}
	a := s.Alphabet()
	for i := 1; i <= s.Len(); i++ {
		if err := set(i, a.Complement(get(i))); err != nil {
			return err
		}
	}
	return nil
}

// ReverseComplement reverses and complements s in place, in one pass.
func ReverseComplement(s Sequence) error {
	if err := checkComplement(s); err != nil {
		return err
	}
	get, set, err := access(s)
	if err != nil {
		return err
	}
	a := s.Alphabet()
	i, j := 1, s.Len()
	for ; i < j; i, j = i+1, j-1 {
		if err := swap(set, i, j, a.Complement(get(j)), a.Complement(get(i))); err != nil {
			return err
		}
	}
	if i == j {
		return set(i, a.Complement(get(i)))
	}
	return nil
}

// Canonicalize replaces s with its reverse complement if the reverse
// complement sorts strictly before s under the alphabet's order.  It
// reports whether s changed.  Applying it twice is the same as applying it
// once.
func Canonicalize(s Sequence) (bool, error) {
	if err := checkComplement(s); err != nil {
		return false, err
	}
	get, err := getter(s)
	if err != nil {
		return false, err
	}
	a := s.Alphabet()
	n := s.Len()
	for i := 1; i <= n; i++ {
		d := a.Compare(get(i), a.Complement(get(n+1-i)))
		if d < 0 {
			return false, nil
		}
		if d > 0 {
			if err := ReverseComplement(s); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Map replaces every code c of s with f(c).  f is applied to every position
// before anything is written; if any result is not a code of s's alphabet, Map
// returns ErrInvalidArgument and s is unchanged.
func Map(s Sequence, f func(alphabet.Code) alphabet.Code) error {
	get, set, err := access(s)
	if err != nil {
		return err
	}
	a := s.Alphabet()
	mapped := make([]alphabet.Code, s.Len())
	for i := range mapped {
		c := f(get(i + 1))
		if int(c) >= a.NumCodes() {
			return invalidf("map: code %d for position %d not in %s", c, i+1, a.Name())
		}
		mapped[i] = c
	}
	for i, c := range mapped {
		if err := set(i+1, c); err != nil {
			return err
		}
	}
	return nil
}

// Shuffle permutes s in place with the Fisher-Yates algorithm: for each i in
// [1, Len-1], position i is swapped with a uniform choice from [i, Len].
func Shuffle(s Sequence, r Rand) error {
	get, set, err := access(s)
	if err != nil {
		return err
	}
	n := s.Len()
	for i := 1; i < n; i++ {
		j := i + r.Intn(n-i+1)
		if err := swap(set, i, j, get(j), get(i)); err != nil {
			return err
		}
	}
	return nil
}

// Reversed returns a reversed copy of p.
func (p *Packed) Reversed() *Packed {
	q := p.Clone()
	_ = Reverse(q)
	return q
}

// ReverseComplemented returns the reverse complement of p as a new sequence.
func (p *Packed) ReverseComplemented() (*Packed, error) {
	q := p.Clone()
	if err := ReverseComplement(q); err != nil {
		return nil, err
	}
	return q, nil
}

// Canonical returns the canonical form of p as a new sequence: the lesser of
// p and its reverse complement.
func (p *Packed) Canonical() (*Packed, error) {
	q := p.Clone()
	if _, err := Canonicalize(q); err != nil {
		return nil, err
	}
	return q, nil
}
