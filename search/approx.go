// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search

import (
	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/bioseq/seq"
)

// MaxApproxLen is the longest pattern an Approx query accepts.
const MaxApproxLen = 64

// Approx matches a pattern within edit distance K (substitutions,
// insertions and deletions each cost one), using the same ambiguity-aware
// symbol compatibility as Exact.
//
// A match ends at the leftmost target position where some window ending
// there is within distance K.  Among the windows ending there, the match is
// the shortest one within distance K, so match lengths vary from Len()-K to
// Len()+K.
type Approx struct {
	alph    alphabet.Alphabet
	pattern []alphabet.Code
	k       int
	// peq[c] has bit i set iff pattern position i accepts code c; peqRev is
	// the same for the reversed pattern.
	peq, peqRev []uint64
}

// NewApprox compiles pattern for matching within edit distance k.  It
// requires 0 <= k < pattern.Len() <= MaxApproxLen.
func NewApprox(pattern seq.Sequence, k int) (*Approx, error) {
	codes, err := patternCodes(pattern)
	if err != nil {
		return nil, err
	}
	if len(codes) > MaxApproxLen {
		return nil, invalidf("pattern length %d exceeds %d", len(codes), MaxApproxLen)
	}
	if k < 0 || k >= len(codes) {
		return nil, invalidf("distance %d not in [0, %d)", k, len(codes))
	}
	return newApprox(pattern.Alphabet(), codes, k), nil
}

func newApprox(a alphabet.Alphabet, codes []alphabet.Code, k int) *Approx {
	m, nc := len(codes), a.NumCodes()
	q := &Approx{
		alph:    a,
		pattern: codes,
		k:       k,
		peq:     make([]uint64, nc),
		peqRev:  make([]uint64, nc),
	}
	for c := 0; c < nc; c++ {
		for i, p := range codes {
			if a.IsCompatible(p, alphabet.Code(c)) {
				q.peq[c] |= 1 << uint(i)
				q.peqRev[c] |= 1 << uint(m-1-i)
			}
		}
	}
	return q
}

// Alphabet implements Query.
func (q *Approx) Alphabet() alphabet.Alphabet { return q.alph }

// Len returns the pattern length.
func (q *Approx) Len() int { return len(q.pattern) }

// MaxDistance returns K.
func (q *Approx) MaxDistance() int { return q.k }

func (q *Approx) reverseComplement() (Query, error) {
	return newApprox(q.alph, reverseComplementCodes(q.alph, q.pattern), q.k), nil
}

// myers holds the vertical delta planes of one edit distance column:
// pv/mv bit i is set when D[i+1][j] - D[i][j] is +1/-1.  score is D[m][j].
type myers struct {
	pv, mv uint64
	score  int
	high   uint64
}

func newMyers(m int) myers {
	return myers{pv: ^uint64(0), score: m, high: 1 << uint(m-1)}
}

// step advances one target column.  anchored pins the alignment start to the
// first column (D[0][j] = j); otherwise the start is free (D[0][j] = 0).
func (s *myers) step(eq uint64, anchored bool) {
	xv := eq | s.mv
	xh := (((eq & s.pv) + s.pv) ^ s.pv) | eq
	ph := s.mv | ^(xh | s.pv)
	mh := s.pv & xh
	if ph&s.high != 0 {
		s.score++
	} else if mh&s.high != 0 {
		s.score--
	}
	ph <<= 1
	mh <<= 1
	if anchored {
		ph |= 1
	}
	s.pv = mh | ^(xv | ph)
	s.mv = ph & xv
}

func (q *Approx) next(t seq.Sequence, from int) (Range, bool, error) {
	n := t.Len()
	st := newMyers(len(q.pattern))
	sc := scanner{t: t}
	for lo := from; lo <= n; lo += chunkSize {
		codes, err := sc.chunk(lo, lo+chunkSize-1)
		if err != nil {
			return Range{}, false, err
		}
		for k, c := range codes {
			st.step(q.peq[c], false)
			if st.score <= q.k {
				end := lo + k
				start, err := q.startOf(t, from, end)
				if err != nil {
					return Range{}, false, err
				}
				return Range{Start: start, End: end}, true, nil
			}
		}
	}
	return Range{}, false, nil
}

// startOf runs the reversed pattern backward from end, anchored at end, and
// returns the largest start at or after from whose window is within
// distance K.  The forward pass guarantees one exists.
func (q *Approx) startOf(t seq.Sequence, from, end int) (int, error) {
	lo := end - len(q.pattern) - q.k + 1
	if lo < from {
		lo = from
	}
	codes, err := seq.Unpack(nil, t, lo, end)
	if err != nil {
		return 0, err
	}
	st := newMyers(len(q.pattern))
	for j := end; j >= lo; j-- {
		st.step(q.peqRev[codes[j-lo]], true)
		if st.score <= q.k {
			return j, nil
		}
	}
	return lo, nil
}
