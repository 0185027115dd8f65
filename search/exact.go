// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package search finds patterns in packed sequences: exact matches up to
// ambiguity codes, matches within a bounded edit distance, and windows
// scoring above a position weight matrix threshold.
//
// Queries are compiled once from a pattern and are read-only afterwards, so
// one query can be run against many targets, from many goroutines.
package search

import (
	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/bioseq/seq"
)

// Exact matches a pattern exactly, where a pattern position matches any
// target symbol the alphabet deems compatible with it (so N in a DNA4
// pattern matches every base).  Matches have the pattern's length.
type Exact struct {
	alph    alphabet.Alphabet
	pattern []alphabet.Code
	// nw is the number of 64-bit state words.
	nw int
	// masks holds, for each target code, nw words whose bit i is clear iff
	// pattern position i accepts that code.
	masks []uint64
}

// NewExact compiles pattern.
func NewExact(pattern seq.Sequence) (*Exact, error) {
	codes, err := patternCodes(pattern)
	if err != nil {
		return nil, err
	}
	return newExact(pattern.Alphabet(), codes), nil
}

func newExact(a alphabet.Alphabet, codes []alphabet.Code) *Exact {
	m := len(codes)
	nw := (m + 63) / 64
	nc := a.NumCodes()
	masks := make([]uint64, nc*nw)
	for i := range masks {
		masks[i] = ^uint64(0)
	}
	for c := 0; c < nc; c++ {
		row := masks[c*nw : (c+1)*nw]
		for i, p := range codes {
			if a.IsCompatible(p, alphabet.Code(c)) {
				row[i/64] &^= 1 << uint(i%64)
			}
		}
	}
	return &Exact{alph: a, pattern: codes, nw: nw, masks: masks}
}

// Alphabet implements Query.
func (q *Exact) Alphabet() alphabet.Alphabet { return q.alph }

// Len returns the pattern length.
func (q *Exact) Len() int { return len(q.pattern) }

func (q *Exact) reverseComplement() (Query, error) {
	return newExact(q.alph, reverseComplementCodes(q.alph, q.pattern)), nil
}

// next runs Shift-Or: bit i of the state is clear iff the last i+1 target
// symbols match the first i+1 pattern positions.
func (q *Exact) next(t seq.Sequence, from int) (Range, bool, error) {
	n, m := t.Len(), len(q.pattern)
	if n-from+1 < m {
		return Range{}, false, nil
	}
	state := make([]uint64, q.nw)
	for i := range state {
		state[i] = ^uint64(0)
	}
	hiWord, hiBit := (m-1)/64, uint64(1)<<uint((m-1)%64)
	sc := scanner{t: t}
	for lo := from; lo <= n; lo += chunkSize {
		codes, err := sc.chunk(lo, lo+chunkSize-1)
		if err != nil {
			return Range{}, false, err
		}
		for k, c := range codes {
			mask := q.masks[int(c)*q.nw:]
			var carry uint64
			for w, v := range state {
				state[w] = v<<1 | carry | mask[w]
				carry = v >> 63
			}
			if state[hiWord]&hiBit == 0 {
				end := lo + k
				return Range{Start: end - m + 1, End: end}, true, nil
			}
		}
	}
	return Range{}, false, nil
}
