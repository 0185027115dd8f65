// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search

import (
	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/bioseq/seq"
)

// FindNextSymbol returns the first position at or after from holding exactly
// code c.  Unlike Exact, ambiguity codes are compared literally.
func FindNextSymbol(t seq.Sequence, c alphabet.Code, from int) (int, bool, error) {
	n := t.Len()
	if from < 1 || from > n+1 {
		return 0, false, &seq.BoundsError{Lo: from, Hi: from, Len: n}
	}
	sc := scanner{t: t}
	for lo := from; lo <= n; lo += chunkSize {
		codes, err := sc.chunk(lo, lo+chunkSize-1)
		if err != nil {
			return 0, false, err
		}
		for k, x := range codes {
			if x == c {
				return lo + k, true, nil
			}
		}
	}
	return 0, false, nil
}

// SymbolPositions returns every position of t holding exactly code c.
func SymbolPositions(t seq.Sequence, c alphabet.Code) ([]int, error) {
	var out []int
	for pos := 1; ; {
		i, ok, err := FindNextSymbol(t, c, pos)
		if err != nil || !ok {
			return out, err
		}
		out = append(out, i)
		pos = i + 1
	}
}
