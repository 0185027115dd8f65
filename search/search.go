// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search

import (
	"fmt"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/bioseq/seq"
	"github.com/pkg/errors"
)

// chunkSize is the number of target symbols unpacked per scan step.
const chunkSize = 4096

// Range is an inclusive, 1-based span of a target.
type Range struct {
	Start, End int
}

// Len returns the number of positions in r.
func (r Range) Len() int { return r.End - r.Start + 1 }

func (r Range) String() string { return fmt.Sprintf("%d-%d", r.Start, r.End) }

// Query is a compiled pattern.  Queries are immutable once built and may be
// shared by concurrent searches.
type Query interface {
	// Alphabet returns the alphabet targets must be encoded in.
	Alphabet() alphabet.Alphabet
	// next returns the first match starting at or after from.  from has been
	// validated against the target.
	next(t seq.Sequence, from int) (Range, bool, error)
	// reverseComplement returns the query for the opposite strand.
	reverseComplement() (Query, error)
}

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(seq.ErrInvalidArgument, format, args...)
}

// FindNext returns the first match of q in t that starts at or after from.
// from may be t.Len()+1, which never matches.
func FindNext(q Query, t seq.Sequence, from int) (Range, bool, error) {
	if q.Alphabet() != t.Alphabet() {
		return Range{}, false, invalidf("query alphabet %s, target alphabet %s",
			q.Alphabet().Name(), t.Alphabet().Name())
	}
	if from < 1 || from > t.Len()+1 {
		return Range{}, false, &seq.BoundsError{Lo: from, Hi: from, Len: t.Len()}
	}
	if from > t.Len() {
		return Range{}, false, nil
	}
	return q.next(t, from)
}

// Options control how an Iterator resumes after a match.
type Options struct {
	// Overlap resumes the scan at the match start plus one, so overlapping
	// matches are all reported.  Otherwise the scan resumes past the match
	// end.
	Overlap bool
}

// DefaultOptions reports overlapping matches.
var DefaultOptions = Options{Overlap: true}

// Iterator walks the matches of a query in a target, in increasing start
// order.  Typical use:
//
//	it := search.NewIterator(q, target, search.DefaultOptions)
//	for it.Scan() {
//		r := it.Range()
//		...
//	}
//	if err := it.Err(); err != nil { ... }
//
// The target must not be modified while an Iterator is in use.
type Iterator struct {
	q    Query
	t    seq.Sequence
	opts Options
	pos  int
	cur  Range
	err  error
	done bool
}

// NewIterator returns an Iterator positioned at the start of t.
func NewIterator(q Query, t seq.Sequence, opts Options) *Iterator {
	return &Iterator{q: q, t: t, opts: opts, pos: 1}
}

// Reset restarts the iterator at position from.
func (it *Iterator) Reset(from int) {
	it.pos, it.err, it.done, it.cur = from, nil, false, Range{}
}

// Scan advances to the next match.  It returns false when there are no more
// matches or an error occurred.
func (it *Iterator) Scan() bool {
	if it.done {
		return false
	}
	r, ok, err := FindNext(it.q, it.t, it.pos)
	if err != nil || !ok {
		it.err, it.done = err, true
		return false
	}
	it.cur = r
	if it.opts.Overlap {
		it.pos = r.Start + 1
	} else {
		it.pos = r.End + 1
	}
	if it.pos > it.t.Len()+1 {
		it.pos = it.t.Len() + 1
	}
	return true
}

// Range returns the current match.
func (it *Iterator) Range() Range { return it.cur }

// Err returns the error, if any, that stopped the iteration.
func (it *Iterator) Err() error { return it.err }

// FindAll returns every match of q in t.
func FindAll(q Query, t seq.Sequence, opts Options) ([]Range, error) {
	var out []Range
	it := NewIterator(q, t, opts)
	for it.Scan() {
		out = append(out, it.Range())
	}
	return out, it.Err()
}

// StartSet returns the start positions of every match of q in t.  Positions
// are stored as uint32, so t may hold at most math.MaxUint32 symbols.
func StartSet(q Query, t seq.Sequence, opts Options) (*roaring.Bitmap, error) {
	if int64(t.Len()) > math.MaxUint32 {
		return nil, invalidf("target length %d exceeds the start set limit %d", t.Len(), uint32(math.MaxUint32))
	}
	bm := roaring.New()
	it := NewIterator(q, t, opts)
	for it.Scan() {
		bm.Add(uint32(it.Range().Start))
	}
	return bm, it.Err()
}

// Strand identifies the strand a Hit was found on.
type Strand byte

const (
	// Forward matches the query as given.
	Forward Strand = '+'
	// Reverse matches the reverse complement of the query.
	Reverse Strand = '-'
)

// Hit is a match annotated with its strand.
type Hit struct {
	Range
	Strand Strand
}

// ReverseComplement returns the query that matches the opposite strand.
func ReverseComplement(q Query) (Query, error) {
	if !q.Alphabet().HasComplement() {
		return nil, invalidf("alphabet %s has no complement", q.Alphabet().Name())
	}
	return q.reverseComplement()
}

// FindAllBothStrands returns the matches of q and of its reverse complement,
// ordered by start position with forward hits first on ties.
func FindAllBothStrands(q Query, t seq.Sequence, opts Options) ([]Hit, error) {
	rc, err := ReverseComplement(q)
	if err != nil {
		return nil, err
	}
	fwd, err := FindAll(q, t, opts)
	if err != nil {
		return nil, err
	}
	rev, err := FindAll(rc, t, opts)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(fwd)+len(rev))
	for _, r := range fwd {
		hits = append(hits, Hit{r, Forward})
	}
	for _, r := range rev {
		hits = append(hits, Hit{r, Reverse})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Start != hits[j].Start {
			return hits[i].Start < hits[j].Start
		}
		return hits[i].Strand == Forward && hits[j].Strand == Reverse
	})
	return hits, nil
}

// patternCodes validates and unpacks a nonempty query pattern.
func patternCodes(pattern seq.Sequence) ([]alphabet.Code, error) {
	if pattern.Len() == 0 {
		return nil, invalidf("empty pattern")
	}
	return seq.Unpack(nil, pattern, 1, pattern.Len())
}

// reverseComplementCodes returns the reverse complement of codes.
func reverseComplementCodes(a alphabet.Alphabet, codes []alphabet.Code) []alphabet.Code {
	n := len(codes)
	rc := make([]alphabet.Code, n)
	for i, c := range codes {
		rc[n-1-i] = a.Complement(c)
	}
	return rc
}

// scanner unpacks a target chunk by chunk.
type scanner struct {
	t   seq.Sequence
	buf []alphabet.Code
}

// chunk returns the codes at [lo, min(hi, Len)].
func (s *scanner) chunk(lo, hi int) ([]alphabet.Code, error) {
	if n := s.t.Len(); hi > n {
		hi = n
	}
	var err error
	s.buf, err = seq.Unpack(s.buf[:0], s.t, lo, hi)
	return s.buf, err
}
