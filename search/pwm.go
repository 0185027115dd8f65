// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search

import (
	"math"

	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/bioseq/seq"
)

// PWM is a position weight matrix: a score for each (code, column) pair.
// Codes without a row (typically ambiguity codes) score -Inf, so windows
// containing them never reach a finite threshold.
type PWM struct {
	alph alphabet.Alphabet
	m    int
	// rows[c][j] is the score of code c at column j; nil rows are -Inf.
	rows [][]float64
}

// NewPWM builds a matrix from one row per code; rows is indexed by code and
// may be shorter than NumCodes.  Non-nil rows must all have the same nonzero
// length.
func NewPWM(a alphabet.Alphabet, rows [][]float64) (*PWM, error) {
	if len(rows) > a.NumCodes() {
		return nil, invalidf("%d rows for %d codes", len(rows), a.NumCodes())
	}
	w := &PWM{alph: a, rows: make([][]float64, a.NumCodes())}
	for c, r := range rows {
		if r == nil {
			continue
		}
		if w.m == 0 {
			w.m = len(r)
		}
		if len(r) != w.m {
			return nil, invalidf("row for %c has %d columns, want %d", a.Decode(alphabet.Code(c)), len(r), w.m)
		}
		w.rows[c] = append([]float64(nil), r...)
	}
	if w.m == 0 {
		return nil, invalidf("empty matrix")
	}
	return w, nil
}

// Alphabet returns the matrix alphabet.
func (w *PWM) Alphabet() alphabet.Alphabet { return w.alph }

// Len returns the number of columns.
func (w *PWM) Len() int { return w.m }

// Score returns the score of code c at 1-based column j.  Codes without a
// row, including codes outside the alphabet, score -Inf.  It panics with a
// *seq.BoundsError if j is not in [1, Len()].
func (w *PWM) Score(c alphabet.Code, j int) float64 {
	if j < 1 || j > w.m {
		panic(&seq.BoundsError{Lo: j, Hi: j, Len: w.m})
	}
	if int(c) >= len(w.rows) || w.rows[c] == nil {
		return math.Inf(-1)
	}
	return w.rows[c][j-1]
}

// MaxScore returns the best achievable window score.
func (w *PWM) MaxScore() float64 {
	var total float64
	for j := 0; j < w.m; j++ {
		best := math.Inf(-1)
		for _, r := range w.rows {
			if r != nil && r[j] > best {
				best = r[j]
			}
		}
		total += best
	}
	return total
}

// ScoreAt returns the score of the window of t starting at pos.
func (w *PWM) ScoreAt(t seq.Sequence, pos int) (float64, error) {
	if t.Alphabet() != w.alph {
		return 0, invalidf("matrix alphabet %s, target alphabet %s", w.alph.Name(), t.Alphabet().Name())
	}
	codes, err := seq.Unpack(nil, t, pos, pos+w.m-1)
	if err != nil {
		return 0, err
	}
	return w.score(codes), nil
}

func (w *PWM) score(codes []alphabet.Code) float64 {
	var total float64
	for j, c := range codes {
		r := w.rows[c]
		if r == nil {
			return math.Inf(-1)
		}
		total += r[j]
	}
	return total
}

// ReverseComplement returns the matrix for the opposite strand: columns
// reversed and each row moved to its complementary code.
func (w *PWM) ReverseComplement() (*PWM, error) {
	if !w.alph.HasComplement() {
		return nil, invalidf("alphabet %s has no complement", w.alph.Name())
	}
	rc := &PWM{alph: w.alph, m: w.m, rows: make([][]float64, len(w.rows))}
	for c, r := range w.rows {
		if r == nil {
			continue
		}
		nr := make([]float64, w.m)
		for j, v := range r {
			nr[w.m-1-j] = v
		}
		rc.rows[w.alph.Complement(alphabet.Code(c))] = nr
	}
	return rc, nil
}

// PFM is a position frequency matrix: observed counts per code and column.
type PFM struct {
	Alphabet alphabet.Alphabet
	// Counts is indexed like the rows argument of NewPWM.
	Counts [][]float64
}

// ToPWM converts counts into log2-odds scores against background
// frequencies.  background is indexed by code; nil means uniform over the
// codes that have counts.  pseudocount is spread over the codes in
// proportion to the background.
func (f PFM) ToPWM(background []float64, pseudocount float64) (*PWM, error) {
	if pseudocount < 0 {
		return nil, invalidf("negative pseudocount %g", pseudocount)
	}
	counts, err := NewPWM(f.Alphabet, f.Counts)
	if err != nil {
		return nil, err
	}
	nr := 0
	for _, r := range counts.rows {
		if r != nil {
			nr++
		}
	}
	bg := make([]float64, len(counts.rows))
	for c, r := range counts.rows {
		if r == nil {
			continue
		}
		switch {
		case background == nil:
			bg[c] = 1 / float64(nr)
		case c < len(background) && background[c] > 0:
			bg[c] = background[c]
		default:
			return nil, invalidf("no background frequency for %c", f.Alphabet.Decode(alphabet.Code(c)))
		}
	}
	rows := make([][]float64, len(counts.rows))
	for j := 0; j < counts.m; j++ {
		var total float64
		for _, r := range counts.rows {
			if r != nil {
				if r[j] < 0 {
					return nil, invalidf("negative count in column %d", j+1)
				}
				total += r[j]
			}
		}
		if total+pseudocount == 0 {
			return nil, invalidf("column %d has no counts", j+1)
		}
		for c, r := range counts.rows {
			if r == nil {
				continue
			}
			if rows[c] == nil {
				rows[c] = make([]float64, counts.m)
			}
			p := (r[j] + pseudocount*bg[c]) / (total + pseudocount)
			rows[c][j] = math.Log2(p / bg[c])
		}
	}
	return NewPWM(f.Alphabet, rows)
}

// PWMQuery reports windows whose PWM score is at least Threshold.
type PWMQuery struct {
	pwm       *PWM
	threshold float64
}

// NewPWMQuery returns a query for windows scoring >= threshold.
func NewPWMQuery(pwm *PWM, threshold float64) *PWMQuery {
	return &PWMQuery{pwm: pwm, threshold: threshold}
}

// Alphabet implements Query.
func (q *PWMQuery) Alphabet() alphabet.Alphabet { return q.pwm.alph }

// PWM returns the query matrix.
func (q *PWMQuery) PWM() *PWM { return q.pwm }

// Threshold returns the minimum reported score.
func (q *PWMQuery) Threshold() float64 { return q.threshold }

func (q *PWMQuery) reverseComplement() (Query, error) {
	rc, err := q.pwm.ReverseComplement()
	if err != nil {
		return nil, err
	}
	return NewPWMQuery(rc, q.threshold), nil
}

func (q *PWMQuery) next(t seq.Sequence, from int) (Range, bool, error) {
	n, m := t.Len(), q.pwm.m
	sc := scanner{t: t}
	for lo := from; lo+m-1 <= n; lo += chunkSize {
		// Windows starting in [lo, lo+chunkSize) need m-1 extra symbols.
		codes, err := sc.chunk(lo, lo+chunkSize+m-2)
		if err != nil {
			return Range{}, false, err
		}
		for k := 0; k < chunkSize && k+m <= len(codes); k++ {
			if q.pwm.score(codes[k:k+m]) >= q.threshold {
				return Range{Start: lo + k, End: lo + k + m - 1}, true, nil
			}
		}
	}
	return Range{}, false, nil
}
