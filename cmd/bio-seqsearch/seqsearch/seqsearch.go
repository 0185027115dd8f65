// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package seqsearch implements bio-seqsearch: it loads a FASTA file into
// packed sequences and reports every match of an exact, approximate, or
// position weight matrix query.
package seqsearch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/bioseq/encoding/fasta"
	"github.com/grailbio/bioseq/search"
	"github.com/grailbio/bioseq/seq"
	"golang.org/x/sync/errgroup"
)

// Query modes.
const (
	ModeExact  = "exact"
	ModeApprox = "approx"
	ModePWM    = "pwm"
)

// Opts configures Run.
type Opts struct {
	// Mode is one of ModeExact, ModeApprox, ModePWM.
	Mode string
	// Pattern is the query text for exact and approximate searches.
	Pattern string
	// MaxDist is the edit distance bound for approximate searches.
	MaxDist int
	// PFMPath names a count matrix for PWM searches.  Each nonblank line is
	// a residue letter followed by one count per motif position; lines
	// starting with '#' are ignored.
	PFMPath string
	// Pseudocount is added, spread over the background, to every PFM
	// column before the log-odds conversion.
	Pseudocount float64
	// Threshold is the minimum PWM window score.
	Threshold float64
	// Alphabet names the encoding of both the query and the targets.
	Alphabet string
	// Overlap reports overlapping matches.
	Overlap bool
	// BothStrands also searches the reverse complement of the query.
	BothStrands bool
	// CountOnly prints the number of distinct match starts per record
	// instead of the matches themselves.
	CountOnly bool
	// Parallelism bounds the number of records searched concurrently.  Zero
	// means runtime.NumCPU().
	Parallelism int
}

// DefaultOpts is the default Opts.
var DefaultOpts = Opts{
	Mode:        ModeExact,
	Pseudocount: 1,
	Alphabet:    "DNA4",
	Overlap:     true,
}

// result holds the output of one record.
type result struct {
	hits   []search.Hit
	starts *roaring.Bitmap
}

// Run searches every record of the FASTA file at fastaPath and writes
// tab-separated results to out.  Match lines are
//
//	name  start  end  strand  matched-text
//
// with 1-based inclusive coordinates.  In CountOnly mode each line is the
// record name followed by the number of distinct match start positions.
func Run(ctx context.Context, fastaPath string, out io.Writer, opts Opts) error {
	alph, err := alphabet.ByName(opts.Alphabet)
	if err != nil {
		return err
	}
	q, err := BuildQuery(ctx, alph, opts)
	if err != nil {
		return err
	}
	var rc search.Query
	if opts.BothStrands {
		if rc, err = search.ReverseComplement(q); err != nil {
			return err
		}
	}
	recs, err := fasta.Open(ctx, fastaPath, alph)
	if err != nil {
		return err
	}
	log.Printf("seqsearch: %d records loaded from %s", len(recs), fastaPath)

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	sopts := search.Options{Overlap: opts.Overlap}
	results := make([]result, len(recs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)
	for i := range recs {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := recs[i]
			var err error
			if opts.CountOnly {
				results[i].starts, err = countStarts(q, rc, rec.Seq, sopts)
			} else if rc != nil {
				results[i].hits, err = search.FindAllBothStrands(q, rec.Seq, sopts)
			} else {
				var ranges []search.Range
				ranges, err = search.FindAll(q, rec.Seq, sopts)
				results[i].hits = make([]search.Hit, len(ranges))
				for j, r := range ranges {
					results[i].hits[j] = search.Hit{Range: r, Strand: search.Forward}
				}
			}
			if err != nil {
				return errors.E(err, "search", rec.Name)
			}
			log.Debug.Printf("seqsearch: %s: %d residues searched", rec.Name, rec.Seq.Len())
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	total := 0
	for i, rec := range recs {
		if opts.CountOnly {
			n := results[i].starts.GetCardinality()
			total += int(n)
			fmt.Fprintf(w, "%s\t%d\n", rec.Name, n)
			continue
		}
		for _, h := range results[i].hits {
			match, err := rec.Seq.Slice(h.Start, h.End)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%c\t%s\n", rec.Name, h.Start, h.End, h.Strand, match)
		}
		total += len(results[i].hits)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Printf("seqsearch: %d matches", total)
	return nil
}

// countStarts returns the distinct start positions of q, and of rc when
// it is non-nil, in t.
func countStarts(q, rc search.Query, t seq.Sequence, opts search.Options) (*roaring.Bitmap, error) {
	starts, err := search.StartSet(q, t, opts)
	if err != nil || rc == nil {
		return starts, err
	}
	rcStarts, err := search.StartSet(rc, t, opts)
	if err != nil {
		return nil, err
	}
	starts.Or(rcStarts)
	return starts, nil
}

// BuildQuery compiles the query described by opts.
func BuildQuery(ctx context.Context, alph alphabet.Alphabet, opts Opts) (search.Query, error) {
	switch opts.Mode {
	case ModeExact, ModeApprox:
		if opts.Pattern == "" {
			return nil, errors.E(errors.Invalid, "-pattern is required in mode "+opts.Mode)
		}
		pattern, err := seq.FromString(alph, opts.Pattern)
		if err != nil {
			return nil, err
		}
		if opts.Mode == ModeExact {
			return search.NewExact(pattern)
		}
		return search.NewApprox(pattern, opts.MaxDist)
	case ModePWM:
		if opts.PFMPath == "" {
			return nil, errors.E(errors.Invalid, "-pfm is required in mode pwm")
		}
		pfm, err := ReadPFM(ctx, opts.PFMPath, alph)
		if err != nil {
			return nil, err
		}
		pwm, err := pfm.ToPWM(nil, opts.Pseudocount)
		if err != nil {
			return nil, err
		}
		log.Printf("seqsearch: %d-column matrix, max score %.3f, threshold %.3f",
			pwm.Len(), pwm.MaxScore(), opts.Threshold)
		return search.NewPWMQuery(pwm, opts.Threshold), nil
	}
	return nil, errors.E(errors.Invalid, fmt.Sprintf("unknown mode %q", opts.Mode))
}

// ReadPFM reads a count matrix from path.  See Opts.PFMPath for the format.
// Residues with no line are left out of the matrix and never match.
func ReadPFM(ctx context.Context, path string, alph alphabet.Alphabet) (pfm search.PFM, err error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return pfm, err
	}
	defer func() {
		if e := f.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	pfm, err = ParsePFM(f.Reader(ctx), alph)
	if err != nil {
		return pfm, errors.E(err, path)
	}
	return pfm, nil
}

// ParsePFM parses a count matrix from r.
func ParsePFM(r io.Reader, alph alphabet.Alphabet) (search.PFM, error) {
	pfm := search.PFM{Alphabet: alph, Counts: make([][]float64, alph.NumCodes())}
	width := -1
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields[0]) != 1 {
			return pfm, errors.E(errors.Invalid, fmt.Sprintf("line %d: bad residue %q", line, fields[0]))
		}
		c, err := alph.Encode(fields[0][0])
		if err != nil {
			return pfm, errors.E(err, fmt.Sprintf("line %d", line))
		}
		if pfm.Counts[c] != nil {
			return pfm, errors.E(errors.Invalid, fmt.Sprintf("line %d: duplicate residue %q", line, fields[0]))
		}
		if width < 0 {
			width = len(fields) - 1
		} else if len(fields)-1 != width {
			return pfm, errors.E(errors.Invalid, fmt.Sprintf("line %d: %d columns, want %d", line, len(fields)-1, width))
		}
		row := make([]float64, width)
		for j, s := range fields[1:] {
			if row[j], err = strconv.ParseFloat(s, 64); err != nil {
				return pfm, errors.E(errors.Invalid, fmt.Sprintf("line %d", line), err)
			}
		}
		pfm.Counts[c] = row
	}
	if err := sc.Err(); err != nil {
		return pfm, err
	}
	if width <= 0 {
		return pfm, errors.E(errors.Invalid, "empty count matrix")
	}
	return pfm, nil
}
