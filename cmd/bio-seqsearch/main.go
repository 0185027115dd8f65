// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

// See doc.go for documentation.

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bioseq/cmd/bio-seqsearch/seqsearch"
)

var (
	mode        = flag.String("mode", seqsearch.DefaultOpts.Mode, "Query mode: 'exact', 'approx', or 'pwm'")
	pattern     = flag.String("pattern", "", "Query pattern for the exact and approx modes")
	maxDist     = flag.Int("k", seqsearch.DefaultOpts.MaxDist, "Maximum edit distance in approx mode")
	pfmPath     = flag.String("pfm", "", "Count matrix path for pwm mode; one line per residue letter followed by its per-position counts")
	pseudocount = flag.Float64("pseudocount", seqsearch.DefaultOpts.Pseudocount, "Pseudocount added to each count matrix column")
	threshold   = flag.Float64("threshold", seqsearch.DefaultOpts.Threshold, "Minimum log2-odds window score in pwm mode")
	alph        = flag.String("alphabet", seqsearch.DefaultOpts.Alphabet, "Sequence alphabet: 'DNA2', 'DNA4', 'RNA4', or 'AA'")
	overlap     = flag.Bool("overlap", seqsearch.DefaultOpts.Overlap, "Report overlapping matches")
	bothStrands = flag.Bool("both-strands", seqsearch.DefaultOpts.BothStrands, "Also search for the reverse complement of the query")
	count       = flag.Bool("count", seqsearch.DefaultOpts.CountOnly, "Print the number of distinct match starts per record instead of the matches")
	parallelism = flag.Int("parallelism", seqsearch.DefaultOpts.Parallelism, "Maximum number of records searched at once; 0 = runtime.NumCPU()")
)

func bioSeqsearchUsage() {
	fmt.Printf("Usage: %s [OPTIONS] fapath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = bioSeqsearchUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one positional argument (the FASTA path) expected, got %v", flag.Args())
	}
	opts := seqsearch.Opts{
		Mode:        *mode,
		Pattern:     *pattern,
		MaxDist:     *maxDist,
		PFMPath:     *pfmPath,
		Pseudocount: *pseudocount,
		Threshold:   *threshold,
		Alphabet:    *alph,
		Overlap:     *overlap,
		BothStrands: *bothStrands,
		CountOnly:   *count,
		Parallelism: *parallelism,
	}
	if err := seqsearch.Run(context.Background(), flag.Arg(0), os.Stdout, opts); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}
