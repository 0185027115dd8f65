// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
bio-seqsearch reports the matches of a query in every record of a FASTA file.
Records are loaded into bit-packed sequences and searched concurrently.

Three query modes are supported:

  exact   -pattern is matched with ambiguity codes honored on both sides.
  approx  -pattern is matched within edit distance -k.
  pwm     the count matrix in -pfm is converted to log2-odds scores, and
          windows scoring at least -threshold are reported.

Each output line is tab-separated: record name, 1-based start, 1-based
inclusive end, strand ('+' or '-'), and the matched text.  With -count, each
line is instead the record name followed by the number of distinct start
positions.

Sample usage:
bio-seqsearch -pattern GATTACA -both-strands genome.fa.gz > hits.tsv
bio-seqsearch -mode approx -pattern GATTACA -k 1 -overlap=false genome.fa
bio-seqsearch -mode pwm -pfm ctcf.pfm -threshold 12 -count genome.fa
*/
package main
