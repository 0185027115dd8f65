// Package fasta reads FASTA files straight into packed sequences.  FASTA
// files consist of a number of named sequences that may be interrupted by
// newlines.  For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appear after a space are ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/bioseq/seq"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const (
	maxLineSize = 1024 * 1024 * 300 // 300 MB
)

// Record is one named sequence.
type Record struct {
	Name string
	Seq  *seq.Packed
}

// Read parses all records in r, encoding residues with alph.  Whitespace
// inside sequence lines is skipped.
func Read(r io.Reader, alph alphabet.Alphabet) ([]Record, error) {
	var (
		recs []Record
		cur  *Record
		line int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), " \t\r")
		if len(text) == 0 {
			continue
		}
		if text[0] == '>' { // Start a new sequence.
			name := strings.Split(text[1:], " ")[0]
			if name == "" {
				return nil, errors.Errorf("line %d: malformed FASTA header", line)
			}
			recs = append(recs, Record{Name: name, Seq: seq.New(alph, 0)})
			cur = &recs[len(recs)-1]
			continue
		}
		if cur == nil {
			return nil, errors.Errorf("line %d: sequence data before first header", line)
		}
		chunk, err := seq.FromString(alph, strings.Replace(text, " ", "", -1))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: sequence %s", line, cur.Name)
		}
		if err := cur.Seq.Append(chunk); err != nil {
			return nil, err
		}
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	return recs, nil
}

// Open reads the FASTA file at path, which may be any path understood by
// grailbio/base/file.  Paths ending in ".gz" are decompressed.
func Open(ctx context.Context, path string, alph alphabet.Alphabet) (recs []Record, err error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() {
		if e := f.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	var r io.Reader = f.Reader(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "gzip %s", path)
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	recs, err = Read(r, alph)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return recs, nil
}
