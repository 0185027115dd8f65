package seqsearch_test

import (
	"bytes"
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/bioseq/cmd/bio-seqsearch/seqsearch"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func writeFile(t *testing.T, dir, name, data string) string {
	path := filepath.Join(dir, name)
	assert.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
	return path
}

func run(t *testing.T, fa string, opts seqsearch.Opts) string {
	var out bytes.Buffer
	assert.NoError(t, seqsearch.Run(context.Background(), fa, &out, opts))
	return out.String()
}

func TestRun(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	fa := writeFile(t, tempDir, "in.fa", ">r1\nACAC\nACAC\n>r2 empty of matches\nTTTT\n>r3\nAACTTGTT\n")

	opts := seqsearch.DefaultOpts
	opts.Pattern = "ACAC"
	expect.EQ(t, run(t, fa, opts), "r1\t1\t4\t+\tACAC\nr1\t3\t6\t+\tACAC\nr1\t5\t8\t+\tACAC\n")

	opts.Overlap = false
	expect.EQ(t, run(t, fa, opts), "r1\t1\t4\t+\tACAC\nr1\t5\t8\t+\tACAC\n")

	opts = seqsearch.DefaultOpts
	opts.Pattern = "AAC"
	opts.BothStrands = true
	opts.Parallelism = 1
	expect.EQ(t, run(t, fa, opts), "r3\t1\t3\t+\tAAC\nr3\t6\t8\t-\tGTT\n")

	opts.CountOnly = true
	expect.EQ(t, run(t, fa, opts), "r1\t0\nr2\t0\nr3\t2\n")

	opts = seqsearch.DefaultOpts
	opts.Mode = seqsearch.ModeApprox
	opts.Pattern = "ACAG"
	opts.MaxDist = 1
	opts.Overlap = false
	expect.EQ(t, run(t, fa, opts), "r1\t1\t3\t+\tACA\nr1\t5\t7\t+\tACA\n")
}

func TestRunPWM(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	fa := writeFile(t, tempDir, "in.fa", ">r1\nACGTTTCGT\n")
	pfm := writeFile(t, tempDir, "acg.pfm", "# consensus ACG\nA 10 0 0\nC 0 10 0\nG 0 0 10\nT 0 0 0\n")

	opts := seqsearch.DefaultOpts
	opts.Mode = seqsearch.ModePWM
	opts.PFMPath = pfm
	opts.Pseudocount = 0
	// Each conserved column scores log2(4) against a uniform background.
	opts.Threshold = 6
	expect.EQ(t, run(t, fa, opts), "r1\t1\t3\t+\tACG\n")

	opts.BothStrands = true
	expect.EQ(t, run(t, fa, opts), "r1\t1\t3\t+\tACG\nr1\t2\t4\t-\tCGT\nr1\t7\t9\t-\tCGT\n")
}

func TestRunErrors(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	fa := writeFile(t, tempDir, "in.fa", ">r1\nACGT\n")
	ctx := context.Background()

	for _, opts := range []seqsearch.Opts{
		{Mode: "fuzzy", Pattern: "AC", Alphabet: "DNA4"},
		{Mode: seqsearch.ModeExact, Alphabet: "DNA4"},
		{Mode: seqsearch.ModeExact, Pattern: "AC", Alphabet: "DNA9"},
		{Mode: seqsearch.ModeApprox, Pattern: "AC", MaxDist: 2, Alphabet: "DNA4"},
		{Mode: seqsearch.ModePWM, Alphabet: "DNA4"},
		{Mode: seqsearch.ModeExact, Pattern: "MK", Alphabet: "AA", BothStrands: true},
	} {
		var out bytes.Buffer
		expect.True(t, seqsearch.Run(ctx, fa, &out, opts) != nil, "opts %+v", opts)
	}
	var out bytes.Buffer
	expect.True(t, seqsearch.Run(ctx, filepath.Join(tempDir, "missing.fa"), &out, seqsearch.Opts{
		Mode: seqsearch.ModeExact, Pattern: "AC", Alphabet: "DNA4",
	}) != nil)
}

func TestParsePFM(t *testing.T) {
	pfm, err := seqsearch.ParsePFM(strings.NewReader("A 1 2\n\n# comment\nT 3 4\n"), alphabet.DNA2)
	assert.NoError(t, err)
	expect.EQ(t, pfm.Counts, [][]float64{{1, 2}, nil, nil, {3, 4}})

	for _, data := range []string{
		"",
		"A 1 2\nA 3 4\n",
		"A 1 2\nC 3\n",
		"AC 1 2\n",
		"A 1 x\n",
		"N 1 2\n",
	} {
		_, err := seqsearch.ParsePFM(strings.NewReader(data), alphabet.DNA2)
		expect.True(t, err != nil, "data %q", data)
	}
}
