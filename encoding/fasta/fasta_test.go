package fasta_test

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/bioseq/encoding/fasta"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

const fastaData = ">seq1\n" + "ACGTA\nCGTAC\nGT\n" + ">seq2 A viral sequence\n" + "ACGT\n" + "NNRY\n"

func TestRead(t *testing.T) {
	recs, err := fasta.Read(strings.NewReader(fastaData), alphabet.DNA4)
	assert.NoError(t, err)
	assert.EQ(t, len(recs), 2)
	expect.EQ(t, recs[0].Name, "seq1")
	expect.EQ(t, recs[0].Seq.String(), "ACGTACGTACGT")
	expect.EQ(t, recs[1].Name, "seq2")
	expect.EQ(t, recs[1].Seq.String(), "ACGTNNRY")
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		data string
		alph alphabet.Alphabet
	}{
		{"ACGT\n>seq1\nACGT\n", alphabet.DNA4},
		{">\nACGT\n", alphabet.DNA4},
		{">seq1\nACGN\n", alphabet.DNA2},
	}
	for _, tt := range tests {
		_, err := fasta.Read(strings.NewReader(tt.data), tt.alph)
		expect.True(t, err != nil, "data %q", tt.data)
	}
}

func TestOpenGzip(t *testing.T) {
	dir, err := ioutil.TempDir("", "fasta")
	assert.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err = gz.Write([]byte(fastaData))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())
	path := filepath.Join(dir, "test.fa.gz")
	assert.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0644))

	recs, err := fasta.Open(context.Background(), path, alphabet.DNA4)
	assert.NoError(t, err)
	assert.EQ(t, len(recs), 2)
	expect.EQ(t, recs[0].Seq.String(), "ACGTACGTACGT")

	plain := filepath.Join(dir, "test.fa")
	assert.NoError(t, ioutil.WriteFile(plain, []byte(fastaData), 0644))
	recs, err = fasta.Open(context.Background(), plain, alphabet.DNA4)
	assert.NoError(t, err)
	expect.EQ(t, recs[1].Seq.Len(), 8)
}
