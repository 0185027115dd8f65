package seq_test

import (
	"testing"

	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/bioseq/seq"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestViewSharesStorage(t *testing.T) {
	p := dna("AAAACCCCGGGGTTTT")
	v, err := p.View(5, 12)
	assert.NoError(t, err)
	expect.EQ(t, v.String(), "CCCCGGGG")
	expect.True(t, seq.SharesStorage(p, v))

	// Writes through the view land in the parent.
	assert.NoError(t, v.Set(1, mustEncode(t, 'T')))
	expect.EQ(t, p.String(), "AAAATCCCGGGGTTTT")

	// Positional transforms operate on the window only.
	assert.NoError(t, seq.ReverseComplement(v))
	expect.EQ(t, v.String(), "CCCCGGGA")
	expect.EQ(t, p.String(), "AAAACCCCGGGATTTT")

	// Structural edits of the parent are visible through the view.
	assert.NoError(t, p.PushFirst(mustEncode(t, 'N')))
	expect.EQ(t, v.String(), "ACCCCGGG")
}

func TestViewInvalidatedByShrink(t *testing.T) {
	p := dna("ACGTACGT")
	v, err := p.View(5, 8)
	assert.NoError(t, err)
	assert.NoError(t, p.DeleteRange(1, 2))
	expect.True(t, seq.IsBounds(v.Set(1, 1)))
	expect.True(t, seq.IsBounds(seq.Reverse(v)))
	_, err = v.Copy()
	expect.True(t, seq.IsBounds(err))
	_, err = seq.Unpack(nil, v, 1, 2)
	expect.True(t, seq.IsBounds(err))

	// Growing the parent back makes the window valid again.
	assert.NoError(t, p.Append(dna("NN")))
	expect.EQ(t, v.String(), "GTNN")
}

func TestViewAsSource(t *testing.T) {
	p := dna("ACGTACGT")
	v, err := p.View(2, 4)
	assert.NoError(t, err)
	assert.NoError(t, p.SpliceAt(1, v))
	expect.EQ(t, p.String(), "CGTACGTACGT")

	q := dna("TTTT")
	v, err = p.View(1, 3)
	assert.NoError(t, err)
	assert.NoError(t, q.SpliceRange(2, 3, v))
	expect.EQ(t, q.String(), "TCGTT")

	c, err := v.Copy()
	assert.NoError(t, err)
	expect.False(t, seq.SharesStorage(c, p))
	expect.EQ(t, c.String(), "CGT")
}

func TestSubView(t *testing.T) {
	p := seq.MustFromString(alphabet.DNA2, "ACGTACGTAC")
	v, err := p.View(3, 9)
	assert.NoError(t, err)
	w, err := v.View(2, 4)
	assert.NoError(t, err)
	expect.EQ(t, w.String(), "TAC")
	expect.True(t, seq.SharesStorage(v, w))
	assert.NoError(t, seq.Reverse(w))
	expect.EQ(t, p.String(), "ACGCATGTAC")
	_, err = v.View(5, 8)
	expect.True(t, seq.IsBounds(err))
	e, err := v.View(4, 3)
	assert.NoError(t, err)
	expect.EQ(t, e.Len(), 0)
}
