package alphabet_test

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bioseq/alphabet"
	"github.com/grailbio/testutil/expect"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		a   alphabet.Alphabet
		in  string
		out string
	}{
		{alphabet.DNA2, "ACGTacgt", "ACGTACGT"},
		{alphabet.DNA4, "ACGTNRY-", "ACGTNRY-"},
		{alphabet.DNA4, "acgtn", "ACGTN"},
		{alphabet.RNA4, "ACGUT", "ACGUU"},
		{alphabet.AminoAcid, "MKV*x-", "MKV*X-"},
	}
	for _, tt := range tests {
		codes, err := alphabet.EncodeString(tt.a, tt.in)
		expect.NoError(t, err)
		expect.EQ(t, alphabet.DecodeString(tt.a, codes), tt.out)
	}
}

func TestEncodeInvalid(t *testing.T) {
	_, err := alphabet.EncodeString(alphabet.DNA2, "ACNT")
	expect.True(t, err != nil)
	expect.True(t, errors.Is(errors.Invalid, err))
	_, err = alphabet.DNA4.Encode('J')
	expect.True(t, errors.Is(errors.Invalid, err))
}

func TestComplement(t *testing.T) {
	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'}, {'R', 'Y'}, {'K', 'M'}, {'S', 'S'},
		{'W', 'W'}, {'B', 'V'}, {'D', 'H'}, {'N', 'N'}, {'-', '-'},
	}
	for _, p := range pairs {
		a, err := alphabet.DNA4.Encode(p.a)
		expect.NoError(t, err)
		expect.EQ(t, alphabet.DNA4.Decode(alphabet.DNA4.Complement(a)), p.b)
		expect.EQ(t, alphabet.DNA4.Complement(alphabet.DNA4.Complement(a)), a)
	}
	for c := alphabet.Code(0); c < 4; c++ {
		expect.EQ(t, alphabet.DNA2.Complement(alphabet.DNA2.Complement(c)), c)
	}
	expect.False(t, alphabet.AminoAcid.HasComplement())
}

func TestCompatibility(t *testing.T) {
	enc := func(a alphabet.Alphabet, b byte) alphabet.Code {
		c, err := a.Encode(b)
		expect.NoError(t, err)
		return c
	}
	d := alphabet.DNA4
	expect.True(t, d.IsCompatible(enc(d, 'N'), enc(d, 'A')))
	expect.True(t, d.IsCompatible(enc(d, 'R'), enc(d, 'G')))
	expect.False(t, d.IsCompatible(enc(d, 'R'), enc(d, 'C')))
	expect.False(t, d.IsCompatible(enc(d, '-'), enc(d, 'A')))
	expect.True(t, d.IsCompatible(enc(d, '-'), enc(d, '-')))
	expect.True(t, d.IsConcrete(enc(d, 'T')))
	expect.False(t, d.IsConcrete(enc(d, 'Y')))

	aa := alphabet.AminoAcid
	expect.True(t, aa.IsCompatible(enc(aa, 'B'), enc(aa, 'N')))
	expect.True(t, aa.IsCompatible(enc(aa, 'X'), enc(aa, 'W')))
	expect.False(t, aa.IsCompatible(enc(aa, 'X'), enc(aa, '*')))
	expect.False(t, aa.IsCompatible(enc(aa, 'J'), enc(aa, 'E')))
}

func TestByName(t *testing.T) {
	for _, name := range []string{"DNA2", "DNA4", "RNA4", "AA"} {
		a, err := alphabet.ByName(name)
		expect.NoError(t, err)
		expect.EQ(t, a.Name(), name)
	}
	_, err := alphabet.ByName("dna")
	expect.True(t, errors.Is(errors.Invalid, err))
}

func TestCompareDecodedOrder(t *testing.T) {
	a := alphabet.DNA4
	letters := "-ABCDGHKMNRSTVWY"
	for i := 0; i < len(letters); i++ {
		ci, err := a.Encode(letters[i])
		expect.NoError(t, err)
		expect.EQ(t, a.Compare(ci, ci), 0)
		for j := i + 1; j < len(letters); j++ {
			cj, err := a.Encode(letters[j])
			expect.NoError(t, err)
			expect.True(t, a.Compare(ci, cj) < 0, "%c vs %c", letters[i], letters[j])
			expect.True(t, a.Compare(cj, ci) > 0, "%c vs %c", letters[j], letters[i])
		}
	}
	// G (code 4) sorts before M (code 3).
	g, _ := a.Encode('G')
	m, _ := a.Encode('M')
	expect.True(t, a.Compare(g, m) < 0)
}
