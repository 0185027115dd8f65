// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package alphabet

// Nucleotide residue bits.  4-bit nucleotide codes are the OR of the
// residues they admit, so the code value doubles as its residue set.
const (
	bitA = 1
	bitC = 2
	bitG = 4
	bitT = 8
)

var nuc4Sets = func() []uint32 {
	s := make([]uint32, 16)
	for i := range s {
		s[i] = uint32(i)
	}
	return s
}()

// nuc4Comp reverses the four residue bits: A<->T, C<->G.
var nuc4Comp = func() []Code {
	c := make([]Code, 16)
	for i := range c {
		var r Code
		for b := uint(0); b < 4; b++ {
			if i&(1<<b) != 0 {
				r |= 1 << (3 - b)
			}
		}
		c[i] = r
	}
	return c
}()

var (
	// DNA2 is the unambiguous 2-bit nucleotide alphabet A=0 C=1 G=2 T=3.
	DNA2 Alphabet = newTable("DNA2", 2, "ACGT",
		[]uint32{bitA, bitC, bitG, bitT},
		[]Code{3, 2, 1, 0}, nil)

	// DNA4 is the 4-bit IUPAC nucleotide alphabet.  Code 0 is the gap '-';
	// every other code is the set of bases it admits (A=1 C=2 G=4 T=8), so
	// N=15 is compatible with every base.
	DNA4 Alphabet = newTable("DNA4", 4, "-ACMGRSVTWYHKDBN",
		nuc4Sets, nuc4Comp, nil)

	// RNA4 is DNA4 with U in place of T.  'T' is accepted on input.
	RNA4 Alphabet = newTable("RNA4", 4, "-ACMGRSVUWYHKDBN",
		nuc4Sets, nuc4Comp, map[byte]byte{'T': 'U', 't': 'U'})

	// AminoAcid is the 8-bit amino acid alphabet: the 20 standard residues,
	// pyrrolysine (O), selenocysteine (U), the ambiguity codes B (D/N),
	// J (I/L), Z (E/Q) and X (any), stop '*' and gap '-'.  It has no
	// complement.
	AminoAcid Alphabet = newTable("AA", 8, "ARNDCQEGHILKMFPSTWYVOUBJZX*-",
		aaSets(), nil, nil)
)

func aaSets() []uint32 {
	const letters = "ARNDCQEGHILKMFPSTWYVOUBJZX*-"
	s := make([]uint32, len(letters))
	for i := 0; i < 22; i++ {
		s[i] = 1 << uint(i)
	}
	idx := func(b byte) uint {
		for i := 0; i < len(letters); i++ {
			if letters[i] == b {
				return uint(i)
			}
		}
		panic("aaSets: missing letter")
	}
	s[idx('B')] = 1<<idx('D') | 1<<idx('N')
	s[idx('J')] = 1<<idx('I') | 1<<idx('L')
	s[idx('Z')] = 1<<idx('E') | 1<<idx('Q')
	s[idx('X')] = 1<<22 - 1
	s[idx('*')] = 1 << 22
	s[idx('-')] = 1 << 23
	return s
}
