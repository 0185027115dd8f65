// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package alphabet defines the symbol sets that packed sequences are built
// from.  An Alphabet fixes the number of bits per symbol and provides the
// encode/decode, complement, compatibility and ordering rules consumed by
// packages seq and search.
package alphabet

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Code is an encoded symbol.  Only the low BitsPerSymbol() bits are
// meaningful.
type Code uint8

// Alphabet is the capability set required by packed sequences and queries.
type Alphabet interface {
	// Name returns a short human-readable name, e.g. "DNA4".
	Name() string
	// BitsPerSymbol returns the packed width of one symbol: 2, 4 or 8.
	BitsPerSymbol() uint
	// NumCodes returns the number of valid codes.  Valid codes are
	// [0, NumCodes()).
	NumCodes() int
	// Encode maps an ASCII symbol (case-insensitive) to its code.
	Encode(b byte) (Code, error)
	// Decode maps a code back to its canonical uppercase ASCII symbol.
	Decode(c Code) byte
	// HasComplement reports whether Complement is meaningful.
	HasComplement() bool
	// Complement returns the complementary code.  It is the identity for
	// alphabets without a complement.
	Complement(c Code) Code
	// IsCompatible reports whether two codes can denote the same concrete
	// symbol, taking ambiguity codes into account.
	IsCompatible(a, b Code) bool
	// Compare is the total order over decoded symbols (byte order of the
	// letters Decode returns): negative if a sorts before b, zero if equal,
	// positive otherwise.
	Compare(a, b Code) int
	// IsConcrete reports whether c denotes exactly one residue.
	IsConcrete(c Code) bool
}

// table is a lookup-table Alphabet.  Each code carries a set of concrete
// residues; compatibility is set intersection, and order is the order of
// the decoded letters.
type table struct {
	name    string
	bits    uint
	letters string
	sets    []uint32
	comp    []Code
	enc     [256]int16
}

func newTable(name string, bits uint, letters string, sets []uint32, comp []Code, aliases map[byte]byte) *table {
	if len(letters) != len(sets) || (comp != nil && len(comp) != len(sets)) {
		panic(fmt.Sprintf("alphabet %s: inconsistent tables", name))
	}
	t := &table{name: name, bits: bits, letters: letters, sets: sets, comp: comp}
	for i := range t.enc {
		t.enc[i] = -1
	}
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		t.enc[c] = int16(i)
		if c >= 'A' && c <= 'Z' {
			t.enc[c+'a'-'A'] = int16(i)
		}
	}
	for from, to := range aliases {
		t.enc[from] = t.enc[to]
	}
	return t
}

func (t *table) Name() string        { return t.name }
func (t *table) BitsPerSymbol() uint { return t.bits }
func (t *table) NumCodes() int       { return len(t.letters) }
func (t *table) HasComplement() bool { return t.comp != nil }

func (t *table) Encode(b byte) (Code, error) {
	v := t.enc[b]
	if v < 0 {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("%s: invalid symbol %q", t.name, b))
	}
	return Code(v), nil
}

func (t *table) Decode(c Code) byte {
	if int(c) >= len(t.letters) {
		return '?'
	}
	return t.letters[c]
}

func (t *table) Complement(c Code) Code {
	if t.comp == nil {
		return c
	}
	return t.comp[c]
}

func (t *table) IsCompatible(a, b Code) bool {
	if a == b {
		return true
	}
	return t.sets[a]&t.sets[b] != 0
}

func (t *table) Compare(a, b Code) int {
	return int(t.Decode(a)) - int(t.Decode(b))
}

func (t *table) IsConcrete(c Code) bool {
	s := t.sets[c]
	return s != 0 && s&(s-1) == 0
}

func (t *table) String() string { return t.name }

// EncodeString encodes every byte of s.
func EncodeString(a Alphabet, s string) ([]Code, error) {
	codes := make([]Code, len(s))
	for i := 0; i < len(s); i++ {
		c, err := a.Encode(s[i])
		if err != nil {
			return nil, errors.E(err, fmt.Sprintf("position %d", i+1))
		}
		codes[i] = c
	}
	return codes, nil
}

// DecodeString is the inverse of EncodeString.
func DecodeString(a Alphabet, codes []Code) string {
	buf := make([]byte, len(codes))
	for i, c := range codes {
		buf[i] = a.Decode(c)
	}
	return string(buf)
}

// ByName returns the predefined alphabet with the given name
// (case-sensitive: "DNA2", "DNA4", "RNA4", "AA").
func ByName(name string) (Alphabet, error) {
	switch name {
	case DNA2.Name():
		return DNA2, nil
	case DNA4.Name():
		return DNA4, nil
	case RNA4.Name():
		return RNA4, nil
	case AminoAcid.Name():
		return AminoAcid, nil
	}
	return nil, errors.E(errors.Invalid, fmt.Sprintf("unknown alphabet %q", name))
}
