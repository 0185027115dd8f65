// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seq

import (
	"github.com/grailbio/base/simd"
)

// BitsPerWord is the number of bits per storage word.
const BitsPerWord = simd.BitsPerWord

const (
	wordBits    = uint(BitsPerWord)
	wordBitsInt = int(BitsPerWord)
)

// Nothing in this file performs bounds checks.  Callers validate positions
// at the exported entry points before calling in.

// addr returns the word index and intra-word bit offset of 1-based position
// i for b-bit symbols.
func addr(i int, b uint) (int, uint) {
	bit := (i - 1) * int(b)
	return bit / wordBitsInt, uint(bit % wordBitsInt)
}

// roomInWord returns the number of symbols, starting with position i, that
// fit in the remainder of i's word.
func roomInWord(i int, b uint) int {
	_, o := addr(i, b)
	return int((wordBits - o) / b)
}

// wordsFor returns the number of words needed for n b-bit symbols.
func wordsFor(n int, b uint) int {
	return (n*int(b) + wordBitsInt - 1) / wordBitsInt
}

// lowMask returns a word with the low k bits set, 0 <= k <= wordBits.
func lowMask(k uint) uintptr {
	if k >= wordBits {
		return ^uintptr(0)
	}
	return uintptr(1)<<k - 1
}

// readBits returns the k bits (k <= wordBits) of ws starting at bit off.  The
// run may straddle two words.
func readBits(ws []uintptr, off int, k uint) uintptr {
	w, o := off/wordBitsInt, uint(off%wordBitsInt)
	v := ws[w] >> o
	if o+k > wordBits {
		v |= ws[w+1] << (wordBits - o)
	}
	return v & lowMask(k)
}

// writeBits stores the low k bits of v at bit off.  [off, off+k) must lie
// within a single word.
func writeBits(ws []uintptr, off int, k uint, v uintptr) {
	w, o := off/wordBitsInt, uint(off%wordBitsInt)
	m := lowMask(k) << o
	ws[w] = (ws[w] &^ m) | ((v << o) & m)
}

// fillBits zeroes n bits starting at bit off.
func fillBits(ws []uintptr, off, n int) {
	for n > 0 {
		k := wordBitsInt - off%wordBitsInt
		if k > n {
			k = n
		}
		writeBits(ws, off, uint(k), 0)
		off += k
		n -= k
	}
}

// copyBits copies n bits of src starting at bit sOff to dst starting at bit
// dOff.  When dst and src are the same storage and the destination lies to
// the right of the source, backward must be true so that the copy runs from
// the high end and never overwrites unread source bits.
func copyBits(dst []uintptr, dOff int, src []uintptr, sOff, n int, backward bool) {
	if n <= 0 {
		return
	}
	if dOff%wordBitsInt == sOff%wordBitsInt && n >= 2*wordBitsInt {
		copyBitsAligned(dst, dOff, src, sOff, n)
		return
	}
	if backward {
		dEnd, sEnd := dOff+n, sOff+n
		for n > 0 {
			k := dEnd % wordBitsInt
			if k == 0 {
				k = wordBitsInt
			}
			if k > n {
				k = n
			}
			dEnd -= k
			sEnd -= k
			n -= k
			writeBits(dst, dEnd, uint(k), readBits(src, sEnd, uint(k)))
		}
		return
	}
	for n > 0 {
		k := wordBitsInt - dOff%wordBitsInt
		if k > n {
			k = n
		}
		writeBits(dst, dOff, uint(k), readBits(src, sOff, uint(k)))
		dOff += k
		sOff += k
		n -= k
	}
}

// copyBitsAligned handles copies where source and destination share the
// same intra-word phase: a partial head word, a run of whole words moved with
// copy (which is overlap-safe), and a partial tail word.  Head and tail are
// read before anything is written.  Requires n >= 2*wordBits so the whole
// word run is nonempty.
func copyBitsAligned(dst []uintptr, dOff int, src []uintptr, sOff, n int) {
	head := 0
	if ph := dOff % wordBitsInt; ph != 0 {
		head = wordBitsInt - ph
	}
	body := (n - head) / wordBitsInt
	tail := n - head - body*wordBitsInt

	var hv, tv uintptr
	if head > 0 {
		hv = readBits(src, sOff, uint(head))
	}
	if tail > 0 {
		tv = readBits(src, sOff+head+body*wordBitsInt, uint(tail))
	}
	dw := (dOff + head) / wordBitsInt
	sw := (sOff + head) / wordBitsInt
	copy(dst[dw:dw+body], src[sw:sw+body])
	if head > 0 {
		writeBits(dst, dOff, uint(head), hv)
	}
	if tail > 0 {
		writeBits(dst, dOff+head+body*wordBitsInt, uint(tail), tv)
	}
}
