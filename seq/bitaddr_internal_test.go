package seq

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestAddr(t *testing.T) {
	for _, b := range []uint{2, 4, 8} {
		perWord := wordBitsInt / int(b)
		for i := 1; i <= 5*perWord; i++ {
			w, o := addr(i, b)
			expect.EQ(t, w, (i-1)/perWord)
			expect.EQ(t, o, uint((i-1)%perWord)*b)
			expect.EQ(t, roomInWord(i, b), perWord-(i-1)%perWord)
		}
		expect.EQ(t, wordsFor(0, b), 0)
		expect.EQ(t, wordsFor(1, b), 1)
		expect.EQ(t, wordsFor(perWord, b), 1)
		expect.EQ(t, wordsFor(perWord+1, b), 2)
	}
}

func getBit(ws []uintptr, i int) uintptr {
	return (ws[i/wordBitsInt] >> uint(i%wordBitsInt)) & 1
}

func setBit(ws []uintptr, i int, v uintptr) {
	m := uintptr(1) << uint(i%wordBitsInt)
	ws[i/wordBitsInt] = ws[i/wordBitsInt]&^m | v<<uint(i%wordBitsInt)
}

// copyBitsSlow is a bit-at-a-time memmove.
func copyBitsSlow(dst []uintptr, dOff int, src []uintptr, sOff, n int) {
	tmp := make([]uintptr, n)
	for i := 0; i < n; i++ {
		tmp[i] = getBit(src, sOff+i)
	}
	for i := 0; i < n; i++ {
		setBit(dst, dOff+i, tmp[i])
	}
}

func randWords(r *rand.Rand, n int) []uintptr {
	ws := make([]uintptr, n)
	for i := range ws {
		ws[i] = uintptr(r.Uint64())
	}
	return ws
}

func TestCopyBitsOverlapping(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	const nWord = 12
	nBit := nWord * wordBitsInt
	for iter := 0; iter < 2000; iter++ {
		want := randWords(r, nWord)
		got := append([]uintptr(nil), want...)
		sOff := r.Intn(nBit)
		dOff := r.Intn(nBit)
		if iter%3 == 0 {
			// Force a shared phase to exercise the whole-word path.
			dOff = dOff - dOff%wordBitsInt + sOff%wordBitsInt
		}
		maxN := nBit - sOff
		if nBit-dOff < maxN {
			maxN = nBit - dOff
		}
		n := r.Intn(maxN + 1)
		copyBitsSlow(want, dOff, want, sOff, n)
		copyBits(got, dOff, got, sOff, n, dOff > sOff)
		expect.EQ(t, got, want, "sOff=%d dOff=%d n=%d", sOff, dOff, n)
	}
}

func TestCopyBitsDisjoint(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	const nWord = 8
	nBit := nWord * wordBitsInt
	for iter := 0; iter < 1000; iter++ {
		src := randWords(r, nWord)
		want := randWords(r, nWord)
		got := append([]uintptr(nil), want...)
		sOff := r.Intn(nBit)
		dOff := r.Intn(nBit)
		if iter%2 == 0 {
			dOff = dOff - dOff%wordBitsInt + sOff%wordBitsInt
		}
		maxN := nBit - sOff
		if nBit-dOff < maxN {
			maxN = nBit - dOff
		}
		n := r.Intn(maxN + 1)
		copyBitsSlow(want, dOff, src, sOff, n)
		copyBits(got, dOff, src, sOff, n, false)
		expect.EQ(t, got, want, "sOff=%d dOff=%d n=%d", sOff, dOff, n)
	}
}

func TestFillBits(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for iter := 0; iter < 200; iter++ {
		ws := randWords(r, 4)
		want := append([]uintptr(nil), ws...)
		off := r.Intn(4 * wordBitsInt)
		n := r.Intn(4*wordBitsInt - off + 1)
		for i := 0; i < n; i++ {
			setBit(want, off+i, 0)
		}
		fillBits(ws, off, n)
		expect.EQ(t, ws, want)
	}
}
