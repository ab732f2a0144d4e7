// Package bram simulates a synchronous block RAM: a fixed-size array of
// fixed-width words with one read port, one write port and one cycle of read
// latency.
//
// Values that hardware cannot know (reading an unknown address, a cell that
// was never initialized, the output register before the first read) are
// modeled as Undefined words. Undefined is a value, not an error: every
// operation that consumes an Undefined operand produces Undefined.
package bram

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Word is a fixed-width bit vector that is either Defined or Undefined.
//
// Words are immutable. Operations return new words and never modify their
// operands, so a Word can be shared between the array, the output register
// and the caller.
type Word struct {
	width int
	bits  *bitset.BitSet // nil means Undefined
}

// NewWord creates a defined word of the given width holding the low width
// bits of v.
func NewWord(width int, v uint64) Word {
	mustBeValidWidth(width)

	bits := bitset.New(uint(width))
	for i := 0; i < width && i < 64; i++ {
		if v>>uint(i)&1 == 1 {
			bits.Set(uint(i))
		}
	}

	return Word{width: width, bits: bits}
}

// Undefined creates an Undefined word of the given width.
func Undefined(width int) Word {
	mustBeValidWidth(width)

	return Word{width: width}
}

// wordFromDigits builds a word from a run of '0'/'1' characters, most
// significant bit first. Digits beyond the low width bits are dropped.
func wordFromDigits(digits string, width int) Word {
	bits := bitset.New(uint(width))

	n := len(digits)
	for i := 0; i < n && i < width; i++ {
		if digits[n-1-i] == '1' {
			bits.Set(uint(i))
		}
	}

	return Word{width: width, bits: bits}
}

func mustBeValidWidth(width int) {
	if width < 0 {
		panic("word width cannot be negative")
	}
}

// Width returns the number of bits of the word.
func (w Word) Width() int {
	return w.width
}

// IsDefined tells whether the word carries a known value.
func (w Word) IsDefined() bool {
	return w.bits != nil
}

// Bit returns bit i (bit 0 is the least significant). The second return
// value is false if the word is Undefined or i is outside the word.
func (w Word) Bit(i int) (set bool, ok bool) {
	if !w.IsDefined() || i < 0 || i >= w.width {
		return false, false
	}

	return w.bits.Test(uint(i)), true
}

// Uint64 returns the value of the word. The second return value is false if
// the word is Undefined or its value does not fit in 64 bits.
func (w Word) Uint64() (uint64, bool) {
	if !w.IsDefined() {
		return 0, false
	}

	var v uint64
	for i, ok := w.bits.NextSet(0); ok; i, ok = w.bits.NextSet(i + 1) {
		if i >= 64 {
			return 0, false
		}

		v |= 1 << i
	}

	return v, true
}

// Resize truncates the word to its low width bits or zero-extends it.
// Resizing an Undefined word gives an Undefined word of the new width.
func (w Word) Resize(width int) Word {
	mustBeValidWidth(width)

	if width == w.width {
		return w
	}

	if !w.IsDefined() {
		return Undefined(width)
	}

	bits := bitset.New(uint(width))
	for i, ok := w.bits.NextSet(0); ok && i < uint(width); i, ok = w.bits.NextSet(i + 1) {
		bits.Set(i)
	}

	return Word{width: width, bits: bits}
}

// Equal reports whether two words are identical, including their width and
// definedness. Two Undefined words of the same width are Equal. Use Eq for
// the hardware comparison.
func (w Word) Equal(o Word) bool {
	if w.width != o.width || w.IsDefined() != o.IsDefined() {
		return false
	}

	if !w.IsDefined() {
		return true
	}

	return w.bits.Equal(o.bits)
}

// Eq compares the values of two words the way a hardware comparator does. It
// returns a 1-bit word, or a 1-bit Undefined word if any operand is
// Undefined. The narrower operand is zero-extended.
func (w Word) Eq(o Word) Word {
	if !w.IsDefined() || !o.IsDefined() {
		return Undefined(1)
	}

	width := max(w.width, o.width)
	if w.Resize(width).bits.Equal(o.Resize(width).bits) {
		return NewWord(1, 1)
	}

	return NewWord(1, 0)
}

// Add returns w + o modulo 2^w.Width(). The result has the width of w.
func (w Word) Add(o Word) Word {
	if !w.IsDefined() || !o.IsDefined() {
		return Undefined(w.width)
	}

	o = o.Resize(w.width)
	sum := bitset.New(uint(w.width))
	carry := false

	for i := uint(0); i < uint(w.width); i++ {
		a, b := w.bits.Test(i), o.bits.Test(i)
		if a != b != carry {
			sum.Set(i)
		}

		carry = (a && b) || (carry && a != b)
	}

	return Word{width: w.width, bits: sum}
}

// And returns the bitwise and of w and o, with the width of w.
func (w Word) And(o Word) Word {
	if !w.IsDefined() || !o.IsDefined() {
		return Undefined(w.width)
	}

	return Word{width: w.width, bits: w.bits.Intersection(o.Resize(w.width).bits)}
}

// Or returns the bitwise or of w and o, with the width of w.
func (w Word) Or(o Word) Word {
	if !w.IsDefined() || !o.IsDefined() {
		return Undefined(w.width)
	}

	return Word{width: w.width, bits: w.bits.Union(o.Resize(w.width).bits)}
}

// Not returns the bitwise complement of w.
func (w Word) Not() Word {
	if !w.IsDefined() {
		return w
	}

	return Word{width: w.width, bits: w.bits.Complement()}
}

// String prints the word in binary, most significant bit first. Undefined
// bits are printed as X.
func (w Word) String() string {
	if !w.IsDefined() {
		return strings.Repeat("X", max(w.width, 1))
	}

	var sb strings.Builder
	sb.Grow(w.width)

	for i := w.width - 1; i >= 0; i-- {
		if w.bits.Test(uint(i)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}
