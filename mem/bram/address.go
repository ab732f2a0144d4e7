package bram

import "strconv"

// Address selects a cell of the memory. An Undefined address means the
// hardware does not know which cell is selected.
type Address struct {
	value   uint64
	defined bool
}

// Addr creates a defined address.
func Addr(v uint64) Address {
	return Address{value: v, defined: true}
}

// AddrFromInt creates an address from a signed integer. Negative values
// cannot select a cell and give an Undefined address.
func AddrFromInt(v int) Address {
	if v < 0 {
		return UndefinedAddr()
	}

	return Addr(uint64(v))
}

// UndefinedAddr creates an Undefined address.
func UndefinedAddr() Address {
	return Address{}
}

// AddrFromWord uses the value of a word as an address. An Undefined word, or
// a word whose value does not fit in 64 bits, gives an Undefined address.
func AddrFromWord(w Word) Address {
	v, ok := w.Uint64()
	if !ok {
		return UndefinedAddr()
	}

	return Addr(v)
}

// IsDefined tells whether the address is known.
func (a Address) IsDefined() bool {
	return a.defined
}

// Value returns the address. The second return value is false if the
// address is Undefined.
func (a Address) Value() (uint64, bool) {
	return a.value, a.defined
}

// resolve returns the index of the cell selected in a memory of the given
// depth. It fails for Undefined and out-of-range addresses.
func (a Address) resolve(depth int) (int, bool) {
	if !a.defined || a.value >= uint64(depth) {
		return 0, false
	}

	return int(a.value), true
}

// String prints the address in decimal, or X if it is Undefined.
func (a Address) String() string {
	if !a.defined {
		return "X"
	}

	return strconv.FormatUint(a.value, 10)
}
