package bram

// Array is the storage of a memory: exactly Depth() words of Width() bits.
// It is never resized after creation.
type Array struct {
	width int
	cells []Word
}

// NewArray creates an array that holds a copy of init. Words are resized to
// width.
func NewArray(width int, init []Word) *Array {
	mustBeValidWidth(width)

	a := &Array{
		width: width,
		cells: make([]Word, len(init)),
	}

	for i, w := range init {
		a.cells[i] = w.Resize(width)
	}

	return a
}

// NewUndefinedArray creates an array of depth cells that are all Undefined.
func NewUndefinedArray(width, depth int) *Array {
	mustBeValidWidth(width)

	a := &Array{
		width: width,
		cells: make([]Word, depth),
	}

	for i := range a.cells {
		a.cells[i] = Undefined(width)
	}

	return a
}

// Depth returns the number of cells.
func (a *Array) Depth() int {
	return len(a.cells)
}

// Width returns the width of each cell.
func (a *Array) Width() int {
	return a.width
}

// Read returns the word stored at addr. Undefined and out-of-range addresses
// read as an Undefined word; the cells are not touched.
func (a *Array) Read(addr Address) Word {
	i, ok := addr.resolve(len(a.cells))
	if !ok {
		return Undefined(a.width)
	}

	return a.cells[i]
}

// Write stores data at addr and reports whether a cell was written. Writes to
// Undefined or out-of-range addresses are dropped.
func (a *Array) Write(addr Address, data Word) bool {
	i, ok := addr.resolve(len(a.cells))
	if !ok {
		return false
	}

	a.cells[i] = data.Resize(a.width)

	return true
}

// Snapshot returns a copy of all the cells.
func (a *Array) Snapshot() []Word {
	cells := make([]Word, len(a.cells))
	copy(cells, a.cells)

	return cells
}
