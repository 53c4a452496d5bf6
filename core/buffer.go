package core

import "github.com/pkg/errors"

// Buffer is a fixed-size 2D grid addressed through a rotating origin
// Logical (x, y) lives at physical ((x+colPtr) mod width, (y+rowPtr) mod height),
// so shifting the view touches only the rows or columns it reveals
type Buffer[P any] struct {
	width  int
	height int
	colPtr int // Always in [0, width)
	rowPtr int // Always in [0, height)
	cells  []P // Physical storage, row-major
}

// NewBuffer allocates a width x height buffer with every cell set to fill
// Non-positive dimensions are clamped to 1
func NewBuffer[P any](width, height int, fill P) *Buffer[P] {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	b := &Buffer[P]{
		width:  width,
		height: height,
		cells:  make([]P, width*height),
	}
	b.Fill(fill)
	return b
}

// Width returns the buffer width
func (b *Buffer[P]) Width() int {
	return b.width
}

// Height returns the buffer height
func (b *Buffer[P]) Height() int {
	return b.height
}

// Origin returns the current physical offsets of logical (0, 0)
func (b *Buffer[P]) Origin() (col, row int) {
	return b.colPtr, b.rowPtr
}

// InBounds returns true if (x, y) is a valid logical coordinate
func (b *Buffer[P]) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer[P]) index(x, y int) int {
	return ((y+b.rowPtr)%b.height)*b.width + (x+b.colPtr)%b.width
}

// Get returns the cell at logical (x, y)
func (b *Buffer[P]) Get(x, y int) (P, error) {
	if !b.InBounds(x, y) {
		var zero P
		return zero, errors.Wrapf(ErrOutOfBounds, "get (%d,%d) in %dx%d buffer", x, y, b.width, b.height)
	}
	return b.cells[b.index(x, y)], nil
}

// Put writes v at logical (x, y)
func (b *Buffer[P]) Put(v P, x, y int) error {
	if !b.InBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "put (%d,%d) in %dx%d buffer", x, y, b.width, b.height)
	}
	b.cells[b.index(x, y)] = v
	return nil
}

// Fill sets every cell to v, origin is left untouched
func (b *Buffer[P]) Fill(v P) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = v
	// Exponential copy
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Shift moves the content by times cells in dir and fills the revealed side
// Left/Up move content toward the origin, Right/Down away from it
// times is clamped to the dimension, a full-extent shift refills everything and
// leaves the origin where it started
func (b *Buffer[P]) Shift(dir Direction, times int, fill P) {
	if times <= 0 {
		return
	}

	switch dir {
	case Left:
		times = min(times, b.width)
		b.colPtr = wrap(b.colPtr+times, b.width)
		for x := b.width - times; x < b.width; x++ {
			b.fillColumn(x, fill)
		}
	case Right:
		times = min(times, b.width)
		b.colPtr = wrap(b.colPtr-times, b.width)
		for x := 0; x < times; x++ {
			b.fillColumn(x, fill)
		}
	case Up:
		times = min(times, b.height)
		b.rowPtr = wrap(b.rowPtr+times, b.height)
		for y := b.height - times; y < b.height; y++ {
			b.fillRow(y, fill)
		}
	case Down:
		times = min(times, b.height)
		b.rowPtr = wrap(b.rowPtr-times, b.height)
		for y := 0; y < times; y++ {
			b.fillRow(y, fill)
		}
	}
}

// Range calls fn for every cell in logical row-major order
func (b *Buffer[P]) Range(fn func(x, y int, v P)) {
	for y := 0; y < b.height; y++ {
		row := ((y + b.rowPtr) % b.height) * b.width
		for x := 0; x < b.width; x++ {
			fn(x, y, b.cells[row+(x+b.colPtr)%b.width])
		}
	}
}

func (b *Buffer[P]) fillColumn(x int, v P) {
	px := (x + b.colPtr) % b.width
	for py := 0; py < b.height; py++ {
		b.cells[py*b.width+px] = v
	}
}

func (b *Buffer[P]) fillRow(y int, v P) {
	start := ((y + b.rowPtr) % b.height) * b.width
	row := b.cells[start : start+b.width]
	for i := range row {
		row[i] = v
	}
}

// wrap returns v mod n in [0, n)
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
