package visualizer

import "strings"

// Canvas is a monochrome dot raster drawn with Unicode Braille characters.
// Each cell is a 2x4 dot grid, giving 2x horizontal and 4x vertical
// resolution. Dot (0, 0) is the top-left corner.
type Canvas struct {
	cols, rows int
	cells      []uint8
}

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// NewCanvas returns a blank canvas of cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if c.cols != cols || c.rows != rows {
		c.cols, c.rows = cols, rows
		c.cells = make([]uint8, cols*rows)
		return
	}
	c.Clear()
}

// Size returns the canvas size in terminal cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return c.cols * 2, c.rows * 4 }

// Clear blanks every dot.
func (c *Canvas) Clear() {
	clear(c.cells)
}

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return
	}
	c.cells[(y/4)*c.cols+x/2] |= 1 << brailleBits[x%2][y%4]
}

// Get reports whether the dot at (x, y) is lit.
func (c *Canvas) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return false
	}
	return c.cells[(y/4)*c.cols+x/2]&(1<<brailleBits[x%2][y%4]) != 0
}

// Count returns the number of lit dots.
func (c *Canvas) Count() int {
	n := 0
	for _, cell := range c.cells {
		for ; cell != 0; cell &= cell - 1 {
			n++
		}
	}
	return n
}

// String renders the canvas, one line per row. Empty cells are blank
// braille characters so every line has the same width.
func (c *Canvas) String() string {
	var out strings.Builder
	out.Grow(c.rows * (c.cols*3 + 1))
	for row := range c.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		for _, cell := range c.cells[row*c.cols : (row+1)*c.cols] {
			out.WriteRune(rune(0x2800 + int(cell)))
		}
	}
	return out.String()
}
