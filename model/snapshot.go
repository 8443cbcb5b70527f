package model

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is a read-only copy of one generation. The zero value is an empty 0x0 board.
type Snapshot struct {
	width      int
	height     int
	generation int

	cells [][]Cell
}

// Width returns the number of columns
func (s Snapshot) Width() int {
	return s.width
}

// Height returns the number of rows
func (s Snapshot) Height() int {
	return s.height
}

// Generation returns how many advances preceded this snapshot
func (s Snapshot) Generation() int {
	return s.generation
}

// Get returns the cell at (row, col); positions off the grid read as Dead
func (s Snapshot) Get(row, col int) Cell {
	if row < 0 || row >= len(s.cells) || col < 0 || col >= len(s.cells[row]) {
		return Dead
	}
	return s.cells[row][col]
}

// Alive reports whether the cell at (row, col) is alive
func (s Snapshot) Alive(row, col int) bool {
	return s.Get(row, col).IsAlive()
}

// Cells returns a fresh copy of the cell rows
func (s Snapshot) Cells() [][]Cell {
	out := make([][]Cell, len(s.cells))
	for row := range s.cells {
		out[row] = append([]Cell(nil), s.cells[row]...)
	}
	return out
}

// LiveCells returns the coordinates of every living cell in row-major order
func (s Snapshot) LiveCells() []Coord {
	var live []Coord
	for row := range s.cells {
		for col, c := range s.cells[row] {
			if c.IsAlive() {
				live = append(live, Coord{Row: row, Col: col})
			}
		}
	}
	return live
}

// Population returns the number of living cells
func (s Snapshot) Population() (count int) {
	for row := range s.cells {
		for _, c := range s.cells[row] {
			if c.IsAlive() {
				count++
			}
		}
	}
	return
}

// Equal reports whether two snapshots hold the same dimensions and cells.
// The generation number is ignored.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.width != other.width || s.height != other.height {
		return false
	}
	for row := range s.cells {
		for col, c := range s.cells[row] {
			if other.Get(row, col) != c {
				return false
			}
		}
	}
	return true
}

// Hash returns a digest of the dimensions and cell states, suitable for cycle detection
func (s Snapshot) Hash() uint64 {
	h := xxhash.New()

	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(s.width))
	binary.LittleEndian.PutUint64(dims[8:], uint64(s.height))
	_, _ = h.Write(dims[:])

	buf := make([]byte, s.width)
	for row := range s.cells {
		for col, c := range s.cells[row] {
			buf[col] = byte(c)
		}
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// String renders the generation with one line per row, without a trailing newline
func (s Snapshot) String() string {
	var b strings.Builder
	b.Grow(s.height * (s.width + 1))
	for row := range s.cells {
		if row > 0 {
			b.WriteByte('\n')
		}
		for _, c := range s.cells[row] {
			b.WriteByte(c.glyph())
		}
	}
	return b.String()
}
