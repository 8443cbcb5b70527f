package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Grid is a fixed-size board of cells addressed by (row, col). It does not wrap.
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

// NewGrid creates a grid of dead cells with the specified dimensions
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] width=%d height=%d", width, height)
	}
	return newGrid(width, height), nil
}

func newGrid(width, height int) *Grid {
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// GridFromBoard copies board into a new grid after checking it is exactly width x height
func GridFromBoard(width, height int, board [][]Cell) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[GridFromBoard] width=%d height=%d", width, height)
	}
	if len(board) != height {
		return nil, errors.Wrapf(ErrDimensionMismatch, "[GridFromBoard] got %d rows, expected %d", len(board), height)
	}
	for row, cols := range board {
		if len(cols) != width {
			return nil, errors.Wrapf(ErrDimensionMismatch,
				"[GridFromBoard] row %d has %d columns, expected %d", row, len(cols), width)
		}
	}

	g := newGrid(width, height)
	for row := range board {
		for col, c := range board[row] {
			// anything other than Alive is stored as Dead so every cell holds one of the two states
			g.cells[row][col] = cellOf(c == Alive)
		}
	}
	return g, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// InBounds reports whether (row, col) lies on the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Get returns the state of a cell; positions off the grid read as Dead
func (g *Grid) Get(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Dead
	}
	return g.cells[row][col]
}

// CountNeighbors counts the living cells among the in-bounds neighbors of (row, col)
func (g *Grid) CountNeighbors(row, col int) int {
	count := 0

	// Clamp the 3x3 window to the grid instead of probing off-grid positions
	minRow := max(0, row-1)
	maxRow := min(g.height-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.width-1, col+1)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if r == row && c == col {
				continue
			}
			if g.cells[r][c].IsAlive() {
				count++
			}
		}
	}

	return count
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for row := range g.height {
		for col := range g.width {
			if g.cells[row][col].IsAlive() {
				count++
			}
		}
	}
	return
}

// Randomize sets every cell independently alive with probability p
func (g *Grid) Randomize(rng *rand.Rand, p float64) {
	for row := range g.height {
		for col := range g.width {
			g.cells[row][col] = cellOf(rng.Float64() < p)
		}
	}
}

// copyCells returns a deep copy of the cell rows
func (g *Grid) copyCells() [][]Cell {
	out := make([][]Cell, g.height)
	for row := range g.cells {
		out[row] = make([]Cell, g.width)
		copy(out[row], g.cells[row])
	}
	return out
}
