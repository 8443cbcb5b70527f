package model

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
)

// Pattern names understood by PatternBoard
const (
	PatternRandom  = "random"
	PatternGlider  = "glider"
	PatternBlinker = "blinker"
)

// gliderCells is the glider used by the demo board, heading down and to the right
var gliderCells = []Coord{
	{Row: 1, Col: 4},
	{Row: 2, Col: 2},
	{Row: 2, Col: 4},
	{Row: 3, Col: 3},
	{Row: 3, Col: 4},
}

// blinkerCells is a horizontal period-2 oscillator
var blinkerCells = []Coord{
	{Row: 0, Col: 0},
	{Row: 0, Col: 1},
	{Row: 0, Col: 2},
}

// EmptyBoard returns a width x height board of dead cells
func EmptyBoard(width, height int) ([][]Cell, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, errors.Wrap(err, "[EmptyBoard] failed to create grid")
	}
	return g.cells, nil
}

// RandomBoard returns a board where each cell is independently alive with probability p
func RandomBoard(width, height int, p float64, rng *rand.Rand) ([][]Cell, error) {
	if p < 0 || p > 1 {
		return nil, errors.Wrapf(ErrInvalidProbability, "[RandomBoard] p=%v", p)
	}
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, errors.Wrap(err, "[RandomBoard] failed to create grid")
	}
	g.Randomize(rng, p)
	return g.cells, nil
}

// GliderBoard returns a width x height board holding a single glider near the top-left corner
func GliderBoard(width, height int) ([][]Cell, error) {
	return placedBoard(width, height, 0, 0, gliderCells)
}

// BlinkerBoard returns a width x height board with a blinker in the middle
func BlinkerBoard(width, height int) ([][]Cell, error) {
	return placedBoard(width, height, height/2, width/2-1, blinkerCells)
}

// placedBoard returns an empty board with pattern stamped at (originRow, originCol)
func placedBoard(width, height, originRow, originCol int, pattern []Coord) ([][]Cell, error) {
	board, err := EmptyBoard(width, height)
	if err != nil {
		return nil, err
	}
	for _, c := range pattern {
		row, col := originRow+c.Row, originCol+c.Col
		if row < 0 || row >= height || col < 0 || col >= width {
			return nil, errors.Wrapf(ErrInvalidDimensions,
				"[placedBoard] pattern cell (%d,%d) does not fit a %dx%d board", row, col, width, height)
		}
		board[row][col] = Alive
	}
	return board, nil
}

// PatternBoard builds the named starting board. p and rng are only used by PatternRandom.
func PatternBoard(name string, width, height int, p float64, rng *rand.Rand) ([][]Cell, error) {
	switch name {
	case PatternRandom:
		return RandomBoard(width, height, p, rng)
	case PatternGlider:
		return GliderBoard(width, height)
	case PatternBlinker:
		return BlinkerBoard(width, height)
	default:
		return nil, errors.Wrapf(ErrInvalidBoard, "[PatternBoard] unknown pattern %q", name)
	}
}

// ParseBoard reads a board drawn as text, one line per row.
//
// 'x', 'X', 'O', '#' and '1' are alive; ' ', '.', '_' and '0' are dead.
// A single trailing newline is ignored. Every row must have the same width.
func ParseBoard(text string) ([][]Cell, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, errors.Wrap(ErrInvalidDimensions, "[ParseBoard] empty board")
	}

	lines := strings.Split(text, "\n")
	board := make([][]Cell, len(lines))
	for row, line := range lines {
		runes := []rune(line)
		if row > 0 && len(runes) != len(board[0]) {
			return nil, errors.Wrapf(ErrDimensionMismatch,
				"[ParseBoard] row %d has %d columns, expected %d", row, len(runes), len(board[0]))
		}
		board[row] = make([]Cell, len(runes))
		for col, r := range runes {
			switch r {
			case 'x', 'X', 'O', '#', '1':
				board[row][col] = Alive
			case ' ', '.', '_', '0':
				board[row][col] = Dead
			default:
				return nil, errors.Wrapf(ErrInvalidBoard, "[ParseBoard] unexpected %q at row %d col %d", r, row, col)
			}
		}
	}
	if len(board[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "[ParseBoard] empty first row")
	}
	return board, nil
}
