package model

// Cell is the state of a single grid position
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

const (
	deadGlyph  = ' '
	aliveGlyph = 'x'
)

// IsAlive reports whether the cell is alive
func (c Cell) IsAlive() bool {
	return c == Alive
}

// String returns the renderer glyph for the cell
func (c Cell) String() string {
	return string(c.glyph())
}

func (c Cell) glyph() byte {
	if c == Alive {
		return aliveGlyph
	}
	return deadGlyph
}

// cellOf converts a rule outcome into a Cell
func cellOf(alive bool) Cell {
	if alive {
		return Alive
	}
	return Dead
}

// Coord addresses a grid position by row and column
type Coord struct {
	Row int
	Col int
}
