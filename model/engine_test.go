package model

import (
	"testing"

	"github.com/pkg/errors"
)

// boardWith returns a width x height board with the given cells alive
func boardWith(t *testing.T, width, height int, live ...Coord) [][]Cell {
	t.Helper()
	board, err := EmptyBoard(width, height)
	if err != nil {
		t.Fatalf("empty board: %v", err)
	}
	for _, c := range live {
		board[c.Row][c.Col] = Alive
	}
	return board
}

func newTestEngine(t *testing.T, board [][]Cell, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(len(board[0]), len(board), board, opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func assertLiveCells(t *testing.T, snap Snapshot, want ...Coord) {
	t.Helper()
	expects := make(map[Coord]bool, len(want))
	for _, c := range want {
		expects[c] = true
	}
	for row := 0; row < snap.Height(); row++ {
		for col := 0; col < snap.Width(); col++ {
			alive := snap.Alive(row, col)
			if alive != expects[Coord{Row: row, Col: col}] {
				t.Fatalf("generation %d cell (%d,%d) alive=%v, expected %v\n%s",
					snap.Generation(), row, col, alive, !alive, snap)
			}
		}
	}
}

func TestAllDeadStaysDead(t *testing.T) {
	for _, size := range []Coord{{Row: 1, Col: 1}, {Row: 3, Col: 7}, {Row: 20, Col: 20}} {
		e := newTestEngine(t, boardWith(t, size.Col, size.Row))
		for i := 0; i < 3; i++ {
			e.Advance()
			if pop := e.Snapshot().Population(); pop != 0 {
				t.Fatalf("%dx%d grid: generation %d has %d living cells, expected 0", size.Col, size.Row, i+1, pop)
			}
		}
	}
}

func TestBlockInDeadField(t *testing.T) {
	var block []Coord
	for row := 2; row <= 4; row++ {
		for col := 2; col <= 4; col++ {
			block = append(block, Coord{Row: row, Col: col})
		}
	}
	e := newTestEngine(t, boardWith(t, 7, 7, block...))

	e.Advance()

	// corners keep 3 neighbors, edges and center are overcrowded,
	// and the cell beyond each edge midpoint sees exactly 3
	assertLiveCells(t, e.Snapshot(),
		Coord{Row: 2, Col: 2}, Coord{Row: 2, Col: 4},
		Coord{Row: 4, Col: 2}, Coord{Row: 4, Col: 4},
		Coord{Row: 1, Col: 3}, Coord{Row: 3, Col: 1},
		Coord{Row: 3, Col: 5}, Coord{Row: 5, Col: 3},
	)
}

func TestGliderTranslates(t *testing.T) {
	board, err := GliderBoard(20, 20)
	if err != nil {
		t.Fatalf("glider board: %v", err)
	}
	e := newTestEngine(t, board)

	start := e.Snapshot().LiveCells()
	for period := 1; period <= 3; period++ {
		for i := 0; i < 4; i++ {
			e.Advance()
		}

		want := make([]Coord, len(start))
		for i, c := range start {
			want[i] = Coord{Row: c.Row + period, Col: c.Col + period}
		}
		assertLiveCells(t, e.Snapshot(), want...)
	}
}

func TestIsolatedCellDies(t *testing.T) {
	e := newTestEngine(t, boardWith(t, 5, 5, Coord{Row: 2, Col: 2}))
	e.Advance()
	assertLiveCells(t, e.Snapshot())
}

// neighborOffsets lists the 8 neighbors of the center of a 3x3 board
var neighborOffsets = []Coord{
	{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2},
	{Row: 1, Col: 0}, {Row: 1, Col: 2},
	{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2},
}

func TestCenterCellByNeighborCount(t *testing.T) {
	center := Coord{Row: 1, Col: 1}
	for neighbors := 0; neighbors <= 8; neighbors++ {
		for _, alive := range []bool{false, true} {
			live := append([]Coord(nil), neighborOffsets[:neighbors]...)
			if alive {
				live = append(live, center)
			}
			e := newTestEngine(t, boardWith(t, 3, 3, live...))

			e.Advance()

			want := neighbors == 3 || (alive && neighbors == 2)
			if got := e.Snapshot().Alive(center.Row, center.Col); got != want {
				t.Fatalf("center alive=%v with %d neighbors: next alive=%v, expected %v", alive, neighbors, got, want)
			}
		}
	}
}

func TestBlinkerOscillates(t *testing.T) {
	board, err := BlinkerBoard(5, 5)
	if err != nil {
		t.Fatalf("blinker board: %v", err)
	}
	e := newTestEngine(t, board)

	e.Advance()
	assertLiveCells(t, e.Snapshot(), Coord{Row: 1, Col: 2}, Coord{Row: 2, Col: 2}, Coord{Row: 3, Col: 2})

	e.Advance()
	assertLiveCells(t, e.Snapshot(), Coord{Row: 2, Col: 1}, Coord{Row: 2, Col: 2}, Coord{Row: 2, Col: 3})
}

func TestCornerDoesNotWrap(t *testing.T) {
	// every other live cell touches (0,0) only on a torus
	e := newTestEngine(t, boardWith(t, 4, 4,
		Coord{Row: 0, Col: 0},
		Coord{Row: 0, Col: 3},
		Coord{Row: 3, Col: 0},
		Coord{Row: 3, Col: 3},
	))
	if n := e.current.CountNeighbors(0, 0); n != 0 {
		t.Fatalf("corner neighbors = %d, expected 0", n)
	}

	e.Advance()
	assertLiveCells(t, e.Snapshot())
}

func TestCornerCountsOnlyInBoundsNeighbors(t *testing.T) {
	board := boardWith(t, 3, 3)
	for row := range board {
		for col := range board[row] {
			board[row][col] = Alive
		}
	}
	e := newTestEngine(t, board)

	for _, tc := range []struct {
		row, col, want int
	}{
		{0, 0, 3}, {0, 2, 3}, {2, 0, 3}, {2, 2, 3},
		{0, 1, 5}, {1, 0, 5},
		{1, 1, 8},
	} {
		if got := e.current.CountNeighbors(tc.row, tc.col); got != tc.want {
			t.Fatalf("neighbors of (%d,%d) = %d, expected %d", tc.row, tc.col, got, tc.want)
		}
	}

	// corners survive with 3, everything else is overcrowded
	e.Advance()
	assertLiveCells(t, e.Snapshot(),
		Coord{Row: 0, Col: 0}, Coord{Row: 0, Col: 2},
		Coord{Row: 2, Col: 0}, Coord{Row: 2, Col: 2},
	)
}

func TestSnapshotIsIdempotent(t *testing.T) {
	board, err := GliderBoard(20, 20)
	if err != nil {
		t.Fatalf("glider board: %v", err)
	}
	e := newTestEngine(t, board)
	e.Advance()

	first := e.Snapshot()
	second := e.Snapshot()
	if !first.Equal(second) || first.Generation() != second.Generation() || first.Hash() != second.Hash() {
		t.Fatalf("snapshots differ without an advance:\n%s\n---\n%s", first, second)
	}
	if e.Generation() != 1 {
		t.Fatalf("generation = %d, expected 1", e.Generation())
	}

	// writing through a snapshot's copy must not reach the engine
	cells := first.Cells()
	cells[0][0] = Alive
	if e.Snapshot().Alive(0, 0) {
		t.Fatal("mutating snapshot cells changed the engine")
	}
}

func TestEngineCopiesInitialBoard(t *testing.T) {
	board := boardWith(t, 3, 3)
	e := newTestEngine(t, board)

	board[1][1] = Alive
	if e.Snapshot().Population() != 0 {
		t.Fatal("mutating the caller's board changed the engine")
	}
}

func TestParallelAdvanceMatchesSerial(t *testing.T) {
	board, err := RandomBoard(37, 23, 0.35, NewRand(42))
	if err != nil {
		t.Fatalf("random board: %v", err)
	}
	serial := newTestEngine(t, board)
	parallel := newTestEngine(t, board, WithWorkers(4))
	tooMany := newTestEngine(t, board, WithWorkers(64))

	for gen := 1; gen <= 25; gen++ {
		serial.Advance()
		parallel.Advance()
		tooMany.Advance()

		want := serial.Snapshot()
		if got := parallel.Snapshot(); !got.Equal(want) {
			t.Fatalf("generation %d: 4 workers diverged from serial", gen)
		}
		if got := tooMany.Snapshot(); !got.Equal(want) {
			t.Fatalf("generation %d: 64 workers diverged from serial", gen)
		}
	}
}

func TestRandomConstruction(t *testing.T) {
	a, err := NewEngine(30, 20, nil, WithRand(NewRand(7)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	b, err := NewEngine(30, 20, nil, WithRand(NewRand(7)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if !a.Snapshot().Equal(b.Snapshot()) {
		t.Fatal("same seed produced different boards")
	}
	if pop := a.Snapshot().Population(); pop == 0 || pop == 30*20 {
		t.Fatalf("population %d is implausible for p=%v", pop, DefaultAliveProbability)
	}

	none, err := NewEngine(10, 10, nil, WithAliveProbability(0))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if pop := none.Snapshot().Population(); pop != 0 {
		t.Fatalf("p=0 population = %d, expected 0", pop)
	}

	all, err := NewEngine(10, 10, nil, WithAliveProbability(1))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if pop := all.Snapshot().Population(); pop != 100 {
		t.Fatalf("p=1 population = %d, expected 100", pop)
	}
}

func TestNewEngineErrors(t *testing.T) {
	for _, tc := range []struct {
		name          string
		width, height int
		board         [][]Cell
		opts          []Option
		want          error
	}{
		{name: "zero width", width: 0, height: 5, want: ErrInvalidDimensions},
		{name: "zero height", width: 5, height: 0, want: ErrInvalidDimensions},
		{name: "negative", width: -1, height: -1, want: ErrInvalidDimensions},
		{name: "too few rows", width: 3, height: 3, board: make([][]Cell, 2), want: ErrDimensionMismatch},
		{name: "empty board", width: 3, height: 3, board: [][]Cell{}, want: ErrDimensionMismatch},
		{
			name: "ragged row", width: 3, height: 2,
			board: [][]Cell{{Dead, Dead, Dead}, {Dead, Dead}},
			want:  ErrDimensionMismatch,
		},
		{
			name: "too wide", width: 2, height: 1,
			board: [][]Cell{{Dead, Alive, Dead}},
			want:  ErrDimensionMismatch,
		},
		{name: "probability", width: 3, height: 3, opts: []Option{WithAliveProbability(1.5)}, want: ErrInvalidProbability},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewEngine(tc.width, tc.height, tc.board, tc.opts...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, expected %v", err, tc.want)
			}
			if e != nil {
				t.Fatal("engine returned alongside an error")
			}
		})
	}
}

func TestEngineDimensionsAndPopulation(t *testing.T) {
	e := newTestEngine(t, boardWith(t, 6, 4,
		Coord{Row: 0, Col: 0}, Coord{Row: 1, Col: 1}, Coord{Row: 3, Col: 5},
	))
	if e.Width() != 6 || e.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 6x4", e.Width(), e.Height())
	}
	snap := e.Snapshot()
	if snap.Width() != 6 || snap.Height() != 4 || snap.Generation() != 0 {
		t.Fatalf("snapshot size = %dx%d gen %d, expected 6x4 gen 0", snap.Width(), snap.Height(), snap.Generation())
	}
	if e.Population() != 3 || snap.Population() != 3 {
		t.Fatalf("population engine=%d snapshot=%d, expected 3", e.Population(), snap.Population())
	}

	// the diagonal pair has one neighbor each and the far cell none
	e.Advance()
	if e.Population() != 0 {
		t.Fatalf("population after advance = %d, expected 0", e.Population())
	}
}

func TestCellIsAlive(t *testing.T) {
	if !Alive.IsAlive() || Dead.IsAlive() {
		t.Fatal("IsAlive disagrees with the cell state")
	}
	if Alive.String() != "x" || Dead.String() != " " {
		t.Fatalf("glyphs = %q/%q, expected \"x\"/\" \"", Alive.String(), Dead.String())
	}
}
