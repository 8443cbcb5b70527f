package model

import (
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/pkg/errors"
	"github.com/sheikhrachel/go-conway/rules"
)

// DefaultAliveProbability is the chance that a randomly generated cell starts alive
const DefaultAliveProbability = 0.15

// Engine owns the current generation and steps it forward.
//
// Each Advance evaluates every cell against the current grid and writes the
// result into a shadow grid of the same size; the two are then swapped. The
// current grid is never written while a generation is being computed.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	current    *Grid
	shadow     *Grid
	generation int
	workers    int
}

type engineOptions struct {
	rng         *rand.Rand
	probability float64
	workers     int
}

// Option configures an Engine at construction
type Option func(*engineOptions)

// WithRand sets the random source used when no initial board is given
func WithRand(rng *rand.Rand) Option {
	return func(o *engineOptions) {
		o.rng = rng
	}
}

// WithAliveProbability overrides DefaultAliveProbability for random boards
func WithAliveProbability(p float64) Option {
	return func(o *engineOptions) {
		o.probability = p
	}
}

// WithWorkers splits each Advance across n goroutines by row. n <= 1 keeps Advance serial.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// NewEngine creates an engine for a width x height grid.
//
// A nil board starts every cell alive with DefaultAliveProbability (see
// WithAliveProbability). A non-nil board must have exactly height rows of
// width cells and is copied.
func NewEngine(width, height int, board [][]Cell, opts ...Option) (*Engine, error) {
	o := engineOptions{
		probability: DefaultAliveProbability,
		workers:     1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewEngine] width=%d height=%d", width, height)
	}

	var (
		current *Grid
		err     error
	)
	if board != nil {
		if current, err = GridFromBoard(width, height, board); err != nil {
			return nil, errors.Wrap(err, "[NewEngine] failed to load initial board")
		}
	} else {
		if o.probability < 0 || o.probability > 1 {
			return nil, errors.Wrapf(ErrInvalidProbability, "[NewEngine] p=%v", o.probability)
		}
		if o.rng == nil {
			o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		current = newGrid(width, height)
		current.Randomize(o.rng, o.probability)
	}

	return &Engine{
		current: current,
		shadow:  newGrid(width, height),
		workers: max(1, o.workers),
	}, nil
}

// Width returns the number of columns
func (e *Engine) Width() int {
	return e.current.GetWidth()
}

// Height returns the number of rows
func (e *Engine) Height() int {
	return e.current.GetHeight()
}

// Generation returns how many times Advance has completed
func (e *Engine) Generation() int {
	return e.generation
}

// Population returns the number of living cells in the current generation
func (e *Engine) Population() int {
	return e.current.CountLivingCells()
}

// Advance replaces the current generation with the next one
func (e *Engine) Advance() {
	if e.workers > 1 && e.current.height > 1 {
		e.advanceParallel()
	} else {
		e.advanceRows(0, e.current.height)
	}

	e.current, e.shadow = e.shadow, e.current
	e.generation++
}

// advanceRows writes the next state of rows [startRow, endRow) into the shadow grid
func (e *Engine) advanceRows(startRow, endRow int) {
	cur, next := e.current, e.shadow
	for row := startRow; row < endRow; row++ {
		for col := range cur.width {
			alive := rules.ApplyConwayRules(cur.CountNeighbors(row, col), cur.cells[row][col].IsAlive())
			next.cells[row][col] = cellOf(alive)
		}
	}
}

// advanceParallel fans rows out across workers; each worker owns a disjoint band of shadow rows
func (e *Engine) advanceParallel() {
	var (
		eg            errgroup.Group
		height        = e.current.height
		numWorkers    = min(e.workers, height)
		rowsPerWorker = (height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
		)
		if startRow >= height {
			break
		}

		eg.Go(func() error {
			e.advanceRows(startRow, endRow)
			return nil
		})
	}

	// workers never fail
	_ = eg.Wait()
}

// Snapshot returns a copy of the current generation
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		width:      e.current.GetWidth(),
		height:     e.current.GetHeight(),
		generation: e.generation,
		cells:      e.current.copyCells(),
	}
}
