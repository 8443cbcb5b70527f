package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned when a width or height is not positive
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrDimensionMismatch is returned when a board does not match the requested width and height
	ErrDimensionMismatch = errors.New("board dimensions do not match grid")
	// ErrInvalidProbability is returned when an alive probability falls outside [0, 1]
	ErrInvalidProbability = errors.New("alive probability must be within [0, 1]")
	// ErrInvalidBoard is returned when a text board contains an unknown cell glyph
	ErrInvalidBoard = errors.New("invalid board")
)
