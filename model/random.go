package model

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// NewRand returns a deterministic random source for the given seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// NewSeed generates a high-entropy seed so a random run can be logged and replayed
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "[NewSeed] failed to read random seed")
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
