package utils

// historySize is how many recent generations are kept for cycle detection
const historySize = 5

// History remembers hashes of recent generations so a caller can notice when
// the board has stopped changing or fallen into a short cycle.
type History struct {
	hashes []uint64
}

// Observe records the hash of the generation just displayed and reports
// whether it repeats one of the previous three (still life or period <= 3).
func (h *History) Observe(hash uint64) (repeated bool) {
	n := len(h.hashes)
	for i := 1; i <= 3 && i <= n; i++ {
		if h.hashes[n-i] == hash {
			repeated = true
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
	return repeated
}

// Reset forgets all recorded generations
func (h *History) Reset() {
	h.hashes = nil
}
