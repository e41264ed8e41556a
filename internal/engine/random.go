package engine

import (
	"math/rand"

	"github.com/google/uuid"
)

// Sequence is a deterministic pseudo-random source addressed by
// (seed, step). Any party holding the seed can recompute draw number n
// independently, without replaying the n-1 draws before it. This is what
// lets every connected client render the same "random" presentation from
// a broadcast seed and a step counter alone.
type Sequence struct {
	seed int64
}

func NewSequence(seed int64) Sequence {
	return Sequence{seed: seed}
}

// Intn returns the step-th draw in [0, n). The same (seed, step, n)
// always yields the same value.
func (s Sequence) Intn(step, n int) int {
	mixed := uint64(s.seed) ^ uint64(step+1)*0x9e3779b97f4a7c15
	src := rand.NewSource(int64(mixed))
	return rand.New(src).Intn(n)
}

// ShuffleIDs returns a seeded Fisher-Yates shuffle of ids. The input is
// not modified. The same seed over the same input always produces the
// same order.
func ShuffleIDs(seed int64, ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	rng := rand.New(rand.NewSource(seed))
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
