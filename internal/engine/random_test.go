package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuta/auction-draft-backend/internal/engine"
)

func TestShuffleIDs_Deterministic(t *testing.T) {
	ids := make([]uuid.UUID, 10)
	for i := range ids {
		ids[i] = uuid.New()
	}

	first := engine.ShuffleIDs(42, ids)
	second := engine.ShuffleIDs(42, ids)
	assert.Equal(t, first, second, "same seed must produce the same order")

	other := engine.ShuffleIDs(43, ids)
	assert.NotEqual(t, first, other, "different seeds should produce different orders")
}

func TestShuffleIDs_IsPermutation(t *testing.T) {
	ids := make([]uuid.UUID, 25)
	for i := range ids {
		ids[i] = uuid.New()
	}
	original := append([]uuid.UUID(nil), ids...)

	out := engine.ShuffleIDs(7, ids)

	assert.Equal(t, original, ids, "input must not be modified")
	require.Len(t, out, len(ids))
	seen := make(map[uuid.UUID]bool, len(out))
	for _, id := range out {
		seen[id] = true
	}
	for _, id := range ids {
		assert.True(t, seen[id], "every id must survive the shuffle")
	}
}

func TestSequence_StepAddressable(t *testing.T) {
	seq := engine.NewSequence(99)

	// Draw step 5 before step 0: step addressing means order of access
	// cannot matter.
	late := seq.Intn(5, 100)
	early := seq.Intn(0, 100)
	assert.Equal(t, late, seq.Intn(5, 100))
	assert.Equal(t, early, seq.Intn(0, 100))

	other := engine.NewSequence(99)
	for step := 0; step < 20; step++ {
		assert.Equal(t, seq.Intn(step, 10), other.Intn(step, 10), "step=%d", step)
	}
}

func TestSequence_LargeStepsAndNegativeSeeds(t *testing.T) {
	seq := engine.NewSequence(-7)
	for _, step := range []int{0, 1 << 20, 1 << 30, (1 << 31) - 1} {
		v := seq.Intn(step, 50)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 50)
		assert.Equal(t, v, engine.NewSequence(-7).Intn(step, 50), "step=%d", step)
	}
}

func TestSequence_InRange(t *testing.T) {
	seq := engine.NewSequence(1)
	for step := 0; step < 1000; step++ {
		v := seq.Intn(step, 3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
}
