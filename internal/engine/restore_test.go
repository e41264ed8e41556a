package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuta/auction-draft-backend/internal/domain"
	"github.com/yuta/auction-draft-backend/internal/engine"
)

// persistedRoom mirrors what the room row looks like after the draft
// facts have been written: phase, seed, drawn order, and the item that
// was on the block.
func (f *fixture) persistedRoom(t *testing.T) *domain.Room {
	t.Helper()

	room := *f.room
	room.Phase = f.draft.Phase()
	if order := f.draft.ShuffleOrder(); order != nil {
		raw, err := json.Marshal(order)
		require.NoError(t, err)
		seed := testSeed
		room.ShuffleSeed = &seed
		room.MemberOrder = raw
	}
	if active := f.draft.Active(); active != nil {
		id := active.TargetID
		room.CurrentItemID = &id
	}
	return &room
}

func TestRestore_MidAuction(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.advanceToAuction(t)

	// Sell the first member, pass the second.
	first := f.draft.Active().TargetID
	captain := f.captains[0]
	_, _, err := f.draft.PlaceBid(captain.ID, *captain.TeamID, 50)
	require.NoError(t, err)
	f.tickToZero(t)
	_, _, err = f.draft.Resolve(f.host.ID)
	require.NoError(t, err)

	_ = f.draft.Active().TargetID
	f.tickToZero(t)
	_, _, err = f.draft.Resolve(f.host.ID)
	require.NoError(t, err)

	onBlock := f.draft.Active().TargetID

	reloaded := engine.New(f.persistedRoom(t), f.teams, f.participants, f.draft.Results())

	assert.Equal(t, domain.PhaseAuction, reloaded.Phase())
	assert.Equal(t, 1, reloaded.UnsoldCount(), "the passed member returns to the unsold queue")
	assert.Equal(t, 1, reloaded.PendingCount())

	// Settled items stay settled and cannot finish early.
	require.Len(t, reloaded.Results(), 1)
	assert.Equal(t, first, reloaded.Results()[0].TargetID)
	_, err = reloaded.Finish(f.host.ID)
	assert.ErrorIs(t, err, domain.ErrAuctionNotFinished)

	// The interrupted round restarts fresh on the same member.
	active := reloaded.Active()
	require.NotNil(t, active)
	assert.Equal(t, onBlock, active.TargetID)
	assert.Equal(t, 0, active.CurrentPrice)
	assert.Equal(t, testInitialTimer, active.TimerRemaining)
	assert.True(t, active.TimerRunning)

	snap := reloaded.Snapshot()
	require.NotNil(t, snap.Shuffle)
	assert.Equal(t, len(f.members), snap.Shuffle.RevealedCount)

	// The reloaded draft runs to completion: sell the restarted round,
	// pass the last member, and the fallback resolver places the rest.
	other := f.captains[1]
	_, _, err = reloaded.PlaceBid(other.ID, *other.TeamID, 30)
	require.NoError(t, err)
	for reloaded.Active() != nil && reloaded.Active().TimerRunning {
		reloaded.Tick()
	}
	_, _, err = reloaded.Resolve(f.host.ID)
	require.NoError(t, err)

	for reloaded.Active() != nil && reloaded.Active().TimerRunning {
		reloaded.Tick()
	}
	events, _, err := reloaded.Resolve(f.host.ID)
	require.NoError(t, err)
	assert.True(t, hasEventType(events, engine.EventItemsAutoAssigned))

	_, err = reloaded.Finish(f.host.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFinished, reloaded.Phase())
}

func TestRestore_MidReveal(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.advanceToShuffle(t)
	_, err := f.draft.StartShuffle(f.host.ID, testSeed)
	require.NoError(t, err)
	_, err = f.draft.RevealNext(f.host.ID)
	require.NoError(t, err)

	reloaded := engine.New(f.persistedRoom(t), f.teams, f.participants, nil)

	// The order is fixed; the reveal replays from the start rather than
	// re-drawing.
	_, err = reloaded.StartShuffle(f.host.ID, 99)
	assert.ErrorIs(t, err, domain.ErrShuffleStarted)

	for range f.members {
		_, err = reloaded.RevealNext(f.host.ID)
		require.NoError(t, err)
	}
	snap := reloaded.Snapshot()
	require.NotNil(t, snap.Shuffle)
	assert.Equal(t, f.draft.ShuffleOrder(), reloaded.ShuffleOrder())

	_, err = reloaded.BeginAuction(f.host.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseAuction, reloaded.Phase())
}

func TestFinish_RequiresEveryMemberSettled(t *testing.T) {
	f := newFixture(t, 2, 2)

	// A room row claiming AUCTION with no recorded facts must not be
	// finishable while its members are unplaced.
	room := *f.room
	room.Phase = domain.PhaseAuction
	bare := engine.New(&room, f.teams, f.participants, nil)

	_, err := bare.Finish(f.host.ID)
	assert.ErrorIs(t, err, domain.ErrAuctionNotFinished)
	assert.Equal(t, domain.PhaseAuction, bare.Phase())
	assert.Empty(t, bare.Results())
}

func hasEventType(events []engine.Event, typ engine.EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}
