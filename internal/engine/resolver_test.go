package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuta/auction-draft-backend/internal/domain"
	"github.com/yuta/auction-draft-backend/internal/engine"
)

// passItem lets the current item's timer run out and resolves it with no
// bids, pushing it onto the unsold queue.
func (f *fixture) passItem(t *testing.T) []engine.Event {
	t.Helper()
	f.tickToZero(t)
	events, _, err := f.draft.Resolve(f.host.ID)
	require.NoError(t, err)
	return events
}

func TestUnsoldResolver_SeededDrawAmongFundedTeams(t *testing.T) {
	f := newFixture(t, 2, 1)
	f.advanceToAuction(t)

	// Pass the first member; passing the second empties the primary
	// queue, which hands control to the resolver.
	f.passItem(t)
	events := f.passItem(t)

	require.Len(t, events, 2)
	assert.Equal(t, engine.EventItemPassed, events[0].Type)
	assert.Equal(t, engine.EventItemsAutoAssigned, events[1].Type)

	payload := events[1].Payload.(engine.ItemsAutoAssignedPayload)
	require.Len(t, payload.Assignments, 2)

	// Teams still had points, so the first placement is the seeded draw
	// over both eligible teams, reproducible by anyone with the seed.
	expectedFirst := f.teams[engine.NewSequence(testSeed).Intn(0, 2)].ID
	assert.Equal(t, expectedFirst, payload.Assignments[0].TeamID)

	// One slot each: the two members end up on different teams.
	assert.NotEqual(t, payload.Assignments[0].TeamID, payload.Assignments[1].TeamID)

	for _, res := range f.draft.Results() {
		assert.Equal(t, 0, res.FinalPrice)
		assert.True(t, res.IsAutoAssigned)
	}
	assert.Equal(t, 0, f.draft.UnsoldCount())

	// Free placement never touches balances.
	assert.Equal(t, 800, f.teams[0].CurrentPoints)
	assert.Equal(t, 800, f.teams[1].CurrentPoints)

	_, err := f.draft.Finish(f.host.ID)
	require.NoError(t, err)
}

func TestUnsoldResolver_AllBrokeTakesLeastFilled(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.advanceToAuction(t)

	// First member sells for the full balance of team A; everyone is
	// broke by the time the unsold queue settles.
	a := f.captains[0]
	teamA := f.teamOf(a)
	_, _, err := f.draft.PlaceBid(a.ID, teamA.ID, teamA.CurrentPoints)
	require.NoError(t, err)
	f.tickToZero(t)
	_, _, err = f.draft.Resolve(f.host.ID)
	require.NoError(t, err)

	f.teams[1].CurrentPoints = 0

	// Pass the remaining three members.
	f.passItem(t)
	f.passItem(t)
	events := f.passItem(t)

	last := events[len(events)-1]
	require.Equal(t, engine.EventItemsAutoAssigned, last.Type)
	payload := last.Payload.(engine.ItemsAutoAssignedPayload)
	require.Len(t, payload.Assignments, 3)

	// Team A already holds one member, so the least-filled rule gives
	// the first free placement to team B.
	assert.Equal(t, f.teams[1].ID, payload.Assignments[0].TeamID)

	// After that the counts alternate: A (1 each), then B fills up.
	counts := map[string]int{}
	for _, as := range payload.Assignments {
		counts[as.TeamID.String()]++
	}
	assert.Equal(t, 1, counts[f.teams[0].ID.String()])
	assert.Equal(t, 2, counts[f.teams[1].ID.String()])

	for _, res := range f.draft.Results() {
		if res.IsAutoAssigned {
			assert.Equal(t, 0, res.FinalPrice)
		}
	}

	// Every member placed, nothing spent beyond the one sale.
	assert.Equal(t, 0, f.teams[0].CurrentPoints)
	assert.Equal(t, 0, f.teams[1].CurrentPoints)
	_, err = f.draft.Finish(f.host.ID)
	require.NoError(t, err)
}

func TestUnsoldResolver_RespectsCapacity(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.advanceToAuction(t)

	// Fill team A completely through sales.
	a := f.captains[0]
	for i := 0; i < 2; i++ {
		_, _, err := f.draft.PlaceBid(a.ID, *a.TeamID, 10*(i+1))
		require.NoError(t, err)
		f.tickToZero(t)
		_, _, err = f.draft.Resolve(f.host.ID)
		require.NoError(t, err)
	}

	// Pass the last two members; only team B has slots left.
	f.passItem(t)
	events := f.passItem(t)

	last := events[len(events)-1]
	require.Equal(t, engine.EventItemsAutoAssigned, last.Type)
	payload := last.Payload.(engine.ItemsAutoAssignedPayload)
	require.Len(t, payload.Assignments, 2)
	for _, as := range payload.Assignments {
		assert.Equal(t, f.teams[1].ID, as.TeamID)
	}
}

func TestUnsoldResolver_ResultPerItemExactlyOnce(t *testing.T) {
	f := newFixture(t, 2, 1)
	f.advanceToAuction(t)

	f.passItem(t)
	f.passItem(t)

	results := f.draft.Results()
	require.Len(t, results, 2)
	seen := map[string]bool{}
	for _, res := range results {
		assert.False(t, seen[res.TargetID.String()], "one result per target")
		seen[res.TargetID.String()] = true
	}

	// Orders are dense and sequential.
	assert.Equal(t, 1, results[0].ResolutionOrder)
	assert.Equal(t, 2, results[1].ResolutionOrder)
}

func TestUnsoldResolver_PassedQueueKeepsBalancesIntact(t *testing.T) {
	f := newFixture(t, 2, 1)
	f.advanceToAuction(t)

	f.passItem(t)
	f.passItem(t)

	assert.Equal(t, testTotalPoints-testCaptainValue, f.teams[0].CurrentPoints)
	assert.Equal(t, testTotalPoints-testCaptainValue, f.teams[1].CurrentPoints)

	for _, m := range f.members {
		require.NotNil(t, m.TeamID, "every member must be placed")
	}
	assert.Equal(t, domain.PhaseAuction, f.draft.Phase())
}
