package websocket_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuta/auction-draft-backend/internal/engine"
	"github.com/yuta/auction-draft-backend/internal/testutil"
	"github.com/yuta/auction-draft-backend/internal/websocket"
)

const defaultTimeout = 5 * time.Second

func msgType(t engine.EventType) websocket.MessageType {
	return websocket.MessageType(t)
}

// draftSetup wires a room with two teams, two captains seated by real
// users, and four unassigned members, then connects host and captains.
type draftSetup struct {
	ts      *testutil.TestServer
	fixture *testutil.RoomFixture
	host    *testutil.WSClient
	capA    *testutil.WSClient
	capB    *testutil.WSClient
}

func newDraftSetup(t *testing.T) *draftSetup {
	ts := testutil.NewTestServer(t)

	hostUser, hostToken := testutil.NewUserBuilder().
		WithDisplayName("host").
		BuildAndAuthenticate(t, ts)
	capAUser, capAToken := testutil.NewUserBuilder().
		WithDisplayName("capA").
		BuildAndAuthenticate(t, ts)
	capBUser, capBToken := testutil.NewUserBuilder().
		WithDisplayName("capB").
		BuildAndAuthenticate(t, ts)

	fixture := testutil.NewRoomBuilder(hostUser).Build(t, ts.DB.DB)
	testutil.ClaimSeat(t, ts.DB.DB, fixture.Captains[0], capAUser)
	testutil.ClaimSeat(t, ts.DB.DB, fixture.Captains[1], capBUser)

	setup := &draftSetup{
		ts:      ts,
		fixture: fixture,
		host:    testutil.NewWSClient(t, ts.WebSocketURL(hostToken)),
		capA:    testutil.NewWSClient(t, ts.WebSocketURL(capAToken)),
		capB:    testutil.NewWSClient(t, ts.WebSocketURL(capBToken)),
	}

	roomID := fixture.Room.ID.String()

	setup.host.JoinRoom(roomID)
	setup.host.ExpectStateSync(defaultTimeout)
	setup.capA.JoinRoom(roomID)
	setup.capA.ExpectStateSync(defaultTimeout)
	setup.capB.JoinRoom(roomID)
	setup.capB.ExpectStateSync(defaultTimeout)

	return setup
}

// advanceToAuction drives the happy path up to the first item on the
// block: intro, shuffle, full reveal, auction start.
func (s *draftSetup) advanceToAuction(t *testing.T) {
	t.Helper()

	s.host.StartIntro()
	s.host.ExpectMessage(msgType(engine.EventPhaseChanged), defaultTimeout)

	// One advance per team, then one more to transition to shuffle.
	for i := 0; i < len(s.fixture.Teams); i++ {
		s.host.NextCaptain()
		s.host.ExpectMessage(msgType(engine.EventCaptainIntroAdvanced), defaultTimeout)
	}
	s.host.NextCaptain()
	s.host.ExpectMessage(msgType(engine.EventPhaseChanged), defaultTimeout)

	s.host.StartShuffle()
	s.host.ExpectMessage(msgType(engine.EventShuffleStarted), defaultTimeout)

	for i := 0; i < len(s.fixture.Members); i++ {
		s.host.RevealNext()
		s.host.ExpectMessage(msgType(engine.EventMemberRevealed), defaultTimeout)
	}
	s.host.ExpectMessage(msgType(engine.EventShuffleCompleted), defaultTimeout)

	s.host.StartAuction()
	s.host.ExpectMessage(msgType(engine.EventAuctionStarted), defaultTimeout)
}

func waitTimerZero(t *testing.T, c *testutil.WSClient) {
	t.Helper()

	deadline := time.Now().Add(15 * time.Second)
	for {
		msg := c.ExpectMessage(msgType(engine.EventTimerTick), time.Until(deadline))
		var tick engine.TimerTickPayload
		testutil.DecodePayload(t, msg, &tick)
		if tick.Remaining == 0 {
			return
		}
	}
}

func TestDraftFlow_JoinRequiresSeat(t *testing.T) {
	ts := testutil.NewTestServer(t)

	hostUser, _ := testutil.NewUserBuilder().
		WithDisplayName("seatedhost").
		BuildAndAuthenticate(t, ts)
	fixture := testutil.NewRoomBuilder(hostUser).Build(t, ts.DB.DB)

	_, strangerToken := testutil.NewUserBuilder().
		WithDisplayName("stranger").
		BuildAndAuthenticate(t, ts)

	client := testutil.NewWSClient(t, ts.WebSocketURL(strangerToken))
	client.JoinRoom(fixture.Room.ID.String())

	errPayload := client.ExpectError(defaultTimeout)
	assert.Equal(t, "NOT_IN_ROOM", errPayload.Code)
}

func TestDraftFlow_HostOnlyTransitions(t *testing.T) {
	s := newDraftSetup(t)

	// A captain cannot drive the phase machine
	s.capA.StartIntro()
	errPayload := s.capA.ExpectError(defaultTimeout)
	assert.Equal(t, "NOT_HOST", errPayload.Code)

	// Shuffle before intro is the wrong phase
	s.host.StartShuffle()
	errPayload = s.host.ExpectError(defaultTimeout)
	assert.Equal(t, "WRONG_PHASE", errPayload.Code)
}

func TestDraftFlow_FullRound(t *testing.T) {
	s := newDraftSetup(t)
	s.advanceToAuction(t)

	teamA := s.fixture.Teams[0]
	teamB := s.fixture.Teams[1]

	// Opening bid at the minimum unit
	s.capA.PlaceBid(teamA.ID, 5)
	msg := s.host.ExpectMessage(msgType(engine.EventBidAccepted), defaultTimeout)

	var accepted engine.BidAcceptedPayload
	testutil.DecodePayload(t, msg, &accepted)
	assert.Equal(t, teamA.ID, accepted.TeamID)
	assert.Equal(t, 5, accepted.Amount)
	assert.Equal(t, 10, accepted.NextMinBid)

	// Same amount again is below the new minimum; only the bidder hears it
	s.capB.PlaceBid(teamB.ID, 5)
	errPayload := s.capB.ExpectError(defaultTimeout)
	assert.Equal(t, "BID_BELOW_MINIMUM", errPayload.Code)

	// A captain cannot bid for the other team
	s.capB.PlaceBid(teamA.ID, 10)
	errPayload = s.capB.ExpectError(defaultTimeout)
	assert.Equal(t, "NOT_YOUR_TEAM", errPayload.Code)

	// Resolving while the timer runs is rejected
	s.host.ResolveItem()
	errPayload = s.host.ExpectError(defaultTimeout)
	assert.Equal(t, "TIMER_STILL_RUNNING", errPayload.Code)

	waitTimerZero(t, s.host)

	// Bidding after the timer stopped is rejected
	s.capB.PlaceBid(teamB.ID, 10)
	errPayload = s.capB.ExpectError(defaultTimeout)
	assert.Equal(t, "TIMER_NOT_RUNNING", errPayload.Code)

	s.host.ResolveItem()
	sold := s.host.ExpectMessage(msgType(engine.EventItemSold), defaultTimeout)

	var soldPayload engine.ItemSoldPayload
	testutil.DecodePayload(t, sold, &soldPayload)
	assert.Equal(t, teamA.ID, soldPayload.WinnerTeamID)
	assert.Equal(t, 5, soldPayload.FinalPrice)
	assert.Equal(t, 795, soldPayload.TeamPointsLeft)

	// The next item goes straight on the block
	s.host.ExpectMessage(msgType(engine.EventNextRoundStarted), defaultTimeout)

	// State sync reflects the settlement
	s.host.DrainMessages()
	s.host.SyncState()
	sync := s.host.ExpectStateSync(defaultTimeout)
	require.NotNil(t, sync.Draft)
	assert.Equal(t, "auction", sync.Draft.Phase)
	require.Len(t, sync.Draft.Results, 1)
	assert.Equal(t, soldPayload.TargetID, sync.Draft.Results[0].TargetID)
	assert.False(t, sync.Draft.Results[0].IsAutoAssigned)

	for _, team := range sync.Draft.Teams {
		if team.ID == teamA.ID {
			assert.Equal(t, 795, team.CurrentPoints)
			assert.Len(t, team.MemberIDs, 1)
		}
	}
}

func TestDraftFlow_Reset(t *testing.T) {
	s := newDraftSetup(t)
	s.advanceToAuction(t)

	s.capA.PlaceBid(s.fixture.Teams[0].ID, 5)
	s.host.ExpectMessage(msgType(engine.EventBidAccepted), defaultTimeout)

	waitTimerZero(t, s.host)
	s.host.ResolveItem()
	s.host.ExpectMessage(msgType(engine.EventItemSold), defaultTimeout)

	s.host.ResetDraft()
	s.host.ExpectMessage(msgType(engine.EventDraftReset), defaultTimeout)

	sync := s.host.ExpectStateSync(defaultTimeout)
	require.NotNil(t, sync.Draft)
	assert.Equal(t, "waiting", sync.Draft.Phase)
	assert.Empty(t, sync.Draft.Results)
	for _, team := range sync.Draft.Teams {
		assert.Equal(t, 800, team.CurrentPoints)
		assert.Empty(t, team.MemberIDs)
	}
	for _, p := range sync.Draft.Participants {
		if p.Role == "member" {
			assert.Nil(t, p.TeamID)
			assert.Nil(t, p.AuctionOrder)
		}
	}
}
