package engine

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

// Draft is the authoritative in-memory state of one room's draft. It is
// deliberately free of locks, timers and I/O: the owning room goroutine
// serializes every call, and each accepted mutation returns the typed
// events to broadcast. Nothing outside this package mutates team balances
// or item ownership.
type Draft struct {
	roomID   uuid.UUID
	settings domain.RoomSettings
	phase    domain.DraftPhase

	teams            map[uuid.UUID]*domain.Team
	teamOrder        []uuid.UUID
	participants     map[uuid.UUID]*domain.Participant
	participantOrder []uuid.UUID
	memberIDs        []uuid.UUID

	introCursor int
	shuffle     *ShuffleState

	pending []uuid.UUID
	unsold  []uuid.UUID
	active  *AuctionState

	bids     []*domain.Bid
	results  []*domain.AuctionResult
	resolved map[uuid.UUID]bool
}

// New builds a draft over already-created room state. Team and participant
// slices are expected in creation order; that order is the deterministic
// tie-break used by the unsold-item resolver. Results are the stored
// settlements in resolution order; together with the room's persisted
// seed and member order they rebuild a mid-draft room after a restart.
func New(room *domain.Room, teams []*domain.Team, participants []*domain.Participant, results []*domain.AuctionResult) *Draft {
	d := &Draft{
		roomID:       room.ID,
		settings:     room.Settings,
		phase:        room.Phase,
		teams:        make(map[uuid.UUID]*domain.Team, len(teams)),
		participants: make(map[uuid.UUID]*domain.Participant, len(participants)),
		resolved:     make(map[uuid.UUID]bool),
	}
	if d.phase == "" {
		d.phase = domain.PhaseWaiting
	}
	for _, t := range teams {
		d.teams[t.ID] = t
		d.teamOrder = append(d.teamOrder, t.ID)
	}
	for _, p := range participants {
		d.participants[p.ID] = p
		d.participantOrder = append(d.participantOrder, p.ID)
		if p.Role == domain.RoleMember {
			d.memberIDs = append(d.memberIDs, p.ID)
		}
	}
	for _, res := range results {
		d.results = append(d.results, res)
		d.resolved[res.TargetID] = true
	}
	d.restore(room)
	return d
}

// restore rebuilds the mid-draft working state a phase implies: the
// shuffle comes back from the room's persisted seed and member order,
// settled items from the stored results, and the auction queues from the
// two combined. A round that was live at shutdown restarts fresh with
// price zero and a full timer; its earlier bids stay recorded but do not
// bind the restarted round.
func (d *Draft) restore(room *domain.Room) {
	switch d.phase {
	case domain.PhaseShuffle, domain.PhaseAuction, domain.PhaseFinished:
	default:
		return
	}

	d.shuffle = newShuffleState(len(d.memberIDs))
	if room.ShuffleSeed == nil {
		return
	}

	var order []uuid.UUID
	if len(room.MemberOrder) > 0 {
		if err := json.Unmarshal(room.MemberOrder, &order); err != nil {
			order = nil
		}
	}
	d.shuffle.Seed = *room.ShuffleSeed
	d.shuffle.Order = order

	if d.phase == domain.PhaseShuffle {
		// The reveal cursor is not persisted; the reveal replays from
		// the start over the fixed order.
		d.shuffle.Phase = ShuffleRevealing
		if d.shuffle.Total == 0 {
			d.shuffle.Phase = ShuffleComplete
		}
		return
	}

	d.shuffle.Phase = ShuffleComplete
	d.shuffle.RevealedCount = d.shuffle.Total

	if d.phase != domain.PhaseAuction {
		return
	}

	// The auction walks the order front to back, so an unresolved member
	// positioned before the item that was on the block must have been
	// passed to the unsold queue.
	cut := len(order)
	if room.CurrentItemID != nil {
		for i, id := range order {
			if id == *room.CurrentItemID {
				cut = i
				break
			}
		}
	}
	for i, id := range order {
		if d.resolved[id] {
			continue
		}
		if i < cut {
			d.unsold = append(d.unsold, id)
		} else {
			d.pending = append(d.pending, id)
		}
	}
	if len(d.pending) > 0 {
		d.startItem(d.pending[0])
	}
}

func (d *Draft) RoomID() uuid.UUID              { return d.roomID }
func (d *Draft) Phase() domain.DraftPhase       { return d.phase }
func (d *Draft) Settings() domain.RoomSettings  { return d.settings }
func (d *Draft) Results() []*domain.AuctionResult {
	return d.results
}

// Participant returns the participant with the given id, or nil.
func (d *Draft) Participant(id uuid.UUID) *domain.Participant {
	return d.participants[id]
}

// Team returns the team with the given id, or nil.
func (d *Draft) Team(id uuid.UUID) *domain.Team {
	return d.teams[id]
}

// SetOnline records a presence change for a participant. Presence is owned
// by the transport's presence feed; the engine only reads it for the
// captains-online gate.
func (d *Draft) SetOnline(participantID uuid.UUID, online bool) {
	if p := d.participants[participantID]; p != nil {
		p.Online = online
	}
}

func (d *Draft) requireHost(actorID uuid.UUID) error {
	p := d.participants[actorID]
	if p == nil || p.Role != domain.RoleHost {
		return domain.ErrNotHost
	}
	return nil
}

func (d *Draft) captainByTeam(teamID uuid.UUID) *domain.Participant {
	t := d.teams[teamID]
	if t == nil {
		return nil
	}
	return d.participants[t.CaptainID]
}

// memberCount returns how many auctioned members the team has won so far.
// The captain does not count against the members-per-team limit.
func (d *Draft) memberCount(teamID uuid.UUID) int {
	n := 0
	for _, id := range d.memberIDs {
		p := d.participants[id]
		if p.TeamID != nil && *p.TeamID == teamID {
			n++
		}
	}
	return n
}

func (d *Draft) slotsLeft(teamID uuid.UUID) int {
	return d.settings.MembersPerTeam - d.memberCount(teamID)
}

// Reset discards all draft content and returns the room to WAITING: bids,
// results, shuffle order and auction state are dropped, team balances are
// restored to totalPoints - captainValue, and member assignments are
// cleared. Room, team and participant identities are untouched.
func (d *Draft) Reset(actorID uuid.UUID) ([]Event, error) {
	if err := d.requireHost(actorID); err != nil {
		return nil, err
	}

	d.phase = domain.PhaseWaiting
	d.introCursor = 0
	d.shuffle = nil
	d.pending = nil
	d.unsold = nil
	d.active = nil
	d.bids = nil
	d.results = nil
	d.resolved = make(map[uuid.UUID]bool)

	for _, t := range d.teams {
		t.CurrentPoints = d.settings.TotalPoints - t.CaptainValue
	}
	for _, id := range d.memberIDs {
		p := d.participants[id]
		p.TeamID = nil
		p.AuctionOrder = nil
	}

	return []Event{{Type: EventDraftReset, Payload: DraftResetPayload{
		Phase: string(domain.PhaseWaiting),
	}}}, nil
}

func (d *Draft) appendResult(targetID, teamID uuid.UUID, price int, auto bool) *domain.AuctionResult {
	res := &domain.AuctionResult{
		ID:              uuid.New(),
		RoomID:          d.roomID,
		TargetID:        targetID,
		WinnerTeamID:    teamID,
		FinalPrice:      price,
		ResolutionOrder: len(d.results) + 1,
		IsAutoAssigned:  auto,
	}
	d.results = append(d.results, res)
	d.resolved[targetID] = true
	return res
}
