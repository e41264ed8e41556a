package engine

import (
	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

type ShufflePhase string

const (
	ShuffleGather    ShufflePhase = "gather"
	ShuffleShuffling ShufflePhase = "shuffling"
	ShuffleRevealing ShufflePhase = "revealing"
	ShuffleComplete  ShufflePhase = "complete"
)

// ShuffleState drives the member-order reveal. The order itself is fixed
// the moment the shuffle runs; the reveal is only a cursor over it. Any
// client holding (seed, revealedCount) can recompute the presentation
// without an event log.
type ShuffleState struct {
	Phase         ShufflePhase
	Seed          int64
	Order         []uuid.UUID
	RevealedCount int
	Total         int
}

func newShuffleState(total int) *ShuffleState {
	return &ShuffleState{Phase: ShuffleGather, Total: total}
}

// StartShuffle runs the seeded Fisher-Yates shuffle over all member ids
// and assigns each member its immutable auction order. The seed is fixed
// once per shuffle run and broadcast so clients can replay the animation
// deterministically.
func (d *Draft) StartShuffle(actorID uuid.UUID, seed int64) ([]Event, error) {
	if err := d.requireHost(actorID); err != nil {
		return nil, err
	}
	if d.phase != domain.PhaseShuffle || d.shuffle == nil {
		return nil, domain.ErrWrongPhase
	}
	if d.shuffle.Phase != ShuffleGather {
		return nil, domain.ErrShuffleStarted
	}

	d.shuffle.Phase = ShuffleShuffling
	d.shuffle.Seed = seed
	d.shuffle.Order = ShuffleIDs(seed, d.memberIDs)
	for i, id := range d.shuffle.Order {
		order := i
		d.participants[id].AuctionOrder = &order
	}
	d.shuffle.Phase = ShuffleRevealing
	d.shuffle.RevealedCount = 0

	events := []Event{{Type: EventShuffleStarted, Payload: ShuffleStartedPayload{
		Seed:  seed,
		Total: d.shuffle.Total,
	}}}

	// With no members there is nothing to reveal; the shuffle completes
	// on the spot instead of waiting for a reveal that would never come.
	if d.shuffle.Total == 0 {
		d.shuffle.Phase = ShuffleComplete
		events = append(events, Event{Type: EventShuffleCompleted, Payload: ShuffleCompletedPayload{
			Order: d.shuffle.Order,
		}})
	}
	return events, nil
}

// RevealNext uncovers the next member in the shuffled order. The cursor
// only ever moves forward; revealing the last member completes the
// shuffle.
func (d *Draft) RevealNext(actorID uuid.UUID) ([]Event, error) {
	if err := d.requireHost(actorID); err != nil {
		return nil, err
	}
	if d.phase != domain.PhaseShuffle || d.shuffle == nil {
		return nil, domain.ErrWrongPhase
	}
	if d.shuffle.Phase != ShuffleRevealing {
		if d.shuffle.Phase == ShuffleComplete {
			return nil, domain.ErrShuffleStarted
		}
		return nil, domain.ErrRevealNotStarted
	}

	idx := d.shuffle.RevealedCount
	target := d.shuffle.Order[idx]
	d.shuffle.RevealedCount++

	events := []Event{{Type: EventMemberRevealed, Payload: MemberRevealedPayload{
		TargetID:      target,
		AuctionOrder:  idx,
		RevealedCount: d.shuffle.RevealedCount,
		Total:         d.shuffle.Total,
	}}}

	if d.shuffle.RevealedCount >= d.shuffle.Total {
		d.shuffle.Phase = ShuffleComplete
		events = append(events, Event{Type: EventShuffleCompleted, Payload: ShuffleCompletedPayload{
			Order: d.shuffle.Order,
		}})
	}
	return events, nil
}

// BeginAuction moves the room from SHUFFLE to AUCTION once the reveal is
// complete, loads the pending queue from the shuffled order, and puts the
// first member on the block.
func (d *Draft) BeginAuction(actorID uuid.UUID) ([]Event, error) {
	if err := d.requireHost(actorID); err != nil {
		return nil, err
	}
	if d.phase != domain.PhaseShuffle || d.shuffle == nil {
		return nil, domain.ErrWrongPhase
	}
	if d.shuffle.Phase != ShuffleComplete {
		return nil, domain.ErrShuffleNotComplete
	}

	d.phase = domain.PhaseAuction
	d.pending = append([]uuid.UUID(nil), d.shuffle.Order...)

	events := []Event{{Type: EventPhaseChanged, Payload: PhaseChangedPayload{
		Phase: string(d.phase),
	}}}

	if len(d.pending) > 0 {
		started, err := d.startItem(d.pending[0])
		if err != nil {
			return nil, err
		}
		events = append(events, Event{Type: EventAuctionStarted, Payload: started})
	}
	return events, nil
}

// ShuffleOrder returns a copy of the full drawn order, or nil before the
// shuffle has run. Callers must not leak it to clients mid-reveal.
func (d *Draft) ShuffleOrder() []uuid.UUID {
	if d.shuffle == nil || len(d.shuffle.Order) == 0 {
		return nil
	}
	return append([]uuid.UUID(nil), d.shuffle.Order...)
}
