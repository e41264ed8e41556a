package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

// AuctionState is the live working set for the item currently on the
// block. It exists only between startItem and Resolve; ownership passes to
// the next item only after an explicit resolution.
type AuctionState struct {
	TargetID       uuid.UUID
	CurrentPrice   int
	LeadingTeamID  *uuid.UUID
	Bids           []*domain.Bid
	TimerRemaining int
	TimerRunning   bool
}

// startItem puts the next queued member on the block: price zero, no
// leading team, timer at the configured initial value and running. The
// item is removed from the head of the pending queue.
func (d *Draft) startItem(itemID uuid.UUID) (*RoundStartedPayload, error) {
	if d.active != nil {
		return nil, domain.ErrItemActive
	}
	if len(d.pending) == 0 || d.pending[0] != itemID {
		return nil, domain.ErrItemNotPending
	}
	d.pending = d.pending[1:]

	d.active = &AuctionState{
		TargetID:       itemID,
		CurrentPrice:   0,
		TimerRemaining: d.settings.InitialTimerSeconds,
		TimerRunning:   true,
	}
	return &RoundStartedPayload{
		TargetID:     itemID,
		CurrentPrice: 0,
		NextMinBid:   NextMinBid(0),
		TimerSeconds: d.active.TimerRemaining,
		QueueLength:  len(d.pending),
	}, nil
}

// PlaceBid validates and applies a captain's bid as one atomic
// check-and-apply against the price at the moment of processing. A bid
// that raced a competing bid and no longer clears the minimum against the
// updated price is rejected, so two simultaneous bids can never both be
// accepted at the same level. Rejections leave all state untouched.
func (d *Draft) PlaceBid(actorID, teamID uuid.UUID, amount int) ([]Event, *domain.Bid, error) {
	p := d.participants[actorID]
	if p == nil || p.Role != domain.RoleCaptain {
		return nil, nil, domain.ErrNotCaptain
	}
	team := d.teams[teamID]
	if team == nil {
		return nil, nil, domain.ErrUnknownTeam
	}
	if team.CaptainID != actorID {
		return nil, nil, domain.ErrNotYourTeam
	}
	if d.phase != domain.PhaseAuction {
		return nil, nil, domain.ErrWrongPhase
	}
	if d.active == nil || !d.active.TimerRunning {
		return nil, nil, domain.ErrTimerNotRunning
	}
	if d.slotsLeft(teamID) <= 0 {
		return nil, nil, domain.ErrTeamFull
	}
	if amount < NextMinBid(d.active.CurrentPrice) {
		return nil, nil, domain.ErrBidBelowMinimum
	}
	if amount > team.CurrentPoints {
		return nil, nil, domain.ErrInsufficientPoints
	}

	bid := &domain.Bid{
		ID:        uuid.New(),
		RoomID:    d.roomID,
		TeamID:    teamID,
		TargetID:  d.active.TargetID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	d.active.CurrentPrice = amount
	d.active.LeadingTeamID = &teamID
	d.active.Bids = append(d.active.Bids, bid)
	d.bids = append(d.bids, bid)

	// Late action keeps the item live without re-granting the full
	// window: below the floor the timer comes back up to the floor,
	// above it the fixed extension is added.
	if d.active.TimerRemaining <= d.settings.TimerFloorSeconds {
		d.active.TimerRemaining = d.settings.TimerFloorSeconds
	} else {
		d.active.TimerRemaining += d.settings.TimerExtensionSeconds
	}

	return []Event{{Type: EventBidAccepted, Payload: BidAcceptedPayload{
		TargetID:     bid.TargetID,
		TeamID:       teamID,
		Amount:       amount,
		NextMinBid:   NextMinBid(amount),
		TimerSeconds: d.active.TimerRemaining,
	}}}, bid, nil
}

// Tick decrements the running countdown by one unit. Hitting zero stops
// the timer but does not resolve the item; resolution stays an explicit
// host action so the host can still pass with no winner.
func (d *Draft) Tick() []Event {
	if d.active == nil || !d.active.TimerRunning {
		return nil
	}
	d.active.TimerRemaining--
	if d.active.TimerRemaining <= 0 {
		d.active.TimerRemaining = 0
		d.active.TimerRunning = false
	}
	return []Event{{Type: EventTimerTick, Payload: TimerTickPayload{
		TargetID:  d.active.TargetID,
		Remaining: d.active.TimerRemaining,
		Running:   d.active.TimerRunning,
	}}}
}

// Resolve settles the item on the block once its timer has reached zero.
// With a leading team it is a sale: the winner's balance drops by the
// final price and the member joins the winning team. With no bids the item
// moves to the unsold queue. Either way the block is cleared and, if the
// primary queue is non-empty, the next item starts immediately; once the
// queue is exhausted the unsold resolver runs.
func (d *Draft) Resolve(actorID uuid.UUID) ([]Event, []*domain.AuctionResult, error) {
	if err := d.requireHost(actorID); err != nil {
		return nil, nil, err
	}
	if d.phase != domain.PhaseAuction {
		return nil, nil, domain.ErrWrongPhase
	}
	if d.active == nil {
		return nil, nil, domain.ErrNoActiveItem
	}
	if d.active.TimerRunning || d.active.TimerRemaining > 0 {
		return nil, nil, domain.ErrTimerStillRunning
	}

	target := d.active.TargetID
	var events []Event
	var produced []*domain.AuctionResult

	if d.active.LeadingTeamID != nil {
		winnerID := *d.active.LeadingTeamID
		team := d.teams[winnerID]
		price := d.active.CurrentPrice

		team.CurrentPoints -= price
		d.participants[target].TeamID = &winnerID
		res := d.appendResult(target, winnerID, price, false)
		produced = append(produced, res)

		events = append(events, Event{Type: EventItemSold, Payload: ItemSoldPayload{
			TargetID:        target,
			WinnerTeamID:    winnerID,
			FinalPrice:      price,
			TeamPointsLeft:  team.CurrentPoints,
			ResolutionOrder: res.ResolutionOrder,
		}})
	} else {
		d.unsold = append(d.unsold, target)
		events = append(events, Event{Type: EventItemPassed, Payload: ItemPassedPayload{
			TargetID:    target,
			UnsoldCount: len(d.unsold),
		}})
	}

	d.active = nil

	if len(d.pending) > 0 {
		started, err := d.startItem(d.pending[0])
		if err != nil {
			return nil, nil, err
		}
		events = append(events, Event{Type: EventNextRoundStarted, Payload: started})
		return events, produced, nil
	}

	autoEvents, autoResults, err := d.resolveUnsold()
	if err != nil {
		return nil, nil, err
	}
	events = append(events, autoEvents...)
	produced = append(produced, autoResults...)
	return events, produced, nil
}

// Active returns the live auction state, or nil when nothing is on the
// block. Callers must treat it as read-only.
func (d *Draft) Active() *AuctionState {
	return d.active
}

// PendingCount returns how many members are still waiting in the primary
// queue.
func (d *Draft) PendingCount() int { return len(d.pending) }

// UnsoldCount returns how many passed members await the fallback
// resolver.
func (d *Draft) UnsoldCount() int { return len(d.unsold) }
