package engine

import (
	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

// The draft moves through a strict forward order:
// WAITING -> CAPTAIN_INTRO -> SHUFFLE -> AUCTION -> FINISHED.
// No skipping, no going back (outside of a full host reset). Every
// transition is host-only; each has its own precondition, and a missed
// precondition is a caller-visible no-op rather than a session error.

// BeginIntro moves the room from WAITING to CAPTAIN_INTRO. All captains
// must be online; anyone missing blocks the transition.
func (d *Draft) BeginIntro(actorID uuid.UUID) ([]Event, error) {
	if err := d.requireHost(actorID); err != nil {
		return nil, err
	}
	if d.phase != domain.PhaseWaiting {
		return nil, domain.ErrWrongPhase
	}
	for _, teamID := range d.teamOrder {
		c := d.captainByTeam(teamID)
		if c == nil || !c.Online {
			return nil, domain.ErrCaptainsOffline
		}
	}

	d.phase = domain.PhaseCaptainIntro
	d.introCursor = 0
	return []Event{{Type: EventPhaseChanged, Payload: PhaseChangedPayload{
		Phase: string(d.phase),
	}}}, nil
}

// NextCaptain introduces the next captain. Advancing past the last captain
// transitions the room to SHUFFLE instead of producing another intro step.
func (d *Draft) NextCaptain(actorID uuid.UUID) ([]Event, error) {
	if err := d.requireHost(actorID); err != nil {
		return nil, err
	}
	if d.phase != domain.PhaseCaptainIntro {
		return nil, domain.ErrWrongPhase
	}

	if d.introCursor >= len(d.teamOrder) {
		d.phase = domain.PhaseShuffle
		d.shuffle = newShuffleState(len(d.memberIDs))
		return []Event{{Type: EventPhaseChanged, Payload: PhaseChangedPayload{
			Phase: string(d.phase),
		}}}, nil
	}

	teamID := d.teamOrder[d.introCursor]
	captain := d.captainByTeam(teamID)
	ev := Event{Type: EventCaptainIntroAdvanced, Payload: CaptainIntroPayload{
		CaptainID: captain.ID,
		TeamID:    teamID,
		Index:     d.introCursor,
		Total:     len(d.teamOrder),
	}}
	d.introCursor++
	return []Event{ev}, nil
}

// Finish moves the room from AUCTION to FINISHED. The primary queue, the
// unsold queue and the block must all be empty: every member has a result.
func (d *Draft) Finish(actorID uuid.UUID) ([]Event, error) {
	if err := d.requireHost(actorID); err != nil {
		return nil, err
	}
	if d.phase != domain.PhaseAuction {
		return nil, domain.ErrWrongPhase
	}
	if d.active != nil || len(d.pending) > 0 || len(d.unsold) > 0 {
		return nil, domain.ErrAuctionNotFinished
	}
	for _, id := range d.memberIDs {
		if !d.resolved[id] {
			return nil, domain.ErrAuctionNotFinished
		}
	}

	d.phase = domain.PhaseFinished
	return []Event{{Type: EventPhaseChanged, Payload: PhaseChangedPayload{
		Phase: string(d.phase),
	}}}, nil
}
