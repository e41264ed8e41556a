package engine

import "github.com/google/uuid"

// EventType identifies a state transition produced by the draft engine.
// Every accepted mutation yields one or more events carrying enough data
// for a client to reconstruct the visible state without re-deriving
// history.
type EventType string

const (
	EventPhaseChanged         EventType = "PHASE_CHANGED"
	EventCaptainIntroAdvanced EventType = "CAPTAIN_INTRO_ADVANCED"
	EventShuffleStarted       EventType = "SHUFFLE_STARTED"
	EventMemberRevealed       EventType = "MEMBER_REVEALED"
	EventShuffleCompleted     EventType = "SHUFFLE_COMPLETED"
	EventAuctionStarted       EventType = "AUCTION_STARTED"
	EventBidAccepted          EventType = "BID_ACCEPTED"
	EventItemSold             EventType = "ITEM_SOLD"
	EventItemPassed           EventType = "ITEM_PASSED"
	EventNextRoundStarted     EventType = "NEXT_ROUND_STARTED"
	EventItemsAutoAssigned    EventType = "ITEMS_AUTO_ASSIGNED"
	EventTimerTick            EventType = "TIMER_TICK"
	EventDraftReset           EventType = "DRAFT_RESET"
)

type Event struct {
	Type    EventType
	Payload interface{}
}

type PhaseChangedPayload struct {
	Phase string `json:"phase"`
}

type CaptainIntroPayload struct {
	CaptainID uuid.UUID `json:"captainId"`
	TeamID    uuid.UUID `json:"teamId"`
	Index     int       `json:"index"`
	Total     int       `json:"total"`
}

type ShuffleStartedPayload struct {
	Seed  int64 `json:"seed"`
	Total int   `json:"total"`
}

type MemberRevealedPayload struct {
	TargetID      uuid.UUID `json:"targetId"`
	AuctionOrder  int       `json:"auctionOrder"`
	RevealedCount int       `json:"revealedCount"`
	Total         int       `json:"total"`
}

type ShuffleCompletedPayload struct {
	Order []uuid.UUID `json:"order"`
}

// RoundStartedPayload announces a new item on the block. Used by both
// AUCTION_STARTED (first item) and NEXT_ROUND_STARTED (subsequent items).
type RoundStartedPayload struct {
	TargetID     uuid.UUID `json:"targetId"`
	CurrentPrice int       `json:"currentPrice"`
	NextMinBid   int       `json:"nextMinBid"`
	TimerSeconds int       `json:"timerSeconds"`
	QueueLength  int       `json:"queueLength"`
}

type BidAcceptedPayload struct {
	TargetID     uuid.UUID `json:"targetId"`
	TeamID       uuid.UUID `json:"teamId"`
	Amount       int       `json:"amount"`
	NextMinBid   int       `json:"nextMinBid"`
	TimerSeconds int       `json:"timerSeconds"`
}

type ItemSoldPayload struct {
	TargetID        uuid.UUID `json:"targetId"`
	WinnerTeamID    uuid.UUID `json:"winnerTeamId"`
	FinalPrice      int       `json:"finalPrice"`
	TeamPointsLeft  int       `json:"teamPointsLeft"`
	ResolutionOrder int       `json:"resolutionOrder"`
}

type ItemPassedPayload struct {
	TargetID    uuid.UUID `json:"targetId"`
	UnsoldCount int       `json:"unsoldCount"`
}

type AutoAssignment struct {
	TargetID uuid.UUID `json:"targetId"`
	TeamID   uuid.UUID `json:"teamId"`
}

type ItemsAutoAssignedPayload struct {
	Assignments []AutoAssignment `json:"assignments"`
}

type TimerTickPayload struct {
	TargetID  uuid.UUID `json:"targetId"`
	Remaining int       `json:"remaining"`
	Running   bool      `json:"running"`
}

type DraftResetPayload struct {
	Phase string `json:"phase"`
}
