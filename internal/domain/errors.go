package domain

import "errors"

// Validation failures: reported to the initiating caller only, state
// unchanged, never broadcast.
var (
	ErrBidBelowMinimum    = errors.New("bid is below the minimum next bid")
	ErrInsufficientPoints = errors.New("team does not have enough points")
	ErrTimerNotRunning    = errors.New("bidding timer is not running")
	ErrTimerStillRunning  = errors.New("bidding timer has not reached zero")
	ErrWrongPhase         = errors.New("action is not valid in the current phase")
	ErrNotYourTeam        = errors.New("captain can only bid for their own team")
	ErrTeamFull           = errors.New("team has no open member slots")
)

// Authorization failures: the caller's role may not perform the action.
var (
	ErrNotHost    = errors.New("only the host can perform this action")
	ErrNotCaptain = errors.New("only a captain can place bids")
)

// Precondition failures: the requested transition is a no-op with a
// caller-visible reason, not an error terminating the session.
var (
	ErrCaptainsOffline    = errors.New("all captains must be online")
	ErrShuffleNotComplete = errors.New("member order reveal is not complete")
	ErrAuctionNotFinished = errors.New("auction queue is not empty")
	ErrShuffleStarted     = errors.New("shuffle has already started")
	ErrRevealNotStarted   = errors.New("shuffle has not been started")
)

// Internal inconsistencies: unreachable through legitimate use of the
// engine API; hitting one means a caller is out of contract.
var (
	ErrNoActiveItem   = errors.New("no item is currently up for auction")
	ErrItemActive     = errors.New("an item is already up for auction")
	ErrItemNotPending = errors.New("item is not in the pending queue")
	ErrUnknownTeam    = errors.New("team does not belong to this room")
	ErrNoEligibleTeam = errors.New("no team can absorb another member")
)

// IsValidation reports whether err is a bid/phase validation failure that
// should go back to the actor only.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrBidBelowMinimum, ErrInsufficientPoints, ErrTimerNotRunning,
		ErrTimerStillRunning, ErrWrongPhase, ErrNotYourTeam, ErrTeamFull,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// IsPrecondition reports whether err is a precondition miss (a safe no-op).
func IsPrecondition(err error) bool {
	for _, v := range []error{
		ErrCaptainsOffline, ErrShuffleNotComplete,
		ErrAuctionNotFinished, ErrShuffleStarted, ErrRevealNotStarted,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// IsUnauthorized reports whether err is a role check failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrNotHost) || errors.Is(err, ErrNotCaptain)
}
