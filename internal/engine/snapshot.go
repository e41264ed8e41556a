package engine

import (
	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

// Snapshot is a full view of the draft for clients joining or
// reconnecting: everything needed to render the current state, including
// a mid-item price/timer picture, without replaying history.
type Snapshot struct {
	RoomID       uuid.UUID           `json:"roomId"`
	Phase        string              `json:"phase"`
	Settings     domain.RoomSettings `json:"settings"`
	Teams        []TeamView          `json:"teams"`
	Participants []ParticipantView   `json:"participants"`
	IntroIndex   int                 `json:"introIndex"`
	IntroTotal   int                 `json:"introTotal"`
	Shuffle      *ShuffleView        `json:"shuffle,omitempty"`
	Auction      *AuctionView        `json:"auction,omitempty"`
	PendingCount int                 `json:"pendingCount"`
	UnsoldCount  int                 `json:"unsoldCount"`
	Results      []ResultView        `json:"results"`
}

type TeamView struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Color         string      `json:"color"`
	CaptainID     uuid.UUID   `json:"captainId"`
	CurrentPoints int         `json:"currentPoints"`
	MemberIDs     []uuid.UUID `json:"memberIds"`
}

type ParticipantView struct {
	ID           uuid.UUID  `json:"id"`
	DisplayName  string     `json:"displayName"`
	Role         string     `json:"role"`
	TeamID       *uuid.UUID `json:"teamId"`
	AuctionOrder *int       `json:"auctionOrder"`
	Online       bool       `json:"online"`
}

type ShuffleView struct {
	Phase         string      `json:"phase"`
	Seed          int64       `json:"seed"`
	RevealedCount int         `json:"revealedCount"`
	Total         int         `json:"total"`
	Revealed      []uuid.UUID `json:"revealed"`
}

type BidView struct {
	TeamID uuid.UUID `json:"teamId"`
	Amount int       `json:"amount"`
	At     int64     `json:"at"`
}

type AuctionView struct {
	TargetID       uuid.UUID  `json:"targetId"`
	CurrentPrice   int        `json:"currentPrice"`
	NextMinBid     int        `json:"nextMinBid"`
	LeadingTeamID  *uuid.UUID `json:"leadingTeamId"`
	TimerRemaining int        `json:"timerRemaining"`
	TimerRunning   bool       `json:"timerRunning"`
	// Bids are most-recent-first for display; storage stays append-only.
	Bids []BidView `json:"bids"`
}

type ResultView struct {
	TargetID        uuid.UUID `json:"targetId"`
	WinnerTeamID    uuid.UUID `json:"winnerTeamId"`
	FinalPrice      int       `json:"finalPrice"`
	ResolutionOrder int       `json:"resolutionOrder"`
	IsAutoAssigned  bool      `json:"isAutoAssignment"`
}

// Snapshot builds the current full view. It never exposes internal slices
// directly.
func (d *Draft) Snapshot() *Snapshot {
	s := &Snapshot{
		RoomID:       d.roomID,
		Phase:        string(d.phase),
		Settings:     d.settings,
		IntroIndex:   d.introCursor,
		IntroTotal:   len(d.teamOrder),
		PendingCount: len(d.pending),
		UnsoldCount:  len(d.unsold),
	}

	for _, teamID := range d.teamOrder {
		t := d.teams[teamID]
		view := TeamView{
			ID:            t.ID,
			Name:          t.Name,
			Color:         t.Color,
			CaptainID:     t.CaptainID,
			CurrentPoints: t.CurrentPoints,
		}
		for _, id := range d.memberIDs {
			p := d.participants[id]
			if p.TeamID != nil && *p.TeamID == teamID {
				view.MemberIDs = append(view.MemberIDs, id)
			}
		}
		s.Teams = append(s.Teams, view)
	}

	for _, id := range d.participantOrder {
		p := d.participants[id]
		s.Participants = append(s.Participants, ParticipantView{
			ID:           p.ID,
			DisplayName:  p.DisplayName,
			Role:         string(p.Role),
			TeamID:       p.TeamID,
			AuctionOrder: p.AuctionOrder,
			Online:       p.Online,
		})
	}

	if d.shuffle != nil {
		s.Shuffle = &ShuffleView{
			Phase:         string(d.shuffle.Phase),
			Seed:          d.shuffle.Seed,
			RevealedCount: d.shuffle.RevealedCount,
			Total:         d.shuffle.Total,
			Revealed:      append([]uuid.UUID(nil), d.shuffle.Order[:d.shuffle.RevealedCount]...),
		}
	}

	if d.active != nil {
		view := &AuctionView{
			TargetID:       d.active.TargetID,
			CurrentPrice:   d.active.CurrentPrice,
			NextMinBid:     NextMinBid(d.active.CurrentPrice),
			LeadingTeamID:  d.active.LeadingTeamID,
			TimerRemaining: d.active.TimerRemaining,
			TimerRunning:   d.active.TimerRunning,
		}
		for i := len(d.active.Bids) - 1; i >= 0; i-- {
			b := d.active.Bids[i]
			view.Bids = append(view.Bids, BidView{
				TeamID: b.TeamID,
				Amount: b.Amount,
				At:     b.CreatedAt.UnixMilli(),
			})
		}
		s.Auction = view
	}

	for _, r := range d.results {
		s.Results = append(s.Results, ResultView{
			TargetID:        r.TargetID,
			WinnerTeamID:    r.WinnerTeamID,
			FinalPrice:      r.FinalPrice,
			ResolutionOrder: r.ResolutionOrder,
			IsAutoAssigned:  r.IsAutoAssigned,
		})
	}

	return s
}
