package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/domain"
	"github.com/yuta/auction-draft-backend/internal/engine"
	"github.com/yuta/auction-draft-backend/internal/service"
)

// DraftRoom owns one live draft. A single goroutine (Run) serializes every
// command against the engine, owns the one-second auction ticker, and is
// the only writer of the clients and presence maps. Persistence failures
// are logged and never roll the in-memory state back; the engine stays
// authoritative while the room is running.
type DraftRoom struct {
	id        uuid.UUID
	shortCode string

	room         *domain.Room
	teams        []*domain.Team
	participants []*domain.Participant
	draft        *engine.Draft
	drafts       *service.DraftService

	clients map[*Client]bool
	// online counts connections per participant; presence flips on 0<->1.
	online map[uuid.UUID]int

	join      chan *Client
	leave     chan *Client
	broadcast chan *Message

	placeBid chan *PlaceBidRequest

	startIntro   chan *Client
	nextCaptain  chan *Client
	startShuffle chan *Client
	revealNext   chan *Client
	startAuction chan *Client
	resolveItem  chan *Client
	finishDraft  chan *Client
	resetDraft   chan *Client
	syncState    chan *Client

	stop chan struct{}
	done chan struct{}
}

type PlaceBidRequest struct {
	Client *Client
	TeamID uuid.UUID
	Amount int
}

func NewDraftRoom(room *domain.Room, teams []*domain.Team, participants []*domain.Participant, results []*domain.AuctionResult, drafts *service.DraftService) *DraftRoom {
	return &DraftRoom{
		id:           room.ID,
		shortCode:    room.ShortCode,
		room:         room,
		teams:        teams,
		participants: participants,
		draft:        engine.New(room, teams, participants, results),
		drafts:       drafts,
		clients:      make(map[*Client]bool),
		online:       make(map[uuid.UUID]int),
		join:         make(chan *Client),
		leave:        make(chan *Client),
		broadcast:    make(chan *Message),
		placeBid:     make(chan *PlaceBidRequest),
		startIntro:   make(chan *Client),
		nextCaptain:  make(chan *Client),
		startShuffle: make(chan *Client),
		revealNext:   make(chan *Client),
		startAuction: make(chan *Client),
		resolveItem:  make(chan *Client),
		finishDraft:  make(chan *Client),
		resetDraft:   make(chan *Client),
		syncState:    make(chan *Client),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (r *DraftRoom) Run() {
	defer close(r.done)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return

		case <-ticker.C:
			r.handleTick()

		case client := <-r.join:
			r.handleJoin(client)

		case client := <-r.leave:
			r.handleLeave(client)

		case msg := <-r.broadcast:
			r.broadcastMessage(msg)

		case req := <-r.placeBid:
			r.handlePlaceBid(req)

		case client := <-r.startIntro:
			r.handleStartIntro(client)

		case client := <-r.nextCaptain:
			r.handleNextCaptain(client)

		case client := <-r.startShuffle:
			r.handleStartShuffle(client)

		case client := <-r.revealNext:
			r.handleRevealNext(client)

		case client := <-r.startAuction:
			r.handleStartAuction(client)

		case client := <-r.resolveItem:
			r.handleResolveItem(client)

		case client := <-r.finishDraft:
			r.handleFinishDraft(client)

		case client := <-r.resetDraft:
			r.handleResetDraft(client)

		case client := <-r.syncState:
			r.sendStateSync(client)
		}
	}
}

// Stop shuts the room goroutine down. The hub calls it exactly once.
func (r *DraftRoom) Stop() {
	close(r.stop)
}

func (r *DraftRoom) Wait() {
	<-r.done
}

func (r *DraftRoom) handleTick() {
	active := r.draft.Active()
	if active == nil || !active.TimerRunning {
		return
	}
	r.broadcastEvents(r.draft.Tick())
}

func (r *DraftRoom) handleJoin(client *Client) {
	r.clients[client] = true

	r.online[client.participantID]++
	if r.online[client.participantID] == 1 {
		r.draft.SetOnline(client.participantID, true)
		r.broadcastPresence(client.participantID, true)
	}

	r.sendStateSync(client)
}

func (r *DraftRoom) handleLeave(client *Client) {
	if _, ok := r.clients[client]; !ok {
		return
	}
	delete(r.clients, client)

	r.online[client.participantID]--
	if r.online[client.participantID] <= 0 {
		delete(r.online, client.participantID)
		r.draft.SetOnline(client.participantID, false)
		r.broadcastPresence(client.participantID, false)
	}
}

func (r *DraftRoom) handleStartIntro(client *Client) {
	events, err := r.draft.BeginIntro(client.participantID)
	if err != nil {
		client.sendError(errorCode(err), err.Error())
		return
	}
	r.broadcastEvents(events)
	r.persistRoomState()
}

func (r *DraftRoom) handleNextCaptain(client *Client) {
	events, err := r.draft.NextCaptain(client.participantID)
	if err != nil {
		client.sendError(errorCode(err), err.Error())
		return
	}
	r.broadcastEvents(events)
	if hasEvent(events, engine.EventPhaseChanged) {
		r.persistRoomState()
	}
}

func (r *DraftRoom) handleStartShuffle(client *Client) {
	seed := time.Now().UnixNano()

	events, err := r.draft.StartShuffle(client.participantID, seed)
	if err != nil {
		client.sendError(errorCode(err), err.Error())
		return
	}
	r.broadcastEvents(events)

	err = r.drafts.SaveShuffle(context.Background(), r.room, seed, r.draft.ShuffleOrder(), r.members())
	if err != nil {
		log.Printf("room %s: failed to persist shuffle: %v", r.id, err)
	}
}

func (r *DraftRoom) handleRevealNext(client *Client) {
	events, err := r.draft.RevealNext(client.participantID)
	if err != nil {
		client.sendError(errorCode(err), err.Error())
		return
	}
	r.broadcastEvents(events)
}

func (r *DraftRoom) handleStartAuction(client *Client) {
	events, err := r.draft.BeginAuction(client.participantID)
	if err != nil {
		client.sendError(errorCode(err), err.Error())
		return
	}
	r.broadcastEvents(events)

	now := time.Now()
	r.room.StartedAt = &now
	r.persistRoomState()
}

func (r *DraftRoom) handlePlaceBid(req *PlaceBidRequest) {
	events, bid, err := r.draft.PlaceBid(req.Client.participantID, req.TeamID, req.Amount)
	if err != nil {
		req.Client.sendError(errorCode(err), err.Error())
		return
	}
	r.broadcastEvents(events)

	if err := r.drafts.SaveBid(context.Background(), bid); err != nil {
		log.Printf("room %s: failed to persist bid: %v", r.id, err)
	}
}

func (r *DraftRoom) handleResolveItem(client *Client) {
	events, results, err := r.draft.Resolve(client.participantID)
	if err != nil {
		client.sendError(errorCode(err), err.Error())
		return
	}
	r.broadcastEvents(events)

	if len(results) > 0 {
		err := r.drafts.SaveSettlement(context.Background(), results, r.teams, r.members())
		if err != nil {
			log.Printf("room %s: failed to persist settlement: %v", r.id, err)
		}
	}
	r.persistRoomState()
}

func (r *DraftRoom) handleFinishDraft(client *Client) {
	events, err := r.draft.Finish(client.participantID)
	if err != nil {
		client.sendError(errorCode(err), err.Error())
		return
	}
	r.broadcastEvents(events)

	now := time.Now()
	r.room.CompletedAt = &now
	r.persistRoomState()
}

func (r *DraftRoom) handleResetDraft(client *Client) {
	events, err := r.draft.Reset(client.participantID)
	if err != nil {
		client.sendError(errorCode(err), err.Error())
		return
	}
	r.broadcastEvents(events)

	r.room.StartedAt = nil
	r.room.CompletedAt = nil
	err = r.drafts.ResetDraft(context.Background(), r.room, r.teams, r.participants)
	if err != nil {
		log.Printf("room %s: failed to persist reset: %v", r.id, err)
	}

	// Everyone re-syncs against the cleared state.
	for c := range r.clients {
		r.sendStateSync(c)
	}
}

// persistRoomState mirrors the engine's phase and active item onto the
// room row and writes it.
func (r *DraftRoom) persistRoomState() {
	r.room.Phase = r.draft.Phase()
	if active := r.draft.Active(); active != nil {
		id := active.TargetID
		r.room.CurrentItemID = &id
	} else {
		r.room.CurrentItemID = nil
	}

	if err := r.drafts.SaveRoomState(context.Background(), r.room); err != nil {
		log.Printf("room %s: failed to persist room state: %v", r.id, err)
	}
}

func (r *DraftRoom) members() []*domain.Participant {
	var out []*domain.Participant
	for _, p := range r.participants {
		if p.Role == domain.RoleMember {
			out = append(out, p)
		}
	}
	return out
}

func (r *DraftRoom) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		r.broadcastMessage(eventMessage(ev))
	}
}

func (r *DraftRoom) broadcastMessage(msg *Message) {
	for client := range r.clients {
		r.trySend(client, msg)
	}
}

func (r *DraftRoom) trySend(client *Client, msg *Message) {
	data, _ := json.Marshal(msg)
	client.trySend(data)
}

func (r *DraftRoom) broadcastPresence(participantID uuid.UUID, on bool) {
	p := r.draft.Participant(participantID)
	if p == nil {
		return
	}
	msg, _ := NewMessage(MessageTypePresenceUpdate, PresenceUpdatePayload{
		ParticipantID: participantID,
		DisplayName:   p.DisplayName,
		Online:        on,
		OnlineCount:   len(r.online),
	})
	r.broadcastMessage(msg)
}

func (r *DraftRoom) sendStateSync(client *Client) {
	var pid *uuid.UUID
	if client.participantID != uuid.Nil {
		id := client.participantID
		pid = &id
	}

	msg, _ := NewMessage(MessageTypeStateSync, StateSyncPayload{
		Room: RoomInfo{
			ID:        r.id.String(),
			ShortCode: r.shortCode,
			Title:     r.room.Title,
		},
		Draft:             r.draft.Snapshot(),
		YourParticipantID: pid,
		YourRole:          string(client.role),
		OnlineCount:       len(r.online),
	})
	client.Send(msg)
}

func hasEvent(events []engine.Event, t engine.EventType) bool {
	for _, ev := range events {
		if ev.Type == t {
			return true
		}
	}
	return false
}

// errorCode maps engine errors to wire codes. Validation and
// authorization failures go back to the actor only; nothing here is ever
// broadcast.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrBidBelowMinimum):
		return "BID_BELOW_MINIMUM"
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "INSUFFICIENT_POINTS"
	case errors.Is(err, domain.ErrTimerNotRunning):
		return "TIMER_NOT_RUNNING"
	case errors.Is(err, domain.ErrTimerStillRunning):
		return "TIMER_STILL_RUNNING"
	case errors.Is(err, domain.ErrWrongPhase):
		return "WRONG_PHASE"
	case errors.Is(err, domain.ErrNotYourTeam):
		return "NOT_YOUR_TEAM"
	case errors.Is(err, domain.ErrTeamFull):
		return "TEAM_FULL"
	case errors.Is(err, domain.ErrNotHost):
		return "NOT_HOST"
	case errors.Is(err, domain.ErrNotCaptain):
		return "NOT_CAPTAIN"
	case domain.IsPrecondition(err):
		return "PRECONDITION_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}
