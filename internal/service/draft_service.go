package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/domain"
	"github.com/yuta/auction-draft-backend/internal/repository"
)

// DraftService is the persistence side of a live draft. The in-memory
// engine is the source of truth while a room is running; these writes
// record its facts so a restarted server can rebuild the room.
type DraftService struct {
	roomRepo        repository.RoomRepository
	teamRepo        repository.TeamRepository
	participantRepo repository.ParticipantRepository
	bidRepo         repository.BidRepository
	resultRepo      repository.AuctionResultRepository
}

func NewDraftService(
	roomRepo repository.RoomRepository,
	teamRepo repository.TeamRepository,
	participantRepo repository.ParticipantRepository,
	bidRepo repository.BidRepository,
	resultRepo repository.AuctionResultRepository,
) *DraftService {
	return &DraftService{
		roomRepo:        roomRepo,
		teamRepo:        teamRepo,
		participantRepo: participantRepo,
		bidRepo:         bidRepo,
		resultRepo:      resultRepo,
	}
}

// LoadRoom fetches everything the engine needs to rebuild a draft,
// including the stored settlements in resolution order.
func (s *DraftService) LoadRoom(ctx context.Context, roomID uuid.UUID) (*domain.Room, []*domain.Team, []*domain.Participant, []*domain.AuctionResult, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	teams, err := s.teamRepo.GetByRoomID(ctx, roomID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	participants, err := s.participantRepo.GetByRoomID(ctx, roomID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	results, err := s.resultRepo.GetByRoomID(ctx, roomID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return room, teams, participants, results, nil
}

// GetParticipant resolves the caller's seat in a room. Users join through
// the REST surface before connecting; no participant row means no seat.
func (s *DraftService) GetParticipant(ctx context.Context, roomID, userID uuid.UUID) (*domain.Participant, error) {
	return s.participantRepo.GetByRoomAndUser(ctx, roomID, userID)
}

func (s *DraftService) SaveRoomState(ctx context.Context, room *domain.Room) error {
	return s.roomRepo.Update(ctx, room)
}

// SaveShuffle records the seed and the drawn order on the room and the
// per-member auction order that StartShuffle assigned.
func (s *DraftService) SaveShuffle(ctx context.Context, room *domain.Room, seed int64, order []uuid.UUID, members []*domain.Participant) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}
	room.ShuffleSeed = &seed
	room.MemberOrder = raw

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return err
	}
	return s.participantRepo.UpdateAssignments(ctx, members)
}

func (s *DraftService) SaveBid(ctx context.Context, bid *domain.Bid) error {
	return s.bidRepo.Create(ctx, bid)
}

// SaveSettlement persists the results of a resolve together with its side
// effects: team balances and member assignments.
func (s *DraftService) SaveSettlement(ctx context.Context, results []*domain.AuctionResult, teams []*domain.Team, members []*domain.Participant) error {
	for _, res := range results {
		if err := s.resultRepo.Create(ctx, res); err != nil {
			return err
		}
	}
	for _, team := range teams {
		if err := s.teamRepo.Update(ctx, team); err != nil {
			return err
		}
	}
	if len(members) == 0 {
		return nil
	}
	return s.participantRepo.UpdateAssignments(ctx, members)
}

func (s *DraftService) GetBids(ctx context.Context, roomID uuid.UUID) ([]*domain.Bid, error) {
	return s.bidRepo.GetByRoomID(ctx, roomID)
}

func (s *DraftService) GetResults(ctx context.Context, roomID uuid.UUID) ([]*domain.AuctionResult, error) {
	return s.resultRepo.GetByRoomID(ctx, roomID)
}

// ResetDraft clears every recorded fact of the draft and writes back the
// restored room, team, and participant rows.
func (s *DraftService) ResetDraft(ctx context.Context, room *domain.Room, teams []*domain.Team, participants []*domain.Participant) error {
	if err := s.bidRepo.DeleteByRoomID(ctx, room.ID); err != nil {
		return err
	}
	if err := s.resultRepo.DeleteByRoomID(ctx, room.ID); err != nil {
		return err
	}

	room.Phase = domain.PhaseWaiting
	room.CurrentItemID = nil
	room.ShuffleSeed = nil
	room.MemberOrder = []byte("[]")
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return err
	}

	for _, team := range teams {
		if err := s.teamRepo.Update(ctx, team); err != nil {
			return err
		}
	}
	return s.participantRepo.UpdateAssignments(ctx, participants)
}
