package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	GetByShortCode(ctx context.Context, code string) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByRoomID(ctx context.Context, roomID uuid.UUID) ([]*domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
}

type ParticipantRepository interface {
	Create(ctx context.Context, p *domain.Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error)
	GetByRoomID(ctx context.Context, roomID uuid.UUID) ([]*domain.Participant, error)
	GetByRoomAndUser(ctx context.Context, roomID, userID uuid.UUID) (*domain.Participant, error)
	Update(ctx context.Context, p *domain.Participant) error
	UpdateAssignments(ctx context.Context, ps []*domain.Participant) error
}

type BidRepository interface {
	Create(ctx context.Context, bid *domain.Bid) error
	GetByRoomID(ctx context.Context, roomID uuid.UUID) ([]*domain.Bid, error)
	DeleteByRoomID(ctx context.Context, roomID uuid.UUID) error
}

type AuctionResultRepository interface {
	Create(ctx context.Context, res *domain.AuctionResult) error
	GetByRoomID(ctx context.Context, roomID uuid.UUID) ([]*domain.AuctionResult, error)
	DeleteByRoomID(ctx context.Context, roomID uuid.UUID) error
}

type Repositories struct {
	User          UserRepository
	Room          RoomRepository
	Team          TeamRepository
	Participant   ParticipantRepository
	Bid           BidRepository
	AuctionResult AuctionResultRepository
}
