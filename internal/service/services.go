package service

import (
	"github.com/yuta/auction-draft-backend/internal/config"
	"github.com/yuta/auction-draft-backend/internal/repository"
)

type Services struct {
	Auth  *AuthService
	Room  *RoomService
	Draft *DraftService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:  NewAuthService(repos.User, cfg),
		Room:  NewRoomService(repos.Room, repos.Team, repos.Participant, repos.User, cfg.DefaultRoomSettings),
		Draft: NewDraftService(repos.Room, repos.Team, repos.Participant, repos.Bid, repos.AuctionResult),
	}
}
