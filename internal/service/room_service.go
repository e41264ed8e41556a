package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/domain"
	"github.com/yuta/auction-draft-backend/internal/repository"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidSettings = errors.New("invalid room settings")
	ErrRoomFull        = errors.New("room roster exceeds team capacity")
)

type RoomService struct {
	roomRepo        repository.RoomRepository
	teamRepo        repository.TeamRepository
	participantRepo repository.ParticipantRepository
	userRepo        repository.UserRepository
	defaults        domain.RoomSettings
}

func NewRoomService(
	roomRepo repository.RoomRepository,
	teamRepo repository.TeamRepository,
	participantRepo repository.ParticipantRepository,
	userRepo repository.UserRepository,
	defaults domain.RoomSettings,
) *RoomService {
	return &RoomService{
		roomRepo:        roomRepo,
		teamRepo:        teamRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		defaults:        defaults,
	}
}

// TeamSpec describes one team on the creation form. Each team starts with
// its captain already seated, priced at CaptainValue.
type TeamSpec struct {
	Name         string
	Color        string
	CaptainName  string
	CaptainValue int
}

type CreateRoomInput struct {
	CreatedBy uuid.UUID
	Title     string
	Settings  domain.RoomSettings
	Teams     []TeamSpec
	Members   []string
}

// CreateRoom persists the room together with its full roster: one host
// participant for the creator, a captain participant and team per TeamSpec,
// and an unassigned member participant per name. Member names are claimed
// later through JoinRoom.
func (s *RoomService) CreateRoom(ctx context.Context, input CreateRoomInput) (*domain.Room, error) {
	settings := s.applySettingsDefaults(input.Settings)
	settings.TeamCount = len(input.Teams)

	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	if len(input.Members) > settings.TeamCount*settings.MembersPerTeam {
		return nil, ErrRoomFull
	}
	for _, spec := range input.Teams {
		if spec.CaptainValue < 0 || spec.CaptainValue > settings.TotalPoints {
			return nil, ErrInvalidSettings
		}
	}

	room := &domain.Room{
		ID:        uuid.New(),
		Title:     input.Title,
		ShortCode: generateShortCode(),
		CreatedBy: input.CreatedBy,
		Settings:  settings,
		Phase:     domain.PhaseWaiting,
		CreatedAt: time.Now(),
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	creator, err := s.userRepo.GetByID(ctx, input.CreatedBy)
	if err != nil {
		return nil, err
	}

	host := &domain.Participant{
		ID:          uuid.New(),
		RoomID:      room.ID,
		UserID:      &creator.ID,
		DisplayName: creator.DisplayName,
		Role:        domain.RoleHost,
		CreatedAt:   time.Now(),
	}
	if err := s.participantRepo.Create(ctx, host); err != nil {
		return nil, err
	}

	for _, spec := range input.Teams {
		teamID := uuid.New()

		captain := &domain.Participant{
			ID:          uuid.New(),
			RoomID:      room.ID,
			DisplayName: spec.CaptainName,
			Role:        domain.RoleCaptain,
			TeamID:      &teamID,
			CreatedAt:   time.Now(),
		}
		if err := s.participantRepo.Create(ctx, captain); err != nil {
			return nil, err
		}

		team := &domain.Team{
			ID:            teamID,
			RoomID:        room.ID,
			Name:          spec.Name,
			Color:         spec.Color,
			CaptainID:     captain.ID,
			CaptainValue:  spec.CaptainValue,
			CurrentPoints: settings.TotalPoints - spec.CaptainValue,
			CreatedAt:     time.Now(),
		}
		if err := s.teamRepo.Create(ctx, team); err != nil {
			return nil, err
		}
	}

	for _, name := range input.Members {
		member := &domain.Participant{
			ID:          uuid.New(),
			RoomID:      room.ID,
			DisplayName: name,
			Role:        domain.RoleMember,
			CreatedAt:   time.Now(),
		}
		if err := s.participantRepo.Create(ctx, member); err != nil {
			return nil, err
		}
	}

	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, idOrCode string) (*domain.Room, error) {
	// Try UUID first
	if id, err := uuid.Parse(idOrCode); err == nil {
		return s.roomRepo.GetByID(ctx, id)
	}

	// Try short code
	return s.roomRepo.GetByShortCode(ctx, strings.ToUpper(idOrCode))
}

func (s *RoomService) GetTeams(ctx context.Context, roomID uuid.UUID) ([]*domain.Team, error) {
	return s.teamRepo.GetByRoomID(ctx, roomID)
}

func (s *RoomService) GetParticipants(ctx context.Context, roomID uuid.UUID) ([]*domain.Participant, error) {
	return s.participantRepo.GetByRoomID(ctx, roomID)
}

// JoinRoom attaches a signed-in user to the room. A roster slot whose name
// matches the user's display name is claimed; otherwise the user joins as
// an observer. Rejoining is idempotent.
func (s *RoomService) JoinRoom(ctx context.Context, idOrCode string, userID uuid.UUID) (*domain.Participant, error) {
	room, err := s.GetRoom(ctx, idOrCode)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	if existing, err := s.participantRepo.GetByRoomAndUser(ctx, room.ID, userID); err == nil {
		return existing, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.GetByRoomID(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range participants {
		if p.UserID == nil && p.DisplayName == user.DisplayName {
			p.UserID = &user.ID
			if err := s.participantRepo.Update(ctx, p); err != nil {
				return nil, err
			}
			return p, nil
		}
	}

	observer := &domain.Participant{
		ID:          uuid.New(),
		RoomID:      room.ID,
		UserID:      &user.ID,
		DisplayName: user.DisplayName,
		Role:        domain.RoleObserver,
		CreatedAt:   time.Now(),
	}
	if err := s.participantRepo.Create(ctx, observer); err != nil {
		return nil, err
	}
	return observer, nil
}

// applySettingsDefaults fills unset fields from the configured defaults.
// A zero field means the creation form left it out.
func (s *RoomService) applySettingsDefaults(in domain.RoomSettings) domain.RoomSettings {
	if in.TotalPoints == 0 {
		in.TotalPoints = s.defaults.TotalPoints
	}
	if in.MembersPerTeam == 0 {
		in.MembersPerTeam = s.defaults.MembersPerTeam
	}
	if in.InitialTimerSeconds == 0 {
		in.InitialTimerSeconds = s.defaults.InitialTimerSeconds
	}
	if in.TimerExtensionSeconds == 0 {
		in.TimerExtensionSeconds = s.defaults.TimerExtensionSeconds
	}
	if in.TimerFloorSeconds == 0 {
		in.TimerFloorSeconds = s.defaults.TimerFloorSeconds
	}
	return in
}

func validateSettings(s domain.RoomSettings) error {
	if s.TeamCount < 2 || s.MembersPerTeam < 1 {
		return ErrInvalidSettings
	}
	if s.TotalPoints < 1 {
		return ErrInvalidSettings
	}
	if s.InitialTimerSeconds < 1 || s.TimerExtensionSeconds < 0 || s.TimerFloorSeconds < 0 {
		return ErrInvalidSettings
	}
	if s.TimerFloorSeconds > s.InitialTimerSeconds {
		return ErrInvalidSettings
	}
	return nil
}

func generateShortCode() string {
	bytes := make([]byte, 3)
	rand.Read(bytes)
	return strings.ToUpper(hex.EncodeToString(bytes))
}
