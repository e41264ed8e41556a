package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yuta/auction-draft-backend/internal/api/middleware"
	"github.com/yuta/auction-draft-backend/internal/domain"
	"github.com/yuta/auction-draft-backend/internal/service"
)

type RoomHandler struct {
	roomService  *service.RoomService
	draftService *service.DraftService
}

func NewRoomHandler(roomService *service.RoomService, draftService *service.DraftService) *RoomHandler {
	return &RoomHandler{
		roomService:  roomService,
		draftService: draftService,
	}
}

type TeamSpecRequest struct {
	Name         string `json:"name"`
	Color        string `json:"color"`
	CaptainName  string `json:"captainName"`
	CaptainValue int    `json:"captainValue"`
}

type CreateRoomRequest struct {
	Title                 string            `json:"title"`
	TotalPoints           int               `json:"totalPoints"`
	MembersPerTeam        int               `json:"membersPerTeam"`
	InitialTimerSeconds   int               `json:"initialTimerSeconds"`
	TimerExtensionSeconds int               `json:"timerExtensionSeconds"`
	TimerFloorSeconds     int               `json:"timerFloorSeconds"`
	Teams                 []TeamSpecRequest `json:"teams"`
	Members               []string          `json:"members"`
}

type RoomResponse struct {
	ID        string              `json:"id"`
	ShortCode string              `json:"shortCode"`
	Title     string              `json:"title"`
	Phase     string              `json:"phase"`
	Settings  domain.RoomSettings `json:"settings"`
}

type RoomDetailResponse struct {
	Room         RoomResponse            `json:"room"`
	Teams        []*domain.Team          `json:"teams"`
	Participants []*domain.Participant   `json:"participants"`
	Bids         []*domain.Bid           `json:"bids"`
	Results      []*domain.AuctionResult `json:"results"`
}

type JoinRoomResponse struct {
	Room        RoomResponse        `json:"room"`
	Participant *domain.Participant `json:"participant"`
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	teams := make([]service.TeamSpec, len(req.Teams))
	for i, t := range req.Teams {
		teams[i] = service.TeamSpec{
			Name:         t.Name,
			Color:        t.Color,
			CaptainName:  t.CaptainName,
			CaptainValue: t.CaptainValue,
		}
	}

	room, err := h.roomService.CreateRoom(r.Context(), service.CreateRoomInput{
		CreatedBy: userID,
		Title:     req.Title,
		Settings: domain.RoomSettings{
			TotalPoints:           req.TotalPoints,
			MembersPerTeam:        req.MembersPerTeam,
			InitialTimerSeconds:   req.InitialTimerSeconds,
			TimerExtensionSeconds: req.TimerExtensionSeconds,
			TimerFloorSeconds:     req.TimerFloorSeconds,
		},
		Teams:   teams,
		Members: req.Members,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidSettings) || errors.Is(err, service.ErrRoomFull) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create room", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(roomResponse(room))
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	idOrCode := chi.URLParam(r, "idOrCode")

	room, err := h.roomService.GetRoom(r.Context(), idOrCode)
	if err != nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	teams, err := h.roomService.GetTeams(r.Context(), room.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	participants, err := h.roomService.GetParticipants(r.Context(), room.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	bids, err := h.draftService.GetBids(r.Context(), room.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	results, err := h.draftService.GetResults(r.Context(), room.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := RoomDetailResponse{
		Room:         roomResponse(room),
		Teams:        teams,
		Participants: participants,
		Bids:         bids,
		Results:      results,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	idOrCode := chi.URLParam(r, "idOrCode")

	participant, err := h.roomService.JoinRoom(r.Context(), idOrCode, userID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			http.Error(w, "Room not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	room, err := h.roomService.GetRoom(r.Context(), idOrCode)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := JoinRoomResponse{
		Room:        roomResponse(room),
		Participant: participant,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func roomResponse(room *domain.Room) RoomResponse {
	return RoomResponse{
		ID:        room.ID.String(),
		ShortCode: room.ShortCode,
		Title:     room.Title,
		Phase:     string(room.Phase),
		Settings:  room.Settings,
	}
}
