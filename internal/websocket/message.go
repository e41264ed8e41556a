package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/engine"
)

type MessageType string

const (
	// Client to Server
	MessageTypeJoinRoom     MessageType = "JOIN_ROOM"
	MessageTypeStartIntro   MessageType = "START_INTRO"
	MessageTypeNextCaptain  MessageType = "NEXT_CAPTAIN"
	MessageTypeStartShuffle MessageType = "START_SHUFFLE"
	MessageTypeRevealNext   MessageType = "REVEAL_NEXT"
	MessageTypeStartAuction MessageType = "START_AUCTION"
	MessageTypePlaceBid     MessageType = "PLACE_BID"
	MessageTypeResolveItem  MessageType = "RESOLVE_ITEM"
	MessageTypeFinishDraft  MessageType = "FINISH_DRAFT"
	MessageTypeResetDraft   MessageType = "RESET_DRAFT"
	MessageTypeSyncState    MessageType = "SYNC_STATE"

	// Server to Client
	MessageTypeStateSync      MessageType = "STATE_SYNC"
	MessageTypePresenceUpdate MessageType = "PRESENCE_UPDATE"
	MessageTypeError          MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// eventMessage wraps an engine event in the wire envelope. Engine event
// type names are the wire message types.
func eventMessage(ev engine.Event) *Message {
	msg, _ := NewMessage(MessageType(ev.Type), ev.Payload)
	return msg
}

// Client to Server payloads

type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

type PlaceBidPayload struct {
	TeamID uuid.UUID `json:"teamId"`
	Amount int       `json:"amount"`
}

// Server to Client payloads

type StateSyncPayload struct {
	Room              RoomInfo         `json:"room"`
	Draft             *engine.Snapshot `json:"draft"`
	YourParticipantID *uuid.UUID       `json:"yourParticipantId"`
	YourRole          string           `json:"yourRole"`
	OnlineCount       int              `json:"onlineCount"`
}

type RoomInfo struct {
	ID        string `json:"id"`
	ShortCode string `json:"shortCode"`
	Title     string `json:"title"`
}

type PresenceUpdatePayload struct {
	ParticipantID uuid.UUID `json:"participantId"`
	DisplayName   string    `json:"displayName"`
	Online        bool      `json:"online"`
	OnlineCount   int       `json:"onlineCount"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
