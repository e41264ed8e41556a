package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	gorillaWS "github.com/gorilla/websocket"

	"github.com/yuta/auction-draft-backend/internal/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t        *testing.T
	conn     *gorillaWS.Conn
	messages chan *websocket.Message
	errors   chan error
	done     chan struct{}
	mu       sync.Mutex
}

// NewWSClient creates a new WebSocket test client
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.Message, 100),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				select {
				case <-c.done:
					return
				case c.errors <- err:
				}
				return
			}

			var msg websocket.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				c.errors <- err
				continue
			}

			select {
			case c.messages <- &msg:
			case <-c.done:
				return
			}
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

func (c *WSClient) send(msgType websocket.MessageType, payload interface{}) {
	c.t.Helper()

	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		c.t.Fatalf("failed to build message: %v", err)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("failed to marshal message: %v", err)
	}

	c.mu.Lock()
	err = c.conn.WriteMessage(gorillaWS.TextMessage, data)
	c.mu.Unlock()

	if err != nil {
		c.t.Fatalf("failed to send message: %v", err)
	}
}

// JoinRoom sends JOIN_ROOM for a room id or short code
func (c *WSClient) JoinRoom(roomID string) {
	c.send(websocket.MessageTypeJoinRoom, websocket.JoinRoomPayload{RoomID: roomID})
}

// StartIntro sends START_INTRO
func (c *WSClient) StartIntro() {
	c.send(websocket.MessageTypeStartIntro, struct{}{})
}

// NextCaptain sends NEXT_CAPTAIN
func (c *WSClient) NextCaptain() {
	c.send(websocket.MessageTypeNextCaptain, struct{}{})
}

// StartShuffle sends START_SHUFFLE
func (c *WSClient) StartShuffle() {
	c.send(websocket.MessageTypeStartShuffle, struct{}{})
}

// RevealNext sends REVEAL_NEXT
func (c *WSClient) RevealNext() {
	c.send(websocket.MessageTypeRevealNext, struct{}{})
}

// StartAuction sends START_AUCTION
func (c *WSClient) StartAuction() {
	c.send(websocket.MessageTypeStartAuction, struct{}{})
}

// PlaceBid sends PLACE_BID
func (c *WSClient) PlaceBid(teamID uuid.UUID, amount int) {
	c.send(websocket.MessageTypePlaceBid, websocket.PlaceBidPayload{
		TeamID: teamID,
		Amount: amount,
	})
}

// ResolveItem sends RESOLVE_ITEM
func (c *WSClient) ResolveItem() {
	c.send(websocket.MessageTypeResolveItem, struct{}{})
}

// FinishDraft sends FINISH_DRAFT
func (c *WSClient) FinishDraft() {
	c.send(websocket.MessageTypeFinishDraft, struct{}{})
}

// ResetDraft sends RESET_DRAFT
func (c *WSClient) ResetDraft() {
	c.send(websocket.MessageTypeResetDraft, struct{}{})
}

// SyncState sends SYNC_STATE
func (c *WSClient) SyncState() {
	c.send(websocket.MessageTypeSyncState, struct{}{})
}

// ExpectMessage waits for a message of the specified type
func (c *WSClient) ExpectMessage(msgType websocket.MessageType, timeout time.Duration) *websocket.Message {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg := <-c.messages:
			if msg == nil {
				c.t.Fatalf("connection closed while waiting for %s", msgType)
			}
			if msg.Type == msgType {
				return msg
			}
			// Skip other message types (like TIMER_TICK)
		case err := <-c.errors:
			c.t.Fatalf("error while waiting for %s: %v", msgType, err)
		case <-deadline:
			c.t.Fatalf("timeout waiting for message type %s", msgType)
		}
	}
}

// ExpectStateSync waits for and decodes a STATE_SYNC message
func (c *WSClient) ExpectStateSync(timeout time.Duration) *websocket.StateSyncPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeStateSync, timeout)

	var payload websocket.StateSyncPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode state sync payload: %v", err)
	}

	return &payload
}

// ExpectError waits for and decodes an ERROR message
func (c *WSClient) ExpectError(timeout time.Duration) *websocket.ErrorPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeError, timeout)

	var payload websocket.ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode error payload: %v", err)
	}

	return &payload
}

// DrainMessages discards everything currently buffered
func (c *WSClient) DrainMessages() {
	for {
		select {
		case <-c.messages:
		default:
			return
		}
	}
}

// DecodePayload decodes a message payload into v
func DecodePayload(t *testing.T, msg *websocket.Message, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(msg.Payload, v); err != nil {
		t.Fatalf("failed to decode %s payload: %v", msg.Type, err)
	}
}
