package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room *DraftRoom

	userID uuid.UUID

	// Set by the hub when the client joins a room.
	participantID uuid.UUID
	role          domain.ParticipantRole
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("failed to unmarshal message: %v", err)
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeJoinRoom:
		var payload JoinRoomPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid join room payload")
			return
		}
		c.hub.joinRoom <- &JoinRoomRequest{
			Client: c,
			RoomID: payload.RoomID,
		}

	case MessageTypePlaceBid:
		var payload PlaceBidPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid bid payload")
			return
		}
		if c.room != nil {
			c.room.placeBid <- &PlaceBidRequest{
				Client: c,
				TeamID: payload.TeamID,
				Amount: payload.Amount,
			}
		}

	case MessageTypeStartIntro:
		c.forward(func(r *DraftRoom) chan *Client { return r.startIntro })
	case MessageTypeNextCaptain:
		c.forward(func(r *DraftRoom) chan *Client { return r.nextCaptain })
	case MessageTypeStartShuffle:
		c.forward(func(r *DraftRoom) chan *Client { return r.startShuffle })
	case MessageTypeRevealNext:
		c.forward(func(r *DraftRoom) chan *Client { return r.revealNext })
	case MessageTypeStartAuction:
		c.forward(func(r *DraftRoom) chan *Client { return r.startAuction })
	case MessageTypeResolveItem:
		c.forward(func(r *DraftRoom) chan *Client { return r.resolveItem })
	case MessageTypeFinishDraft:
		c.forward(func(r *DraftRoom) chan *Client { return r.finishDraft })
	case MessageTypeResetDraft:
		c.forward(func(r *DraftRoom) chan *Client { return r.resetDraft })
	case MessageTypeSyncState:
		c.forward(func(r *DraftRoom) chan *Client { return r.syncState })
	}
}

func (c *Client) forward(pick func(*DraftRoom) chan *Client) {
	if c.room != nil {
		pick(c.room) <- c
	}
}

func (c *Client) sendError(code, message string) {
	msg, _ := NewMessage(MessageTypeError, ErrorPayload{
		Code:    code,
		Message: message,
	})
	data, _ := json.Marshal(msg)
	c.trySend(data)
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal message: %v", err)
		return
	}
	c.trySend(data)
}

// trySend drops the message when the buffer is full or the send channel
// is already closed. The room goroutine writes replies after the hub may
// have unregistered the client, so a raw channel send here could panic or
// block the room loop; a dropped client resyncs via SYNC_STATE.
func (c *Client) trySend(data []byte) {
	defer func() {
		recover()
	}()

	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) Close() {
	close(c.send)
}
