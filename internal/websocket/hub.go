package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/yuta/auction-draft-backend/internal/service"
)

// Hub tracks connected clients and the set of live rooms. Rooms are
// loaded from the database on first join and kept running until the hub
// shuts down.
type Hub struct {
	rooms      map[string]*DraftRoom
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	joinRoom   chan *JoinRoomRequest
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool

	roomSvc *service.RoomService
	drafts  *service.DraftService

	mu sync.RWMutex
}

type JoinRoomRequest struct {
	Client *Client
	RoomID string
}

func NewHub(roomSvc *service.RoomService, drafts *service.DraftService) *Hub {
	return &Hub{
		rooms:      make(map[string]*DraftRoom),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		joinRoom:   make(chan *JoinRoomRequest),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		roomSvc:    roomSvc,
		drafts:     drafts,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true

			uniqueRooms := make(map[*DraftRoom]bool)
			for _, room := range h.rooms {
				uniqueRooms[room] = true
			}
			for room := range uniqueRooms {
				room.Stop()
			}
			h.mu.Unlock()

			// Wait for all rooms to actually exit (without holding the lock)
			for room := range uniqueRooms {
				room.Wait()
			}

			h.mu.Lock()
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.rooms = make(map[string]*DraftRoom)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					client.Close()

					if client.room != nil {
						client.room.leave <- client
					}
				}
			}
			h.mu.Unlock()

		case req := <-h.joinRoom:
			h.mu.RLock()
			stopped := h.stopped
			h.mu.RUnlock()
			if !stopped {
				h.handleJoinRoom(req)
			}
		}
	}
}

// Stop gracefully shuts down the hub and all its rooms. It blocks until
// every room goroutine has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) handleJoinRoom(req *JoinRoomRequest) {
	ctx := context.Background()

	room, err := h.ensureRoom(ctx, req.RoomID)
	if err != nil {
		req.Client.sendError("ROOM_NOT_FOUND", "Room does not exist")
		return
	}

	participant, err := h.drafts.GetParticipant(ctx, room.id, req.Client.userID)
	if err != nil {
		req.Client.sendError("NOT_IN_ROOM", "Join the room before connecting")
		return
	}

	// Leave current room if in one
	if req.Client.room != nil {
		req.Client.room.leave <- req.Client
	}

	req.Client.participantID = participant.ID
	req.Client.role = participant.Role
	req.Client.room = room
	room.join <- req.Client
}

// ensureRoom returns the live room for an id or short code, loading it
// from the database on first use.
func (h *Hub) ensureRoom(ctx context.Context, idOrCode string) (*DraftRoom, error) {
	h.mu.RLock()
	room, ok := h.rooms[idOrCode]
	h.mu.RUnlock()
	if ok {
		return room, nil
	}

	dbRoom, err := h.roomSvc.GetRoom(ctx, idOrCode)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Another join may have loaded it while we hit the database.
	if room, ok := h.rooms[dbRoom.ID.String()]; ok {
		return room, nil
	}

	roomRow, teams, participants, results, err := h.drafts.LoadRoom(ctx, dbRoom.ID)
	if err != nil {
		return nil, err
	}

	room = NewDraftRoom(roomRow, teams, participants, results, h.drafts)
	h.rooms[roomRow.ID.String()] = room
	h.rooms[roomRow.ShortCode] = room

	go room.Run()

	log.Printf("Loaded room: %s (code: %s)", roomRow.ID, roomRow.ShortCode)
	return room, nil
}

func (h *Hub) GetRoom(idOrCode string) *DraftRoom {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[idOrCode]
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister safely unregisters a client, handling the case where the hub
// may be stopped.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()

	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	default:
		// Hub stopped between check and send - that's ok
	}
}
