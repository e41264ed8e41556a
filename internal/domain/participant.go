package domain

import (
	"time"

	"github.com/google/uuid"
)

type ParticipantRole string

const (
	RoleHost     ParticipantRole = "host"
	RoleCaptain  ParticipantRole = "captain"
	RoleMember   ParticipantRole = "member"
	RoleObserver ParticipantRole = "observer"
)

type Participant struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RoomID      uuid.UUID       `json:"roomId" gorm:"type:uuid;index;not null"`
	UserID      *uuid.UUID      `json:"userId" gorm:"type:uuid"`
	DisplayName string          `json:"displayName" gorm:"not null"`
	Role        ParticipantRole `json:"role" gorm:"not null;default:'observer'"`

	// TeamID is nil for members until they are won in an auction, and for
	// captains until their team is formed around them.
	TeamID *uuid.UUID `json:"teamId" gorm:"type:uuid"`

	// AuctionOrder is assigned once by the shuffle and immutable thereafter.
	AuctionOrder *int `json:"auctionOrder"`

	// Online is owned by the presence feed, never persisted.
	Online bool `json:"online" gorm:"-"`

	CreatedAt time.Time `json:"createdAt"`
}
