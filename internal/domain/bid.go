package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bid is an immutable fact: once accepted it is never updated or deleted.
// The most recent accepted bid for a target determines the current price
// and the leading team.
type Bid struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RoomID   uuid.UUID `json:"roomId" gorm:"type:uuid;index;not null"`
	TeamID   uuid.UUID `json:"teamId" gorm:"type:uuid;not null"`
	TargetID uuid.UUID `json:"targetId" gorm:"type:uuid;index;not null"`
	Amount   int       `json:"amount" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
}
