package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuctionResult records the settlement of one target: produced exactly once
// per target, never mutated. IsAutoAssignment distinguishes a sale from a
// fallback placement of an unsold target.
type AuctionResult struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RoomID          uuid.UUID `json:"roomId" gorm:"type:uuid;index;not null"`
	TargetID        uuid.UUID `json:"targetId" gorm:"type:uuid;not null"`
	WinnerTeamID    uuid.UUID `json:"winnerTeamId" gorm:"type:uuid;not null"`
	FinalPrice      int       `json:"finalPrice" gorm:"not null"`
	ResolutionOrder int       `json:"resolutionOrder" gorm:"not null"`
	IsAutoAssigned  bool      `json:"isAutoAssignment" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"createdAt"`
}
