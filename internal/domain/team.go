package domain

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RoomID uuid.UUID `json:"roomId" gorm:"type:uuid;index;not null"`
	Name   string    `json:"name" gorm:"not null"`
	Color  string    `json:"color" gorm:"not null"`

	CaptainID uuid.UUID `json:"captainId" gorm:"type:uuid;not null"`

	// CaptainValue is subtracted from the team's pool at formation, so
	// CurrentPoints always equals TotalPoints - CaptainValue - sum(won bids).
	CaptainValue  int `json:"captainValue" gorm:"not null;default:0"`
	CurrentPoints int `json:"currentPoints" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Captain *Participant `json:"captain,omitempty" gorm:"foreignKey:CaptainID"`
}
