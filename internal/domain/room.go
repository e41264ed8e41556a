package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DraftPhase string

const (
	PhaseWaiting      DraftPhase = "waiting"
	PhaseCaptainIntro DraftPhase = "captain_intro"
	PhaseShuffle      DraftPhase = "shuffle"
	PhaseAuction      DraftPhase = "auction"
	PhaseFinished     DraftPhase = "finished"
)

// RoomSettings is the immutable draft configuration, fixed at room creation.
type RoomSettings struct {
	TotalPoints           int `json:"totalPoints" gorm:"not null;default:1000"`
	TeamCount             int `json:"teamCount" gorm:"not null;default:4"`
	MembersPerTeam        int `json:"membersPerTeam" gorm:"not null;default:4"`
	InitialTimerSeconds   int `json:"initialTimerSeconds" gorm:"not null;default:30"`
	TimerExtensionSeconds int `json:"timerExtensionSeconds" gorm:"not null;default:10"`
	TimerFloorSeconds     int `json:"timerFloorSeconds" gorm:"not null;default:5"`
}

type Room struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title     string    `json:"title" gorm:"not null"`
	ShortCode string    `json:"shortCode" gorm:"uniqueIndex;not null"`
	CreatedBy uuid.UUID `json:"createdBy" gorm:"type:uuid;not null"`

	Settings RoomSettings `json:"settings" gorm:"embedded"`

	Phase         DraftPhase     `json:"phase" gorm:"not null;default:'waiting'"`
	CurrentItemID *uuid.UUID     `json:"currentItemId" gorm:"type:uuid"`
	ShuffleSeed   *int64         `json:"shuffleSeed"`
	MemberOrder   datatypes.JSON `json:"memberOrder" gorm:"type:jsonb;default:'[]'"`

	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`

	// Relations
	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}
