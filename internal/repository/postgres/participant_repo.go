package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *participantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *participantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	var p domain.Participant
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepository) GetByRoomID(ctx context.Context, roomID uuid.UUID) ([]*domain.Participant, error) {
	var ps []*domain.Participant
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *participantRepository) GetByRoomAndUser(ctx context.Context, roomID, userID uuid.UUID) (*domain.Participant, error) {
	var p domain.Participant
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepository) Update(ctx context.Context, p *domain.Participant) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// UpdateAssignments writes team/order assignments for a batch of
// participants in one transaction, used after shuffle and reset.
func (r *participantRepository) UpdateAssignments(ctx context.Context, ps []*domain.Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range ps {
			err := tx.Model(&domain.Participant{}).
				Where("id = ?", p.ID).
				Select("team_id", "auction_order").
				Updates(map[string]interface{}{
					"team_id":       p.TeamID,
					"auction_order": p.AuctionOrder,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
