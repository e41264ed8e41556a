package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

type bidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *bidRepository {
	return &bidRepository{db: db}
}

func (r *bidRepository) Create(ctx context.Context, bid *domain.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *bidRepository) GetByRoomID(ctx context.Context, roomID uuid.UUID) ([]*domain.Bid, error) {
	var bids []*domain.Bid
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *bidRepository) DeleteByRoomID(ctx context.Context, roomID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Delete(&domain.Bid{}).Error
}
