package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

type auctionResultRepository struct {
	db *gorm.DB
}

func NewAuctionResultRepository(db *gorm.DB) *auctionResultRepository {
	return &auctionResultRepository{db: db}
}

func (r *auctionResultRepository) Create(ctx context.Context, result *domain.AuctionResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *auctionResultRepository) GetByRoomID(ctx context.Context, roomID uuid.UUID) ([]*domain.AuctionResult, error) {
	var results []*domain.AuctionResult
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("resolution_order ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *auctionResultRepository) DeleteByRoomID(ctx context.Context, roomID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Delete(&domain.AuctionResult{}).Error
}
