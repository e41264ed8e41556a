package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yuta/auction-draft-backend/internal/domain"
	"github.com/yuta/auction-draft-backend/internal/repository"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Room{},
		&domain.Team{},
		&domain.Participant{},
		&domain.Bid{},
		&domain.AuctionResult{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:          NewUserRepository(db),
		Room:          NewRoomRepository(db),
		Team:          NewTeamRepository(db),
		Participant:   NewParticipantRepository(db),
		Bid:           NewBidRepository(db),
		AuctionResult: NewAuctionResultRepository(db),
	}
}
