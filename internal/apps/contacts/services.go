package contacts

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// GetByName returns (nil, nil) when no contact is registered under name.
func (s *ContactService) GetByName(ctx context.Context, name string) (*Contact, error) {
	var contact Contact
	result := s.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&contact)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &contact, nil
}

// Upsert is a single INSERT ... ON CONFLICT(name) DO UPDATE, so concurrent
// callers never produce a second row for the same name. The existing row
// keeps its id.
func (s *ContactService) Upsert(ctx context.Context, name, phone, email string) error {
	contact := Contact{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"phone", "email", "updated_at"}),
	}).Create(&contact).Error
	if err != nil {
		return fmt.Errorf("%w: %w", services.ErrStorage, err)
	}
	return nil
}
