package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/models"
	"gorm.io/gorm"
)

// UserStore persists login identities.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername returns (nil, nil) when no such user exists.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	result := s.db.WithContext(ctx).Where("username = ?", username).Limit(1).Find(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, username, passwordHash, role string) (*models.User, error) {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user %q %w", username, ErrConflict)
		}
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return &user, nil
}
