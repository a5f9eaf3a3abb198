package pickups

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/services"
	"gorm.io/gorm"
)

// LedgerService only ever inserts and reads pickups.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// Append always inserts a new row; there is no natural key to conflict on.
func (s *LedgerService) Append(ctx context.Context, name, items, datetime, signature string) (*Pickup, error) {
	pickup := Pickup{
		Name:      name,
		Items:     items,
		Datetime:  datetime,
		Signature: signature,
	}
	if err := s.db.WithContext(ctx).Create(&pickup).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrStorage, err)
	}
	return &pickup, nil
}

// ListAll returns every pickup, newest datetime first.
func (s *LedgerService) ListAll(ctx context.Context) ([]Pickup, error) {
	return s.list(s.db.WithContext(ctx))
}

// ListByName returns pickups whose name matches exactly, newest datetime first.
func (s *LedgerService) ListByName(ctx context.Context, name string) ([]Pickup, error) {
	return s.list(s.db.WithContext(ctx).Where("name = ?", name))
}

func (s *LedgerService) list(q *gorm.DB) ([]Pickup, error) {
	pickups := make([]Pickup, 0)
	if err := q.Scopes(newestFirst).Find(&pickups).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrStorage, err)
	}
	return pickups, nil
}

// newestFirst orders by the datetime text, then by id for equal datetimes.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("datetime DESC").Order("id DESC")
}
