package pickups

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PickupsPlugin struct{}

func New() *PickupsPlugin {
	return &PickupsPlugin{}
}

func (p *PickupsPlugin) ID() string { return "pickups" }

func (p *PickupsPlugin) Models() []interface{} {
	return []interface{}{
		&Pickup{},
	}
}

func (p *PickupsPlugin) RegisterRoutes(router fiber.Router, guard fiber.Handler, db *gorm.DB) {
	handler := NewLedgerHandler(NewLedgerService(db))

	router.Post("/pickup", guard, handler.Add)
	router.Get("/pickups", guard, handler.List)
	router.Get("/pickups/:name", guard, handler.ListByName)
}
