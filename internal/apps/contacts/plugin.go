package contacts

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContactsPlugin struct{}

func New() *ContactsPlugin {
	return &ContactsPlugin{}
}

func (p *ContactsPlugin) ID() string { return "contacts" }

func (p *ContactsPlugin) Models() []interface{} {
	return []interface{}{
		&Contact{},
	}
}

func (p *ContactsPlugin) RegisterRoutes(router fiber.Router, guard fiber.Handler, db *gorm.DB) {
	handler := NewContactHandler(NewContactService(db))

	router.Get("/contact/:name", guard, handler.Get)
	router.Post("/contact", guard, handler.Upsert)
}
