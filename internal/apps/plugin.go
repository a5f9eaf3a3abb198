package apps

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin is a self-contained feature module mounted behind the auth guard.
type Plugin interface {
	// ID returns the unique module identifier used in logs.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts module routes on the given Fiber group, which is
	// already prefixed with /api. Every route must put guard in front of its
	// handler; paths a module does not register stay 404.
	RegisterRoutes(router fiber.Router, guard fiber.Handler, db *gorm.DB)
}

// Param returns the URL-decoded route parameter key.
func Param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// RequestID returns the id assigned by the requestid middleware, if any.
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
