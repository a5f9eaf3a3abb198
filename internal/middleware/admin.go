package middleware

import (
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/identity"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/models"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired must run after AuthRequired. It only lets through tokens
// whose role claim is "admin".
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := identity.GetClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if claims.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
