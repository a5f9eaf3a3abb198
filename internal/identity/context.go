package identity

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LocalsKey is where the guard stores the verified *jwt.Token.
const LocalsKey = "user"

// GetClaims extracts the verified session claims from Fiber context locals.
func GetClaims(c *fiber.Ctx) (*services.Claims, error) {
	token, ok := c.Locals(LocalsKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(*services.Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// Username returns the caller's username, or "" outside the guard.
func Username(c *fiber.Ctx) string {
	if claims, err := GetClaims(c); err == nil {
		return claims.Username
	}
	return ""
}

// Role returns the caller's role, or "" outside the guard.
func Role(c *fiber.Ctx) string {
	if claims, err := GetClaims(c); err == nil {
		return claims.Role
	}
	return ""
}
