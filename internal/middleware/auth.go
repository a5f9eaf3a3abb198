package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/identity"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// AuthRequired answers 401 when no credential is presented and 403 when the
// presented one does not verify, whatever its scheme. Roles are not checked.
func AuthRequired(tokens *services.TokenIssuer) fiber.Handler {
	verify := jwtware.New(jwtware.Config{
		KeyFunc:    tokens.Keyfunc,
		Claims:     &services.Claims{},
		ContextKey: identity.LocalsKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			metrics.AuthRejections.WithLabelValues("forbidden").Inc()
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Forbidden: invalid token",
			})
		},
	})

	return func(c *fiber.Ctx) error {
		if presentedCredential(c) == "" {
			metrics.AuthRejections.WithLabelValues("unauthenticated").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: missing token",
			})
		}
		return verify(c)
	}
}

// presentedCredential is the second space-separated field of the
// Authorization header, empty when there is none.
func presentedCredential(c *fiber.Ctx) string {
	parts := strings.Split(c.Get(fiber.HeaderAuthorization), " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
