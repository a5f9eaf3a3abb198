package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/identity"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/services"
	"github.com/gofiber/fiber/v2"
)

const invalidCredentials = "Invalid credentials"

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login answers every credential problem, including an unreadable body,
// with the same 401 so callers cannot probe which usernames exist.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: invalidCredentials,
		})
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: invalidCredentials,
			})
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		slog.Error("login failed", "action", "login", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return c.JSON(resp)
}

// CreateUser is admin-only; the route is wrapped in AdminRequired.
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.authService.CreateUser(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUser):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Username already exists",
			})
		}
		slog.Error("user creation failed",
			"action", "create_user",
			"username", identity.Username(c),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create user",
		})
	}

	slog.Info("user created", "action", "create_user", "created", user.Username, "by", identity.Username(c))
	return c.Status(fiber.StatusCreated).JSON(dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := identity.GetClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	return c.JSON(dto.MeResponse{Username: claims.Username, Role: claims.Role})
}
