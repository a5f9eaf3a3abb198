package contacts

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/apps"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/identity"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	service *ContactService
}

func NewContactHandler(service *ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Get serves autofill lookups. An unknown name is answered with {}.
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	contact, err := h.service.GetByName(c.UserContext(), apps.Param(c, "name"))
	if err != nil {
		slog.Error("contact lookup failed",
			"action", "get_contact",
			"request_id", apps.RequestID(c),
			"username", identity.Username(c),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch contact",
		})
	}
	if contact == nil {
		return c.JSON(fiber.Map{})
	}
	return c.JSON(contact)
}

func (h *ContactHandler) Upsert(c *fiber.Ctx) error {
	var req UpsertContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.service.Upsert(c.UserContext(), req.Name, req.Phone, req.Email); err != nil {
		slog.Error("contact upsert failed",
			"action", "upsert_contact",
			"request_id", apps.RequestID(c),
			"username", identity.Username(c),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save contact",
		})
	}

	metrics.ContactsUpserted.Inc()
	return c.JSON(dto.SuccessResponse{Success: true})
}
