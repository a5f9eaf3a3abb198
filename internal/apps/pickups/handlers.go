package pickups

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/apps"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/identity"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

type LedgerHandler struct {
	service *LedgerService
}

func NewLedgerHandler(service *LedgerService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

func (h *LedgerHandler) Add(c *fiber.Ctx) error {
	var req AddPickupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	pickup, err := h.service.Append(c.UserContext(), req.Name, string(req.Items), req.Datetime, string(req.Signature))
	if err != nil {
		slog.Error("pickup append failed",
			"action", "add_pickup",
			"request_id", apps.RequestID(c),
			"username", identity.Username(c),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to record pickup",
		})
	}

	metrics.PickupsAppended.Inc()
	slog.Info("pickup recorded",
		"action", "add_pickup",
		"pickup_id", pickup.ID,
		"username", identity.Username(c),
	)
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *LedgerHandler) List(c *fiber.Ctx) error {
	pickups, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return h.listFailed(c, err)
	}
	return c.JSON(pickups)
}

func (h *LedgerHandler) ListByName(c *fiber.Ctx) error {
	pickups, err := h.service.ListByName(c.UserContext(), apps.Param(c, "name"))
	if err != nil {
		return h.listFailed(c, err)
	}
	return c.JSON(pickups)
}

func (h *LedgerHandler) listFailed(c *fiber.Ctx, err error) error {
	slog.Error("pickup listing failed",
		"action", "list_pickups",
		"request_id", apps.RequestID(c),
		"username", identity.Username(c),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to fetch pickups",
	})
}
