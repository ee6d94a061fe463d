package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/state"
)

type RecoveryHandler struct {
	recovery *state.RecoveryStore
}

func NewRecoveryHandler(recovery *state.RecoveryStore) *RecoveryHandler {
	return &RecoveryHandler{recovery: recovery}
}

func (h *RecoveryHandler) ListRecords(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")
	if start != "" || end != "" {
		if end == "" {
			end = "9999-12-31"
		}
		return c.JSON(h.recovery.RecordsByDateRange(start, end))
	}
	return c.JSON(h.recovery.Records())
}

func (h *RecoveryHandler) CreateRecord(c *fiber.Ctx) error {
	var req domain.RecoveryRecord
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	created, err := h.recovery.AddRecord(c.Context(), &req)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *RecoveryHandler) DeleteRecord(c *fiber.Ctx) error {
	if err := h.recovery.DeleteRecord(c.Context(), c.Params("id")); err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

func (h *RecoveryHandler) Trend(c *fiber.Ctx) error {
	return c.JSON(h.recovery.Trend())
}

func recoveryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotReady):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
