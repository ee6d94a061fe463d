package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/middleware"
	"github.com/strideworks/trackside/internal/service"
)

type RosterHandler struct {
	rosterService *service.RosterService
}

func NewRosterHandler(rosterService *service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// CoachCode returns the caller's invite code, generating one on first
// request.
func (h *RosterHandler) CoachCode(c *fiber.Ctx) error {
	coachID := middleware.GetProfileID(c)
	code, err := h.rosterService.EnsureCoachCode(c.Context(), coachID)
	if err != nil {
		return rosterError(c, err)
	}
	return c.JSON(fiber.Map{"coach_code": code})
}

// LinkAthlete connects the calling athlete to the coach owning the
// submitted invite code.
func (h *RosterHandler) LinkAthlete(c *fiber.Ctx) error {
	var req struct {
		CoachCode string `json:"coach_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.CoachCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "coach_code is required"})
	}

	athleteID := middleware.GetProfileID(c)
	rel, err := h.rosterService.LinkAthlete(c.Context(), athleteID, req.CoachCode)
	if err != nil {
		return rosterError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rel)
}

// Athletes lists the athletes linked to the calling coach.
func (h *RosterHandler) Athletes(c *fiber.Ctx) error {
	coachID := middleware.GetProfileID(c)
	entries, err := h.rosterService.CoachAthletes(c.Context(), coachID)
	if err != nil {
		return rosterError(c, err)
	}
	return c.JSON(entries)
}

// Coaches lists the coaches the calling athlete is linked to.
func (h *RosterHandler) Coaches(c *fiber.Ctx) error {
	athleteID := middleware.GetProfileID(c)
	entries, err := h.rosterService.AthleteCoaches(c.Context(), athleteID)
	if err != nil {
		return rosterError(c, err)
	}
	return c.JSON(entries)
}

func rosterError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrRelationshipExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
