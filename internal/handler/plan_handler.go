package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/middleware"
	"github.com/strideworks/trackside/internal/service"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func (h *PlanHandler) CreatePlan(c *fiber.Ctx) error {
	var req domain.TrainingPlan
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	actorID := middleware.GetProfileID(c)
	role := domain.Role(middleware.GetRole(c))
	created, err := h.planService.CreatePlan(c.Context(), &req, actorID, role)
	if err != nil {
		return planError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PlanHandler) ListPlans(c *fiber.Ctx) error {
	actorID := middleware.GetProfileID(c)
	role := domain.Role(middleware.GetRole(c))
	plans, err := h.planService.ListPlans(c.Context(), actorID, role)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(plans)
}

func (h *PlanHandler) UpdatePlan(c *fiber.Ctx) error {
	var req domain.TrainingPlan
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.ID = c.Params("id")
	if err := h.planService.UpdatePlan(c.Context(), &req); err != nil {
		return planError(c, err)
	}
	return c.JSON(req)
}

func (h *PlanHandler) CreateSession(c *fiber.Ctx) error {
	var req domain.TrainingSession
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.PlanID = c.Params("id")
	created, err := h.planService.CreateSession(c.Context(), &req)
	if err != nil {
		return planError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PlanHandler) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.planService.ListSessions(c.Context(), c.Params("id"))
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(sessions)
}

func (h *PlanHandler) CompleteSession(c *fiber.Ctx) error {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.planService.CompleteSession(c.Context(), c.Params("sessionID"), req.Notes); err != nil {
		return planError(c, err)
	}
	return c.JSON(fiber.Map{"message": "completed"})
}

func (h *PlanHandler) AddSessionExercise(c *fiber.Ctx) error {
	var req domain.SessionExercise
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.SessionID = c.Params("sessionID")
	created, err := h.planService.AddSessionExercise(c.Context(), &req)
	if err != nil {
		return planError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PlanHandler) ListSessionExercises(c *fiber.Ctx) error {
	exercises, err := h.planService.ListSessionExercises(c.Context(), c.Params("sessionID"))
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(exercises)
}

func (h *PlanHandler) CompleteExercise(c *fiber.Ctx) error {
	if err := h.planService.CompleteExercise(c.Context(), c.Params("exerciseID")); err != nil {
		return planError(c, err)
	}
	return c.JSON(fiber.Map{"message": "completed"})
}

func planError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrPlanNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrExerciseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
