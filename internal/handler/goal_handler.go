package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/state"
)

type GoalHandler struct {
	goals *state.GoalStore
}

func NewGoalHandler(goals *state.GoalStore) *GoalHandler {
	return &GoalHandler{goals: goals}
}

func (h *GoalHandler) ListGoals(c *fiber.Ctx) error {
	return c.JSON(h.goals.Goals())
}

func (h *GoalHandler) GetGoal(c *fiber.Ctx) error {
	g := h.goals.Goal(c.Params("id"))
	if g == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "goal not found"})
	}
	return c.JSON(fiber.Map{
		"goal":                g,
		"progress_percentage": g.ProgressPercentage(),
	})
}

func (h *GoalHandler) CreateGoal(c *fiber.Ctx) error {
	var req domain.Goal
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}
	created, err := h.goals.AddGoal(c.Context(), &req)
	if err != nil {
		return goalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *GoalHandler) UpdateGoal(c *fiber.Ctx) error {
	var req state.GoalUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.goals.UpdateGoal(c.Context(), c.Params("id"), req); err != nil {
		return goalError(c, err)
	}
	return c.JSON(h.goals.Goal(c.Params("id")))
}

func (h *GoalHandler) DeleteGoal(c *fiber.Ctx) error {
	if err := h.goals.DeleteGoal(c.Context(), c.Params("id")); err != nil {
		return goalError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

func (h *GoalHandler) CompleteGoal(c *fiber.Ctx) error {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.goals.CompleteGoal(c.Context(), c.Params("id"), req.Notes); err != nil {
		return goalError(c, err)
	}
	return c.JSON(h.goals.Goal(c.Params("id")))
}

func (h *GoalHandler) UpdateProgress(c *fiber.Ctx) error {
	var req struct {
		CurrentValue float64 `json:"current_value"`
		Notes        string  `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.goals.UpdateProgress(c.Context(), c.Params("id"), req.CurrentValue, req.Notes); err != nil {
		return goalError(c, err)
	}
	return c.JSON(h.goals.Goal(c.Params("id")))
}

func (h *GoalHandler) CompleteMilestone(c *fiber.Ctx) error {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.goals.CompleteMilestone(c.Context(), c.Params("id"), c.Params("milestoneID"), req.Notes); err != nil {
		return goalError(c, err)
	}
	return c.JSON(h.goals.Goal(c.Params("id")))
}

func (h *GoalHandler) ListAchievements(c *fiber.Ctx) error {
	return c.JSON(h.goals.Achievements())
}

func (h *GoalHandler) UnlockAchievement(c *fiber.Ctx) error {
	var req domain.Achievement
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}
	if err := h.goals.UnlockAchievement(c.Context(), &req); err != nil {
		return goalError(c, err)
	}
	return c.JSON(h.goals.Achievements())
}

func (h *GoalHandler) UpcomingDeadlines(c *fiber.Ctx) error {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid days parameter"})
		}
		days = parsed
	}
	return c.JSON(h.goals.UpcomingDeadlines(days))
}

func goalError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrGoalNotFound), errors.Is(err, domain.ErrMilestoneNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotReady):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
