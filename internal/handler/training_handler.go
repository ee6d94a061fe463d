package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/state"
)

type TrainingHandler struct {
	training *state.TrainingStore
}

func NewTrainingHandler(training *state.TrainingStore) *TrainingHandler {
	return &TrainingHandler{training: training}
}

func (h *TrainingHandler) ListWorkouts(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")
	if start != "" || end != "" {
		if end == "" {
			end = "9999-12-31"
		}
		return c.JSON(h.training.WorkoutsByDateRange(start, end))
	}
	return c.JSON(h.training.Workouts())
}

func (h *TrainingHandler) CreateWorkout(c *fiber.Ctx) error {
	var req domain.Workout
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	created, err := h.training.AddWorkout(c.Context(), &req)
	if err != nil {
		return trainingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *TrainingHandler) UpdateWorkout(c *fiber.Ctx) error {
	var req state.WorkoutUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.training.UpdateWorkout(c.Context(), c.Params("id"), req); err != nil {
		return trainingError(c, err)
	}
	return c.JSON(fiber.Map{"message": "updated"})
}

func (h *TrainingHandler) DeleteWorkout(c *fiber.Ctx) error {
	if err := h.training.DeleteWorkout(c.Context(), c.Params("id")); err != nil {
		return trainingError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// StartWorkout points the active-session marker at a workout. The
// marker lives in memory only.
func (h *TrainingHandler) StartWorkout(c *fiber.Ctx) error {
	if err := h.training.StartWorkout(c.Params("id")); err != nil {
		return trainingError(c, err)
	}
	return c.JSON(h.training.CurrentWorkout())
}

func (h *TrainingHandler) CompleteWorkout(c *fiber.Ctx) error {
	var req struct {
		OverallRPE int    `json:"overall_rpe"`
		Notes      string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.training.CompleteWorkout(c.Context(), c.Params("id"), req.OverallRPE, req.Notes); err != nil {
		return trainingError(c, err)
	}
	return c.JSON(fiber.Map{"message": "completed"})
}

func (h *TrainingHandler) CurrentWorkout(c *fiber.Ctx) error {
	current := h.training.CurrentWorkout()
	if current == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no active workout"})
	}
	return c.JSON(current)
}

func (h *TrainingHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.training.Stats())
}

func trainingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrWorkoutNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotReady):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
