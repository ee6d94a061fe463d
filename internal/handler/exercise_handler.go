package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/strideworks/trackside/internal/domain"
)

// ExerciseHandler exposes the shared exercise catalog. Simple CRUD, so
// it talks to the repository directly.
type ExerciseHandler struct {
	exerciseRepo domain.ExerciseRepository
}

func NewExerciseHandler(exerciseRepo domain.ExerciseRepository) *ExerciseHandler {
	return &ExerciseHandler{exerciseRepo: exerciseRepo}
}

func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	filter := make(map[string]interface{})
	if name := c.Query("name"); name != "" {
		filter["name"] = name
	}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	exs, err := h.exerciseRepo.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(exs)
}

func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	var req domain.Exercise
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if err := h.exerciseRepo.Create(c.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrDuplicateExercise) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	ex, err := h.exerciseRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrExerciseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ex)
}
