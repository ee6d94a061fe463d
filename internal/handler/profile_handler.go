package handler

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/repository"
	"github.com/strideworks/trackside/internal/state"
)

type ProfileHandler struct {
	profile *state.ProfileStore
	media   *repository.MediaS3Repository // nil when media storage is not configured
}

func NewProfileHandler(profile *state.ProfileStore, media *repository.MediaS3Repository) *ProfileHandler {
	return &ProfileHandler{profile: profile, media: media}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	p := h.profile.Profile()
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not loaded"})
	}
	return c.JSON(p)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var req state.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.profile.UpdateUser(c.Context(), req); err != nil {
		return profileError(c, err)
	}
	return c.JSON(h.profile.Profile())
}

func (h *ProfileHandler) UpdateExperienceLevel(c *fiber.Ctx) error {
	var req struct {
		Event string                 `json:"event"`
		Level domain.ExperienceLevel `json:"level"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Event == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "event is required"})
	}
	if err := h.profile.UpdateExperienceLevel(c.Context(), req.Event, req.Level); err != nil {
		return profileError(c, err)
	}
	return c.JSON(h.profile.Profile())
}

func (h *ProfileHandler) UpdatePersonalRecord(c *fiber.Ctx) error {
	var req struct {
		Event    string  `json:"event"`
		Value    float64 `json:"value"`
		Date     string  `json:"date"`
		Location string  `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Event == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "event is required"})
	}
	if err := h.profile.UpdatePersonalRecord(c.Context(), req.Event, req.Value, req.Date, req.Location); err != nil {
		return profileError(c, err)
	}
	return c.JSON(h.profile.Profile())
}

func (h *ProfileHandler) SwitchRole(c *fiber.Ctx) error {
	var req struct {
		Role domain.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Role != domain.RoleCoach && req.Role != domain.RoleAthlete {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "role must be coach or athlete"})
	}
	if err := h.profile.SwitchRole(c.Context(), req.Role); err != nil {
		return profileError(c, err)
	}
	return c.JSON(h.profile.Profile())
}

// Flags exposes the derived booleans the client gates screens on.
func (h *ProfileHandler) Flags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"is_authenticated":    h.profile.IsAuthenticated(),
		"is_profile_complete": h.profile.IsProfileComplete(),
		"is_coach":            h.profile.IsCoach(),
		"is_athlete":          h.profile.IsAthlete(),
	})
}

// UploadAvatar stores the uploaded image in object storage and records
// its URL on the profile.
func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	if h.media == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "media storage not configured"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to open uploaded file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read uploaded file"})
	}

	p := h.profile.Profile()
	if p == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "profile not loaded"})
	}
	previousURL := p.AvatarURL

	filename := fmt.Sprintf("avatars/%s-%s", p.ID, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.media.Upload(c.Context(), data, filename, contentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.profile.SetAvatarURL(c.Context(), url); err != nil {
		return profileError(c, err)
	}

	// Best effort cleanup of the replaced image.
	if key, ok := h.media.Key(previousURL); ok && previousURL != url {
		if err := h.media.Delete(c.Context(), key); err != nil {
			log.Printf("Warning: failed to delete previous avatar %s: %v", key, err)
		}
	}

	return c.JSON(fiber.Map{"avatar_url": url})
}

func profileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotReady) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
