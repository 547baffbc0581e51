package server

import (
	"time"

	"szlak/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProgress handles GET /api/progress. It returns the caller's progress
// rows joined with activity details, plus aggregate stats: the global
// activity count and the caller's completed count.
func (s *Server) GetProgress(c *fiber.Ctx) error {
	userID := currentUserID(c)

	progress, err := s.progressRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if progress == nil {
		progress = []models.ProgressEntry{}
	}

	total, err := s.activityRepo.Count(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	completed, err := s.progressRepo.CountCompleted(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"progress": progress,
		"stats":    models.ProgressStats{Total: total, Completed: completed},
	})
}

// UpdateProgress handles POST /api/progress. Every call carries the full
// desired state for one activity; the upsert overwrites completed,
// completed_at, rating and notes unconditionally. Toggling completed off
// therefore clears the completion timestamp, and omitting rating or notes
// clears them too.
func (s *Server) UpdateProgress(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		ActivityID uint    `json:"activityId"`
		Completed  bool    `json:"completed"`
		Rating     *int    `json:"rating"`
		Notes      *string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.ActivityID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Activity ID is required"))
	}

	var completedAt *time.Time
	if req.Completed {
		now := time.Now()
		completedAt = &now
	}

	progress := &models.UserProgress{
		UserID:      userID,
		ActivityID:  req.ActivityID,
		Completed:   req.Completed,
		CompletedAt: completedAt,
		Rating:      req.Rating,
		Notes:       req.Notes,
	}
	if err := s.progressRepo.Upsert(c.Context(), progress); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
