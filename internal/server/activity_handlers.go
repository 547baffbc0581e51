package server

import (
	"szlak/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetActivities handles GET /api/activities. Query parameters difficulty,
// region and activity_type each narrow the list. A valid bearer token is
// optional; with one, every activity carries the caller's completion flag.
func (s *Server) GetActivities(c *fiber.Ctx) error {
	filter := models.ActivityFilter{
		Difficulty:   c.Query("difficulty"),
		Region:       c.Query("region"),
		ActivityType: c.Query("activity_type"),
	}

	activities, err := s.activityRepo.List(c.Context(), filter)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if claims, ok := s.optionalIdentity(c); ok {
		completion, err := s.progressRepo.CompletionByUser(c.Context(), claims.UserID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		for i := range activities {
			done := completion[activities[i].ID]
			activities[i].Completed = &done
		}
	}

	if activities == nil {
		activities = []models.Activity{}
	}
	return c.JSON(activities)
}

// GetActivity handles GET /api/activities/:id. With a valid bearer token
// the response carries the caller's progress for the activity (null when
// none exists yet).
func (s *Server) GetActivity(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Activity", c.Params("id")))
	}

	activity, repoErr := s.activityRepo.GetByID(c.Context(), uint(id))
	if repoErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, repoErr)
	}
	if activity == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Activity", id))
	}

	if claims, ok := s.optionalIdentity(c); ok {
		progress, progErr := s.progressRepo.GetByUserAndActivity(c.Context(), claims.UserID, activity.ID)
		if progErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, progErr)
		}
		return c.JSON(struct {
			models.Activity
			UserProgress *models.UserProgress `json:"userProgress"`
		}{Activity: *activity, UserProgress: progress})
	}

	return c.JSON(activity)
}
