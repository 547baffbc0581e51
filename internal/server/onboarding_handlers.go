package server

import (
	"szlak/internal/models"
	"szlak/internal/observability"
	"szlak/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// SubmitOnboarding handles POST /api/onboarding. It stores the quiz
// answers, marks onboarding completed and returns a random sample of up to
// five activities matching the captured preferences.
//
// List values are not validated against the catalogue vocabularies: an
// unknown value matches no activity and only shrinks the sample, which may
// legitimately be empty.
func (s *Server) SubmitOnboarding(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		DifficultyLevels []string `json:"difficultyLevels"`
		Regions          []string `json:"regions"`
		ActivityTypes    []string `json:"activityTypes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	prefs := &models.UserPreferences{
		UserID:           userID,
		DifficultyLevels: orEmpty(req.DifficultyLevels),
		Regions:          orEmpty(req.Regions),
		ActivityTypes:    orEmpty(req.ActivityTypes),
	}
	if err := s.prefRepo.CompleteOnboarding(c.Context(), prefs); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	recommended, err := s.activityRepo.Recommend(c.Context(), prefs, repository.RecommendLimit)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if recommended == nil {
		recommended = []models.Activity{}
	}
	observability.RecommendationsServed.Observe(float64(len(recommended)))

	return c.JSON(fiber.Map{
		"success":               true,
		"recommendedActivities": recommended,
	})
}

// GetOnboardingStatus handles GET /api/onboarding. A user without a
// preferences row has simply not onboarded yet.
func (s *Server) GetOnboardingStatus(c *fiber.Ctx) error {
	userID := currentUserID(c)

	prefs, err := s.prefRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	completed := prefs != nil && prefs.OnboardingCompleted
	return c.JSON(fiber.Map{"onboardingCompleted": completed})
}
