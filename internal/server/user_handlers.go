package server

import (
	"szlak/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/user. It returns the caller's account plus
// the stored preferences, or a null preferences object when the row is
// absent.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", userID))
	}

	prefs, err := s.prefRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(struct {
		models.User
		Preferences *models.UserPreferences `json:"preferences"`
	}{User: *user, Preferences: prefs})
}

// UpdateMyProfile handles PUT /api/user. Both fields are optional: a name
// alone renames the account, preferences alone replace the stored lists
// without touching the onboarding flag.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Name        string `json:"name"`
		Preferences *struct {
			DifficultyLevels []string `json:"difficultyLevels"`
			Regions          []string `json:"regions"`
			ActivityTypes    []string `json:"activityTypes"`
		} `json:"preferences"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Name != "" {
		if err := s.userRepo.UpdateName(c.Context(), userID, req.Name); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	if req.Preferences != nil {
		prefs := &models.UserPreferences{
			UserID:           userID,
			DifficultyLevels: orEmpty(req.Preferences.DifficultyLevels),
			Regions:          orEmpty(req.Preferences.Regions),
			ActivityTypes:    orEmpty(req.Preferences.ActivityTypes),
		}
		if err := s.prefRepo.Upsert(c.Context(), prefs); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	return c.JSON(fiber.Map{"success": true})
}

// orEmpty normalizes an absent JSON list to an empty one.
func orEmpty(values []string) models.StringList {
	if values == nil {
		return models.StringList{}
	}
	return models.StringList(values)
}
