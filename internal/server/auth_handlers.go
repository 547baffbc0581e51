package server

import (
	"szlak/internal/auth"
	"szlak/internal/models"
	"szlak/internal/observability"
	"szlak/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register.
//
// Validation fully precedes writes: a rejected request inserts nothing.
// A successful one inserts exactly two rows, the user and its empty
// preferences row.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		observability.Registrations.WithLabelValues("validation_error").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email, password, and name are required"))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		observability.Registrations.WithLabelValues("validation_error").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		observability.Registrations.WithLabelValues("validation_error").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateName(req.Name); err != nil {
		observability.Registrations.WithLabelValues("validation_error").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		observability.Registrations.WithLabelValues("conflict").Inc()
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("A user with this email already exists"))
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		if appErr, ok := createErr.(*models.AppError); ok && appErr.Code == "CONFLICT" {
			// Lost a race with a concurrent registration for the same email.
			observability.Registrations.WithLabelValues("conflict").Inc()
			return models.RespondWithError(c, fiber.StatusConflict, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	if prefErr := s.prefRepo.CreateEmpty(c.Context(), user.ID); prefErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, prefErr)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.Registrations.WithLabelValues("created").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Login handles POST /api/auth/login.
//
// Unknown email and wrong password produce byte-identical responses so the
// endpoint cannot be used to enumerate accounts.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil || !auth.CheckPassword(req.Password, user.Password) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password"))
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// A missing preferences row (registration crashed between its two
	// inserts) reads as "not onboarded".
	onboardingCompleted := false
	prefs, err := s.prefRepo.GetByUserID(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if prefs != nil {
		onboardingCompleted = prefs.OnboardingCompleted
	}

	return c.JSON(fiber.Map{
		"success":             true,
		"token":               token,
		"user":                user,
		"onboardingCompleted": onboardingCompleted,
	})
}
