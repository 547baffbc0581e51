package server

import (
	"testing"

	"szlak/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	app, _ := newTestServer(t)
	token := registerUser(t, app, "anna@example.com")

	resp := doJSON(t, app, fiber.MethodGet, "/api/user", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "anna@example.com", body["email"])
	assert.Equal(t, "Test User", body["name"])
	assert.NotContains(t, body, "password")

	prefs, ok := body["preferences"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, prefs["onboardingCompleted"])
	assert.Equal(t, []any{}, prefs["difficultyLevels"])
}

func TestUpdateMyProfile_NameOnly(t *testing.T) {
	app, _ := newTestServer(t)
	token := registerUser(t, app, "anna@example.com")

	resp := doJSON(t, app, fiber.MethodPut, "/api/user", fiber.Map{
		"name": "Anna Nowak",
	}, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	profile := doJSON(t, app, fiber.MethodGet, "/api/user", nil, token)
	profileBody := decodeBody(t, profile)
	assert.Equal(t, "Anna Nowak", profileBody["name"])
}

func TestUpdateMyProfile_PreferencesPreserveOnboarding(t *testing.T) {
	app, db := newTestServer(t)
	token := registerUser(t, app, "anna@example.com")

	onboard := doJSON(t, app, fiber.MethodPost, "/api/onboarding", fiber.Map{
		"difficultyLevels": []string{models.DifficultyEasy},
	}, token)
	require.Equal(t, fiber.StatusOK, onboard.StatusCode)
	_ = readBody(t, onboard)

	resp := doJSON(t, app, fiber.MethodPut, "/api/user", fiber.Map{
		"preferences": fiber.Map{
			"difficultyLevels": []string{models.DifficultyMedium},
			"regions":          []string{"Jura"},
		},
	}, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	_ = readBody(t, resp)

	var prefs models.UserPreferences
	require.NoError(t, db.First(&prefs).Error)
	assert.True(t, prefs.OnboardingCompleted)
	assert.Equal(t, models.StringList{models.DifficultyMedium}, prefs.DifficultyLevels)
	assert.Equal(t, models.StringList{"Jura"}, prefs.Regions)
	assert.Empty(t, prefs.ActivityTypes)
}

func TestUpdateMyProfile_EmptyBodyIsNoOp(t *testing.T) {
	app, _ := newTestServer(t)
	token := registerUser(t, app, "anna@example.com")

	resp := doJSON(t, app, fiber.MethodPut, "/api/user", fiber.Map{}, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	profile := doJSON(t, app, fiber.MethodGet, "/api/user", nil, token)
	profileBody := decodeBody(t, profile)
	assert.Equal(t, "Test User", profileBody["name"])
}

func TestUser_RequiresAuth(t *testing.T) {
	app, _ := newTestServer(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/user", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Authorization required", body["error"])
}

func TestHealth_Live(t *testing.T) {
	app, _ := newTestServer(t)

	resp := doJSON(t, app, fiber.MethodGet, "/health/live", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "up", body["status"])
}

func TestHealth_Ready(t *testing.T) {
	app, _ := newTestServer(t)

	resp := doJSON(t, app, fiber.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])

	checks, ok := body["checks"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "unavailable", checks["redis"])
}
