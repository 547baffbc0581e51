package server

import (
	"testing"

	"szlak/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	app, db := newTestServer(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "anna@example.com",
		"password": "wedrowiec123",
		"name":     "Anna Kowalska",
	}, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "anna@example.com", user["email"])
	assert.Equal(t, "Anna Kowalska", user["name"])
	assert.NotContains(t, user, "password")

	// Exactly two rows: the account and its empty preferences.
	var userCount, prefCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.UserPreferences{}).Count(&prefCount).Error)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(1), prefCount)

	var prefs models.UserPreferences
	require.NoError(t, db.First(&prefs).Error)
	assert.False(t, prefs.OnboardingCompleted)
	assert.Empty(t, prefs.DifficultyLevels)
}

func TestRegister_MissingFields(t *testing.T) {
	app, db := newTestServer(t)

	for _, payload := range []fiber.Map{
		{},
		{"email": "anna@example.com"},
		{"email": "anna@example.com", "password": "wedrowiec123"},
		{"password": "wedrowiec123", "name": "Anna"},
	} {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", payload, "")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Email, password, and name are required", body["error"])
	}

	// Rejected requests insert nothing.
	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Zero(t, userCount)
}

func TestRegister_PasswordCheckedBeforeEmail(t *testing.T) {
	app, _ := newTestServer(t)

	// Both fields invalid: the password error wins.
	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "not-an-email",
		"password": "123",
		"name":     "Anna",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "password must be at least 6 characters long", body["error"])
}

func TestRegister_InvalidEmail(t *testing.T) {
	app, _ := newTestServer(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "not an email",
		"password": "wedrowiec123",
		"name":     "Anna",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "invalid email format", body["error"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, db := newTestServer(t)

	registerUser(t, app, "anna@example.com")

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "anna@example.com",
		"password": "innehaslo",
		"name":     "Druga Anna",
	}, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "A user with this email already exists", body["error"])
	assert.Equal(t, "CONFLICT", body["code"])

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)
}

func TestRegister_EmailCaseSensitive(t *testing.T) {
	app, _ := newTestServer(t)

	registerUser(t, app, "anna@example.com")

	// A differently-cased address is a different account.
	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "Anna@example.com",
		"password": "wedrowiec123",
		"name":     "Anna",
	}, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	_ = readBody(t, resp)
}

func TestLogin_Success(t *testing.T) {
	app, _ := newTestServer(t)
	registerUser(t, app, "anna@example.com")

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "anna@example.com",
		"password": "wedrowiec123",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, false, body["onboardingCompleted"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "anna@example.com", user["email"])
	assert.NotContains(t, user, "password")
}

func TestLogin_MissingFields(t *testing.T) {
	app, _ := newTestServer(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email": "anna@example.com",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Email and password are required", body["error"])
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	app, _ := newTestServer(t)
	registerUser(t, app, "anna@example.com")

	wrongPassword := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "anna@example.com",
		"password": "zlehaslo1",
	}, "")
	unknownEmail := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "wedrowiec123",
	}, "")

	assert.Equal(t, fiber.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, unknownEmail.StatusCode)

	// Byte-identical bodies: the endpoint must not leak which accounts exist.
	assert.Equal(t, readBody(t, wrongPassword), readBody(t, unknownEmail))
}

func TestLogin_ReportsOnboardingState(t *testing.T) {
	app, _ := newTestServer(t)
	token := registerUser(t, app, "anna@example.com")

	resp := doJSON(t, app, fiber.MethodPost, "/api/onboarding", fiber.Map{
		"difficultyLevels": []string{models.DifficultyEasy},
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_ = readBody(t, resp)

	login := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "anna@example.com",
		"password": "wedrowiec123",
	}, "")
	body := decodeBody(t, login)
	assert.Equal(t, true, body["onboardingCompleted"])
}

func TestAuthRequired_UniformRejection(t *testing.T) {
	app, _ := newTestServer(t)

	headers := []string{
		"",
		"Basic dXNlcjpwYXNz",
		"Bearer garbage.token.here",
		"Bearer ",
		"garbage-without-scheme",
	}

	var bodies [][]byte
	for _, header := range headers {
		resp := doRaw(t, app, fiber.MethodGet, "/api/user", header)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		bodies = append(bodies, readBody(t, resp))
	}

	// Every failure mode produces the same response body.
	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}

func TestAuthRequired_TokenFromOtherSecretRejected(t *testing.T) {
	app, _ := newTestServer(t)

	forged, err := newForeignToken()
	require.NoError(t, err)

	resp := doJSON(t, app, fiber.MethodGet, "/api/user", nil, forged)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Authorization required", body["error"])
}
