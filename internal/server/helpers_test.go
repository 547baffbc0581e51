package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"szlak/internal/auth"
	"szlak/internal/config"
	"szlak/internal/database"
	"szlak/internal/repository"
	"szlak/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestServer wires a server against a fresh in-memory database with the
// reference catalogue seeded. No Redis: rate limiting is off under
// APP_ENV=test anyway.
func newTestServer(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, seed.Reference(db))

	cfg := &config.Config{
		Port:      "0",
		DBPath:    ":memory:",
		JWTSecret: "test-secret",
		Env:       "test",
	}
	s := &Server{
		config:       cfg,
		db:           db,
		tokens:       auth.NewTokens(cfg.JWTSecret),
		userRepo:     repository.NewUserRepository(db),
		prefRepo:     repository.NewPreferenceRepository(db),
		activityRepo: repository.NewActivityRepository(db),
		progressRepo: repository.NewProgressRepository(db),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return app, db
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody decodes a JSON response body into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// readBody returns the raw response body.
func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return raw
}

// doRaw performs a GET-style request with a literal Authorization header.
func doRaw(t *testing.T, app *fiber.App, method, path, authHeader string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// newForeignToken issues a structurally valid token signed with a secret
// the server does not trust.
func newForeignToken() (string, error) {
	return auth.NewTokens("some-other-secret").Issue(1, "intruder@example.com")
}

// registerUser registers an account and returns its token.
func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"email":    email,
		"password": "wedrowiec123",
		"name":     "Test User",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
