package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/config"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "handler-test-secret-key-1234567890"

// newTestServer wires a Server against an in-memory SQLite database with no
// Redis. Only SetupRoutes is applied, so the route-level middleware (auth,
// rate limit) is in play but not the global stack from SetupMiddleware.
// APP_ENV=test disables rate limiting.
func newTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.AccessToken{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		JWTSecret: testJWTSecret,
		Port:      "8480",
		Env:       "test",
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    userRepo,
		postRepo:    postRepo,
		tokenRepo:   tokenRepo,
		authService: service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret),
		postService: service.NewPostService(postRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s, db
}

func postJSON(t *testing.T, app *fiber.App, path, token string, payload any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	return doJSON(t, app, http.MethodPost, path, token, payload)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]json.RawMessage{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func rawString(t *testing.T, body map[string]json.RawMessage, key string) string {
	t.Helper()
	var s string
	require.Contains(t, body, key)
	require.NoError(t, json.Unmarshal(body[key], &s))
	return s
}

func registerPayload(name, email, password string) map[string]string {
	return map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              password,
		"password_confirmation": password,
	}
}

// registerAndLogin creates a user through the API and returns its token.
func registerAndLogin(t *testing.T, app *fiber.App, name, email, password string) string {
	t.Helper()

	resp, _ := postJSON(t, app, "/v1/auth/register", "", registerPayload(name, email, password))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, app, "/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return rawString(t, body, "token")
}

func TestRegister(t *testing.T) {
	app, _, _ := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		resp, body := postJSON(t, app, "/v1/auth/register", "",
			registerPayload("first author", "author1@example.com", "secret123"))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "User registered successfully", rawString(t, body, "message"))
	})

	t.Run("field errors", func(t *testing.T) {
		payload := map[string]string{
			"name":                  "shrt",
			"email":                 "not-an-email",
			"password":              "secret123",
			"password_confirmation": "different",
		}
		resp, body := postJSON(t, app, "/v1/auth/register", "", payload)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var fieldErrors map[string][]string
		require.NoError(t, json.Unmarshal(body["errors"], &fieldErrors))
		assert.Contains(t, fieldErrors["name"], "The name field must be at least 6 characters.")
		assert.Contains(t, fieldErrors["email"], "The email field must be a valid email address.")
		assert.Contains(t, fieldErrors["password"], "The password field confirmation does not match.")

		// Summary message is the first failure plus a count of the rest.
		assert.Equal(t,
			"The name field must be at least 6 characters. (and 2 more errors)",
			rawString(t, body, "message"))
	})

	t.Run("missing fields", func(t *testing.T) {
		resp, body := postJSON(t, app, "/v1/auth/register", "", map[string]string{})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var fieldErrors map[string][]string
		require.NoError(t, json.Unmarshal(body["errors"], &fieldErrors))
		assert.Contains(t, fieldErrors["name"], "The name field is required.")
		assert.Contains(t, fieldErrors["email"], "The email field is required.")
		assert.Contains(t, fieldErrors["password"], "The password field is required.")
	})

	t.Run("duplicate email", func(t *testing.T) {
		payload := registerPayload("second author", "author2@example.com", "secret123")
		resp, _ := postJSON(t, app, "/v1/auth/register", "", payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, body := postJSON(t, app, "/v1/auth/register", "", payload)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var fieldErrors map[string][]string
		require.NoError(t, json.Unmarshal(body["errors"], &fieldErrors))
		assert.Contains(t, fieldErrors["email"], "The email has already been taken.")
	})
}

func TestLogin(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp, _ := postJSON(t, app, "/v1/auth/register", "",
		registerPayload("login author", "author3@example.com", "secret123"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("wrong password", func(t *testing.T) {
		resp, body := postJSON(t, app, "/v1/auth/login", "", map[string]string{
			"email":    "author3@example.com",
			"password": "wrongpass",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid username or password", rawString(t, body, "message"))
	})

	t.Run("unknown email", func(t *testing.T) {
		resp, body := postJSON(t, app, "/v1/auth/login", "", map[string]string{
			"email":    "nobody99@example.com",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		// Identical body to a wrong password.
		assert.Equal(t, "Invalid username or password", rawString(t, body, "message"))
	})

	t.Run("validation failure", func(t *testing.T) {
		resp, body := postJSON(t, app, "/v1/auth/login", "", map[string]string{
			"email":    "a@b.co",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var fieldErrors map[string][]string
		require.NoError(t, json.Unmarshal(body["errors"], &fieldErrors))
		assert.Contains(t, fieldErrors["email"], "The email field must be at least 10 characters.")
	})

	t.Run("success", func(t *testing.T) {
		resp, body := postJSON(t, app, "/v1/auth/login", "", map[string]string{
			"email":    "author3@example.com",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, rawString(t, body, "token"))

		var user models.User
		require.NoError(t, json.Unmarshal(body["data"], &user))
		assert.Equal(t, "author3@example.com", user.Email)
	})

	t.Run("login revokes the previous token", func(t *testing.T) {
		_, first := postJSON(t, app, "/v1/auth/login", "", map[string]string{
			"email":    "author3@example.com",
			"password": "secret123",
		})
		firstToken := rawString(t, first, "token")

		// Old token works until a new login replaces it.
		resp, _ := doJSON(t, app, http.MethodGet, "/v1/user", firstToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		_, second := postJSON(t, app, "/v1/auth/login", "", map[string]string{
			"email":    "author3@example.com",
			"password": "secret123",
		})
		secondToken := rawString(t, second, "token")

		resp, _ = doJSON(t, app, http.MethodGet, "/v1/user", firstToken, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodGet, "/v1/user", secondToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestGetUser(t *testing.T) {
	app, _, _ := newTestServer(t)
	token := registerAndLogin(t, app, "whoami author", "author4@example.com", "secret123")

	t.Run("requires auth", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/v1/user", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("returns the bare user", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/v1/user", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		// Bare user object, no data envelope, no password leak.
		assert.Equal(t, "whoami author", rawString(t, body, "name"))
		assert.Equal(t, "author4@example.com", rawString(t, body, "email"))
		assert.NotContains(t, body, "data")
		assert.NotContains(t, body, "password")
	})
}
