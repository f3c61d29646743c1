package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	s := setupHandlerTest(t)
	app := fiber.New()
	app.Post("/auth/register", s.Register)
	app.Post("/auth/login", s.Login)

	// Register.
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var registered struct {
		User struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"user"`
	}
	decodeBody(t, resp, &registered)
	assert.Equal(t, "alice", registered.User.Username)
	// The hash never leaves the server.
	assert.Empty(t, registered.User.Password)

	// Same email again is a 400, same for the username.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// Login with the right password issues a token.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loggedIn struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &loggedIn)
	assert.NotEmpty(t, loggedIn.Token)

	// Wrong password and unknown email both answer 401.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRegister_Validation(t *testing.T) {
	s := setupHandlerTest(t)
	app := fiber.New()
	app.Post("/auth/register", s.Register)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing fields", map[string]string{"username": "alice"}},
		{"short username", map[string]string{"username": "ab", "email": "a@example.com", "password": "secret1"}},
		{"bad email", map[string]string{"username": "alice", "email": "nope", "password": "secret1"}},
		{"short password", map[string]string{"username": "alice", "email": "a@example.com", "password": "12345"}},
		{"reserved username", map[string]string{"username": "admin", "email": "a@example.com", "password": "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/register", tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func TestAuthRequired(t *testing.T) {
	s := setupHandlerTest(t)
	user := createHandlerTestUser(t, s, "alice")

	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	// No header.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Garbage token.
	req := jsonRequest(t, http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// A real token passes and carries the subject.
	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	req = jsonRequest(t, http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
