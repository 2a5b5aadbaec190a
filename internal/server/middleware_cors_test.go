package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"face2geek/internal/config"
	"face2geek/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:5173"

// newMiddlewareApp mounts the global middleware chain in front of a single
// echo route at /limited.
func newMiddlewareApp(origins string) *fiber.App {
	srv := &Server{config: &config.Config{AllowedOrigins: origins}}
	app := fiber.New()
	srv.SetupMiddleware(app)
	app.All("/limited", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func originRequest(t *testing.T, app *fiber.App, method string, header map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/limited", nil)
	req.Header.Set("Origin", testOrigin)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func exhaustGlobalLimiter(t *testing.T, app *fiber.App, method string) {
	t.Helper()
	for i := 0; i < 100; i++ {
		resp := originRequest(t, app, method, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, "request %d", i)
	}
}

func TestSetupMiddleware_RejectionKeepsCORSHeaders(t *testing.T) {
	app := newMiddlewareApp(testOrigin)
	exhaustGlobalLimiter(t, app, http.MethodGet)

	resp := originRequest(t, app, http.MethodGet, nil)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, testOrigin, resp.Header.Get("Access-Control-Allow-Origin"))

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "RATE_LIMITED", body.Code)
}

func TestSetupMiddleware_PreflightSkipsLimiter(t *testing.T) {
	app := newMiddlewareApp(testOrigin)
	exhaustGlobalLimiter(t, app, http.MethodPost)
	assert.Equal(t, fiber.StatusTooManyRequests, originRequest(t, app, http.MethodPost, nil).StatusCode)

	resp := originRequest(t, app, http.MethodOptions, map[string]string{
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "authorization,content-type",
	})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, testOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestSetupMiddleware_UnknownOriginGetsNoCORS(t *testing.T) {
	app := newMiddlewareApp("https://face2geek.dev")

	resp := originRequest(t, app, http.MethodGet, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
