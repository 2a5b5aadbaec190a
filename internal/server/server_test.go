package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"face2geek/internal/config"
	"face2geek/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "handler-test-secret"

type testServer struct {
	srv *Server
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T, rdb *redis.Client) *testServer {
	t.Helper()

	db := testutil.NewTestDB(t)
	cfg := &config.Config{
		JWTSecret:      testJWTSecret,
		Port:           "0",
		AllowedOrigins: "http://localhost:3000",
		FeatureFlags:   "",
	}
	srv, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	return &testServer{srv: srv, app: srv.App(), db: db}
}

func signTestToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

// do sends a JSON request as userID (0 for anonymous) and returns the status
// and raw body.
func (ts *testServer) do(t *testing.T, method, path string, body interface{}, userID uint) (int, []byte) {
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
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, userID))
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// decode unmarshals body into T, failing the test on malformed JSON.
func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func snippetPath(id uint, suffix string) string {
	return fmt.Sprintf("/api/snippets/%d%s", id, suffix)
}

func requireStatus(t *testing.T, want, got int, body []byte) {
	t.Helper()
	require.Equal(t, want, got, string(body))
}

func newRequest(method, path string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, path, body)
}

func decodeResponse[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return decode[T](t, raw)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
