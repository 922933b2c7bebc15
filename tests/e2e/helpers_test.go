//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/taskscope-backend/internal/adapter/postgres/testhelper"
	redisadapter "github.com/heartmarshall/taskscope-backend/internal/adapter/redis"
	"github.com/heartmarshall/taskscope-backend/internal/app"
	"github.com/heartmarshall/taskscope-backend/internal/auth"
	"github.com/heartmarshall/taskscope-backend/internal/config"
	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

const (
	jwtSecret = "e2e-secret-at-least-32-characters!!"
	jwtIssuer = "taskscope-e2e"
	channel   = "taskscope:e2e"
)

// testServer is the full HTTP stack over a real database and a miniredis
// publisher.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Redis  *miniredis.Miniredis
	jwt    *auth.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	mr := miniredis.RunT(t)
	pub, err := redisadapter.NewPublisher(context.Background(), "redis://"+mr.Addr(), channel, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	cfg := config.Config{
		Auth:    config.AuthConfig{JWTSecret: jwtSecret, JWTIssuer: jwtIssuer, AccessTokenTTL: 15 * time.Minute},
		Batch:   config.BatchConfig{MaxOperations: 100},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
	}

	stack := app.NewStack(cfg, logger, pool, pub)
	t.Cleanup(stack.Close)

	srv := httptest.NewServer(stack.Handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Redis:  mr,
		jwt:    auth.NewJWTManager(jwtSecret, jwtIssuer, 15*time.Minute),
	}
}

// tokenFor signs an access token for a seeded user.
func (ts *testServer) tokenFor(t *testing.T, u domain.User) string {
	t.Helper()
	tok, err := ts.jwt.Issue(u.ID, u.Role.String())
	require.NoError(t, err)
	return tok
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type opResult struct {
	Index     int             `json:"index"`
	Success   bool            `json:"success"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
}

type batchResult struct {
	Results []opResult `json:"results"`
	Summary struct {
		Total      int `json:"total"`
		Successful int `json:"successful"`
		Failed     int `json:"failed"`
	} `json:"summary"`
	Message string `json:"message"`
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// batch posts ops and decodes a successful batch response.
func (ts *testServer) batch(t *testing.T, token string, ops ...map[string]any) batchResult {
	t.Helper()

	status, env := ts.do(t, http.MethodPost, "/api/batch", token, map[string]any{"operations": ops})
	require.Equal(t, http.StatusOK, status, "error: %+v", env.Error)
	require.True(t, env.Success)

	var res batchResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res
}

func ids(us ...uuid.UUID) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.String()
	}
	return out
}
