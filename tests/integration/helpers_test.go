package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/prajayganiga-design/Mini-project/internal/api"
	"github.com/prajayganiga-design/Mini-project/internal/auth"
	"github.com/prajayganiga-design/Mini-project/internal/config"
	"github.com/prajayganiga-design/Mini-project/internal/domain/accounts"
	"github.com/prajayganiga-design/Mini-project/internal/domain/events"
	"github.com/prajayganiga-design/Mini-project/internal/domain/registrations"
	"github.com/prajayganiga-design/Mini-project/internal/storage/postgres"
)

type testEnv struct {
	Context context.Context
	Pool    *pgxpool.Pool
	Server  *httptest.Server
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("eventreg"),
		tcpostgres.WithUsername("eventreg"),
		tcpostgres.WithPassword("eventreg_dev"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationsPath := filepath.Join(projectRoot(t), "internal", "storage", "postgres", "migrations")
	require.NoError(t, migrateWithRetry(dbURL, migrationsPath, 10*time.Second))

	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo, err := postgres.NewRepository(pool)
	require.NoError(t, err)

	logger := zerolog.New(io.Discard)
	jwtManager := auth.NewJWTManager("test-secret-32-bytes-minimum----", time.Hour, "event-registration")

	cfg := config.Config{
		CORS:        config.CORSConfig{AllowAllOrigins: true},
		Environment: "test",
	}

	router := api.NewRouter(cfg, api.Deps{
		Events:        events.NewService(repo.Events(), logger),
		Registrations: registrations.NewService(repo.Registrations(), nil, logger),
		Accounts:      accounts.NewService(repo.Accounts(), jwtManager, logger),
		JWT:           jwtManager,
		Pool:          pool,
	}, logger)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{
		Context: ctx,
		Pool:    pool,
		Server:  server,
	}
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func migrateWithRetry(databaseURL string, migrationsPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := postgres.MigrateUp(databaseURL, migrationsPath); err != nil {
			if time.Now().After(deadline) {
				return err
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		return nil
	}
}

// doJSON issues a request against the test server and decodes the response
// body into a generic map.
func doJSON(t *testing.T, env *testEnv, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(env.Context, method, env.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func signupAndLogin(t *testing.T, env *testEnv, email, role string) string {
	t.Helper()

	status, _ := doJSON(t, env, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "sup3rSecret!",
		"role":     role,
	})
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, env, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "sup3rSecret!",
	})
	require.Equal(t, http.StatusOK, status)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func eventPayload(eventID, startDate, endDate, startTime, endTime string, maxParticipants *int) map[string]any {
	return map[string]any{
		"event_id":         eventID,
		"event_name":       "Event " + eventID,
		"description":      "integration fixture",
		"start_date":       startDate,
		"end_date":         endDate,
		"start_time":       startTime,
		"end_time":         endTime,
		"venue":            "Main Hall",
		"max_participants": maxParticipants,
	}
}
