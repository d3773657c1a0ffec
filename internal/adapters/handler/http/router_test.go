package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-timetable/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-timetable/internal/core/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret-0123456789ab"

var testNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

// stubValidator accepts "token-<user>" bearer tokens.
type stubValidator struct{}

func (stubValidator) ValidateToken(_ context.Context, token string) (string, error) {
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", errors.New("bad token")
	}
	return token[len(prefix):], nil
}

type testAPI struct {
	router    *gin.Engine
	timetable *services.TimetableService
	users     *repository.InMemoryUserRepository
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	timetables := repository.NewInMemoryTimetableRepository()
	users := repository.NewInMemoryUserRepository()

	now := testNow
	timetableSvc := services.NewTimetableService(timetables, nil, services.TimetableServiceOptions{
		DefaultTimezone: "UTC",
		Clock:           func() time.Time { return now },
	})
	statsSvc := services.NewStatsService(timetables, nil, nil)
	tokens := services.NewTokenService(testSecret, "kanso-test", time.Hour, users)

	router := NewRouter(RouterDependencies{
		AuthHandler:      NewAuthHandler(services.NewAuthService(users), tokens),
		TimetableHandler: NewTimetableHandler(timetableSvc),
		StatsHandler:     NewStatsHandler(statsSvc),
		TokenValidator:   stubValidator{},
		StartTime:        time.Now(),
	})

	return &testAPI{router: router, timetable: timetableSvc, users: users}
}

func (a *testAPI) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer token-"+user)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
