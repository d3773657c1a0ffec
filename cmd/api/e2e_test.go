package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-timetable/internal/config"
)

type activityPayload struct {
	Name     string `json:"name"`
	Time     string `json:"time"`
	Category string `json:"category"`
}

type progressPayload struct {
	ID             string          `json:"id"`
	Activity       activityPayload `json:"activity"`
	DailyStatus    []bool          `json:"daily_status"`
	CompletionRate float64         `json:"completion_rate"`
}

type weekPayload struct {
	Activities            []progressPayload `json:"activities"`
	OverallCompletionRate float64           `json:"overall_completion_rate"`
}

type timetablePayload struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	IsActive    bool          `json:"is_active"`
	CurrentWeek *weekPayload  `json:"current_week"`
	History     []weekPayload `json:"history"`
}

func memoryConfig() *config.Config {
	cfg := &config.Config{
		Storage:         config.StorageMemory,
		DefaultTimezone: "UTC",
	}
	cfg.Auth.JWTSecret = "e2e-secret-0123456789abcdef-0123"
	cfg.Auth.JWTIssuer = "kanso-e2e"
	cfg.Auth.TokenDuration = time.Hour
	return cfg
}

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestEndToEnd_TimetableLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := buildApp(ctx, memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	defer application.Close()

	c := &client{t: t, router: application.Router}

	t.Run("1. Register and login", func(t *testing.T) {
		creds := map[string]string{"email": "e2e@kanso.app", "password": "CorrectHorse1"}

		w := c.do(http.MethodPost, "/api/v1/auth/register", creds)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = c.do(http.MethodPost, "/api/v1/auth/login", creds)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Token string `json:"token"`
		}
		decodeInto(t, w, &resp)
		require.NotEmpty(t, resp.Token)
		c.token = resp.Token
	})

	var timetableID, progressID string

	t.Run("2. Create timetable", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/v1/timetables", map[string]any{
			"name": "Routine",
			"default_activities": []activityPayload{
				{Name: "Read", Time: "07:00-08:00", Category: "Self"},
			},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var tt timetablePayload
		decodeInto(t, w, &tt)
		assert.True(t, tt.IsActive)
		timetableID = tt.ID
	})

	t.Run("3. Current week starts empty", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/v1/timetables/current-week", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			TimetableID string      `json:"timetable_id"`
			Week        weekPayload `json:"current_week"`
		}
		decodeInto(t, w, &resp)
		assert.Equal(t, timetableID, resp.TimetableID)
		require.Len(t, resp.Week.Activities, 1)
		assert.Equal(t, make([]bool, 7), resp.Week.Activities[0].DailyStatus)
		assert.Equal(t, 0.0, resp.Week.OverallCompletionRate)
		progressID = resp.Week.Activities[0].ID
	})

	t.Run("4. Toggle Monday", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/v1/timetables/"+timetableID+"/toggle", map[string]any{
			"activity_id": progressID,
			"day_index":   0,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var week weekPayload
		decodeInto(t, w, &week)
		assert.Equal(t, 14.3, week.OverallCompletionRate)
	})

	t.Run("5. Unchanged catalog keeps progress", func(t *testing.T) {
		w := c.do(http.MethodPut, "/api/v1/timetables/"+timetableID+"/activities", map[string]any{
			"activities": []activityPayload{{Name: "Read", Time: "07:00-08:00", Category: "Self"}},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var tt timetablePayload
		decodeInto(t, w, &tt)
		require.NotNil(t, tt.CurrentWeek)
		assert.True(t, tt.CurrentWeek.Activities[0].DailyStatus[0])
	})

	t.Run("6. Force new week archives", func(t *testing.T) {
		w := c.do(http.MethodPost, "/api/v1/timetables/"+timetableID+"/new-week", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var week weekPayload
		decodeInto(t, w, &week)
		assert.Equal(t, 0.0, week.OverallCompletionRate)

		w = c.do(http.MethodGet, "/api/v1/timetables/"+timetableID+"/history", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Entries    []weekPayload `json:"entries"`
			TotalWeeks int           `json:"total_weeks"`
		}
		decodeInto(t, w, &page)
		assert.Equal(t, 1, page.TotalWeeks)
		require.Len(t, page.Entries, 1)
		assert.Equal(t, 14.3, page.Entries[0].OverallCompletionRate)
	})

	t.Run("7. Stats and health", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/v1/timetables/"+timetableID+"/stats", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"total_weeks":2`)

		w = c.do(http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("8. Token is required", func(t *testing.T) {
		anon := &client{t: t, router: application.Router}
		w := anon.do(http.MethodGet, "/api/v1/timetables", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
