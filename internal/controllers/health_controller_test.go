package controllers

import (
	"encoding/json"
	"meetup/internal/models"
	"meetup/internal/services"
	"meetup/internal/structures"
	"meetup/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthController(t *testing.T) (*HealthController, services.RecentServiceInterface) {
	t.Helper()
	conf := &structures.Config{
		Storage: structures.StorageConfig{Driver: "memory"},
	}
	recentSvc := services.NewRecentService(testutil.NewMockStore(), &testutil.MockLogger{}, testutil.NewMockMetrics())
	cache := testutil.NewMockCache()
	cache.Set("roster:g1", []byte("[]"))
	return NewHealthController(conf, recentSvc, cache), recentSvc
}

func TestHealth_ReturnsOK(t *testing.T) {
	hc, recentSvc := newHealthController(t)
	_, err := recentSvc.AddClub("p1", models.RecentClub{ID: "c1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, "memory", resp["storage_driver"])
	assert.Equal(t, float64(1), resp["recent_profiles"])
	assert.Equal(t, float64(1), resp["cached_rosters"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc, _ := newHealthController(t)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHealth_UptimeIncreases(t *testing.T) {
	hc, _ := newHealthController(t)
	hc.startTime = time.Now().Add(-2 * time.Hour)

	rr := httptest.NewRecorder()
	hc.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 7200.0)
	assert.Equal(t, "2h0m0s", resp.Uptime)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0h0m0s"},
		{59 * time.Second, "0h0m59s"},
		{61 * time.Minute, "1h1m0s"},
		{25*time.Hour + 30*time.Second, "25h0m30s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
