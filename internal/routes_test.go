package internal

import (
	"bytes"
	"meetup/internal/controllers"
	"meetup/internal/repositories/sqlite"
	"meetup/internal/services"
	"meetup/internal/testutil"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := &testutil.MockLogger{}
	store := testutil.NewMockStore()

	repo, err := sqlite.NewGroupRepo(filepath.Join(t.TempDir(), "groups.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	gc := controllers.NewGroupController(logger, services.NewGroupService(repo, testutil.NewMockCache(), logger))
	rc := controllers.NewRecentController(logger, services.NewRecentService(store, logger, testutil.NewMockMetrics()))
	fc := controllers.NewFilterController(logger, services.NewFilterService(store, logger))

	mux := http.NewServeMux()
	for _, r := range InitRoutes(gc, rc, fc).GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}
	return mux
}

func TestInitRoutes_RegistersAllRoutes(t *testing.T) {
	logger := &testutil.MockLogger{}
	routes := InitRoutes(
		controllers.NewGroupController(logger, nil),
		controllers.NewRecentController(logger, nil),
		controllers.NewFilterController(logger, nil),
	).GetRoutes()

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.ElementsMatch(t, []string{
		"/groups", "/group", "/group/members",
		"/group/join", "/group/leave", "/group/approve", "/group/reject", "/group/promote", "/group/ban",
		"/recent", "/filters",
	}, urls)
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	mux := newTestRouter(t)

	for _, tc := range []struct{ method, url string }{
		{http.MethodPost, "/group/members"},
		{http.MethodGet, "/group/join"},
		{http.MethodDelete, "/filters"},
		{http.MethodPut, "/recent"},
	} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.url, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, "%s %s", tc.method, tc.url)
	}
}

func TestInitRoutes_RecentRoundTrip(t *testing.T) {
	mux := newTestRouter(t)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/recent?kind=club", bytes.NewBufferString(`{"id":"c1","name":"Club"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/recent?kind=club", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"items":[{"id":"c1","name":"Club","imageUrl":""}],"persisted":true}`, rr.Body.String())

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/recent?kind=club&id=c1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"items":[],"persisted":true}`, rr.Body.String())
}
