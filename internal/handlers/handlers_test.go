package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"menu-planner/internal/database"
	"menu-planner/internal/menu"
	"menu-planner/internal/middleware"
	"menu-planner/internal/models"
	"menu-planner/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

type testServer struct {
	server *httptest.Server
	kv     repository.KeyValueRepository
}

func newTestServer(t *testing.T, planner MenuPlanner) *testServer {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	kv := repository.NewKeyValueRepository(db)

	if planner == nil {
		planner = menu.NewPlanner(
			repository.NewCatalogRepository(kv, zap.NewNop()),
			repository.NewHistoryRepository(kv, zap.NewNop()),
			menu.WithPicker(firstPicker{}),
			menu.WithLocation(time.UTC),
			menu.WithClock(func() time.Time { return time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC) }),
		)
	}

	csrf := middleware.NewCSRFTokenStore(time.Minute, time.Hour, zap.NewNop())
	t.Cleanup(csrf.Close)

	srv := httptest.NewServer(NewRouter(New(planner, zap.NewNop()), csrf, zap.NewNop()))
	t.Cleanup(srv.Close)
	return &testServer{server: srv, kv: kv}
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	resp, err := http.Get(s.server.URL + "/api/csrf-token")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["csrf_token"])
	return body["csrf_token"]
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(t, err)
	if method != http.MethodGet {
		req.Header.Set("X-CSRF-Token", s.token(t))
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestGetToday(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, http.MethodGet, "/api/menu/today", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[menuResponse](t, resp)

	assert.Equal(t, "2024-01-03", first.Date)
	assert.True(t, first.Persisted)
	assert.Equal(t, "Nem", first.Menu.Lunch[models.CategoryMeat])
	require.Len(t, first.Meals, 2)
	assert.Equal(t, "Bữa trưa", first.Meals[0].Label)
	require.Len(t, first.Meals[0].Dishes, len(models.AllCategories))
	assert.Equal(t, "Món thịt", first.Meals[0].Dishes[0].Label)

	second := decode[menuResponse](t, s.do(t, http.MethodGet, "/api/menu/today", nil))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("today changed between reads (-first +second):\n%s", diff)
	}
}

func TestRefreshRequiresCSRFToken(t *testing.T) {
	s := newTestServer(t, nil)

	resp, err := http.Post(s.server.URL+"/api/menu/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRefreshMeal(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()
	history := `[{"date":"2024-01-03","menu":{"lunch":{"meat":"Gà"},"dinner":{"meat":"Thịt kho"}}},` +
		`{"date":"2024-01-02","menu":{"lunch":{"meat":"Nem"},"dinner":{"meat":"Nem"}}}]`
	require.NoError(t, s.kv.Set(ctx, repository.HistoryKey, history))

	resp := s.do(t, http.MethodPost, "/api/menu/refresh/dinner", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[menuResponse](t, resp)

	assert.Equal(t, models.Meal{models.CategoryMeat: "Gà"}, got.Menu.Lunch)
	assert.Equal(t, "Sườn xào chua ngọt", got.Menu.Dinner[models.CategoryMeat])

	resp = s.do(t, http.MethodPost, "/api/menu/refresh/breakfast", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRefreshDay(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, http.MethodPost, "/api/menu/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[menuResponse](t, resp)
	assert.Equal(t, "2024-01-03", got.Date)

	history := decode[[]models.HistoryEntry](t, s.do(t, http.MethodGet, "/api/history", nil))
	require.Len(t, history, 1)
	assert.Equal(t, got.Menu, history[0].Menu)
}

func TestCategories(t *testing.T) {
	s := newTestServer(t, nil)

	got := decode[catalogResponse](t, s.do(t, http.MethodGet, "/api/categories", nil))
	require.Len(t, got.Categories, len(models.AllCategories))
	assert.Equal(t, models.CategoryMeat, got.Categories[0].Key)
	assert.Equal(t, "Hoa quả", got.Categories[5].Label)

	resp := s.do(t, http.MethodPut, "/api/categories/fruit", updateCategoryRequest{Text: "Cam\n cam \nXoài\n"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[catalogResponse](t, resp)
	assert.Equal(t, []string{"Cam", "Xoài"}, got.Categories[5].Dishes)
	assert.True(t, got.Persisted)

	resp = s.do(t, http.MethodPut, "/api/categories", replaceCatalogRequest{
		Categories: map[string][]string{"meat": {"Gà", "GÀ"}, "soup": {}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[catalogResponse](t, resp)
	assert.Equal(t, []string{"Gà"}, got.Categories[0].Dishes)
	assert.Equal(t, []string{}, got.Categories[4].Dishes)
	assert.Equal(t, []string{"Cam", "Xoài"}, got.Categories[5].Dishes)

	raw, err := s.kv.Get(context.Background(), repository.CategoriesKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"meat":["Gà"]`)
}

func TestCategories_BadRequests(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
		body interface{}
	}{
		{name: "unknown category path", path: "/api/categories/dessert", body: updateCategoryRequest{Text: "Chè"}},
		{name: "unknown category key", path: "/api/categories", body: map[string]interface{}{"categories": map[string][]string{"dessert": {"Chè"}}}},
		{name: "empty object", path: "/api/categories", body: map[string]interface{}{}},
		{name: "wrong shape", path: "/api/categories", body: map[string]interface{}{"categories": map[string]string{"meat": "Gà"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCategories_SizeLimits(t *testing.T) {
	s := newTestServer(t, nil)
	longest := strings.Repeat("ư", 200)

	tests := []struct {
		name string
		path string
		body interface{}
		want int
	}{
		{name: "dish at limit", path: "/api/categories", body: replaceCatalogRequest{Categories: map[string][]string{"meat": {longest}}}, want: http.StatusOK},
		{name: "dish over limit", path: "/api/categories", body: replaceCatalogRequest{Categories: map[string][]string{"meat": {longest + "a"}}}, want: http.StatusBadRequest},
		{name: "too many dishes", path: "/api/categories", body: replaceCatalogRequest{Categories: map[string][]string{"meat": make([]string, 501)}}, want: http.StatusBadRequest},
		{name: "text at limit", path: "/api/categories/fruit", body: updateCategoryRequest{Text: strings.Repeat("x", 65536)}, want: http.StatusOK},
		{name: "text over limit", path: "/api/categories/fruit", body: updateCategoryRequest{Text: strings.Repeat("x", 65537)}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	got := decode[catalogResponse](t, s.do(t, http.MethodGet, "/api/categories", nil))
	assert.Equal(t, []string{longest}, got.Categories[0].Dishes)
}

// failingPlanner returns a menu with a failed write, or a hard error.
type failingPlanner struct {
	MenuPlanner
	err error
}

func (f failingPlanner) Today(ctx context.Context) (models.HistoryEntry, error) {
	entry := models.HistoryEntry{Date: "2024-01-03", Menu: models.DayMenu{Lunch: models.Meal{}, Dinner: models.Meal{}}}
	return entry, f.err
}

func TestGetToday_PersistFailure(t *testing.T) {
	s := newTestServer(t, failingPlanner{err: fmt.Errorf("%w: disk full", menu.ErrPersist)})

	resp := s.do(t, http.MethodGet, "/api/menu/today", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[menuResponse](t, resp)
	assert.False(t, got.Persisted)
	assert.Equal(t, "2024-01-03", got.Date)
}

func TestGetToday_LoadFailure(t *testing.T) {
	s := newTestServer(t, failingPlanner{err: fmt.Errorf("load history: database is locked")})

	resp := s.do(t, http.MethodGet, "/api/menu/today", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
