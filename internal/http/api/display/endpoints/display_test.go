package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/minbar/internal/display"
	"github.com/Nixie-Tech-LLC/minbar/internal/http/api"
	"github.com/Nixie-Tech-LLC/minbar/internal/http/api/display/packets"
	"github.com/Nixie-Tech-LLC/minbar/internal/model"
	"github.com/Nixie-Tech-LLC/minbar/internal/prayertimes"
)

func fixedNow(t *testing.T) func() time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	now := time.Date(2026, 10, 19, 13, 0, 0, 0, loc)
	return func() time.Time { return now }
}

func setupRouter(t *testing.T, provider prayertimes.Provider) (*gin.Engine, *display.Clock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := fixedNow(t)
	if mock, ok := provider.(*prayertimes.MockProvider); ok {
		mock.ListDelay, mock.ScheduleDelay, mock.Now = 0, 0, now
	}
	clock := display.NewClock(provider, display.Options{Now: now})
	<-clock.SetCity("Paris")

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New(PageTemplate).Parse(`<h1>{{.City}}</h1>`)))
	api.MountGroup(r, api.GroupConfig{}, PageModule(clock))
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/display"}, DisplayModule(clock, provider))
	return r, clock
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestPageAndHealth(t *testing.T) {
	r, _ := setupRouter(t, prayertimes.NewMockProvider())

	w := do(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<h1>Paris</h1>", w.Body.String())

	w = do(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, packets.HealthResponse{Status: "ok", City: "Paris"}, decode[packets.HealthResponse](t, w))
}

func TestListCities(t *testing.T) {
	r, _ := setupRouter(t, prayertimes.NewMockProvider())

	w := do(r, http.MethodGet, "/api/display/cities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Paris", "Lyon", "Marseille"}, decode[packets.CitiesResponse](t, w).Cities)
}

func TestGetSchedule(t *testing.T) {
	r, _ := setupRouter(t, prayertimes.NewMockProvider())

	w := do(r, http.MethodGet, "/api/display/schedule/Lyon", nil)
	require.Equal(t, http.StatusOK, w.Code)
	s := decode[model.PrayerSchedule](t, w)
	assert.Equal(t, "Lyon", s.City)
	assert.Equal(t, "19/10/2026", s.Date)
	require.Len(t, s.Prayers, 5)
	assert.Equal(t, "05:35", s.Prayers[0].Time)

	w = do(r, http.MethodGet, "/api/display/schedule/Atlantis", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "05:30", decode[model.PrayerSchedule](t, w).Prayers[0].Time)
}

type brokenProvider struct{}

func (brokenProvider) ListCities(context.Context) ([]string, error) {
	return nil, errors.New("connection refused")
}

func (brokenProvider) GetSchedule(context.Context, string) (*model.PrayerSchedule, error) {
	return nil, errors.New("connection refused")
}

func TestProviderErrors(t *testing.T) {
	r, _ := setupRouter(t, brokenProvider{})

	for _, path := range []string{
		"/api/display/cities",
		"/api/display/schedule/Paris",
		"/api/display/next?at=13:00",
	} {
		w := do(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadGateway, w.Code, path)
		assert.Contains(t, w.Body.String(), `"error"`)
	}

	// The view still renders, just empty.
	w := do(r, http.MethodGet, "/api/display/view", nil)
	require.Equal(t, http.StatusOK, w.Code)
	v := decode[display.View](t, w)
	assert.False(t, v.Loading)
	assert.Empty(t, v.Prayers)
}

func TestViewAndSetCity(t *testing.T) {
	r, _ := setupRouter(t, prayertimes.NewMockProvider())

	v := decode[display.View](t, do(r, http.MethodGet, "/api/display/view", nil))
	assert.Equal(t, "Paris", v.City)
	require.NotNil(t, v.NextPrayer)
	assert.Equal(t, "Asr", v.NextPrayer.Name)

	w := do(r, http.MethodPut, "/api/display/city", packets.SetCityRequest{City: "Marseille"})
	require.Equal(t, http.StatusOK, w.Code)
	v = decode[display.View](t, w)
	assert.Equal(t, "Marseille", v.City)
	assert.False(t, v.Loading)
	assert.Equal(t, "16:25", v.NextPrayer.Time)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/api/display/city", map[string]string{}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/api/display/city", map[string]string{"city": "  "}).Code)
}

func TestCalendarEndpoints(t *testing.T) {
	r, _ := setupRouter(t, prayertimes.NewMockProvider())

	cal := decode[display.CalendarView](t, do(r, http.MethodGet, "/api/display/calendar", nil))
	assert.Equal(t, "Sha'ban 1445", cal.Title)

	cal = decode[display.CalendarView](t, do(r, http.MethodGet, "/api/display/calendar?month=1&year=1446", nil))
	assert.Equal(t, "Muharram 1446", cal.Title)
	assert.Len(t, cal.Cells, 3+30)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/display/calendar?month=13", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/display/calendar?year=abc", nil).Code)

	cal = decode[display.CalendarView](t, do(r, http.MethodPost, "/api/display/calendar/next", nil))
	assert.Equal(t, "Ramadan 1445", cal.Title)
	cal = decode[display.CalendarView](t, do(r, http.MethodPost, "/api/display/calendar/prev", nil))
	cal = decode[display.CalendarView](t, do(r, http.MethodPost, "/api/display/calendar/prev", nil))
	assert.Equal(t, 7, cal.Month)
}

func TestNextPrayer(t *testing.T) {
	r, _ := setupRouter(t, prayertimes.NewMockProvider())

	tests := []struct {
		query string
		city  string
		at    string
		name  string
	}{
		{"", "Paris", "13:00", "Asr"},
		{"?at=22:00", "Paris", "22:00", "Fajr"},
		{"?at=05:30", "Paris", "05:30", "Dhuhr"},
		{"?at=19:36&city=Lyon", "Lyon", "19:36", "Isha"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(r, http.MethodGet, "/api/display/next"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			resp := decode[packets.NextPrayerResponse](t, w)
			assert.Equal(t, tt.city, resp.City)
			assert.Equal(t, tt.at, resp.At)
			require.NotNil(t, resp.NextPrayer)
			assert.Equal(t, tt.name, resp.NextPrayer.Name)
		})
	}

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/display/next?at=25:99", nil).Code)
}

func TestStream(t *testing.T) {
	r, clock := setupRouter(t, prayertimes.NewMockProvider())
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/display/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var first display.View
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "Paris", first.City)
	assert.Equal(t, 0, first.MessageIndex)

	clock.Rotate()

	var next display.View
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, 1, next.MessageIndex)
}
