package prayertimes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/Nixie-Tech-LLC/minbar/internal/hijri"
	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

const DefaultAladhanURL = "https://api.aladhan.com/v1"

// arabicNames are the localized labels shown under each prayer.
var arabicNames = map[string]string{
	"Fajr":    "الفجر",
	"Dhuhr":   "الظهر",
	"Asr":     "العصر",
	"Maghrib": "المغرب",
	"Isha":    "العشاء",
}

// AladhanProvider fetches live timings from the Al Adhan API for a fixed
// list of cities.
type AladhanProvider struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Exported for testing with httptest.
	BaseURL     string
	Country     string
	Method      int // calculation method, -1 for the API default
	Cities      []string
	DefaultCity string
	Now         func() time.Time
}

func NewAladhanProvider(country string, method int, cities []string) *AladhanProvider {
	def := DefaultCity
	if len(cities) > 0 && !lo.Contains(cities, def) {
		def = cities[0]
	}
	return &AladhanProvider{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		BaseURL:     DefaultAladhanURL,
		Country:     country,
		Method:      method,
		Cities:      cities,
		DefaultCity: def,
		Now:         time.Now,
	}
}

func (p *AladhanProvider) ListCities(_ context.Context) ([]string, error) {
	return append([]string(nil), p.Cities...), nil
}

func (p *AladhanProvider) GetSchedule(ctx context.Context, city string) (*model.PrayerSchedule, error) {
	if !lo.Contains(p.Cities, city) {
		city = p.DefaultCity
	}
	date := p.Now()

	params := url.Values{}
	params.Set("city", city)
	params.Set("country", p.Country)
	if p.Method >= 0 {
		params.Set("method", strconv.Itoa(p.Method))
	}
	endpoint := fmt.Sprintf("%s/timingsByCity/%s?%s", p.BaseURL, date.Format("02-01-2006"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp aladhanResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}
	if apiResp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", apiResp.Code, apiResp.Status)
	}

	return toSchedule(city, date, apiResp.Data)
}

func toSchedule(city string, date time.Time, data aladhanData) (*model.PrayerSchedule, error) {
	s := &model.PrayerSchedule{
		City:        city,
		Date:        calendarDate(date),
		IslamicDate: islamicDate(data.Date.Hijri),
		Timezone:    data.Meta.Timezone,
	}
	for _, name := range model.PrayerNames {
		raw, ok := data.Timings[name]
		if !ok {
			return nil, fmt.Errorf("API response missing %s", name)
		}
		m, err := model.ClockMinutes(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		s.Prayers = append(s.Prayers, model.PrayerEntry{
			Name:          name,
			LocalizedName: arabicNames[name],
			Time:          fmt.Sprintf("%02d:%02d", m/60, m%60),
		})
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// islamicDate renders the API's Hijri date with our month spelling so the
// calendar can match it.
func islamicDate(h aladhanHijri) string {
	day, err := strconv.Atoi(h.Day)
	if err != nil || h.Year == "" {
		return ""
	}
	name := hijri.MonthName(h.Month.Number)
	if name == "" {
		name = h.Month.En
	}
	return fmt.Sprintf("%d %s %s", day, name, h.Year)
}
