package prayertimes

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

const (
	DefaultListDelay     = 300 * time.Millisecond
	DefaultScheduleDelay = 500 * time.Millisecond
)

// mockCities keeps declaration order; ListCities returns it unchanged.
var mockCities = []model.PrayerSchedule{
	{
		City:        "Paris",
		IslamicDate: "15 Sha'ban 1445",
		Timezone:    "Europe/Paris",
		Prayers: []model.PrayerEntry{
			{Name: "Fajr", LocalizedName: "الفجر", Time: "05:30"},
			{Name: "Dhuhr", LocalizedName: "الظهر", Time: "12:45"},
			{Name: "Asr", LocalizedName: "العصر", Time: "16:15"},
			{Name: "Maghrib", LocalizedName: "المغرب", Time: "19:30"},
			{Name: "Isha", LocalizedName: "العشاء", Time: "21:00"},
		},
	},
	{
		City:        "Lyon",
		IslamicDate: "15 Sha'ban 1445",
		Timezone:    "Europe/Paris",
		Prayers: []model.PrayerEntry{
			{Name: "Fajr", LocalizedName: "الفجر", Time: "05:35"},
			{Name: "Dhuhr", LocalizedName: "الظهر", Time: "12:50"},
			{Name: "Asr", LocalizedName: "العصر", Time: "16:20"},
			{Name: "Maghrib", LocalizedName: "المغرب", Time: "19:35"},
			{Name: "Isha", LocalizedName: "العشاء", Time: "21:05"},
		},
	},
	{
		City:        "Marseille",
		IslamicDate: "15 Sha'ban 1445",
		Timezone:    "Europe/Paris",
		Prayers: []model.PrayerEntry{
			{Name: "Fajr", LocalizedName: "الفجر", Time: "05:40"},
			{Name: "Dhuhr", LocalizedName: "الظهر", Time: "12:55"},
			{Name: "Asr", LocalizedName: "العصر", Time: "16:25"},
			{Name: "Maghrib", LocalizedName: "المغرب", Time: "19:40"},
			{Name: "Isha", LocalizedName: "العشاء", Time: "21:10"},
		},
	},
}

// MockSchedules returns copies of the built-in schedules, e.g. for seeding
// the database.
func MockSchedules() []model.PrayerSchedule {
	return lo.Map(mockCities, func(s model.PrayerSchedule, _ int) model.PrayerSchedule {
		return *s.Clone()
	})
}

// MockProvider serves the built-in schedules with simulated latency.
type MockProvider struct {
	ListDelay     time.Duration
	ScheduleDelay time.Duration
	// Now stamps the calendar date of returned schedules. Exported for tests.
	Now func() time.Time
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		ListDelay:     DefaultListDelay,
		ScheduleDelay: DefaultScheduleDelay,
		Now:           time.Now,
	}
}

func (p *MockProvider) ListCities(ctx context.Context) ([]string, error) {
	if err := sleep(ctx, p.ListDelay); err != nil {
		return nil, err
	}
	return lo.Map(mockCities, func(s model.PrayerSchedule, _ int) string { return s.City }), nil
}

func (p *MockProvider) GetSchedule(ctx context.Context, city string) (*model.PrayerSchedule, error) {
	if err := sleep(ctx, p.ScheduleDelay); err != nil {
		return nil, err
	}
	found, ok := lo.Find(mockCities, func(s model.PrayerSchedule) bool { return s.City == city })
	if !ok {
		found, _ = lo.Find(mockCities, func(s model.PrayerSchedule) bool { return s.City == DefaultCity })
	}
	out := found.Clone()
	out.Date = calendarDate(p.Now())
	return out, nil
}
