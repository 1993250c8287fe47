package display

import (
	"time"

	"github.com/Nixie-Tech-LLC/minbar/internal/hijri"
	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

// View is an immutable snapshot of everything the screen shows.
type View struct {
	City          string             `json:"city"`
	Now           time.Time          `json:"now"`
	DateLabel     string             `json:"date_label"`
	TimeLabel     string             `json:"time_label"`
	CalendarDate  string             `json:"calendar_date"`
	IslamicDate   string             `json:"islamic_date"`
	Loading       bool               `json:"loading"`
	Prayers       []PrayerView       `json:"prayers"`
	NextPrayer    *model.PrayerEntry `json:"next_prayer,omitempty"`
	Message       string             `json:"message"`
	MessageIndex  int                `json:"message_index"`
	Cities        []CityOption       `json:"cities"`
	CitiesLoading bool               `json:"cities_loading"`
	Calendar      CalendarView       `json:"calendar"`
}

type PrayerView struct {
	model.PrayerEntry
	Next bool `json:"next"`
}

type CalendarView struct {
	Title          string              `json:"title"`
	Month          int                 `json:"month"`
	Year           int                 `json:"year"`
	Weekdays       []string            `json:"weekdays"`
	Cells          []hijri.Cell        `json:"cells"`
	ImportantDates []ImportantDateView `json:"important_dates"`
}

type ImportantDateView struct {
	Date  string `json:"date"` // “1 Ramadan”
	Label string `json:"label"`
}

// NewCalendarView renders cal with ref highlighted.
func NewCalendarView(cal hijri.Calendar, ref string) CalendarView {
	dates := make([]ImportantDateView, 0, len(hijri.ImportantDates))
	for _, d := range hijri.ImportantDates {
		dates = append(dates, ImportantDateView{
			Date:  hijri.FormatDayMonth(d.Day, d.Month),
			Label: d.Label,
		})
	}
	return CalendarView{
		Title:          cal.Title(),
		Month:          cal.Month,
		Year:           cal.Year,
		Weekdays:       append([]string(nil), hijri.WeekdayLabels...),
		Cells:          cal.Grid(ref),
		ImportantDates: dates,
	}
}

func prayerViews(prayers []model.PrayerEntry, next *model.PrayerEntry) []PrayerView {
	out := make([]PrayerView, 0, len(prayers))
	for _, p := range prayers {
		out = append(out, PrayerView{PrayerEntry: p, Next: next != nil && next.Name == p.Name})
	}
	return out
}
