package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/minbar/internal/display"
	"github.com/Nixie-Tech-LLC/minbar/internal/hijri"
	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

func TestLoadTemplates(t *testing.T) {
	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	view := display.View{
		City:        "Lyon",
		TimeLabel:   "13:00:00",
		IslamicDate: "15 Sha'ban 1445",
		Prayers: []display.PrayerView{
			{PrayerEntry: model.PrayerEntry{Name: "Dhuhr", LocalizedName: "الظهر", Time: "12:50"}},
			{PrayerEntry: model.PrayerEntry{Name: "Asr", LocalizedName: "العصر", Time: "16:20"}, Next: true},
		},
		Message:  "<b>Bienvenue</b>",
		Cities:   []display.CityOption{{Name: "Paris"}, {Name: "Lyon", Active: true}},
		Calendar: display.NewCalendarView(hijri.New(8, 1445), "15 Sha'ban 1445"),
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "display.html", view))
	html := buf.String()

	assert.Contains(t, html, "<title>Minbar · Lyon</title>")
	assert.Contains(t, html, `<option value="Lyon" selected>Lyon</option>`)
	assert.Contains(t, html, `<li class="next"><span>Asr · العصر</span><span>16:20</span></li>`)
	assert.Contains(t, html, `<span class="current">15</span>`)
	assert.Contains(t, html, "&lt;b&gt;Bienvenue&lt;/b&gt;")
	assert.Contains(t, html, "Sha&#39;ban 1445")
	assert.Contains(t, html, `<p id="cities-loading" hidden>`)
	assert.Contains(t, html, `<p id="loading" hidden>`)
	assert.Contains(t, html, `<ul class="prayers" id="prayers">`)
}

func TestLoadTemplates_Loading(t *testing.T) {
	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	view := display.View{
		City:          "Lyon",
		Loading:       true,
		CitiesLoading: true,
		Cities:        []display.CityOption{{Name: "Paris"}},
		Calendar:      display.NewCalendarView(hijri.New(8, 1445), ""),
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "display.html", view))
	html := buf.String()

	assert.Contains(t, html, `<p id="cities-loading">Chargement des villes…</p>`)
	assert.Contains(t, html, `<select id="city" hidden>`)
	assert.NotContains(t, html, "<option")
	assert.Contains(t, html, `<ul class="prayers" id="prayers" hidden>`)
	assert.Contains(t, html, `<p id="loading">Chargement des horaires de prière…</p>`)
}
