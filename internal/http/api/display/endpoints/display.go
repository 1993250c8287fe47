package endpoints

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/minbar/internal/db"
	"github.com/Nixie-Tech-LLC/minbar/internal/display"
	"github.com/Nixie-Tech-LLC/minbar/internal/hijri"
	"github.com/Nixie-Tech-LLC/minbar/internal/http/api"
	"github.com/Nixie-Tech-LLC/minbar/internal/http/api/display/packets"
	"github.com/Nixie-Tech-LLC/minbar/internal/model"
	"github.com/Nixie-Tech-LLC/minbar/internal/prayertimes"
)

// Display is the part of *display.Clock the endpoints drive.
type Display interface {
	View() display.View
	SetCity(city string) <-chan struct{}
	CalendarPrev()
	CalendarNext()
	Subscribe() (<-chan display.View, func())
}

// DisplayModule mounts the screen endpoints (/cities, /view, /stream, ...).
func DisplayModule(d Display, provider prayertimes.Provider) api.Module {
	ctl := newDisplayController(d, provider)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/cities", ctl.listCities)
		c.PUBLIC_GET("/schedule/:city", ctl.getSchedule)
		c.PUBLIC_GET("/view", ctl.getView)
		c.PUBLIC_PUT("/city", ctl.setCity)
		c.PUBLIC_GET("/calendar", ctl.getCalendar)
		c.PUBLIC_POST("/calendar/prev", ctl.calendarPrev)
		c.PUBLIC_POST("/calendar/next", ctl.calendarNext)
		c.PUBLIC_GET("/next", ctl.nextPrayer)
		c.Raw(http.MethodGet, "/stream", ctl.stream)
	})
}

type DisplayController struct {
	display  Display
	provider prayertimes.Provider
}

func newDisplayController(d Display, provider prayertimes.Provider) *DisplayController {
	return &DisplayController{display: d, provider: provider}
}

// GET /api/display/cities
func (d *DisplayController) listCities(ctx *gin.Context) (any, *api.APIError) {
	cities, err := d.provider.ListCities(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list cities")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "could not load cities"}
	}
	return packets.CitiesResponse{Cities: cities}, nil
}

// GET /api/display/schedule/:city
func (d *DisplayController) getSchedule(ctx *gin.Context) (any, *api.APIError) {
	city := strings.TrimSpace(ctx.Param("city"))
	schedule, err := d.provider.GetSchedule(ctx.Request.Context(), city)
	if err != nil {
		log.Error().Err(err).Str("city", city).Msg("failed to load prayer times")
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "unknown city"}
		}
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "could not load prayer times"}
	}
	return schedule, nil
}

// GET /api/display/view
func (d *DisplayController) getView(ctx *gin.Context) (any, *api.APIError) {
	return d.display.View(), nil
}

// PUT /api/display/city
// Responds once the new schedule is applied, or with the loading view if
// the client gives up first.
func (d *DisplayController) setCity(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SetCityRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	city := strings.TrimSpace(request.City)
	if city == "" {
		return nil, api.BadRequest("city is required")
	}

	done := d.display.SetCity(city)
	select {
	case <-done:
	case <-ctx.Request.Context().Done():
	}
	return d.display.View(), nil
}

// GET /api/display/calendar?month=&year=
func (d *DisplayController) getCalendar(ctx *gin.Context) (any, *api.APIError) {
	var query packets.CalendarQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	view := d.display.View()
	if query.Month == 0 {
		query.Month = view.Calendar.Month
	}
	if query.Year == 0 {
		query.Year = view.Calendar.Year
	}
	return display.NewCalendarView(hijri.New(query.Month, query.Year), view.IslamicDate), nil
}

// POST /api/display/calendar/prev
func (d *DisplayController) calendarPrev(ctx *gin.Context) (any, *api.APIError) {
	d.display.CalendarPrev()
	return d.display.View().Calendar, nil
}

// POST /api/display/calendar/next
func (d *DisplayController) calendarNext(ctx *gin.Context) (any, *api.APIError) {
	d.display.CalendarNext()
	return d.display.View().Calendar, nil
}

// GET /api/display/next?at=HH:MM&city=
func (d *DisplayController) nextPrayer(ctx *gin.Context) (any, *api.APIError) {
	var query packets.NextPrayerQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	view := d.display.View()
	city := strings.TrimSpace(query.City)
	if city == "" {
		city = view.City
	}

	at := view.Now
	if query.At != "" {
		minutes, err := model.ClockMinutes(query.At)
		if err != nil {
			return nil, api.BadRequest("at must be HH:MM")
		}
		at = time.Date(at.Year(), at.Month(), at.Day(), minutes/60, minutes%60, 0, 0, at.Location())
	}

	schedule, err := d.provider.GetSchedule(ctx.Request.Context(), city)
	if err != nil {
		log.Error().Err(err).Str("city", city).Msg("failed to load prayer times")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "could not load prayer times"}
	}

	return packets.NextPrayerResponse{
		City:       city,
		At:         at.Format("15:04"),
		NextPrayer: display.NextPrayer(schedule.Prayers, at),
	}, nil
}
