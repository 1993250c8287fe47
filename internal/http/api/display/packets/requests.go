package packets

// REQUESTS FOR /api/display/*

type SetCityRequest struct {
	City string `json:"city" binding:"required"`
}

// query for GET /api/display/calendar
type CalendarQuery struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=1"`
}

// query for GET /api/display/next
type NextPrayerQuery struct {
	At   string `form:"at"`
	City string `form:"city"`
}
