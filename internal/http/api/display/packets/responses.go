package packets

import "github.com/Nixie-Tech-LLC/minbar/internal/model"

// RESPONSES FOR /api/display/*

type CitiesResponse struct {
	Cities []string `json:"cities"`
}

type NextPrayerResponse struct {
	City       string             `json:"city"`
	At         string             `json:"at"`
	NextPrayer *model.PrayerEntry `json:"next_prayer"`
}

type HealthResponse struct {
	Status string `json:"status"`
	City   string `json:"city"`
}
