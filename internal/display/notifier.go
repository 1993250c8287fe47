package display

import (
	"context"
	"time"

	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

type EventType string

const (
	EventCityChanged       EventType = "city_changed"
	EventScheduleLoaded    EventType = "schedule_loaded"
	EventNextPrayerChanged EventType = "next_prayer_changed"
)

// Event is a display change worth telling other devices about.
type Event struct {
	Type        EventType          `json:"type"`
	City        string             `json:"city"`
	NextPrayer  *model.PrayerEntry `json:"next_prayer,omitempty"`
	IslamicDate string             `json:"islamic_date,omitempty"`
	At          time.Time          `json:"at"`
}

// Notifier receives display events, e.g. to publish them over MQTT.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, e Event) error

func (f NotifierFunc) Notify(ctx context.Context, e Event) error { return f(ctx, e) }
