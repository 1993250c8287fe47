package display

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Nixie-Tech-LLC/minbar/internal/prayertimes"
)

// CityOption is one selectable city; Active marks the current one.
type CityOption struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// CitySelector loads the available cities and reports selections upward
// through onCityChange.
type CitySelector struct {
	provider     prayertimes.Provider
	onCityChange func(city string)

	mu      sync.RWMutex
	cities  []string
	loading bool
}

func NewCitySelector(provider prayertimes.Provider, onCityChange func(city string)) *CitySelector {
	return &CitySelector{provider: provider, onCityChange: onCityChange, loading: true}
}

// Load fetches the city list. On failure the list stays empty and loading
// stops; the error is logged and returned.
func (s *CitySelector) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	cities, err := s.provider.ListCities(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		log.Error().Err(err).Msg("failed to load cities")
		s.cities = nil
		return err
	}
	s.cities = append([]string(nil), cities...)
	return nil
}

func (s *CitySelector) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *CitySelector) Cities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.cities...)
}

// Options renders one option per city, marking active.
func (s *CitySelector) Options(active string) []CityOption {
	return lo.Map(s.Cities(), func(c string, _ int) CityOption {
		return CityOption{Name: c, Active: c == active}
	})
}

// Select forwards the chosen city to the callback.
func (s *CitySelector) Select(city string) {
	if s.onCityChange != nil {
		s.onCityChange(city)
	}
}
