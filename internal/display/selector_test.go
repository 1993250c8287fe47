package display

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/minbar/internal/prayertimes"
)

type failingProvider struct {
	prayertimes.Provider
	err error
}

func (f failingProvider) ListCities(context.Context) ([]string, error) {
	return nil, f.err
}

func TestCitySelector_Load(t *testing.T) {
	s := NewCitySelector(instantProvider(), nil)
	assert.True(t, s.Loading(), "loading until the list arrives")

	require.NoError(t, s.Load(context.Background()))
	assert.False(t, s.Loading())
	assert.Equal(t, []string{"Paris", "Lyon", "Marseille"}, s.Cities())
}

func TestCitySelector_Options(t *testing.T) {
	s := NewCitySelector(instantProvider(), nil)
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, []CityOption{
		{Name: "Paris"},
		{Name: "Lyon", Active: true},
		{Name: "Marseille"},
	}, s.Options("Lyon"))
}

func TestCitySelector_LoadFailure(t *testing.T) {
	boom := errors.New("offline")
	s := NewCitySelector(failingProvider{err: boom}, nil)

	err := s.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Loading())
	assert.Empty(t, s.Cities())
	assert.Empty(t, s.Options("Paris"))
}

func TestCitySelector_Select(t *testing.T) {
	var got []string
	s := NewCitySelector(instantProvider(), func(city string) { got = append(got, city) })

	s.Select("Marseille")
	s.Select("Lyon")
	assert.Equal(t, []string{"Marseille", "Lyon"}, got)

	NewCitySelector(instantProvider(), nil).Select("Paris")
}
