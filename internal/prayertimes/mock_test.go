package prayertimes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

func instantMock() *MockProvider {
	p := NewMockProvider()
	p.ListDelay = 0
	p.ScheduleDelay = 0
	p.Now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return p
}

func TestMockProvider_ListCities(t *testing.T) {
	cities, err := instantMock().ListCities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Lyon", "Marseille"}, cities)
}

func TestMockProvider_SchedulesAreValid(t *testing.T) {
	p := instantMock()
	ctx := context.Background()
	cities, err := p.ListCities(ctx)
	require.NoError(t, err)

	for _, city := range cities {
		s, err := p.GetSchedule(ctx, city)
		require.NoError(t, err)
		assert.Equal(t, city, s.City)
		assert.NoError(t, s.Validate())
		require.Len(t, s.Prayers, 5)
		for i, name := range model.PrayerNames {
			assert.Equal(t, name, s.Prayers[i].Name)
		}
		assert.Equal(t, "19/10/2026", s.Date)
		assert.Equal(t, "15 Sha'ban 1445", s.IslamicDate)
	}
}

func TestMockProvider_UnknownCityFallsBackToParis(t *testing.T) {
	p := instantMock()
	ctx := context.Background()
	unknown, err := p.GetSchedule(ctx, "Unknown")
	require.NoError(t, err)
	paris, err := p.GetSchedule(ctx, "Paris")
	require.NoError(t, err)
	assert.Equal(t, paris, unknown)
}

func TestMockProvider_ReturnsCopies(t *testing.T) {
	p := instantMock()
	ctx := context.Background()
	s, err := p.GetSchedule(ctx, "Lyon")
	require.NoError(t, err)
	s.Prayers[0].Time = "00:01"

	again, err := p.GetSchedule(ctx, "Lyon")
	require.NoError(t, err)
	assert.Equal(t, "05:35", again.Prayers[0].Time)
}

func TestMockProvider_SimulatedDelay(t *testing.T) {
	p := instantMock()
	p.ScheduleDelay = 20 * time.Millisecond

	start := time.Now()
	_, err := p.GetSchedule(context.Background(), "Paris")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestMockProvider_ContextCancelled(t *testing.T) {
	p := instantMock()
	p.ListDelay = time.Hour
	p.ScheduleDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ListCities(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = p.GetSchedule(ctx, "Paris")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockSchedules(t *testing.T) {
	all := MockSchedules()
	require.Len(t, all, 3)
	all[0].Prayers[0].Time = "00:00"
	assert.Equal(t, "05:30", MockSchedules()[0].Prayers[0].Time)
}
