package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchedule() *PrayerSchedule {
	return &PrayerSchedule{
		City:        "Paris",
		IslamicDate: "15 Sha'ban 1445",
		Prayers: []PrayerEntry{
			{Name: "Fajr", LocalizedName: "الفجر", Time: "05:30"},
			{Name: "Dhuhr", LocalizedName: "الظهر", Time: "12:45"},
			{Name: "Asr", LocalizedName: "العصر", Time: "16:15"},
			{Name: "Maghrib", LocalizedName: "المغرب", Time: "19:30"},
			{Name: "Isha", LocalizedName: "العشاء", Time: "21:00"},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validSchedule().Validate())

	short := validSchedule()
	short.Prayers = short.Prayers[:4]
	assert.ErrorIs(t, short.Validate(), ErrPrayerCount)

	swapped := validSchedule()
	swapped.Prayers[1], swapped.Prayers[2] = swapped.Prayers[2], swapped.Prayers[1]
	assert.ErrorIs(t, swapped.Validate(), ErrPrayerOrder)

	equal := validSchedule()
	equal.Prayers[2].Time = "12:45"
	assert.ErrorIs(t, equal.Validate(), ErrPrayerOrder)

	garbage := validSchedule()
	garbage.Prayers[0].Time = "dawn"
	assert.Error(t, garbage.Validate())
}

func TestClone(t *testing.T) {
	orig := validSchedule()
	cp := orig.Clone()
	cp.Prayers[0].Time = "04:00"
	assert.Equal(t, "05:30", orig.Prayers[0].Time)

	var nilSchedule *PrayerSchedule
	assert.Nil(t, nilSchedule.Clone())
}

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"05:30", 330, false},
		{"16:15", 975, false},
		{"23:59", 1439, false},
		{"15:02 (BST)", 902, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"1200", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ClockMinutes(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
