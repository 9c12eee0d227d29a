package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	// Sunrise 09:00 UTC, sunset 21:00 UTC, three hours behind UTC.
	base := Snapshot{Sunrise: 1_700_000_000, Sunset: 1_700_000_000 + 12*3600, TimezoneOffset: -3 * 3600}
	noon := time.Unix(base.Sunrise+6*3600, 0)

	tests := []struct {
		name        string
		description string
		now         time.Time
		want        Background
	}{
		{"before sunrise is night", "céu limpo", time.Unix(base.Sunrise-1, 0), BackgroundNight},
		{"after sunset is night", "céu limpo", time.Unix(base.Sunset+1, 0), BackgroundNight},
		{"night ignores rain", "chuva forte", time.Unix(base.Sunset+3600, 0), BackgroundNight},
		{"exactly at sunrise is day", "céu limpo", time.Unix(base.Sunrise, 0), BackgroundClear},
		{"exactly at sunset is day", "céu limpo", time.Unix(base.Sunset, 0), BackgroundClear},
		{"rain", "Chuva leve", noon, BackgroundRain},
		{"drizzle", "light drizzle", noon, BackgroundRain},
		{"cloudy", "nublado", noon, BackgroundCloudy},
		{"scattered clouds", "nuvens dispersas", noon, BackgroundCloudy},
		{"snow", "neve", noon, BackgroundSnow},
		{"default clear", "céu limpo", noon, BackgroundClear},
		{"empty description", "", noon, BackgroundClear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			s.Description = tt.description
			assert.Equal(t, tt.want, Classify(s, tt.now))
		})
	}
}

func TestClassifyNightIndependentOfOffset(t *testing.T) {
	for _, offset := range []int64{-12 * 3600, -3 * 3600, 0, 5*3600 + 1800, 14 * 3600} {
		s := Snapshot{Sunrise: 1_000_000, Sunset: 1_040_000, TimezoneOffset: offset, Description: "rain"}
		assert.Equal(t, BackgroundNight, Classify(s, time.Unix(999_999, 0)), "offset %d", offset)
		assert.Equal(t, BackgroundRain, Classify(s, time.Unix(1_020_000, 0)), "offset %d", offset)
	}
}
