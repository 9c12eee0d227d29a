package weather

import (
	"strings"
	"time"
)

// Background is the visual category the widget paints behind the result.
type Background string

const (
	BackgroundNight  Background = "night"
	BackgroundRain   Background = "rain"
	BackgroundCloudy Background = "cloudy"
	BackgroundSnow   Background = "snow"
	BackgroundClear  Background = "clear"
)

var conditionKeywords = []struct {
	background Background
	keywords   []string
}{
	{BackgroundRain, []string{"chuva", "garoa", "rain", "drizzle"}},
	{BackgroundCloudy, []string{"nublado", "nuvens", "cloud"}},
	{BackgroundSnow, []string{"neve", "snow"}},
}

// Classify picks the background for s at instant now. Night wins over any
// description. The timezone offset is added to both sides of the sunrise and
// sunset comparison.
func Classify(s Snapshot, now time.Time) Background {
	localTime := now.Unix() + s.TimezoneOffset
	if localTime < s.Sunrise+s.TimezoneOffset || localTime > s.Sunset+s.TimezoneOffset {
		return BackgroundNight
	}

	desc := strings.ToLower(s.Description)
	for _, c := range conditionKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(desc, kw) {
				return c.background
			}
		}
	}
	return BackgroundClear
}
