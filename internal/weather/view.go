package weather

import (
	"fmt"
	"math"
	"time"

	"github.com/carlosfiori/conversor-clima/internal/fetch"
)

const iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"

// View holds everything the weather page displays.
type View struct {
	Query       string       `json:"query"`
	Status      fetch.Status `json:"status"`
	Loading     bool         `json:"loading"`
	Error       string       `json:"error,omitempty"`
	City        string       `json:"city,omitempty"`
	Country     string       `json:"country,omitempty"`
	Temperature string       `json:"temperature,omitempty"`
	Humidity    int          `json:"humidity,omitempty"`
	Description string       `json:"description,omitempty"`
	IconURL     string       `json:"icon_url,omitempty"`
	Background  Background   `json:"background,omitempty"`
}

func IconURL(iconID string) string {
	return fmt.Sprintf(iconURLFormat, iconID)
}

// FormatTemperature rounds to whole degrees.
func FormatTemperature(celsius float64) string {
	t := math.Round(celsius)
	if t == 0 {
		t = 0 // drop the sign of -0
	}
	return fmt.Sprintf("%.0f°C", t)
}

func NewView(query string, s State, now time.Time) View {
	v := View{
		Query:   query,
		Status:  s.Status,
		Loading: s.Loading,
		Error:   s.Error,
	}
	if s.Result == nil {
		return v
	}

	snap := *s.Result
	v.City = snap.DisplayName
	v.Country = snap.CountryCode
	v.Temperature = FormatTemperature(snap.TemperatureCelsius)
	v.Humidity = snap.HumidityPercent
	v.Description = snap.Description
	v.IconURL = IconURL(snap.IconID)
	v.Background = Classify(snap, now)
	return v
}
