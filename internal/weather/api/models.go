package api

import "github.com/carlosfiori/conversor-clima/internal/weather"

// WeatherResponse is the JSON form of the widget view.
type WeatherResponse = weather.View

type pageData struct {
	View WeatherResponse
}
