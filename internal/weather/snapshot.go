// Package weather looks up current conditions for a city on OpenWeatherMap
// and derives what the widget shows from the last snapshot.
package weather

type Snapshot struct {
	DisplayName        string  `json:"display_name"`
	CountryCode        string  `json:"country_code"`
	TemperatureCelsius float64 `json:"temperature_celsius"`
	HumidityPercent    int     `json:"humidity_percent"`
	Description        string  `json:"description"`
	IconID             string  `json:"icon_id"`
	Sunrise            int64   `json:"sunrise"`
	Sunset             int64   `json:"sunset"`
	TimezoneOffset     int64   `json:"timezone_offset"`
}

// owmResponse is the subset of /data/2.5/weather the widget reads.
type owmResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Timezone int64 `json:"timezone"`
}

func (r owmResponse) snapshot() Snapshot {
	return Snapshot{
		DisplayName:        r.Name,
		CountryCode:        r.Sys.Country,
		TemperatureCelsius: r.Main.Temp,
		HumidityPercent:    r.Main.Humidity,
		Description:        r.Weather[0].Description,
		IconID:             r.Weather[0].Icon,
		Sunrise:            r.Sys.Sunrise,
		Sunset:             r.Sys.Sunset,
		TimezoneOffset:     r.Timezone,
	}
}
