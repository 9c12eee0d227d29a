package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultCurrencyPort   = "8080"
	DefaultWeatherPort    = "8081"
	DefaultExchangeAPIURL = "https://open.er-api.com/v6/latest"
	DefaultWeatherAPIURL  = "https://api.openweathermap.org/data/2.5/weather"
	DefaultWeatherLang    = "pt_br"
	DefaultPrefsDB        = "prefs.db"
	DefaultClientTimeout  = 5 * time.Second
)

var ErrMissingAPIKey = errors.New("OPENWEATHER_API_KEY environment variable not set")

type Config struct {
	Port           string
	Stage          string
	LogLevel       string
	ServiceName    string
	OTLPEndpoint   string
	ClientTimeout  time.Duration
	ExchangeAPIURL string
	WeatherAPIURL  string
	WeatherAPIKey  string
	WeatherLang    string
	PrefsDB        string
}

// Load reads the process environment, after loading envFile when it exists.
// defaultPort is used when PORT is unset.
func Load(envFile, defaultPort string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	timeout := DefaultClientTimeout
	if v := os.Getenv("HTTP_CLIENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_CLIENT_TIMEOUT %q: %w", v, err)
		}
		timeout = d
	}

	return &Config{
		Port:           getEnv("PORT", defaultPort),
		Stage:          getEnv("STAGE", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "conversor-clima"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ClientTimeout:  timeout,
		ExchangeAPIURL: getEnv("EXCHANGE_API_URL", DefaultExchangeAPIURL),
		WeatherAPIURL:  getEnv("OPENWEATHER_API_URL", DefaultWeatherAPIURL),
		WeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		WeatherLang:    getEnv("OPENWEATHER_LANG", DefaultWeatherLang),
		PrefsDB:        getEnv("PREFS_DB", DefaultPrefsDB),
	}, nil
}

// RequireWeatherKey fails when the OpenWeatherMap key is missing.
func (c *Config) RequireWeatherKey() error {
	if c.WeatherAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
