package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/carlosfiori/conversor-clima/internal/fetch"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

const (
	MsgTryAnotherCity     = "try another city"
	MsgWeatherUnavailable = "weather data unavailable"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client interface {
	Current(ctx context.Context, city string) (Snapshot, error)
}

// OWMClient calls the OpenWeatherMap current weather endpoint in metric units.
type OWMClient struct {
	baseURL    string
	apiKey     string
	lang       string
	httpClient HTTPClient
}

func NewOWMClient(baseURL, apiKey, lang string, httpClient HTTPClient) *OWMClient {
	return &OWMClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		lang:       lang,
		httpClient: httpClient,
	}
}

func (c *OWMClient) Current(ctx context.Context, city string) (Snapshot, error) {
	tracer := otel.Tracer("weather")
	ctx, span := tracer.Start(ctx, "weather: current")
	defer span.End()

	span.SetAttributes(attribute.String("weather.city", city))

	params := url.Values{}
	params.Set("q", city)
	params.Set("units", "metric")
	if c.lang != "" {
		params.Set("lang", c.lang)
	}
	params.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create request")
		return Snapshot{}, fetch.Transport(MsgTryAnotherCity, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to call openweathermap")
		return Snapshot{}, fetch.Transport(MsgTryAnotherCity, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read response body")
		return Snapshot{}, fetch.Transport(MsgTryAnotherCity, fmt.Errorf("failed to read openweathermap response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("openweathermap error: %d - %s", resp.StatusCode, string(body))
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status from openweathermap")
		return Snapshot{}, fetch.Transport(MsgTryAnotherCity, err)
	}

	var payload owmResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return Snapshot{}, fetch.Data(MsgWeatherUnavailable, err)
	}

	if len(payload.Weather) == 0 {
		err := errors.New("openweathermap response has no weather entry")
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing weather entry")
		return Snapshot{}, fetch.Data(MsgWeatherUnavailable, err)
	}

	span.SetStatus(codes.Ok, "")
	return payload.snapshot(), nil
}
