package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/carlosfiori/conversor-clima/internal/fetch"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RateTable maps a currency code to its multiplier against the base code.
type RateTable map[string]decimal.Decimal

// Rate looks up code. A missing or zero rate means the API cannot convert.
func (t RateTable) Rate(code Code) (decimal.Decimal, error) {
	rate, ok := t[string(code)]
	if !ok || rate.IsZero() {
		return decimal.Zero, fetch.Data(MsgConversionUnavailable, fmt.Errorf("no rate for %s", code))
	}
	return rate, nil
}

type RatesClient interface {
	LatestRates(ctx context.Context, base Code) (RateTable, error)
}

type erAPIResponse struct {
	Result    string    `json:"result"`
	ErrorType string    `json:"error-type,omitempty"`
	BaseCode  string    `json:"base_code"`
	Rates     RateTable `json:"rates"`
}

// ERAPIClient talks to open.er-api.com (GET {base}/{code}).
type ERAPIClient struct {
	baseURL    string
	httpClient HTTPClient
}

func NewERAPIClient(baseURL string, httpClient HTTPClient) *ERAPIClient {
	return &ERAPIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *ERAPIClient) LatestRates(ctx context.Context, base Code) (RateTable, error) {
	tracer := otel.Tracer("currency")
	ctx, span := tracer.Start(ctx, "currency: latest-rates")
	defer span.End()

	span.SetAttributes(attribute.String("currency.base", string(base)))

	requestURL := c.baseURL + "/" + url.PathEscape(string(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create request")
		return nil, fetch.Transport(MsgRateUnavailable, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to call exchange api")
		return nil, fetch.Transport(MsgRateUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read response body")
		return nil, fetch.Transport(MsgRateUnavailable, fmt.Errorf("failed to read exchange api response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("exchange api error: %d - %s", resp.StatusCode, string(body))
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status from exchange api")
		return nil, fetch.Transport(MsgRateUnavailable, err)
	}

	var payload erAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return nil, fetch.Data(MsgConversionUnavailable, err)
	}

	if payload.Result == "error" {
		err := fmt.Errorf("exchange api error: %s", payload.ErrorType)
		span.RecordError(err)
		span.SetStatus(codes.Error, "exchange api reported an error")
		return nil, fetch.Transport(MsgRateUnavailable, err)
	}

	span.SetStatus(codes.Ok, "")
	return payload.Rates, nil
}
