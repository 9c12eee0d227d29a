package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/carlosfiori/conversor-clima/internal/currency"
	"github.com/carlosfiori/conversor-clima/internal/currency/api"
	"github.com/carlosfiori/conversor-clima/internal/currency/mocks"
	"github.com/carlosfiori/conversor-clima/internal/fetch"
)

func newServer(t *testing.T, setup func(m *mocks.MockRatesClient)) *httptest.Server {
	t.Helper()
	ctrl := gomock.NewController(t)
	rates := mocks.NewMockRatesClient(ctrl)
	setup(rates)

	h := api.NewHandler(currency.NewConverter(rates, zap.NewNop()), zap.NewNop())
	srv := httptest.NewServer(api.SetupRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleConvert_JSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(m *mocks.MockRatesClient)
		wantStatus int
		wantBody   string
	}{
		{
			name: "converts",
			body: `{"amount":"10","from":"BRL","to":"USD"}`,
			setupMocks: func(m *mocks.MockRatesClient) {
				m.EXPECT().LatestRates(gomock.Any(), currency.BRL).
					Return(currency.RateTable{"USD": decimal.RequireFromString("0.20")}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"amount":"10","from":"BRL","to":"USD","rate":"0.2","converted":"2.00","text":"10 BRL = 2.00 USD"}`,
		},
		{
			name:       "invalid amount",
			body:       `{"amount":"0","from":"BRL","to":"USD"}`,
			setupMocks: func(m *mocks.MockRatesClient) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"message":"enter a valid amount"}`,
		},
		{
			name:       "malformed body",
			body:       `{"amount":`,
			setupMocks: func(m *mocks.MockRatesClient) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"invalid request"}`,
		},
		{
			name: "exchange api down",
			body: `{"amount":"10","from":"EUR","to":"BRL"}`,
			setupMocks: func(m *mocks.MockRatesClient) {
				m.EXPECT().LatestRates(gomock.Any(), currency.EUR).
					Return(nil, fetch.Transport(currency.MsgRateUnavailable, nil))
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"message":"could not obtain exchange rate"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.setupMocks)

			resp, err := http.Post(srv.URL+"/convert", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}

func TestHandleConvert_FormRedirectsToPage(t *testing.T) {
	srv := newServer(t, func(m *mocks.MockRatesClient) {
		m.EXPECT().LatestRates(gomock.Any(), currency.BRL).
			Return(currency.RateTable{"USD": decimal.RequireFromString("0.20")}, nil)
	})

	form := url.Values{"amount": {"10"}, "from": {"BRL"}, "to": {"USD"}}
	resp, err := http.PostForm(srv.URL+"/convert", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	// The client follows the 303 to GET /.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "10 BRL = 2.00 USD")
	assert.Contains(t, string(page), `<option value="USD" selected>`)
}

func TestHandleConvert_FormKeepsInputOnError(t *testing.T) {
	srv := newServer(t, func(m *mocks.MockRatesClient) {})

	form := url.Values{"amount": {"-5"}, "from": {"EUR"}, "to": {"BRL"}}
	resp, err := http.PostForm(srv.URL+"/convert", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(page), `value="-5"`)
	assert.Contains(t, string(page), `<option value="EUR" selected>`)
	assert.Contains(t, string(page), `<option value="BRL" selected>`)
	assert.Contains(t, string(page), "enter a valid amount")
}

func TestHandleState(t *testing.T) {
	srv := newServer(t, func(m *mocks.MockRatesClient) {})

	resp, err := http.Get(srv.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"idle","loading":false}`, string(body))
}
