package currency_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carlosfiori/conversor-clima/internal/currency"
	"github.com/carlosfiori/conversor-clima/internal/currency/mocks"
	"github.com/carlosfiori/conversor-clima/internal/fetch"
)

func TestERAPIClient_LatestRates(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind fetch.Kind
		wantMsg  string
		wantUSD  string
	}{
		{
			name:    "success",
			status:  http.StatusOK,
			body:    `{"result":"success","base_code":"BRL","rates":{"BRL":1,"USD":0.2,"EUR":0.17}}`,
			wantUSD: "0.2",
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantKind: fetch.KindTransport,
			wantMsg:  currency.MsgRateUnavailable,
		},
		{
			name:     "api reports unsupported code",
			status:   http.StatusOK,
			body:     `{"result":"error","error-type":"unsupported-code"}`,
			wantKind: fetch.KindTransport,
			wantMsg:  currency.MsgRateUnavailable,
		},
		{
			name:     "malformed body",
			status:   http.StatusOK,
			body:     `{"rates":`,
			wantKind: fetch.KindData,
			wantMsg:  currency.MsgConversionUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := currency.NewERAPIClient(srv.URL+"/v6/latest/", srv.Client())
			table, err := client.LatestRates(context.Background(), currency.BRL)

			assert.Equal(t, "/v6/latest/BRL", gotPath)
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.Nil(t, table)
				assert.Equal(t, tt.wantKind, fetch.KindOf(err))
				assert.Equal(t, tt.wantMsg, fetch.Message(err))
				return
			}
			require.NoError(t, err)
			rate, err := table.Rate(currency.USD)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUSD, rate.String())
		})
	}
}

func TestERAPIClient_NetworkFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Return(nil, errors.New("dial tcp: no route to host"))

	client := currency.NewERAPIClient("https://open.er-api.com/v6/latest", httpClient)
	_, err := client.LatestRates(context.Background(), currency.USD)

	assert.Equal(t, fetch.KindTransport, fetch.KindOf(err))
	assert.Equal(t, currency.MsgRateUnavailable, fetch.Message(err))
}
