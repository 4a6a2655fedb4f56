package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fredTestServer(t *testing.T, observationsByOrder map[string][]fredObservation) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/series/observations", r.URL.Path)
		require.Equal(t, "json", r.URL.Query().Get("file_type"))

		order := r.URL.Query().Get("sort_order")
		obs, ok := observationsByOrder[order]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(fredObservationsResponse{Observations: obs})
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFREDSeriesFiltersSentinelsAndSorts(t *testing.T) {
	ts := fredTestServer(t, map[string][]fredObservation{
		"asc": {
			{Date: "2025-01-02", Value: "4.25"},
			{Date: "2025-01-03", Value: "."},
			{Date: "2025-01-06", Value: "4.40"},
			{Date: "2025-01-07", Value: ""},
			{Date: "2025-01-01", Value: "4.10"},
			{Date: "bad-date", Value: "1.0"},
		},
	})
	client := NewFREDClient("test-key", WithBaseURL(ts.URL))

	series, err := client.Series(context.Background(), "BAMLH0A0HYM2", 6000)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, 4.10, series[0].Value)
	assert.Equal(t, 4.25, series[1].Value)
	assert.Equal(t, 4.40, series[2].Value)
	assert.True(t, series[0].Date.Before(series[1].Date))
}

func TestFREDLatestScansPastMissingValues(t *testing.T) {
	ts := fredTestServer(t, map[string][]fredObservation{
		"desc": {
			{Date: "2025-01-08", Value: "."},
			{Date: "2025-01-07", Value: "."},
			{Date: "2025-01-06", Value: "17.3"},
			{Date: "2025-01-03", Value: "16.9"},
		},
	})
	client := NewFREDClient("test-key", WithBaseURL(ts.URL))

	obs, err := client.Latest(context.Background(), "VIXCLS")
	require.NoError(t, err)
	assert.Equal(t, 17.3, obs.Value)
	assert.Equal(t, "2025-01-06", obs.Date.Format("2006-01-02"))
}

func TestFREDLatestAllSentinels(t *testing.T) {
	ts := fredTestServer(t, map[string][]fredObservation{
		"desc": {
			{Date: "2025-01-08", Value: "."},
			{Date: "2025-01-07", Value: ""},
		},
	})
	client := NewFREDClient("test-key", WithBaseURL(ts.URL))

	_, err := client.Latest(context.Background(), "VIXCLS")
	assert.True(t, errors.Is(err, ErrNoObservations))
}

func TestFREDNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api_key", http.StatusBadRequest)
	}))
	t.Cleanup(ts.Close)
	client := NewFREDClient("", WithBaseURL(ts.URL))

	_, err := client.Series(context.Background(), "VIXCLS", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
