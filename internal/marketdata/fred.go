package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"dialboard/internal/dials"
)

const (
	// DefaultFREDBaseURL is the base URL of the FRED API.
	DefaultFREDBaseURL = "https://api.stlouisfed.org/fred"

	// defaultTimeout bounds a single provider call.
	defaultTimeout = 20 * time.Second

	// defaultRateLimit keeps the client under FRED's request quota.
	defaultRateLimit = 2

	latestScanLimit = 10
)

// ErrNoObservations reports a series with no valid observations.
var ErrNoObservations = errors.New("marketdata: no valid observations")

// FREDClient fetches observation series from the FRED API. The latest
// observation of a series is sometimes published as ".", so Latest scans a
// short descending window for the first valid value.
type FREDClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// FREDOption configures the client.
type FREDOption func(*FREDClient)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) FREDOption {
	return func(c *FREDClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) FREDOption {
	return func(c *FREDClient) {
		c.httpClient = httpClient
	}
}

// WithRateLimit sets a custom request rate limit.
func WithRateLimit(requestsPerSecond int) FREDOption {
	return func(c *FREDClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewFREDClient constructs a client with sane defaults. The API key may be
// empty; FRED then rejects most requests and the engine degrades dials.
func NewFREDClient(apiKey string, opts ...FREDOption) *FREDClient {
	c := &FREDClient{
		baseURL: DefaultFREDBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fredObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type fredObservationsResponse struct {
	Observations []fredObservation `json:"observations"`
}

// Series returns up to limit cleaned observations ascending by date.
// Missing-value sentinels are filtered out.
func (c *FREDClient) Series(ctx context.Context, seriesID string, limit int) (dials.Series, error) {
	resp, err := c.observations(ctx, seriesID, limit, "asc")
	if err != nil {
		return nil, err
	}
	series := decodeObservations(resp.Observations)
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

// Latest returns the most recent valid observation of the series.
func (c *FREDClient) Latest(ctx context.Context, seriesID string) (dials.Observation, error) {
	resp, err := c.observations(ctx, seriesID, latestScanLimit, "desc")
	if err != nil {
		return dials.Observation{}, err
	}
	for _, obs := range resp.Observations {
		parsed, ok := parseObservation(obs)
		if !ok {
			continue
		}
		return parsed, nil
	}
	return dials.Observation{}, fmt.Errorf("series %s: %w", seriesID, ErrNoObservations)
}

func (c *FREDClient) observations(ctx context.Context, seriesID string, limit int, order string) (*fredObservationsResponse, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("file_type", "json")
	params.Set("sort_order", order)
	params.Set("limit", fmt.Sprintf("%d", limit))
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fred: rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/series/observations?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fred: build request: %w", err)
	}
	req.Header.Set("User-Agent", "dialboard/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fred: fetch %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fred: read %s: %w", seriesID, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fred: fetch %s: status %d", seriesID, resp.StatusCode)
	}

	var decoded fredObservationsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("fred: decode %s: %w", seriesID, err)
	}
	return &decoded, nil
}

func decodeObservations(raw []fredObservation) dials.Series {
	series := make(dials.Series, 0, len(raw))
	for _, obs := range raw {
		parsed, ok := parseObservation(obs)
		if !ok {
			continue
		}
		series = append(series, parsed)
	}
	return series
}

func parseObservation(obs fredObservation) (dials.Observation, bool) {
	if obs.Value == "." || obs.Value == "" {
		return dials.Observation{}, false
	}
	date, err := time.Parse("2006-01-02", obs.Date)
	if err != nil {
		return dials.Observation{}, false
	}
	value, err := strconv.ParseFloat(obs.Value, 64)
	if err != nil {
		return dials.Observation{}, false
	}
	return dials.Observation{Date: date, Value: value}, true
}
