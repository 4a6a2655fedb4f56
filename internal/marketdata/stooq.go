package marketdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"dialboard/internal/dials"
)

// DefaultStooqBaseURL is the base URL of the Stooq CSV endpoint.
const DefaultStooqBaseURL = "https://stooq.com"

// StooqClient fetches daily closing prices from Stooq's CSV export. No API
// key is required; Stooq answers "No data" for unknown symbols, which
// surfaces as an empty series.
type StooqClient struct {
	baseURL    string
	httpClient *http.Client
}

// StooqOption configures the client.
type StooqOption func(*StooqClient)

// WithStooqBaseURL sets a custom base URL.
func WithStooqBaseURL(baseURL string) StooqOption {
	return func(c *StooqClient) {
		c.baseURL = baseURL
	}
}

// WithStooqHTTPClient sets a custom HTTP client.
func WithStooqHTTPClient(httpClient *http.Client) StooqOption {
	return func(c *StooqClient) {
		c.httpClient = httpClient
	}
}

// NewStooqClient constructs a client with sane defaults.
func NewStooqClient(opts ...StooqOption) *StooqClient {
	c := &StooqClient{
		baseURL: DefaultStooqBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DailyCloses returns the symbol's daily closes ascending by date. Rows that
// fail to parse are skipped.
func (c *StooqClient) DailyCloses(ctx context.Context, symbol string) (dials.Series, error) {
	reqURL := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", c.baseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("stooq: build request: %w", err)
	}
	req.Header.Set("User-Agent", "dialboard/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stooq: fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stooq: read %s: %w", symbol, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stooq: fetch %s: status %d", symbol, resp.StatusCode)
	}

	series := parseStooqCSV(string(body))
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

func parseStooqCSV(text string) dials.Series {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil || len(rows) < 2 {
		return nil
	}

	header := rows[0]
	dateIdx, closeIdx := -1, -1
	for i, col := range header {
		switch col {
		case "Date":
			dateIdx = i
		case "Close":
			closeIdx = i
		}
	}
	if dateIdx < 0 || closeIdx < 0 {
		return nil
	}

	var series dials.Series
	for _, row := range rows[1:] {
		if len(row) <= dateIdx || len(row) <= closeIdx {
			continue
		}
		date, err := time.Parse("2006-01-02", row[dateIdx])
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(row[closeIdx], 64)
		if err != nil {
			continue
		}
		series = append(series, dials.Observation{Date: date, Value: value})
	}
	return series
}
