package transporthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialboard/internal/dials"
)

// unavailableData fails every call, so the engine degrades every dial.
type unavailableData struct{}

func (unavailableData) Latest(ctx context.Context, seriesID string) (dials.Observation, error) {
	return dials.Observation{}, fmt.Errorf("no upstream for %s", seriesID)
}

func (unavailableData) Series(ctx context.Context, seriesID string, limit int) (dials.Series, error) {
	return nil, fmt.Errorf("no upstream for %s", seriesID)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine, err := dials.NewEngine(unavailableData{}, nil, nil, dials.DefaultDialSet(dials.DefaultTuning()))
	require.NoError(t, err)
	return NewServer(engine)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIndicatorsBeforeFirstRefresh(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/indicators", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestIndicatorsServesLatestSnapshot(t *testing.T) {
	srv := newTestServer(t)
	srv.Refresh(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/indicators", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snap dials.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.NotEmpty(t, snap.AsOf)
	assert.Len(t, snap.Cards, 8)
	for _, card := range snap.Cards {
		assert.Equal(t, dials.StatusDelayed, card.Status)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	_, ok := srv.Latest()
	assert.True(t, ok)
}

func TestRefreshRejectsGet(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}
