package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/dkonya/methu-forecast/internal/adapter/http"
	"github.com/dkonya/methu-forecast/internal/domain"
	"github.com/dkonya/methu-forecast/internal/refresh"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(store *refresh.Store, readyErr error) *httpadapter.Server {
	if store == nil {
		store = refresh.NewStore()
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpadapter.NewServer(":0", store, &mockReadiness{err: readyErr}, logger)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(nil, fmt.Errorf("no settlement has been refreshed yet"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no settlement has been refreshed yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestForecastReturnsSnapshot(t *testing.T) {
	store := refresh.NewStore()
	settlement := domain.Settlement{Name: "Siófok", Code: "3078", Lat: 46.917, Lon: 18.12}
	store.Put(settlement, domain.ForecastSnapshot{
		Settlement:  "Siófok",
		Found:       true,
		Slots:       []domain.ForecastSlot{{Temperature: domain.Float(5)}},
		Days:        []domain.ForecastSlot{},
		RetrievedAt: time.Date(2026, 2, 25, 5, 0, 0, 0, time.UTC),
	})

	srv := newTestServer(store, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/forecast/3078", nil)

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Settlement domain.Settlement       `json:"settlement"`
		Forecast   domain.ForecastSnapshot `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "3078", body.Settlement.Code)
	assert.True(t, body.Forecast.Found)
	require.Len(t, body.Forecast.Slots, 1)
	assert.Equal(t, 5.0, *body.Forecast.Slots[0].Temperature)
}

func TestForecastUnknownCodeReturns404(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/forecast/9999", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "9999")
}

func TestForecastIndexListsCodes(t *testing.T) {
	store := refresh.NewStore()
	store.Put(domain.Settlement{Name: "Siófok", Code: "3078"}, domain.ForecastSnapshot{})
	store.Put(domain.Settlement{Name: "Eger", Code: "1390"}, domain.ForecastSnapshot{})

	srv := newTestServer(store, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/forecasts", nil)

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.ElementsMatch(t, []string{"3078", "1390"}, body["codes"])
}
