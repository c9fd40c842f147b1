package repositories

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skycast-api/config"
	"skycast-api/internal/models"
	"skycast-api/pkg/observe"
)

const smhiSampleResponse = `{
	"approvedTime": "2026-08-25T11:06:32Z",
	"referenceTime": "2026-08-25T11:00:00Z",
	"geometry": {"type": "Point", "coordinates": [[16.158, 58.5812]]},
	"timeSeries": [
		{"validTime": "2026-08-25T12:00:00Z", "parameters": [
			{"name": "t", "levelType": "hl", "level": 2, "unit": "Cel", "values": [21.3]},
			{"name": "tcc_mean", "levelType": "hl", "level": 0, "unit": "octas", "values": [4]},
			{"name": "tstm", "levelType": "hl", "level": 0, "unit": "percent", "values": [15]}
		]}
	]
}`

func newTestSMHIRepository(baseURL string) *SMHIRepository {
	return NewSMHIRepository(config.ForecastConfig{
		BaseURL:  baseURL,
		Category: "pmp3g",
		Version:  "2",
		Timeout:  5,
	}, observe.NewZapLogger("test-app", "test", io.Discard))
}

func TestSMHIRepository_FetchForecast(t *testing.T) {
	var requestedPath string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(smhiSampleResponse))
	}))
	defer mockServer.Close()

	repo := newTestSMHIRepository(mockServer.URL)

	resp, err := repo.FetchForecast(context.Background(), models.Coordinate{Longitude: 16.158, Latitude: 58.5812})
	if err != nil {
		t.Fatalf("FetchForecast returned error: %v", err)
	}

	wantPath := "/api/category/pmp3g/version/2/geotype/point/lon/16.158/lat/58.5812/data.json"
	if requestedPath != wantPath {
		t.Errorf("requested path = %q, want %q", requestedPath, wantPath)
	}

	if resp.ApprovedTime != "2026-08-25T11:06:32Z" {
		t.Errorf("ApprovedTime = %q", resp.ApprovedTime)
	}
	if len(resp.TimeSeries) != 1 {
		t.Fatalf("expected 1 time series entry, got %d", len(resp.TimeSeries))
	}

	octas, ok := resp.TimeSeries[0].Parameter("tcc_mean")
	if !ok || octas != 4 {
		t.Errorf("tcc_mean = %v (present=%v), want 4", octas, ok)
	}
	if _, ok := resp.TimeSeries[0].Parameter("missing_param"); ok {
		t.Error("expected missing_param to be absent")
	}
}

func TestSMHIRepository_FetchForecast_NotFound(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out of bounds", http.StatusNotFound)
	}))
	defer mockServer.Close()

	repo := newTestSMHIRepository(mockServer.URL)

	_, err := repo.FetchForecast(context.Background(), models.Coordinate{Longitude: 16.158, Latitude: 58.5812})
	if err == nil {
		t.Fatal("expected error for 404 response, got nil")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if !statusErr.NotFound() {
		t.Errorf("expected NotFound() true, got code %d", statusErr.Code)
	}
}

func TestSMHIRepository_FetchForecast_ServerError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer mockServer.Close()

	repo := newTestSMHIRepository(mockServer.URL)

	_, err := repo.FetchForecast(context.Background(), models.Coordinate{Longitude: 16.158, Latitude: 58.5812})
	if err == nil {
		t.Fatal("expected error for 500 response, got nil")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want 500", statusErr.Code)
	}
	if statusErr.NotFound() {
		t.Error("500 must not be classified as NotFound")
	}
}

func TestSMHIRepository_FetchForecast_InvalidJSON(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json"))
	}))
	defer mockServer.Close()

	repo := newTestSMHIRepository(mockServer.URL)

	_, err := repo.FetchForecast(context.Background(), models.Coordinate{Longitude: 16.158, Latitude: 58.5812})
	if err == nil {
		t.Fatal("expected error when receiving invalid JSON, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse JSON response") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSMHIRepository_FetchForecast_EmptyTimeSeries(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"approvedTime": "2026-08-25T11:06:32Z", "timeSeries": []}`))
	}))
	defer mockServer.Close()

	repo := newTestSMHIRepository(mockServer.URL)

	_, err := repo.FetchForecast(context.Background(), models.Coordinate{Longitude: 16.158, Latitude: 58.5812})
	if err == nil {
		t.Fatal("expected error for empty time series, got nil")
	}
	if !strings.Contains(err.Error(), "no forecast data available") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSMHIRepository_FetchForecast_ContextCancellation(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(smhiSampleResponse))
	}))
	defer mockServer.Close()

	repo := newTestSMHIRepository(mockServer.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FetchForecast(ctx, models.Coordinate{Longitude: 16.158, Latitude: 58.5812})
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

func TestSMHIRepository_BreakerOpensAfterServerErrors(t *testing.T) {
	var calls int
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer mockServer.Close()

	repo := newTestSMHIRepository(mockServer.URL)
	coord := models.Coordinate{Longitude: 16.158, Latitude: 58.5812}

	for i := 0; i < 5; i++ {
		if _, err := repo.FetchForecast(context.Background(), coord); err == nil {
			t.Fatalf("call %d: expected error, got nil", i+1)
		}
	}

	callsBefore := calls
	_, err := repo.FetchForecast(context.Background(), coord)
	if err == nil {
		t.Fatal("expected error with open breaker, got nil")
	}
	if calls != callsBefore {
		t.Errorf("open breaker must not reach the provider, made %d extra calls", calls-callsBefore)
	}
	if !strings.Contains(err.Error(), "provider unavailable") {
		t.Errorf("unexpected error with open breaker: %v", err)
	}
}
