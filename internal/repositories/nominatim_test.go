package repositories

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"skycast-api/config"
	"skycast-api/pkg/observe"
)

func newTestNominatimRepository(baseURL string) *NominatimRepository {
	return NewNominatimRepository(config.GeocoderConfig{
		BaseURL:    baseURL,
		UserAgent:  "skycast-api-test/1.0",
		Timeout:    5,
		MaxResults: 5,
	}, observe.NewZapLogger("test-app", "test", io.Discard))
}

func TestNominatimRepository_Search(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "skycast-api-test/1.0" {
			t.Errorf("User-Agent = %q, want identifying agent", ua)
		}

		q := r.URL.Query()
		if q.Get("q") != "Stockholm" {
			t.Errorf("query q = %q, want Stockholm", q.Get("q"))
		}
		if q.Get("format") != "json" {
			t.Errorf("query format = %q, want json", q.Get("format"))
		}
		if q.Get("limit") != "5" {
			t.Errorf("query limit = %q, want 5", q.Get("limit"))
		}
		if q.Get("addressdetails") != "1" {
			t.Errorf("query addressdetails = %q, want 1", q.Get("addressdetails"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"lat": "59.3251172", "lon": "18.0710935", "display_name": "Stockholm, Sweden",
			 "type": "city", "importance": 0.9, "address": {"country": "Sverige", "country_code": "se"}},
			{"lat": "59.2741", "lon": "15.2066", "display_name": "Stockholm, Örebro, Sweden",
			 "type": "hamlet", "importance": 0.3}
		]`))
	}))
	defer mockServer.Close()

	repo := newTestNominatimRepository(mockServer.URL)

	results, err := repo.Search(context.Background(), "Stockholm", 5)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.Lat != "59.3251172" || first.Lon != "18.0710935" {
		t.Errorf("unexpected coordinates: %s, %s", first.Lat, first.Lon)
	}
	if first.DisplayName != "Stockholm, Sweden" {
		t.Errorf("DisplayName = %q", first.DisplayName)
	}
	if first.CountryCode() != "se" {
		t.Errorf("CountryCode() = %q, want se", first.CountryCode())
	}

	// Address details may be missing entirely.
	if results[1].CountryCode() != "" {
		t.Errorf("CountryCode() without address = %q, want empty", results[1].CountryCode())
	}
}

func TestNominatimRepository_Search_Empty(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	repo := newTestNominatimRepository(mockServer.URL)

	results, err := repo.Search(context.Background(), "nowhere-at-all-xyz", 5)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result set, got %d entries", len(results))
	}
}

func TestNominatimRepository_Search_ServerError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bandwidth exceeded", http.StatusServiceUnavailable)
	}))
	defer mockServer.Close()

	repo := newTestNominatimRepository(mockServer.URL)

	_, err := repo.Search(context.Background(), "Stockholm", 5)
	if err == nil {
		t.Fatal("expected error for 503 response, got nil")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.Code != http.StatusServiceUnavailable {
		t.Errorf("status code = %d, want 503", statusErr.Code)
	}
}

func TestNominatimRepository_Reverse(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") != "59.3251" || q.Get("lon") != "18.0711" {
			t.Errorf("unexpected reverse params: lat=%q lon=%q", q.Get("lat"), q.Get("lon"))
		}
		if q.Get("format") != "json" {
			t.Errorf("query format = %q, want json", q.Get("format"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"lat": "59.3251172", "lon": "18.0710935",
			"display_name": "Stockholm, Sweden", "type": "city", "importance": 0.9,
			"address": {"country_code": "se"}}`))
	}))
	defer mockServer.Close()

	repo := newTestNominatimRepository(mockServer.URL)

	result, err := repo.Reverse(context.Background(), 59.3251, 18.0711)
	if err != nil {
		t.Fatalf("Reverse returned error: %v", err)
	}
	if result.DisplayName != "Stockholm, Sweden" {
		t.Errorf("DisplayName = %q", result.DisplayName)
	}
	if result.CountryCode() != "se" {
		t.Errorf("CountryCode() = %q, want se", result.CountryCode())
	}
}

func TestNominatimRepository_Reverse_NoResult(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer mockServer.Close()

	repo := newTestNominatimRepository(mockServer.URL)

	_, err := repo.Reverse(context.Background(), 0, 0)
	if err == nil {
		t.Fatal("expected error for unresolvable reverse lookup, got nil")
	}
	if !errors.Is(err, ErrNoReverseResult) {
		t.Errorf("expected ErrNoReverseResult, got %v", err)
	}
}

func TestNominatimRepository_Search_ContextCancellation(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	repo := newTestNominatimRepository(mockServer.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Search(ctx, "Stockholm", 5)
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}
