package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"skycast-api/config"
	"skycast-api/pkg/observe"
)

// ErrNoReverseResult reports a reverse lookup the endpoint could not place.
// Nominatim answers those with HTTP 200 and an error field in the body
// rather than a 404.
var ErrNoReverseResult = errors.New("no reverse geocoding result")

// NominatimRepository talks to a Nominatim-compatible search endpoint. The
// endpoint's usage policy requires an identifying User-Agent on every call.
type NominatimRepository struct {
	BaseURL   string
	UserAgent string

	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	l          *observe.Logger
}

func NewNominatimRepository(cnf config.GeocoderConfig, l *observe.Logger) *NominatimRepository {
	return &NominatimRepository{
		BaseURL:    cnf.BaseURL,
		UserAgent:  cnf.UserAgent,
		httpClient: &http.Client{Timeout: time.Duration(cnf.Timeout) * time.Second},
		breaker:    newBreaker("nominatim"),
		l:          l,
	}
}

func (r *NominatimRepository) Name() string {
	return "nominatim"
}

type SearchResult struct {
	Lat         string         `json:"lat"`
	Lon         string         `json:"lon"`
	DisplayName string         `json:"display_name"`
	Type        string         `json:"type"`
	Importance  float64        `json:"importance"`
	Address     *ResultAddress `json:"address,omitempty"`
}

type ResultAddress struct {
	City        string `json:"city,omitempty"`
	County      string `json:"county,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// CountryCode returns the lowercase ISO code from the address details, or
// an empty string when address details were not returned.
func (s *SearchResult) CountryCode() string {
	if s.Address == nil {
		return ""
	}
	return s.Address.CountryCode
}

func (r *NominatimRepository) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")

	endpoint := fmt.Sprintf("%s/search?%s", r.BaseURL, params.Encode())

	r.l.Debug("making geocoding search request", map[string]any{
		"repository": r.Name(),
		"query":      query,
		"limit":      limit,
	})

	body, err := doRequest(ctx, r.Name(), r.httpClient, r.breaker, endpoint, map[string]string{
		"User-Agent": r.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	r.l.Debug("parsed geocoding search response", map[string]any{
		"repository": r.Name(),
		"results":    len(results),
	})

	return results, nil
}

func (r *NominatimRepository) Reverse(ctx context.Context, lat, lon float64) (*SearchResult, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("addressdetails", "1")

	endpoint := fmt.Sprintf("%s/reverse?%s", r.BaseURL, params.Encode())

	r.l.Debug("making reverse geocoding request", map[string]any{
		"repository": r.Name(),
		"lat":        lat,
		"lon":        lon,
	})

	body, err := doRequest(ctx, r.Name(), r.httpClient, r.breaker, endpoint, map[string]string{
		"User-Agent": r.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		SearchResult
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrNoReverseResult, result.Error)
	}

	return &result.SearchResult, nil
}
