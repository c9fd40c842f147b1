package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"skycast-api/config"
	"skycast-api/internal/models"
	"skycast-api/pkg/observe"
)

// SMHIRepository fetches point forecasts from the SMHI open-data API. The
// point endpoint serves a fixed spatial grid and answers 404 for coordinates
// that do not line up with it, which the probing layer compensates for.
type SMHIRepository struct {
	BaseURL  string
	Category string
	Version  string

	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	l          *observe.Logger
}

func NewSMHIRepository(cnf config.ForecastConfig, l *observe.Logger) *SMHIRepository {
	return &SMHIRepository{
		BaseURL:    cnf.BaseURL,
		Category:   cnf.Category,
		Version:    cnf.Version,
		httpClient: &http.Client{Timeout: time.Duration(cnf.Timeout) * time.Second},
		breaker:    newBreaker("smhi"),
		l:          l,
	}
}

func (r *SMHIRepository) Name() string {
	return "smhi"
}

type ForecastResponse struct {
	ApprovedTime  string           `json:"approvedTime"`
	ReferenceTime string           `json:"referenceTime"`
	Geometry      ForecastGeometry `json:"geometry"`
	TimeSeries    []ForecastEntry  `json:"timeSeries"`
}

type ForecastGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type ForecastEntry struct {
	ValidTime  string              `json:"validTime"`
	Parameters []ForecastParameter `json:"parameters"`
}

type ForecastParameter struct {
	Name      string    `json:"name"`
	LevelType string    `json:"levelType"`
	Level     int       `json:"level"`
	Unit      string    `json:"unit"`
	Values    []float64 `json:"values"`
}

// Parameter returns the first value of the named parameter, and whether the
// parameter was present with at least one value.
func (e ForecastEntry) Parameter(name string) (float64, bool) {
	for _, p := range e.Parameters {
		if p.Name == name && len(p.Values) > 0 {
			return p.Values[0], true
		}
	}
	return 0, false
}

func (r *SMHIRepository) FetchForecast(ctx context.Context, coord models.Coordinate) (*ForecastResponse, error) {
	url := fmt.Sprintf("%s/api/category/%s/version/%s/geotype/point/lon/%s/lat/%s/data.json",
		r.BaseURL, r.Category, r.Version,
		strconv.FormatFloat(coord.Longitude, 'f', -1, 64),
		strconv.FormatFloat(coord.Latitude, 'f', -1, 64),
	)

	r.l.Debug("making forecast request", map[string]any{
		"repository": r.Name(),
		"coordinate": coord.String(),
	})

	body, err := doRequest(ctx, r.Name(), r.httpClient, r.breaker, url, nil)
	if err != nil {
		return nil, err
	}

	var response ForecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(response.TimeSeries) == 0 {
		return nil, fmt.Errorf("no forecast data available")
	}

	r.l.Debug("parsed forecast response", map[string]any{
		"repository": r.Name(),
		"entries":    len(response.TimeSeries),
	})

	return &response, nil
}
