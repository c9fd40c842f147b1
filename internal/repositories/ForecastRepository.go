package repositories

import (
	"context"

	"skycast-api/config"
	"skycast-api/internal/models"
	"skycast-api/pkg/observe"
)

// ForecastRepository fetches the raw provider forecast for one grid point.
// A 404 is reported as *StatusError so the probing layer can decide whether
// to try a nearby candidate.
type ForecastRepository interface {
	Name() string
	FetchForecast(ctx context.Context, coord models.Coordinate) (*ForecastResponse, error)
}

// GeocodeRepository talks to the free-text location search endpoint.
type GeocodeRepository interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
	Reverse(ctx context.Context, lat, lon float64) (*SearchResult, error)
}

func InitRepositories(cnf *config.Config, l *observe.Logger) (ForecastRepository, GeocodeRepository) {
	return NewSMHIRepository(cnf.Forecast, l), NewNominatimRepository(cnf.Geocoder, l)
}
