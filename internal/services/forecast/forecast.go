package forecast

import (
	"context"

	"github.com/pkg/errors"

	"skycast-api/internal/models"
	"skycast-api/internal/repositories"
	"skycast-api/internal/services/location"
	"skycast-api/internal/services/patterns"
	"skycast-api/pkg/observe"
)

// ErrNoCoverage reports a coordinate for which every candidate grid point
// was rejected: the location sits outside the provider's forecast coverage.
var ErrNoCoverage = errors.New("location is outside forecast coverage")

// ErrPatternsDisabled reports that no pattern analyzer is configured.
var ErrPatternsDisabled = errors.New("pattern analysis is disabled")

// Service resolves coordinates and free-text queries to normalized
// forecasts, probing nearby grid points when the provider rejects the
// exact one.
type Service struct {
	repo      repositories.ForecastRepository
	locations *location.Service
	analyzer  patterns.Analyzer
	l         *observe.Logger
}

// NewService wires the resolution pipeline. analyzer may be nil, which
// disables pattern analysis.
func NewService(repo repositories.ForecastRepository, locations *location.Service, analyzer patterns.Analyzer, l *observe.Logger) *Service {
	return &Service{
		repo:      repo,
		locations: locations,
		analyzer:  analyzer,
		l:         l,
	}
}

// ByCoordinate resolves a forecast for one coordinate. The coordinate is
// validated before any network call.
func (s *Service) ByCoordinate(ctx context.Context, coord models.Coordinate) (*models.ResolvedForecast, error) {
	if err := coord.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.probe(ctx, candidatePoints(coord))
	if err != nil {
		return nil, err
	}

	return s.normalizeForecast(coord, raw), nil
}

// ByQuery resolves a free-text location query end to end and labels the
// forecast with the chosen location's display name.
func (s *Service) ByQuery(ctx context.Context, query string) (*models.ResolvedForecast, error) {
	chosen, err := s.locations.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	forecast, err := s.ByCoordinate(ctx, chosen.Coordinate())
	if err != nil {
		return nil, err
	}

	forecast.Location = chosen.DisplayName
	return forecast, nil
}

// Patterns probes the grid like ByCoordinate but hands the raw accepted
// response to the configured analyzer instead of normalizing it.
func (s *Service) Patterns(ctx context.Context, coord models.Coordinate) (*patterns.Analysis, error) {
	if s.analyzer == nil {
		return nil, ErrPatternsDisabled
	}
	if err := coord.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.probe(ctx, candidatePoints(coord))
	if err != nil {
		return nil, err
	}

	return s.analyzer.Analyze(raw)
}

// probe tries candidates in order and returns the first accepted response.
// A 404 means "this exact point is not on the grid" and moves on to the
// next candidate; any other failure is a provider or network problem that
// probing further would only mask, so the sequence aborts immediately.
func (s *Service) probe(ctx context.Context, candidates []models.Coordinate) (*repositories.ForecastResponse, error) {
	var lastNotFound *repositories.StatusError

	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "forecast probing interrupted")
		}

		raw, err := s.repo.FetchForecast(ctx, candidate)
		if err == nil {
			if i > 0 {
				s.l.Info("forecast resolved via alternate grid point", map[string]any{
					"component":  "forecast",
					"coordinate": candidate.String(),
					"attempts":   i + 1,
				})
			}
			return raw, nil
		}

		var statusErr *repositories.StatusError
		if errors.As(err, &statusErr) && statusErr.NotFound() {
			s.l.Debug("grid point rejected, trying next candidate", map[string]any{
				"component":  "forecast",
				"coordinate": candidate.String(),
				"attempt":    i + 1,
				"remaining":  len(candidates) - i - 1,
			})
			lastNotFound = statusErr
			continue
		}

		return nil, err
	}

	if lastNotFound != nil {
		return nil, errors.Wrapf(ErrNoCoverage, "%d candidates rejected, last: %v", len(candidates), lastNotFound)
	}
	return nil, errors.Wrap(ErrNoCoverage, "no response from any candidate")
}
