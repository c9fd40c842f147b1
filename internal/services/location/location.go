package location

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"skycast-api/internal/models"
	"skycast-api/internal/repositories"
	"skycast-api/pkg/observe"
)

// ErrNoMatch reports a query the search endpoint could not resolve to any
// usable location. Callers render it as "not found", never as a generic
// failure.
var ErrNoMatch = errors.New("no matching locations found")

// Country codes the forecast provider has dense grid coverage for. A place
// inside this region wins over a higher-ranked match outside it.
var preferredCountryCodes = map[string]struct{}{
	"se": {},
	"no": {},
	"dk": {},
	"fi": {},
	"ax": {},
}

// A literal coordinate pair: "lat,lon", "lat;lon" or "lat lon", signed
// decimals. Latitude comes first, matching how people write coordinates.
var coordinatePairPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(-?\d+\.?\d*)\s*[,;]\s*(-?\d+\.?\d*)$`),
	regexp.MustCompile(`^(-?\d+\.?\d*)\s+(-?\d+\.?\d*)$`),
}

// Service resolves free-text queries into geographic locations.
type Service struct {
	repo  repositories.GeocodeRepository
	limit int
	l     *observe.Logger
}

func NewService(repo repositories.GeocodeRepository, limit int, l *observe.Logger) *Service {
	return &Service{
		repo:  repo,
		limit: limit,
		l:     l,
	}
}

// Search resolves a free-text query into candidate locations. A query that
// is itself a valid coordinate pair short-circuits to a single synthesized
// candidate without calling the search endpoint; anything else goes through
// the endpoint with the given result limit (or the configured default when
// limit is not positive).
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.GeocodeCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.Wrap(ErrNoMatch, "empty query")
	}

	if candidate, ok := parseCoordinatePair(query); ok {
		s.l.Debug("query parsed as literal coordinates", map[string]any{
			"component": "location",
			"query":     query,
		})
		return []models.GeocodeCandidate{candidate}, nil
	}

	if limit <= 0 {
		limit = s.limit
	}

	results, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.GeocodeCandidate, 0, len(results))
	for _, r := range results {
		candidate, err := mapSearchResult(r)
		if err != nil {
			s.l.Warning("skipping unparseable search result", map[string]any{
				"component":    "location",
				"display_name": r.DisplayName,
				"err":          err.Error(),
			})
			continue
		}
		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 {
		return nil, errors.Wrapf(ErrNoMatch, "query %q", query)
	}

	return candidates, nil
}

// Resolve picks the single best location for a query: the first candidate
// inside the provider's well-covered region, else the first candidate
// overall (the endpoint orders by its own importance ranking).
func (s *Service) Resolve(ctx context.Context, query string) (models.GeocodeCandidate, error) {
	candidates, err := s.Search(ctx, query, s.limit)
	if err != nil {
		return models.GeocodeCandidate{}, err
	}

	chosen, err := bestCandidate(candidates)
	if err != nil {
		return models.GeocodeCandidate{}, err
	}

	s.l.Info("resolved query to location", map[string]any{
		"component":    "location",
		"query":        query,
		"display_name": chosen.DisplayName,
		"country_code": chosen.CountryCode,
	})

	return chosen, nil
}

// Reverse looks up the place description for a coordinate.
func (s *Service) Reverse(ctx context.Context, lat, lon float64) (models.GeocodeCandidate, error) {
	if _, err := models.NewCoordinate(lon, lat); err != nil {
		return models.GeocodeCandidate{}, err
	}

	result, err := s.repo.Reverse(ctx, lat, lon)
	if err != nil {
		if errors.Is(err, repositories.ErrNoReverseResult) {
			return models.GeocodeCandidate{}, errors.Wrapf(ErrNoMatch, "lat %v lon %v", lat, lon)
		}
		return models.GeocodeCandidate{}, err
	}

	return mapSearchResult(*result)
}

func bestCandidate(candidates []models.GeocodeCandidate) (models.GeocodeCandidate, error) {
	if len(candidates) == 0 {
		return models.GeocodeCandidate{}, ErrNoMatch
	}

	for _, c := range candidates {
		if _, ok := preferredCountryCodes[c.CountryCode]; ok {
			return c, nil
		}
	}

	return candidates[0], nil
}

func parseCoordinatePair(query string) (models.GeocodeCandidate, bool) {
	for _, pattern := range coordinatePairPatterns {
		m := pattern.FindStringSubmatch(query)
		if m == nil {
			continue
		}

		lat, errLat := strconv.ParseFloat(m[1], 64)
		lon, errLon := strconv.ParseFloat(m[2], 64)
		if errLat != nil || errLon != nil {
			continue
		}

		// Out-of-range values mean this was not a coordinate pair after
		// all; the query falls through to text search.
		if _, err := models.NewCoordinate(lon, lat); err != nil {
			continue
		}

		return models.GeocodeCandidate{
			Lat:         lat,
			Lon:         lon,
			DisplayName: fmt.Sprintf("Coordinates: %s, %s", m[1], m[2]),
			Type:        "coordinates",
			Importance:  1.0,
		}, true
	}

	return models.GeocodeCandidate{}, false
}

func mapSearchResult(r repositories.SearchResult) (models.GeocodeCandidate, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return models.GeocodeCandidate{}, errors.Wrapf(err, "result %q: parse lat", r.DisplayName)
	}

	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return models.GeocodeCandidate{}, errors.Wrapf(err, "result %q: parse lon", r.DisplayName)
	}

	return models.GeocodeCandidate{
		Lat:         lat,
		Lon:         lon,
		DisplayName: r.DisplayName,
		Type:        r.Type,
		CountryCode: r.CountryCode(),
		Importance:  r.Importance,
	}, nil
}
